// Package providers defines the interface for social connectors and the types
// shared by every provider-specific implementation.
package providers

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Connector defines the interface for a social login connector.
// A host registry treats every provider uniformly through this abstraction.
type Connector interface {
	// Metadata returns the static connector descriptor
	Metadata() Metadata

	// ValidateConfig checks a stored configuration without starting an OAuth flow.
	// The only error it returns is an InvalidConfig error.
	ValidateConfig(raw any) error

	// AuthorizationURI builds the URL to redirect users to for authentication.
	// redirectURI and state are passed through verbatim.
	AuthorizationURI(ctx context.Context, redirectURI, state string) (string, error)

	// AccessToken exchanges an authorization code for an access token
	AccessToken(ctx context.Context, code string) (*AccessTokenResult, error)

	// UserInfo fetches the normalized profile of the token's owner
	UserInfo(ctx context.Context, token *AccessTokenResult) (*UserInfo, error)
}

// ConfigProvider returns the stored configuration for a connector.
// The value is untyped; connectors validate it on every use.
type ConfigProvider interface {
	GetConfig(ctx context.Context, connectorID string) (any, error)
}

// ConfigProviderFunc adapts a function to the ConfigProvider interface.
type ConfigProviderFunc func(ctx context.Context, connectorID string) (any, error)

// GetConfig calls f(ctx, connectorID).
func (f ConfigProviderFunc) GetConfig(ctx context.Context, connectorID string) (any, error) {
	return f(ctx, connectorID)
}

// TimeoutProvider returns the timeout applied to outbound provider requests.
type TimeoutProvider interface {
	RequestTimeout(ctx context.Context) (time.Duration, error)
}

// TimeoutProviderFunc adapts a function to the TimeoutProvider interface.
type TimeoutProviderFunc func(ctx context.Context) (time.Duration, error)

// RequestTimeout calls f(ctx).
func (f TimeoutProviderFunc) RequestTimeout(ctx context.Context) (time.Duration, error) {
	return f(ctx)
}

// AccessTokenResult is the outcome of an authorization code exchange.
// The connector does not store it; the caller owns persistence.
type AccessTokenResult struct {
	AccessToken string `json:"accessToken"`
}

// Token returns the access token as an oauth2.Token so it can back
// oauth2.StaticTokenSource based API clients.
func (r *AccessTokenResult) Token() *oauth2.Token {
	if r == nil {
		return nil
	}
	return &oauth2.Token{
		AccessToken: r.AccessToken,
		TokenType:   "Bearer",
	}
}

// UserInfo is the normalized user profile returned by a connector.
// Optional fields are nil when the provider did not return them.
type UserInfo struct {
	// ID is the provider's user identifier, always in string form
	ID string `json:"id"`

	// Name is the user's display name
	Name *string `json:"name,omitempty"`

	// Email is the user's public email address
	Email *string `json:"email,omitempty"`

	// Avatar is the URL of the user's profile picture
	Avatar *string `json:"avatar,omitempty"`
}
