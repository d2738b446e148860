// Package mock provides mock implementations of the Connector interface for testing.
package mock

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/giantswarm/social-connector/providers"
)

// Compile-time check that MockConnector implements providers.Connector.
var _ providers.Connector = (*MockConnector)(nil)

// MockConnector is a mock implementation of the Connector interface for testing
type MockConnector struct {
	// MetadataFunc is called when Metadata() is invoked
	MetadataFunc func() providers.Metadata

	// ValidateConfigFunc is called when ValidateConfig() is invoked
	ValidateConfigFunc func(raw any) error

	// AuthorizationURIFunc is called when AuthorizationURI() is invoked
	AuthorizationURIFunc func(ctx context.Context, redirectURI, state string) (string, error)

	// AccessTokenFunc is called when AccessToken() is invoked
	AccessTokenFunc func(ctx context.Context, code string) (*providers.AccessTokenResult, error)

	// UserInfoFunc is called when UserInfo() is invoked
	UserInfoFunc func(ctx context.Context, token *providers.AccessTokenResult) (*providers.UserInfo, error)

	// CallCounts tracks how many times each method was called
	CallCounts map[string]int

	// mu protects CallCounts from concurrent access
	mu sync.RWMutex
}

// NewMockConnector creates a new mock connector with the given ID and default implementations
func NewMockConnector(id string) *MockConnector {
	name := "Mock User"
	email := "mock@example.com"

	return &MockConnector{
		CallCounts: make(map[string]int),
		MetadataFunc: func() providers.Metadata {
			return providers.Metadata{
				ID:          id,
				Target:      "mock",
				Platform:    providers.PlatformUniversal,
				Name:        map[string]string{"en": "Mock"},
				Description: map[string]string{"en": "Mock connector for tests."},
			}
		},
		ValidateConfigFunc: func(raw any) error {
			_, err := providers.ParseClientConfig(raw)
			return err
		},
		AuthorizationURIFunc: func(ctx context.Context, redirectURI, state string) (string, error) {
			query := url.Values{}
			query.Set("redirect_uri", redirectURI)
			query.Set("state", state)
			return "https://mock.example.com/authorize?" + query.Encode(), nil
		},
		AccessTokenFunc: func(ctx context.Context, code string) (*providers.AccessTokenResult, error) {
			return &providers.AccessTokenResult{AccessToken: "mock-access-token"}, nil
		},
		UserInfoFunc: func(ctx context.Context, token *providers.AccessTokenResult) (*providers.UserInfo, error) {
			return &providers.UserInfo{
				ID:    "mock-user-123",
				Name:  &name,
				Email: &email,
			}, nil
		},
	}
}

// Metadata returns the connector descriptor
func (m *MockConnector) Metadata() providers.Metadata {
	// LOCK PATTERN: Lock only to update counter and read function reference
	// Release lock BEFORE calling user function to prevent deadlocks
	// (user function might call other mock methods)
	m.mu.Lock()
	m.CallCounts["Metadata"]++
	fn := m.MetadataFunc
	m.mu.Unlock()

	// Call user function WITHOUT holding lock (deadlock prevention)
	if fn == nil {
		return providers.Metadata{ID: "mock"} // Safe default
	}
	return fn()
}

// ValidateConfig checks a stored configuration
func (m *MockConnector) ValidateConfig(raw any) error {
	m.mu.Lock()
	m.CallCounts["ValidateConfig"]++
	fn := m.ValidateConfigFunc
	m.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(raw)
}

// AuthorizationURI builds the URL to redirect users to for authentication
func (m *MockConnector) AuthorizationURI(ctx context.Context, redirectURI, state string) (string, error) {
	m.mu.Lock()
	m.CallCounts["AuthorizationURI"]++
	fn := m.AuthorizationURIFunc
	m.mu.Unlock()
	if fn == nil {
		return "", fmt.Errorf("AuthorizationURIFunc not configured")
	}
	return fn(ctx, redirectURI, state)
}

// AccessToken exchanges an authorization code for an access token
func (m *MockConnector) AccessToken(ctx context.Context, code string) (*providers.AccessTokenResult, error) {
	m.mu.Lock()
	m.CallCounts["AccessToken"]++
	fn := m.AccessTokenFunc
	m.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("AccessTokenFunc not configured")
	}
	return fn(ctx, code)
}

// UserInfo fetches the profile of the token's owner
func (m *MockConnector) UserInfo(ctx context.Context, token *providers.AccessTokenResult) (*providers.UserInfo, error) {
	m.mu.Lock()
	m.CallCounts["UserInfo"]++
	fn := m.UserInfoFunc
	m.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("UserInfoFunc not configured")
	}
	return fn(ctx, token)
}

// ResetCallCounts resets all call counters
func (m *MockConnector) ResetCallCounts() {
	m.mu.Lock()
	m.CallCounts = make(map[string]int)
	m.mu.Unlock()
}

// GetCallCount returns the number of times a method was called
func (m *MockConnector) GetCallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.CallCounts[method]
}
