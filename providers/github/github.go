package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gh "github.com/google/go-github/v80/github"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	oauthgithub "golang.org/x/oauth2/github"

	"github.com/giantswarm/social-connector/httpclient"
	"github.com/giantswarm/social-connector/instrumentation"
	"github.com/giantswarm/social-connector/providers"
	"github.com/giantswarm/social-connector/security"
)

// Compile-time check that Connector implements the providers.Connector interface.
var _ providers.Connector = (*Connector)(nil)

// ErrMissingUserID is returned when the user endpoint answers without an id.
var ErrMissingUserID = errors.New("github user response has no id")

// userEndpoint returns the authenticated user's profile.
// The OAuth endpoints come from oauthgithub.Endpoint.
const userEndpoint = "https://api.github.com/user"

// Scope is the only scope the connector requests.
const Scope = "read:user"

// Operation names used in spans, metrics and provider requests
const (
	opAuthorizationURI = "authorization_uri"
	opAccessToken      = "access_token"
	opUserInfo         = "user_info"
)

// Options holds the collaborators of a Connector.
type Options struct {
	// ConfigProvider returns the client credentials (required).
	// It is consulted on every call.
	ConfigProvider providers.ConfigProvider

	// TimeoutProvider returns the timeout for GitHub requests (required).
	// It is consulted on every call; zero means no timeout beyond the context.
	TimeoutProvider providers.TimeoutProvider

	// HTTPClient performs the GitHub requests.
	// Defaults to an httpclient.Client sharing Logger and Instrumentation.
	HTTPClient httpclient.Requester

	// Logger for structured logging (optional, uses default if not provided)
	Logger *slog.Logger

	// Instrumentation records spans and metrics (optional)
	Instrumentation *instrumentation.Instrumentation

	// Auditor receives security audit events (optional)
	Auditor *security.Auditor
}

// Connector is the GitHub social connector.
// It holds no per-login state and is safe for concurrent use.
type Connector struct {
	metadata        providers.Metadata
	configs         providers.ConfigProvider
	timeouts        providers.TimeoutProvider
	http            httpclient.Requester
	logger          *slog.Logger
	instrumentation *instrumentation.Instrumentation
	tracer          trace.Tracer
	auditor         *security.Auditor

	authorizationEndpoint string
	tokenEndpoint         string
	userEndpoint          string
}

// NewConnector creates a new GitHub connector.
func NewConnector(opts *Options) (*Connector, error) {
	if opts == nil {
		return nil, fmt.Errorf("options are required")
	}
	if opts.ConfigProvider == nil {
		return nil, fmt.Errorf("config provider is required")
	}
	if opts.TimeoutProvider == nil {
		return nil, fmt.Errorf("timeout provider is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	inst := opts.Instrumentation
	if inst == nil {
		inst = instrumentation.NewDisabled()
	}

	requester := opts.HTTPClient
	if requester == nil {
		requester = httpclient.New(&httpclient.Config{
			Provider:        Target,
			Logger:          logger,
			Instrumentation: inst,
		})
	}

	return &Connector{
		metadata:              DefaultMetadata(),
		configs:               opts.ConfigProvider,
		timeouts:              opts.TimeoutProvider,
		http:                  requester,
		logger:                logger,
		instrumentation:       inst,
		tracer:                inst.Tracer("github"),
		auditor:               opts.Auditor,
		authorizationEndpoint: oauthgithub.Endpoint.AuthURL,
		tokenEndpoint:         oauthgithub.Endpoint.TokenURL,
		userEndpoint:          userEndpoint,
	}, nil
}

// Metadata returns a copy of the connector descriptor.
func (c *Connector) Metadata() providers.Metadata {
	return c.metadata.Clone()
}

// ValidateConfig checks raw against the clientId/clientSecret schema.
// It makes no network call and fails only with an InvalidConfig error.
func (c *Connector) ValidateConfig(raw any) error {
	_, err := providers.ParseClientConfig(raw)
	return err
}

// AuthorizationURI builds the GitHub authorization URL. redirectURI and state
// are passed through verbatim; no request is sent to GitHub.
func (c *Connector) AuthorizationURI(ctx context.Context, redirectURI, state string) (uri string, err error) {
	ctx, finish := c.startOperation(ctx, opAuthorizationURI)
	defer func() { finish(err) }()

	cfg, err := c.clientConfig(ctx)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("client_id", cfg.ClientID)
	query.Set("redirect_uri", redirectURI)
	query.Set("state", state)
	query.Set("scope", Scope)

	c.auditor.LogAuthorizationStarted(ctx, ConnectorID, cfg.ClientID)
	c.logger.DebugContext(ctx, "Built authorization URI", "connector_id", ConnectorID)

	return c.authorizationEndpoint + "?" + query.Encode(), nil
}

// tokenResponse is GitHub's access token response. Failures such as
// bad_verification_code arrive with status 200 and only the error fields set.
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	Scope            string `json:"scope"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// AccessToken exchanges an authorization code for an access token.
// A response without access_token is a SocialAuthCodeInvalid error; transport
// failures are returned unmodified. The request is attempted once.
func (c *Connector) AccessToken(ctx context.Context, code string) (result *providers.AccessTokenResult, err error) {
	ctx, finish := c.startOperation(ctx, opAccessToken)
	defer func() { finish(err) }()

	span := trace.SpanFromContext(ctx)
	instrumentation.SetSpanAttributes(span, attribute.Bool(instrumentation.AttrCodePresent, code != ""))

	cfg, err := c.clientConfig(ctx)
	if err != nil {
		return nil, err
	}
	timeout, err := c.timeouts.RequestTimeout(ctx)
	if err != nil {
		return nil, err
	}

	var resp tokenResponse
	err = c.http.Post(ctx, httpclient.Request{
		Operation: opAccessToken,
		URL:       c.tokenEndpoint,
		Headers:   map[string]string{"Accept": "application/json"},
		JSON: map[string]string{
			"client_id":     cfg.ClientID,
			"client_secret": cfg.ClientSecret,
			"code":          code,
		},
		Timeout: timeout,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.AccessToken == "" {
		if resp.Error != "" {
			instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrError, resp.Error))
		}
		c.auditor.LogAuthCodeRejected(ctx, ConnectorID, cfg.ClientID, resp.Error)
		return nil, authCodeInvalid(resp)
	}

	c.auditor.LogCodeExchanged(ctx, ConnectorID, cfg.ClientID)
	c.logger.DebugContext(ctx, "Exchanged authorization code", "connector_id", ConnectorID)

	return &providers.AccessTokenResult{AccessToken: resp.AccessToken}, nil
}

func authCodeInvalid(resp tokenResponse) *providers.Error {
	description := "authorization code rejected"
	switch {
	case resp.ErrorDescription != "":
		description += ": " + resp.ErrorDescription
	case resp.Error != "":
		description += ": " + resp.Error
	}
	return providers.NewError(providers.ErrorCodeSocialAuthCodeInvalid, description)
}

// UserInfo fetches the public profile of the token's owner.
// A 401 from GitHub is a SocialAccessTokenInvalid error; any other failure is
// returned unmodified.
func (c *Connector) UserInfo(ctx context.Context, token *providers.AccessTokenResult) (info *providers.UserInfo, err error) {
	ctx, finish := c.startOperation(ctx, opUserInfo)
	defer func() { finish(err) }()

	if token == nil || token.AccessToken == "" {
		return nil, providers.NewError(providers.ErrorCodeSocialAccessTokenInvalid, "access token is empty")
	}

	timeout, err := c.timeouts.RequestTimeout(ctx)
	if err != nil {
		return nil, err
	}

	var user gh.User
	err = c.http.Get(ctx, httpclient.Request{
		Operation: opUserInfo,
		URL:       c.userEndpoint,
		Headers: map[string]string{
			"Authorization": "token " + token.AccessToken,
			"Accept":        "application/vnd.github+json",
		},
		Timeout: timeout,
	}, &user)
	if err != nil {
		if httpclient.IsStatus(err, http.StatusUnauthorized) {
			c.auditor.LogAccessTokenRejected(ctx, ConnectorID)
			return nil, providers.WrapError(providers.ErrorCodeSocialAccessTokenInvalid, "access token rejected", err)
		}
		return nil, err
	}

	if user.ID == nil {
		return nil, ErrMissingUserID
	}

	info = normalizeUser(&user)

	instrumentation.AddOAuthFlowAttributes(trace.SpanFromContext(ctx), "", info.ID, "")
	c.auditor.LogUserInfoFetched(ctx, ConnectorID, info.ID)
	c.logger.DebugContext(ctx, "Fetched user info", "connector_id", ConnectorID)

	return info, nil
}

// normalizeUser maps a GitHub user onto the connector profile.
// Optional fields are copied only when GitHub returned them.
func normalizeUser(user *gh.User) *providers.UserInfo {
	return &providers.UserInfo{
		ID:     strconv.FormatInt(user.GetID(), 10),
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.AvatarURL,
	}
}

// clientConfig fetches and validates the current credentials.
// Provider errors are returned unmodified.
func (c *Connector) clientConfig(ctx context.Context) (providers.ClientConfig, error) {
	raw, err := c.configs.GetConfig(ctx, ConnectorID)
	if err != nil {
		return providers.ClientConfig{}, err
	}

	cfg, err := providers.ParseClientConfig(raw)
	if err != nil {
		c.auditor.LogInvalidConfig(ctx, ConnectorID, err.Error())
		return providers.ClientConfig{}, err
	}
	return cfg, nil
}

// startOperation opens the span for one connector operation. The returned
// function ends it and records the operation metric with the error's kind.
func (c *Connector) startOperation(ctx context.Context, operation string) (context.Context, func(error)) {
	ctx, span := c.tracer.Start(ctx, "github."+operation)
	instrumentation.AddConnectorAttributes(span, ConnectorID, Target, operation)
	start := time.Now()

	return ctx, func(err error) {
		defer span.End()

		result := "ok"
		if code := providers.Classify(err); code != "" {
			result = string(code)
		}
		instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrConnectorResult, result))
		if err != nil {
			instrumentation.RecordError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		c.instrumentation.Metrics().RecordOperation(ctx, ConnectorID, operation, result, durationMs)
	}
}
