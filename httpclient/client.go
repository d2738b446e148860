package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/giantswarm/social-connector/instrumentation"
	"github.com/giantswarm/social-connector/providers"
)

const (
	// DefaultUserAgent is sent when Config.UserAgent is empty.
	// GitHub rejects API requests without a User-Agent header.
	DefaultUserAgent = "giantswarm-social-connector"

	// maxResponseBytes bounds how much of a response body is read
	maxResponseBytes = 1 << 20

	// maxErrorBodyBytes bounds how much of an error body is kept on RequestError
	maxErrorBodyBytes = 4 << 10
)

// Requester performs JSON requests against an identity provider.
// Get and Post decode a 2xx JSON body into out (which may be nil) and return
// a *RequestError for any other status.
type Requester interface {
	Get(ctx context.Context, req Request, out any) error
	Post(ctx context.Context, req Request, out any) error
}

// Request describes one outbound call.
type Request struct {
	// Operation labels the call in spans and metrics, e.g. "access_token"
	Operation string

	// URL is the absolute request URL
	URL string

	// Headers are set on the request in addition to the defaults
	Headers map[string]string

	// JSON is encoded as the request body when non-nil
	JSON any

	// Timeout bounds the whole call. Zero means only ctx bounds it.
	Timeout time.Duration
}

// Config holds Client configuration.
type Config struct {
	// Provider labels spans and metrics, e.g. "github"
	Provider string

	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client

	// UserAgent overrides DefaultUserAgent
	UserAgent string

	// RateLimiter delays outbound requests to stay within provider API quotas.
	// The wait honours the request context. Nil disables limiting.
	RateLimiter *rate.Limiter

	// Logger for structured logging (optional, uses default if not provided)
	Logger *slog.Logger

	// Instrumentation records spans and provider API metrics (optional)
	Instrumentation *instrumentation.Instrumentation
}

// Client is the default Requester, built on net/http.
// It performs exactly one attempt per call.
type Client struct {
	provider        string
	httpClient      *http.Client
	userAgent       string
	limiter         *rate.Limiter
	logger          *slog.Logger
	instrumentation *instrumentation.Instrumentation
	tracer          trace.Tracer
}

// Compile-time check that Client implements Requester.
var _ Requester = (*Client)(nil)

// New creates a new Client.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	inst := cfg.Instrumentation
	if inst == nil {
		inst = instrumentation.NewDisabled()
	}

	return &Client{
		provider:        cfg.Provider,
		httpClient:      httpClient,
		userAgent:       userAgent,
		limiter:         cfg.RateLimiter,
		logger:          logger,
		instrumentation: inst,
		tracer:          inst.Tracer("http"),
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, req Request, out any) error {
	return c.do(ctx, http.MethodGet, req, out)
}

// Post performs a POST request with req.JSON as body.
func (c *Client) Post(ctx context.Context, req Request, out any) error {
	return c.do(ctx, http.MethodPost, req, out)
}

func (c *Client) do(ctx context.Context, method string, req Request, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "http."+method+" "+req.Operation)
	defer span.End()
	instrumentation.AddProviderAttributes(span, c.provider, req.Operation)

	ctx, cancel := providers.WithTimeout(ctx, req.Timeout)
	defer cancel()

	start := time.Now()
	statusCode := 0
	defer func() {
		durationMs := float64(time.Since(start).Microseconds()) / 1000
		c.instrumentation.Metrics().RecordProviderAPICall(ctx, c.provider, req.Operation, statusCode, durationMs, err)
		instrumentation.AddHTTPAttributes(span, method, req.URL, statusCode)
		if err != nil {
			instrumentation.RecordError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}
	}()

	if err := c.wait(ctx); err != nil {
		return err
	}

	httpReq, err := c.newRequest(ctx, method, req)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	statusCode = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response body: %w", method, req.URL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(method, req.URL, resp.StatusCode, body)
	}

	c.logger.DebugContext(ctx, "Provider request completed",
		"provider", c.provider,
		"operation", req.Operation,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response body: %w", method, req.URL, err)
	}
	return nil
}

// wait blocks until the rate limiter admits the request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if c.limiter.Allow() {
		return nil
	}

	c.instrumentation.Metrics().RecordRateLimiterWait(ctx, c.provider)
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, req Request) (*http.Request, error) {
	var body io.Reader
	if req.JSON != nil {
		payload, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")
	if req.JSON != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// RequestError is returned when the provider answers with a non-2xx status.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int

	// Body holds the beginning of the response body for diagnostics
	Body []byte
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

func newRequestError(method, url string, statusCode int, body []byte) *RequestError {
	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	return &RequestError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       bytes.Clone(body),
	}
}

// IsStatus reports whether err is a *RequestError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	return reqErr.StatusCode == statusCode
}
