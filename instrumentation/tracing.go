package instrumentation

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common span attribute keys
//
// SECURITY WARNING: Never record actual sensitive values (access tokens,
// authorization codes, client secrets) in traces or metrics. Only record
// metadata such as presence flags, lengths and result codes.
const (
	// Connector attributes
	AttrConnectorID        = "connector.id"
	AttrConnectorTarget    = "connector.target"
	AttrConnectorOperation = "connector.operation"
	AttrConnectorResult    = "connector.result"

	// OAuth flow attributes - SAFE to use for metadata only
	AttrClientID    = "oauth.client_id"    // Client identifier (non-secret)
	AttrUserID      = "oauth.user_id"      // User identifier (non-secret)
	AttrScope       = "oauth.scope"        // Requested scopes
	AttrCodePresent = "oauth.code.present" // Whether an authorization code was supplied
	AttrError       = "oauth.error"        // Provider error code

	// Provider attributes
	AttrProviderName      = "provider.name"
	AttrProviderOperation = "provider.operation"

	// HTTP attributes (in addition to standard semantic conventions)
	AttrHTTPEndpoint   = "http.endpoint"
	AttrHTTPMethod     = "http.method"
	AttrHTTPStatusCode = "http.status_code"
	AttrHTTPTimeoutMs  = "http.timeout_ms"
)

// RecordError records an error on a span with proper status codes (nil-safe)
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks a span as successful (nil-safe)
func SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// SetSpanAttributes sets attributes on a span (nil-safe)
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span != nil {
		span.SetAttributes(attrs...)
	}
}

// AddConnectorAttributes adds connector identification attributes to a span (nil-safe)
func AddConnectorAttributes(span trace.Span, connectorID, target, operation string) {
	SetSpanAttributes(span,
		attribute.String(AttrConnectorID, connectorID),
		attribute.String(AttrConnectorTarget, target),
		attribute.String(AttrConnectorOperation, operation),
	)
}

// AddOAuthFlowAttributes adds common OAuth flow attributes to a span (nil-safe)
func AddOAuthFlowAttributes(span trace.Span, clientID, userID, scope string) {
	if clientID != "" {
		SetSpanAttributes(span, attribute.String(AttrClientID, clientID))
	}
	if userID != "" {
		SetSpanAttributes(span, attribute.String(AttrUserID, userID))
	}
	if scope != "" {
		SetSpanAttributes(span, attribute.String(AttrScope, scope))
	}
}

// AddProviderAttributes adds provider attributes to a span (nil-safe)
func AddProviderAttributes(span trace.Span, providerName, operation string) {
	SetSpanAttributes(span,
		attribute.String(AttrProviderName, providerName),
		attribute.String(AttrProviderOperation, operation),
	)
}

// AddHTTPAttributes adds HTTP request attributes to a span (nil-safe)
func AddHTTPAttributes(span trace.Span, method, endpoint string, statusCode int) {
	SetSpanAttributes(span,
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPEndpoint, endpoint),
		attribute.Int(AttrHTTPStatusCode, statusCode),
	)
}
