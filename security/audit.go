package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/giantswarm/social-connector/instrumentation"
)

// Auditor handles security event logging with PII protection.
type Auditor struct {
	logger          *slog.Logger
	enabled         bool
	instrumentation *instrumentation.Instrumentation
}

// NewAuditor creates a new security auditor
func NewAuditor(logger *slog.Logger, enabled bool) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		logger:  logger,
		enabled: enabled,
	}
}

// SetInstrumentation makes the auditor count events in the audit metric.
func (a *Auditor) SetInstrumentation(inst *instrumentation.Instrumentation) {
	a.instrumentation = inst
}

// Event represents a security audit event
type Event struct {
	Type        string
	ConnectorID string
	UserID      string
	ClientID    string
	Details     map[string]any
	Timestamp   time.Time
}

// LogEvent logs a security event with hashed PII.
// A nil Auditor discards the event.
func (a *Auditor) LogEvent(ctx context.Context, event Event) {
	if a == nil || !a.enabled {
		return
	}

	event.Timestamp = time.Now()

	a.logger.InfoContext(ctx, "security_audit",
		"event_type", event.Type,
		"connector_id", event.ConnectorID,
		"user_id_hash", hashForLogging(event.UserID),
		"client_id", event.ClientID,
		"details", event.Details,
		"timestamp", event.Timestamp,
	)

	if a.instrumentation != nil {
		a.instrumentation.Metrics().RecordAuditEvent(ctx, event.Type)
	}
}

// LogAuthorizationStarted logs when an authorization URI is handed out
func (a *Auditor) LogAuthorizationStarted(ctx context.Context, connectorID, clientID string) {
	a.LogEvent(ctx, Event{
		Type:        EventAuthorizationStarted,
		ConnectorID: connectorID,
		ClientID:    clientID,
	})
}

// LogCodeExchanged logs a successful authorization code exchange
func (a *Auditor) LogCodeExchanged(ctx context.Context, connectorID, clientID string) {
	a.LogEvent(ctx, Event{
		Type:        EventCodeExchanged,
		ConnectorID: connectorID,
		ClientID:    clientID,
	})
}

// LogAuthCodeRejected logs when the provider returned no access token for a code
func (a *Auditor) LogAuthCodeRejected(ctx context.Context, connectorID, clientID, providerError string) {
	a.LogEvent(ctx, Event{
		Type:        EventAuthCodeRejected,
		ConnectorID: connectorID,
		ClientID:    clientID,
		Details: map[string]any{
			"provider_error": providerError,
		},
	})
}

// LogAccessTokenRejected logs when the provider rejected an access token
func (a *Auditor) LogAccessTokenRejected(ctx context.Context, connectorID string) {
	a.LogEvent(ctx, Event{
		Type:        EventAccessTokenRejected,
		ConnectorID: connectorID,
	})
}

// LogUserInfoFetched logs a successful profile lookup
func (a *Auditor) LogUserInfoFetched(ctx context.Context, connectorID, userID string) {
	a.LogEvent(ctx, Event{
		Type:        EventUserInfoFetched,
		ConnectorID: connectorID,
		UserID:      userID,
	})
}

// LogInvalidConfig logs when a stored connector configuration fails validation
func (a *Auditor) LogInvalidConfig(ctx context.Context, connectorID, reason string) {
	a.LogEvent(ctx, Event{
		Type:        EventInvalidConfig,
		ConnectorID: connectorID,
		Details: map[string]any{
			"reason": reason,
		},
	})
}

// hashForLogging creates a SHA256 hash of sensitive data for logging
func hashForLogging(sensitive string) string {
	if sensitive == "" {
		return "<empty>"
	}
	hash := sha256.Sum256([]byte(sensitive))
	return hex.EncodeToString(hash[:])[:16]
}
