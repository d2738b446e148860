package security

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/giantswarm/social-connector/instrumentation"
)

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestNewAuditor(t *testing.T) {
	auditor := NewAuditor(nil, true)
	if auditor == nil {
		t.Fatal("NewAuditor() returned nil")
	}
	if auditor.logger == nil {
		t.Error("logger should default to slog.Default()")
	}
	if !auditor.enabled {
		t.Error("enabled = false, want true")
	}
}

func TestAuditor_LogEvent(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		wantLog bool
	}{
		{name: "enabled", enabled: true, wantLog: true},
		{name: "disabled", enabled: false, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			auditor := NewAuditor(newJSONLogger(&buf), tt.enabled)

			auditor.LogEvent(context.Background(), Event{
				Type:        "test_event",
				ConnectorID: "github-universal",
				UserID:      "12345",
				ClientID:    "client-456",
				Details:     map[string]any{"key": "value"},
			})

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestAuditor_HashesUserID(t *testing.T) {
	var buf bytes.Buffer
	auditor := NewAuditor(newJSONLogger(&buf), true)

	auditor.LogUserInfoFetched(context.Background(), "github-universal", "12345")

	if strings.Contains(buf.String(), `"12345"`) {
		t.Errorf("audit log contains raw user ID: %s", buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to parse audit record: %v", err)
	}
	if record["event_type"] != EventUserInfoFetched {
		t.Errorf("event_type = %v, want %v", record["event_type"], EventUserInfoFetched)
	}
	if record["user_id_hash"] != hashForLogging("12345") {
		t.Errorf("user_id_hash = %v, want %v", record["user_id_hash"], hashForLogging("12345"))
	}
}

func TestAuditor_EventHelpers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		log       func(a *Auditor)
		wantEvent string
	}{
		{
			name:      "authorization started",
			log:       func(a *Auditor) { a.LogAuthorizationStarted(ctx, "github-universal", "client-1") },
			wantEvent: EventAuthorizationStarted,
		},
		{
			name:      "code exchanged",
			log:       func(a *Auditor) { a.LogCodeExchanged(ctx, "github-universal", "client-1") },
			wantEvent: EventCodeExchanged,
		},
		{
			name:      "auth code rejected",
			log:       func(a *Auditor) { a.LogAuthCodeRejected(ctx, "github-universal", "client-1", "bad_verification_code") },
			wantEvent: EventAuthCodeRejected,
		},
		{
			name:      "access token rejected",
			log:       func(a *Auditor) { a.LogAccessTokenRejected(ctx, "github-universal") },
			wantEvent: EventAccessTokenRejected,
		},
		{
			name:      "invalid config",
			log:       func(a *Auditor) { a.LogInvalidConfig(ctx, "github-universal", "clientId is required") },
			wantEvent: EventInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewAuditor(newJSONLogger(&buf), true))

			var record map[string]any
			if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
				t.Fatalf("failed to parse audit record: %v", err)
			}
			if record["event_type"] != tt.wantEvent {
				t.Errorf("event_type = %v, want %v", record["event_type"], tt.wantEvent)
			}
			if record["connector_id"] != "github-universal" {
				t.Errorf("connector_id = %v, want github-universal", record["connector_id"])
			}
		})
	}
}

func TestAuditor_NilSafe(t *testing.T) {
	var auditor *Auditor
	auditor.LogAccessTokenRejected(context.Background(), "github-universal")
}

func TestAuditor_WithInstrumentation(t *testing.T) {
	var buf bytes.Buffer
	auditor := NewAuditor(newJSONLogger(&buf), true)
	auditor.SetInstrumentation(instrumentation.NewDisabled())

	auditor.LogCodeExchanged(context.Background(), "github-universal", "client-1")

	if buf.Len() == 0 {
		t.Error("expected audit record to be written")
	}
}

func TestHashForLogging(t *testing.T) {
	if got := hashForLogging(""); got != "<empty>" {
		t.Errorf("hashForLogging(\"\") = %q, want <empty>", got)
	}

	h := hashForLogging("12345")
	if len(h) != 16 {
		t.Errorf("hash length = %d, want 16", len(h))
	}
	if h != hashForLogging("12345") {
		t.Error("hashForLogging() is not deterministic")
	}
}
