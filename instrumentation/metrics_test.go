package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	inst, err := New(Config{
		Enabled:       true,
		MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return inst.Metrics(), reader
}

// counterSum returns the sum of all data points of the named counter whose
// attributes contain every attribute in want.
func counterSum(t *testing.T, reader *sdkmetric.ManualReader, name string, want ...attribute.KeyValue) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s has data type %T, want Sum[int64]", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				if hasAttributes(dp.Attributes, want) {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func hasAttributes(set attribute.Set, want []attribute.KeyValue) bool {
	for _, kv := range want {
		v, ok := set.Value(kv.Key)
		if !ok || v != kv.Value {
			return false
		}
	}
	return true
}

func TestMetrics_RecordProviderAPICall(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		operation  string
		statusCode int
		err        error
	}{
		{"successful exchange", "access_token", 200, nil},
		{"unauthorized user info", "user_info", 401, errors.New("unauthorized")},
		{"server error", "user_info", 502, errors.New("bad gateway")},
		{"network error", "access_token", 0, errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics.RecordProviderAPICall(ctx, "github", tt.operation, tt.statusCode, 12.5, tt.err)
		})
	}

	if got := counterSum(t, reader, MetricProviderAPICalls); got != 4 {
		t.Errorf("%s = %d, want 4", MetricProviderAPICalls, got)
	}
	if got := counterSum(t, reader, MetricProviderAPIErrors); got != 3 {
		t.Errorf("%s = %d, want 3", MetricProviderAPIErrors, got)
	}

	errorTypes := map[string]int64{
		"client_error": 1,
		"server_error": 1,
		"unknown":      1,
	}
	for errorType, want := range errorTypes {
		got := counterSum(t, reader, MetricProviderAPIErrors, attribute.String("error_type", errorType))
		if got != want {
			t.Errorf("%s{error_type=%s} = %d, want %d", MetricProviderAPIErrors, errorType, got, want)
		}
	}
}

func TestMetrics_RecordOperation(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordOperation(ctx, "github-universal", "access_token", "ok", 10)
	metrics.RecordOperation(ctx, "github-universal", "access_token", "social_auth_code_invalid", 10)
	metrics.RecordOperation(ctx, "github-universal", "user_info", "ok", 10)

	got := counterSum(t, reader, MetricOperations,
		attribute.String("operation", "access_token"),
		attribute.String("result", "social_auth_code_invalid"),
	)
	if got != 1 {
		t.Errorf("failed access_token operations = %d, want 1", got)
	}

	if got := counterSum(t, reader, MetricOperations, attribute.String("result", "ok")); got != 2 {
		t.Errorf("successful operations = %d, want 2", got)
	}
}

func TestMetrics_RecordSecurityEvents(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordAuditEvent(ctx, "auth_code_rejected")
	metrics.RecordAuditEvent(ctx, "auth_code_rejected")
	metrics.RecordRateLimiterWait(ctx, "github")

	if got := counterSum(t, reader, MetricAuditEvents, attribute.String("event_type", "auth_code_rejected")); got != 2 {
		t.Errorf("%s = %d, want 2", MetricAuditEvents, got)
	}
	if got := counterSum(t, reader, MetricRateLimiterWaitTotal); got != 1 {
		t.Errorf("%s = %d, want 1", MetricRateLimiterWaitTotal, got)
	}
}
