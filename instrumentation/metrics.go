package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names
const (
	MetricProviderAPICalls     = "connector.provider.api.calls.total"
	MetricProviderAPIDuration  = "connector.provider.api.duration"
	MetricProviderAPIErrors    = "connector.provider.api.errors"
	MetricOperations           = "connector.operations.total"
	MetricOperationDuration    = "connector.operation.duration"
	MetricAuditEvents          = "connector.audit.events.total"
	MetricRateLimiterWaitTotal = "connector.rate_limiter.waits.total"
)

// Metrics holds all metric instruments for the connector library
type Metrics struct {
	// Provider Metrics
	ProviderAPICallsTotal metric.Int64Counter
	ProviderAPIDuration   metric.Float64Histogram
	ProviderAPIErrors     metric.Int64Counter

	// Connector Operation Metrics
	OperationsTotal   metric.Int64Counter
	OperationDuration metric.Float64Histogram

	// Security Metrics
	AuditEventsTotal metric.Int64Counter
	RateLimiterWaits metric.Int64Counter
}

// newMetrics creates and registers all metric instruments
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}
	httpMeter := inst.Meter("http")
	connectorMeter := inst.Meter("connector")
	securityMeter := inst.Meter("security")

	var err error
	m.ProviderAPICallsTotal, err = httpMeter.Int64Counter(
		MetricProviderAPICalls,
		metric.WithDescription("Total number of identity provider API calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider.api.calls.total counter: %w", err)
	}

	m.ProviderAPIDuration, err = httpMeter.Float64Histogram(
		MetricProviderAPIDuration,
		metric.WithDescription("Identity provider API call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider.api.duration histogram: %w", err)
	}

	m.ProviderAPIErrors, err = httpMeter.Int64Counter(
		MetricProviderAPIErrors,
		metric.WithDescription("Number of failed identity provider API calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider.api.errors counter: %w", err)
	}

	m.OperationsTotal, err = connectorMeter.Int64Counter(
		MetricOperations,
		metric.WithDescription("Number of connector operations by result"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operations.total counter: %w", err)
	}

	m.OperationDuration, err = connectorMeter.Float64Histogram(
		MetricOperationDuration,
		metric.WithDescription("Connector operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation.duration histogram: %w", err)
	}

	m.AuditEventsTotal, err = securityMeter.Int64Counter(
		MetricAuditEvents,
		metric.WithDescription("Number of security audit events"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit.events.total counter: %w", err)
	}

	m.RateLimiterWaits, err = securityMeter.Int64Counter(
		MetricRateLimiterWaitTotal,
		metric.WithDescription("Number of outbound requests delayed by the rate limiter"),
		metric.WithUnit("{wait}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate_limiter.waits.total counter: %w", err)
	}

	return m, nil
}

// RecordProviderAPICall records a provider API call
func (m *Metrics) RecordProviderAPICall(ctx context.Context, provider, operation string, statusCode int, durationMs float64, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.Int("status", statusCode),
	}

	m.ProviderAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.ProviderAPIDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
	))

	if err != nil {
		errorType := "unknown"
		if statusCode >= 400 && statusCode < 500 {
			errorType = "client_error"
		} else if statusCode >= 500 {
			errorType = "server_error"
		}

		m.ProviderAPIErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("operation", operation),
			attribute.String("error_type", errorType),
		))
	}
}

// RecordOperation records a connector operation and its result.
// result is the error code of the outcome, "ok" on success.
func (m *Metrics) RecordOperation(ctx context.Context, connectorID, operation, result string, durationMs float64) {
	m.OperationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("connector", connectorID),
		attribute.String("operation", operation),
		attribute.String("result", result),
	))
	m.OperationDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("connector", connectorID),
		attribute.String("operation", operation),
	))
}

// RecordAuditEvent records an audit event
func (m *Metrics) RecordAuditEvent(ctx context.Context, eventType string) {
	m.AuditEventsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
	))
}

// RecordRateLimiterWait records an outbound request that had to wait for the limiter
func (m *Metrics) RecordRateLimiterWait(ctx context.Context, provider string) {
	m.RateLimiterWaits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
	))
}
