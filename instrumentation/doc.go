// Package instrumentation provides OpenTelemetry (OTEL) instrumentation for the social-connector library.
//
// This package gives the connector and its HTTP client:
// - Metrics: Counters and histograms for connector operations and provider API calls
// - Traces: One span per connector operation and per outbound provider request
//
// The library does not configure exporters. The host application sets up its SDK
// providers and either passes them in Config or registers them globally with
// otel.SetTracerProvider / otel.SetMeterProvider.
//
// # Quick Start
//
//	import "github.com/giantswarm/social-connector/instrumentation"
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "my-identity-host",
//		ServiceVersion: "1.0.0",
//		Enabled:        true,
//		TracerProvider: tracerProvider,
//		MeterProvider:  meterProvider,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
//	connector, err := github.NewConnector(&github.Options{
//		ConfigProvider:  configs,
//		TimeoutProvider: timeouts,
//		Instrumentation: inst,
//	})
//
// # Available Metrics
//
// Provider:
//   - connector.provider.api.calls.total{provider, operation, status} - Provider API calls
//   - connector.provider.api.duration{provider, operation} - API call duration in milliseconds
//   - connector.provider.api.errors{provider, operation, error_type} - Provider API errors
//
// Connector:
//   - connector.operations.total{connector, operation, result} - Operations by result code
//   - connector.operation.duration{connector, operation} - Operation duration in milliseconds
//
// Security:
//   - connector.audit.events.total{event_type} - Audit events
//   - connector.rate_limiter.waits.total{provider} - Requests delayed by the outbound limiter
//
// The result label is "ok" or one of invalid_config, social_auth_code_invalid,
// social_access_token_invalid and unmapped.
//
// # Distributed Tracing
//
// Example span structure for a login:
//
//	github.authorization_uri
//	github.access_token
//	└── http.POST access_token
//	github.user_info
//	└── http.GET user_info
//
// # Security Considerations
//
// Traces and metrics never carry authorization codes, access tokens or client
// secrets. Only presence flags, status codes and result codes are recorded.
package instrumentation
