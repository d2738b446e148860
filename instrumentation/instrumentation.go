package instrumentation

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultServiceName is the service name used when none is provided
	DefaultServiceName = "social-connector"

	// DefaultServiceVersion is the default service version used when none is provided
	DefaultServiceVersion = "unknown"

	// instrumentationPrefix is prepended to every meter and tracer scope
	instrumentationPrefix = "github.com/giantswarm/social-connector/"
)

// Config holds instrumentation configuration
type Config struct {
	// ServiceName is the name of the service (e.g., "social-connector", "my-identity-host")
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled controls whether instrumentation is active
	// When false, uses no-op providers (zero overhead)
	Enabled bool

	// TracerProvider is used when Enabled is true.
	// If nil, the global provider registered with otel.SetTracerProvider is used.
	TracerProvider trace.TracerProvider

	// MeterProvider is used when Enabled is true.
	// If nil, the global provider registered with otel.SetMeterProvider is used.
	MeterProvider metric.MeterProvider

	// Resource allows custom resource attributes
	// If nil, default resource is created with service name and version
	Resource *resource.Resource
}

// Instrumentation provides OpenTelemetry instrumentation components
type Instrumentation struct {
	config   Config
	resource *resource.Resource

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider

	metrics *Metrics

	// Shutdown functions (must be registered during New() only, not thread-safe after initialization)
	shutdownFuncs []func(context.Context) error
	shutdownOnce  sync.Once
}

// New creates a new instrumentation instance
func New(config Config) (*Instrumentation, error) {
	if config.ServiceName == "" {
		config.ServiceName = DefaultServiceName
	}
	if config.ServiceVersion == "" {
		config.ServiceVersion = DefaultServiceVersion
	}

	var res *resource.Resource
	var err error
	if config.Resource != nil {
		res = config.Resource
	} else {
		res, err = resource.New(
			context.Background(),
			resource.WithAttributes(
				semconv.ServiceName(config.ServiceName),
				semconv.ServiceVersion(config.ServiceVersion),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}
	}

	inst := &Instrumentation{
		config:   config,
		resource: res,
	}

	if config.Enabled {
		inst.initializeProviders()
	} else {
		// Use no-op providers for zero overhead
		inst.meterProvider = noop.NewMeterProvider()
		inst.tracerProvider = tracenoop.NewTracerProvider()
	}

	inst.metrics, err = newMetrics(inst)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	return inst, nil
}

// NewDisabled returns instrumentation backed by no-op providers.
// Components use it when the caller did not supply instrumentation.
func NewDisabled() *Instrumentation {
	inst, err := New(Config{Enabled: false})
	if err != nil {
		// noop providers never fail to create instruments
		panic(fmt.Sprintf("instrumentation: %v", err))
	}
	return inst
}

// flusher is implemented by SDK providers (sdktrace.TracerProvider, sdkmetric.MeterProvider).
type flusher interface {
	ForceFlush(ctx context.Context) error
}

// initializeProviders picks the configured providers, falling back to the globals.
// Exporter setup stays with the host application, which owns the SDK lifecycle;
// Shutdown only flushes what this instance recorded.
func (i *Instrumentation) initializeProviders() {
	i.tracerProvider = i.config.TracerProvider
	if i.tracerProvider == nil {
		i.tracerProvider = otel.GetTracerProvider()
	}

	i.meterProvider = i.config.MeterProvider
	if i.meterProvider == nil {
		i.meterProvider = otel.GetMeterProvider()
	}

	if f, ok := i.tracerProvider.(flusher); ok {
		i.shutdownFuncs = append(i.shutdownFuncs, f.ForceFlush)
	}
	if f, ok := i.meterProvider.(flusher); ok {
		i.shutdownFuncs = append(i.shutdownFuncs, f.ForceFlush)
	}
}

// Shutdown gracefully shuts down all instrumentation providers
// This should be called when the application is terminating
func (i *Instrumentation) Shutdown(ctx context.Context) error {
	var shutdownErr error

	i.shutdownOnce.Do(func() {
		for _, fn := range i.shutdownFuncs {
			if err := fn(ctx); err != nil {
				// Capture first error, but continue shutting down other components
				if shutdownErr == nil {
					shutdownErr = err
				}
			}
		}
	})

	return shutdownErr
}

// Meter returns a named meter for the given scope
// Scopes are layer names like "connector", "http", "security"
// The full name will be "github.com/giantswarm/social-connector/{scope}"
func (i *Instrumentation) Meter(scope string) metric.Meter {
	return i.meterProvider.Meter(instrumentationPrefix + scope)
}

// Tracer returns a named tracer for the given scope
// Scopes are layer names like "connector", "http", "security"
// The full name will be "github.com/giantswarm/social-connector/{scope}"
func (i *Instrumentation) Tracer(scope string) trace.Tracer {
	return i.tracerProvider.Tracer(instrumentationPrefix + scope)
}

// Metrics returns the metrics holder for recording metric values
func (i *Instrumentation) Metrics() *Metrics {
	return i.metrics
}

// TracerProvider returns the underlying tracer provider
func (i *Instrumentation) TracerProvider() trace.TracerProvider {
	return i.tracerProvider
}

// MeterProvider returns the underlying meter provider
func (i *Instrumentation) MeterProvider() metric.MeterProvider {
	return i.meterProvider
}

// Resource returns the resource describing this service
func (i *Instrumentation) Resource() *resource.Resource {
	return i.resource
}
