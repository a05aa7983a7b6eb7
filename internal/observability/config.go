package observability

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/gorkem/vscode-github-issue-notebooks/internal/version"
)

// Config holds the observability configuration for a project container.
type Config struct {
	// TracerProvider is the OpenTelemetry tracer provider.
	// If nil, tracing is disabled.
	TracerProvider trace.TracerProvider

	// MeterProvider is the OpenTelemetry meter provider.
	// If nil, metrics collection is disabled.
	MeterProvider metric.MeterProvider

	// ServiceName identifies the embedding application in traces and metrics.
	ServiceName string

	// ServiceVersion is the version of the embedding application.
	ServiceVersion string

	tracer  *Tracer
	metrics *Metrics
}

// Option is a functional option for configuring observability.
type Option func(*Config)

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Config) {
		c.MeterProvider = mp
	}
}

// WithServiceName sets the service name for identification.
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// WithServiceVersion sets the service version for identification.
func WithServiceVersion(v string) Option {
	return func(c *Config) {
		c.ServiceVersion = v
	}
}

// NewConfig builds a configuration. Providers left unset fall back to
// no-op implementations.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		ServiceName:    "issueql",
		ServiceVersion: version.Version,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.TracerProvider != nil {
		cfg.tracer = NewTracer(cfg.TracerProvider, cfg.ServiceName)
	} else {
		cfg.tracer = NewNoopTracer()
	}
	if cfg.MeterProvider != nil {
		cfg.metrics = NewMetrics(cfg.MeterProvider)
	} else {
		cfg.metrics = NewNoopMetrics()
	}
	return cfg
}

// Tracer returns the configured tracer, or a no-op tracer if not
// configured. Safe on a nil or struct-literal Config that never went
// through NewConfig; a provider set on such a literal is still honored.
func (c *Config) Tracer() *Tracer {
	if c == nil || c.tracer == nil {
		if c != nil && c.TracerProvider != nil {
			return NewTracer(c.TracerProvider, c.ServiceName)
		}
		return NewNoopTracer()
	}
	return c.tracer
}

// Metrics returns the configured metrics, or a no-op metrics if not
// configured. Safe on a nil or struct-literal Config.
func (c *Config) Metrics() *Metrics {
	if c == nil || c.metrics == nil {
		if c != nil && c.MeterProvider != nil {
			return NewMetrics(c.MeterProvider)
		}
		return NewNoopMetrics()
	}
	return c.metrics
}
