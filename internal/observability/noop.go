package observability

import (
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NewNoopTracer creates a tracer that does nothing.
func NewNoopTracer() *Tracer {
	return &Tracer{
		tracer:      tracenoop.NewTracerProvider().Tracer(""),
		serviceName: "",
	}
}

// NewNoopMetrics creates metrics that do nothing.
func NewNoopMetrics() *Metrics {
	meter := noop.NewMeterProvider().Meter("")
	m := &Metrics{}

	// Note: noop meter never returns errors, but we must check them to satisfy the linter.
	m.parseDuration, _ = meter.Float64Histogram("issueql.parse.duration")     //nolint:errcheck
	m.parseCount, _ = meter.Int64Counter("issueql.parse.count")               //nolint:errcheck
	m.documentCount, _ = meter.Int64UpDownCounter("issueql.document.count")   //nolint:errcheck
	m.diagnosticCount, _ = meter.Int64Histogram("issueql.diagnostic.count")   //nolint:errcheck

	return m
}
