package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the metric instruments of a project container.
type Metrics struct {
	parseDuration   metric.Float64Histogram
	parseCount      metric.Int64Counter
	documentCount   metric.Int64UpDownCounter
	diagnosticCount metric.Int64Histogram
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Instrument creation only fails on invalid parameters; fall back to
	// the undescribed instrument so recording keeps working.
	var err error

	m.parseDuration, err = meter.Float64Histogram(
		"issueql.parse.duration",
		metric.WithDescription("Duration of document parses in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.parseDuration, _ = meter.Float64Histogram("issueql.parse.duration")
	}

	m.parseCount, err = meter.Int64Counter(
		"issueql.parse.count",
		metric.WithDescription("Total number of document parses"),
		metric.WithUnit("{parse}"),
	)
	if err != nil {
		m.parseCount, _ = meter.Int64Counter("issueql.parse.count")
	}

	m.documentCount, err = meter.Int64UpDownCounter(
		"issueql.document.count",
		metric.WithDescription("Number of documents currently registered"),
		metric.WithUnit("{document}"),
	)
	if err != nil {
		m.documentCount, _ = meter.Int64UpDownCounter("issueql.document.count")
	}

	m.diagnosticCount, err = meter.Int64Histogram(
		"issueql.diagnostic.count",
		metric.WithDescription("Number of syntactic gaps per parsed document"),
		metric.WithUnit("{diagnostic}"),
	)
	if err != nil {
		m.diagnosticCount, _ = meter.Int64Histogram("issueql.diagnostic.count")
	}

	return m
}

// RecordParse records metrics for one completed parse.
func (m *Metrics) RecordParse(ctx context.Context, duration time.Duration, diagnostics int, cacheHit bool) {
	attrs := metric.WithAttributes(CacheHitAttr(cacheHit))
	m.parseCount.Add(ctx, 1, attrs)
	m.parseDuration.Record(ctx, float64(duration.Microseconds())/1000.0, attrs)
	m.diagnosticCount.Record(ctx, int64(diagnostics), attrs)
}

// AddDocuments adjusts the registered document gauge by delta.
func (m *Metrics) AddDocuments(ctx context.Context, delta int64) {
	m.documentCount.Add(ctx, delta)
}
