package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestNewConfigDefaultsToNoop(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg.Tracer())
	require.NotNil(t, cfg.Metrics())
	assert.Equal(t, "issueql", cfg.ServiceName)
	assert.NotEmpty(t, cfg.ServiceVersion)
}

func TestNewConfigWithProviders(t *testing.T) {
	cfg := NewConfig(
		WithTracerProvider(tracenoop.NewTracerProvider()),
		WithMeterProvider(noop.NewMeterProvider()),
		WithServiceName("notebook"),
		WithServiceVersion("1.2.3"),
	)
	assert.Equal(t, "notebook", cfg.ServiceName)
	assert.Equal(t, "1.2.3", cfg.ServiceVersion)
	require.NotNil(t, cfg.Tracer())
	require.NotNil(t, cfg.Metrics())
}

// A Config built as a raw struct literal never ran NewConfig; the
// accessors must still hand out working instances.
func TestAccessorsOnRawConfig(t *testing.T) {
	cfg := &Config{}
	require.NotNil(t, cfg.Tracer())
	require.NotNil(t, cfg.Metrics())

	ctx, span := cfg.Tracer().StartParse(context.Background(), "cell", 9)
	span.End()
	cfg.Metrics().RecordParse(ctx, time.Millisecond, 0, false)

	// A provider set on a raw literal is honored, not silently nooped.
	withProviders := &Config{
		TracerProvider: tracenoop.NewTracerProvider(),
		MeterProvider:  noop.NewMeterProvider(),
	}
	require.NotNil(t, withProviders.Tracer())
	require.NotNil(t, withProviders.Metrics())
}

func TestAccessorsOnNilConfig(t *testing.T) {
	var cfg *Config
	require.NotNil(t, cfg.Tracer())
	require.NotNil(t, cfg.Metrics())
}

func TestTracerSpans(t *testing.T) {
	tracer := NewNoopTracer()
	ctx := context.Background()

	ctx, span := tracer.StartParse(ctx, "doc-1", 42)
	tracer.SetDiagnosticCount(ctx, 2)
	span.End()

	_, span = tracer.StartDocumentOp(ctx, OpDelete, "doc-1")
	span.End()
}

func TestMetricsRecording(t *testing.T) {
	ctx := context.Background()
	for _, m := range []*Metrics{NewNoopMetrics(), NewMetrics(noop.NewMeterProvider())} {
		m.RecordParse(ctx, 5*time.Millisecond, 1, false)
		m.RecordParse(ctx, time.Millisecond, 0, true)
		m.AddDocuments(ctx, 1)
		m.AddDocuments(ctx, -1)
	}
}
