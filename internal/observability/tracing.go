package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer with span creation methods for the
// document container operations.
type Tracer struct {
	tracer      trace.Tracer
	serviceName string
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider, serviceName string) *Tracer {
	return &Tracer{
		tracer:      tp.Tracer(TracerName),
		serviceName: serviceName,
	}
}

// StartSpan starts a new span with the given name and attributes.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartParse starts a span for parsing and registering a document.
func (t *Tracer) StartParse(ctx context.Context, key string, textLength int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "issueql.parse", trace.WithAttributes(
		OperationAttr(OpParse),
		DocumentKeyAttr(key),
		TextLengthAttr(textLength),
	))
}

// StartDocumentOp starts a span for a non-parsing document operation.
func (t *Tracer) StartDocumentOp(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "issueql."+op, trace.WithAttributes(
		OperationAttr(op),
		DocumentKeyAttr(key),
	))
}

// SetDiagnosticCount records the diagnostic count on the current span.
func (t *Tracer) SetDiagnosticCount(ctx context.Context, count int) {
	trace.SpanFromContext(ctx).SetAttributes(DiagnosticCountAttr(count))
}
