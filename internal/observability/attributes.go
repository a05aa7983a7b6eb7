// Package observability provides OpenTelemetry-based instrumentation for
// the project document container.
//
// All observability features are opt-in. When not configured, no-op
// implementations are used with zero performance overhead. The parser core
// itself is not instrumented, spans and metrics are recorded at the
// container level.
package observability

import "go.opentelemetry.io/otel/attribute"

// Instrumentation identity constants
const (
	// TracerName is the instrumentation name for tracing.
	TracerName = "github.com/gorkem/vscode-github-issue-notebooks"
	// MeterName is the instrumentation name for metrics.
	MeterName = "github.com/gorkem/vscode-github-issue-notebooks"
)

// Semantic attribute keys used on spans and metrics.
const (
	AttrDocumentKey     = "issueql.document.key"
	AttrOperation       = "issueql.operation"
	AttrTextLength      = "issueql.text.length"
	AttrDiagnosticCount = "issueql.diagnostic.count"
	AttrCacheHit        = "issueql.cache.hit"
)

// Operation names recorded under AttrOperation.
const (
	OpParse  = "parse"
	OpGet    = "get"
	OpDelete = "delete"
)

// DocumentKeyAttr returns the document key attribute.
func DocumentKeyAttr(key string) attribute.KeyValue {
	return attribute.String(AttrDocumentKey, key)
}

// OperationAttr returns the operation attribute.
func OperationAttr(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// TextLengthAttr returns the source text length attribute.
func TextLengthAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrTextLength, n)
}

// DiagnosticCountAttr returns the diagnostic count attribute.
func DiagnosticCountAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrDiagnosticCount, n)
}

// CacheHitAttr returns the parse cache hit attribute.
func CacheHitAttr(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrCacheHit, hit)
}
