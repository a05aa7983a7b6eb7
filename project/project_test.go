package project

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorkem/vscode-github-issue-notebooks/internal/observability"
	"github.com/gorkem/vscode-github-issue-notebooks/parser"
)

func TestPutAndGet(t *testing.T) {
	p := New()
	ctx := context.Background()

	doc, err := p.Put(ctx, "cell-1", "label:bug")
	require.NoError(t, err)
	assert.Equal(t, "cell-1", doc.Key)
	assert.Equal(t, "label:bug", doc.Text)
	require.NotNil(t, doc.Doc)
	require.Len(t, doc.Doc.Nodes, 1)

	got, err := p.Get("cell-1")
	require.NoError(t, err)
	assert.Same(t, doc, got)
}

func TestPutGeneratesKey(t *testing.T) {
	p := New()
	doc, err := p.Put(context.Background(), "", "label:bug")
	require.NoError(t, err)
	require.NotEmpty(t, doc.Key)
	_, err = uuid.Parse(doc.Key)
	assert.NoError(t, err)
}

func TestPutSkipsReparseOnSameContent(t *testing.T) {
	p := New()
	ctx := context.Background()

	first, err := p.Put(ctx, "cell-1", "label:bug")
	require.NoError(t, err)
	second, err := p.Put(ctx, "cell-1", "label:bug")
	require.NoError(t, err)
	assert.Same(t, first, second, "identical content must reuse the parse")

	third, err := p.Put(ctx, "cell-1", "label:feature")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, "label:feature", third.Text)
	assert.Equal(t, 1, p.Len())
}

// Registering a project built from a raw observability struct literal
// must not panic, the accessors fall back to no-op instruments.
func TestPutWithRawObservabilityConfig(t *testing.T) {
	p := NewWithConfig(Config{Observability: &observability.Config{}})
	doc, err := p.Put(context.Background(), "cell", "label:bug")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "label:bug", doc.Text)
}

// A cache hit on a document with gaps still travels the metrics path with
// the document's real diagnostic count.
func TestPutCacheHitKeepsDiagnostics(t *testing.T) {
	p := New()
	ctx := context.Background()

	first, err := p.Put(ctx, "cell", "label:")
	require.NoError(t, err)
	second, err := p.Put(ctx, "cell", "label:")
	require.NoError(t, err)
	assert.Same(t, first, second)

	diags, err := p.Diagnostics("cell")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "expected value", diags[0].Message)
}

func TestPutHonorsContextCancellation(t *testing.T) {
	p := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Put(ctx, "cell-1", "label:bug")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetNotFound(t *testing.T) {
	p := New()
	_, err := p.Get("nope")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDeleteAndKeys(t *testing.T) {
	p := New()
	ctx := context.Background()
	_, err := p.Put(ctx, "a", "one")
	require.NoError(t, err)
	_, err = p.Put(ctx, "b", "two")
	require.NoError(t, err)
	_, err = p.Put(ctx, "c", "three")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, p.Keys())
	assert.True(t, p.Delete("b"))
	assert.False(t, p.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, p.Keys())
	assert.Equal(t, 2, p.Len())
}

func TestVariablesResolveInOrder(t *testing.T) {
	p := New()
	ctx := context.Background()
	_, err := p.Put(ctx, "vars", "${base}=label:bug\n${mine}=${base} assignee:bob")
	require.NoError(t, err)

	values := p.Variables()
	assert.Equal(t, "label:bug", values["${base}"])
	assert.Equal(t, "label:bug assignee:bob", values["${mine}"])
}

func TestVariablesAcrossDocuments(t *testing.T) {
	p := New()
	ctx := context.Background()
	_, err := p.Put(ctx, "first", "${base}=label:bug")
	require.NoError(t, err)
	_, err = p.Put(ctx, "second", "${base} milestone:1")
	require.NoError(t, err)

	queries, err := p.Queries("second")
	require.NoError(t, err)
	assert.Equal(t, []string{"label:bug milestone:1"}, queries)
}

// A reference to a variable defined only later in the project renders as
// its literal ${name} form at resolution time.
func TestVariablesForwardReference(t *testing.T) {
	p := New()
	ctx := context.Background()
	_, err := p.Put(ctx, "uses", "${later}=${missing} extra")
	require.NoError(t, err)

	values := p.Variables()
	assert.Equal(t, "${missing} extra", values["${later}"])
}

func TestQueriesFlattenOrBranches(t *testing.T) {
	p := New()
	ctx := context.Background()
	_, err := p.Put(ctx, "cell", "label:bug OR label:feature")
	require.NoError(t, err)

	queries, err := p.Queries("cell")
	require.NoError(t, err)
	assert.Equal(t, []string{"label:bug", "label:feature"}, queries)

	_, err = p.Queries("nope")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestAllQueries(t *testing.T) {
	p := New()
	ctx := context.Background()
	_, err := p.Put(ctx, "vars", "${base}=label:bug")
	require.NoError(t, err)
	_, err = p.Put(ctx, "one", "${base} milestone:1")
	require.NoError(t, err)
	_, err = p.Put(ctx, "two", "a OR b")
	require.NoError(t, err)

	assert.Equal(t, []string{"label:bug milestone:1", "a", "b"}, p.AllQueries())
}

func TestDiagnosticsReportGapsAndUndefinedVariables(t *testing.T) {
	p := New()
	ctx := context.Background()
	_, err := p.Put(ctx, "cell", "label: ${ghost}")
	require.NoError(t, err)

	diags, err := p.Diagnostics("cell")
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, "expected value", diags[0].Message)
	assert.Equal(t, "undefined variable ${ghost}", diags[1].Message)
	assert.Equal(t, 7, diags[1].Start)
	assert.Equal(t, 15, diags[1].End)

	_, err = p.Diagnostics("nope")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

// A definition target is a declaration, not an undefined reference.
func TestDiagnosticsIgnoreDefinitionTargets(t *testing.T) {
	p := New()
	ctx := context.Background()
	_, err := p.Put(ctx, "cell", "${base}=label:bug\n${base}")
	require.NoError(t, err)

	diags, err := p.Diagnostics("cell")
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestDocumentTreeIsUsable(t *testing.T) {
	p := New()
	doc, err := p.Put(context.Background(), "cell", "label:bug")
	require.NoError(t, err)

	node := parser.NodeAt(doc.Doc, 7)
	lit, ok := node.(*parser.Literal)
	require.True(t, ok)
	assert.Equal(t, "bug", lit.Value)
}
