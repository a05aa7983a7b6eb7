package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeTypeName(n Node) string {
	switch n.(type) {
	case *QueryDocument:
		return "QueryDocument"
	case *VariableDefinition:
		return "VariableDefinition"
	case *VariableName:
		return "VariableName"
	case *OrExpression:
		return "OrExpression"
	case *Query:
		return "Query"
	case *SortBy:
		return "SortBy"
	case *QualifiedValue:
		return "QualifiedValue"
	case *Compare:
		return "Compare"
	case *Range:
		return "Range"
	case *Literal:
		return "Literal"
	case *Number:
		return "Number"
	case *Date:
		return "Date"
	case *Any:
		return "Any"
	case *Missing:
		return "Missing"
	}
	return fmt.Sprintf("%T", n)
}

func TestWalkOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "Definition name before value",
			input: "${x}=bug",
			expected: []string{
				"QueryDocument", "VariableDefinition", "VariableName", "Query", "Literal",
			},
		},
		{
			name:  "Qualifier before value, range open before close",
			input: "created:2020-01-01..2020-02-01",
			expected: []string{
				"QueryDocument", "Query", "QualifiedValue", "Literal", "Range", "Date", "Date",
			},
		},
		{
			name:  "Query nodes before sort-by",
			input: "label:bug sort-by:comments",
			expected: []string{
				"QueryDocument", "Query", "QualifiedValue", "Literal", "Literal", "SortBy", "Literal",
			},
		},
		{
			name:  "Or left before right",
			input: "a OR b",
			expected: []string{
				"QueryDocument", "OrExpression", "Query", "Literal", "Query", "Literal",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			Walk(Parse(tt.input), func(n, _ Node) {
				visited = append(visited, nodeTypeName(n))
			})
			assert.Equal(t, tt.expected, visited)
		})
	}
}

func TestWalkParents(t *testing.T) {
	doc := Parse("label:bug")
	var roots int
	Walk(doc, func(n, parent Node) {
		if parent == nil {
			roots++
			assert.Same(t, doc, n)
			return
		}
		assert.True(t, ContainsPosition(parent, n.Pos()))
	})
	assert.Equal(t, 1, roots)
}

func TestContainsPosition(t *testing.T) {
	doc := Parse("label:bug")
	query := doc.Nodes[0].(*Query)
	qv := query.Nodes[0].(*QualifiedValue)

	assert.True(t, ContainsPosition(qv, 0))
	assert.True(t, ContainsPosition(qv, 9), "end is inclusive")
	assert.False(t, ContainsPosition(qv.Qualifier, 6))
	assert.True(t, ContainsPosition(qv.Qualifier, 5))
}

func TestNodeAtPrecision(t *testing.T) {
	doc := Parse("label:bug")

	// Inside "bug" the innermost node is the value literal, not the
	// enclosing qualified value.
	node := NodeAt(doc, 7)
	lit, ok := node.(*Literal)
	require.True(t, ok)
	assert.Equal(t, "bug", lit.Value)

	// Inside "label" it is the qualifier literal.
	node = NodeAt(doc, 2)
	lit, ok = node.(*Literal)
	require.True(t, ok)
	assert.Equal(t, "label", lit.Value)

	assert.Nil(t, NodeAt(doc, 99))
}

func TestNodeAtMissing(t *testing.T) {
	doc := Parse("label:")
	node := NodeAt(doc, 6)
	assert.IsType(t, &Missing{}, node)
}

func TestPathAt(t *testing.T) {
	doc := Parse("label:bug")
	path := PathAt(doc, 7)
	require.Len(t, path, 4)
	assert.IsType(t, &QueryDocument{}, path[0])
	assert.IsType(t, &Query{}, path[1])
	assert.IsType(t, &QualifiedValue{}, path[2])
	lit, ok := path[3].(*Literal)
	require.True(t, ok)
	assert.Equal(t, "bug", lit.Value)

	assert.Nil(t, PathAt(doc, 99))
}
