package parser

import "strings"

// PrintContext supplies what rendering needs beyond the tree itself: the
// original source text the spans point into, and the resolved value per
// variable name (keyed by the verbatim ${name} spelling).
type PrintContext struct {
	Text      string
	Variables map[string]string
}

// Print renders a node back to query text. Plain values render as their
// verbatim source substring, variable references render as their resolved
// value (or their ${name} form when unresolved), variable definitions and
// missing nodes render as nothing, and a query ignores its sort-by clause.
// For a document or OR-expression, the branch renderings of PrintAll are
// joined with newlines.
func Print(node Node, ctx PrintContext) string {
	switch n := node.(type) {
	case *QueryDocument, *OrExpression:
		return strings.Join(PrintAll(node, ctx), "\n")
	case *Query:
		var sb strings.Builder
		var prev Node
		for _, child := range n.Nodes {
			// A space is emitted only where the source had one, so
			// adjacent tokens stay adjacent.
			if prev != nil && child.Pos() > prev.End() {
				sb.WriteByte(' ')
			}
			sb.WriteString(Print(child, ctx))
			prev = child
		}
		return sb.String()
	case *QualifiedValue:
		var sb strings.Builder
		if n.Not {
			sb.WriteByte('-')
		}
		sb.WriteString(Print(n.Qualifier, ctx))
		sb.WriteByte(':')
		sb.WriteString(Print(n.Value, ctx))
		return sb.String()
	case *Compare:
		return n.Comparator + Print(n.Value, ctx)
	case *Range:
		switch {
		case n.Open != nil && n.Close != nil:
			return Print(n.Open, ctx) + ".." + Print(n.Close, ctx)
		case n.Open != nil:
			return Print(n.Open, ctx) + "..*"
		default:
			return "*.." + Print(n.Close, ctx)
		}
	case *VariableName:
		if value, ok := ctx.Variables[n.Value]; ok {
			return value
		}
		return n.Value
	case *VariableDefinition, *Missing:
		return ""
	case *Literal, *Number, *Date, *Any, *SortBy:
		return ctx.Text[node.Pos():node.End()]
	}
	return ""
}

// PrintAll renders a node into one query string per OR-branch. An
// OR-expression contributes the flattened renderings of both sides, a
// document the flattened renderings of all its queries; variable
// definitions and missing nodes contribute no entries. Any other node
// renders to a single entry.
func PrintAll(node Node, ctx PrintContext) []string {
	switch n := node.(type) {
	case *QueryDocument:
		out := make([]string, 0, len(n.Nodes))
		for _, child := range n.Nodes {
			out = append(out, PrintAll(child, ctx)...)
		}
		return out
	case *OrExpression:
		return append(PrintAll(n.Left, ctx), PrintAll(n.Right, ctx)...)
	case *VariableDefinition, *Missing:
		return nil
	}
	return []string{Print(node, ctx)}
}
