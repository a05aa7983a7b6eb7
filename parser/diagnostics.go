package parser

// Diagnostic is one reportable syntactic gap: the zero-width position of a
// Missing node and its message.
type Diagnostic struct {
	Start   int
	End     int
	Message string
}

// Diagnostics collects every Missing node of the tree, in document order.
// This is the canonical way for consumers to surface parse problems, the
// parser itself never returns an error.
func Diagnostics(node Node) []Diagnostic {
	var out []Diagnostic
	Walk(node, func(n, _ Node) {
		if m, ok := n.(*Missing); ok {
			out = append(out, Diagnostic{Start: m.Pos(), End: m.End(), Message: m.Message})
		}
	})
	return out
}
