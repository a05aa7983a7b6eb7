package parser

// Visitor is called for every node together with its direct parent; the
// parent of the root is nil.
type Visitor func(node, parent Node)

// Walk visits every node of the tree in document order: a node before its
// children, siblings in their textual order.
func Walk(node Node, visitor Visitor) {
	walk(node, nil, visitor)
}

func walk(node, parent Node, visitor Visitor) {
	if node == nil {
		return
	}
	visitor(node, parent)

	switch n := node.(type) {
	case *QueryDocument:
		for _, child := range n.Nodes {
			walk(child, n, visitor)
		}
	case *VariableDefinition:
		walk(n.Name, n, visitor)
		walk(n.Value, n, visitor)
	case *OrExpression:
		walk(n.Left, n, visitor)
		walk(n.Right, n, visitor)
	case *Query:
		for _, child := range n.Nodes {
			walk(child, n, visitor)
		}
		if n.SortBy != nil {
			walk(n.SortBy, n, visitor)
		}
	case *SortBy:
		walk(n.Criteria, n, visitor)
	case *QualifiedValue:
		walk(n.Qualifier, n, visitor)
		walk(n.Value, n, visitor)
	case *Compare:
		walk(n.Value, n, visitor)
	case *Range:
		walk(n.Open, n, visitor)
		walk(n.Close, n, visitor)
	}
}

// ContainsPosition reports whether offset lies within the span of node,
// inclusive on both ends so that a cursor sitting right after the last
// character still hits the node.
func ContainsPosition(node Node, offset int) bool {
	return node.Pos() <= offset && offset <= node.End()
}

// NodeAt returns the most specific node whose span contains offset, or nil.
// The traversal is pre-order, so the last matching node is the deepest (or
// the latest zero-width sibling at that point), which is what callers
// positioning a cursor need.
func NodeAt(node Node, offset int) Node {
	var found Node
	Walk(node, func(n, _ Node) {
		if ContainsPosition(n, offset) {
			found = n
		}
	})
	return found
}

// PathAt returns the chain of nodes containing offset, from the root down
// to the node NodeAt would return. It returns nil when nothing matches.
func PathAt(node Node, offset int) []Node {
	var path []Node
	Walk(node, func(n, parent Node) {
		if !ContainsPosition(n, offset) {
			return
		}
		if parent == nil {
			path = path[:0]
		} else {
			for len(path) > 0 && path[len(path)-1] != parent {
				path = path[:len(path)-1]
			}
		}
		path = append(path, n)
	})
	return path
}
