package parser

import "github.com/shopspring/decimal"

// Node represents a node in the query syntax tree. Every node covers a
// half-open span of the source text; spans of children are contained in the
// span of their parent. The set of implementations is closed, traversal and
// printing switch exhaustively over it.
type Node interface {
	// Pos returns the byte offset of the first character of the node.
	Pos() int
	// End returns the byte offset after the last character of the node.
	End() int

	queryNode()
}

// span carries the immutable source offsets shared by all node variants.
type span struct {
	start int
	end   int
}

func (s span) Pos() int { return s.start }
func (s span) End() int { return s.end }

// QueryDocument is the root node, the ordered sequence of variable
// definitions, queries, and OR-expressions of one source text.
type QueryDocument struct {
	span
	Nodes []Node
}

func (n *QueryDocument) queryNode() {}

// VariableDefinition binds a variable name to a query (${name}=query).
// Value is a *Query, or a *Missing when the right-hand side is absent.
type VariableDefinition struct {
	span
	Name  *VariableName
	Value Node
}

func (n *VariableDefinition) queryNode() {}

// VariableName is a ${name} occurrence, either as a definition target or as
// a reference inside a query. Value is the verbatim ${name} spelling.
type VariableName struct {
	span
	Value string
}

func (n *VariableName) queryNode() {}

// OrExpression is a branch point between two alternative queries. Right is
// a *Query or another *OrExpression, so a OR b OR c associates to the
// right as a OR (b OR c).
type OrExpression struct {
	span
	Left  *Query
	Right Node
	Or    Token
}

func (n *OrExpression) queryNode() {}

// Query is one filter line or OR-branch segment: an ordered sequence of
// content nodes with an optional trailing sort-by clause.
type Query struct {
	span
	Nodes  []Node
	SortBy *SortBy
}

func (n *Query) queryNode() {}

// SortBy is the trailing sort modifier of a query. Criteria is a *Literal,
// or a *Missing when no criteria follows the keyword.
type SortBy struct {
	span
	Keyword  Token
	Criteria Node
}

func (n *SortBy) queryNode() {}

// QualifiedValue is a name:value filter, optionally negated (-name:value).
type QualifiedValue struct {
	span
	Not       bool
	Qualifier *Literal
	Value     Node
}

func (n *QualifiedValue) queryNode() {}

// Compare is a comparator applied to a date or number, e.g. >=10.
// Value is a *Date, *Number, or *Missing.
type Compare struct {
	span
	Comparator string
	Value      Node
}

func (n *Compare) queryNode() {}

// Range is a value interval. Open and Close are *Date or *Number; an
// absent bound is nil, but never both (Close may also be a *Missing when
// the text ends after the range operator).
type Range struct {
	span
	Open  Node
	Close Node
}

func (n *Range) queryNode() {}

// Literal is a bare word or a quoted string. For quoted literals Value
// holds the text between the quotes; the span still covers the quotes.
type Literal struct {
	span
	Value string
}

func (n *Literal) queryNode() {}

// Number is an integer literal.
type Number struct {
	span
	Value decimal.Decimal
}

func (n *Number) queryNode() {}

// Date is an ISO-like date or date-time literal. The value is kept as
// written, it is not semantically validated.
type Date struct {
	span
	Value string
}

func (n *Date) queryNode() {}

// Any wraps a token the grammar had no better place for, so that no input
// is ever dropped.
type Any struct {
	span
	TokenType TokenType
}

func (n *Any) queryNode() {}

// Missing marks a syntactic gap: a required value or criteria that is not
// present in the text. It has a zero-width span at the gap position and a
// human-readable message. Parsing never fails, it emits Missing nodes.
type Missing struct {
	span
	Message string
}

func (n *Missing) queryNode() {}
