// Package parser implements the issue search query language: a scanner, an
// error-tolerant recursive descent parser, and utilities to traverse and
// print the resulting tree.
//
// Parsing is total. Malformed input never produces an error, it produces a
// tree with Missing placeholder nodes where required pieces are absent and
// Any nodes wrapping tokens the grammar could not place.
package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parser turns query text into a QueryDocument. A Parser holds mutable
// cursor state and must not be shared across concurrent Parse calls; the
// trees it returns are immutable and freely shareable.
type Parser struct {
	scanner *Scanner
	tok     Token
}

// NewParser creates a parser. The same instance may be reused for
// sequential Parse calls.
func NewParser() *Parser {
	return &Parser{scanner: NewScanner("")}
}

// Parse parses text with a fresh parser.
func Parse(text string) *QueryDocument {
	return NewParser().Parse(text)
}

// Parse parses one source text into its document tree.
func (p *Parser) Parse(text string) *QueryDocument {
	p.scanner.Reset(text)
	p.tok = p.scanner.Next()

	var nodes []Node
	for p.tok.Type != TokenEOF {
		switch p.tok.Type {
		case TokenWhitespace, TokenNewLine, TokenLineComment:
			p.next()
			continue
		}
		if def := p.parseVariableDefinition(); def != nil {
			nodes = append(nodes, def)
			continue
		}
		if q := p.parseQuery(true); q != nil {
			nodes = append(nodes, q)
		}
	}
	return &QueryDocument{span: span{0, len(text)}, Nodes: nodes}
}

// next consumes and returns the current token.
func (p *Parser) next() Token {
	tok := p.tok
	p.tok = p.scanner.Next()
	return tok
}

// accept consumes the current token if it has the given type. It matches
// exact types and does not skip trivia, whitespace inside a construct
// breaks the construct.
func (p *Parser) accept(t TokenType) (Token, bool) {
	if p.tok.Type != t {
		return Token{}, false
	}
	return p.next(), true
}

// restore rewinds the scanner to the start of tok and reloads the
// lookahead. Token boundaries are stable, so rescanning yields the same
// token again; this is the backtracking primitive behind every speculative
// production.
func (p *Parser) restore(tok Token) {
	p.scanner.ResetPosition(tok)
	p.tok = p.scanner.Next()
}

func (p *Parser) missing(message string) *Missing {
	return &Missing{span: span{p.tok.Start, p.tok.Start}, Message: message}
}

// parseVariableDefinition parses ${name}=query. The right-hand side is
// parsed with OR disabled, a definition cannot branch. On anything short of
// "${name}=" it rewinds completely and returns nil.
func (p *Parser) parseVariableDefinition() Node {
	anchor := p.tok
	name := p.parseVariableName()
	if name == nil {
		return nil
	}
	if _, ok := p.accept(TokenEquals); !ok {
		p.restore(anchor)
		return nil
	}
	value := p.parseQuery(false)
	if value == nil {
		value = p.missing("query expected")
	}
	return &VariableDefinition{span: span{name.Pos(), value.End()}, Name: name, Value: value}
}

// parseQuery parses content until a newline or EOF. It returns a *Query,
// an *OrExpression when allowOR and a speculative OR continuation
// succeeds, or nil when the line holds no content at all.
func (p *Parser) parseQuery(allowOR bool) Node {
	var nodes []Node
	var sortby *SortBy

	for {
		if p.tok.Type == TokenEOF || p.tok.Type == TokenNewLine {
			break
		}
		if p.tok.Type == TokenWhitespace || p.tok.Type == TokenLineComment {
			p.next()
			continue
		}

		// More content follows, so a previously captured sort-by did
		// not terminate the query after all. Demote its keyword to a
		// plain literal and re-emit its criteria as content.
		if sortby != nil {
			nodes = append(nodes, &Literal{
				span:  span{sortby.Keyword.Start, sortby.Keyword.End},
				Value: p.scanner.Value(sortby.Keyword),
			})
			if _, gap := sortby.Criteria.(*Missing); !gap {
				nodes = append(nodes, sortby.Criteria)
			}
			sortby = nil
		}

		if allowOR && len(nodes) > 0 && p.tok.Type == TokenOR {
			anchor := p.next()
			if right := p.parseQuery(allowOR); right != nil {
				left := &Query{span: span{nodes[0].Pos(), nodes[len(nodes)-1].End()}, Nodes: nodes}
				return &OrExpression{span: span{left.Pos(), right.End()}, Left: left, Right: right, Or: anchor}
			}
			// Nothing follows the OR, it degrades to plain content.
			p.restore(anchor)
			tok := p.next()
			nodes = append(nodes, &Any{span: span{tok.Start, tok.End}, TokenType: tok.Type})
			continue
		}

		if len(nodes) > 0 && (p.tok.Type == TokenSortAscBy || p.tok.Type == TokenSortDescBy) {
			sortby = p.parseSortBy()
			continue
		}

		nodes = append(nodes, p.parseContent())
	}

	if len(nodes) == 0 {
		return nil
	}
	end := nodes[len(nodes)-1].End()
	if sortby != nil && sortby.End() > end {
		end = sortby.End()
	}
	return &Query{span: span{nodes[0].Pos(), end}, Nodes: nodes, SortBy: sortby}
}

func (p *Parser) parseSortBy() *SortBy {
	keyword := p.next()
	var criteria Node
	if lit := p.parseBareLiteral(); lit != nil {
		criteria = lit
	} else {
		criteria = p.missing("expected sort criteria")
	}
	return &SortBy{span: span{keyword.Start, criteria.End()}, Keyword: keyword, Criteria: criteria}
}

// parseContent parses one content node of a query. The alternatives are
// tried in order and each either fully consumes or fully rewinds, so the
// final catch-all always has the original token to wrap.
func (p *Parser) parseContent() Node {
	if n := p.parseQualifiedValue(); n != nil {
		return n
	}
	if n := p.parseNumber(); n != nil {
		return n
	}
	if n := p.parseVariableName(); n != nil {
		return n
	}
	if n := p.parseBareLiteral(); n != nil {
		return n
	}
	tok := p.next()
	return &Any{span: span{tok.Start, tok.End}, TokenType: tok.Type}
}

// parseQualifiedValue parses [-]qualifier:value. Qualifier and colon must
// both be present, otherwise the whole production rewinds; once they
// matched a node is always produced, at worst with a Missing value.
func (p *Parser) parseQualifiedValue() Node {
	anchor := p.tok
	dash, not := p.accept(TokenDash)
	qualifier, ok := p.accept(TokenLiteral)
	if !ok {
		p.restore(anchor)
		return nil
	}
	if _, ok := p.accept(TokenColon); !ok {
		p.restore(anchor)
		return nil
	}
	value := p.parseValue()
	start := qualifier.Start
	if not {
		start = dash.Start
	}
	return &QualifiedValue{
		span:      span{start, value.End()},
		Not:       not,
		Qualifier: &Literal{span: span{qualifier.Start, qualifier.End}, Value: p.scanner.Value(qualifier)},
		Value:     value,
	}
}

// parseValue resolves the right-hand side of "qualifier:". It always
// returns a node; when nothing usable follows, a Missing placeholder.
func (p *Parser) parseValue() Node {
	if n := p.parseCompare(); n != nil {
		return n
	}
	if n := p.parseRangeFixedEnd(); n != nil {
		return n
	}
	if open := p.parseBound(); open != nil {
		return p.parseRangeTail(open)
	}
	if n := p.parseVariableName(); n != nil {
		return n
	}
	if n := p.parseBareLiteral(); n != nil {
		return n
	}
	if tok, ok := p.accept(TokenSHA); ok {
		return &Any{span: span{tok.Start, tok.End}, TokenType: tok.Type}
	}
	return p.missing("expected value")
}

// parseBound parses a single range or comparison bound, a date or number.
func (p *Parser) parseBound() Node {
	switch p.tok.Type {
	case TokenDate, TokenDateTime:
		tok := p.next()
		return &Date{span: span{tok.Start, tok.End}, Value: p.scanner.Value(tok)}
	case TokenNumber:
		return p.parseNumber()
	}
	return nil
}

// parseRangeTail extends an already parsed bound into a range when a range
// operator follows; otherwise the bound stands on its own.
func (p *Parser) parseRangeTail(open Node) Node {
	if _, ok := p.accept(TokenRange); ok {
		close := p.parseBound()
		if close == nil {
			close = p.missing("expected number or date")
		}
		return &Range{span: span{open.Pos(), close.End()}, Open: open, Close: close}
	}
	if tok, ok := p.accept(TokenRangeFixedStart); ok {
		return &Range{span: span{open.Pos(), tok.End}, Open: open}
	}
	return open
}

// parseRangeFixedEnd parses *..value.
func (p *Parser) parseRangeFixedEnd() Node {
	tok, ok := p.accept(TokenRangeFixedEnd)
	if !ok {
		return nil
	}
	close := p.parseBound()
	if close == nil {
		close = p.missing("expected number or date")
	}
	return &Range{span: span{tok.Start, close.End()}, Close: close}
}

func (p *Parser) parseCompare() Node {
	var comparator string
	switch p.tok.Type {
	case TokenLessThan:
		comparator = "<"
	case TokenLessThanEqual:
		comparator = "<="
	case TokenGreaterThan:
		comparator = ">"
	case TokenGreaterThanEqual:
		comparator = ">="
	default:
		return nil
	}
	tok := p.next()
	value := p.parseBound()
	if value == nil {
		value = p.missing("expected date or number")
	}
	return &Compare{span: span{tok.Start, value.End()}, Comparator: comparator, Value: value}
}

func (p *Parser) parseNumber() *Number {
	tok, ok := p.accept(TokenNumber)
	if !ok {
		return nil
	}
	value, err := decimal.NewFromString(p.scanner.Value(tok))
	if err != nil {
		value = decimal.Zero
	}
	return &Number{span: span{tok.Start, tok.End}, Value: value}
}

func (p *Parser) parseVariableName() *VariableName {
	tok, ok := p.accept(TokenVariableName)
	if !ok {
		return nil
	}
	return &VariableName{span: span{tok.Start, tok.End}, Value: p.scanner.Value(tok)}
}

// parseBareLiteral parses a plain or quoted literal token.
func (p *Parser) parseBareLiteral() *Literal {
	switch p.tok.Type {
	case TokenLiteral, TokenQuotedLiteral:
		tok := p.next()
		value := p.scanner.Value(tok)
		if tok.Type == TokenQuotedLiteral {
			value = strings.Trim(value, `"`)
		}
		return &Literal{span: span{tok.Start, tok.End}, Value: value}
	}
	return nil
}
