package parser

// TokenType classifies a single token produced by the Scanner.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLiteral
	TokenQuotedLiteral
	TokenNumber
	TokenDate
	TokenDateTime
	TokenWhitespace
	TokenNewLine
	TokenLineComment
	TokenOR
	TokenSortAscBy
	TokenSortDescBy
	TokenLessThan
	TokenLessThanEqual
	TokenGreaterThan
	TokenGreaterThanEqual
	TokenRange
	TokenRangeFixedStart
	TokenRangeFixedEnd
	TokenDash
	TokenColon
	TokenEquals
	TokenVariableName
	TokenSHA
)

var tokenTypeNames = map[TokenType]string{
	TokenEOF:              "EOF",
	TokenLiteral:          "Literal",
	TokenQuotedLiteral:    "QuotedLiteral",
	TokenNumber:           "Number",
	TokenDate:             "Date",
	TokenDateTime:         "DateTime",
	TokenWhitespace:       "Whitespace",
	TokenNewLine:          "NewLine",
	TokenLineComment:      "LineComment",
	TokenOR:               "OR",
	TokenSortAscBy:        "SortAscBy",
	TokenSortDescBy:       "SortDescBy",
	TokenLessThan:         "LessThan",
	TokenLessThanEqual:    "LessThanEqual",
	TokenGreaterThan:      "GreaterThan",
	TokenGreaterThanEqual: "GreaterThanEqual",
	TokenRange:            "Range",
	TokenRangeFixedStart:  "RangeFixedStart",
	TokenRangeFixedEnd:    "RangeFixedEnd",
	TokenDash:             "Dash",
	TokenColon:            "Colon",
	TokenEquals:           "Equals",
	TokenVariableName:     "VariableName",
	TokenSHA:              "SHA",
}

// String returns the token type name used in token dumps and tests.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Token represents a single token in the query text. Start and End are byte
// offsets into the scanned input; End is exclusive. A Token carries no text
// of its own, use Scanner.Value to read the covered substring.
type Token struct {
	Type  TokenType
	Start int
	End   int
}
