package parser

import "strings"

// Scanner tokenizes query text. Scanning is total: every character is
// classified into some token, unrecognized input falls back to Literal.
// Token boundaries are stable, scanning the same input from the same offset
// always yields the same token, which is what makes parser backtracking via
// ResetPosition safe.
type Scanner struct {
	input string
	pos   int
}

// NewScanner creates a scanner over the given input.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

// Reset discards the current state and positions the scanner at the start
// of new input.
func (s *Scanner) Reset(input string) {
	s.input = input
	s.pos = 0
}

// ResetPosition rewinds the scanner to the start offset of tok. A zero
// Token rewinds to the beginning of the input.
func (s *Scanner) ResetPosition(tok Token) {
	s.pos = tok.Start
}

// Value returns the substring of the input covered by tok.
func (s *Scanner) Value(tok Token) string {
	return s.input[tok.Start:tok.End]
}

// Next returns the next token. At the end of the input it returns an EOF
// token, any number of times.
func (s *Scanner) Next() Token {
	if s.pos >= len(s.input) {
		return Token{Type: TokenEOF, Start: len(s.input), End: len(s.input)}
	}

	start := s.pos

	if end := s.matchNewLine(start); end > start {
		return s.emit(TokenNewLine, start, end)
	}
	if end := s.matchWhitespace(start); end > start {
		return s.emit(TokenWhitespace, start, end)
	}
	if end := s.matchLineComment(start); end > start {
		return s.emit(TokenLineComment, start, end)
	}
	if end := s.matchDateTime(start); end > start {
		return s.emit(TokenDateTime, start, end)
	}
	if end := s.matchDate(start); end > start {
		return s.emit(TokenDate, start, end)
	}
	if end := s.matchSHA(start); end > start {
		return s.emit(TokenSHA, start, end)
	}
	if end := s.matchNumber(start); end > start {
		return s.emit(TokenNumber, start, end)
	}
	if end := s.matchQuoted(start); end > start {
		return s.emit(TokenQuotedLiteral, start, end)
	}
	if end := s.matchPrefix(start, "sort-desc-by:"); end > start {
		return s.emit(TokenSortDescBy, start, end)
	}
	if end := s.matchPrefix(start, "sort-asc-by:"); end > start {
		return s.emit(TokenSortAscBy, start, end)
	}
	if end := s.matchPrefix(start, "sort-by:"); end > start {
		return s.emit(TokenSortAscBy, start, end)
	}
	if end := s.matchKeyword(start, "OR"); end > start {
		return s.emit(TokenOR, start, end)
	}
	if end := s.matchPrefix(start, "<="); end > start {
		return s.emit(TokenLessThanEqual, start, end)
	}
	if end := s.matchPrefix(start, ">="); end > start {
		return s.emit(TokenGreaterThanEqual, start, end)
	}
	if end := s.matchPrefix(start, "<"); end > start {
		return s.emit(TokenLessThan, start, end)
	}
	if end := s.matchPrefix(start, ">"); end > start {
		return s.emit(TokenGreaterThan, start, end)
	}
	if end := s.matchPrefix(start, "*.."); end > start {
		return s.emit(TokenRangeFixedEnd, start, end)
	}
	if end := s.matchPrefix(start, "..*"); end > start {
		return s.emit(TokenRangeFixedStart, start, end)
	}
	if end := s.matchPrefix(start, ".."); end > start {
		return s.emit(TokenRange, start, end)
	}
	if end := s.matchVariableName(start); end > start {
		return s.emit(TokenVariableName, start, end)
	}

	switch s.input[start] {
	case '-':
		return s.emit(TokenDash, start, start+1)
	case ':':
		return s.emit(TokenColon, start, start+1)
	case '=':
		return s.emit(TokenEquals, start, start+1)
	}

	if end := s.matchLiteral(start); end > start {
		return s.emit(TokenLiteral, start, end)
	}

	// Nothing matched (e.g. an unterminated quote), consume one byte so
	// scanning always makes progress.
	return s.emit(TokenLiteral, start, start+1)
}

func (s *Scanner) emit(t TokenType, start, end int) Token {
	s.pos = end
	return Token{Type: t, Start: start, End: end}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordByte(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

// wordBoundary reports whether pos sits at the end of a word, so that
// tokens like dates and numbers do not match inside a longer literal.
func (s *Scanner) wordBoundary(pos int) bool {
	return pos >= len(s.input) || !isWordByte(s.input[pos])
}

func (s *Scanner) matchNewLine(start int) int {
	if strings.HasPrefix(s.input[start:], "\r\n") {
		return start + 2
	}
	if s.input[start] == '\n' || s.input[start] == '\r' {
		return start + 1
	}
	return start
}

func (s *Scanner) matchWhitespace(start int) int {
	end := start
	for end < len(s.input) && (s.input[end] == ' ' || s.input[end] == '\t') {
		end++
	}
	return end
}

func (s *Scanner) matchLineComment(start int) int {
	if !strings.HasPrefix(s.input[start:], "//") {
		return start
	}
	end := start + 2
	for end < len(s.input) && s.input[end] != '\n' && s.input[end] != '\r' {
		end++
	}
	return end
}

// matchDigits matches exactly n digits starting at pos, returning the end
// offset or -1.
func (s *Scanner) matchDigits(pos, n int) int {
	if pos+n > len(s.input) {
		return -1
	}
	for i := 0; i < n; i++ {
		if !isDigit(s.input[pos+i]) {
			return -1
		}
	}
	return pos + n
}

// matchDateCore matches YYYY-MM-DD without a trailing boundary check.
func (s *Scanner) matchDateCore(start int) int {
	pos := s.matchDigits(start, 4)
	if pos < 0 || pos >= len(s.input) || s.input[pos] != '-' {
		return -1
	}
	pos = s.matchDigits(pos+1, 2)
	if pos < 0 || pos >= len(s.input) || s.input[pos] != '-' {
		return -1
	}
	return s.matchDigits(pos+1, 2)
}

func (s *Scanner) matchDate(start int) int {
	end := s.matchDateCore(start)
	if end < 0 || !s.wordBoundary(end) {
		return start
	}
	return end
}

// matchDateTime matches YYYY-MM-DDThh:mm:ss with an optional zone suffix
// (Z or +hh:mm / -hh:mm).
func (s *Scanner) matchDateTime(start int) int {
	pos := s.matchDateCore(start)
	if pos < 0 || pos >= len(s.input) || s.input[pos] != 'T' {
		return start
	}
	pos = s.matchDigits(pos+1, 2)
	if pos < 0 || pos >= len(s.input) || s.input[pos] != ':' {
		return start
	}
	pos = s.matchDigits(pos+1, 2)
	if pos < 0 || pos >= len(s.input) || s.input[pos] != ':' {
		return start
	}
	pos = s.matchDigits(pos+1, 2)
	if pos < 0 {
		return start
	}
	if pos < len(s.input) {
		switch s.input[pos] {
		case 'Z':
			pos++
		case '+', '-':
			zone := s.matchDigits(pos+1, 2)
			if zone >= 0 && zone < len(s.input) && s.input[zone] == ':' {
				if zone = s.matchDigits(zone+1, 2); zone >= 0 {
					pos = zone
				}
			}
		}
	}
	if !s.wordBoundary(pos) {
		return start
	}
	return pos
}

func (s *Scanner) matchSHA(start int) int {
	end := start
	for end < len(s.input) && isHexDigit(s.input[end]) {
		end++
	}
	if n := end - start; n < 7 || n > 40 || !s.wordBoundary(end) {
		return start
	}
	return end
}

func (s *Scanner) matchNumber(start int) int {
	end := start
	for end < len(s.input) && isDigit(s.input[end]) {
		end++
	}
	if end == start || (end < len(s.input) && (isLetter(s.input[end]) || s.input[end] == '_')) {
		return start
	}
	return end
}

func (s *Scanner) matchQuoted(start int) int {
	if s.input[start] != '"' {
		return start
	}
	if idx := strings.IndexByte(s.input[start+1:], '"'); idx >= 0 {
		return start + 1 + idx + 1
	}
	return start
}

func (s *Scanner) matchPrefix(start int, prefix string) int {
	if strings.HasPrefix(s.input[start:], prefix) {
		return start + len(prefix)
	}
	return start
}

// matchKeyword matches a bare word, rejecting matches that continue into a
// longer word (so "ORbit" stays a literal).
func (s *Scanner) matchKeyword(start int, keyword string) int {
	end := s.matchPrefix(start, keyword)
	if end == start || !s.wordBoundary(end) {
		return start
	}
	return end
}

// matchVariableName matches the ${name} form.
func (s *Scanner) matchVariableName(start int) int {
	if !strings.HasPrefix(s.input[start:], "${") {
		return start
	}
	pos := start + 2
	if pos >= len(s.input) || !(isLetter(s.input[pos]) || s.input[pos] == '_') {
		return start
	}
	for pos < len(s.input) && isWordByte(s.input[pos]) {
		pos++
	}
	if pos >= len(s.input) || s.input[pos] != '}' {
		return start
	}
	return pos + 1
}

// matchLiteral matches a run of anything that is not whitespace, a colon,
// or a quote. Operators and keywords are recognized before this fallback,
// so a literal can still contain dashes, dots, and dollar signs.
func (s *Scanner) matchLiteral(start int) int {
	end := start
	for end < len(s.input) {
		switch s.input[end] {
		case ' ', '\t', '\n', '\r', ':', '"':
			return end
		}
		end++
	}
	return end
}
