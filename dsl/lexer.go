package dsl

// lexer produces tokens from raw source text. Whitespace and // comments are
// skipped; positions are tracked 1-based for diagnostics.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

// advance consumes one byte, tracking line and column.
func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) peek() byte {
	return l.src[l.pos]
}

// skip consumes whitespace and line comments.
func (l *lexer) skip() {
	for !l.eof() {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// next returns the next token, or a *SyntaxError for input the grammar has no
// token for.
func (l *lexer) next() (token, error) {
	l.skip()

	tok := token{line: l.line, col: l.col}
	if l.eof() {
		tok.kind = tokEOF
		return tok, nil
	}

	c := l.peek()
	switch {
	case isIdentStart(c):
		start := l.pos
		for !l.eof() && isIdentPart(l.peek()) {
			l.advance()
		}
		tok.kind = tokIdent
		tok.text = l.src[start:l.pos]
		return tok, nil

	case isDigit(c):
		start := l.pos
		for !l.eof() && isDigit(l.peek()) {
			l.advance()
		}
		tok.kind = tokInt
		if l.pos+1 < len(l.src) && l.peek() == '.' && isDigit(l.src[l.pos+1]) {
			l.advance()
			for !l.eof() && isDigit(l.peek()) {
				l.advance()
			}
			tok.kind = tokFloat
		}
		tok.text = l.src[start:l.pos]
		return tok, nil

	case c == '"':
		l.advance()
		start := l.pos
		for !l.eof() && l.peek() != '"' {
			l.advance()
		}
		if l.eof() {
			return tok, &SyntaxError{
				Line:     tok.line,
				Column:   tok.col,
				Expected: []string{"closing '\"'"},
				Found:    "end of input",
			}
		}
		tok.kind = tokString
		tok.text = l.src[start:l.pos]
		l.advance()
		return tok, nil
	}

	l.advance()
	switch c {
	case '{':
		tok.kind = tokLBrace
	case '}':
		tok.kind = tokRBrace
	case '[':
		tok.kind = tokLBracket
	case ']':
		tok.kind = tokRBracket
	case '(':
		tok.kind = tokLParen
	case ')':
		tok.kind = tokRParen
	case ':':
		tok.kind = tokColon
	case ',':
		tok.kind = tokComma
	case '/':
		tok.kind = tokSlash
	case '-':
		if !l.eof() && l.peek() == '>' {
			l.advance()
			tok.kind = tokArrow
			return tok, nil
		}
		return tok, &SyntaxError{
			Line:   tok.line,
			Column: tok.col,
			Found:  "'-'",
		}
	default:
		return tok, &SyntaxError{
			Line:   tok.line,
			Column: tok.col,
			Found:  "'" + string(c) + "'",
		}
	}
	return tok, nil
}
