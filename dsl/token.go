package dsl

// tokenKind identifies a lexical token class.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokInt
	tokFloat
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokColon
	tokComma
	tokSlash
	tokArrow
)

// String names the kind the way diagnostics show it.
func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokInt, tokFloat:
		return "number"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokColon:
		return "':'"
	case tokComma:
		return "','"
	case tokSlash:
		return "'/'"
	case tokArrow:
		return "'->'"
	}
	return "unknown"
}

// token is a lexed token with its source position (1-based).
type token struct {
	kind tokenKind
	text string // identifier text, string contents (quotes stripped), or number digits
	line int
	col  int
}

// describe renders the token for the "found ..." part of a syntax error.
func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "'" + t.text + "'"
	case tokString:
		return `string "` + t.text + `"`
	case tokInt, tokFloat:
		return "number " + t.text
	default:
		return t.kind.String()
	}
}
