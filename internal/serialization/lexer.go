package serialization

import "fmt"

// tokenKind identifies a lexical token of the header dictionary literal.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokColon
	tokComma
	tokString
	tokInt
	tokIdent
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of header"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokColon:
		return "':'"
	case tokComma:
		return "','"
	case tokString:
		return "string"
	case tokInt:
		return "integer"
	case tokIdent:
		return "identifier"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

// token is a lexeme with its byte offset in the header.
type token struct {
	kind tokenKind
	text string // Unquoted contents for strings, digits for integers
	pos  int
}

// lexer splits a header into tokens. It understands the subset of Python
// literal syntax NumPy emits: dicts, tuples, lists, quoted strings, decimal integers
// (with an optional Python 2 'L' suffix) and the identifiers True/False/None.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

// next returns the next token or a FormatError describing the offending byte.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch c {
	case '{':
		l.pos++
		return token{kind: tokLBrace, pos: start}, nil
	case '}':
		l.pos++
		return token{kind: tokRBrace, pos: start}, nil
	case '(':
		l.pos++
		return token{kind: tokLParen, pos: start}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen, pos: start}, nil
	case '[':
		l.pos++
		return token{kind: tokLBracket, pos: start}, nil
	case ']':
		l.pos++
		return token{kind: tokRBracket, pos: start}, nil
	case ':':
		l.pos++
		return token{kind: tokColon, pos: start}, nil
	case ',':
		l.pos++
		return token{kind: tokComma, pos: start}, nil
	case '\'', '"':
		return l.lexString(c)
	}

	if isDigit(c) {
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		text := l.src[start:l.pos]
		if l.pos < len(l.src) && (l.src[l.pos] == 'L' || l.src[l.pos] == 'l') {
			l.pos++
		}
		if l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
			return token{}, formatErr("header", ErrMalformedHeader, "invalid integer literal at offset %d", start)
		}
		return token{kind: tokInt, text: text, pos: start}, nil
	}

	if isIdentByte(c) {
		for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
	}

	return token{}, formatErr("header", ErrMalformedHeader, "unexpected character %q at offset %d", c, start)
}

// lexString scans a quoted string. Escapes are not interpreted beyond
// skipping the escaped byte; dtype strings and keys never contain them.
func (l *lexer) lexString(quote byte) (token, error) {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '\\':
			l.pos += 2
			continue
		case quote:
			text := l.src[start+1 : l.pos]
			l.pos++
			return token{kind: tokString, text: text, pos: start}, nil
		case '\n':
			return token{}, formatErr("header", ErrMalformedHeader, "unterminated string at offset %d", start)
		}
		l.pos++
	}
	return token{}, formatErr("header", ErrMalformedHeader, "unterminated string at offset %d", start)
}
