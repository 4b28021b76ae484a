package serialization

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/npy/internal/tensor"
)

// Header is the decoded header dictionary of a .npy file.
type Header struct {
	DType        tensor.DataType // Element type
	Shape        tensor.Shape    // Array extents, row-major
	FortranOrder bool            // Always false for accepted files
}

// Descr returns the type string written for the header's dtype, e.g. "u4".
func (h Header) Descr() string {
	return descrOf(h.DType)
}

func descrOf(dt tensor.DataType) string {
	return string(dt.Kind()) + strconv.Itoa(dt.Size())
}

// BuildHeader renders the header dictionary for an array and returns it
// together with the payload size in bytes.
//
// The text is padded with spaces and terminated by a newline so that the
// version 1 preamble (magic, version, length field, header) is a multiple of
// HeaderAlignment bytes.
func BuildHeader(dt tensor.DataType, shape tensor.Shape) (string, int64, error) {
	if err := shape.Validate(); err != nil {
		return "", 0, formatErr("shape", ErrMalformedShape, "%v", err)
	}

	payload, err := shape.ByteSize(dt.Size())
	if err != nil {
		return "", 0, formatErr("shape", ErrMalformedShape, "%v", err)
	}

	var b strings.Builder
	b.WriteString("{'descr':'")
	b.WriteString(descrOf(dt))
	b.WriteString("','fortran_order':False,'shape':(")
	for _, dim := range shape {
		b.WriteString(strconv.Itoa(dim))
		b.WriteByte(',')
	}
	b.WriteString(")}")

	// One byte is reserved for the trailing newline.
	for (PreambleSizeV1+b.Len()+1)%HeaderAlignment != 0 {
		b.WriteByte(' ')
	}
	b.WriteByte('\n')

	return b.String(), payload, nil
}

// valueKind classifies a parsed literal.
type valueKind int

const (
	valString valueKind = iota
	valInt
	valBool
	valNone
	valTuple
	valList
	valDict
)

func (k valueKind) String() string {
	switch k {
	case valString:
		return "string"
	case valInt:
		return "integer"
	case valBool:
		return "boolean"
	case valNone:
		return "None"
	case valTuple:
		return "tuple"
	case valList:
		return "list"
	case valDict:
		return "dict"
	default:
		return "unknown"
	}
}

// value is a parsed Python literal.
type value struct {
	kind  valueKind
	text  string  // String contents or integer digits
	truth bool    // Boolean value
	items []value // Tuple or list elements
	pos   int
}

// maxNesting bounds recursion on hostile input.
const maxNesting = 16

// parser is a recursive-descent parser over lexer tokens:
//
//	dict  = "{" [ entry { "," entry } [ "," ] ] "}"
//	entry = string ":" value
//	value = string | integer | "True" | "False" | "None" | tuple | list | dict
//	tuple = "(" [ value { "," value } [ "," ] ] ")"
//	list  = "[" [ value { "," value } [ "," ] ] "]"
type parser struct {
	lex  *lexer
	tok  token
	deep int
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(kind tokenKind) error {
	if p.tok.kind != kind {
		return formatErr("header", ErrMalformedHeader, "expected %s at offset %d, found %s", kind, p.tok.pos, p.tok.kind)
	}
	return p.advance()
}

// parseDict parses the top-level dictionary; the current token is '{'.
func (p *parser) parseDict() (map[string]value, error) {
	if err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	entries := make(map[string]value)
	for p.tok.kind != tokRBrace {
		if p.tok.kind != tokString {
			return nil, formatErr("header", ErrMalformedHeader, "expected string key at offset %d, found %s", p.tok.pos, p.tok.kind)
		}
		key := p.tok.text
		if _, dup := entries[key]; dup {
			return nil, formatErr("header", ErrMalformedHeader, "duplicate key %q", key)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(tokColon); err != nil {
			return nil, err
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		entries[key] = v

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.tok.kind != tokRBrace {
			return nil, formatErr("header", ErrMalformedHeader, "expected ',' or '}' at offset %d, found %s", p.tok.pos, p.tok.kind)
		}
	}
	return entries, p.advance()
}

func (p *parser) parseValue() (value, error) {
	tok := p.tok
	switch tok.kind {
	case tokString:
		return value{kind: valString, text: tok.text, pos: tok.pos}, p.advance()
	case tokInt:
		return value{kind: valInt, text: tok.text, pos: tok.pos}, p.advance()
	case tokIdent:
		var v value
		switch tok.text {
		case "True":
			v = value{kind: valBool, truth: true, pos: tok.pos}
		case "False":
			v = value{kind: valBool, truth: false, pos: tok.pos}
		case "None":
			v = value{kind: valNone, pos: tok.pos}
		default:
			return value{}, formatErr("header", ErrMalformedHeader, "unknown identifier %q at offset %d", tok.text, tok.pos)
		}
		return v, p.advance()
	case tokLParen:
		return p.parseSequence(valTuple, tokRParen)
	case tokLBracket:
		return p.parseSequence(valList, tokRBracket)
	case tokLBrace:
		if p.deep >= maxNesting {
			return value{}, formatErr("header", ErrMalformedHeader, "nesting too deep at offset %d", tok.pos)
		}
		p.deep++
		defer func() { p.deep-- }()
		if _, err := p.parseDict(); err != nil {
			return value{}, err
		}
		return value{kind: valDict, pos: tok.pos}, nil
	default:
		return value{}, formatErr("header", ErrMalformedHeader, "expected value at offset %d, found %s", tok.pos, tok.kind)
	}
}

func (p *parser) parseSequence(kind valueKind, closer tokenKind) (value, error) {
	if p.deep >= maxNesting {
		return value{}, formatErr("header", ErrMalformedHeader, "nesting too deep at offset %d", p.tok.pos)
	}
	p.deep++
	defer func() { p.deep-- }()

	seq := value{kind: kind, pos: p.tok.pos}
	if err := p.advance(); err != nil {
		return value{}, err
	}

	for p.tok.kind != closer {
		item, err := p.parseValue()
		if err != nil {
			return value{}, err
		}
		seq.items = append(seq.items, item)

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return value{}, err
			}
			continue
		}
		if p.tok.kind != closer {
			return value{}, formatErr("header", ErrMalformedHeader, "expected ',' or %s at offset %d, found %s", closer, p.tok.pos, p.tok.kind)
		}
	}
	return seq, p.advance()
}

// ParseHeader decodes the header dictionary of a .npy file.
//
// Key order and whitespace between tokens are free. Trailing bytes after the
// closing brace must be whitespace (NumPy pads with spaces and a newline).
func ParseHeader(text string, level ValidationLevel) (Header, error) {
	p := &parser{lex: newLexer(text)}
	if err := p.advance(); err != nil {
		return Header{}, err
	}
	if p.tok.kind != tokLBrace {
		return Header{}, formatErr("header", ErrMalformedHeader, "header must start with '{', found %s", p.tok.kind)
	}

	entries, err := p.parseDict()
	if err != nil {
		return Header{}, err
	}
	if p.tok.kind != tokEOF {
		return Header{}, formatErr("header", ErrMalformedHeader, "unexpected %s after dictionary at offset %d", p.tok.kind, p.tok.pos)
	}

	if err := validateKeys(entries, level); err != nil {
		return Header{}, err
	}

	var h Header

	fo := entries[keyFortranOrder]
	if fo.kind != valBool || fo.truth {
		return Header{}, formatErr(keyFortranOrder, ErrFortranOrder, "expected False, found %s", describe(fo))
	}

	descr := entries[keyDescr]
	if descr.kind != valString {
		return Header{}, formatErr(keyDescr, ErrUnsupportedDType, "expected a type string, found %s", descr.kind)
	}
	if h.DType, err = ParseDescr(descr.text); err != nil {
		return Header{}, err
	}

	if h.Shape, err = parseShape(entries[keyShape]); err != nil {
		return Header{}, err
	}

	return h, nil
}

// ParseDescr decodes a NumPy type string such as "<f8", "|u1" or "i4".
func ParseDescr(s string) (tensor.DataType, error) {
	code := s
	if code != "" {
		switch code[0] {
		case orderLittle, orderNative, orderIgnored:
			code = code[1:]
		case orderBig:
			return 0, formatErr(keyDescr, ErrBigEndian, "type string %q", s)
		}
	}

	if len(code) < 2 {
		return 0, formatErr(keyDescr, ErrUnsupportedDType, "type string %q", s)
	}

	// NumPy never writes a zero-padded width such as "i08".
	if code[1] == '0' {
		return 0, formatErr(keyDescr, ErrUnsupportedDType, "type string %q", s)
	}
	for i := 1; i < len(code); i++ {
		if !isDigit(code[i]) {
			return 0, formatErr(keyDescr, ErrUnsupportedDType, "type string %q", s)
		}
	}
	width, err := strconv.Atoi(code[1:])
	if err != nil {
		return 0, formatErr(keyDescr, ErrUnsupportedDType, "type string %q", s)
	}

	dt, ok := tensor.FromKind(code[0], width)
	if !ok {
		return 0, formatErr(keyDescr, ErrUnsupportedDType, "type string %q", s)
	}
	return dt, nil
}

func parseShape(v value) (tensor.Shape, error) {
	if v.kind != valTuple {
		return nil, formatErr(keyShape, ErrMalformedShape, "expected a tuple, found %s", describe(v))
	}
	if len(v.items) == 0 {
		return nil, formatErr(keyShape, ErrMalformedShape, "shape has no dimensions")
	}
	if len(v.items) > MaxRank {
		return nil, formatErr(keyShape, ErrMalformedShape, "%d dimensions exceeds maximum of %d", len(v.items), MaxRank)
	}

	shape := make(tensor.Shape, len(v.items))
	for i, item := range v.items {
		if item.kind != valInt {
			return nil, formatErr(keyShape, ErrMalformedShape, "dimension %d is a %s", i, item.kind)
		}
		dim, err := strconv.ParseInt(item.text, 10, strconv.IntSize)
		if err != nil {
			return nil, formatErr(keyShape, ErrMalformedShape, "dimension %d: %v", i, err)
		}
		shape[i] = int(dim)
	}
	return shape, nil
}

func describe(v value) string {
	switch v.kind {
	case valString:
		return fmt.Sprintf("string %q", v.text)
	case valInt:
		return "integer " + v.text
	case valBool:
		if v.truth {
			return "True"
		}
		return "False"
	default:
		return v.kind.String()
	}
}
