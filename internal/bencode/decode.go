package bencode

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// DefaultMaxDepth bounds list and dict nesting when Decoder.MaxDepth is unset.
const DefaultMaxDepth = 256

type Decoder struct {
	// MaxDepth is the deepest list/dict nesting accepted. Zero or negative
	// means DefaultMaxDepth.
	MaxDepth int
}

func NewDecoder() *Decoder {
	return &Decoder{MaxDepth: DefaultMaxDepth}
}

// Decode parses one value starting at data[offset] and returns it with the
// number of bytes it occupied. Bytes after the value are left untouched.
func Decode(data []byte, offset int) (Value, int, error) {
	return NewDecoder().Decode(data, offset)
}

func (d *Decoder) Decode(data []byte, offset int) (Value, int, error) {
	if len(data) == 0 {
		return nil, 0, syntaxError(0, ErrUnexpectedEOF, "empty input")
	}
	if offset < 0 || offset >= len(data) {
		return nil, 0, syntaxError(offset, ErrUnexpectedEOF, "offset out of range")
	}

	maxDepth := d.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	p := parser{data: data, pos: offset, maxDepth: maxDepth}
	v, err := p.value()
	if err != nil {
		return nil, 0, err
	}
	return v, p.pos - offset, nil
}

type parser struct {
	data     []byte
	pos      int
	depth    int
	maxDepth int
}

func (p *parser) value() (Value, error) {
	if p.pos >= len(p.data) {
		return nil, syntaxError(p.pos, ErrUnexpectedEOF, "")
	}

	switch c := p.data[p.pos]; {
	case c == 'i':
		return p.integer()
	case c == 'l':
		return p.list()
	case c == 'd':
		return p.dict()
	case isDigit(c):
		return p.str()
	default:
		return nil, syntaxError(p.pos, ErrUnknownPrefix, fmt.Sprintf("%q", c))
	}
}

func (p *parser) integer() (Value, error) {
	start := p.pos
	end := bytes.IndexByte(p.data[start+1:], 'e')
	if end < 0 {
		return nil, syntaxError(start, ErrMissingTerminator, "integer has no 'e'")
	}

	body := p.data[start+1 : start+1+end]
	if !validInteger(body) {
		return nil, syntaxError(start, ErrInvalidInteger, fmt.Sprintf("%q", body))
	}
	n, err := strconv.ParseInt(string(body), 10, 64)
	if err != nil {
		return nil, syntaxError(start, ErrInvalidInteger, fmt.Sprintf("%q out of range", body))
	}

	p.pos = start + 1 + end + 1
	return Integer(n), nil
}

func (p *parser) str() (Value, error) {
	payload, err := p.rawString()
	if err != nil {
		return nil, err
	}
	if utf8.Valid(payload) {
		return TextString(payload), nil
	}
	b := make([]byte, len(payload))
	copy(b, payload)
	return ByteString(b), nil
}

// rawString returns the payload of a length-prefixed string without copying.
func (p *parser) rawString() ([]byte, error) {
	start := p.pos
	colon := bytes.IndexByte(p.data[start:], ':')
	if colon < 0 {
		return nil, syntaxError(start, ErrMissingTerminator, "string length has no ':'")
	}

	digits := p.data[start : start+colon]
	if !validLength(digits) {
		return nil, syntaxError(start, ErrInvalidLength, fmt.Sprintf("%q", digits))
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return nil, syntaxError(start, ErrInvalidLength, fmt.Sprintf("%q out of range", digits))
	}

	begin := start + colon + 1
	if n > len(p.data)-begin {
		return nil, syntaxError(start, ErrStringOverrun, fmt.Sprintf("want %d bytes, have %d", n, len(p.data)-begin))
	}

	p.pos = begin + n
	return p.data[begin:p.pos], nil
}

func (p *parser) list() (Value, error) {
	start := p.pos
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.pos++
	items := List{}
	for {
		if p.pos >= len(p.data) {
			return nil, syntaxError(start, ErrMissingTerminator, "list has no 'e'")
		}
		if p.data[p.pos] == 'e' {
			p.pos++
			return items, nil
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (p *parser) dict() (Value, error) {
	start := p.pos
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.pos++
	d := NewDict()
	for {
		if p.pos >= len(p.data) {
			return nil, syntaxError(start, ErrMissingTerminator, "dict has no 'e'")
		}
		if p.data[p.pos] == 'e' {
			p.pos++
			return d, nil
		}

		if !isDigit(p.data[p.pos]) {
			return nil, syntaxError(p.pos, ErrInvalidKey, fmt.Sprintf("%q", p.data[p.pos]))
		}
		key, err := p.rawString()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.data) {
			return nil, syntaxError(p.pos, ErrUnexpectedEOF, fmt.Sprintf("no value for key %q", key))
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		d.Set(string(key), v)
	}
}

func (p *parser) enter() error {
	if p.depth >= p.maxDepth {
		return syntaxError(p.pos, ErrNestingTooDeep, fmt.Sprintf("limit is %d", p.maxDepth))
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// validInteger accepts -?[0-9]+ without leading zeros and without "-0".
func validInteger(b []byte) bool {
	digits := b
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
		if len(digits) == 1 && digits[0] == '0' {
			return false
		}
	}
	return validLength(digits)
}

func validLength(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	if len(b) > 1 && b[0] == '0' {
		return false
	}
	for _, c := range b {
		if !isDigit(c) {
			return false
		}
	}
	return true
}
