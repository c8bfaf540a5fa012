package bencode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dictOf(pairs ...any) *Dict {
	d := NewDict()
	for i := 0; i < len(pairs); i += 2 {
		d.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return d
}

func TestDecode(t *testing.T) {
	var tests = []struct {
		name     string
		input    string
		expected Value
		consumed int
	}{
		{name: "integer", input: "i52e", expected: Integer(52), consumed: 4},
		{name: "negative integer", input: "i-52e", expected: Integer(-52), consumed: 5},
		{name: "zero", input: "i0e", expected: Integer(0), consumed: 3},
		{name: "large integer", input: "i-123456789012345e", expected: Integer(-123456789012345), consumed: 18},
		{name: "integer followed by garbage", input: "i52esadw", expected: Integer(52), consumed: 4},
		{name: "text string", input: "4:spam", expected: TextString("spam"), consumed: 6},
		{name: "empty string", input: "0:", expected: TextString(""), consumed: 2},
		{name: "string with trailing digits", input: "5:hello13432143124", expected: TextString("hello"), consumed: 7},
		{name: "digits as payload", input: "15:123456789012345", expected: TextString("123456789012345"), consumed: 18},
		{name: "byte string", input: "4:\xff\xfe\x00\x01", expected: ByteString{0xff, 0xfe, 0x00, 0x01}, consumed: 6},
		{name: "empty list", input: "le", expected: List{}, consumed: 2},
		{
			name:     "list of strings",
			input:    "l4:spam4:eggse",
			expected: List{TextString("spam"), TextString("eggs")},
			consumed: 14,
		},
		{
			name:  "nested list",
			input: "l5:helloi42el9:innerlisti-1eei52e5:halloe",
			expected: List{
				TextString("hello"),
				Integer(42),
				List{TextString("innerlist"), Integer(-1)},
				Integer(52),
				TextString("hallo"),
			},
			consumed: 41,
		},
		{name: "empty dict", input: "de", expected: NewDict(), consumed: 2},
		{
			name:     "dict",
			input:    "d3:cow3:moo4:spam4:eggse",
			expected: dictOf("cow", TextString("moo"), "spam", TextString("eggs")),
			consumed: 24,
		},
		{
			name:     "nested dicts",
			input:    "d1:ad1:bd1:ci1eeee",
			expected: dictOf("a", dictOf("b", dictOf("c", Integer(1)))),
			consumed: 19,
		},
		{
			name:  "dict with list",
			input: "d4:listl3:one3:two5:threee3:numi99ee",
			expected: dictOf(
				"list", List{TextString("one"), TextString("two"), TextString("three")},
				"num", Integer(99),
			),
			consumed: 36,
		},
		{
			name:     "duplicate key keeps last value",
			input:    "d1:ai1e1:ai2ee",
			expected: dictOf("a", Integer(2)),
			consumed: 14,
		},
		{
			name:     "unsorted keys are accepted",
			input:    "d4:spam4:eggs3:cow3:mooe",
			expected: dictOf("cow", TextString("moo"), "spam", TextString("eggs")),
			consumed: 24,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			actual, consumed, err := Decode([]byte(tt.input), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
			assert.Equal(t, tt.consumed, consumed)
		})
	}
}

func TestDecodeAtOffset(t *testing.T) {
	data := []byte("i1e4:spam")

	v, n, err := Decode(data, 3)
	require.NoError(t, err)
	assert.Equal(t, TextString("spam"), v)
	assert.Equal(t, 6, n)
}

func TestDecodeErrors(t *testing.T) {
	var tests = []struct {
		name     string
		input    string
		offset   int
		expected error
	}{
		{name: "empty input", input: "", expected: ErrUnexpectedEOF},
		{name: "offset past end", input: "i1e", offset: 3, expected: ErrUnexpectedEOF},
		{name: "negative offset", input: "i1e", offset: -1, expected: ErrUnexpectedEOF},
		{name: "integer with space", input: "i e", expected: ErrInvalidInteger},
		{name: "empty integer", input: "ie", expected: ErrInvalidInteger},
		{name: "bare minus", input: "i-e", expected: ErrInvalidInteger},
		{name: "leading zero", input: "i03e", expected: ErrInvalidInteger},
		{name: "negative zero", input: "i-0e", expected: ErrInvalidInteger},
		{name: "integer letters", input: "i1x2e", expected: ErrInvalidInteger},
		{name: "integer overflow", input: "i99999999999999999999e", expected: ErrInvalidInteger},
		{name: "unterminated integer", input: "i52", expected: ErrMissingTerminator},
		{name: "string without colon", input: "4spam", expected: ErrMissingTerminator},
		{name: "non numeric length", input: "4x:spam", expected: ErrInvalidLength},
		{name: "length with leading zero", input: "04:spam", expected: ErrInvalidLength},
		{name: "length overruns input", input: "10:spam", expected: ErrStringOverrun},
		{name: "unknown prefix", input: "x", expected: ErrUnknownPrefix},
		{name: "unterminated list", input: "l4:spam", expected: ErrMissingTerminator},
		{name: "unterminated dict", input: "d3:cow3:moo", expected: ErrMissingTerminator},
		{name: "dict key without value", input: "d3:cow", expected: ErrUnexpectedEOF},
		{name: "integer dict key", input: "di1ei2ee", expected: ErrInvalidKey},
		{name: "error inside list", input: "li1ex", expected: ErrUnknownPrefix},
		{name: "error inside dict value", input: "d1:a5:abce", expected: ErrStringOverrun},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var actual Value
			var err error
			assert.NotPanics(t, func() {
				actual, _, err = Decode([]byte(tt.input), tt.offset)
			})
			require.Error(t, err)
			assert.Nil(t, actual)
			assert.ErrorIs(t, err, tt.expected)

			var syntaxErr *SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func TestDecodeSyntaxErrorOffset(t *testing.T) {
	_, _, err := Decode([]byte("l4:spami1xee"), 0)

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 7, syntaxErr.Offset)
	assert.Contains(t, err.Error(), "offset 7")
}

func TestDecoderMaxDepth(t *testing.T) {
	var tests = []struct {
		name   string
		setup  func() (*Decoder, []byte)
		assert func(t *testing.T, v Value, err error)
	}{
		{
			name: "nesting at the limit decodes",
			setup: func() (*Decoder, []byte) {
				return &Decoder{MaxDepth: 3}, []byte("llleee")
			},
			assert: func(t *testing.T, v Value, err error) {
				require.NoError(t, err)
				assert.Equal(t, List{List{List{}}}, v)
			},
		},
		{
			name: "nesting past the limit fails",
			setup: func() (*Decoder, []byte) {
				return &Decoder{MaxDepth: 3}, []byte("lllleeee")
			},
			assert: func(t *testing.T, v Value, err error) {
				assert.ErrorIs(t, err, ErrNestingTooDeep)
				assert.Nil(t, v)
			},
		},
		{
			name: "dicts count towards depth",
			setup: func() (*Decoder, []byte) {
				return &Decoder{MaxDepth: 2}, []byte("d1:ad1:bd1:ci1eeee")
			},
			assert: func(t *testing.T, v Value, err error) {
				assert.ErrorIs(t, err, ErrNestingTooDeep)
			},
		},
		{
			name: "adversarial nesting with default limit",
			setup: func() (*Decoder, []byte) {
				n := 100000
				return NewDecoder(), []byte(strings.Repeat("l", n) + strings.Repeat("e", n))
			},
			assert: func(t *testing.T, v Value, err error) {
				assert.ErrorIs(t, err, ErrNestingTooDeep)
			},
		},
		{
			name: "zero limit falls back to default",
			setup: func() (*Decoder, []byte) {
				n := DefaultMaxDepth
				return &Decoder{}, []byte(strings.Repeat("l", n) + strings.Repeat("e", n))
			},
			assert: func(t *testing.T, v Value, err error) {
				assert.NoError(t, err)
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			d, data := tt.setup()
			v, _, err := d.Decode(data, 0)
			tt.assert(t, v, err)
		})
	}
}
