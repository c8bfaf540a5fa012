package bencode

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF     = errors.New("unexpected end of input")
	ErrMissingTerminator = errors.New("missing terminator")
	ErrInvalidInteger    = errors.New("invalid integer")
	ErrInvalidLength     = errors.New("invalid string length")
	ErrStringOverrun     = errors.New("string length exceeds input")
	ErrUnknownPrefix     = errors.New("unrecognized type prefix")
	ErrInvalidKey        = errors.New("dict key is not a string")
	ErrNestingTooDeep    = errors.New("nesting too deep")
)

// SyntaxError reports malformed input and the offset where decoding failed.
type SyntaxError struct {
	Offset int
	Err    error
	Detail string
}

func (e *SyntaxError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("bencode: %v at offset %d: %s", e.Err, e.Offset, e.Detail)
	}
	return fmt.Sprintf("bencode: %v at offset %d", e.Err, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxError(offset int, err error, detail string) error {
	return &SyntaxError{Offset: offset, Err: err, Detail: detail}
}
