package decoder

import (
	"errors"
	"io"
)

// DefaultMaxDocumentSize is the largest metainfo document Decode will read.
const DefaultMaxDocumentSize = 64 << 20

var ErrDocumentTooLarge = errors.New("document too large")

// ReadDocument reads r to the end, failing once more than limit bytes arrive.
func ReadDocument(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrDocumentTooLarge
	}

	return data, nil
}
