package bencode

import (
	"bytes"
	"io"
	"strconv"
)

// Encode returns the canonical encoding of v. Dict keys are always written in
// ascending byte order, so two dicts with the same entries encode identically.
func Encode(v Value) []byte {
	var buf bytes.Buffer
	encodeValue(&buf, v)
	return buf.Bytes()
}

func EncodeTo(w io.Writer, v Value) error {
	_, err := w.Write(Encode(v))
	return err
}

func encodeValue(buf *bytes.Buffer, v Value) {
	switch v := v.(type) {
	case Integer:
		buf.WriteByte('i')
		buf.Write(strconv.AppendInt(nil, int64(v), 10))
		buf.WriteByte('e')
	case TextString:
		encodeString(buf, []byte(v))
	case ByteString:
		encodeString(buf, v)
	case List:
		buf.WriteByte('l')
		for _, item := range v {
			encodeValue(buf, item)
		}
		buf.WriteByte('e')
	case *Dict:
		buf.WriteByte('d')
		for _, key := range v.Keys() {
			encodeString(buf, []byte(key))
			encodeValue(buf, v.entries[key])
		}
		buf.WriteByte('e')
	}
}

func encodeString(buf *bytes.Buffer, b []byte) {
	buf.Write(strconv.AppendInt(nil, int64(len(b)), 10))
	buf.WriteByte(':')
	buf.Write(b)
}
