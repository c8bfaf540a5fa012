package bencode

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Display renders v as JSON-like text for humans. Byte strings that are not
// valid UTF-8 are shown with replacement characters, so the output is lossy
// and must not be parsed back.
func Display(v Value) string {
	var sb strings.Builder
	display(&sb, v)
	return sb.String()
}

func display(sb *strings.Builder, v Value) {
	switch v := v.(type) {
	case Integer:
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	case TextString:
		sb.WriteString(quote(string(v)))
	case ByteString:
		sb.WriteString(quote(strings.ToValidUTF8(string(v), "�")))
	case List:
		sb.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			display(sb, item)
		}
		sb.WriteByte(']')
	case *Dict:
		sb.WriteByte('{')
		for i, key := range v.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quote(strings.ToValidUTF8(key, "�")))
			sb.WriteByte(':')
			display(sb, v.entries[key])
		}
		sb.WriteByte('}')
	}
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
