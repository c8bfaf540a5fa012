package decoder

import (
	"bytes"
	"strings"

	"github.com/WendelHime/torrentmeta/internal/bencode"
	jackpal "github.com/jackpal/bencode-go"
)

func stringField(d *bencode.Dict, key, path string) (string, error) {
	b, err := bytesField(d, key, path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// bytesField accepts both string variants: a pieces blob that happens to be
// valid UTF-8 decodes as a TextString.
func bytesField(d *bencode.Dict, key, path string) ([]byte, error) {
	v, ok := d.Get(key)
	if !ok {
		return nil, missingField(path)
	}
	b, ok := bencode.StringBytes(v)
	if !ok {
		return nil, &FieldError{Field: path, Expected: "string", Found: kindOf(v), Err: ErrWrongType}
	}
	return b, nil
}

func integerField(d *bencode.Dict, key, path string) (int64, error) {
	v, ok := d.Get(key)
	if !ok {
		return 0, missingField(path)
	}
	i, ok := v.(bencode.Integer)
	if !ok {
		return 0, wrongType(path, bencode.KindInteger, v)
	}
	return int64(i), nil
}

func missingField(path string) error {
	return &FieldError{Field: path, Err: ErrMissingField}
}

func wrongType(path string, expected bencode.Kind, found bencode.Value) error {
	return &FieldError{Field: path, Expected: expected.String(), Found: kindOf(found), Err: ErrWrongType}
}

func withArticle(noun string) string {
	if noun != "" && strings.ContainsRune("aeiou", rune(noun[0])) {
		return "an " + noun
	}
	return "a " + noun
}

func kindOf(v bencode.Value) string {
	if v == nil {
		return "nothing"
	}
	return v.Kind().String()
}

type extras struct {
	AnnounceList [][]string `bencode:"announce-list"`
	CreatedBy    string     `bencode:"created by"`
	Comment      string     `bencode:"comment"`
	CreationDate int64      `bencode:"creation date"`
}

var extraKeys = []string{"announce-list", "created by", "comment", "creation date"}

// decodeExtras reads the optional top-level fields. Only those keys are
// re-encoded, so the pieces blob is never copied.
func decodeExtras(root *bencode.Dict) (extras, error) {
	var ex extras

	subset := bencode.NewDict()
	for _, key := range extraKeys {
		if v, ok := root.Get(key); ok {
			subset.Set(key, v)
		}
	}
	if subset.Len() == 0 {
		return ex, nil
	}

	err := jackpal.Unmarshal(bytes.NewReader(bencode.Encode(subset)), &ex)
	return ex, err
}
