// Package bencode decodes and encodes the bencode format used by BitTorrent
// metainfo files.
//
// Decoded strings are split in two variants: TextString when the payload is
// valid UTF-8 and ByteString otherwise. Both encode to the same wire form.
package bencode

import "sort"

type Kind uint8

const (
	KindInteger Kind = iota
	KindTextString
	KindByteString
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindTextString:
		return "text string"
	case KindByteString:
		return "byte string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Value is one node of a decoded bencode tree. The set of implementations is
// closed: Integer, TextString, ByteString, List and *Dict.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

type Integer int64

type TextString string

type ByteString []byte

type List []Value

func (Integer) Kind() Kind { return KindInteger }
func (TextString) Kind() Kind { return KindTextString }
func (ByteString) Kind() Kind { return KindByteString }
func (List) Kind() Kind { return KindList }
func (*Dict) Kind() Kind { return KindDict }

func (Integer) isValue() {}
func (TextString) isValue() {}
func (ByteString) isValue() {}
func (List) isValue() {}
func (*Dict) isValue() {}

func (i Integer) String() string { return Display(i) }
func (s TextString) String() string { return Display(s) }
func (b ByteString) String() string { return Display(b) }
func (l List) String() string { return Display(l) }
func (d *Dict) String() string { return Display(d) }

// Dict maps raw byte-string keys to values. Keys always iterate in ascending
// byte order, which is what makes encoding canonical.
type Dict struct {
	entries map[string]Value
}

func NewDict() *Dict {
	return &Dict{entries: make(map[string]Value)}
}

// Set stores v under key, replacing any previous value. A nil v removes the
// key.
func (d *Dict) Set(key string, v Value) {
	if v == nil {
		delete(d.entries, key)
		return
	}
	if d.entries == nil {
		d.entries = make(map[string]Value)
	}
	d.entries[key] = v
}

func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.entries[key]
	return v, ok
}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Keys returns the keys sorted ascending by raw bytes.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StringBytes returns the raw payload of a TextString or ByteString.
func StringBytes(v Value) ([]byte, bool) {
	switch s := v.(type) {
	case TextString:
		return []byte(s), true
	case ByteString:
		return []byte(s), true
	default:
		return nil, false
	}
}
