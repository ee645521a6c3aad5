// Package rlp implements a small Recursive Length Prefix codec: byte
// strings and lists of byte strings, nested arbitrarily deep. This is
// the subset trie/serialize.go needs to encode a trie's (key, value)
// dump ([][]byte) — not the general reflection-based codec an
// Ethereum client needs for integers, bools and structs. The
// Ethereum-exact node encoding used for hashing lives separately in
// trie/rlpcodec.go, which needs tighter control over framing than a
// generic codec gives.
//
// See https://ethereum.org/en/developers/docs/data-structures-and-encoding/rlp/
// for the full specification this is a subset of:
//
//	single byte [0x00, 0x7f]:      the byte itself
//	string of 0-55 bytes:          0x80+len, data
//	string of 56+ bytes:           0xb7+len(len), len, data
//	list of 0-55 bytes content:    0xc0+len, items
//	list of 56+ bytes content:     0xf7+len(len), len, items
package rlp

import (
	"errors"
	"reflect"
)

const (
	stringShort = 0x80
	stringLong  = 0xb7
	listShort   = 0xc0
	listLong    = 0xf7
)

// ErrUnsupportedType is returned for anything other than a []byte, or a
// slice whose elements are themselves supported.
var ErrUnsupportedType = errors.New("rlp: unsupported type")

// Encode encodes val, which must be a []byte or a slice of values that
// are themselves []byte or such slices.
func Encode(val interface{}) ([]byte, error) {
	return encode(nil, reflect.ValueOf(val))
}

func encode(buf []byte, val reflect.Value) ([]byte, error) {
	for val.Kind() == reflect.Interface || val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return append(buf, stringShort), nil
		}
		val = val.Elem()
	}

	switch {
	case !val.IsValid():
		return append(buf, stringShort), nil

	case val.Kind() == reflect.Slice && val.Type().Elem().Kind() == reflect.Uint8:
		return encodeString(buf, val.Bytes()), nil

	case val.Kind() == reflect.Slice:
		return encodeList(buf, val)

	default:
		return nil, ErrUnsupportedType
	}
}

func encodeString(buf, b []byte) []byte {
	if len(b) == 1 && b[0] < stringShort {
		return append(buf, b[0])
	}
	if len(b) < 56 {
		buf = append(buf, byte(stringShort+len(b)))
		return append(buf, b...)
	}
	n := len(b)
	buf = append(buf, byte(stringLong+intLen(n)))
	return append(appendUint(buf, n), b...)
}

func encodeList(buf []byte, val reflect.Value) ([]byte, error) {
	var content []byte
	for i := 0; i < val.Len(); i++ {
		var err error
		content, err = encode(content, val.Index(i))
		if err != nil {
			return nil, err
		}
	}
	if len(content) < 56 {
		buf = append(buf, byte(listShort+len(content)))
		return append(buf, content...), nil
	}
	n := len(content)
	buf = append(buf, byte(listLong+intLen(n)))
	return append(appendUint(buf, n), content...), nil
}

// intLen returns how many bytes are needed to hold n big-endian.
func intLen(n int) int {
	switch {
	case n < 1<<8:
		return 1
	case n < 1<<16:
		return 2
	case n < 1<<24:
		return 3
	default:
		return 4
	}
}

func appendUint(buf []byte, n int) []byte {
	width := intLen(n)
	start := len(buf)
	buf = append(buf, make([]byte, width)...)
	for i := width - 1; i >= 0; i-- {
		buf[start+i] = byte(n)
		n >>= 8
	}
	return buf
}
