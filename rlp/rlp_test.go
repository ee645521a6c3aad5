package rlp

import (
	"bytes"
	"testing"
)

func TestEncodeBytes(t *testing.T) {
	tests := []struct {
		input    []byte
		expected []byte
	}{
		{[]byte{}, []byte{0x80}},
		{[]byte{0x00}, []byte{0x00}},
		{[]byte("a"), []byte{'a'}},
		{[]byte("dog"), []byte{0x83, 'd', 'o', 'g'}},
		{[]byte{0x01, 0x02, 0x03}, []byte{0x83, 0x01, 0x02, 0x03}},
	}

	for _, tt := range tests {
		result, err := Encode(tt.input)
		if err != nil {
			t.Errorf("Encode(%x) error: %v", tt.input, err)
			continue
		}
		if !bytes.Equal(result, tt.expected) {
			t.Errorf("Encode(%x) = %x, want %x", tt.input, result, tt.expected)
		}
	}
}

func TestEncodeLongString(t *testing.T) {
	input := bytes.Repeat([]byte("x"), 56)
	result, err := Encode(input)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if result[0] != 0xb8 || result[1] != 56 {
		t.Fatalf("Encode(56 bytes) header = %x, want b8 38", result[:2])
	}
	if !bytes.Equal(result[2:], input) {
		t.Fatalf("Encode(56 bytes) content mismatch")
	}
}

func TestEncodeList(t *testing.T) {
	empty := [][]byte{}
	result, err := Encode(empty)
	if err != nil {
		t.Fatalf("Encode([]) error: %v", err)
	}
	if !bytes.Equal(result, []byte{0xc0}) {
		t.Errorf("Encode([]) = %x, want c0", result)
	}

	list := [][]byte{[]byte("cat"), []byte("dog")}
	result, err = Encode(list)
	if err != nil {
		t.Fatalf("Encode([cat dog]) error: %v", err)
	}
	expected := []byte{0xc8, 0x83, 'c', 'a', 't', 0x83, 'd', 'o', 'g'}
	if !bytes.Equal(result, expected) {
		t.Errorf("Encode([cat dog]) = %x, want %x", result, expected)
	}
}

func TestEncodeUnsupportedType(t *testing.T) {
	if _, err := Encode(42); err != ErrUnsupportedType {
		t.Fatalf("Encode(int) error = %v, want ErrUnsupportedType", err)
	}
}

func TestDecodeBytes(t *testing.T) {
	tests := []struct {
		input    []byte
		expected []byte
	}{
		{[]byte{0x80}, []byte{}},
		{[]byte{0x00}, []byte{0x00}},
		{[]byte{'a'}, []byte("a")},
		{[]byte{0x83, 'd', 'o', 'g'}, []byte("dog")},
	}

	for _, tt := range tests {
		var result []byte
		if err := Decode(tt.input, &result); err != nil {
			t.Errorf("Decode(%x) error: %v", tt.input, err)
			continue
		}
		if !bytes.Equal(result, tt.expected) {
			t.Errorf("Decode(%x) = %x, want %x", tt.input, result, tt.expected)
		}
	}
}

func TestDecodeList(t *testing.T) {
	input := []byte{0xc8, 0x83, 'c', 'a', 't', 0x83, 'd', 'o', 'g'}
	var result [][]byte
	if err := Decode(input, &result); err != nil {
		t.Fatalf("Decode(list) error: %v", err)
	}
	if len(result) != 2 || string(result[0]) != "cat" || string(result[1]) != "dog" {
		t.Fatalf("Decode(list) = %v, want [cat dog]", result)
	}
}

func TestDecodeRejectsNonCanonicalLength(t *testing.T) {
	// 0xb8 0x10 would claim a long-string header for a 16-byte string,
	// which canonically must use the short-string form instead.
	input := []byte{0xb8, 0x10}
	var result []byte
	if err := Decode(input, &result); err != ErrNonCanonical {
		t.Fatalf("Decode(non-canonical) error = %v, want ErrNonCanonical", err)
	}
}

// TestRoundTrip exercises exactly the shape trie/serialize.go relies
// on: a flat list of byte strings, round-tripped through Encode/Decode.
func TestRoundTrip(t *testing.T) {
	original := [][]byte{
		[]byte("dog"), []byte("puppy"),
		[]byte("doge"), []byte("coin"),
		[]byte(""), []byte("empty key"),
		bytes.Repeat([]byte{0xAB}, 60), []byte("long value"),
	}

	encoded, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	var decoded [][]byte
	if err := Decode(encoded, &decoded); err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	if len(decoded) != len(original) {
		t.Fatalf("Decode length = %d, want %d", len(decoded), len(original))
	}
	for i := range original {
		if !bytes.Equal(decoded[i], original[i]) {
			t.Errorf("entry %d = %x, want %x", i, decoded[i], original[i])
		}
	}
}

// TestRoundTripNestedLists exercises a list of lists, the shape the
// decoder's size-tracked (not EOF-tracked) list boundaries need to get
// right when one list is nested inside another.
func TestRoundTripNestedLists(t *testing.T) {
	original := [][][]byte{
		{[]byte("a"), []byte("b")},
		{},
		{bytes.Repeat([]byte{0x01}, 60)},
	}

	encoded, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	var decoded [][][]byte
	if err := Decode(encoded, &decoded); err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	if len(decoded) != len(original) {
		t.Fatalf("Decode length = %d, want %d", len(decoded), len(original))
	}
	for i := range original {
		if len(decoded[i]) != len(original[i]) {
			t.Fatalf("entry %d length = %d, want %d", i, len(decoded[i]), len(original[i]))
		}
		for j := range original[i] {
			if !bytes.Equal(decoded[i][j], original[i][j]) {
				t.Errorf("entry %d.%d = %x, want %x", i, j, decoded[i][j], original[i][j])
			}
		}
	}
}
