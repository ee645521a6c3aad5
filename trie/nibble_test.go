package trie

import (
	"bytes"
	"testing"
)

func TestToNibbles(t *testing.T) {
	tests := []struct {
		in   []byte
		want []byte
	}{
		{nil, []byte{}},
		{[]byte{0xAB}, []byte{0xA, 0xB}},
		{[]byte{0x12, 0x34}, []byte{0x1, 0x2, 0x3, 0x4}},
	}
	for _, tt := range tests {
		got := toNibbles(tt.in)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("toNibbles(%x) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCommonPrefixLen(t *testing.T) {
	tests := []struct {
		a, b []byte
		want int
	}{
		{nil, nil, 0},
		{[]byte{1, 2, 3}, nil, 0},
		{[]byte{1, 2, 3}, []byte{1, 2, 4}, 2},
		{[]byte{1, 2}, []byte{1, 2, 3}, 2},
		{[]byte{5}, []byte{6}, 0},
	}
	for _, tt := range tests {
		got := commonPrefixLen(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("commonPrefixLen(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// Bit-exact vectors from the design doc.
func TestCompactEncode(t *testing.T) {
	tests := []struct {
		nibbles []byte
		isLeaf  bool
		want    []byte
	}{
		{[]byte{}, true, []byte{0x20}},
		{[]byte{0xA, 0xB, 0xC}, true, []byte{0x3A, 0xBC}},
		{[]byte{0xA, 0xB}, false, []byte{0x00, 0xAB}},
		{[]byte{0x5}, false, []byte{0x15}},
		{[]byte{0xA, 0xB}, true, []byte{0x20, 0xAB}},
	}
	for _, tt := range tests {
		got := compactEncode(tt.nibbles, tt.isLeaf)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("compactEncode(%v, %v) = %x, want %x", tt.nibbles, tt.isLeaf, got, tt.want)
		}
	}
}

func TestCompactDecodeRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x1},
		{0xA, 0xB},
		{0xA, 0xB, 0xC},
		{0x0, 0x1, 0x2, 0x3, 0x4},
	}
	for _, nibbles := range cases {
		for _, isLeaf := range []bool{false, true} {
			enc := compactEncode(nibbles, isLeaf)
			gotNibbles, gotLeaf, err := compactDecode(enc)
			if err != nil {
				t.Fatalf("compactDecode(%x) error: %v", enc, err)
			}
			if gotLeaf != isLeaf {
				t.Errorf("compactDecode(%x) leaf = %v, want %v", enc, gotLeaf, isLeaf)
			}
			if !bytes.Equal(gotNibbles, nibbles) && !(len(gotNibbles) == 0 && len(nibbles) == 0) {
				t.Errorf("compactDecode(%x) nibbles = %v, want %v", enc, gotNibbles, nibbles)
			}
		}
	}
}

func TestCompactDecodeEmptyInput(t *testing.T) {
	if _, _, err := compactDecode(nil); err == nil {
		t.Fatal("expected error decoding empty compact path")
	}
}
