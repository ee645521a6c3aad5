package trie

import (
	"fmt"
	"io"
)

// Minimal RLP primitives for node encoding. The node codec needs exact
// control over how each field is wrapped (always a bare string item,
// never a value routed through reflection), so it doesn't reuse the
// generic reflection-based codec in the top-level rlp package — this
// mirrors how the teacher's trie/node.go hand-rolls an encBuffer
// instead of calling into its own rlp.Encode.

// rlpItem encodes b as an RLP string.
func rlpItem(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return []byte{b[0]}
	}
	if len(b) < 56 {
		out := make([]byte, 0, len(b)+1)
		out = append(out, byte(0x80+len(b)))
		return append(out, b...)
	}
	lenLen := intLen(len(b))
	out := make([]byte, 0, len(b)+1+lenLen)
	out = append(out, byte(0xb7+lenLen))
	out = append(out, intToBytes(len(b), lenLen)...)
	return append(out, b...)
}

// rlpList concatenates already-encoded items under an RLP list header.
func rlpList(items ...[]byte) []byte {
	size := 0
	for _, it := range items {
		size += len(it)
	}

	var header []byte
	if size < 56 {
		header = []byte{byte(0xc0 + size)}
	} else {
		lenLen := intLen(size)
		header = make([]byte, 0, 1+lenLen)
		header = append(header, byte(0xf7+lenLen))
		header = append(header, intToBytes(size, lenLen)...)
	}

	out := make([]byte, 0, len(header)+size)
	out = append(out, header...)
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

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

func intToBytes(n, width int) []byte {
	b := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	return b
}

// splitList splits an RLP list into its content and the remaining bytes.
func splitList(buf []byte) (content, rest []byte, err error) {
	if len(buf) == 0 {
		return nil, nil, io.ErrUnexpectedEOF
	}
	b := buf[0]
	if b < 0xc0 {
		return nil, nil, fmt.Errorf("not a list (first byte 0x%02x)", b)
	}
	if b < 0xf8 {
		size := int(b - 0xc0)
		if len(buf) < 1+size {
			return nil, nil, io.ErrUnexpectedEOF
		}
		return buf[1 : 1+size], buf[1+size:], nil
	}
	lenLen := int(b - 0xf7)
	if len(buf) < 1+lenLen {
		return nil, nil, io.ErrUnexpectedEOF
	}
	size := 0
	for i := 0; i < lenLen; i++ {
		size = size<<8 | int(buf[1+i])
	}
	start := 1 + lenLen
	if len(buf) < start+size {
		return nil, nil, io.ErrUnexpectedEOF
	}
	return buf[start : start+size], buf[start+size:], nil
}

// splitString splits an RLP string (or single byte) into its content
// and the remaining bytes.
func splitString(buf []byte) (content, rest []byte, err error) {
	if len(buf) == 0 {
		return nil, nil, io.ErrUnexpectedEOF
	}
	b := buf[0]
	if b < 0x80 {
		return buf[:1], buf[1:], nil
	}
	if b < 0xb8 {
		size := int(b - 0x80)
		if len(buf) < 1+size {
			return nil, nil, io.ErrUnexpectedEOF
		}
		return buf[1 : 1+size], buf[1+size:], nil
	}
	if b < 0xc0 {
		lenLen := int(b - 0xb7)
		if len(buf) < 1+lenLen {
			return nil, nil, io.ErrUnexpectedEOF
		}
		size := 0
		for i := 0; i < lenLen; i++ {
			size = size<<8 | int(buf[1+i])
		}
		start := 1 + lenLen
		if len(buf) < start+size {
			return nil, nil, io.ErrUnexpectedEOF
		}
		return buf[start : start+size], buf[start+size:], nil
	}
	return nil, nil, fmt.Errorf("not a string (first byte 0x%02x)", b)
}
