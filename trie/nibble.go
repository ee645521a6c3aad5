package trie

import "fmt"

// Nibble codec: byte<->nibble conversion and the hex-prefix ("compact")
// packing of a node path. Loosely follows go-ethereum/trie/encoding.go,
// but without the terminator-nibble convention geth uses — leaf vs.
// extension is already carried by the node variant itself (see node.go),
// so a nibble sequence here is just the raw path, nothing more.

// toNibbles splits each byte of b into its high and low nibble,
// preserving order. An empty slice in yields an empty slice out.
func toNibbles(b []byte) []byte {
	n := make([]byte, len(b)*2)
	for i, v := range b {
		n[i*2] = v >> 4
		n[i*2+1] = v & 0x0f
	}
	return n
}

// commonPrefixLen returns the length of the longest common prefix of
// two nibble sequences.
func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// compactEncode packs a nibble sequence into bytes using hex-prefix
// encoding. The header nibble carries two flags: isLeaf (leaf vs.
// extension) and the parity of len(nibbles).
//
//	isLeaf=false, even len -> 0x0
//	isLeaf=false, odd len  -> 0x1
//	isLeaf=true,  even len -> 0x2
//	isLeaf=true,  odd len  -> 0x3
func compactEncode(nibbles []byte, isLeaf bool) []byte {
	odd := len(nibbles)%2 == 1

	var flag byte
	switch {
	case !isLeaf && !odd:
		flag = 0x0
	case !isLeaf && odd:
		flag = 0x1
	case isLeaf && !odd:
		flag = 0x2
	default:
		flag = 0x3
	}

	rest := nibbles
	out := make([]byte, 0, len(nibbles)/2+1)
	if odd {
		out = append(out, flag<<4|rest[0])
		rest = rest[1:]
	} else {
		out = append(out, flag<<4)
	}
	for i := 0; i < len(rest); i += 2 {
		out = append(out, rest[i]<<4|rest[i+1])
	}
	return out
}

// compactDecode inverts compactEncode, returning the original nibble
// sequence and the isLeaf flag. An empty input is rejected: every
// compact-encoded path carries at least the header byte.
func compactDecode(compact []byte) (nibbles []byte, isLeaf bool, err error) {
	if len(compact) == 0 {
		return nil, false, fmt.Errorf("%w: empty compact path", ErrMalformedEncoding)
	}

	header := compact[0]
	isLeaf = header&0x20 != 0
	odd := header&0x10 != 0

	out := make([]byte, 0, (len(compact)-1)*2+1)
	if odd {
		out = append(out, header&0x0f)
	}
	for _, b := range compact[1:] {
		out = append(out, b>>4, b&0x0f)
	}
	return out, isLeaf, nil
}
