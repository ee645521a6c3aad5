package trie

import "fmt"

// The trie is a tree of four node variants. Null is represented by the
// Go nil node interface value rather than a dedicated type — an absent
// subtree carries no data of its own, so there is nothing a concrete
// Null type would add. Based on go-ethereum/trie/node.go's node sum
// type, trimmed to exactly the four variants the design calls for (no
// hashNode/valueNode split — this trie holds its whole graph in memory
// and never lazily resolves a child by hash).
type node interface {
	isNode()
}

// leafNode is a terminal mapping: the remaining nibble path k maps to
// value v.
type leafNode struct {
	Key []byte // nibble path
	Val []byte
}

// extensionNode compresses a shared nibble prefix. Its child is always
// a *branchNode (invariant I1/I3): canonical insertion never produces
// an Extension-Extension chain or an Extension over a Leaf.
type extensionNode struct {
	Key []byte // nibble prefix, never empty
	Val node
}

// branchNode fans out 16-way by nibble. Val holds the value for the
// key that terminates exactly here, nil if none.
type branchNode struct {
	Children [16]node
	Val      []byte
}

func (*leafNode) isNode()      {}
func (*extensionNode) isNode() {}
func (*branchNode) isNode()    {}

func (n *branchNode) clone() *branchNode {
	c := *n
	return &c
}

// occupancies counts non-nil children plus a present value, used to
// assert invariant I2 in tests (a canonical Branch never ends up with
// fewer than two).
func (n *branchNode) occupancies() int {
	count := 0
	for _, c := range n.Children {
		if c != nil {
			count++
		}
	}
	if n.Val != nil {
		count++
	}
	return count
}

// encodeNode produces the full RLP encoding of a node, per the wire
// format in spec.md §4.2:
//
//	Null      -> empty RLP string (0x80)
//	Leaf      -> list[compactEncode(key, leaf=true), value]
//	Extension -> list[compactEncode(key, leaf=false), hashOrRaw(child)]
//	Branch    -> list of 17: 16 hashOrRaw(children), then value or empty
func encodeNode(n node) []byte {
	switch v := n.(type) {
	case nil:
		return rlpItem(nil)
	case *leafNode:
		return rlpList(rlpItem(compactEncode(v.Key, true)), rlpItem(v.Val))
	case *extensionNode:
		return rlpList(rlpItem(compactEncode(v.Key, false)), rlpItem(hashOrRaw(v.Val)))
	case *branchNode:
		items := make([][]byte, 0, 17)
		for i := 0; i < 16; i++ {
			items = append(items, rlpItem(hashOrRaw(v.Children[i])))
		}
		items = append(items, rlpItem(v.Val))
		return rlpList(items...)
	default:
		panic(fmt.Sprintf("trie: unknown node type %T", n))
	}
}

// hashOrRaw is the MPT inlining rule: if a child's encoding is shorter
// than 32 bytes it is embedded as-is, otherwise its Keccak-256 hash
// stands in for it. The caller always wraps the result as an RLP
// string item (rlpItem), matching the source's "always append as
// bytes" behavior for child references.
func hashOrRaw(n node) []byte {
	enc := encodeNode(n)
	if len(enc) < 32 {
		return enc
	}
	return keccak256(enc)
}

// decodeNode inverts encodeNode. It dispatches on item count: an
// empty top-level string decodes to Null, a 2-item list to Leaf or
// Extension (distinguished by the leaf flag in the compact path's
// header byte), a 17-item list to Branch.
func decodeNode(buf []byte) (node, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedEncoding)
	}

	if buf[0] < 0xc0 {
		content, rest, err := splitString(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("%w: trailing bytes after top-level string", ErrMalformedEncoding)
		}
		if len(content) != 0 {
			return nil, fmt.Errorf("%w: non-list top-level value", ErrMalformedEncoding)
		}
		return nil, nil
	}

	content, rest, err := splitList(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after top-level list", ErrMalformedEncoding)
	}

	var items [][]byte
	for len(content) > 0 {
		item, r, err := splitString(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
		}
		items = append(items, item)
		content = r
	}

	switch len(items) {
	case 2:
		nibbles, isLeaf, err := compactDecode(items[0])
		if err != nil {
			return nil, err
		}
		if isLeaf {
			return &leafNode{Key: nibbles, Val: cloneBytes(items[1])}, nil
		}
		child, err := decodeChildRef(items[1])
		if err != nil {
			return nil, err
		}
		return &extensionNode{Key: nibbles, Val: child}, nil

	case 17:
		br := &branchNode{}
		for i := 0; i < 16; i++ {
			child, err := decodeChildRef(items[i])
			if err != nil {
				return nil, err
			}
			br.Children[i] = child
		}
		if len(items[16]) > 0 {
			br.Val = cloneBytes(items[16])
		}
		return br, nil

	default:
		return nil, fmt.Errorf("%w: wrong item count %d", ErrMalformedEncoding, len(items))
	}
}

// decodeChildRef decodes the embedded bytes from a branch child slot
// or an extension's next pointer. A 32-byte payload is treated as a
// hash reference to a node this in-memory decoder cannot resolve, and
// is recorded as Null — this is the documented limitation that bounds
// decodeNode to tries whose every encoded sub-node was small enough
// to inline (see design notes).
func decodeChildRef(raw []byte) (node, error) {
	if len(raw) == 32 {
		return nil, nil
	}
	return decodeNode(raw)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
