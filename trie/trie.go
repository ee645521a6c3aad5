package trie

import "bytes"

// Trie is an authenticated, persistent key-value map: its root hash
// commits to the whole mapping, and membership can be proven without
// handing over the whole structure. Based on go-ethereum/trie/trie.go,
// simplified to the in-memory, deletion-free engine this design calls
// for — no backing key-value store, no lazy hash resolution.
//
// A Trie owns its node graph exclusively; it is not safe for
// concurrent use, matching the single-threaded, synchronous model in
// the design notes.
type Trie struct {
	root node
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{}
}

// Insert associates key with value, overwriting any existing value for
// key. Keys and values may be any byte string; an empty value is
// accepted, but on a Branch it encodes the same as "no value", so it
// does not change the root hash and VerifyProof reports it as absent
// (Get still returns it as found when it was given as a non-nil slice).
func (t *Trie) Insert(key, value []byte) {
	t.root = insertAt(t.root, toNibbles(key), value)
}

func insertAt(n node, key, value []byte) node {
	switch v := n.(type) {
	case nil:
		return &leafNode{Key: cloneBytes(key), Val: value}

	case *leafNode:
		return insertIntoLeaf(v, key, value)

	case *extensionNode:
		return insertIntoExtension(v, key, value)

	case *branchNode:
		if len(key) == 0 {
			nv := v.clone()
			nv.Val = value
			return nv
		}
		nv := v.clone()
		nv.Children[key[0]] = insertAt(v.Children[key[0]], key[1:], value)
		return nv
	}
	panic("trie: unreachable node type")
}

func insertIntoLeaf(v *leafNode, key, value []byte) node {
	c := commonPrefixLen(v.Key, key)

	switch {
	case c == len(v.Key) && c == len(key):
		// Exact match: overwrite.
		return &leafNode{Key: v.Key, Val: value}

	case c == len(v.Key) && c < len(key):
		// v.Key is a strict prefix of key: v's value terminates at the
		// new branch, the new key continues one nibble further.
		branch := &branchNode{Val: v.Val}
		branch.Children[key[c]] = &leafNode{Key: cloneBytes(key[c+1:]), Val: value}
		return wrapExtension(key[:c], branch)

	case c == len(key) && c < len(v.Key):
		// Symmetric: key is a strict prefix of v.Key.
		branch := &branchNode{Val: value}
		branch.Children[v.Key[c]] = &leafNode{Key: cloneBytes(v.Key[c+1:]), Val: v.Val}
		return wrapExtension(key[:c], branch)

	default:
		// Diverge partway through both keys.
		branch := &branchNode{}
		branch.Children[v.Key[c]] = &leafNode{Key: cloneBytes(v.Key[c+1:]), Val: v.Val}
		branch.Children[key[c]] = &leafNode{Key: cloneBytes(key[c+1:]), Val: value}
		return wrapExtension(key[:c], branch)
	}
}

func insertIntoExtension(v *extensionNode, key, value []byte) node {
	c := commonPrefixLen(v.Key, key)

	if c == len(v.Key) {
		return &extensionNode{Key: v.Key, Val: insertAt(v.Val, key[c:], value)}
	}

	branch := &branchNode{}

	// The extension's own remainder after the split point.
	if len(v.Key)-c > 1 {
		branch.Children[v.Key[c]] = &extensionNode{Key: cloneBytes(v.Key[c+1:]), Val: v.Val}
	} else {
		// Exactly one nibble left: reuse the branch directly rather
		// than wrapping it in a zero-length extension (invariant I1).
		branch.Children[v.Key[c]] = v.Val
	}

	if c == len(key) {
		branch.Val = value
	} else {
		branch.Children[key[c]] = &leafNode{Key: cloneBytes(key[c+1:]), Val: value}
	}

	return wrapExtension(key[:c], branch)
}

// wrapExtension wraps branch in an Extension over prefix, unless
// prefix is empty — a zero-length extension is never constructed
// (invariant I1).
func wrapExtension(prefix []byte, branch *branchNode) node {
	if len(prefix) == 0 {
		return branch
	}
	return &extensionNode{Key: cloneBytes(prefix), Val: branch}
}

// Get returns the value associated with key and whether it was found.
func (t *Trie) Get(key []byte) ([]byte, bool) {
	return getAt(t.root, toNibbles(key))
}

func getAt(n node, key []byte) ([]byte, bool) {
	switch v := n.(type) {
	case nil:
		return nil, false

	case *leafNode:
		if bytes.Equal(v.Key, key) {
			return v.Val, true
		}
		return nil, false

	case *extensionNode:
		if len(key) < len(v.Key) || !bytes.Equal(v.Key, key[:len(v.Key)]) {
			return nil, false
		}
		return getAt(v.Val, key[len(v.Key):])

	case *branchNode:
		if len(key) == 0 {
			if v.Val == nil {
				return nil, false
			}
			return v.Val, true
		}
		return getAt(v.Children[key[0]], key[1:])
	}
	panic("trie: unreachable node type")
}

// RootHash returns the Keccak-256 hash of the root node's RLP
// encoding. Unlike hashOrRaw, the root is always hashed, even when its
// own encoding is shorter than 32 bytes. The empty trie's root hash is
// Keccak256(0x80).
func (t *Trie) RootHash() [32]byte {
	if t.root == nil {
		return emptyRootHash
	}
	var out [32]byte
	copy(out[:], keccak256(encodeNode(t.root)))
	return out
}

// GetProof returns the ordered list of node encodings visited while
// walking key from the root — the same path Get would walk, including
// a walk into a Null child or a mismatching Leaf/Extension, which
// yields a proof of absence. Each item is the node's full RLP
// encoding, never the hash_or_raw-inlined form: the verifier needs the
// body to recover the next nibble step.
func (t *Trie) GetProof(key []byte) [][]byte {
	nibbles := toNibbles(key)
	var proof [][]byte

	n := t.root
	for {
		proof = append(proof, encodeNode(n))

		switch v := n.(type) {
		case nil:
			return proof
		case *leafNode:
			return proof
		case *extensionNode:
			if len(nibbles) < len(v.Key) || !bytes.Equal(v.Key, nibbles[:len(v.Key)]) {
				return proof
			}
			nibbles = nibbles[len(v.Key):]
			n = v.Val
		case *branchNode:
			if len(nibbles) == 0 {
				return proof
			}
			n = v.Children[nibbles[0]]
			nibbles = nibbles[1:]
		}
	}
}

// VerifyProof checks proof against rootHash and key, returning the
// proven value and true on success. Every failure mode — an empty
// proof, a root mismatch, or a proof whose path doesn't lead to a
// terminating node — collapses to (nil, false), matching the source's
// policy of never distinguishing them at this boundary. See
// verifyProofErr for the typed version used in tests.
func VerifyProof(rootHash [32]byte, key []byte, proof [][]byte) ([]byte, bool) {
	val, err := verifyProofErr(rootHash, key, proof)
	if err != nil {
		return nil, false
	}
	return val, true
}

// verifyProofErr is VerifyProof with the failure mode preserved,
// exposed for tests that want to assert which error kind triggered.
// Proof items are decoded independently rather than recursively, so a
// forged middle item is not checked against the hash its parent
// embedded — a known soundness gap, see design notes.
func verifyProofErr(rootHash [32]byte, key []byte, proof [][]byte) ([]byte, error) {
	if len(proof) == 0 {
		return nil, ErrProofEmpty
	}

	var rootSum [32]byte
	copy(rootSum[:], keccak256(proof[0]))
	if rootSum != rootHash {
		return nil, ErrProofRootMismatch
	}

	nibbles := toNibbles(key)
	for _, item := range proof {
		n, err := decodeNode(item)
		if err != nil {
			return nil, err
		}

		switch v := n.(type) {
		case nil:
			return nil, ErrProofPathInvalid

		case *leafNode:
			if bytes.Equal(v.Key, nibbles) {
				return v.Val, nil
			}
			return nil, ErrProofPathInvalid

		case *extensionNode:
			if len(nibbles) < len(v.Key) || !bytes.Equal(v.Key, nibbles[:len(v.Key)]) {
				return nil, ErrProofPathInvalid
			}
			nibbles = nibbles[len(v.Key):]

		case *branchNode:
			if len(nibbles) == 0 {
				if v.Val != nil {
					return v.Val, nil
				}
				return nil, ErrProofPathInvalid
			}
			nibbles = nibbles[1:]
		}
	}

	return nil, ErrProofPathInvalid
}
