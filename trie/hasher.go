package trie

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Keccak-256 is Ethereum's pre-standardization Keccak (padding byte
// 0x01), not NIST SHA-3-256 — golang.org/x/crypto/sha3's
// NewLegacyKeccak256 is exactly that variant. Based on
// go-ethereum/trie/hasher.go's pooled hasher.
var hasherPool = sync.Pool{
	New: func() interface{} {
		return sha3.NewLegacyKeccak256()
	},
}

// keccak256 returns the 32-byte Keccak-256 digest of data.
func keccak256(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()
	h.Write(data)
	return h.Sum(nil)
}

// emptyRootHash is Keccak256(0x80), the root hash of a trie with no
// entries — the RLP encoding of a Null root is the single byte 0x80,
// and root hashing always hashes the root encoding unconditionally
// (never the hash_or_raw-inlined form).
var emptyRootHash = [32]byte(func() []byte {
	return keccak256([]byte{0x80})
}())
