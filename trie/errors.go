package trie

import "errors"

// Sentinel errors for the node codec and proof verifier.
//
// VerifyProof itself never returns these to its caller — per the
// source design it collapses every failure mode into (nil, false).
// They exist so decodeNode/verifyProofErr can report precisely what
// went wrong, which the trie package's own tests rely on.
var (
	ErrMalformedEncoding = errors.New("trie: malformed encoding")
	ErrProofEmpty        = errors.New("trie: empty proof")
	ErrProofRootMismatch = errors.New("trie: proof root mismatch")
	ErrProofPathInvalid  = errors.New("trie: proof path invalid")
)
