package main

import (
	"bytes"
	"testing"
)

// TestStorePersistenceAcrossOpens verifies that insert/get round-trip
// through a fresh store.Store instance, the way two separate CLI
// invocations would.
func TestStorePersistenceAcrossOpens(t *testing.T) {
	datadir := t.TempDir()

	s1, err := openStore(datadir)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}

	t1, err := loadTrie(s1)
	if err != nil {
		t.Fatalf("loadTrie (fresh): %v", err)
	}
	t1.Insert([]byte("dog"), []byte("puppy"))
	t1.Insert([]byte("doge"), []byte("coin"))
	if err := saveTrie(s1, t1); err != nil {
		t.Fatalf("saveTrie: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := openStore(datadir)
	if err != nil {
		t.Fatalf("reopen openStore: %v", err)
	}
	defer s2.Close()

	t2, err := loadTrie(s2)
	if err != nil {
		t.Fatalf("loadTrie (reopened): %v", err)
	}

	got, ok := t2.Get([]byte("dog"))
	if !ok || !bytes.Equal(got, []byte("puppy")) {
		t.Fatalf("Get(dog) after reopen = %q, %v, want puppy, true", got, ok)
	}
	if t2.RootHash() != t1.RootHash() {
		t.Fatalf("root hash changed across reopen: %x != %x", t2.RootHash(), t1.RootHash())
	}
}

// TestLoadTrieOnEmptyStoreIsEmptyTrie verifies a freshly opened store
// with no prior snapshot yields an empty trie rather than an error.
func TestLoadTrieOnEmptyStoreIsEmptyTrie(t *testing.T) {
	s, err := openStore(t.TempDir())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer s.Close()

	tr, err := loadTrie(s)
	if err != nil {
		t.Fatalf("loadTrie: %v", err)
	}
	if _, ok := tr.Get([]byte("anything")); ok {
		t.Fatal("expected empty trie to report every key as not found")
	}
}
