// Package memorydb is an in-memory store.Store, used by the CLI's
// demo subcommand where persistence across process runs is not
// wanted.
package memorydb

import (
	"bytes"
	"errors"
	"sort"
	"sync"

	"mpt/store"
)

// Database is a store.Store backed by a plain map, safe for
// concurrent use.
type Database struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// New returns an empty in-memory store.
func New() *Database {
	return &Database{db: make(map[string][]byte)}
}

// NewWithCap returns an empty in-memory store sized for size entries.
func NewWithCap(size int) *Database {
	return &Database{db: make(map[string][]byte, size)}
}

func (db *Database) Close() error { return nil }

func (db *Database) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	_, ok := db.db[string(key)]
	return ok, nil
}

func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	entry, ok := db.db[string(key)]
	if !ok {
		return nil, errors.New("memorydb: not found")
	}
	return append([]byte(nil), entry...), nil
}

func (db *Database) Put(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	db.db[string(key)] = append([]byte(nil), value...)
	return nil
}

func (db *Database) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	delete(db.db, string(key))
	return nil
}

func (db *Database) NewBatch() store.Batch {
	return &batch{db: db}
}

func (db *Database) NewBatchWithSize(size int) store.Batch {
	return &batch{db: db}
}

func (db *Database) NewIterator(prefix []byte, start []byte) store.Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()

	var keys []string
	for key := range db.db {
		if !bytes.HasPrefix([]byte(key), prefix) {
			continue
		}
		if start != nil && bytes.Compare([]byte(key), append(append([]byte{}, prefix...), start...)) < 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make(map[string][]byte, len(keys))
	for _, key := range keys {
		values[key] = append([]byte(nil), db.db[key]...)
	}

	return &iterator{keys: keys, values: values, index: -1}
}

func (db *Database) Stat(property string) (string, error) {
	return "", errors.New("memorydb: stat not supported")
}

func (db *Database) Compact(start []byte, limit []byte) error { return nil }

// Len returns the number of stored entries.
func (db *Database) Len() int {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return len(db.db)
}

type batch struct {
	db     *Database
	writes []keyvalue
	size   int
}

type keyvalue struct {
	key    []byte
	value  []byte
	delete bool
}

func (b *batch) Put(key, value []byte) error {
	b.writes = append(b.writes, keyvalue{append([]byte(nil), key...), append([]byte(nil), value...), false})
	b.size += len(key) + len(value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.writes = append(b.writes, keyvalue{append([]byte(nil), key...), nil, true})
	b.size += len(key)
	return nil
}

func (b *batch) ValueSize() int { return b.size }

func (b *batch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()

	for _, kv := range b.writes {
		if kv.delete {
			delete(b.db.db, string(kv.key))
		} else {
			b.db.db[string(kv.key)] = kv.value
		}
	}
	return nil
}

func (b *batch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}

func (b *batch) Replay(w store.KeyValueWriter) error {
	for _, kv := range b.writes {
		var err error
		if kv.delete {
			err = w.Delete(kv.key)
		} else {
			err = w.Put(kv.key, kv.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type iterator struct {
	keys   []string
	values map[string][]byte
	index  int
}

func (it *iterator) Next() bool {
	it.index++
	return it.index < len(it.keys)
}

func (it *iterator) Error() error { return nil }

func (it *iterator) Key() []byte {
	if it.index < 0 || it.index >= len(it.keys) {
		return nil
	}
	return []byte(it.keys[it.index])
}

func (it *iterator) Value() []byte {
	if it.index < 0 || it.index >= len(it.keys) {
		return nil
	}
	return it.values[it.keys[it.index]]
}

func (it *iterator) Release() {
	it.keys = nil
	it.values = nil
	it.index = -1
}
