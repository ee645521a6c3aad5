// Package leveldb adapts github.com/syndtr/goleveldb into a
// store.Store, the CLI's persistent backend: insert/get/proof state
// survives between invocations under a single on-disk directory.
package leveldb

import (
	"fmt"
	"sync"

	"mpt/store"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Database wraps a goleveldb handle.
type Database struct {
	fn string
	db *leveldb.DB

	quitLock sync.Mutex
	quitChan chan chan error
}

// New opens (or creates) the LevelDB database at file. cache is a
// memory allowance in MB, half of which goes to the block cache and a
// quarter to the write buffer; handles is the open-file cache
// capacity. Either value below 16 is raised to 16.
func New(file string, cache int, handles int) (*Database, error) {
	return NewCustom(file, func(options *opt.Options) {
		if cache < 16 {
			cache = 16
		}
		if handles < 16 {
			handles = 16
		}
		options.OpenFilesCacheCapacity = handles
		options.BlockCacheCapacity = cache / 2 * opt.MiB
		options.WriteBuffer = cache / 4 * opt.MiB
		options.Filter = filter.NewBloomFilter(10)
	})
}

// NewCustom opens file with a caller-supplied options customizer.
func NewCustom(file string, customize func(options *opt.Options)) (*Database, error) {
	options := &opt.Options{
		OpenFilesCacheCapacity: 16,
		BlockCacheCapacity:     16 * opt.MiB,
		WriteBuffer:            8 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	}
	if customize != nil {
		customize(options)
	}

	db, err := leveldb.OpenFile(file, options)
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(file, nil)
	}
	if err != nil {
		return nil, err
	}

	return &Database{fn: file, db: db, quitChan: make(chan chan error)}, nil
}

func (db *Database) Close() error {
	db.quitLock.Lock()
	defer db.quitLock.Unlock()

	if db.quitChan != nil {
		close(db.quitChan)
		db.quitChan = nil
	}
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

func (db *Database) Has(key []byte) (bool, error) { return db.db.Has(key, nil) }

func (db *Database) Get(key []byte) ([]byte, error) { return db.db.Get(key, nil) }

func (db *Database) Put(key []byte, value []byte) error { return db.db.Put(key, value, nil) }

func (db *Database) Delete(key []byte) error { return db.db.Delete(key, nil) }

func (db *Database) NewBatch() store.Batch {
	return &batch{db: db.db, b: new(leveldb.Batch)}
}

func (db *Database) NewBatchWithSize(size int) store.Batch {
	return &batch{db: db.db, b: new(leveldb.Batch)}
}

func (db *Database) NewIterator(prefix []byte, start []byte) store.Iterator {
	r := util.BytesPrefix(prefix)
	if start != nil {
		r.Start = append(append([]byte{}, prefix...), start...)
	}
	return &iter{iter: db.db.NewIterator(r, nil)}
}

func (db *Database) Stat(property string) (string, error) { return db.db.GetProperty(property) }

func (db *Database) Compact(start []byte, limit []byte) error {
	return db.db.CompactRange(util.Range{Start: start, Limit: limit})
}

// Path returns the on-disk directory backing db.
func (db *Database) Path() string { return db.fn }

func (db *Database) String() string { return fmt.Sprintf("LevelDB: %s", db.fn) }

type batch struct {
	db   *leveldb.DB
	b    *leveldb.Batch
	size int
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	b.size += len(key) + len(value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	b.size += len(key)
	return nil
}

func (b *batch) ValueSize() int { return b.size }

func (b *batch) Write() error { return b.db.Write(b.b, nil) }

func (b *batch) Reset() {
	b.b.Reset()
	b.size = 0
}

func (b *batch) Replay(w store.KeyValueWriter) error {
	return b.b.Replay(&replayer{writer: w})
}

type replayer struct {
	writer store.KeyValueWriter
	err    error
}

func (r *replayer) Put(key, value []byte) {
	if r.err != nil {
		return
	}
	r.err = r.writer.Put(key, value)
}

func (r *replayer) Delete(key []byte) {
	if r.err != nil {
		return
	}
	r.err = r.writer.Delete(key)
}

type iter struct {
	iter iterator.Iterator
}

func (it *iter) Next() bool    { return it.iter.Next() }
func (it *iter) Error() error  { return it.iter.Error() }
func (it *iter) Key() []byte   { return it.iter.Key() }
func (it *iter) Value() []byte { return it.iter.Value() }
func (it *iter) Release()      { it.iter.Release() }
