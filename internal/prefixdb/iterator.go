package prefixdb

import (
	"bytes"

	"github.com/dgraph-io/badger/v4"
)

// UnpackFunc decodes a raw (key, value) pair into a row's typed key/value,
// the same shape every row's UnpackKey/UnpackValue pair produces.
type UnpackFunc[K any, V any] func(key, value []byte) (K, V, error)

// Iterator walks a contiguous key range and decodes each item with a row's
// unpack function. It implements io.Closer; callers must Close it to
// release the underlying badger transaction and iterator, per §5's
// resource-ownership rule that every iterator is closeable.
type Iterator[K any, V any] struct {
	txn    *badger.Txn
	it     *badger.Iterator
	prefix []byte
	limit  int
	seen   int
	unpack UnpackFunc[K, V]
	err    error
}

// NewIterator opens a forward (ascending) iterator over all keys sharing
// prefix, decoding each item with unpack. limit <= 0 means unbounded.
func (db *DB) NewIterator[K any, V any](prefix []byte, unpack UnpackFunc[K, V], limit int) *Iterator[K, V] {
	return newIterator(db, prefix, unpack, limit, false)
}

// NewReverseIterator opens a descending iterator over all keys sharing
// prefix, decoding each item with unpack. limit <= 0 means unbounded.
func (db *DB) NewReverseIterator[K any, V any](prefix []byte, unpack UnpackFunc[K, V], limit int) *Iterator[K, V] {
	return newIterator(db, prefix, unpack, limit, true)
}

func newIterator[K any, V any](db *DB, prefix []byte, unpack UnpackFunc[K, V], limit int, reverse bool) *Iterator[K, V] {
	txn := db.bdb.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.Reverse = reverse
	opts.Prefix = prefix
	it := txn.NewIterator(opts)

	seek := append([]byte(nil), prefix...)
	if reverse {
		// In reverse mode badger seeks to the greatest key <= seek, so the
		// seek key must be the prefix's upper bound, not its lower bound.
		seek = prefixUpperBound(prefix)
	}
	it.Seek(seek)

	return &Iterator[K, V]{
		txn:    txn,
		it:     it,
		prefix: append([]byte(nil), prefix...),
		limit:  limit,
		unpack: unpack,
	}
}

// prefixUpperBound returns the smallest key greater than every key sharing
// prefix, used to seek a reverse iterator to the last matching key.
func prefixUpperBound(prefix []byte) []byte {
	bound := append([]byte(nil), prefix...)
	for i := len(bound) - 1; i >= 0; i-- {
		if bound[i] != 0xff {
			bound[i]++
			return bound[:i+1]
		}
	}
	// prefix is all 0xff bytes: every key is <= it, so there is no bound
	// to seek past; fall back to the widest possible key.
	return bytes.Repeat([]byte{0xff}, len(prefix)+8)
}

// Next reports whether the cursor is on an item under the prefix and
// within the limit. It does not move the cursor; Advance does. It must be
// called before each Item access.
func (iter *Iterator[K, V]) Next() bool {
	if iter.err != nil {
		return false
	}
	if iter.limit > 0 && iter.seen >= iter.limit {
		return false
	}
	if !iter.it.ValidForPrefix(iter.prefix) {
		return false
	}
	iter.seen++
	return true
}

// Advance moves the cursor forward after the caller has consumed the
// current item. Item never calls it, so callers control pacing explicitly
// via the loop shape: for it.Next() { k, v, err := it.Item(); ... it.Advance() }.
func (iter *Iterator[K, V]) Advance() {
	iter.it.Next()
}

// Item decodes the current key/value pair.
func (iter *Iterator[K, V]) Item() (key K, value V, err error) {
	item := iter.it.Item()
	rawKey := item.KeyCopy(nil)
	rawValue, err := item.ValueCopy(nil)
	if err != nil {
		iter.err = err
		return key, value, err
	}
	key, value, err = iter.unpack(rawKey, rawValue)
	if err != nil {
		iter.err = err
	}
	return key, value, err
}

// Err returns the first error encountered during iteration, if any.
func (iter *Iterator[K, V]) Err() error { return iter.err }

// Close releases the iterator and its underlying transaction.
func (iter *Iterator[K, V]) Close() error {
	iter.it.Close()
	iter.txn.Discard()
	return nil
}
