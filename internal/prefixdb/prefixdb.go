// Package prefixdb is the prefix DB facade (component C4): it owns one
// badger.DB (an ordered, LSM-tree-style embedded key/value engine) and
// exposes atomic batches, forward/reverse iteration, point lookups, and a
// secondary read-only handle, the way the teacher's badger wiring opens
// and walks a store.
package prefixdb

import (
	"github.com/decred/dcrd/lru"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/ristretto"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
	"github.com/chainclaims/hub/internal/opstack"
	"github.com/chainclaims/hub/internal/prefixes"
)

// missingUndoCacheLimit bounds the negative cache of undo keys already
// known to be absent, so a reorg-monitoring caller retrying the same
// out-of-window height repeatedly doesn't re-hit badger every time.
const missingUndoCacheLimit = 256

// UnsafePrefixes is the allowlist named in §6.2: the undo row would
// otherwise recursively need its own undo record, and mempool_tx entries
// are never part of consensus state a reorg restores.
var UnsafePrefixes = []byte{prefixes.PrefixUndo, prefixes.PrefixMempoolTx}

// Options configures Open.
type Options struct {
	Path          string
	CacheMB       int64
	ReorgLimit    uint32
	SecondaryPath string
	ReadOnly      bool
}

// DB wraps a badger store with the row catalog and the write-generation
// machinery layered on top (§4.3).
type DB struct {
	bdb   *badger.DB
	cache *ristretto.Cache

	// missingUndo remembers undo keys already confirmed absent, so repeat
	// Rollback calls past the reorg window don't repeatedly hit badger.
	missingUndo *lru.Cache

	reorgLimit uint32
	guard      opstack.WriterGuard
	stack      *opstack.Stack
}

// Open opens (or creates) the store at opts.Path. When opts.ReadOnly is
// true or opts.SecondaryPath is non-empty, the store at opts.Path is
// opened read-only, the "secondary read-only handle" used by read-serving
// processes that never write; the SecondaryPath value itself is not used
// as a path.
func Open(opts Options) (*DB, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	if opts.ReadOnly || opts.SecondaryPath != "" {
		badgerOpts = badgerOpts.WithReadOnly(true)
	}
	bdb, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, errors.Wrap(err, "prefixdb: opening store")
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,
		MaxCost:     maxInt64(opts.CacheMB, 1) * 1024 * 1024,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "prefixdb: building read cache")
	}

	reorgLimit := opts.ReorgLimit
	if reorgLimit == 0 {
		reorgLimit = 200
	}

	db := &DB{
		bdb:         bdb,
		cache:       cache,
		missingUndo: lru.New(missingUndoCacheLimit),
		reorgLimit:  reorgLimit,
	}
	db.stack = opstack.New(db, UnsafePrefixes...)
	return db, nil
}

func maxInt64(v int64, min int64) int64 {
	if v < min {
		return min
	}
	return v
}

// Close releases the badger handle and the read cache.
func (db *DB) Close() error {
	db.cache.Close()
	return db.bdb.Close()
}

// Get is a point lookup, satisfying opstack.Reader so the write generation
// can capture before-images. It consults the ristretto cache first.
func (db *DB) Get(key []byte) ([]byte, error) {
	if v, ok := db.cache.Get(string(key)); ok {
		if v == nil {
			return nil, nil
		}
		return v.([]byte), nil
	}

	var value []byte
	err := db.bdb.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "prefixdb: point lookup")
	}
	db.cache.Set(string(key), value, int64(len(key)+len(value)))
	return value, nil
}

// Stack returns the current write generation's op buffer. Rows route their
// Put/Delete calls through it so every mutation in a block is captured
// together before the block commits.
func (db *DB) Stack() *opstack.Stack { return db.stack }

// ApplyBatch commits the current write generation atomically, writes the
// corresponding undo row entry keyed by (height, blockHash), and starts a
// fresh generation for the next block (§4.2 "atomic apply", §4.3
// apply_batch).
func (db *DB) ApplyBatch(height uint32, blockHash [32]byte) error {
	db.guard.Lock()
	defer db.guard.Unlock()

	ops := db.stack.Ops()
	undo, err := db.stack.Undo()
	if err != nil {
		return errors.Wrap(err, "prefixdb: serializing undo record")
	}

	wb := db.bdb.NewWriteBatch()
	defer wb.Cancel()
	for _, op := range ops {
		if op.IsDelete {
			if err := wb.Delete(op.Key); err != nil {
				return errors.Wrap(err, "prefixdb: batching delete")
			}
			db.cache.Del(string(op.Key))
			continue
		}
		if err := wb.Set(op.Key, op.NewValue); err != nil {
			return errors.Wrap(err, "prefixdb: batching put")
		}
		db.cache.Set(string(op.Key), op.NewValue, int64(len(op.Key)+len(op.NewValue)))
	}

	undoKey, undoValue := prefixes.Undo.PackItem(height, blockHash, undo)
	if err := wb.Set(undoKey, undoValue); err != nil {
		return errors.Wrap(err, "prefixdb: batching undo record")
	}

	if err := wb.Flush(); err != nil {
		return errors.Wrap(err, "prefixdb: flushing batch")
	}

	glog.V(1).Infof("prefixdb: applied batch of %d ops at height %d (block %s)", len(ops), height, codec.DisplayHash(blockHash))
	db.stack.Reset()
	return nil
}

// Rollback reverts the block at (height, blockHash) by reading its undo
// record and re-applying the inverse ops directly, outside the normal
// write-generation flow. It returns huberr.ErrReorgWindowExceeded if no
// undo record exists for that height/hash, per §7's error taxonomy.
func (db *DB) Rollback(height uint32, blockHash [32]byte) error {
	db.guard.Lock()
	defer db.guard.Unlock()

	undoKey := prefixes.Undo.PackKey(height, blockHash)
	if db.missingUndo.Contains(string(undoKey)) {
		return huberr.ErrReorgWindowExceeded
	}

	raw, err := db.Get(undoKey)
	if err != nil {
		return errors.Wrap(err, "prefixdb: reading undo record")
	}
	if raw == nil {
		db.missingUndo.Add(string(undoKey))
		return huberr.ErrReorgWindowExceeded
	}

	ops, err := opstack.ApplyUndo(raw)
	if err != nil {
		return errors.Wrap(err, "prefixdb: decoding undo record")
	}

	wb := db.bdb.NewWriteBatch()
	defer wb.Cancel()
	for _, op := range ops {
		if op.IsDelete {
			if err := wb.Delete(op.Key); err != nil {
				return err
			}
			db.cache.Del(string(op.Key))
			continue
		}
		if err := wb.Set(op.Key, op.NewValue); err != nil {
			return err
		}
		db.cache.Set(string(op.Key), op.NewValue, int64(len(op.Key)+len(op.NewValue)))
	}
	if err := wb.Delete(undoKey); err != nil {
		return err
	}
	db.cache.Del(string(undoKey))

	if err := wb.Flush(); err != nil {
		return errors.Wrap(err, "prefixdb: flushing rollback batch")
	}
	glog.V(1).Infof("prefixdb: rolled back %d ops at height %d (block %s)", len(ops), height, codec.DisplayHash(blockHash))
	return nil
}

// AutoDecode exposes the row registry's auto-decoder (C5) for tooling that
// walks the store without knowing every row's concrete Go type.
func AutoDecode(key, value []byte) (decodedKey any, decodedValue any, ok bool) {
	return prefixes.AutoDecodeItem(key, value)
}
