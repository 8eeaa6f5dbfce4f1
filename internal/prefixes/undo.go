package prefixes

import (
	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
)

// --- undo row: (height, block_hash) -> msgpack-encoded undo operations ---
//
// One undo record per applied block, keyed by height and block hash so a
// reorg can locate the exact record to replay backwards even if more than
// one block was ever seen at that height. undo is one of the two rows on
// the unsafe-prefix allowlist (§6.2): an op stack internal to the store
// itself writes undo records directly, bypassing the conflict tracking
// that every other row goes through.

type UndoKey struct {
	Height    uint32
	BlockHash [codec.TxHashLen]byte
}

type UndoValue struct {
	UndoOps []byte
}

type undoRow struct{}

var Undo undoRow

func init() { register(Undo) }

func (undoRow) Prefix() byte   { return PrefixUndo }
func (undoRow) CacheSize() int { return DefaultCacheSize }

func (undoRow) PackKey(height uint32, blockHash [codec.TxHashLen]byte) []byte {
	return concat([]byte{PrefixUndo}, codec.PutUint64BE(uint64(height)), blockHash[:])
}

func (undoRow) UnpackKey(key []byte) (UndoKey, error) {
	const fixed = 1 + 8 + codec.TxHashLen
	if err := requirePrefix(key, PrefixUndo, fixed); err != nil {
		return UndoKey{}, err
	}
	if len(key) != fixed {
		return UndoKey{}, huberr.Corrupt("undo key: expected %d bytes, got %d", fixed, len(key))
	}
	var k UndoKey
	k.Height = uint32(codec.GetUint64BE(key[1:9]))
	copy(k.BlockHash[:], key[9:])
	return k, nil
}

func (undoRow) PackValue(undoOps []byte) []byte { return undoOps }

func (undoRow) UnpackValue(data []byte) (UndoValue, error) {
	return UndoValue{UndoOps: data}, nil
}

func (r undoRow) PackItem(height uint32, blockHash [codec.TxHashLen]byte, undoOps []byte) (key, value []byte) {
	return r.PackKey(height, blockHash), r.PackValue(undoOps)
}

func (r undoRow) UnpackItem(key, value []byte) (any, any, error) {
	k, err := r.UnpackKey(key)
	if err != nil {
		return nil, nil, err
	}
	v, err := r.UnpackValue(value)
	if err != nil {
		return nil, nil, err
	}
	return k, v, nil
}

// KeyPart levels:
//
//	0: prefix
//	1: prefix || height
//	2: prefix || height || block_hash (== PackKey)
func (undoRow) KeyPart(level int, height uint32, blockHash [codec.TxHashLen]byte) []byte {
	switch level {
	case 0:
		return []byte{PrefixUndo}
	case 1:
		return concat([]byte{PrefixUndo}, codec.PutUint64BE(uint64(height)))
	case 2:
		return concat([]byte{PrefixUndo}, codec.PutUint64BE(uint64(height)), blockHash[:])
	default:
		panic("undo: invalid key part level")
	}
}
