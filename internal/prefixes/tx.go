package prefixes

import (
	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
)

// --- tx_hash row: tx_num -> tx_hash ---------------------------------------

type TxHashKey struct{ TxNum uint32 }
type TxHashValue struct{ TxHash [codec.TxHashLen]byte }

type txHashRow struct{}

var TxHash txHashRow

func init() { register(TxHash) }

func (txHashRow) Prefix() byte   { return PrefixTxHash }
func (txHashRow) CacheSize() int { return DefaultCacheSize }

func (txHashRow) PackKey(txNum uint32) []byte {
	return concat([]byte{PrefixTxHash}, codec.PutUint32BE(txNum))
}

func (txHashRow) UnpackKey(key []byte) (TxHashKey, error) {
	const fixed = 1 + 4
	if err := requirePrefix(key, PrefixTxHash, fixed); err != nil {
		return TxHashKey{}, err
	}
	if len(key) != fixed {
		return TxHashKey{}, huberr.Corrupt("tx_hash key: expected %d bytes, got %d", fixed, len(key))
	}
	return TxHashKey{TxNum: codec.GetUint32BE(key[1:])}, nil
}

func (txHashRow) PackValue(txHash [codec.TxHashLen]byte) []byte { return txHash[:] }

func (txHashRow) UnpackValue(data []byte) (TxHashValue, error) {
	if len(data) != codec.TxHashLen {
		return TxHashValue{}, huberr.Corrupt("tx_hash value: expected %d bytes, got %d", codec.TxHashLen, len(data))
	}
	var v TxHashValue
	copy(v.TxHash[:], data)
	return v, nil
}

func (r txHashRow) PackItem(txNum uint32, txHash [codec.TxHashLen]byte) (key, value []byte) {
	return r.PackKey(txNum), r.PackValue(txHash)
}

func (r txHashRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (txHashRow) KeyPart(level int, txNum uint32) []byte {
	switch level {
	case 0:
		return []byte{PrefixTxHash}
	case 1:
		return concat([]byte{PrefixTxHash}, codec.PutUint32BE(txNum))
	default:
		panic("tx_hash: invalid key part level")
	}
}

// --- tx_num row: tx_hash -> tx_num -----------------------------------------

type TxNumKey struct{ TxHash [codec.TxHashLen]byte }
type TxNumValue struct{ TxNum uint32 }

type txNumRow struct{}

var TxNum txNumRow

func init() { register(TxNum) }

func (txNumRow) Prefix() byte   { return PrefixTxNum }
func (txNumRow) CacheSize() int { return DefaultCacheSize }

func (txNumRow) PackKey(txHash [codec.TxHashLen]byte) []byte {
	return concat([]byte{PrefixTxNum}, txHash[:])
}

func (txNumRow) UnpackKey(key []byte) (TxNumKey, error) {
	const fixed = 1 + codec.TxHashLen
	if err := requirePrefix(key, PrefixTxNum, fixed); err != nil {
		return TxNumKey{}, err
	}
	if len(key) != fixed {
		return TxNumKey{}, huberr.Corrupt("tx_num key: expected %d bytes, got %d", fixed, len(key))
	}
	var k TxNumKey
	copy(k.TxHash[:], key[1:])
	return k, nil
}

func (txNumRow) PackValue(txNum uint32) []byte { return codec.PutUint32BE(txNum) }

func (txNumRow) UnpackValue(data []byte) (TxNumValue, error) {
	if len(data) != 4 {
		return TxNumValue{}, huberr.Corrupt("tx_num value: expected 4 bytes, got %d", len(data))
	}
	return TxNumValue{TxNum: codec.GetUint32BE(data)}, nil
}

func (r txNumRow) PackItem(txHash [codec.TxHashLen]byte, txNum uint32) (key, value []byte) {
	return r.PackKey(txHash), r.PackValue(txNum)
}

func (r txNumRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (txNumRow) KeyPart(level int, txHash [codec.TxHashLen]byte) []byte {
	switch level {
	case 0:
		return []byte{PrefixTxNum}
	case 1:
		return concat([]byte{PrefixTxNum}, txHash[:])
	default:
		panic("tx_num: invalid key part level")
	}
}

// --- tx row: tx_num -> raw serialized transaction bytes --------------------

type TxKey struct{ TxNum uint32 }
type TxValue struct{ RawTx []byte }

type txRow struct{}

var Tx txRow

func init() { register(Tx) }

func (txRow) Prefix() byte   { return PrefixTx }
func (txRow) CacheSize() int { return DefaultCacheSize }

func (txRow) PackKey(txNum uint32) []byte {
	return concat([]byte{PrefixTx}, codec.PutUint32BE(txNum))
}

func (txRow) UnpackKey(key []byte) (TxKey, error) {
	const fixed = 1 + 4
	if err := requirePrefix(key, PrefixTx, fixed); err != nil {
		return TxKey{}, err
	}
	if len(key) != fixed {
		return TxKey{}, huberr.Corrupt("tx key: expected %d bytes, got %d", fixed, len(key))
	}
	return TxKey{TxNum: codec.GetUint32BE(key[1:])}, nil
}

func (txRow) PackValue(rawTx []byte) []byte { return rawTx }

func (txRow) UnpackValue(data []byte) (TxValue, error) {
	return TxValue{RawTx: data}, nil
}

func (r txRow) PackItem(txNum uint32, rawTx []byte) (key, value []byte) {
	return r.PackKey(txNum), r.PackValue(rawTx)
}

func (r txRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (txRow) KeyPart(level int, txNum uint32) []byte {
	switch level {
	case 0:
		return []byte{PrefixTx}
	case 1:
		return concat([]byte{PrefixTx}, codec.PutUint32BE(txNum))
	default:
		panic("tx: invalid key part level")
	}
}

// --- mempool_tx row: tx_hash -> raw serialized transaction bytes ----------
//
// The unsafe-prefix allowlist (§6.2) names mempool_tx explicitly: unlike
// every other row, a mempool_tx entry may be deleted and rewritten within
// the same block without going through the undo machinery, because mempool
// contents are never part of consensus state.

var (
	// MempoolTxMinTxHash and MempoolTxMaxTxHash bound the mempool_tx
	// keyspace for full-range iteration; they are not themselves valid
	// transaction hashes.
	MempoolTxMinTxHash = [codec.TxHashLen]byte{}
	MempoolTxMaxTxHash = func() [codec.TxHashLen]byte {
		var h [codec.TxHashLen]byte
		for i := range h {
			h[i] = 0xff
		}
		return h
	}()
)

type MempoolTxKey struct{ TxHash [codec.TxHashLen]byte }
type MempoolTxValue struct{ RawTx []byte }

type mempoolTxRow struct{}

var MempoolTx mempoolTxRow

func init() { register(MempoolTx) }

func (mempoolTxRow) Prefix() byte   { return PrefixMempoolTx }
func (mempoolTxRow) CacheSize() int { return DefaultCacheSize }

func (mempoolTxRow) PackKey(txHash [codec.TxHashLen]byte) []byte {
	return concat([]byte{PrefixMempoolTx}, txHash[:])
}

func (mempoolTxRow) UnpackKey(key []byte) (MempoolTxKey, error) {
	const fixed = 1 + codec.TxHashLen
	if err := requirePrefix(key, PrefixMempoolTx, fixed); err != nil {
		return MempoolTxKey{}, err
	}
	if len(key) != fixed {
		return MempoolTxKey{}, huberr.Corrupt("mempool_tx key: expected %d bytes, got %d", fixed, len(key))
	}
	var k MempoolTxKey
	copy(k.TxHash[:], key[1:])
	return k, nil
}

func (mempoolTxRow) PackValue(rawTx []byte) []byte { return rawTx }

func (mempoolTxRow) UnpackValue(data []byte) (MempoolTxValue, error) {
	return MempoolTxValue{RawTx: data}, nil
}

func (r mempoolTxRow) PackItem(txHash [codec.TxHashLen]byte, rawTx []byte) (key, value []byte) {
	return r.PackKey(txHash), r.PackValue(rawTx)
}

func (r mempoolTxRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (mempoolTxRow) KeyPart(level int, txHash [codec.TxHashLen]byte) []byte {
	switch level {
	case 0:
		return []byte{PrefixMempoolTx}
	case 1:
		return concat([]byte{PrefixMempoolTx}, txHash[:])
	default:
		panic("mempool_tx: invalid key part level")
	}
}
