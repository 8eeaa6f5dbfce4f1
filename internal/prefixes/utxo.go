package prefixes

import (
	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
)

// --- utxo row: (hashX, tx_num, nout) -> amount --------------------------

type UTXOKey struct {
	HashX [codec.HashXLen]byte
	TxNum uint32
	Nout  uint16
}

type UTXOValue struct {
	Amount uint64
}

type utxoRow struct{}

var UTXO utxoRow

func init() { register(UTXO) }

func (utxoRow) Prefix() byte    { return PrefixUTXO }
func (utxoRow) CacheSize() int  { return DefaultCacheSize }

func (utxoRow) PackKey(hashX [codec.HashXLen]byte, txNum uint32, nout uint16) []byte {
	return concat([]byte{PrefixUTXO}, hashX[:], codec.PutUint32BE(txNum), codec.PutUint16BE(nout))
}

func (utxoRow) UnpackKey(key []byte) (UTXOKey, error) {
	const fixed = 1 + codec.HashXLen + 4 + 2
	if err := requirePrefix(key, PrefixUTXO, fixed); err != nil {
		return UTXOKey{}, err
	}
	if len(key) != fixed {
		return UTXOKey{}, huberr.Corrupt("utxo key: expected exactly %d bytes, got %d", fixed, len(key))
	}
	var k UTXOKey
	copy(k.HashX[:], key[1:1+codec.HashXLen])
	k.TxNum = codec.GetUint32BE(key[1+codec.HashXLen : 5+codec.HashXLen])
	k.Nout = codec.GetUint16BE(key[5+codec.HashXLen:])
	return k, nil
}

func (utxoRow) PackValue(amount uint64) []byte { return codec.PutUint64BE(amount) }

func (utxoRow) UnpackValue(data []byte) (UTXOValue, error) {
	if len(data) != 8 {
		return UTXOValue{}, huberr.Corrupt("utxo value: expected 8 bytes, got %d", len(data))
	}
	return UTXOValue{Amount: codec.GetUint64BE(data)}, nil
}

func (r utxoRow) PackItem(hashX [codec.HashXLen]byte, txNum uint32, nout uint16, amount uint64) (key, value []byte) {
	return r.PackKey(hashX, txNum, nout), r.PackValue(amount)
}

func (r utxoRow) UnpackItem(key, value []byte) (any, any, error) {
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

// KeyPart builds the partial key of the given level:
//
//	0: b'R'
//	1: b'R' || hashX
//	2: b'R' || hashX || tx_num
//	3: b'R' || hashX || tx_num || nout  (== PackKey)
func (utxoRow) KeyPart(level int, hashX [codec.HashXLen]byte, txNum uint32, nout uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixUTXO}
	case 1:
		return concat([]byte{PrefixUTXO}, hashX[:])
	case 2:
		return concat([]byte{PrefixUTXO}, hashX[:], codec.PutUint32BE(txNum))
	case 3:
		return concat([]byte{PrefixUTXO}, hashX[:], codec.PutUint32BE(txNum), codec.PutUint16BE(nout))
	default:
		panic("utxo: invalid key part level")
	}
}

// --- hashX_utxo row: (short_tx_hash, tx_num, nout) -> hashX -------------

type HashXUTXOKey struct {
	ShortTxHash [codec.ShortHashLen]byte
	TxNum       uint32
	Nout        uint16
}

type HashXUTXOValue struct {
	HashX [codec.HashXLen]byte
}

type hashXUTXORow struct{}

var HashXUTXO hashXUTXORow

func init() { register(HashXUTXO) }

func (hashXUTXORow) Prefix() byte   { return PrefixHashXUTXO }
func (hashXUTXORow) CacheSize() int { return DefaultCacheSize }

func (hashXUTXORow) PackKey(shortTxHash [codec.ShortHashLen]byte, txNum uint32, nout uint16) []byte {
	return concat([]byte{PrefixHashXUTXO}, shortTxHash[:], codec.PutUint32BE(txNum), codec.PutUint16BE(nout))
}

func (hashXUTXORow) UnpackKey(key []byte) (HashXUTXOKey, error) {
	const fixed = 1 + codec.ShortHashLen + 4 + 2
	if err := requirePrefix(key, PrefixHashXUTXO, fixed); err != nil {
		return HashXUTXOKey{}, err
	}
	if len(key) != fixed {
		return HashXUTXOKey{}, huberr.Corrupt("hashX_utxo key: expected %d bytes, got %d", fixed, len(key))
	}
	var k HashXUTXOKey
	copy(k.ShortTxHash[:], key[1:1+codec.ShortHashLen])
	k.TxNum = codec.GetUint32BE(key[1+codec.ShortHashLen : 5+codec.ShortHashLen])
	k.Nout = codec.GetUint16BE(key[5+codec.ShortHashLen:])
	return k, nil
}

func (hashXUTXORow) PackValue(hashX [codec.HashXLen]byte) []byte { return hashX[:] }

func (hashXUTXORow) UnpackValue(data []byte) (HashXUTXOValue, error) {
	if len(data) != codec.HashXLen {
		return HashXUTXOValue{}, huberr.Corrupt("hashX_utxo value: expected %d bytes, got %d", codec.HashXLen, len(data))
	}
	var v HashXUTXOValue
	copy(v.HashX[:], data)
	return v, nil
}

func (r hashXUTXORow) PackItem(shortTxHash [codec.ShortHashLen]byte, txNum uint32, nout uint16, hashX [codec.HashXLen]byte) (key, value []byte) {
	return r.PackKey(shortTxHash, txNum, nout), r.PackValue(hashX)
}

func (r hashXUTXORow) UnpackItem(key, value []byte) (any, any, error) {
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

func (hashXUTXORow) KeyPart(level int, shortTxHash [codec.ShortHashLen]byte, txNum uint32, nout uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixHashXUTXO}
	case 1:
		return concat([]byte{PrefixHashXUTXO}, shortTxHash[:])
	case 2:
		return concat([]byte{PrefixHashXUTXO}, shortTxHash[:], codec.PutUint32BE(txNum))
	case 3:
		return concat([]byte{PrefixHashXUTXO}, shortTxHash[:], codec.PutUint32BE(txNum), codec.PutUint16BE(nout))
	default:
		panic("hashX_utxo: invalid key part level")
	}
}

// --- hashX_history row: (hashX, height) -> packed u32 tx-num array ------

type HashXHistoryKey struct {
	HashX  [codec.HashXLen]byte
	Height uint32
}

type HashXHistoryValue struct {
	TxNums []uint32
}

type hashXHistoryRow struct{}

var HashXHistory hashXHistoryRow

func init() { register(HashXHistory) }

func (hashXHistoryRow) Prefix() byte   { return PrefixHashXHistory }
func (hashXHistoryRow) CacheSize() int { return DefaultCacheSize }

func (hashXHistoryRow) PackKey(hashX [codec.HashXLen]byte, height uint32) []byte {
	return concat([]byte{PrefixHashXHistory}, hashX[:], codec.PutUint32BE(height))
}

func (hashXHistoryRow) UnpackKey(key []byte) (HashXHistoryKey, error) {
	const fixed = 1 + codec.HashXLen + 4
	if err := requirePrefix(key, PrefixHashXHistory, fixed); err != nil {
		return HashXHistoryKey{}, err
	}
	if len(key) != fixed {
		return HashXHistoryKey{}, huberr.Corrupt("hashX_history key: expected %d bytes, got %d", fixed, len(key))
	}
	var k HashXHistoryKey
	copy(k.HashX[:], key[1:1+codec.HashXLen])
	k.Height = codec.GetUint32BE(key[1+codec.HashXLen:])
	return k, nil
}

func (hashXHistoryRow) PackValue(txNums []uint32) []byte {
	out := make([]byte, 4*len(txNums))
	for i, n := range txNums {
		copy(out[i*4:i*4+4], codec.PutUint32BE(n))
	}
	return out
}

func (hashXHistoryRow) UnpackValue(data []byte) (HashXHistoryValue, error) {
	if len(data)%4 != 0 {
		return HashXHistoryValue{}, huberr.Corrupt("hashX_history value: length %d is not a multiple of 4", len(data))
	}
	nums := make([]uint32, len(data)/4)
	for i := range nums {
		nums[i] = codec.GetUint32BE(data[i*4 : i*4+4])
	}
	return HashXHistoryValue{TxNums: nums}, nil
}

func (r hashXHistoryRow) PackItem(hashX [codec.HashXLen]byte, height uint32, txNums []uint32) (key, value []byte) {
	return r.PackKey(hashX, height), r.PackValue(txNums)
}

func (r hashXHistoryRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (hashXHistoryRow) KeyPart(level int, hashX [codec.HashXLen]byte, height uint32) []byte {
	switch level {
	case 0:
		return []byte{PrefixHashXHistory}
	case 1:
		return concat([]byte{PrefixHashXHistory}, hashX[:])
	case 2:
		return concat([]byte{PrefixHashXHistory}, hashX[:], codec.PutUint32BE(height))
	default:
		panic("hashX_history: invalid key part level")
	}
}
