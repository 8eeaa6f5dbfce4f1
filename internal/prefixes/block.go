package prefixes

import (
	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
)

// --- block_hash row: height -> block_hash -------------------------------

type BlockHashKey struct {
	Height uint32
}

type BlockHashValue struct {
	BlockHash [codec.TxHashLen]byte
}

type blockHashRow struct{}

var BlockHash blockHashRow

func init() { register(BlockHash) }

func (blockHashRow) Prefix() byte   { return PrefixBlockHash }
func (blockHashRow) CacheSize() int { return DefaultCacheSize }

func (blockHashRow) PackKey(height uint32) []byte {
	return concat([]byte{PrefixBlockHash}, codec.PutUint32BE(height))
}

func (blockHashRow) UnpackKey(key []byte) (BlockHashKey, error) {
	const fixed = 1 + 4
	if err := requirePrefix(key, PrefixBlockHash, fixed); err != nil {
		return BlockHashKey{}, err
	}
	if len(key) != fixed {
		return BlockHashKey{}, huberr.Corrupt("block_hash key: expected %d bytes, got %d", fixed, len(key))
	}
	return BlockHashKey{Height: codec.GetUint32BE(key[1:])}, nil
}

func (blockHashRow) PackValue(blockHash [codec.TxHashLen]byte) []byte { return blockHash[:] }

func (blockHashRow) UnpackValue(data []byte) (BlockHashValue, error) {
	if len(data) != codec.TxHashLen {
		return BlockHashValue{}, huberr.Corrupt("block_hash value: expected %d bytes, got %d", codec.TxHashLen, len(data))
	}
	var v BlockHashValue
	copy(v.BlockHash[:], data)
	return v, nil
}

func (r blockHashRow) PackItem(height uint32, blockHash [codec.TxHashLen]byte) (key, value []byte) {
	return r.PackKey(height), r.PackValue(blockHash)
}

func (r blockHashRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (blockHashRow) KeyPart(level int, height uint32) []byte {
	switch level {
	case 0:
		return []byte{PrefixBlockHash}
	case 1:
		return concat([]byte{PrefixBlockHash}, codec.PutUint32BE(height))
	default:
		panic("block_hash: invalid key part level")
	}
}

// --- header row: height -> serialized block header ----------------------

type BlockHeaderKey struct {
	Height uint32
}

type BlockHeaderValue struct {
	Header [codec.BlockHeaderLen]byte
}

type headerRow struct{}

var Header headerRow

func init() { register(Header) }

func (headerRow) Prefix() byte   { return PrefixHeader }
func (headerRow) CacheSize() int { return DefaultCacheSize }

func (headerRow) PackKey(height uint32) []byte {
	return concat([]byte{PrefixHeader}, codec.PutUint32BE(height))
}

func (headerRow) UnpackKey(key []byte) (BlockHeaderKey, error) {
	const fixed = 1 + 4
	if err := requirePrefix(key, PrefixHeader, fixed); err != nil {
		return BlockHeaderKey{}, err
	}
	if len(key) != fixed {
		return BlockHeaderKey{}, huberr.Corrupt("header key: expected %d bytes, got %d", fixed, len(key))
	}
	return BlockHeaderKey{Height: codec.GetUint32BE(key[1:])}, nil
}

func (headerRow) PackValue(header [codec.BlockHeaderLen]byte) []byte { return header[:] }

func (headerRow) UnpackValue(data []byte) (BlockHeaderValue, error) {
	if len(data) != codec.BlockHeaderLen {
		return BlockHeaderValue{}, huberr.Corrupt("header value: expected %d bytes, got %d", codec.BlockHeaderLen, len(data))
	}
	var v BlockHeaderValue
	copy(v.Header[:], data)
	return v, nil
}

func (r headerRow) PackItem(height uint32, header [codec.BlockHeaderLen]byte) (key, value []byte) {
	return r.PackKey(height), r.PackValue(header)
}

func (r headerRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (headerRow) KeyPart(level int, height uint32) []byte {
	switch level {
	case 0:
		return []byte{PrefixHeader}
	case 1:
		return concat([]byte{PrefixHeader}, codec.PutUint32BE(height))
	default:
		panic("header: invalid key part level")
	}
}

// --- tx_count row: height -> tx_count ------------------------------------

type TxCountKey struct{ Height uint32 }
type TxCountValue struct{ TxCount uint32 }

type txCountRow struct{}

var TxCount txCountRow

func init() { register(TxCount) }

func (txCountRow) Prefix() byte   { return PrefixTxCount }
func (txCountRow) CacheSize() int { return DefaultCacheSize }

func (txCountRow) PackKey(height uint32) []byte {
	return concat([]byte{PrefixTxCount}, codec.PutUint32BE(height))
}

func (txCountRow) UnpackKey(key []byte) (TxCountKey, error) {
	const fixed = 1 + 4
	if err := requirePrefix(key, PrefixTxCount, fixed); err != nil {
		return TxCountKey{}, err
	}
	if len(key) != fixed {
		return TxCountKey{}, huberr.Corrupt("tx_count key: expected %d bytes, got %d", fixed, len(key))
	}
	return TxCountKey{Height: codec.GetUint32BE(key[1:])}, nil
}

func (txCountRow) PackValue(txCount uint32) []byte { return codec.PutUint32BE(txCount) }

func (txCountRow) UnpackValue(data []byte) (TxCountValue, error) {
	if len(data) != 4 {
		return TxCountValue{}, huberr.Corrupt("tx_count value: expected 4 bytes, got %d", len(data))
	}
	return TxCountValue{TxCount: codec.GetUint32BE(data)}, nil
}

func (r txCountRow) PackItem(height, txCount uint32) (key, value []byte) {
	return r.PackKey(height), r.PackValue(txCount)
}

func (r txCountRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (txCountRow) KeyPart(level int, height uint32) []byte {
	switch level {
	case 0:
		return []byte{PrefixTxCount}
	case 1:
		return concat([]byte{PrefixTxCount}, codec.PutUint32BE(height))
	default:
		panic("tx_count: invalid key part level")
	}
}

// --- block_tx row: height -> concatenated 32-byte tx hashes --------------

type BlockTxsKey struct{ Height uint32 }
type BlockTxsValue struct{ TxHashes [][codec.TxHashLen]byte }

type blockTxsRow struct{}

var BlockTxs blockTxsRow

func init() { register(BlockTxs) }

func (blockTxsRow) Prefix() byte   { return PrefixBlockTxs }
func (blockTxsRow) CacheSize() int { return DefaultCacheSize }

func (blockTxsRow) PackKey(height uint32) []byte {
	return concat([]byte{PrefixBlockTxs}, codec.PutUint32BE(height))
}

func (blockTxsRow) UnpackKey(key []byte) (BlockTxsKey, error) {
	const fixed = 1 + 4
	if err := requirePrefix(key, PrefixBlockTxs, fixed); err != nil {
		return BlockTxsKey{}, err
	}
	if len(key) != fixed {
		return BlockTxsKey{}, huberr.Corrupt("block_tx key: expected %d bytes, got %d", fixed, len(key))
	}
	return BlockTxsKey{Height: codec.GetUint32BE(key[1:])}, nil
}

func (blockTxsRow) PackValue(txHashes [][codec.TxHashLen]byte) []byte {
	out := make([]byte, 0, codec.TxHashLen*len(txHashes))
	for _, h := range txHashes {
		out = append(out, h[:]...)
	}
	return out
}

func (blockTxsRow) UnpackValue(data []byte) (BlockTxsValue, error) {
	if len(data)%codec.TxHashLen != 0 {
		return BlockTxsValue{}, huberr.Corrupt("block_tx value: length %d is not a multiple of %d", len(data), codec.TxHashLen)
	}
	n := len(data) / codec.TxHashLen
	hashes := make([][codec.TxHashLen]byte, n)
	for i := 0; i < n; i++ {
		copy(hashes[i][:], data[i*codec.TxHashLen:(i+1)*codec.TxHashLen])
	}
	return BlockTxsValue{TxHashes: hashes}, nil
}

func (r blockTxsRow) PackItem(height uint32, txHashes [][codec.TxHashLen]byte) (key, value []byte) {
	return r.PackKey(height), r.PackValue(txHashes)
}

func (r blockTxsRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (blockTxsRow) KeyPart(level int, height uint32) []byte {
	switch level {
	case 0:
		return []byte{PrefixBlockTxs}
	case 1:
		return concat([]byte{PrefixBlockTxs}, codec.PutUint32BE(height))
	default:
		panic("block_tx: invalid key part level")
	}
}
