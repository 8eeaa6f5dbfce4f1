package prefixes

import (
	"sort"

	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
)

// --- touched_or_deleted row: height -> (touched claim hashes, deleted claim hashes) --

type TouchedOrDeletedKey struct {
	Height uint32
}

type TouchedOrDeletedValue struct {
	TouchedClaims [][codec.ClaimHashLen]byte
	DeletedClaims [][codec.ClaimHashLen]byte
}

type touchedOrDeletedRow struct{}

var TouchedOrDeleted touchedOrDeletedRow

func init() { register(TouchedOrDeleted) }

func (touchedOrDeletedRow) Prefix() byte   { return PrefixTouchedOrDeleted }
func (touchedOrDeletedRow) CacheSize() int { return DefaultCacheSize }

func (touchedOrDeletedRow) PackKey(height uint32) []byte {
	return concat([]byte{PrefixTouchedOrDeleted}, codec.PutUint32BE(height))
}

func (touchedOrDeletedRow) UnpackKey(key []byte) (TouchedOrDeletedKey, error) {
	const fixed = 1 + 4
	if err := requirePrefix(key, PrefixTouchedOrDeleted, fixed); err != nil {
		return TouchedOrDeletedKey{}, err
	}
	if len(key) != fixed {
		return TouchedOrDeletedKey{}, huberr.Corrupt("touched_or_deleted key: expected %d bytes, got %d", fixed, len(key))
	}
	return TouchedOrDeletedKey{Height: codec.GetUint32BE(key[1:])}, nil
}

// PackValue sorts both sets lexicographically before encoding (mirroring
// the Python row's `sorted(...)` call) so that the same logical set always
// serializes to the same bytes regardless of insertion order.
func (touchedOrDeletedRow) PackValue(touched, deleted [][codec.ClaimHashLen]byte) []byte {
	sortHashes(touched)
	sortHashes(deleted)
	out := make([]byte, 0, 8+codec.ClaimHashLen*(len(touched)+len(deleted)))
	out = append(out, codec.PutUint32BE(uint32(len(touched)))...)
	out = append(out, codec.PutUint32BE(uint32(len(deleted)))...)
	for _, h := range touched {
		out = append(out, h[:]...)
	}
	for _, h := range deleted {
		out = append(out, h[:]...)
	}
	return out
}

func (touchedOrDeletedRow) UnpackValue(data []byte) (TouchedOrDeletedValue, error) {
	if len(data) < 8 {
		return TouchedOrDeletedValue{}, huberr.Corrupt("touched_or_deleted value: %d bytes is shorter than the 8-byte length header", len(data))
	}
	touchedLen := int(codec.GetUint32BE(data[0:4]))
	deletedLen := int(codec.GetUint32BE(data[4:8]))
	body := data[8:]
	want := codec.ClaimHashLen * (touchedLen + deletedLen)
	if len(body) != want {
		return TouchedOrDeletedValue{}, huberr.Corrupt("touched_or_deleted value: expected %d bytes of hash data, got %d", want, len(body))
	}
	touched := make([][codec.ClaimHashLen]byte, touchedLen)
	for i := 0; i < touchedLen; i++ {
		copy(touched[i][:], body[i*codec.ClaimHashLen:(i+1)*codec.ClaimHashLen])
	}
	deletedStart := touchedLen * codec.ClaimHashLen
	deleted := make([][codec.ClaimHashLen]byte, deletedLen)
	for i := 0; i < deletedLen; i++ {
		off := deletedStart + i*codec.ClaimHashLen
		copy(deleted[i][:], body[off:off+codec.ClaimHashLen])
	}
	return TouchedOrDeletedValue{TouchedClaims: touched, DeletedClaims: deleted}, nil
}

func (r touchedOrDeletedRow) PackItem(height uint32, touched, deleted [][codec.ClaimHashLen]byte) (key, value []byte) {
	return r.PackKey(height), r.PackValue(touched, deleted)
}

func (r touchedOrDeletedRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (touchedOrDeletedRow) KeyPart(level int, height uint32) []byte {
	switch level {
	case 0:
		return []byte{PrefixTouchedOrDeleted}
	case 1:
		return concat([]byte{PrefixTouchedOrDeleted}, codec.PutUint32BE(height))
	default:
		panic("touched_or_deleted: invalid key part level")
	}
}

func sortHashes(hashes [][codec.ClaimHashLen]byte) {
	sort.Slice(hashes, func(i, j int) bool {
		for b := 0; b < codec.ClaimHashLen; b++ {
			if hashes[i][b] != hashes[j][b] {
				return hashes[i][b] < hashes[j][b]
			}
		}
		return false
	})
}

// --- touched_hashX row: height -> touched hashXs --------------------------

type TouchedHashXKey struct {
	Height uint32
}

type TouchedHashXValue struct {
	TouchedHashXs [][codec.HashXLen]byte
}

type touchedHashXRow struct{}

var TouchedHashX touchedHashXRow

func init() { register(TouchedHashX) }

func (touchedHashXRow) Prefix() byte   { return PrefixTouchedHashX }
func (touchedHashXRow) CacheSize() int { return DefaultCacheSize }

func (touchedHashXRow) PackKey(height uint32) []byte {
	return concat([]byte{PrefixTouchedHashX}, codec.PutUint32BE(height))
}

func (touchedHashXRow) UnpackKey(key []byte) (TouchedHashXKey, error) {
	const fixed = 1 + 4
	if err := requirePrefix(key, PrefixTouchedHashX, fixed); err != nil {
		return TouchedHashXKey{}, err
	}
	if len(key) != fixed {
		return TouchedHashXKey{}, huberr.Corrupt("touched_hashX key: expected %d bytes, got %d", fixed, len(key))
	}
	return TouchedHashXKey{Height: codec.GetUint32BE(key[1:])}, nil
}

func (touchedHashXRow) PackValue(touched [][codec.HashXLen]byte) []byte {
	out := make([]byte, 0, codec.HashXLen*len(touched))
	for _, h := range touched {
		out = append(out, h[:]...)
	}
	return out
}

func (touchedHashXRow) UnpackValue(data []byte) (TouchedHashXValue, error) {
	if len(data)%codec.HashXLen != 0 {
		return TouchedHashXValue{}, huberr.Corrupt("touched_hashX value: length %d is not a multiple of %d", len(data), codec.HashXLen)
	}
	n := len(data) / codec.HashXLen
	touched := make([][codec.HashXLen]byte, n)
	for i := 0; i < n; i++ {
		copy(touched[i][:], data[i*codec.HashXLen:(i+1)*codec.HashXLen])
	}
	return TouchedHashXValue{TouchedHashXs: touched}, nil
}

func (r touchedHashXRow) PackItem(height uint32, touched [][codec.HashXLen]byte) (key, value []byte) {
	return r.PackKey(height), r.PackValue(touched)
}

func (r touchedHashXRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (touchedHashXRow) KeyPart(level int, height uint32) []byte {
	switch level {
	case 0:
		return []byte{PrefixTouchedHashX}
	case 1:
		return concat([]byte{PrefixTouchedHashX}, codec.PutUint32BE(height))
	default:
		panic("touched_hashX: invalid key part level")
	}
}

// --- trending_notification row: (height, claim_hash) -> (previous, new) amount --

type TrendingNotificationKey struct {
	Height    uint32
	ClaimHash [codec.ClaimHashLen]byte
}

type TrendingNotificationValue struct {
	PreviousAmount uint64
	NewAmount      uint64
}

type trendingNotificationRow struct{}

var TrendingNotification trendingNotificationRow

func init() { register(TrendingNotification) }

func (trendingNotificationRow) Prefix() byte   { return PrefixTrendingNotification }
func (trendingNotificationRow) CacheSize() int { return DefaultCacheSize }

func (trendingNotificationRow) PackKey(height uint32, claimHash [codec.ClaimHashLen]byte) []byte {
	return concat([]byte{PrefixTrendingNotification}, codec.PutUint32BE(height), claimHash[:])
}

func (trendingNotificationRow) UnpackKey(key []byte) (TrendingNotificationKey, error) {
	const fixed = 1 + 4 + codec.ClaimHashLen
	if err := requirePrefix(key, PrefixTrendingNotification, fixed); err != nil {
		return TrendingNotificationKey{}, err
	}
	if len(key) != fixed {
		return TrendingNotificationKey{}, huberr.Corrupt("trending_notification key: expected %d bytes, got %d", fixed, len(key))
	}
	var k TrendingNotificationKey
	k.Height = codec.GetUint32BE(key[1:5])
	copy(k.ClaimHash[:], key[5:])
	return k, nil
}

func (trendingNotificationRow) PackValue(previousAmount, newAmount uint64) []byte {
	return concat(codec.PutUint64BE(previousAmount), codec.PutUint64BE(newAmount))
}

func (trendingNotificationRow) UnpackValue(data []byte) (TrendingNotificationValue, error) {
	if len(data) != 16 {
		return TrendingNotificationValue{}, huberr.Corrupt("trending_notification value: expected 16 bytes, got %d", len(data))
	}
	return TrendingNotificationValue{
		PreviousAmount: codec.GetUint64BE(data[0:8]),
		NewAmount:      codec.GetUint64BE(data[8:16]),
	}, nil
}

func (r trendingNotificationRow) PackItem(height uint32, claimHash [codec.ClaimHashLen]byte, previousAmount, newAmount uint64) (key, value []byte) {
	return r.PackKey(height, claimHash), r.PackValue(previousAmount, newAmount)
}

func (r trendingNotificationRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (trendingNotificationRow) KeyPart(level int, height uint32, claimHash [codec.ClaimHashLen]byte) []byte {
	switch level {
	case 0:
		return []byte{PrefixTrendingNotification}
	case 1:
		return concat([]byte{PrefixTrendingNotification}, codec.PutUint32BE(height))
	case 2:
		return concat([]byte{PrefixTrendingNotification}, codec.PutUint32BE(height), claimHash[:])
	default:
		panic("trending_notification: invalid key part level")
	}
}

// --- db_state row: singleton -> indexer checkpoint ------------------------
//
// db_state is the only row with an empty key beyond its prefix byte: there
// is exactly one instance, recording the last flushed checkpoint. The value
// grew from 94 to 98 bytes when es_sync_height was added; UnpackValue
// transparently migrates a legacy 94-byte record by filling the missing
// field with a copy of the height bytes [32:36], per §6 "legacy record
// upgrade".

const (
	dbStateLegacyLen  = 94
	dbStateCurrentLen = 98
)

type DBStateValue struct {
	Genesis         [codec.TxHashLen]byte
	Height          uint32
	TxCount         uint32
	Tip             [codec.TxHashLen]byte
	UTXOFlushCount  uint32
	WallTime        uint32
	CatchingUp      bool
	DBVersion       uint8
	HistFlushCount  int32
	CompFlushCount  int32
	CompCursor      int32
	ESSyncHeight    uint32
}

type dbStateRow struct{}

var DBState dbStateRow

func init() { register(DBState) }

func (dbStateRow) Prefix() byte   { return PrefixDBState }
func (dbStateRow) CacheSize() int { return DefaultCacheSize }

func (dbStateRow) PackKey() []byte { return []byte{PrefixDBState} }

func (dbStateRow) UnpackKey(key []byte) error {
	return requirePrefix(key, PrefixDBState, 1)
}

func (dbStateRow) PackValue(v DBStateValue) []byte {
	out := make([]byte, 0, dbStateCurrentLen)
	out = append(out, v.Genesis[:]...)
	out = append(out, codec.PutUint32BE(v.Height)...)
	out = append(out, codec.PutUint32BE(v.TxCount)...)
	out = append(out, v.Tip[:]...)
	out = append(out, codec.PutUint32BE(v.UTXOFlushCount)...)
	out = append(out, codec.PutUint32BE(v.WallTime)...)
	if v.CatchingUp {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = append(out, v.DBVersion)
	out = append(out, codec.PutUint32BE(uint32(v.HistFlushCount))...)
	out = append(out, codec.PutUint32BE(uint32(v.CompFlushCount))...)
	out = append(out, codec.PutUint32BE(uint32(v.CompCursor))...)
	out = append(out, codec.PutUint32BE(v.ESSyncHeight)...)
	return out
}

func (dbStateRow) UnpackValue(data []byte) (DBStateValue, error) {
	if len(data) == dbStateLegacyLen {
		// Legacy 94-byte records predate es_sync_height; the field didn't
		// exist yet, so repeat the height bytes [32:36] into the tail.
		padded := make([]byte, dbStateCurrentLen)
		copy(padded, data)
		copy(padded[dbStateLegacyLen:], data[32:36])
		data = padded
	}
	if len(data) != dbStateCurrentLen {
		return DBStateValue{}, huberr.Corrupt("db_state value: expected %d or %d bytes, got %d", dbStateLegacyLen, dbStateCurrentLen, len(data))
	}
	var v DBStateValue
	off := 0
	copy(v.Genesis[:], data[off:off+codec.TxHashLen])
	off += codec.TxHashLen
	v.Height = codec.GetUint32BE(data[off : off+4])
	off += 4
	v.TxCount = codec.GetUint32BE(data[off : off+4])
	off += 4
	copy(v.Tip[:], data[off:off+codec.TxHashLen])
	off += codec.TxHashLen
	v.UTXOFlushCount = codec.GetUint32BE(data[off : off+4])
	off += 4
	v.WallTime = codec.GetUint32BE(data[off : off+4])
	off += 4
	v.CatchingUp = data[off] != 0
	off++
	v.DBVersion = data[off]
	off++
	v.HistFlushCount = int32(codec.GetUint32BE(data[off : off+4]))
	off += 4
	v.CompFlushCount = int32(codec.GetUint32BE(data[off : off+4]))
	off += 4
	v.CompCursor = int32(codec.GetUint32BE(data[off : off+4]))
	off += 4
	v.ESSyncHeight = codec.GetUint32BE(data[off : off+4])
	return v, nil
}

func (r dbStateRow) PackItem(v DBStateValue) (key, value []byte) {
	return r.PackKey(), r.PackValue(v)
}

func (r dbStateRow) UnpackItem(key, value []byte) (any, any, error) {
	if err := r.UnpackKey(key); err != nil {
		return nil, nil, err
	}
	v, err := r.UnpackValue(value)
	if err != nil {
		return nil, nil, err
	}
	return struct{}{}, v, nil
}

func (dbStateRow) KeyPart(level int) []byte {
	switch level {
	case 0:
		return []byte{PrefixDBState}
	default:
		panic("db_state: invalid key part level")
	}
}
