package prefixes

import (
	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
)

// --- claim_to_txo row: claim_hash -> originating txo + claim metadata -----

type ClaimToTXOKey struct {
	ClaimHash [codec.ClaimHashLen]byte
}

type ClaimToTXOValue struct {
	TxNum                    uint32
	Position                 uint16
	RootTxNum                uint32
	RootPosition             uint16
	Amount                   uint64
	ChannelSignatureIsValid  bool
	Name                     string
}

type claimToTXORow struct{}

var ClaimToTXO claimToTXORow

func init() { register(ClaimToTXO) }

func (claimToTXORow) Prefix() byte   { return PrefixClaimToTXO }
func (claimToTXORow) CacheSize() int { return LargeCacheSize }

func (claimToTXORow) PackKey(claimHash [codec.ClaimHashLen]byte) []byte {
	return concat([]byte{PrefixClaimToTXO}, claimHash[:])
}

func (claimToTXORow) UnpackKey(key []byte) (ClaimToTXOKey, error) {
	const fixed = 1 + codec.ClaimHashLen
	if err := requirePrefix(key, PrefixClaimToTXO, fixed); err != nil {
		return ClaimToTXOKey{}, err
	}
	if len(key) != fixed {
		return ClaimToTXOKey{}, huberr.Corrupt("claim_to_txo key: expected %d bytes, got %d", fixed, len(key))
	}
	var k ClaimToTXOKey
	copy(k.ClaimHash[:], key[1:])
	return k, nil
}

func (claimToTXORow) PackValue(v ClaimToTXOValue) []byte {
	out := make([]byte, 0, 21+2+len(v.Name))
	out = append(out, codec.PutUint32BE(v.TxNum)...)
	out = append(out, codec.PutUint16BE(v.Position)...)
	out = append(out, codec.PutUint32BE(v.RootTxNum)...)
	out = append(out, codec.PutUint16BE(v.RootPosition)...)
	out = append(out, codec.PutUint64BE(v.Amount)...)
	if v.ChannelSignatureIsValid {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = append(out, codec.PutName(v.Name)...)
	return out
}

func (claimToTXORow) UnpackValue(data []byte) (ClaimToTXOValue, error) {
	const fixed = 4 + 2 + 4 + 2 + 8 + 1
	if len(data) < fixed {
		return ClaimToTXOValue{}, huberr.Corrupt("claim_to_txo value: %d bytes is shorter than the %d-byte fixed portion", len(data), fixed)
	}
	name, _, err := codec.GetName(data[fixed:])
	if err != nil {
		return ClaimToTXOValue{}, err
	}
	return ClaimToTXOValue{
		TxNum:                   codec.GetUint32BE(data[0:4]),
		Position:                codec.GetUint16BE(data[4:6]),
		RootTxNum:               codec.GetUint32BE(data[6:10]),
		RootPosition:            codec.GetUint16BE(data[10:12]),
		Amount:                  codec.GetUint64BE(data[12:20]),
		ChannelSignatureIsValid: data[20] != 0,
		Name:                    name,
	}, nil
}

func (r claimToTXORow) PackItem(claimHash [codec.ClaimHashLen]byte, v ClaimToTXOValue) (key, value []byte) {
	return r.PackKey(claimHash), r.PackValue(v)
}

func (r claimToTXORow) UnpackItem(key, value []byte) (any, any, error) {
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

func (claimToTXORow) KeyPart(level int, claimHash [codec.ClaimHashLen]byte) []byte {
	switch level {
	case 0:
		return []byte{PrefixClaimToTXO}
	case 1:
		return concat([]byte{PrefixClaimToTXO}, claimHash[:])
	default:
		panic("claim_to_txo: invalid key part level")
	}
}

// --- txo_to_claim row: (tx_num, position) -> claim_hash + name ------------

type TXOToClaimKey struct {
	TxNum    uint32
	Position uint16
}

type TXOToClaimValue struct {
	ClaimHash [codec.ClaimHashLen]byte
	Name      string
}

type txoToClaimRow struct{}

var TXOToClaim txoToClaimRow

func init() { register(TXOToClaim) }

func (txoToClaimRow) Prefix() byte   { return PrefixTXOToClaim }
func (txoToClaimRow) CacheSize() int { return LargeCacheSize }

func (txoToClaimRow) PackKey(txNum uint32, position uint16) []byte {
	return concat([]byte{PrefixTXOToClaim}, codec.PutUint32BE(txNum), codec.PutUint16BE(position))
}

func (txoToClaimRow) UnpackKey(key []byte) (TXOToClaimKey, error) {
	const fixed = 1 + 4 + 2
	if err := requirePrefix(key, PrefixTXOToClaim, fixed); err != nil {
		return TXOToClaimKey{}, err
	}
	if len(key) != fixed {
		return TXOToClaimKey{}, huberr.Corrupt("txo_to_claim key: expected %d bytes, got %d", fixed, len(key))
	}
	return TXOToClaimKey{
		TxNum:    codec.GetUint32BE(key[1:5]),
		Position: codec.GetUint16BE(key[5:7]),
	}, nil
}

func (txoToClaimRow) PackValue(claimHash [codec.ClaimHashLen]byte, name string) []byte {
	return concat(claimHash[:], codec.PutName(name))
}

func (txoToClaimRow) UnpackValue(data []byte) (TXOToClaimValue, error) {
	if len(data) < codec.ClaimHashLen {
		return TXOToClaimValue{}, huberr.Corrupt("txo_to_claim value: %d bytes is shorter than the %d-byte claim hash", len(data), codec.ClaimHashLen)
	}
	name, _, err := codec.GetName(data[codec.ClaimHashLen:])
	if err != nil {
		return TXOToClaimValue{}, err
	}
	var v TXOToClaimValue
	copy(v.ClaimHash[:], data[:codec.ClaimHashLen])
	v.Name = name
	return v, nil
}

func (r txoToClaimRow) PackItem(txNum uint32, position uint16, claimHash [codec.ClaimHashLen]byte, name string) (key, value []byte) {
	return r.PackKey(txNum, position), r.PackValue(claimHash, name)
}

func (r txoToClaimRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (txoToClaimRow) KeyPart(level int, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixTXOToClaim}
	case 1:
		return concat([]byte{PrefixTXOToClaim}, codec.PutUint32BE(txNum))
	case 2:
		return concat([]byte{PrefixTXOToClaim}, codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("txo_to_claim: invalid key part level")
	}
}

// --- claim_short_id row: (normalized_name, partial_claim_id, root_tx_num, root_position) -> (tx_num, position) ---
//
// The key mixes three different length disciplines in sequence: a 2-byte
// length-prefixed name, a 1-byte length-prefixed short claim id, then a
// fixed (root_tx_num, root_position) tail. KeyPart mirrors the Python
// key_part_lambdas table exactly: level 2 stops after the partial claim id,
// before the root_tx_num/root_position tail is appended.

type ClaimShortIDKey struct {
	NormalizedName string
	PartialClaimID string
	RootTxNum      uint32
	RootPosition   uint16
}

type ClaimShortIDValue struct {
	TxNum    uint32
	Position uint16
}

type claimShortIDRow struct{}

var ClaimShortID claimShortIDRow

func init() { register(ClaimShortID) }

func (claimShortIDRow) Prefix() byte   { return PrefixClaimShortID }
func (claimShortIDRow) CacheSize() int { return DefaultCacheSize }

func (claimShortIDRow) PackKey(name, partialClaimID string, rootTxNum uint32, rootPosition uint16) []byte {
	return concat(
		[]byte{PrefixClaimShortID},
		codec.PutName(name),
		codec.PutShortString(partialClaimID),
		codec.PutUint32BE(rootTxNum),
		codec.PutUint16BE(rootPosition),
	)
}

func (claimShortIDRow) UnpackKey(key []byte) (ClaimShortIDKey, error) {
	if err := requirePrefix(key, PrefixClaimShortID, 1); err != nil {
		return ClaimShortIDKey{}, err
	}
	name, nameLen, err := codec.GetName(key[1:])
	if err != nil {
		return ClaimShortIDKey{}, err
	}
	rest := key[1+nameLen:]
	partialClaimID, idLen, err := codec.GetShortString(rest)
	if err != nil {
		return ClaimShortIDKey{}, err
	}
	tail := rest[idLen:]
	if len(tail) != 6 {
		return ClaimShortIDKey{}, huberr.Corrupt("claim_short_id key: expected 6-byte root_tx_num/root_position tail, got %d", len(tail))
	}
	return ClaimShortIDKey{
		NormalizedName: name,
		PartialClaimID: partialClaimID,
		RootTxNum:      codec.GetUint32BE(tail[0:4]),
		RootPosition:   codec.GetUint16BE(tail[4:6]),
	}, nil
}

func (claimShortIDRow) PackValue(txNum uint32, position uint16) []byte {
	return concat(codec.PutUint32BE(txNum), codec.PutUint16BE(position))
}

func (claimShortIDRow) UnpackValue(data []byte) (ClaimShortIDValue, error) {
	if len(data) != 6 {
		return ClaimShortIDValue{}, huberr.Corrupt("claim_short_id value: expected 6 bytes, got %d", len(data))
	}
	return ClaimShortIDValue{
		TxNum:    codec.GetUint32BE(data[0:4]),
		Position: codec.GetUint16BE(data[4:6]),
	}, nil
}

func (r claimShortIDRow) PackItem(name, partialClaimID string, rootTxNum uint32, rootPosition uint16, txNum uint32, position uint16) (key, value []byte) {
	return r.PackKey(name, partialClaimID, rootTxNum, rootPosition), r.PackValue(txNum, position)
}

func (r claimShortIDRow) UnpackItem(key, value []byte) (any, any, error) {
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
//	1: prefix || name
//	2: prefix || name || partial_claim_id
//	3: prefix || name || partial_claim_id || root_tx_num || root_position (== PackKey)
func (claimShortIDRow) KeyPart(level int, name, partialClaimID string, rootTxNum uint32, rootPosition uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixClaimShortID}
	case 1:
		return concat([]byte{PrefixClaimShortID}, codec.PutName(name))
	case 2:
		return concat([]byte{PrefixClaimShortID}, codec.PutName(name), codec.PutShortString(partialClaimID))
	case 3:
		return concat(
			[]byte{PrefixClaimShortID},
			codec.PutName(name),
			codec.PutShortString(partialClaimID),
			codec.PutUint32BE(rootTxNum),
			codec.PutUint16BE(rootPosition),
		)
	default:
		panic("claim_short_id: invalid key part level")
	}
}
