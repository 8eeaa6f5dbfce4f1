package prefixes

import (
	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
)

// --- claim_to_support row: (claim_hash, tx_num, position) -> amount -------

type ClaimToSupportKey struct {
	ClaimHash [codec.ClaimHashLen]byte
	TxNum     uint32
	Position  uint16
}

type ClaimToSupportValue struct {
	Amount uint64
}

type claimToSupportRow struct{}

var ClaimToSupport claimToSupportRow

func init() { register(ClaimToSupport) }

func (claimToSupportRow) Prefix() byte   { return PrefixClaimToSupport }
func (claimToSupportRow) CacheSize() int { return DefaultCacheSize }

func (claimToSupportRow) PackKey(claimHash [codec.ClaimHashLen]byte, txNum uint32, position uint16) []byte {
	return concat([]byte{PrefixClaimToSupport}, claimHash[:], codec.PutUint32BE(txNum), codec.PutUint16BE(position))
}

func (claimToSupportRow) UnpackKey(key []byte) (ClaimToSupportKey, error) {
	const fixed = 1 + codec.ClaimHashLen + 4 + 2
	if err := requirePrefix(key, PrefixClaimToSupport, fixed); err != nil {
		return ClaimToSupportKey{}, err
	}
	if len(key) != fixed {
		return ClaimToSupportKey{}, huberr.Corrupt("claim_to_support key: expected %d bytes, got %d", fixed, len(key))
	}
	var k ClaimToSupportKey
	copy(k.ClaimHash[:], key[1:1+codec.ClaimHashLen])
	k.TxNum = codec.GetUint32BE(key[1+codec.ClaimHashLen : 5+codec.ClaimHashLen])
	k.Position = codec.GetUint16BE(key[5+codec.ClaimHashLen:])
	return k, nil
}

func (claimToSupportRow) PackValue(amount uint64) []byte { return codec.PutUint64BE(amount) }

func (claimToSupportRow) UnpackValue(data []byte) (ClaimToSupportValue, error) {
	if len(data) != 8 {
		return ClaimToSupportValue{}, huberr.Corrupt("claim_to_support value: expected 8 bytes, got %d", len(data))
	}
	return ClaimToSupportValue{Amount: codec.GetUint64BE(data)}, nil
}

func (r claimToSupportRow) PackItem(claimHash [codec.ClaimHashLen]byte, txNum uint32, position uint16, amount uint64) (key, value []byte) {
	return r.PackKey(claimHash, txNum, position), r.PackValue(amount)
}

func (r claimToSupportRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (claimToSupportRow) KeyPart(level int, claimHash [codec.ClaimHashLen]byte, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixClaimToSupport}
	case 1:
		return concat([]byte{PrefixClaimToSupport}, claimHash[:])
	case 2:
		return concat([]byte{PrefixClaimToSupport}, claimHash[:], codec.PutUint32BE(txNum))
	case 3:
		return concat([]byte{PrefixClaimToSupport}, claimHash[:], codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("claim_to_support: invalid key part level")
	}
}

// --- support_to_claim row: (tx_num, position) -> claim_hash ---------------

type SupportToClaimKey struct {
	TxNum    uint32
	Position uint16
}

type SupportToClaimValue struct {
	ClaimHash [codec.ClaimHashLen]byte
}

type supportToClaimRow struct{}

var SupportToClaim supportToClaimRow

func init() { register(SupportToClaim) }

func (supportToClaimRow) Prefix() byte   { return PrefixSupportToClaim }
func (supportToClaimRow) CacheSize() int { return DefaultCacheSize }

func (supportToClaimRow) PackKey(txNum uint32, position uint16) []byte {
	return concat([]byte{PrefixSupportToClaim}, codec.PutUint32BE(txNum), codec.PutUint16BE(position))
}

func (supportToClaimRow) UnpackKey(key []byte) (SupportToClaimKey, error) {
	const fixed = 1 + 4 + 2
	if err := requirePrefix(key, PrefixSupportToClaim, fixed); err != nil {
		return SupportToClaimKey{}, err
	}
	if len(key) != fixed {
		return SupportToClaimKey{}, huberr.Corrupt("support_to_claim key: expected %d bytes, got %d", fixed, len(key))
	}
	return SupportToClaimKey{
		TxNum:    codec.GetUint32BE(key[1:5]),
		Position: codec.GetUint16BE(key[5:7]),
	}, nil
}

func (supportToClaimRow) PackValue(claimHash [codec.ClaimHashLen]byte) []byte { return claimHash[:] }

func (supportToClaimRow) UnpackValue(data []byte) (SupportToClaimValue, error) {
	if len(data) != codec.ClaimHashLen {
		return SupportToClaimValue{}, huberr.Corrupt("support_to_claim value: expected %d bytes, got %d", codec.ClaimHashLen, len(data))
	}
	var v SupportToClaimValue
	copy(v.ClaimHash[:], data)
	return v, nil
}

func (r supportToClaimRow) PackItem(txNum uint32, position uint16, claimHash [codec.ClaimHashLen]byte) (key, value []byte) {
	return r.PackKey(txNum, position), r.PackValue(claimHash)
}

func (r supportToClaimRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (supportToClaimRow) KeyPart(level int, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixSupportToClaim}
	case 1:
		return concat([]byte{PrefixSupportToClaim}, codec.PutUint32BE(txNum))
	case 2:
		return concat([]byte{PrefixSupportToClaim}, codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("support_to_claim: invalid key part level")
	}
}

// --- support_amount row: claim_hash -> total support amount ---------------

type SupportAmountKey struct {
	ClaimHash [codec.ClaimHashLen]byte
}

type SupportAmountValue struct {
	Amount uint64
}

type supportAmountRow struct{}

var SupportAmount supportAmountRow

func init() { register(SupportAmount) }

func (supportAmountRow) Prefix() byte   { return PrefixSupportAmount }
func (supportAmountRow) CacheSize() int { return DefaultCacheSize }

func (supportAmountRow) PackKey(claimHash [codec.ClaimHashLen]byte) []byte {
	return concat([]byte{PrefixSupportAmount}, claimHash[:])
}

func (supportAmountRow) UnpackKey(key []byte) (SupportAmountKey, error) {
	const fixed = 1 + codec.ClaimHashLen
	if err := requirePrefix(key, PrefixSupportAmount, fixed); err != nil {
		return SupportAmountKey{}, err
	}
	if len(key) != fixed {
		return SupportAmountKey{}, huberr.Corrupt("support_amount key: expected %d bytes, got %d", fixed, len(key))
	}
	var k SupportAmountKey
	copy(k.ClaimHash[:], key[1:])
	return k, nil
}

func (supportAmountRow) PackValue(amount uint64) []byte { return codec.PutUint64BE(amount) }

func (supportAmountRow) UnpackValue(data []byte) (SupportAmountValue, error) {
	if len(data) != 8 {
		return SupportAmountValue{}, huberr.Corrupt("support_amount value: expected 8 bytes, got %d", len(data))
	}
	return SupportAmountValue{Amount: codec.GetUint64BE(data)}, nil
}

func (r supportAmountRow) PackItem(claimHash [codec.ClaimHashLen]byte, amount uint64) (key, value []byte) {
	return r.PackKey(claimHash), r.PackValue(amount)
}

func (r supportAmountRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (supportAmountRow) KeyPart(level int, claimHash [codec.ClaimHashLen]byte) []byte {
	switch level {
	case 0:
		return []byte{PrefixSupportAmount}
	case 1:
		return concat([]byte{PrefixSupportAmount}, claimHash[:])
	default:
		panic("support_amount: invalid key part level")
	}
}
