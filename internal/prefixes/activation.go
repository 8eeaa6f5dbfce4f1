package prefixes

import (
	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
)

// --- claim_expiration row: (expiration, tx_num, position) -> claim_hash + name --

type ClaimExpirationKey struct {
	Expiration uint32
	TxNum      uint32
	Position   uint16
}

type ClaimExpirationValue struct {
	ClaimHash      [codec.ClaimHashLen]byte
	NormalizedName string
}

type claimExpirationRow struct{}

var ClaimExpiration claimExpirationRow

func init() { register(ClaimExpiration) }

func (claimExpirationRow) Prefix() byte   { return PrefixClaimExpiration }
func (claimExpirationRow) CacheSize() int { return DefaultCacheSize }

func (claimExpirationRow) PackKey(expiration, txNum uint32, position uint16) []byte {
	return concat([]byte{PrefixClaimExpiration}, codec.PutUint32BE(expiration), codec.PutUint32BE(txNum), codec.PutUint16BE(position))
}

func (claimExpirationRow) UnpackKey(key []byte) (ClaimExpirationKey, error) {
	const fixed = 1 + 4 + 4 + 2
	if err := requirePrefix(key, PrefixClaimExpiration, fixed); err != nil {
		return ClaimExpirationKey{}, err
	}
	if len(key) != fixed {
		return ClaimExpirationKey{}, huberr.Corrupt("claim_expiration key: expected %d bytes, got %d", fixed, len(key))
	}
	return ClaimExpirationKey{
		Expiration: codec.GetUint32BE(key[1:5]),
		TxNum:      codec.GetUint32BE(key[5:9]),
		Position:   codec.GetUint16BE(key[9:11]),
	}, nil
}

func (claimExpirationRow) PackValue(claimHash [codec.ClaimHashLen]byte, name string) []byte {
	return concat(claimHash[:], codec.PutName(name))
}

func (claimExpirationRow) UnpackValue(data []byte) (ClaimExpirationValue, error) {
	if len(data) < codec.ClaimHashLen {
		return ClaimExpirationValue{}, huberr.Corrupt("claim_expiration value: %d bytes is shorter than the %d-byte claim hash", len(data), codec.ClaimHashLen)
	}
	name, _, err := codec.GetName(data[codec.ClaimHashLen:])
	if err != nil {
		return ClaimExpirationValue{}, err
	}
	var v ClaimExpirationValue
	copy(v.ClaimHash[:], data[:codec.ClaimHashLen])
	v.NormalizedName = name
	return v, nil
}

func (r claimExpirationRow) PackItem(expiration, txNum uint32, position uint16, claimHash [codec.ClaimHashLen]byte, name string) (key, value []byte) {
	return r.PackKey(expiration, txNum, position), r.PackValue(claimHash, name)
}

func (r claimExpirationRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (claimExpirationRow) KeyPart(level int, expiration, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixClaimExpiration}
	case 1:
		return concat([]byte{PrefixClaimExpiration}, codec.PutUint32BE(expiration))
	case 2:
		return concat([]byte{PrefixClaimExpiration}, codec.PutUint32BE(expiration), codec.PutUint32BE(txNum))
	case 3:
		return concat([]byte{PrefixClaimExpiration}, codec.PutUint32BE(expiration), codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("claim_expiration: invalid key part level")
	}
}

// --- claim_takeover row: normalized_name -> (claim_hash, takeover height) --

type ClaimTakeoverKey struct {
	NormalizedName string
}

type ClaimTakeoverValue struct {
	ClaimHash      [codec.ClaimHashLen]byte
	TakeoverHeight uint32
}

type claimTakeoverRow struct{}

var ClaimTakeover claimTakeoverRow

func init() { register(ClaimTakeover) }

func (claimTakeoverRow) Prefix() byte   { return PrefixClaimTakeover }
func (claimTakeoverRow) CacheSize() int { return DefaultCacheSize }

func (claimTakeoverRow) PackKey(name string) []byte {
	return concat([]byte{PrefixClaimTakeover}, codec.PutName(name))
}

func (claimTakeoverRow) UnpackKey(key []byte) (ClaimTakeoverKey, error) {
	if err := requirePrefix(key, PrefixClaimTakeover, 1); err != nil {
		return ClaimTakeoverKey{}, err
	}
	name, _, err := codec.GetName(key[1:])
	if err != nil {
		return ClaimTakeoverKey{}, err
	}
	return ClaimTakeoverKey{NormalizedName: name}, nil
}

func (claimTakeoverRow) PackValue(claimHash [codec.ClaimHashLen]byte, takeoverHeight uint32) []byte {
	return concat(claimHash[:], codec.PutUint32BE(takeoverHeight))
}

func (claimTakeoverRow) UnpackValue(data []byte) (ClaimTakeoverValue, error) {
	if len(data) != codec.ClaimHashLen+4 {
		return ClaimTakeoverValue{}, huberr.Corrupt("claim_takeover value: expected %d bytes, got %d", codec.ClaimHashLen+4, len(data))
	}
	var v ClaimTakeoverValue
	copy(v.ClaimHash[:], data[:codec.ClaimHashLen])
	v.TakeoverHeight = codec.GetUint32BE(data[codec.ClaimHashLen:])
	return v, nil
}

func (r claimTakeoverRow) PackItem(name string, claimHash [codec.ClaimHashLen]byte, takeoverHeight uint32) (key, value []byte) {
	return r.PackKey(name), r.PackValue(claimHash, takeoverHeight)
}

func (r claimTakeoverRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (claimTakeoverRow) KeyPart(level int, name string) []byte {
	switch level {
	case 0:
		return []byte{PrefixClaimTakeover}
	case 1:
		return concat([]byte{PrefixClaimTakeover}, codec.PutName(name))
	default:
		panic("claim_takeover: invalid key part level")
	}
}

// --- pending_activation row: (height, txo_type, tx_num, position) -> claim_hash + name --

type PendingActivationKey struct {
	Height   uint32
	TxoType  uint8
	TxNum    uint32
	Position uint16
}

func (k PendingActivationKey) IsSupport() bool { return k.TxoType == TxoTypeSupport }
func (k PendingActivationKey) IsClaim() bool   { return k.TxoType == TxoTypeClaim }

type PendingActivationValue struct {
	ClaimHash      [codec.ClaimHashLen]byte
	NormalizedName string
}

type pendingActivationRow struct{}

var PendingActivation pendingActivationRow

func init() { register(PendingActivation) }

func (pendingActivationRow) Prefix() byte   { return PrefixPendingActivation }
func (pendingActivationRow) CacheSize() int { return DefaultCacheSize }

func (pendingActivationRow) PackKey(height uint32, txoType uint8, txNum uint32, position uint16) []byte {
	return concat([]byte{PrefixPendingActivation}, codec.PutUint32BE(height), codec.PutUint8(txoType), codec.PutUint32BE(txNum), codec.PutUint16BE(position))
}

func (pendingActivationRow) UnpackKey(key []byte) (PendingActivationKey, error) {
	const fixed = 1 + 4 + 1 + 4 + 2
	if err := requirePrefix(key, PrefixPendingActivation, fixed); err != nil {
		return PendingActivationKey{}, err
	}
	if len(key) != fixed {
		return PendingActivationKey{}, huberr.Corrupt("pending_activation key: expected %d bytes, got %d", fixed, len(key))
	}
	return PendingActivationKey{
		Height:   codec.GetUint32BE(key[1:5]),
		TxoType:  codec.GetUint8(key[5:6]),
		TxNum:    codec.GetUint32BE(key[6:10]),
		Position: codec.GetUint16BE(key[10:12]),
	}, nil
}

func (pendingActivationRow) PackValue(claimHash [codec.ClaimHashLen]byte, name string) []byte {
	return concat(claimHash[:], codec.PutName(name))
}

func (pendingActivationRow) UnpackValue(data []byte) (PendingActivationValue, error) {
	if len(data) < codec.ClaimHashLen {
		return PendingActivationValue{}, huberr.Corrupt("pending_activation value: %d bytes is shorter than the %d-byte claim hash", len(data), codec.ClaimHashLen)
	}
	name, _, err := codec.GetName(data[codec.ClaimHashLen:])
	if err != nil {
		return PendingActivationValue{}, err
	}
	var v PendingActivationValue
	copy(v.ClaimHash[:], data[:codec.ClaimHashLen])
	v.NormalizedName = name
	return v, nil
}

func (r pendingActivationRow) PackItem(height uint32, txoType uint8, txNum uint32, position uint16, claimHash [codec.ClaimHashLen]byte, name string) (key, value []byte) {
	return r.PackKey(height, txoType, txNum, position), r.PackValue(claimHash, name)
}

func (r pendingActivationRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (pendingActivationRow) KeyPart(level int, height uint32, txoType uint8, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixPendingActivation}
	case 1:
		return concat([]byte{PrefixPendingActivation}, codec.PutUint32BE(height))
	case 2:
		return concat([]byte{PrefixPendingActivation}, codec.PutUint32BE(height), codec.PutUint8(txoType))
	case 3:
		return concat([]byte{PrefixPendingActivation}, codec.PutUint32BE(height), codec.PutUint8(txoType), codec.PutUint32BE(txNum))
	case 4:
		return concat([]byte{PrefixPendingActivation}, codec.PutUint32BE(height), codec.PutUint8(txoType), codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("pending_activation: invalid key part level")
	}
}

// --- activated row: (txo_type, tx_num, position) -> (height, claim_hash, name) --

type ActivationKey struct {
	TxoType  uint8
	TxNum    uint32
	Position uint16
}

func (k ActivationKey) IsSupport() bool { return k.TxoType == TxoTypeSupport }
func (k ActivationKey) IsClaim() bool   { return k.TxoType == TxoTypeClaim }

type ActivationValue struct {
	Height         uint32
	ClaimHash      [codec.ClaimHashLen]byte
	NormalizedName string
}

type activatedRow struct{}

var Activated activatedRow

func init() { register(Activated) }

func (activatedRow) Prefix() byte   { return PrefixActivated }
func (activatedRow) CacheSize() int { return DefaultCacheSize }

func (activatedRow) PackKey(txoType uint8, txNum uint32, position uint16) []byte {
	return concat([]byte{PrefixActivated}, codec.PutUint8(txoType), codec.PutUint32BE(txNum), codec.PutUint16BE(position))
}

func (activatedRow) UnpackKey(key []byte) (ActivationKey, error) {
	const fixed = 1 + 1 + 4 + 2
	if err := requirePrefix(key, PrefixActivated, fixed); err != nil {
		return ActivationKey{}, err
	}
	if len(key) != fixed {
		return ActivationKey{}, huberr.Corrupt("activated key: expected %d bytes, got %d", fixed, len(key))
	}
	return ActivationKey{
		TxoType:  codec.GetUint8(key[1:2]),
		TxNum:    codec.GetUint32BE(key[2:6]),
		Position: codec.GetUint16BE(key[6:8]),
	}, nil
}

func (activatedRow) PackValue(height uint32, claimHash [codec.ClaimHashLen]byte, name string) []byte {
	return concat(codec.PutUint32BE(height), claimHash[:], codec.PutName(name))
}

func (activatedRow) UnpackValue(data []byte) (ActivationValue, error) {
	const fixed = 4 + codec.ClaimHashLen
	if len(data) < fixed {
		return ActivationValue{}, huberr.Corrupt("activated value: %d bytes is shorter than the %d-byte fixed portion", len(data), fixed)
	}
	name, _, err := codec.GetName(data[fixed:])
	if err != nil {
		return ActivationValue{}, err
	}
	var v ActivationValue
	v.Height = codec.GetUint32BE(data[0:4])
	copy(v.ClaimHash[:], data[4:fixed])
	v.NormalizedName = name
	return v, nil
}

func (r activatedRow) PackItem(txoType uint8, txNum uint32, position uint16, height uint32, claimHash [codec.ClaimHashLen]byte, name string) (key, value []byte) {
	return r.PackKey(txoType, txNum, position), r.PackValue(height, claimHash, name)
}

func (r activatedRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (activatedRow) KeyPart(level int, txoType uint8, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixActivated}
	case 1:
		return concat([]byte{PrefixActivated}, codec.PutUint8(txoType))
	case 2:
		return concat([]byte{PrefixActivated}, codec.PutUint8(txoType), codec.PutUint32BE(txNum))
	case 3:
		return concat([]byte{PrefixActivated}, codec.PutUint8(txoType), codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("activated: invalid key part level")
	}
}

// --- active_amount row: (claim_hash, txo_type, activation_height, tx_num, position) -> amount --

type ActiveAmountKey struct {
	ClaimHash        [codec.ClaimHashLen]byte
	TxoType          uint8
	ActivationHeight uint32
	TxNum            uint32
	Position         uint16
}

func (k ActiveAmountKey) IsSupport() bool { return k.TxoType == TxoTypeSupport }
func (k ActiveAmountKey) IsClaim() bool   { return k.TxoType == TxoTypeClaim }

type ActiveAmountValue struct {
	Amount uint64
}

type activeAmountRow struct{}

var ActiveAmount activeAmountRow

func init() { register(ActiveAmount) }

func (activeAmountRow) Prefix() byte   { return PrefixActiveAmount }
func (activeAmountRow) CacheSize() int { return LargeCacheSize }

func (activeAmountRow) PackKey(claimHash [codec.ClaimHashLen]byte, txoType uint8, activationHeight, txNum uint32, position uint16) []byte {
	return concat(
		[]byte{PrefixActiveAmount}, claimHash[:], codec.PutUint8(txoType),
		codec.PutUint32BE(activationHeight), codec.PutUint32BE(txNum), codec.PutUint16BE(position),
	)
}

func (activeAmountRow) UnpackKey(key []byte) (ActiveAmountKey, error) {
	const fixed = 1 + codec.ClaimHashLen + 1 + 4 + 4 + 2
	if err := requirePrefix(key, PrefixActiveAmount, fixed); err != nil {
		return ActiveAmountKey{}, err
	}
	if len(key) != fixed {
		return ActiveAmountKey{}, huberr.Corrupt("active_amount key: expected %d bytes, got %d", fixed, len(key))
	}
	var k ActiveAmountKey
	off := 1
	copy(k.ClaimHash[:], key[off:off+codec.ClaimHashLen])
	off += codec.ClaimHashLen
	k.TxoType = codec.GetUint8(key[off : off+1])
	off++
	k.ActivationHeight = codec.GetUint32BE(key[off : off+4])
	off += 4
	k.TxNum = codec.GetUint32BE(key[off : off+4])
	off += 4
	k.Position = codec.GetUint16BE(key[off : off+2])
	return k, nil
}

func (activeAmountRow) PackValue(amount uint64) []byte { return codec.PutUint64BE(amount) }

func (activeAmountRow) UnpackValue(data []byte) (ActiveAmountValue, error) {
	if len(data) != 8 {
		return ActiveAmountValue{}, huberr.Corrupt("active_amount value: expected 8 bytes, got %d", len(data))
	}
	return ActiveAmountValue{Amount: codec.GetUint64BE(data)}, nil
}

func (r activeAmountRow) PackItem(claimHash [codec.ClaimHashLen]byte, txoType uint8, activationHeight, txNum uint32, position uint16, amount uint64) (key, value []byte) {
	return r.PackKey(claimHash, txoType, activationHeight, txNum, position), r.PackValue(amount)
}

func (r activeAmountRow) UnpackItem(key, value []byte) (any, any, error) {
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

// KeyPart levels 0-5, one per field boundary, mirroring key_part_lambdas.
func (activeAmountRow) KeyPart(level int, claimHash [codec.ClaimHashLen]byte, txoType uint8, activationHeight, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixActiveAmount}
	case 1:
		return concat([]byte{PrefixActiveAmount}, claimHash[:])
	case 2:
		return concat([]byte{PrefixActiveAmount}, claimHash[:], codec.PutUint8(txoType))
	case 3:
		return concat([]byte{PrefixActiveAmount}, claimHash[:], codec.PutUint8(txoType), codec.PutUint32BE(activationHeight))
	case 4:
		return concat([]byte{PrefixActiveAmount}, claimHash[:], codec.PutUint8(txoType), codec.PutUint32BE(activationHeight), codec.PutUint32BE(txNum))
	case 5:
		return concat([]byte{PrefixActiveAmount}, claimHash[:], codec.PutUint8(txoType), codec.PutUint32BE(activationHeight), codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("active_amount: invalid key part level")
	}
}

// --- effective_amount row: (name, ~effective_amount, tx_num, position) -> claim_hash --
//
// effective_amount is stored inverted (§3.1 "inverse-BE-u64") so that an
// ascending byte-order scan over the row yields claims ordered from the
// largest effective amount to the smallest for a given name.

type EffectiveAmountKey struct {
	NormalizedName  string
	EffectiveAmount uint64
	TxNum           uint32
	Position        uint16
}

type EffectiveAmountValue struct {
	ClaimHash [codec.ClaimHashLen]byte
}

type effectiveAmountRow struct{}

var EffectiveAmount effectiveAmountRow

func init() { register(EffectiveAmount) }

func (effectiveAmountRow) Prefix() byte   { return PrefixEffectiveAmount }
func (effectiveAmountRow) CacheSize() int { return LargeCacheSize }

func (effectiveAmountRow) PackKey(name string, effectiveAmount uint64, txNum uint32, position uint16) []byte {
	return concat(
		[]byte{PrefixEffectiveAmount}, codec.PutName(name),
		codec.PutInvertedUint64BE(effectiveAmount), codec.PutUint32BE(txNum), codec.PutUint16BE(position),
	)
}

func (effectiveAmountRow) UnpackKey(key []byte) (EffectiveAmountKey, error) {
	if err := requirePrefix(key, PrefixEffectiveAmount, 1); err != nil {
		return EffectiveAmountKey{}, err
	}
	name, nameLen, err := codec.GetName(key[1:])
	if err != nil {
		return EffectiveAmountKey{}, err
	}
	tail := key[1+nameLen:]
	if len(tail) != 8+4+2 {
		return EffectiveAmountKey{}, huberr.Corrupt("effective_amount key: expected 14-byte tail, got %d", len(tail))
	}
	return EffectiveAmountKey{
		NormalizedName:  name,
		EffectiveAmount: codec.InvertUint64(codec.GetUint64BE(tail[0:8])),
		TxNum:           codec.GetUint32BE(tail[8:12]),
		Position:        codec.GetUint16BE(tail[12:14]),
	}, nil
}

func (effectiveAmountRow) PackValue(claimHash [codec.ClaimHashLen]byte) []byte { return claimHash[:] }

func (effectiveAmountRow) UnpackValue(data []byte) (EffectiveAmountValue, error) {
	if len(data) != codec.ClaimHashLen {
		return EffectiveAmountValue{}, huberr.Corrupt("effective_amount value: expected %d bytes, got %d", codec.ClaimHashLen, len(data))
	}
	var v EffectiveAmountValue
	copy(v.ClaimHash[:], data)
	return v, nil
}

func (r effectiveAmountRow) PackItem(name string, effectiveAmount uint64, txNum uint32, position uint16, claimHash [codec.ClaimHashLen]byte) (key, value []byte) {
	return r.PackKey(name, effectiveAmount, txNum, position), r.PackValue(claimHash)
}

func (r effectiveAmountRow) UnpackItem(key, value []byte) (any, any, error) {
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
//	2: prefix || name || ~effective_amount
//	3: prefix || name || ~effective_amount || tx_num
//	4: prefix || name || ~effective_amount || tx_num || position (== PackKey)
func (effectiveAmountRow) KeyPart(level int, name string, effectiveAmount uint64, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixEffectiveAmount}
	case 1:
		return concat([]byte{PrefixEffectiveAmount}, codec.PutName(name))
	case 2:
		return concat([]byte{PrefixEffectiveAmount}, codec.PutName(name), codec.PutInvertedUint64BE(effectiveAmount))
	case 3:
		return concat([]byte{PrefixEffectiveAmount}, codec.PutName(name), codec.PutInvertedUint64BE(effectiveAmount), codec.PutUint32BE(txNum))
	case 4:
		return concat([]byte{PrefixEffectiveAmount}, codec.PutName(name), codec.PutInvertedUint64BE(effectiveAmount), codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("effective_amount: invalid key part level")
	}
}
