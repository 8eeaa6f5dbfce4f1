package prefixes

import (
	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
)

// --- claim_to_channel row: (claim_hash, tx_num, position) -> signing_hash --

type ClaimToChannelKey struct {
	ClaimHash [codec.ClaimHashLen]byte
	TxNum     uint32
	Position  uint16
}

type ClaimToChannelValue struct {
	SigningHash [codec.ClaimHashLen]byte
}

type claimToChannelRow struct{}

var ClaimToChannel claimToChannelRow

func init() { register(ClaimToChannel) }

func (claimToChannelRow) Prefix() byte   { return PrefixClaimToChannel }
func (claimToChannelRow) CacheSize() int { return DefaultCacheSize }

func (claimToChannelRow) PackKey(claimHash [codec.ClaimHashLen]byte, txNum uint32, position uint16) []byte {
	return concat([]byte{PrefixClaimToChannel}, claimHash[:], codec.PutUint32BE(txNum), codec.PutUint16BE(position))
}

func (claimToChannelRow) UnpackKey(key []byte) (ClaimToChannelKey, error) {
	const fixed = 1 + codec.ClaimHashLen + 4 + 2
	if err := requirePrefix(key, PrefixClaimToChannel, fixed); err != nil {
		return ClaimToChannelKey{}, err
	}
	if len(key) != fixed {
		return ClaimToChannelKey{}, huberr.Corrupt("claim_to_channel key: expected %d bytes, got %d", fixed, len(key))
	}
	var k ClaimToChannelKey
	copy(k.ClaimHash[:], key[1:1+codec.ClaimHashLen])
	k.TxNum = codec.GetUint32BE(key[1+codec.ClaimHashLen : 5+codec.ClaimHashLen])
	k.Position = codec.GetUint16BE(key[5+codec.ClaimHashLen:])
	return k, nil
}

func (claimToChannelRow) PackValue(signingHash [codec.ClaimHashLen]byte) []byte { return signingHash[:] }

func (claimToChannelRow) UnpackValue(data []byte) (ClaimToChannelValue, error) {
	if len(data) != codec.ClaimHashLen {
		return ClaimToChannelValue{}, huberr.Corrupt("claim_to_channel value: expected %d bytes, got %d", codec.ClaimHashLen, len(data))
	}
	var v ClaimToChannelValue
	copy(v.SigningHash[:], data)
	return v, nil
}

func (r claimToChannelRow) PackItem(claimHash [codec.ClaimHashLen]byte, txNum uint32, position uint16, signingHash [codec.ClaimHashLen]byte) (key, value []byte) {
	return r.PackKey(claimHash, txNum, position), r.PackValue(signingHash)
}

func (r claimToChannelRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (claimToChannelRow) KeyPart(level int, claimHash [codec.ClaimHashLen]byte, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixClaimToChannel}
	case 1:
		return concat([]byte{PrefixClaimToChannel}, claimHash[:])
	case 2:
		return concat([]byte{PrefixClaimToChannel}, claimHash[:], codec.PutUint32BE(txNum))
	case 3:
		return concat([]byte{PrefixClaimToChannel}, claimHash[:], codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("claim_to_channel: invalid key part level")
	}
}

// --- channel_to_claim row: (signing_hash, name, tx_num, position) -> claim_hash --

type ChannelToClaimKey struct {
	SigningHash [codec.ClaimHashLen]byte
	Name        string
	TxNum       uint32
	Position    uint16
}

type ChannelToClaimValue struct {
	ClaimHash [codec.ClaimHashLen]byte
}

type channelToClaimRow struct{}

var ChannelToClaim channelToClaimRow

func init() { register(ChannelToClaim) }

func (channelToClaimRow) Prefix() byte   { return PrefixChannelToClaim }
func (channelToClaimRow) CacheSize() int { return DefaultCacheSize }

func (channelToClaimRow) PackKey(signingHash [codec.ClaimHashLen]byte, name string, txNum uint32, position uint16) []byte {
	return concat([]byte{PrefixChannelToClaim}, signingHash[:], codec.PutName(name), codec.PutUint32BE(txNum), codec.PutUint16BE(position))
}

func (channelToClaimRow) UnpackKey(key []byte) (ChannelToClaimKey, error) {
	const headLen = 1 + codec.ClaimHashLen
	if err := requirePrefix(key, PrefixChannelToClaim, headLen); err != nil {
		return ChannelToClaimKey{}, err
	}
	var k ChannelToClaimKey
	copy(k.SigningHash[:], key[1:headLen])
	name, nameLen, err := codec.GetName(key[headLen:])
	if err != nil {
		return ChannelToClaimKey{}, err
	}
	tail := key[headLen+nameLen:]
	if len(tail) != 6 {
		return ChannelToClaimKey{}, huberr.Corrupt("channel_to_claim key: expected 6-byte tx_num/position tail, got %d", len(tail))
	}
	k.Name = name
	k.TxNum = codec.GetUint32BE(tail[0:4])
	k.Position = codec.GetUint16BE(tail[4:6])
	return k, nil
}

func (channelToClaimRow) PackValue(claimHash [codec.ClaimHashLen]byte) []byte { return claimHash[:] }

func (channelToClaimRow) UnpackValue(data []byte) (ChannelToClaimValue, error) {
	if len(data) != codec.ClaimHashLen {
		return ChannelToClaimValue{}, huberr.Corrupt("channel_to_claim value: expected %d bytes, got %d", codec.ClaimHashLen, len(data))
	}
	var v ChannelToClaimValue
	copy(v.ClaimHash[:], data)
	return v, nil
}

func (r channelToClaimRow) PackItem(signingHash [codec.ClaimHashLen]byte, name string, txNum uint32, position uint16, claimHash [codec.ClaimHashLen]byte) (key, value []byte) {
	return r.PackKey(signingHash, name, txNum, position), r.PackValue(claimHash)
}

func (r channelToClaimRow) UnpackItem(key, value []byte) (any, any, error) {
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
//	1: prefix || signing_hash
//	2: prefix || signing_hash || name
//	3: prefix || signing_hash || name || tx_num
//	4: prefix || signing_hash || name || tx_num || position (== PackKey)
func (channelToClaimRow) KeyPart(level int, signingHash [codec.ClaimHashLen]byte, name string, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixChannelToClaim}
	case 1:
		return concat([]byte{PrefixChannelToClaim}, signingHash[:])
	case 2:
		return concat([]byte{PrefixChannelToClaim}, signingHash[:], codec.PutName(name))
	case 3:
		return concat([]byte{PrefixChannelToClaim}, signingHash[:], codec.PutName(name), codec.PutUint32BE(txNum))
	case 4:
		return concat([]byte{PrefixChannelToClaim}, signingHash[:], codec.PutName(name), codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("channel_to_claim: invalid key part level")
	}
}

// --- channel_count row: channel_hash -> count of claims in the channel ----

type ChannelCountKey struct {
	ChannelHash [codec.ClaimHashLen]byte
}

type ChannelCountValue struct {
	Count uint32
}

type channelCountRow struct{}

var ChannelCount channelCountRow

func init() { register(ChannelCount) }

func (channelCountRow) Prefix() byte   { return PrefixChannelCount }
func (channelCountRow) CacheSize() int { return DefaultCacheSize }

func (channelCountRow) PackKey(channelHash [codec.ClaimHashLen]byte) []byte {
	return concat([]byte{PrefixChannelCount}, channelHash[:])
}

func (channelCountRow) UnpackKey(key []byte) (ChannelCountKey, error) {
	const fixed = 1 + codec.ClaimHashLen
	if err := requirePrefix(key, PrefixChannelCount, fixed); err != nil {
		return ChannelCountKey{}, err
	}
	if len(key) != fixed {
		return ChannelCountKey{}, huberr.Corrupt("channel_count key: expected %d bytes, got %d", fixed, len(key))
	}
	var k ChannelCountKey
	copy(k.ChannelHash[:], key[1:])
	return k, nil
}

func (channelCountRow) PackValue(count uint32) []byte { return codec.PutUint32BE(count) }

func (channelCountRow) UnpackValue(data []byte) (ChannelCountValue, error) {
	if len(data) != 4 {
		return ChannelCountValue{}, huberr.Corrupt("channel_count value: expected 4 bytes, got %d", len(data))
	}
	return ChannelCountValue{Count: codec.GetUint32BE(data)}, nil
}

func (r channelCountRow) PackItem(channelHash [codec.ClaimHashLen]byte, count uint32) (key, value []byte) {
	return r.PackKey(channelHash), r.PackValue(count)
}

func (r channelCountRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (channelCountRow) KeyPart(level int, channelHash [codec.ClaimHashLen]byte) []byte {
	switch level {
	case 0:
		return []byte{PrefixChannelCount}
	case 1:
		return concat([]byte{PrefixChannelCount}, channelHash[:])
	default:
		panic("channel_count: invalid key part level")
	}
}
