package prefixes

import (
	"github.com/chainclaims/hub/internal/codec"
	"github.com/chainclaims/hub/internal/huberr"
)

// --- repost row: claim_hash -> reposted_claim_hash ------------------------

type RepostKey struct {
	ClaimHash [codec.ClaimHashLen]byte
}

type RepostValue struct {
	RepostedClaimHash [codec.ClaimHashLen]byte
}

type repostRow struct{}

var Repost repostRow

func init() { register(Repost) }

func (repostRow) Prefix() byte   { return PrefixRepost }
func (repostRow) CacheSize() int { return DefaultCacheSize }

func (repostRow) PackKey(claimHash [codec.ClaimHashLen]byte) []byte {
	return concat([]byte{PrefixRepost}, claimHash[:])
}

func (repostRow) UnpackKey(key []byte) (RepostKey, error) {
	const fixed = 1 + codec.ClaimHashLen
	if err := requirePrefix(key, PrefixRepost, fixed); err != nil {
		return RepostKey{}, err
	}
	if len(key) != fixed {
		return RepostKey{}, huberr.Corrupt("repost key: expected %d bytes, got %d", fixed, len(key))
	}
	var k RepostKey
	copy(k.ClaimHash[:], key[1:])
	return k, nil
}

func (repostRow) PackValue(repostedClaimHash [codec.ClaimHashLen]byte) []byte { return repostedClaimHash[:] }

func (repostRow) UnpackValue(data []byte) (RepostValue, error) {
	if len(data) != codec.ClaimHashLen {
		return RepostValue{}, huberr.Corrupt("repost value: expected %d bytes, got %d", codec.ClaimHashLen, len(data))
	}
	var v RepostValue
	copy(v.RepostedClaimHash[:], data)
	return v, nil
}

func (r repostRow) PackItem(claimHash [codec.ClaimHashLen]byte, repostedClaimHash [codec.ClaimHashLen]byte) (key, value []byte) {
	return r.PackKey(claimHash), r.PackValue(repostedClaimHash)
}

func (r repostRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (repostRow) KeyPart(level int, claimHash [codec.ClaimHashLen]byte) []byte {
	switch level {
	case 0:
		return []byte{PrefixRepost}
	case 1:
		return concat([]byte{PrefixRepost}, claimHash[:])
	default:
		panic("repost: invalid key part level")
	}
}

// --- reposted_claim row: (reposted_claim_hash, tx_num, position) -> claim_hash --
//
// The reverse index of repost: given a claim that has been reposted,
// enumerate every claim that reposts it.

type RepostedClaimKey struct {
	RepostedClaimHash [codec.ClaimHashLen]byte
	TxNum             uint32
	Position          uint16
}

type RepostedClaimValue struct {
	ClaimHash [codec.ClaimHashLen]byte
}

type repostedClaimRow struct{}

var RepostedClaim repostedClaimRow

func init() { register(RepostedClaim) }

func (repostedClaimRow) Prefix() byte   { return PrefixRepostedClaim }
func (repostedClaimRow) CacheSize() int { return DefaultCacheSize }

func (repostedClaimRow) PackKey(repostedClaimHash [codec.ClaimHashLen]byte, txNum uint32, position uint16) []byte {
	return concat([]byte{PrefixRepostedClaim}, repostedClaimHash[:], codec.PutUint32BE(txNum), codec.PutUint16BE(position))
}

func (repostedClaimRow) UnpackKey(key []byte) (RepostedClaimKey, error) {
	const fixed = 1 + codec.ClaimHashLen + 4 + 2
	if err := requirePrefix(key, PrefixRepostedClaim, fixed); err != nil {
		return RepostedClaimKey{}, err
	}
	if len(key) != fixed {
		return RepostedClaimKey{}, huberr.Corrupt("reposted_claim key: expected %d bytes, got %d", fixed, len(key))
	}
	var k RepostedClaimKey
	copy(k.RepostedClaimHash[:], key[1:1+codec.ClaimHashLen])
	k.TxNum = codec.GetUint32BE(key[1+codec.ClaimHashLen : 5+codec.ClaimHashLen])
	k.Position = codec.GetUint16BE(key[5+codec.ClaimHashLen:])
	return k, nil
}

func (repostedClaimRow) PackValue(claimHash [codec.ClaimHashLen]byte) []byte { return claimHash[:] }

func (repostedClaimRow) UnpackValue(data []byte) (RepostedClaimValue, error) {
	if len(data) != codec.ClaimHashLen {
		return RepostedClaimValue{}, huberr.Corrupt("reposted_claim value: expected %d bytes, got %d", codec.ClaimHashLen, len(data))
	}
	var v RepostedClaimValue
	copy(v.ClaimHash[:], data)
	return v, nil
}

func (r repostedClaimRow) PackItem(repostedClaimHash [codec.ClaimHashLen]byte, txNum uint32, position uint16, claimHash [codec.ClaimHashLen]byte) (key, value []byte) {
	return r.PackKey(repostedClaimHash, txNum, position), r.PackValue(claimHash)
}

func (r repostedClaimRow) UnpackItem(key, value []byte) (any, any, error) {
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

func (repostedClaimRow) KeyPart(level int, repostedClaimHash [codec.ClaimHashLen]byte, txNum uint32, position uint16) []byte {
	switch level {
	case 0:
		return []byte{PrefixRepostedClaim}
	case 1:
		return concat([]byte{PrefixRepostedClaim}, repostedClaimHash[:])
	case 2:
		return concat([]byte{PrefixRepostedClaim}, repostedClaimHash[:], codec.PutUint32BE(txNum))
	case 3:
		return concat([]byte{PrefixRepostedClaim}, repostedClaimHash[:], codec.PutUint32BE(txNum), codec.PutUint16BE(position))
	default:
		panic("reposted_claim: invalid key part level")
	}
}
