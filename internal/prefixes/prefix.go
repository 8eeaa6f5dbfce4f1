// Package prefixes is the row schema (component C2 of the design): one
// type per index, each owning a single prefix byte, a key layout, a value
// layout, and an ordered list of partial-key builders for range scans.
//
// Every row follows the same shape so callers can treat rows uniformly
// through the generic Row interface, but each row is still its own named
// Go type — mirroring one-class-per-index in the source this was modeled
// on, not a single parameterized table.
package prefixes

import (
	"github.com/chainclaims/hub/internal/huberr"
)

// Prefix tags. Each byte is assigned exactly once, for the lifetime of the
// on-disk format (§3.3 tag uniqueness, §6.1 "once assigned, a byte is
// never reused for a different schema").
const (
	PrefixActiveAmount          byte = 'A'
	PrefixBlockHash             byte = 'B'
	PrefixClaimToSupport        byte = 'C'
	PrefixSupportToClaim        byte = 'D'
	PrefixClaimToTXO            byte = 'E'
	PrefixTXOToClaim            byte = 'F'
	PrefixClaimToChannel        byte = 'G'
	PrefixChannelToClaim        byte = 'H'
	PrefixClaimShortID          byte = 'I'
	PrefixClaimExpiration       byte = 'J'
	PrefixClaimTakeover         byte = 'K'
	PrefixPendingActivation     byte = 'L'
	PrefixActivated             byte = 'M'
	PrefixEffectiveAmount       byte = 'N'
	PrefixRepost                byte = 'O'
	PrefixRepostedClaim         byte = 'P'
	PrefixUndo                  byte = 'Q'
	PrefixUTXO                  byte = 'R'
	PrefixHashXUTXO             byte = 'S'
	PrefixHashXHistory          byte = 'T'
	PrefixTxCount               byte = 'U'
	PrefixTxHash                byte = 'V'
	PrefixTxNum                 byte = 'W'
	PrefixTx                    byte = 'X'
	PrefixHeader                byte = 'Y'
	PrefixTouchedOrDeleted      byte = 'Z'
	PrefixChannelCount          byte = 'a'
	PrefixDBState               byte = 'b'
	PrefixSupportAmount         byte = 'c'
	PrefixBlockTxs              byte = 'd'
	PrefixMempoolTx             byte = 'e'
	PrefixTrendingNotification  byte = 'f'
	PrefixTouchedHashX          byte = 'g'
)

// Txo-type discriminants used by the activation family of rows.
const (
	TxoTypeClaim   uint8 = 1
	TxoTypeSupport uint8 = 2
)

// CacheSize hints (§5 resource discipline): large for the rows the indexer
// hits on every block (claim_to_txo, active_amount, effective_amount); the
// rest default to the store's global block cache.
const (
	DefaultCacheSize = 0
	LargeCacheSize   = 128 * 1024 * 1024
)

// Row is implemented by every *Row value below; it lets the prefix DB
// facade (C4) and the auto-decoder (C5) hold rows generically without
// losing the ability to type-assert back to a concrete row when a caller
// wants the typed Pack/Unpack helpers.
type Row interface {
	Prefix() byte
	CacheSize() int
	// UnpackItem dispatches to the row's concrete unpack logic and returns
	// the decoded key/value as `any`, for use by the auto-decoder.
	UnpackItem(key, value []byte) (any, any, error)
}

// registry backs the auto-decoder (C5): a static dispatch table keyed by
// prefix byte. It is populated by each row's init() via register, so this
// file never needs to enumerate every row type.
var registry = map[byte]Row{}

func register(r Row) {
	if _, exists := registry[r.Prefix()]; exists {
		panic("prefixes: duplicate prefix byte registered")
	}
	registry[r.Prefix()] = r
}

// AutoDecodeItem is component C5: given a raw (key, value) pair, it
// dispatches to the row whose prefix byte matches and returns the decoded
// key/value pair. If the prefix byte is unknown it returns the raw pair
// unchanged (ok=false) so tooling can scan a store without knowing every
// schema version.
func AutoDecodeItem(key, value []byte) (decodedKey any, decodedValue any, ok bool) {
	if len(key) == 0 {
		return key, value, false
	}
	row, found := registry[key[0]]
	if !found {
		return key, value, false
	}
	k, v, err := row.UnpackItem(key, value)
	if err != nil {
		return key, value, false
	}
	return k, v, true
}

// requirePrefix validates that key begins with prefix and is at least
// minLen bytes long, per the fatal decode-time checks in §4.1.
func requirePrefix(key []byte, prefix byte, minLen int) error {
	if len(key) < minLen {
		return huberr.Corrupt("row %q: key length %d is shorter than the minimum %d bytes", string(prefix), len(key), minLen)
	}
	if key[0] != prefix {
		return huberr.Corrupt("row %q: key has prefix byte %q, expected %q", string(prefix), key[0], prefix)
	}
	return nil
}

// concat is a small allocation helper used by every row's PackKey/PackValue
// to avoid repeating append-chain boilerplate.
func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
