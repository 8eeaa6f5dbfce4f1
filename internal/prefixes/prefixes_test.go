package prefixes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainclaims/hub/internal/codec"
)

func TestUTXORoundTrip(t *testing.T) {
	var hashX [codec.HashXLen]byte
	copy(hashX[:], []byte("0123456789a"))

	key, value := UTXO.PackItem(hashX, 42, 7, 100000)
	gotKey, err := UTXO.UnpackKey(key)
	require.NoError(t, err)
	require.Equal(t, hashX, gotKey.HashX)
	require.Equal(t, uint32(42), gotKey.TxNum)
	require.Equal(t, uint16(7), gotKey.Nout)

	gotValue, err := UTXO.UnpackValue(value)
	require.NoError(t, err)
	require.Equal(t, uint64(100000), gotValue.Amount)
}

func TestUTXOKeyOrderingMatchesFieldOrder(t *testing.T) {
	var hashX [codec.HashXLen]byte
	copy(hashX[:], []byte("0123456789a"))

	lowNum := UTXO.PackKey(hashX, 5, 0)
	highNum := UTXO.PackKey(hashX, 300, 0)
	require.True(t, string(lowNum) < string(highNum), "expected ascending tx_num to sort ascending lexicographically")
}

func TestUTXOKeyPartLevelsArePrefixesOfFullKey(t *testing.T) {
	var hashX [codec.HashXLen]byte
	copy(hashX[:], []byte("0123456789a"))
	full := UTXO.PackKey(hashX, 42, 7)

	for level := 0; level <= 3; level++ {
		part := UTXO.KeyPart(level, hashX, 42, 7)
		require.LessOrEqual(t, len(part), len(full))
		require.Equal(t, part, full[:len(part)])
	}
}

func TestAutoDecodeItemDispatchesByPrefixByte(t *testing.T) {
	var hashX [codec.HashXLen]byte
	copy(hashX[:], []byte("0123456789a"))
	key, value := UTXO.PackItem(hashX, 1, 0, 5)

	decodedKey, decodedValue, ok := AutoDecodeItem(key, value)
	require.True(t, ok, "expected AutoDecodeItem to recognize the utxo prefix")

	utxoKey, ok := decodedKey.(UTXOKey)
	require.True(t, ok, "decoded key has wrong type: %T", decodedKey)
	require.Equal(t, uint32(1), utxoKey.TxNum)

	_, ok = decodedValue.(UTXOValue)
	require.True(t, ok, "decoded value has wrong type: %T", decodedValue)
}

func TestAutoDecodeItemUnknownPrefix(t *testing.T) {
	_, _, ok := AutoDecodeItem([]byte{0xff, 1, 2, 3}, []byte{9})
	require.False(t, ok, "expected an unknown prefix byte to report ok=false")
}

func TestDBStateLegacyValueMigrates(t *testing.T) {
	full := DBStateValue{
		Height:     100,
		TxCount:    5000,
		WallTime:   123456,
		CatchingUp: true,
		DBVersion:  2,
	}
	packed := DBState.PackValue(full)
	legacy := packed[:dbStateLegacyLen]

	got, err := DBState.UnpackValue(legacy)
	require.NoError(t, err)
	require.Equal(t, full.Height, got.Height)
	require.Equal(t, full.TxCount, got.TxCount)
	require.Equal(t, full.Height, got.ESSyncHeight, "expected es_sync_height to repeat the height bytes, not zero-pad")
}

func TestDBStateCurrentValueRoundTrips(t *testing.T) {
	full := DBStateValue{Height: 10, ESSyncHeight: 9}
	packed := DBState.PackValue(full)
	require.Len(t, packed, dbStateCurrentLen)

	got, err := DBState.UnpackValue(packed)
	require.NoError(t, err)
	require.Equal(t, uint32(9), got.ESSyncHeight)
}

func TestTouchedOrDeletedSortsHashesBeforeEncoding(t *testing.T) {
	var h1, h2 [codec.ClaimHashLen]byte
	h1[0], h2[0] = 2, 1

	a := TouchedOrDeleted.PackValue([][codec.ClaimHashLen]byte{h1, h2}, nil)
	b := TouchedOrDeleted.PackValue([][codec.ClaimHashLen]byte{h2, h1}, nil)
	require.Equal(t, a, b, "expected sorted encoding to be independent of insertion order")
}

func TestEffectiveAmountSortsDescendingByAmount(t *testing.T) {
	bigBid := EffectiveAmount.PackKey("foo", 1_000_000, 1, 0)
	smallBid := EffectiveAmount.PackKey("foo", 10, 2, 0)
	require.True(t, string(bigBid) < string(smallBid), "expected the larger effective amount to sort first in ascending byte order")
}

func TestPendingActivationTxoTypeHelpers(t *testing.T) {
	key := PendingActivationKey{TxoType: TxoTypeSupport}
	require.True(t, key.IsSupport())
	require.False(t, key.IsClaim())
}
