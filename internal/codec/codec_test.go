package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUintRoundTrip(t *testing.T) {
	require.Equal(t, uint16(0xBEEF), GetUint16BE(PutUint16BE(0xBEEF)))
	require.Equal(t, uint32(0xDEADBEEF), GetUint32BE(PutUint32BE(0xDEADBEEF)))
	require.Equal(t, uint64(0x1122334455667788), GetUint64BE(PutUint64BE(0x1122334455667788)))
}

func TestUint32BESortsNumerically(t *testing.T) {
	a := PutUint32BE(5)
	b := PutUint32BE(300)
	require.True(t, string(a) < string(b), "expected lexicographic order to match numeric order")
}

func TestInvertUint64ReversesOrder(t *testing.T) {
	small := PutInvertedUint64BE(5)
	big := PutInvertedUint64BE(300)
	require.True(t, string(big) < string(small), "expected inverted encoding of the larger value to sort first")
	require.Equal(t, uint64(42), InvertUint64(InvertUint64(42)))
}

func TestNameRoundTrip(t *testing.T) {
	encoded := PutName("hello, world")
	name, consumed, err := GetName(encoded)
	require.NoError(t, err)
	require.Equal(t, "hello, world", name)
	require.Equal(t, len(encoded), consumed)
}

func TestNameRejectsTruncated(t *testing.T) {
	encoded := PutName("hello")
	_, _, err := GetName(encoded[:3])
	require.Error(t, err)
}

func TestNameRejectsInvalidUTF8(t *testing.T) {
	encoded := append(PutUint16BE(2), 0xff, 0xfe)
	_, _, err := GetName(encoded)
	require.Error(t, err)
}

func TestShortStringRoundTrip(t *testing.T) {
	encoded := PutShortString("abc123")
	s, consumed, err := GetShortString(encoded)
	require.NoError(t, err)
	require.Equal(t, "abc123", s)
	require.Equal(t, len(encoded), consumed)
}

func TestDisplayHashReversesByteOrder(t *testing.T) {
	var hash [TxHashLen]byte
	hash[0] = 0xAA
	hash[TxHashLen-1] = 0xBB
	got := DisplayHash(hash)
	require.Equal(t, "bb", got[:2], "expected the last stored byte to display first")
	require.Equal(t, "aa", got[len(got)-2:], "expected the first stored byte to display last")
}

func TestShortStringPanicsOnOverlong(t *testing.T) {
	long := make([]byte, MaxShortStringLen+1)
	for i := range long {
		long[i] = 'x'
	}
	require.Panics(t, func() { PutShortString(string(long)) })
}
