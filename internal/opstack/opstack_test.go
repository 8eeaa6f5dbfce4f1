package opstack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	data map[string][]byte
}

func (f *fakeReader) Get(key []byte) ([]byte, error) {
	v, ok := f.data[string(key)]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func TestPutCapturesFirstBeforeImage(t *testing.T) {
	reader := &fakeReader{data: map[string][]byte{"k": []byte("v1")}}
	s := New(reader)

	require.NoError(t, s.Put([]byte("k"), []byte("v2")))
	require.NoError(t, s.Put([]byte("k"), []byte("v3")))

	ops := s.Ops()
	require.Len(t, ops, 1, "expected one distinct op")
	require.True(t, Equal(ops[0].OldValue, []byte("v1")), "expected the first before-image to stick, got %q", ops[0].OldValue)
	require.True(t, Equal(ops[0].NewValue, []byte("v3")), "expected the last after-image to win, got %q", ops[0].NewValue)
}

func TestUnsafePrefixSkipsBeforeImage(t *testing.T) {
	reader := &fakeReader{data: map[string][]byte{string([]byte{0xAA, 1}): []byte("old")}}
	s := New(reader, 0xAA)

	require.NoError(t, s.Put([]byte{0xAA, 1}, []byte("new")))
	ops := s.Ops()
	require.False(t, ops[0].HadBeforeImage, "expected an unsafe-prefix key to skip before-image capture")
}

func TestUndoRoundTrip(t *testing.T) {
	reader := &fakeReader{data: map[string][]byte{"k1": []byte("orig")}}
	s := New(reader)

	require.NoError(t, s.Put([]byte("k1"), []byte("changed")))
	require.NoError(t, s.Put([]byte("k2"), []byte("brand-new")))
	require.NoError(t, s.Delete([]byte("k3")))

	undoBytes, err := s.Undo()
	require.NoError(t, err)

	ops, err := ApplyUndo(undoBytes)
	require.NoError(t, err)

	byKey := map[string]Op{}
	for _, op := range ops {
		byKey[string(op.Key)] = op
	}

	require.False(t, byKey["k1"].IsDelete)
	require.True(t, Equal(byKey["k1"].NewValue, []byte("orig")), "expected k1's undo to restore the original value, got %+v", byKey["k1"])
	require.True(t, byKey["k2"].IsDelete, "expected k2's undo to delete it (it didn't exist before)")
	require.True(t, byKey["k3"].IsDelete, "expected k3's undo to delete it")
}

func TestResetClearsState(t *testing.T) {
	reader := &fakeReader{data: map[string][]byte{}}
	s := New(reader)
	require.NoError(t, s.Put([]byte("k"), []byte("v")))
	require.Equal(t, 1, s.Len(), "expected one op before reset")
	s.Reset()
	require.Equal(t, 0, s.Len(), "expected zero ops after reset")
}
