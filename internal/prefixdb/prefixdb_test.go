package prefixdb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainclaims/hub/internal/huberr"
	"github.com/chainclaims/hub/internal/prefixes"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyBatchThenGet(t *testing.T) {
	db := openTestDB(t)

	key, value := prefixes.DBState.PackItem(prefixes.DBStateValue{Height: 7})
	require.NoError(t, db.Stack().Put(key, value))

	var blockHash [32]byte
	blockHash[0] = 1
	require.NoError(t, db.ApplyBatch(1, blockHash))

	got, err := db.Get(key)
	require.NoError(t, err)
	decoded, err := prefixes.DBState.UnpackValue(got)
	require.NoError(t, err)
	require.Equal(t, uint32(7), decoded.Height)
}

func TestRollbackRestoresPriorValue(t *testing.T) {
	db := openTestDB(t)
	key, value1 := prefixes.DBState.PackItem(prefixes.DBStateValue{Height: 1})

	var blockHash1, blockHash2 [32]byte
	blockHash1[0], blockHash2[0] = 1, 2

	require.NoError(t, db.Stack().Put(key, value1))
	require.NoError(t, db.ApplyBatch(1, blockHash1))

	_, packedValue2 := prefixes.DBState.PackItem(prefixes.DBStateValue{Height: 2})
	require.NoError(t, db.Stack().Put(key, packedValue2))
	require.NoError(t, db.ApplyBatch(2, blockHash2))

	got, err := db.Get(key)
	require.NoError(t, err)
	decoded, err := prefixes.DBState.UnpackValue(got)
	require.NoError(t, err)
	require.Equal(t, uint32(2), decoded.Height, "expected height 2 before rollback")

	require.NoError(t, db.Rollback(2, blockHash2))

	got, err = db.Get(key)
	require.NoError(t, err)
	decoded, err = prefixes.DBState.UnpackValue(got)
	require.NoError(t, err)
	require.Equal(t, uint32(1), decoded.Height, "expected height 1 after rollback")
}

func TestRollbackMissingUndoReturnsReorgWindowExceeded(t *testing.T) {
	db := openTestDB(t)
	var blockHash [32]byte
	blockHash[0] = 99
	err := db.Rollback(999, blockHash)
	require.Equal(t, huberr.ErrReorgWindowExceeded, err)
}

func TestRollbackCachesMissingUndoAcrossCalls(t *testing.T) {
	db := openTestDB(t)
	var blockHash [32]byte
	blockHash[0] = 7

	err := db.Rollback(500, blockHash)
	require.Equal(t, huberr.ErrReorgWindowExceeded, err)

	undoKey := prefixes.Undo.PackKey(500, blockHash)
	require.True(t, db.missingUndo.Contains(string(undoKey)), "expected the first miss to populate the negative cache")

	err = db.Rollback(500, blockHash)
	require.Equal(t, huberr.ErrReorgWindowExceeded, err, "expected a cached miss to still report the same error")
}

func TestIteratorForwardAndReverse(t *testing.T) {
	db := openTestDB(t)

	var hashX [11]byte
	copy(hashX[:], "0123456789a")
	for i := uint32(0); i < 5; i++ {
		key, value := prefixes.UTXO.PackItem(hashX, i, 0, uint64(i*100))
		require.NoError(t, db.Stack().Put(key, value))
	}
	var blockHash [32]byte
	require.NoError(t, db.ApplyBatch(1, blockHash))

	unpack := func(key, value []byte) (prefixes.UTXOKey, prefixes.UTXOValue, error) {
		k, err := prefixes.UTXO.UnpackKey(key)
		if err != nil {
			return prefixes.UTXOKey{}, prefixes.UTXOValue{}, err
		}
		v, err := prefixes.UTXO.UnpackValue(value)
		return k, v, err
	}

	it := db.NewIterator(prefixes.UTXO.KeyPart(1, hashX, 0, 0), unpack, 0)
	defer it.Close()

	var gotOrder []uint32
	for it.Next() {
		k, _, err := it.Item()
		require.NoError(t, err)
		gotOrder = append(gotOrder, k.TxNum)
		it.Advance()
	}
	require.Len(t, gotOrder, 5)
	for i := 1; i < len(gotOrder); i++ {
		require.Greater(t, gotOrder[i], gotOrder[i-1], "expected ascending tx_num order, got %v", gotOrder)
	}

	rit := db.NewReverseIterator(prefixes.UTXO.KeyPart(1, hashX, 0, 0), unpack, 0)
	defer rit.Close()

	var gotReverse []uint32
	for rit.Next() {
		k, _, err := rit.Item()
		require.NoError(t, err)
		gotReverse = append(gotReverse, k.TxNum)
		rit.Advance()
	}
	for i := 1; i < len(gotReverse); i++ {
		require.Less(t, gotReverse[i], gotReverse[i-1], "expected descending tx_num order, got %v", gotReverse)
	}
}
