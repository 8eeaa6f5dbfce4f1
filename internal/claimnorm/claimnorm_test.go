package claimnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLowercasesASCII(t *testing.T) {
	require.Equal(t, "hello-world", Normalize("HeLLo-World"))
}

func TestNormalizeLowercasesUnicode(t *testing.T) {
	require.Equal(t, "café", Normalize("CAFÉ"))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize("MiXeD-Case_Name")
	twice := Normalize(once)
	require.Equal(t, once, twice)
}

func TestNormalizeEmptyString(t *testing.T) {
	require.Empty(t, Normalize(""))
}
