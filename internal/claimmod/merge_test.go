package claimmod

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/chainclaims/hub/internal/claimpb"
)

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestMergeAddsNewScalarField(t *testing.T) {
	dst := mustStruct(t, map[string]any{})
	src := mustStruct(t, map[string]any{"title": "hello"})

	Merge(dst, src, false)

	require.Equal(t, "hello", dst.Fields["title"].GetStringValue())
}

func TestMergeScalarEqualCollapsesField(t *testing.T) {
	dst := mustStruct(t, map[string]any{"title": "hello"})
	src := mustStruct(t, map[string]any{"title": "hello"})

	Merge(dst, src, false)

	_, ok := dst.Fields["title"]
	require.False(t, ok, "expected an edit that matches the existing value to be dropped")
}

func TestMergeScalarDifferentValueIsLeftAlone(t *testing.T) {
	// A present scalar that differs from the edit's value is neither
	// overwritten nor dropped: Merge only adds missing fields and collapses
	// ones that already match, mirroring Struct.merge's behavior.
	dst := mustStruct(t, map[string]any{"title": "old"})
	src := mustStruct(t, map[string]any{"title": "new"})

	Merge(dst, src, false)

	require.Equal(t, "old", dst.Fields["title"].GetStringValue())
}

func TestMergeDeleteRemovesMatchingScalar(t *testing.T) {
	dst := mustStruct(t, map[string]any{"title": "hello"})
	src := mustStruct(t, map[string]any{"title": "hello"})

	Merge(dst, src, true)

	_, ok := dst.Fields["title"]
	require.False(t, ok, "expected a matching scalar to be deleted")
}

func TestMergeKindMismatchLeavesFieldUntouched(t *testing.T) {
	dst := mustStruct(t, map[string]any{"tags": "a-string"})
	src := mustStruct(t, map[string]any{"tags": []any{"a", "b"}})

	Merge(dst, src, false)

	require.Equal(t, "a-string", dst.Fields["tags"].GetStringValue())
}

func TestMergeNestedStructRecurses(t *testing.T) {
	dst := mustStruct(t, map[string]any{
		"meta": map[string]any{"width": 100.0},
	})
	src := mustStruct(t, map[string]any{
		"meta": map[string]any{"height": 200.0},
	})

	Merge(dst, src, false)

	nested := dst.Fields["meta"].GetStructValue()
	require.Equal(t, float64(100), nested.Fields["width"].GetNumberValue())
	require.Equal(t, float64(200), nested.Fields["height"].GetNumberValue())
}

func TestMergeDeleteEmptiesNestedStructAndRemovesIt(t *testing.T) {
	dst := mustStruct(t, map[string]any{
		"meta": map[string]any{"width": 100.0},
	})
	src := mustStruct(t, map[string]any{
		"meta": map[string]any{"width": 100.0},
	})

	Merge(dst, src, true)

	_, ok := dst.Fields["meta"]
	require.False(t, ok, "expected an emptied nested struct to be removed entirely")
}

func TestMergeListAppendsWithoutDedup(t *testing.T) {
	dst := mustStruct(t, map[string]any{"tags": []any{"a"}})
	src := mustStruct(t, map[string]any{"tags": []any{"a", "b"}})

	Merge(dst, src, false)

	values := dst.Fields["tags"].GetListValue().GetValues()
	require.Len(t, values, 3, "expected append without dedup")
}

func TestMergeListDeleteRemovesFirstMatchOnly(t *testing.T) {
	dst := mustStruct(t, map[string]any{"tags": []any{"a", "a", "b"}})
	src := mustStruct(t, map[string]any{"tags": []any{"a"}})

	Merge(dst, src, true)

	values := dst.Fields["tags"].GetListValue().GetValues()
	require.Len(t, values, 2, "expected exactly one match removed")

	var remainingA int
	for _, v := range values {
		if v.GetStringValue() == "a" {
			remainingA++
		}
	}
	require.Equal(t, 1, remainingA, "expected one 'a' to remain")
}

func TestMergeExtensionsDropsEmptySchemaOnDelete(t *testing.T) {
	dst := map[string]*structpb.Struct{
		"schema-a": mustStruct(t, map[string]any{"field": "value"}),
	}
	src := map[string]*structpb.Struct{
		"schema-a": mustStruct(t, map[string]any{"field": "value"}),
	}

	out := MergeExtensions(dst, src, true)

	_, ok := out["schema-a"]
	require.False(t, ok, "expected the emptied schema to be dropped entirely")
}

func TestMergeExtensionsCreatesMissingSchemaOnAdd(t *testing.T) {
	dst := map[string]*structpb.Struct{}
	src := map[string]*structpb.Struct{
		"schema-a": mustStruct(t, map[string]any{"field": "value"}),
	}

	out := MergeExtensions(dst, src, false)

	require.Equal(t, "value", out["schema-a"].Fields["field"].GetStringValue())
}

func TestMergeExtensionsEmptyIncomingTreeDropsWholeSchemaOnDelete(t *testing.T) {
	dst := map[string]*structpb.Struct{
		"schema-a": mustStruct(t, map[string]any{"unrelated": "stays-if-not-dropped"}),
	}
	src := map[string]*structpb.Struct{
		"schema-a": {Fields: map[string]*structpb.Value{}},
	}

	out := MergeExtensions(dst, src, true)

	_, ok := out["schema-a"]
	require.False(t, ok, "expected an empty incoming tree to drop the whole schema regardless of dst's contents")
}

func TestMergeExtensionsDeleteIgnoresMissingSchema(t *testing.T) {
	dst := map[string]*structpb.Struct{}
	src := map[string]*structpb.Struct{
		"schema-a": mustStruct(t, map[string]any{"field": "value"}),
	}

	out := MergeExtensions(dst, src, true)

	require.Empty(t, out, "expected deleting from a schema that was never present to be a no-op")
}

func TestModificationApplyDeletesThenEdits(t *testing.T) {
	reposted := claimpb.Claim{
		ClaimType: claimpb.TypeStream,
		StreamExtensions: map[string]*structpb.Struct{
			"schema-a": mustStruct(t, map[string]any{"old_field": "remove-me", "keep": "me"}),
		},
	}
	mod := Modification{
		ModificationType: claimpb.TypeStream,
		Deletions: map[string]*structpb.Struct{
			"schema-a": mustStruct(t, map[string]any{"old_field": "remove-me"}),
		},
		Edits: map[string]*structpb.Struct{
			"schema-a": mustStruct(t, map[string]any{"new_field": "added"}),
		},
	}

	got := mod.Apply(reposted)

	fields := got.StreamExtensions["schema-a"].Fields
	_, ok := fields["old_field"]
	require.False(t, ok, "expected old_field to be deleted")
	require.Equal(t, "me", fields["keep"].GetStringValue())
	require.Equal(t, "added", fields["new_field"].GetStringValue())

	// The original claim must be untouched (Apply must not mutate in place).
	original := reposted.StreamExtensions["schema-a"].Fields
	_, ok = original["old_field"]
	require.True(t, ok, "expected the original claim to remain unmodified")
}

func TestModificationApplyIgnoresMismatchedType(t *testing.T) {
	reposted := claimpb.Claim{ClaimType: claimpb.TypeChannel}
	mod := Modification{ModificationType: claimpb.TypeStream}

	got := mod.Apply(reposted)

	require.Equal(t, claimpb.TypeChannel, got.ClaimType)
}

func TestModificationApplyIgnoresZeroValue(t *testing.T) {
	reposted := claimpb.Claim{ClaimType: claimpb.TypeStream}
	var mod Modification

	got := mod.Apply(reposted)

	require.Equal(t, claimpb.TypeStream, got.ClaimType)
	require.Empty(t, got.StreamExtensions)
}
