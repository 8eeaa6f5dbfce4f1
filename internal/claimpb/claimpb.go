// Package claimpb stands in for the generated protobuf claim message the
// full schema (outside this module's slice, per SPEC_FULL.md §4) would
// provide. It defines only the subset of fields package claimmod actually
// reads or modifies (package claimmeta does not use it): the claim's type tag and, for
// stream claims, the per-schema extension trees that C6's merge/delete
// algorithm operates on.
package claimpb

import "google.golang.org/protobuf/types/known/structpb"

// Claim types, mirroring the oneof member names the original's
// ModifyingClaimReference.modification_type selects between.
const (
	TypeStream     = "stream"
	TypeChannel    = "channel"
	TypeRepost     = "repost"
	TypeCollection = "collection"
)

// Claim is the minimal claim message shape package claimmod needs: a type
// tag plus, for stream claims, a set of named extension trees keyed by
// schema name (the Go analogue of StreamExtensionMap).
type Claim struct {
	ClaimType string

	// StreamExtensions holds one *structpb.Struct per extension schema,
	// populated only when ClaimType == TypeStream.
	StreamExtensions map[string]*structpb.Struct
}

// Clone deep-copies c, the way claimmod's Modification.Apply must operate on a private
// copy of the reposted claim rather than mutating the caller's value.
func (c Claim) Clone() Claim {
	out := Claim{ClaimType: c.ClaimType}
	if c.StreamExtensions != nil {
		out.StreamExtensions = make(map[string]*structpb.Struct, len(c.StreamExtensions))
		for schema, s := range c.StreamExtensions {
			out.StreamExtensions[schema] = cloneStruct(s)
		}
	}
	return out
}

func cloneStruct(s *structpb.Struct) *structpb.Struct { return CloneStruct(s) }

// CloneStruct deep-copies a *structpb.Struct, exported for package claimmod's
// merge/delete algorithm, which must never mutate a caller's tree in place
// when building the modified copy C6 returns from Apply.
func CloneStruct(s *structpb.Struct) *structpb.Struct {
	if s == nil {
		return nil
	}
	clone := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(s.Fields))}
	for k, v := range s.Fields {
		clone.Fields[k] = CloneValue(v)
	}
	return clone
}

// CloneValue deep-copies a *structpb.Value.
func CloneValue(v *structpb.Value) *structpb.Value {
	if v == nil {
		return nil
	}
	switch kind := v.Kind.(type) {
	case *structpb.Value_StructValue:
		return structpb.NewStructValue(CloneStruct(kind.StructValue))
	case *structpb.Value_ListValue:
		values := make([]*structpb.Value, len(kind.ListValue.GetValues()))
		for i, item := range kind.ListValue.GetValues() {
			values[i] = CloneValue(item)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values})
	default:
		clone := &structpb.Value{}
		*clone = *v
		return clone
	}
}
