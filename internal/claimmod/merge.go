// Package claimmod is the claim modification model (C6): the merge/delete
// algorithm a repost's stored "deletions"/"edits" trees apply to the claim
// it reposts, ported from Struct.merge and ModifyingClaimReference.apply in
// attrs.py. It operates on *structpb.Struct trees (C13), the Go analogue of
// the original's google.protobuf.Struct.
package claimmod

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/chainclaims/hub/internal/claimpb"
)

const (
	kindStruct = "struct_value"
	kindList   = "list_value"
)

func kindOf(v *structpb.Value) string {
	switch v.GetKind().(type) {
	case *structpb.Value_StructValue:
		return kindStruct
	case *structpb.Value_ListValue:
		return kindList
	case *structpb.Value_NullValue:
		return "null_value"
	case *structpb.Value_NumberValue:
		return "number_value"
	case *structpb.Value_StringValue:
		return "string_value"
	case *structpb.Value_BoolValue:
		return "bool_value"
	default:
		return ""
	}
}

// Merge folds src's fields into dst in place. With delete false, this is
// the "edit" direction: new fields are copied in, nested structs/lists are
// merged recursively, and a scalar leaf equal on both sides collapses (the
// field is considered already applied and is dropped from dst). With
// delete true, this is the "deletion" direction: matching fields, list
// entries, and scalar leaves are removed from dst instead of added, and an
// empty sub-struct left behind by a recursive delete is itself removed.
//
// A field whose kind differs between dst and src (e.g. a list in one, a
// struct in the other) is left untouched in either direction — type
// mismatches are never merged.
func Merge(dst, src *structpb.Struct, del bool) {
	if src == nil {
		return
	}
	if dst.Fields == nil {
		dst.Fields = make(map[string]*structpb.Value, len(src.Fields))
	}
	for k, v := range src.Fields {
		mine, ok := dst.Fields[k]
		if !ok {
			if !del {
				dst.Fields[k] = claimpb.CloneValue(v)
			}
			continue
		}

		myKind := kindOf(mine)
		kind := kindOf(v)
		if kind != myKind {
			continue
		}

		switch kind {
		case kindStruct:
			incoming := v.GetStructValue()
			if len(incoming.GetFields()) > 0 {
				nested := mine.GetStructValue()
				Merge(nested, incoming, del)
				if del && len(nested.GetFields()) == 0 {
					delete(dst.Fields, k)
				}
			} else if del {
				delete(dst.Fields, k)
			}
		case kindList:
			mergeList(dst, k, mine.GetListValue(), v.GetListValue(), del)
		default:
			if proto.Equal(mine, v) {
				delete(dst.Fields, k)
			}
		}
	}
}

// mergeList folds incoming's values into target (the list already stored
// under key k in dst.Fields), matching the original's first-match-wins
// scan: each incoming value is looked up by equality against target's
// current values; on delete the first match is removed, on add the
// incoming value is appended unconditionally (the original does not
// dedup on add, only on delete).
func mergeList(dst *structpb.Struct, k string, target, incoming *structpb.ListValue, del bool) {
	if len(incoming.GetValues()) == 0 {
		if del {
			delete(dst.Fields, k)
		}
		return
	}
	for _, o := range incoming.GetValues() {
		idx := -1
		for i, existing := range target.GetValues() {
			if proto.Equal(existing, o) {
				idx = i
				break
			}
		}
		if del {
			if idx >= 0 {
				target.Values = append(target.Values[:idx], target.Values[idx+1:]...)
			}
			continue
		}
		target.Values = append(target.Values, claimpb.CloneValue(o))
	}
}

// MergeExtensions folds the per-schema trees in src into dst, the Go
// analogue of StreamExtensionMap.merge: each schema's tree is merged (or
// deleted) independently, and on delete, a schema whose tree is now empty
// is dropped from dst entirely.
func MergeExtensions(dst, src map[string]*structpb.Struct, del bool) map[string]*structpb.Struct {
	if dst == nil {
		dst = make(map[string]*structpb.Struct, len(src))
	}
	for schema, ext := range src {
		if del && len(ext.GetFields()) == 0 {
			delete(dst, schema)
			continue
		}
		existing, ok := dst[schema]
		if !ok {
			if del {
				continue
			}
			existing = &structpb.Struct{Fields: make(map[string]*structpb.Value)}
			dst[schema] = existing
		}
		Merge(existing, ext, del)
		if del && len(existing.GetFields()) == 0 {
			delete(dst, schema)
		}
	}
	return dst
}
