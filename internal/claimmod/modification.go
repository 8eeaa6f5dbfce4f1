package claimmod

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/chainclaims/hub/internal/claimpb"
)

// Modification is the stored "deletions"/"edits" a repost carries for the
// claim it reposts, ported from ModifyingClaimReference. Only stream
// claims are modifiable, and only their extension trees: the original
// treats this as deliberate, not a missing feature.
type Modification struct {
	// ModificationType names the claim type these deletions/edits apply
	// to (claimpb.TypeStream today; any other value, or the zero value,
	// means no modification was ever recorded).
	ModificationType string

	Deletions map[string]*structpb.Struct
	Edits     map[string]*structpb.Struct
}

// Apply returns reposted with m's stored deletions applied, then its edits,
// the way a repost's stream extensions are derived from the claim it
// reposts. If m has no modification type, or it doesn't match reposted's
// claim type, or reposted is not a stream claim, reposted is returned
// unchanged (a defensive copy, never the caller's original value).
func (m Modification) Apply(reposted claimpb.Claim) claimpb.Claim {
	if m.ModificationType == "" || m.ModificationType != reposted.ClaimType {
		return reposted.Clone()
	}
	if reposted.ClaimType != claimpb.TypeStream {
		return reposted.Clone()
	}

	result := reposted.Clone()
	if result.StreamExtensions == nil {
		result.StreamExtensions = make(map[string]*structpb.Struct)
	}
	result.StreamExtensions = MergeExtensions(result.StreamExtensions, m.Deletions, true)
	result.StreamExtensions = MergeExtensions(result.StreamExtensions, m.Edits, false)
	return result
}
