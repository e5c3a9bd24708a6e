package model

import "fmt"

// TransformKind identifies one dimension-remapping step variant.
type TransformKind string

const (
	KindPassThrough TransformKind = "pass_through"
	KindEmbed       TransformKind = "embed"
	KindUnmerge     TransformKind = "unmerge"
	KindMerge       TransformKind = "merge"
	KindMergeV2     TransformKind = "merge_v2"
	KindReplicate   TransformKind = "replicate"
	KindXor         TransformKind = "xor"
	KindPad         TransformKind = "pad"
	KindLeftPad     TransformKind = "left_pad"
	KindRightPad    TransformKind = "right_pad"
	KindSlice       TransformKind = "slice"
	KindFreeze      TransformKind = "freeze"

	// KindUnknown is the documented fallback arm for unrecognized
	// transform variants; renderers dump its raw parameters instead of
	// failing the enclosing descriptor.
	KindUnknown TransformKind = "unknown"
)

// Transform is one dimension-remapping step within a descriptor's chain.
//
// LowerDims and UpperDims are hidden dimension ids. Which parameter lists
// are populated depends on Kind: embed carries UpLengths and Coefficients,
// unmerge carries UpLengths, merge variants carry LowLengths, the pad
// family carries pad lengths. An unrecognized kind keeps whatever raw
// parameters extraction recovered.
type Transform struct {
	Kind      TransformKind `json:"kind"`
	LowerDims []int         `json:"lower_dims"`
	UpperDims []int         `json:"upper_dims"`

	UpLengths    []int64 `json:"up_lengths,omitempty"`
	LowLengths   []int64 `json:"low_lengths,omitempty"`
	Coefficients []int64 `json:"coefficients,omitempty"`
	LeftPad      int64   `json:"left_pad,omitempty"`
	RightPad     int64   `json:"right_pad,omitempty"`
}

// Placeholder returns the transform substituted when extraction of one
// chain entry fails: kind unknown, all lists empty. One bad entry never
// aborts the descriptor it belongs to.
func Placeholder() Transform {
	return Transform{Kind: KindUnknown, LowerDims: []int{}, UpperDims: []int{}}
}

// Validate checks the kind/arity invariants:
//   - replicate has no lower dims
//   - freeze has no upper dims
//   - pass_through and the pad family map exactly one id to one id
func (t Transform) Validate() error {
	switch t.Kind {
	case KindReplicate:
		if len(t.LowerDims) != 0 {
			return fmt.Errorf("replicate: expected no lower dims, got %v", t.LowerDims)
		}
	case KindFreeze:
		if len(t.UpperDims) != 0 {
			return fmt.Errorf("freeze: expected no upper dims, got %v", t.UpperDims)
		}
	case KindPassThrough, KindPad, KindLeftPad, KindRightPad:
		if len(t.LowerDims) != 1 || len(t.UpperDims) != 1 {
			return fmt.Errorf("%s: expected one id on each side, got lower=%v upper=%v",
				t.Kind, t.LowerDims, t.UpperDims)
		}
	}
	return nil
}

// KindFromTypeName maps a transform's own type name onto its kind.
// Matching is ordered because some names contain others (merge_v2_magic_division
// contains merge; right_pad and left_pad contain pad).
func KindFromTypeName(name string) TransformKind {
	for _, p := range kindPatterns {
		if containsPattern(name, p.pattern) {
			return p.kind
		}
	}
	return KindUnknown
}

// kindPatterns is ordered most specific first; a later entry whose pattern
// is contained in an earlier one would otherwise be shadowed.
var kindPatterns = []struct {
	pattern string
	kind    TransformKind
}{
	{"embed", KindEmbed},
	{"unmerge", KindUnmerge},
	{"merge_v2_magic_division", KindMergeV2},
	{"merge", KindMerge},
	{"replicate", KindReplicate},
	{"xor_t", KindXor},
	{"pass_through", KindPassThrough},
	{"right_pad", KindRightPad},
	{"left_pad", KindLeftPad},
	{"pad", KindPad},
	{"slice", KindSlice},
	{"freeze", KindFreeze},
}

// containsPattern matches pattern at an identifier boundary within name.
// Type names carry suffixes (embed_transform, pass_through_transform), so
// only the left edge is guarded: "merge" must not match inside
// "unmerge_transform", but "embed" matches "ck_tile::embed_transform<...>".
func containsPattern(name, pattern string) bool {
	for i := 0; i+len(pattern) <= len(name); i++ {
		if name[i:i+len(pattern)] != pattern {
			continue
		}
		if i > 0 && isIdentChar(name[i-1]) {
			continue
		}
		return true
	}
	return false
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
