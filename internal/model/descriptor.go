package model

import "fmt"

// Descriptor is the structured representation of how a set of bottom
// storage dimensions maps, through an ordered transform chain, to a set
// of top logical dimensions.
//
// Transform order is the storage order of the source value and is
// authoritative: it is the topological dependency order of dimension ids.
// Every id referenced by a transform is a bottom id, a top id, or an id
// produced by exactly one earlier transform; there are no forward
// references.
type Descriptor struct {
	Transforms []Transform `json:"transforms"`
	BottomIDs  []int       `json:"bottom_dimension_ids"`
	TopIDs     []int       `json:"top_dimension_ids"`

	NDimHidden int `json:"ndim_hidden,omitempty"`
	NDimTop    int `json:"ndim_top,omitempty"`
	NDimBottom int `json:"ndim_bottom,omitempty"`

	// ElementSpaceSize is the descriptor's element space, 0 when unknown.
	// Adaptors (which have no element space) leave it 0.
	ElementSpaceSize int64 `json:"element_space_size,omitempty"`

	// Uninitialized marks a value whose probed scalar fields were all
	// unavailable or beyond the sanity limit; renderers show a distinct
	// uninitialized form instead of garbage.
	Uninitialized bool `json:"uninitialized,omitempty"`
}

// NTransform returns the length of the transform chain.
func (d *Descriptor) NTransform() int {
	return len(d.Transforms)
}

// Validate checks the per-transform arity invariants and the
// no-forward-reference ordering invariant over dimension ids.
func (d *Descriptor) Validate() error {
	produced := make(map[int]bool, len(d.BottomIDs)+len(d.TopIDs))
	for _, id := range d.BottomIDs {
		produced[id] = true
	}
	for _, id := range d.TopIDs {
		produced[id] = true
	}
	for i, t := range d.Transforms {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transform[%d]: %w", i, err)
		}
		if t.Kind == KindUnknown {
			// Placeholder entries carry no reliable ids.
			continue
		}
		for _, id := range t.LowerDims {
			if !produced[id] {
				return fmt.Errorf("transform[%d] %s: lower dim %d not produced by any earlier transform", i, t.Kind, id)
			}
		}
		for _, id := range t.UpperDims {
			produced[id] = true
		}
	}
	return nil
}

// Coordinate is an extracted tensor (adaptor) coordinate: the hidden
// index buffer plus the id lists that project it onto top and bottom
// index views.
type Coordinate struct {
	HiddenIndex []int64 `json:"idx_hidden"`
	BottomIDs   []int   `json:"bottom_dimension_ids"`
	TopIDs      []int   `json:"top_dimension_ids"`
}

// TopIndex projects the hidden index onto the top dimension ids. Ids
// beyond the hidden buffer are skipped (partially available coordinate).
func (c *Coordinate) TopIndex() []int64 {
	return project(c.HiddenIndex, c.TopIDs)
}

// BottomIndex projects the hidden index onto the bottom dimension ids.
func (c *Coordinate) BottomIndex() []int64 {
	return project(c.HiddenIndex, c.BottomIDs)
}

func project(hidden []int64, ids []int) []int64 {
	out := []int64{}
	for _, id := range ids {
		if id >= 0 && id < len(hidden) {
			out = append(out, hidden[id])
		}
	}
	return out
}

// Encoding is the static tile_distribution_encoding parameter block: how
// replication (R), hierarchical (H) lengths and the P/Y index mappings
// relate. All of it lives in the type signature, none in runtime state.
type Encoding struct {
	RsLengths  []int   `json:"rs_lengths"`
	HsLengthss [][]int `json:"hs_lengthss"`
	PsMajor    [][]int `json:"ps_to_rhss_major"`
	PsMinor    [][]int `json:"ps_to_rhss_minor"`
	YsMajor    []int   `json:"ys_to_rhs_major"`
	YsMinor    []int   `json:"ys_to_rhs_minor"`
}

// RHLength resolves the length addressed by an (rh_major, rh_minor) pair:
// major 0 addresses the R lengths, major n>0 addresses H set n-1.
// ok is false when the pair is out of range.
func (e *Encoding) RHLength(major, minor int) (int, bool) {
	if major == 0 {
		if minor >= 0 && minor < len(e.RsLengths) {
			return e.RsLengths[minor], true
		}
		return 0, false
	}
	h := major - 1
	if h >= 0 && h < len(e.HsLengthss) && minor >= 0 && minor < len(e.HsLengthss[h]) {
		return e.HsLengthss[h][minor], true
	}
	return 0, false
}
