package extract

import (
	"strings"

	"github.com/cktools/tileinspect/internal/typetree"
	"github.com/cktools/tileinspect/internal/value"
)

// MaxSaneValue bounds plausible dimension/size integers. Live values read
// from uninitialized stack memory routinely report huge garbage; anything
// beyond this limit is treated as unavailable.
const MaxSaneValue = 100_000_000

// maxArrayElems caps how many array elements are read when the exact
// count is unknown or large.
const maxArrayElems = 20

// maxBufferElems caps how many thread_buffer elements are shown.
const maxBufferElems = 10

// IntField reads an integer member, tolerating the ways CK-Tile encodes
// compile-time integers:
//   - a constant<N> typed field (the value is in the type, not memory)
//   - a plain integer field
//   - a wrapper with a "value" member
//
// ok is false when the field is unavailable or fails the sanity check.
func IntField(v value.Value, name string) (int64, bool) {
	f, err := v.Field(name)
	if err != nil {
		return 0, false
	}
	return intValue(f)
}

func intValue(f value.Value) (int64, bool) {
	if n, ok := typetree.ConstantValue(f.TypeString()); ok {
		return n, sane(n)
	}
	if n, err := f.Int(); err == nil {
		return n, sane(n)
	}
	if inner, err := f.Field("value"); err == nil {
		if n, err := inner.Int(); err == nil {
			return n, sane(n)
		}
	}
	return 0, false
}

func sane(n int64) bool {
	if n < 0 {
		n = -n
	}
	return n <= MaxSaneValue
}

// IsUninitialized reports whether probed scalar fields collectively look
// like an unconstructed object: every probe failed. (Individual probes
// already reject values beyond the sanity limit.)
func IsUninitialized(oks ...bool) bool {
	for _, ok := range oks {
		if ok {
			return false
		}
	}
	return true
}

// DataType derives a display data type from a type signature, or "" when
// none is recognizable.
func DataType(typeStr string) string {
	switch {
	case strings.Contains(typeStr, "_Float16"):
		return "float16"
	case strings.Contains(typeStr, "float"):
		return "float"
	case strings.Contains(typeStr, "double"):
		return "double"
	case strings.Contains(typeStr, "int"):
		return "int"
	}
	return ""
}

// tupleInts reads an integer tuple member (up_lengths_, coefficients_,
// low_lengths_). Elements may be runtime integers or constant<N> typed.
// A missing member yields nil; a present member with unreadable elements
// yields whatever could be read.
func tupleInts(v value.Value, name string) []int64 {
	f, err := v.Field(name)
	if err != nil {
		return nil
	}
	elems, err := f.Elements()
	if err != nil {
		return nil
	}
	var out []int64
	for _, e := range elems {
		if n, ok := intValue(e); ok {
			out = append(out, n)
		}
	}
	return out
}
