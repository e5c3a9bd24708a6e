package render

import (
	"fmt"
	"strings"

	"github.com/cktools/tileinspect/internal/extract"
	"github.com/cktools/tileinspect/internal/value"
)

func renderCoordinate(_ *Registry, v value.Value) string {
	c := extract.Coordinate(v)

	var b strings.Builder
	b.WriteString("tensor_coordinate{\n")
	if len(c.HiddenIndex) > 0 {
		fmt.Fprintf(&b, "  idx_hidden_ (data): %s\n", formatInt64s(c.HiddenIndex))
	}
	b.WriteString("  bottom_dimension_ids: [0]\n")
	if len(c.TopIDs) > 0 {
		fmt.Fprintf(&b, "  top_dimension_ids: %s\n", formatInts(c.TopIDs))
	}
	if len(c.HiddenIndex) > 0 {
		if len(c.TopIDs) > 0 {
			fmt.Fprintf(&b, "  index (top): %s\n", formatInt64s(c.TopIndex()))
		}
		fmt.Fprintf(&b, "  offset (bottom[0]): %d\n", c.HiddenIndex[0])
	}
	b.WriteString("}")
	return b.String()
}

func renderAdaptorCoordinate(_ *Registry, v value.Value) string {
	c := extract.AdaptorCoordinate(v)

	var b strings.Builder
	b.WriteString("tensor_adaptor_coordinate{\n")
	if len(c.HiddenIndex) > 0 {
		fmt.Fprintf(&b, "  idx_hidden_ (data): %s\n", formatInt64s(c.HiddenIndex))
	}
	if len(c.BottomIDs) > 0 {
		fmt.Fprintf(&b, "  bottom_dimension_ids: %s\n", formatInts(c.BottomIDs))
	}
	if len(c.TopIDs) > 0 {
		fmt.Fprintf(&b, "  top_dimension_ids: %s\n", formatInts(c.TopIDs))
	}
	if len(c.HiddenIndex) > 0 {
		if len(c.TopIDs) > 0 {
			fmt.Fprintf(&b, "  top_index: %s\n", formatInt64s(c.TopIndex()))
		}
		if len(c.BottomIDs) > 0 {
			fmt.Fprintf(&b, "  bottom_index: %s\n", formatInt64s(c.BottomIndex()))
		}
	}
	b.WriteString("}")
	return b.String()
}
