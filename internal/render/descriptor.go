package render

import (
	"fmt"
	"strings"

	"github.com/cktools/tileinspect/internal/extract"
	"github.com/cktools/tileinspect/internal/model"
	"github.com/cktools/tileinspect/internal/value"
)

func renderDescriptor(_ *Registry, v value.Value) string {
	return DescriptorText(extract.Descriptor(v))
}

// DescriptorText renders an already extracted descriptor. The diagram
// command and the type-only paths reuse it.
func DescriptorText(d *model.Descriptor) string {
	if d.Uninitialized {
		return "tensor_descriptor{[UNINITIALIZED]}"
	}

	var b strings.Builder
	b.WriteString("tensor_descriptor{\n")
	fmt.Fprintf(&b, "  element_space_size: %d\n", d.ElementSpaceSize)
	fmt.Fprintf(&b, "  ntransform: %d\n", d.NTransform())
	if d.NDimHidden > 0 {
		fmt.Fprintf(&b, "  ndim_hidden: %d\n", d.NDimHidden)
	}
	if d.NDimTop > 0 {
		fmt.Fprintf(&b, "  ndim_top: %d\n", d.NDimTop)
	}
	if d.NDimBottom > 0 {
		fmt.Fprintf(&b, "  ndim_bottom: %d\n", d.NDimBottom)
	}
	if len(d.BottomIDs) > 0 {
		fmt.Fprintf(&b, "  bottom_dimension_ids: %s\n", formatInts(d.BottomIDs))
	}
	if len(d.TopIDs) > 0 {
		fmt.Fprintf(&b, "  top_dimension_ids: %s\n", formatInts(d.TopIDs))
	}
	writeTransforms(&b, d.Transforms)
	b.WriteString("}")
	return b.String()
}

func renderAdaptor(_ *Registry, v value.Value) string {
	return adaptorText(extract.Adaptor(v))
}

func adaptorText(d *model.Descriptor) string {
	var b strings.Builder
	b.WriteString("tensor_adaptor{\n")
	fmt.Fprintf(&b, "  ntransform: %d\n", d.NTransform())
	if len(d.BottomIDs) > 0 {
		fmt.Fprintf(&b, "  bottom_dimension_ids: %s\n", formatInts(d.BottomIDs))
	}
	if len(d.TopIDs) > 0 {
		fmt.Fprintf(&b, "  top_dimension_ids: %s\n", formatInts(d.TopIDs))
	}
	writeTransforms(&b, d.Transforms)
	b.WriteString("}")
	return b.String()
}

func writeTransforms(b *strings.Builder, transforms []model.Transform) {
	if len(transforms) == 0 {
		return
	}
	b.WriteString("\n  Transforms:\n")
	for i, t := range transforms {
		fmt.Fprintf(b, "    [%d] %s\n", i, t.Kind)
		if len(t.LowerDims) > 0 {
			fmt.Fprintf(b, "        lower: %s\n", formatInts(t.LowerDims))
		}
		if len(t.UpperDims) > 0 {
			fmt.Fprintf(b, "        upper: %s\n", formatInts(t.UpperDims))
		}
		if len(t.UpLengths) > 0 {
			fmt.Fprintf(b, "        up_lengths: %s\n", formatInt64s(t.UpLengths))
		}
		if len(t.LowLengths) > 0 {
			fmt.Fprintf(b, "        low_lengths: %s\n", formatInt64s(t.LowLengths))
		}
		if len(t.Coefficients) > 0 {
			fmt.Fprintf(b, "        coefficients: %s\n", formatInt64s(t.Coefficients))
		}
		if t.LeftPad != 0 {
			fmt.Fprintf(b, "        left_pad_length: %d\n", t.LeftPad)
		}
		if t.RightPad != 0 {
			fmt.Fprintf(b, "        right_pad_length: %d\n", t.RightPad)
		}
	}
}
