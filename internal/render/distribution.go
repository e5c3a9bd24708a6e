package render

import (
	"fmt"
	"strings"

	"github.com/cktools/tileinspect/internal/extract"
	"github.com/cktools/tileinspect/internal/model"
	"github.com/cktools/tileinspect/internal/typetree"
	"github.com/cktools/tileinspect/internal/value"
)

func renderTileDistribution(_ *Registry, v value.Value) string {
	typeStr := v.TypeString()

	var b strings.Builder
	b.WriteString("tile_distribution{\n")
	if strings.Contains(typeStr, "tile_distribution_encoding<") {
		fmt.Fprintf(&b, "  encoding: %s\n", encodingBlock(extract.Encoding(typeStr)))
	}

	if adaptor, err := v.Field("ps_ys_to_xs_"); err == nil {
		b.WriteString("\n  ps_ys_to_xs_: ")
		b.WriteString(nest(adaptorText(extract.Adaptor(adaptor)), "  "))
		b.WriteString("\n")
	} else if strings.Contains(typeStr, "tensor_adaptor<") {
		b.WriteString("\n  ps_ys_to_xs_: ")
		b.WriteString(nest(adaptorText(extract.AdaptorFromType(typeStr)), "  "))
		b.WriteString("\n")
	}

	if desc, err := v.Field("ys_to_d_"); err == nil {
		b.WriteString("\n  ys_to_d_: ")
		b.WriteString(nest(DescriptorText(extract.Descriptor(desc)), "  "))
		b.WriteString("\n")
	} else if strings.Contains(typeStr, "tensor_descriptor<") {
		b.WriteString("\n  ys_to_d_: ")
		b.WriteString(nest(DescriptorText(extract.DescriptorFromType(typeStr)), "  "))
		b.WriteString("\n")
	}

	b.WriteString("}")
	return b.String()
}

func renderEncoding(_ *Registry, v value.Value) string {
	typeStr := v.TypeString()
	if !strings.Contains(typeStr, "tile_distribution_encoding<") {
		return "tile_distribution_encoding{}"
	}
	return "tile_distribution_encoding" + encodingBlock(extract.Encoding(typeStr))
}

// encodingBlock renders the encoding's sequences and the resolved P and Y
// mappings, indented for embedding under a two-space field label.
func encodingBlock(e *model.Encoding) string {
	var b strings.Builder
	b.WriteString("{\n")
	if len(e.RsLengths) > 0 {
		fmt.Fprintf(&b, "    RsLengths: %s\n", formatInts(e.RsLengths))
	}
	if len(e.HsLengthss) > 0 {
		fmt.Fprintf(&b, "    HsLengthss: %s\n", formatIntLists(e.HsLengthss))
	}
	if len(e.PsMajor) > 0 && len(e.PsMinor) > 0 {
		fmt.Fprintf(&b, "    Ps2RHssMajor: %s\n", formatIntLists(e.PsMajor))
		fmt.Fprintf(&b, "    Ps2RHssMinor: %s\n", formatIntLists(e.PsMinor))
	}
	if len(e.YsMajor) > 0 && len(e.YsMinor) > 0 {
		fmt.Fprintf(&b, "    Ys2RHsMajor: %s\n", formatInts(e.YsMajor))
		fmt.Fprintf(&b, "    Ys2RHsMinor: %s\n", formatInts(e.YsMinor))
	}

	if len(e.PsMajor) > 0 && len(e.PsMinor) > 0 {
		b.WriteString("    Ps mappings (with lengths):\n")
		for p := 0; p < len(e.PsMajor) && p < len(e.PsMinor); p++ {
			fmt.Fprintf(&b, "      P[%d]:\n", p)
			majors, minors := e.PsMajor[p], e.PsMinor[p]
			for i := 0; i < len(majors) && i < len(minors); i++ {
				fmt.Fprintf(&b, "        -> %s\n", rhTarget(e, majors[i], minors[i]))
			}
		}
	}
	if len(e.YsMajor) > 0 && len(e.YsMinor) > 0 {
		b.WriteString("    Ys mappings (with lengths):\n")
		for y := 0; y < len(e.YsMajor) && y < len(e.YsMinor); y++ {
			fmt.Fprintf(&b, "      Y[%d] -> %s\n", y, rhTarget(e, e.YsMajor[y], e.YsMinor[y]))
		}
	}
	b.WriteString("  }")
	return b.String()
}

// rhTarget names one R or H slot, with its resolved length when known.
func rhTarget(e *model.Encoding, major, minor int) string {
	var target string
	if major == 0 {
		target = fmt.Sprintf("R[%d]", minor)
	} else {
		target = fmt.Sprintf("H%d[%d]", major-1, minor)
	}
	if n, ok := e.RHLength(major, minor); ok {
		target += fmt.Sprintf(" (length=%d)", n)
	}
	return target
}

func renderTileWindow(r *Registry, v value.Value) string {
	typeStr := v.TypeString()

	windowKind := "tile_window"
	switch {
	case strings.Contains(typeStr, "tile_window_with_static_distribution"):
		windowKind = "tile_window_with_static_distribution"
	case strings.Contains(typeStr, "tile_window_with_static_lengths"):
		windowKind = "tile_window_with_static_lengths"
	}

	var b strings.Builder
	b.WriteString(windowKind + "{\n")
	if dt := extract.DataType(typeStr); dt != "" {
		fmt.Fprintf(&b, "  data_type: %s\n", dt)
	}
	if dims := typetree.Constants(typeStr); len(dims) >= 2 {
		fmt.Fprintf(&b, "  window_dims: [%d x %d]\n", dims[0], dims[1])
	}

	if strings.Contains(windowKind, "static_distribution") {
		if dstr, err := v.Field("tile_dstr_"); err == nil {
			b.WriteString("\n  tile_dstr_: ")
			b.WriteString(nest(renderTileDistribution(r, dstr), "  "))
			b.WriteString("\n")
		}
	}
	if bottom, err := v.Field("bottom_tensor_view_"); err == nil {
		b.WriteString("\n  bottom_tensor_view_: ")
		b.WriteString(nest(renderView(r, bottom), "  "))
		b.WriteString("\n")
	}
	if _, err := v.Field("pre_computed_coords_"); err == nil {
		b.WriteString("\n  pre_computed_coords_: present\n")
	}

	b.WriteString("}")
	return b.String()
}

func renderStaticDistributedTensor(r *Registry, v value.Value) string {
	typeStr := v.TypeString()

	var b strings.Builder
	b.WriteString("static_distributed_tensor{\n")
	if dt := extract.DataType(typeStr); dt != "" {
		fmt.Fprintf(&b, "  data_type: %s\n", dt)
	}

	// Runtime path: a readable thread buffer is the interesting content.
	if buf, err := v.Field("thread_buf_"); err == nil {
		if c := extract.ThreadBuffer(buf); len(c.Elements) > 0 {
			b.WriteString("\n  thread_buffer: ")
			b.WriteString(nest(renderThreadBuffer(r, buf), "  "))
			b.WriteString("\n}")
			return b.String()
		}
		if size := bufferSize(buf.TypeString()); size > 0 {
			fmt.Fprintf(&b, "  thread_buffer_size: %d\n", size)
		}
	}

	// Type-only path: the distribution encoding still lives in the
	// signature even when no value memory is readable.
	if strings.Contains(typeStr, "tile_distribution_encoding<") {
		fmt.Fprintf(&b, "\n  encoding: %s\n", encodingBlock(extract.Encoding(typeStr)))
	}

	b.WriteString("}")
	return b.String()
}

func bufferSize(bufType string) int {
	content, _, ok := typetree.TemplateContent(bufType, "thread_buffer")
	if !ok {
		return 0
	}
	args := typetree.SplitArgs(content)
	if len(args) < 2 {
		return 0
	}
	if n, ok := typetree.ConstantValue(args[1]); ok {
		return int(n)
	}
	vals := typetree.ParseIntList(args[1])
	if len(vals) == 1 {
		return vals[0]
	}
	return 0
}
