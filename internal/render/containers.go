package render

import (
	"fmt"
	"strings"

	"github.com/cktools/tileinspect/internal/extract"
	"github.com/cktools/tileinspect/internal/typetree"
	"github.com/cktools/tileinspect/internal/value"
)

func renderTuple(r *Registry, v value.Value) string {
	c := extract.Tuple(v)

	n := len(c.Elements)
	if n == 0 {
		if c.Declared > 0 {
			return fmt.Sprintf("tuple<%d elements> {%s}", c.Declared, value.Unavailable)
		}
		return "tuple<0 elements> {}"
	}

	plural := "elements"
	if n == 1 {
		plural = "element"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "tuple<%d %s> {\n", n, plural)
	for i, e := range c.Elements {
		fmt.Fprintf(&b, "  [%d]: ", i)
		b.WriteString(nest(elementText(r, e), "    "))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func elementText(r *Registry, e extract.Element) string {
	switch e.Kind {
	case extract.ElemInt:
		return fmt.Sprintf("%d", e.Int)
	case extract.ElemOpaque:
		return value.Unavailable
	default:
		return r.Render(e.Val)
	}
}

func renderArray(r *Registry, v value.Value) string {
	c := extract.Array(v)
	name := fmt.Sprintf("array<%s, %d>", elementTypeLabel(c.ElementType), c.Declared)
	return name + " = " + flatElements(r, c)
}

func renderMultiIndex(_ *Registry, v value.Value) string {
	vals, oks := extract.MultiIndex(v)
	n := multiIndexSize(v.TypeString(), len(vals))
	parts := make([]string, len(vals))
	for i := range vals {
		if oks[i] {
			parts[i] = fmt.Sprintf("%d", vals[i])
		} else {
			parts[i] = value.Unavailable
		}
	}
	return fmt.Sprintf("multi_index<%d> = [%s]", n, strings.Join(parts, ", "))
}

func renderThreadBuffer(r *Registry, v value.Value) string {
	c := extract.ThreadBuffer(v)

	var b strings.Builder
	fmt.Fprintf(&b, "thread_buffer<%s, %d> {\n", elementTypeLabel(c.ElementType), c.Declared)
	fmt.Fprintf(&b, "  size: %d\n", c.Declared)
	if len(c.Elements) > 0 {
		fmt.Fprintf(&b, "  data (first %d): %s\n", len(c.Elements), flatElements(r, c))
	} else {
		b.WriteString("  data: <not accessible>\n")
	}
	b.WriteString("}")
	return b.String()
}

// flatElements renders container elements inline, with the original's
// truncation marker when the declared count exceeds what is shown.
func flatElements(r *Registry, c extract.Container) string {
	parts := make([]string, 0, len(c.Elements))
	for _, e := range c.Elements {
		parts = append(parts, elementText(r, e))
	}
	if c.Truncated {
		return fmt.Sprintf("[%s, ... (%d total)]", strings.Join(parts, ", "), c.Declared)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// elementTypeLabel simplifies a C++ element type for display.
func elementTypeLabel(elemType string) string {
	if dt := extract.DataType(elemType); dt != "" {
		return dt
	}
	if elemType == "" {
		return "unknown"
	}
	return elemType
}

func multiIndexSize(typeStr string, read int) int {
	if content, _, ok := typetree.TemplateContent(typeStr, "multi_index"); ok {
		if vals := typetree.ParseIntList(content); len(vals) > 0 {
			return vals[0]
		}
	}
	return read
}
