package extract

import (
	"strconv"
	"strings"

	"github.com/cktools/tileinspect/internal/typetree"
	"github.com/cktools/tileinspect/internal/value"
)

// ElementKind classifies how a container element should be rendered.
type ElementKind int

const (
	// ElemInt is a scalar readable as an integer.
	ElemInt ElementKind = iota
	// ElemNested is a compound value rendered by the dispatch table.
	ElemNested
	// ElemOpaque could not be read; its raw form is shown.
	ElemOpaque
)

// Element is one entry of an extracted container.
type Element struct {
	Kind ElementKind
	Int  int64
	Val  value.Value
}

// Container is an extracted tuple, array or buffer ready for rendering.
type Container struct {
	ElementType string
	Declared    int
	Elements    []Element
	Truncated   bool
}

// Tuple extracts a tuple value. The declared element count comes from the
// type signature so empty and unreadable tuples stay distinguishable.
func Tuple(v value.Value) Container {
	c := Container{Declared: tupleArity(v.TypeString())}
	elems, err := v.Elements()
	if err != nil {
		return c
	}
	if c.Declared < len(elems) {
		c.Declared = len(elems)
	}
	for _, e := range elems {
		c.Elements = append(c.Elements, classify(e))
	}
	return c
}

// Array extracts an array value, capped at the display limit with the
// total count preserved.
func Array(v value.Value) Container {
	elemType, n := arraySignature(v.TypeString())
	c := Container{ElementType: elemType, Declared: n}
	return fillCapped(c, v, maxArrayElems)
}

// ThreadBuffer extracts a thread_buffer value, capped at the register
// display limit.
func ThreadBuffer(v value.Value) Container {
	elemType, n := arraySignature(v.TypeString())
	c := Container{ElementType: elemType, Declared: n}
	return fillCapped(c, v, maxBufferElems)
}

// MultiIndex extracts a multi_index value as its integer components.
// Unreadable components are reported per position, never by dropping.
func MultiIndex(v value.Value) ([]int64, []bool) {
	elems, err := v.Elements()
	if err != nil {
		return nil, nil
	}
	vals := make([]int64, len(elems))
	oks := make([]bool, len(elems))
	for i, e := range elems {
		vals[i], oks[i] = intValue(e)
	}
	return vals, oks
}

func fillCapped(c Container, v value.Value, limit int) Container {
	elems, err := v.Elements()
	if err != nil {
		// Array storage sits behind a data member on the live layout.
		data, ferr := v.Field("data")
		if ferr != nil {
			return c
		}
		if elems, err = data.Elements(); err != nil {
			return c
		}
	}
	if c.Declared < len(elems) {
		c.Declared = len(elems)
	}
	for i, e := range elems {
		if i == limit {
			c.Truncated = true
			break
		}
		c.Elements = append(c.Elements, classify(e))
	}
	return c
}

func classify(e value.Value) Element {
	if n, ok := intValue(e); ok {
		return Element{Kind: ElemInt, Int: n, Val: e}
	}
	if e.Raw() == value.Unavailable {
		return Element{Kind: ElemOpaque, Val: e}
	}
	return Element{Kind: ElemNested, Val: e}
}

// tupleArity counts the declared element types of a tuple signature.
func tupleArity(typeStr string) int {
	content, _, ok := typetree.TemplateContent(typeStr, "tuple")
	if !ok {
		return 0
	}
	if strings.TrimSpace(content) == "" {
		return 0
	}
	return len(typetree.SplitArgs(content))
}

// arraySignature pulls the element type and declared size from an
// array-like signature such as array<float, 16>.
func arraySignature(typeStr string) (elemType string, n int) {
	for _, name := range []string{"array", "thread_buffer", "statically_indexed_array"} {
		content, _, ok := typetree.TemplateContent(typeStr, name)
		if !ok {
			continue
		}
		args := typetree.SplitArgs(content)
		if len(args) == 0 {
			return "", 0
		}
		elemType = strings.TrimSpace(args[0])
		if len(args) > 1 {
			if v, err := strconv.Atoi(strings.TrimSpace(args[1])); err == nil {
				n = v
			} else if cv, ok := typetree.ConstantValue(args[1]); ok {
				n = int(cv)
			}
		}
		return elemType, n
	}
	return "", 0
}
