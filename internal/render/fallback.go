package render

import (
	"github.com/cktools/tileinspect/internal/typetree"
	"github.com/cktools/tileinspect/internal/value"
)

// Fallback renders a value no table entry matched: the base type name
// and a literal dump of whatever could be read.
func Fallback(_ *Registry, v value.Value) string {
	name := typetree.BaseName(v.TypeString())
	if name == "" {
		name = v.TypeString()
	}
	if name == "" {
		return v.Raw()
	}
	return name + " = " + v.Raw()
}
