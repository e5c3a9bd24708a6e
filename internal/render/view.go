package render

import (
	"fmt"
	"strings"

	"github.com/cktools/tileinspect/internal/extract"
	"github.com/cktools/tileinspect/internal/value"
)

func renderView(_ *Registry, v value.Value) string {
	typeStr := v.TypeString()

	var b strings.Builder
	b.WriteString("tensor_view{\n")
	if dt := extract.DataType(typeStr); dt != "" {
		fmt.Fprintf(&b, "  data_type: %s\n", dt)
	}
	if strings.Contains(typeStr, "const ") {
		b.WriteString("  const: true\n")
	}

	// The nested descriptor: from the desc_ member when readable, from
	// the view's own type signature when not.
	descText := ""
	if desc, err := v.Field("desc_"); err == nil {
		descText = DescriptorText(extract.Descriptor(desc))
	} else if strings.Contains(typeStr, "tensor_descriptor<") {
		descText = DescriptorText(extract.DescriptorFromType(typeStr))
	}
	if descText != "" {
		b.WriteString("\n  descriptor: ")
		b.WriteString(nest(descText, "  "))
		b.WriteString("\n")
	}

	if bufView, err := v.Field("buf_view_"); err == nil {
		bufType := bufView.TypeString()
		if strings.Contains(bufType, "buffer_view") {
			b.WriteString("\n  buffer_view: {\n")
			if space := addressSpace(bufType); space != "" {
				fmt.Fprintf(&b, "    address_space: %s\n", space)
			}
			b.WriteString("  }\n")
		}
	}

	b.WriteString("}")
	return b.String()
}

// addressSpace decodes the address_space_enum template argument carried
// in a buffer_view type.
func addressSpace(bufType string) string {
	switch {
	case strings.Contains(bufType, "address_space_enum)1"):
		return "global"
	case strings.Contains(bufType, "address_space_enum)3"):
		return "lds"
	}
	return ""
}
