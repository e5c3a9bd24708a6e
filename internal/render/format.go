package render

import (
	"fmt"
	"strings"
)

// nest re-indents a rendered block for embedding under a labelled field:
// every line after the first gains the extra prefix.
func nest(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}

func formatInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatInt64s(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatIntLists(lists [][]int) string {
	parts := make([]string, len(lists))
	for i, l := range lists {
		parts[i] = formatInts(l)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
