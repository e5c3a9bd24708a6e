package diagram

import (
	"fmt"
	"strings"

	"github.com/cktools/tileinspect/internal/model"
)

// Role classifies a dimension node by where it sits in the flow.
type Role int

const (
	RoleBottom Role = iota
	RoleTop
	RoleDim
)

// Node is one hidden dimension in the flow graph.
type Node struct {
	Dim   int
	Role  Role
	Label string
}

// Edge connects a lower dimension to an upper dimension through one
// transform; Label is the transform kind.
type Edge struct {
	From      int
	To        int
	Label     string
	Transform int
}

// Graph is the dimension-flow structure of one descriptor or adaptor
// chain: one node per distinct dimension id, one edge per (transform,
// lower, upper) combination. It is rebuilt per call and never cached.
type Graph struct {
	Title string
	Nodes []Node
	Edges []Edge

	steps  []model.Transform
	bottom []int
	top    []int
}

// Build constructs the flow graph for a transform chain. Replicate steps
// contribute their upper nodes with no inbound edge.
func Build(d *model.Descriptor, title string) *Graph {
	g := &Graph{
		Title:  title,
		steps:  d.Transforms,
		bottom: d.BottomIDs,
		top:    d.TopIDs,
	}

	seen := map[int]bool{}
	add := func(dim int, role Role, label string) {
		if seen[dim] {
			return
		}
		seen[dim] = true
		g.Nodes = append(g.Nodes, Node{Dim: dim, Role: role, Label: label})
	}

	for _, dim := range d.BottomIDs {
		add(dim, RoleBottom, fmt.Sprintf("Bottom[%d]", dim))
	}
	for _, dim := range d.TopIDs {
		add(dim, RoleTop, fmt.Sprintf("Top[%d]", dim))
	}
	for i, t := range d.Transforms {
		for _, dim := range t.LowerDims {
			add(dim, RoleDim, fmt.Sprintf("Dim[%d]", dim))
		}
		for _, dim := range t.UpperDims {
			add(dim, RoleDim, fmt.Sprintf("Dim[%d]", dim))
		}
		for _, lo := range t.LowerDims {
			for _, up := range t.UpperDims {
				g.Edges = append(g.Edges, Edge{From: lo, To: up, Label: string(t.Kind), Transform: i})
			}
		}
	}
	return g
}

// Mermaid serializes the graph as a fenced flowchart: styled bottom
// nodes, one shaped node per transform step, intermediate dimension
// nodes, styled top nodes.
func (g *Graph) Mermaid() string {
	lines := []string{"```mermaid", "graph TD"}
	lines = append(lines, "    %% "+g.Title, "")

	// current maps a live dimension id to the mermaid node carrying it.
	current := map[int]string{}

	for _, dim := range g.bottom {
		current[dim] = fmt.Sprintf("B%d", dim)
		lines = append(lines,
			fmt.Sprintf(`    B%d["Bottom[%d]"]`, dim, dim),
			fmt.Sprintf("    style B%d fill:#e1f5fe", dim))
	}
	if len(g.bottom) > 0 {
		lines = append(lines, "")
	}

	for i, t := range g.steps {
		node := fmt.Sprintf("T%d", i)
		lines = append(lines,
			"    "+node+stepLabel(t, i),
			fmt.Sprintf("    style %s fill:%s", node, stepColor(t.Kind)))

		for _, dim := range t.LowerDims {
			if from, ok := current[dim]; ok {
				lines = append(lines, fmt.Sprintf("    %s --> %s", from, node))
			}
		}

		for j, dim := range t.UpperDims {
			out := fmt.Sprintf("D%d_%d", i, j)
			lines = append(lines,
				fmt.Sprintf(`    %s["Dim[%d]"]`, out, dim),
				fmt.Sprintf("    %s --> %s", node, out))
			current[dim] = out
		}
		lines = append(lines, "")
	}

	if len(g.top) > 0 {
		lines = append(lines, "    %% Top Dimensions")
		for _, dim := range g.top {
			topNode := fmt.Sprintf("X%d", dim)
			lines = append(lines,
				fmt.Sprintf(`    %s["Top[%d]"]`, topNode, dim),
				fmt.Sprintf("    style %s fill:#c8e6c9", topNode))
			if from, ok := current[dim]; ok {
				lines = append(lines, fmt.Sprintf("    %s --> %s", from, topNode))
			}
		}
	}

	lines = append(lines, "```")
	return strings.Join(lines, "\n")
}

// stepLabel picks the mermaid node shape by kind: diamond for the
// split/join transforms, double bracket for xor, rectangle otherwise.
func stepLabel(t model.Transform, index int) string {
	lower := joinInts(t.LowerDims)
	upper := joinInts(t.UpperDims)
	switch t.Kind {
	case model.KindEmbed, model.KindUnmerge, model.KindMerge, model.KindMergeV2:
		return fmt.Sprintf(`{"[%d] %s<br/>[%s] → [%s]"}`, index, t.Kind, lower, upper)
	case model.KindXor:
		return fmt.Sprintf(`[["[%d] XOR<br/>[%s] → [%s]"]]`, index, lower, upper)
	default:
		return fmt.Sprintf(`["[%d] %s<br/>[%s] → [%s]"]`, index, t.Kind, lower, upper)
	}
}

func stepColor(kind model.TransformKind) string {
	colors := map[model.TransformKind]string{
		model.KindEmbed:       "#fff3e0",
		model.KindUnmerge:     "#fce4ec",
		model.KindMerge:       "#e8f5e9",
		model.KindMergeV2:     "#e8f5e9",
		model.KindPassThrough: "#f3e5f5",
		model.KindReplicate:   "#e3f2fd",
		model.KindXor:         "#ffebee",
		model.KindPad:         "#fff9c4",
		model.KindRightPad:    "#fff9c4",
		model.KindLeftPad:     "#fff9c4",
		model.KindSlice:       "#efebe9",
		model.KindFreeze:      "#eceff1",
	}
	if c, ok := colors[kind]; ok {
		return c
	}
	return "#f5f5f5"
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}
