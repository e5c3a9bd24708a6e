package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cktools/tileinspect/internal/model"
)

func chainDescriptor() *model.Descriptor {
	return &model.Descriptor{
		Transforms: []model.Transform{
			{Kind: model.KindEmbed, LowerDims: []int{0}, UpperDims: []int{1, 2}, UpLengths: []int64{4, 8}},
			{Kind: model.KindPassThrough, LowerDims: []int{0}, UpperDims: []int{3}},
		},
		BottomIDs: []int{0},
		TopIDs:    []int{1, 2, 3},
	}
}

func TestBuild_NodesAndEdges(t *testing.T) {
	g := Build(chainDescriptor(), "flow")

	// Distinct dimension ids: 0, 1, 2, 3.
	require.Len(t, g.Nodes, 4)
	labels := map[int]string{}
	for _, n := range g.Nodes {
		labels[n.Dim] = n.Label
	}
	assert.Equal(t, "Bottom[0]", labels[0])
	assert.Equal(t, "Top[1]", labels[1])
	assert.Equal(t, "Top[3]", labels[3])

	// One edge per lower x upper pair: embed 1x2, pass_through 1x1.
	require.Len(t, g.Edges, 3)
	assert.Equal(t, Edge{From: 0, To: 1, Label: "embed", Transform: 0}, g.Edges[0])
	assert.Equal(t, Edge{From: 0, To: 2, Label: "embed", Transform: 0}, g.Edges[1])
	assert.Equal(t, Edge{From: 0, To: 3, Label: "pass_through", Transform: 1}, g.Edges[2])
}

func TestBuild_ReplicateHasNoInboundEdges(t *testing.T) {
	d := &model.Descriptor{
		Transforms: []model.Transform{
			{Kind: model.KindReplicate, LowerDims: []int{}, UpperDims: []int{1}, UpLengths: []int64{4}},
		},
		BottomIDs: []int{0},
		TopIDs:    []int{1},
	}
	g := Build(d, "replicate")

	assert.Len(t, g.Nodes, 2)
	assert.Empty(t, g.Edges)
}

func TestMermaid_Shape(t *testing.T) {
	out := Build(chainDescriptor(), "Tensor Transform Flow").Mermaid()

	assert.True(t, strings.HasPrefix(out, "```mermaid\ngraph TD\n    %% Tensor Transform Flow"))
	assert.True(t, strings.HasSuffix(out, "```"))

	assert.Contains(t, out, `B0["Bottom[0]"]`)
	assert.Contains(t, out, "style B0 fill:#e1f5fe")
	// Embed gets the diamond shape, pass_through the rectangle.
	assert.Contains(t, out, `T0{"[0] embed<br/>[0] → [1,2]"}`)
	assert.Contains(t, out, `T1["[1] pass_through<br/>[0] → [3]"]`)
	assert.Contains(t, out, "style T0 fill:#fff3e0")
	assert.Contains(t, out, "B0 --> T0")
	assert.Contains(t, out, "B0 --> T1")
	assert.Contains(t, out, `D0_0["Dim[1]"]`)
	assert.Contains(t, out, "T0 --> D0_0")
	assert.Contains(t, out, `X3["Top[3]"]`)
	assert.Contains(t, out, "style X3 fill:#c8e6c9")
	assert.Contains(t, out, "D1_0 --> X3")
}

func TestMermaid_XorDoubleBracket(t *testing.T) {
	d := &model.Descriptor{
		Transforms: []model.Transform{
			{Kind: model.KindXor, LowerDims: []int{0, 1}, UpperDims: []int{2, 3}},
		},
		BottomIDs: []int{0, 1},
		TopIDs:    []int{2, 3},
	}
	out := Build(d, "xor").Mermaid()

	assert.Contains(t, out, `T0[["[0] XOR<br/>[0,1] → [2,3]"]]`)
	assert.Contains(t, out, "style T0 fill:#ffebee")
}
