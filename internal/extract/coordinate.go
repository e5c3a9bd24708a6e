package extract

import (
	"github.com/cktools/tileinspect/internal/model"
	"github.com/cktools/tileinspect/internal/typetree"
	"github.com/cktools/tileinspect/internal/value"
)

// Coordinate extracts a tensor_coordinate: hidden index from the
// idx_hidden_ member, top ids from the trailing sequence of the type.
// A descriptor coordinate always sits on bottom dimension 0.
func Coordinate(v value.Value) *model.Coordinate {
	c := &model.Coordinate{
		HiddenIndex: hiddenIndex(v),
		BottomIDs:   []int{0},
		TopIDs:      []int{},
	}
	if seqs := templateSequences(v.TypeString(), "tensor_coordinate"); len(seqs) > 0 {
		c.TopIDs = seqs[len(seqs)-1]
	}
	return c
}

// AdaptorCoordinate extracts a tensor_adaptor_coordinate: the last two
// sequences of the type are the bottom then top hidden-dimension ids.
func AdaptorCoordinate(v value.Value) *model.Coordinate {
	c := &model.Coordinate{
		HiddenIndex: hiddenIndex(v),
		BottomIDs:   []int{},
		TopIDs:      []int{},
	}
	if seqs := templateSequences(v.TypeString(), "tensor_adaptor_coordinate"); len(seqs) >= 2 {
		c.BottomIDs = seqs[len(seqs)-2]
		c.TopIDs = seqs[len(seqs)-1]
	}
	return c
}

// hiddenIndex reads the hidden multi-index. The member is an array
// wrapper, sometimes behind a data_ member.
func hiddenIndex(v value.Value) []int64 {
	idx, err := v.Field("idx_hidden_")
	if err != nil {
		return nil
	}
	elems, err := idx.Elements()
	if err != nil {
		data, ferr := idx.Field("data")
		if ferr != nil {
			return nil
		}
		elems, err = data.Elements()
		if err != nil {
			return nil
		}
	}
	out := make([]int64, 0, len(elems))
	for _, e := range elems {
		n, ok := intValue(e)
		if !ok {
			return out
		}
		out = append(out, n)
	}
	return out
}

func templateSequences(typeStr, name string) [][]int {
	content, _, ok := typetree.TemplateContent(typeStr, name)
	if !ok {
		return nil
	}
	return typetree.Sequences(content)
}
