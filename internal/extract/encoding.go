package extract

import (
	"github.com/cktools/tileinspect/internal/model"
	"github.com/cktools/tileinspect/internal/typetree"
)

// Encoding parses a tile_distribution_encoding type signature. The six
// template arguments are positional: the replication lengths sequence,
// the per-X hierarchical length sequences, the P-to-RH major and minor
// mappings, and the Y-to-RH major and minor sequences.
func Encoding(typeStr string) *model.Encoding {
	e := &model.Encoding{
		RsLengths: []int{},
		YsMajor:   []int{},
		YsMinor:   []int{},
	}
	content, _, ok := typetree.TemplateContent(typeStr, "tile_distribution_encoding")
	if !ok {
		return e
	}
	args := typetree.SplitArgs(content)

	if len(args) > 0 {
		if seqs := typetree.Sequences(args[0]); len(seqs) > 0 {
			e.RsLengths = seqs[0]
		}
	}
	if len(args) > 1 {
		e.HsLengthss = typetree.Sequences(args[1])
	}
	if len(args) > 2 {
		e.PsMajor = typetree.Sequences(args[2])
	}
	if len(args) > 3 {
		e.PsMinor = typetree.Sequences(args[3])
	}
	if len(args) > 4 {
		if seqs := typetree.Sequences(args[4]); len(seqs) > 0 {
			e.YsMajor = seqs[0]
		}
	}
	if len(args) > 5 {
		if seqs := typetree.Sequences(args[5]); len(seqs) > 0 {
			e.YsMinor = seqs[0]
		}
	}
	return e
}
