package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cktools/tileinspect/internal/model"
	"github.com/cktools/tileinspect/internal/typetree"
	"github.com/cktools/tileinspect/internal/value"
)

// Descriptor extracts a tensor_descriptor value into the domain model.
// The transform chain comes from the type signature; runtime parameters
// are merged in from the transforms_ member when readable.
func Descriptor(v value.Value) *model.Descriptor {
	typeStr := v.TypeString()

	elemSpace, elemOK := IntField(v, "element_space_size_")
	ntransform, ntransformOK := IntField(v, "ntransform_")
	ndimHidden, hiddenOK := IntField(v, "ndim_hidden_")
	ndimTop, _ := IntField(v, "ndim_top_")
	ndimBottom, _ := IntField(v, "ndim_bottom_")

	d := &model.Descriptor{
		ElementSpaceSize: elemSpace,
		NDimHidden:       int(ndimHidden),
		NDimTop:          int(ndimTop),
		NDimBottom:       int(ndimBottom),
	}
	if IsUninitialized(elemOK, ntransformOK, hiddenOK) {
		d.Uninitialized = true
		return d
	}
	if !elemOK {
		// Compile-time element space: the constant trails the top-id
		// sequence in the template argument list.
		if n, ok := elementSpaceFromType(typeStr); ok {
			d.ElementSpaceSize = n
		}
	}

	d.BottomIDs, d.TopIDs = descriptorBottomTop(typeStr)
	d.Transforms = transformChain(v, typeStr, "tensor_descriptor")

	// The runtime transform count is authoritative when it is smaller
	// than what the type parse recovered (truncated signatures can
	// over-read).
	if ntransformOK && int(ntransform) < len(d.Transforms) {
		d.Transforms = d.Transforms[:ntransform]
	}
	return d
}

// Adaptor extracts a tensor_adaptor value. Adaptors carry the same
// transform chain as descriptors but no element space and explicit
// bottom dimension ids.
func Adaptor(v value.Value) *model.Descriptor {
	typeStr := v.TypeString()
	d := &model.Descriptor{}
	d.BottomIDs, d.TopIDs = adaptorBottomTop(typeStr)
	d.Transforms = transformChain(v, typeStr, "tensor_adaptor")
	return d
}

// DescriptorFromType builds a descriptor purely from its type signature,
// for nested type-only rendering where no live value exists. Runtime
// parameters stay empty; counts derive from the parsed chain.
func DescriptorFromType(typeStr string) *model.Descriptor {
	d := &model.Descriptor{}
	d.BottomIDs, d.TopIDs = descriptorBottomTop(typeStr)
	d.Transforms = assembleChain(chainShape(typeStr, "tensor_descriptor"))
	if n, ok := elementSpaceFromType(typeStr); ok {
		d.ElementSpaceSize = n
	}
	fillDerivedCounts(d)
	return d
}

// AdaptorFromType is DescriptorFromType for tensor_adaptor signatures.
func AdaptorFromType(typeStr string) *model.Descriptor {
	d := &model.Descriptor{}
	d.BottomIDs, d.TopIDs = adaptorBottomTop(typeStr)
	d.Transforms = assembleChain(chainShape(typeStr, "tensor_adaptor"))
	fillDerivedCounts(d)
	return d
}

// Chain finds the transform chain a value carries, for diagramming. A
// value that is itself a descriptor or adaptor is extracted with its
// runtime parameters; a value that merely contains one (a view, a tuple
// of views) falls back to the chain encoded in its type signature.
func Chain(v value.Value) (*model.Descriptor, error) {
	typeStr := v.TypeString()
	head := typetree.Head(typeStr)
	switch {
	case strings.Contains(head, "tensor_descriptor<"):
		return Descriptor(v), nil
	case strings.Contains(head, "tensor_adaptor<"):
		return Adaptor(v), nil
	case strings.Contains(typeStr, "tensor_descriptor<"):
		return DescriptorFromType(typeStr), nil
	case strings.Contains(typeStr, "tensor_adaptor<"):
		return AdaptorFromType(typeStr), nil
	}
	return nil, fmt.Errorf("type carries no transform chain: %s", typeStr)
}

func fillDerivedCounts(d *model.Descriptor) {
	d.NDimBottom = len(d.BottomIDs)
	d.NDimTop = len(d.TopIDs)
	maxID := -1
	seen := func(ids []int) {
		for _, id := range ids {
			if id > maxID {
				maxID = id
			}
		}
	}
	seen(d.BottomIDs)
	seen(d.TopIDs)
	for _, t := range d.Transforms {
		seen(t.LowerDims)
		seen(t.UpperDims)
	}
	d.NDimHidden = maxID + 1
}

// transformChain builds the ordered transform list for a descriptor-like
// template: kinds and dimension ids from the type, parameters from the
// transforms_ member. Storage order is preserved throughout.
func transformChain(v value.Value, typeStr, templateName string) []model.Transform {
	shape := chainShape(typeStr, templateName)
	if len(shape.kinds) == 0 {
		return nil
	}
	shape.params = transformParams(v, len(shape.kinds))
	return assembleChain(shape)
}

// chainParts is the type-derived shape of a transform chain plus any
// runtime parameters read alongside it.
type chainParts struct {
	kinds        []model.TransformKind
	lower, upper [][]int
	params       []transformParam
}

// chainShape parses the three leading tuples of a descriptor or adaptor
// template: transform types, lower id sequences, upper id sequences.
// Unrecognized transform types map to KindUnknown.
func chainShape(typeStr, templateName string) chainParts {
	var p chainParts
	content, _, ok := typetree.TemplateContent(typeStr, templateName)
	if !ok {
		return p
	}
	args := typetree.SplitArgs(content)
	if len(args) > 0 {
		if transforms, _, ok := typetree.TemplateContent(args[0], "tuple"); ok {
			for _, ttype := range typetree.SplitArgs(transforms) {
				p.kinds = append(p.kinds, model.KindFromTypeName(ttype))
			}
		}
	}
	if len(args) > 1 {
		p.lower = typetree.Sequences(args[1])
	}
	if len(args) > 2 {
		p.upper = typetree.Sequences(args[2])
	}
	return p
}

func assembleChain(p chainParts) []model.Transform {
	out := make([]model.Transform, 0, len(p.kinds))
	for i, kind := range p.kinds {
		t := model.Transform{Kind: kind, LowerDims: []int{}, UpperDims: []int{}}
		if i < len(p.lower) {
			t.LowerDims = p.lower[i]
		}
		if i < len(p.upper) {
			t.UpperDims = p.upper[i]
		}
		if i < len(p.params) {
			t.UpLengths = p.params[i].upLengths
			t.LowLengths = p.params[i].lowLengths
			t.Coefficients = p.params[i].coefficients
			t.LeftPad = p.params[i].leftPad
			t.RightPad = p.params[i].rightPad
		}
		if err := t.Validate(); err != nil {
			// Shape does not match the declared kind: placeholder entry,
			// chain continues.
			slog.Debug("transform shape inconsistent, substituting placeholder",
				"index", i, "kind", kind, "error", err)
			t = model.Placeholder()
		}
		out = append(out, t)
	}
	return out
}

// descriptorBottomTop reads dimension ids from a tensor_descriptor type.
// The bottom of a descriptor is always the single linearized dimension 0;
// the top ids are the first sequence after the three tuples.
func descriptorBottomTop(typeStr string) (bottom, top []int) {
	content, _, ok := typetree.TemplateContent(typeStr, "tensor_descriptor")
	if !ok {
		return []int{}, []int{}
	}
	rest, skipped := typetree.SkipTuples(content, 3)
	if skipped != 3 {
		return []int{}, []int{}
	}
	seqs := typetree.Sequences(rest)
	if len(seqs) == 0 {
		return []int{0}, []int{}
	}
	return []int{0}, seqs[0]
}

// adaptorBottomTop reads dimension ids from a tensor_adaptor type: the
// two sequences after the three tuples are bottom then top.
func adaptorBottomTop(typeStr string) (bottom, top []int) {
	content, _, ok := typetree.TemplateContent(typeStr, "tensor_adaptor")
	if !ok {
		return []int{}, []int{}
	}
	rest, skipped := typetree.SkipTuples(content, 3)
	if skipped != 3 {
		return []int{}, []int{}
	}
	seqs := typetree.Sequences(rest)
	if len(seqs) < 2 {
		return []int{}, []int{}
	}
	return seqs[0], seqs[1]
}

func elementSpaceFromType(typeStr string) (int64, bool) {
	content, _, ok := typetree.TemplateContent(typeStr, "tensor_descriptor")
	if !ok {
		return 0, false
	}
	rest, skipped := typetree.SkipTuples(content, 3)
	if skipped != 3 {
		return 0, false
	}
	return typetree.ConstantValue(rest)
}

// transformParam holds the runtime parameters of one transform.
type transformParam struct {
	upLengths    []int64
	lowLengths   []int64
	coefficients []int64
	leftPad      int64
	rightPad     int64
}

// transformParams reads per-transform runtime parameters from the
// transforms_ member. A missing member or unreadable element leaves the
// corresponding entry empty; count entries are always returned so indices
// line up with the type-derived chain.
func transformParams(v value.Value, count int) []transformParam {
	out := make([]transformParam, count)
	transforms, err := v.Field("transforms_")
	if err != nil {
		return out
	}
	elems, err := transforms.Elements()
	if err != nil {
		return out
	}
	for i := 0; i < count && i < len(elems); i++ {
		e := elems[i]
		out[i].upLengths = tupleInts(e, "up_lengths_")
		out[i].lowLengths = tupleInts(e, "low_lengths_")
		out[i].coefficients = tupleInts(e, "coefficients_")
		if n, ok := IntField(e, "left_pad_length_"); ok {
			out[i].leftPad = n
		}
		if n, ok := IntField(e, "right_pad_length_"); ok {
			out[i].rightPad = n
		}
	}
	return out
}
