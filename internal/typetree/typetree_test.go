package typetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Leaf(t *testing.T) {
	res, err := Parse("int")
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.Equal(t, "int", res.Root.Name)
	assert.False(t, res.Root.Generic)
	assert.Empty(t, res.Root.Args)
}

func TestParse_NestedArgs(t *testing.T) {
	res, err := Parse("ck_tile::tuple<int, ck_tile::tuple<float, double>, bool>")
	require.NoError(t, err)
	require.True(t, res.Complete)

	root := res.Root
	assert.Equal(t, "ck_tile::tuple", root.Name)
	require.Len(t, root.Args, 3)
	assert.Equal(t, "int", root.Args[0].Name)
	assert.Equal(t, "ck_tile::tuple", root.Args[1].Name)
	require.Len(t, root.Args[1].Args, 2)
	assert.Equal(t, "float", root.Args[1].Args[0].Name)
	assert.Equal(t, "double", root.Args[1].Args[1].Name)
	assert.Equal(t, "bool", root.Args[2].Name)
}

func TestParse_CommaInsideNestedBracketsDoesNotSplit(t *testing.T) {
	res, err := Parse("outer<inner<a, b>, c>")
	require.NoError(t, err)
	require.Len(t, res.Root.Args, 2)
	assert.Equal(t, "inner", res.Root.Args[0].Name)
	assert.Equal(t, "c", res.Root.Args[1].Name)
}

func TestParse_EmptyGeneric(t *testing.T) {
	res, err := Parse("ck_tile::tuple<>")
	require.NoError(t, err)
	assert.True(t, res.Root.Generic)
	assert.Empty(t, res.Root.Args)
	assert.Equal(t, "ck_tile::tuple<>", res.Root.String())
}

func TestParse_StripsQualifiers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"const ck_tile::tuple<int>&", "ck_tile::tuple"},
		{"ck_tile::tensor_view<float> const", "ck_tile::tensor_view"},
		{"volatile int*", "int"},
	}
	for _, tc := range tests {
		res, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, res.Root.Name, tc.in)
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("   ")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestParse_StrayClosingBracket(t *testing.T) {
	_, err := Parse("tuple<int>>")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 10, pe.Pos)
}

func TestParse_TruncatedIsBestEffort(t *testing.T) {
	res, err := Parse("tensor_descriptor<ck_tile::tuple<ck_tile::embed<int")
	require.NoError(t, err)
	assert.False(t, res.Complete)
	assert.Equal(t, "tensor_descriptor", res.Root.Name)
	require.NotEmpty(t, res.Root.Args)
	assert.Equal(t, "ck_tile::tuple", res.Root.Args[0].Name)
}

// Parsing the pretty-printed serialization of a parsed tree must yield the
// same tree, for any balanced signature.
func TestParse_RoundTripIdempotent(t *testing.T) {
	signatures := []string{
		"int",
		"ck_tile::tuple<>",
		"ck_tile::tuple<int, float>",
		"tuple<tensor_view<tensor_descriptor<tuple<embed<constant<8>>, pass_through<int>>>>>",
		"ck_tile::tensor_adaptor<ck_tile::tuple<ck_tile::unmerge<ck_tile::tuple<ck_tile::constant<2>, ck_tile::constant<64>>>>, ck_tile::tuple<ck_tile::sequence<0>>, ck_tile::tuple<ck_tile::sequence<1, 2>>, ck_tile::sequence<0>, ck_tile::sequence<1, 2>>",
	}
	for _, sig := range signatures {
		first, err := Parse(sig)
		require.NoError(t, err, sig)
		require.True(t, first.Complete, sig)

		second, err := Parse(first.Root.String())
		require.NoError(t, err, sig)
		assert.Equal(t, first.Root, second.Root, sig)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ck_tile::tensor_descriptor", "tensor_descriptor"},
		{"tensor_descriptor", "tensor_descriptor"},
		{"const ck_tile::tuple<int>&", "tuple"},
		{"a::b::c", "c"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, BaseName(tc.in), tc.in)
	}
}

func TestHead(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ck_tile::tuple<ck_tile::tensor_view<float>>", "ck_tile::tuple<"},
		{"ck_tile::tensor_descriptor<tuple<...>>", "ck_tile::tensor_descriptor<"},
		{"float", "float"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Head(tc.in), tc.in)
	}
}

func TestSplitArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"int", "tuple<float, double>", "bool"},
		SplitArgs("int, tuple<float, double>, bool"))
	assert.Nil(t, SplitArgs("  "))
	assert.Equal(t,
		[]string{"(ck_tile::address_space_enum)1", "int"},
		SplitArgs("(ck_tile::address_space_enum)1, int"))
}

func TestSequences(t *testing.T) {
	seqs := Sequences("ck_tile::sequence<1, 2>, other, sequence<>, sequence<3>")
	require.Len(t, seqs, 3)
	assert.Equal(t, []int{1, 2}, seqs[0])
	assert.Equal(t, []int{}, seqs[1])
	assert.Equal(t, []int{3}, seqs[2])
}

func TestConstantValue(t *testing.T) {
	v, ok := ConstantValue("ck_tile::constant<8192l>")
	require.True(t, ok)
	assert.Equal(t, int64(8192), v)

	v, ok = ConstantValue("ck_tile::constant<4096UL>, ck_tile::sequence<0>")
	require.True(t, ok)
	assert.Equal(t, int64(4096), v)

	_, ok = ConstantValue("int")
	assert.False(t, ok)
}

func TestSkipTuples(t *testing.T) {
	content := "ck_tile::tuple<a<b, c>>, ck_tile::tuple<d>, ck_tile::tuple<e>, ck_tile::sequence<1, 3>"
	rest, skipped := SkipTuples(content, 3)
	assert.Equal(t, 3, skipped)
	assert.Equal(t, "ck_tile::sequence<1, 3>", rest)

	rest, skipped = SkipTuples("no tuples here", 3)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "no tuples here", rest)
}

func TestTemplateContent(t *testing.T) {
	content, end, ok := TemplateContent("prefix tensor_descriptor<int, float> suffix", "tensor_descriptor")
	require.True(t, ok)
	assert.Equal(t, "int, float", content)
	assert.Equal(t, " suffix", "prefix tensor_descriptor<int, float> suffix"[end:])

	_, _, ok = TemplateContent("tensor_descriptor<unclosed", "tensor_descriptor")
	assert.False(t, ok)
}
