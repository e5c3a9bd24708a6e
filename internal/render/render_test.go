package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cktools/tileinspect/internal/value"
)

const descType = "ck_tile::tensor_descriptor<" +
	"ck_tile::tuple<" +
	"ck_tile::embed_transform<ck_tile::tuple<ck_tile::constant<4>, ck_tile::constant<8>>, ck_tile::tuple<ck_tile::constant<8>, ck_tile::constant<1>>>, " +
	"ck_tile::pass_through_transform<ck_tile::constant<32>>" +
	">, " +
	"ck_tile::tuple<ck_tile::sequence<0>, ck_tile::sequence<0>>, " +
	"ck_tile::tuple<ck_tile::sequence<1, 2>, ck_tile::sequence<3>>, " +
	"ck_tile::sequence<1, 2, 3>, ck_tile::constant<64>, ck_tile::constant<0>>"

func constant(typeArg string, n int) map[string]any {
	return map[string]any{
		"$type":  "ck_tile::constant<" + typeArg + ">",
		"$value": n,
	}
}

func descriptorValue() value.Value {
	return value.NewSnapshot(descType, map[string]any{
		"element_space_size_": constant("64", 64),
		"ntransform_":         constant("2", 2),
		"ndim_hidden_":        constant("4", 4),
		"ndim_top_":           constant("3", 3),
		"ndim_bottom_":        constant("1", 1),
		"transforms_": map[string]any{
			"$elements": []any{
				map[string]any{
					"$type":         "ck_tile::embed_transform<...>",
					"up_lengths_":   map[string]any{"$elements": []any{constant("4", 4), constant("8", 8)}},
					"coefficients_": map[string]any{"$elements": []any{constant("8", 8), constant("1", 1)}},
				},
				map[string]any{"$type": "ck_tile::pass_through_transform<...>"},
			},
		},
	})
}

func TestRenderDescriptor(t *testing.T) {
	got := Default().Render(descriptorValue())

	want := `tensor_descriptor{
  element_space_size: 64
  ntransform: 2
  ndim_hidden: 4
  ndim_top: 3
  ndim_bottom: 1
  bottom_dimension_ids: [0]
  top_dimension_ids: [1, 2, 3]

  Transforms:
    [0] embed
        lower: [0]
        upper: [1, 2]
        up_lengths: [4, 8]
        coefficients: [8, 1]
    [1] pass_through
        lower: [0]
        upper: [3]
}`
	assert.Equal(t, want, got)
}

func TestRenderDescriptor_Uninitialized(t *testing.T) {
	v := value.NewSnapshot(descType, map[string]any{
		"element_space_size_": map[string]any{"$unavailable": true},
		"ntransform_":         map[string]any{"$unavailable": true},
		"ndim_hidden_":        map[string]any{"$unavailable": true},
	})

	assert.Equal(t, "tensor_descriptor{[UNINITIALIZED]}", Default().Render(v))
}

func TestRenderTuple_Nested(t *testing.T) {
	v := value.NewSnapshot("ck_tile::tuple<int, ck_tile::widget<2>>", map[string]any{
		"$elements": []any{
			3,
			map[string]any{"$type": "ck_tile::widget<2>", "a": 1},
		},
	})

	want := `tuple<2 elements> {
  [0]: 3
  [1]: widget = {a: 1}
}`
	assert.Equal(t, want, Default().Render(v))
}

func TestRenderTuple_Empty(t *testing.T) {
	v := value.NewSnapshot("ck_tile::tuple<>", map[string]any{"$elements": []any{}})
	assert.Equal(t, "tuple<0 elements> {}", Default().Render(v))
}

func TestRenderArray_Truncation(t *testing.T) {
	elems := make([]any, 32)
	for i := range elems {
		elems[i] = i
	}
	v := value.NewSnapshot("ck_tile::array<int, 32>", map[string]any{"$elements": elems})

	got := Default().Render(v)
	assert.Contains(t, got, "array<int, 32> = [0, 1, 2,")
	assert.Contains(t, got, ", ... (32 total)]")
}

func TestRenderThreadBuffer(t *testing.T) {
	elems := make([]any, 16)
	for i := range elems {
		elems[i] = i
	}
	v := value.NewSnapshot("ck_tile::thread_buffer<float, 16>", map[string]any{"$elements": elems})

	want := `thread_buffer<float, 16> {
  size: 16
  data (first 10): [0, 1, 2, 3, 4, 5, 6, 7, 8, 9, ... (16 total)]
}`
	assert.Equal(t, want, Default().Render(v))
}

func TestRenderCoordinate(t *testing.T) {
	v := value.NewSnapshot("ck_tile::tensor_coordinate<4, ck_tile::sequence<1, 3>>", map[string]any{
		"idx_hidden_": map[string]any{
			"data": map[string]any{"$elements": []any{0, 5, 2, 7}},
		},
	})

	want := `tensor_coordinate{
  idx_hidden_ (data): [0, 5, 2, 7]
  bottom_dimension_ids: [0]
  top_dimension_ids: [1, 3]
  index (top): [5, 7]
  offset (bottom[0]): 0
}`
	assert.Equal(t, want, Default().Render(v))
}

func TestRenderView_NestedDescriptorIndented(t *testing.T) {
	viewType := "ck_tile::tensor_view<float *, " + descType + ">"
	v := value.NewSnapshot(viewType, map[string]any{
		"desc_": map[string]any{
			"$type":               descType,
			"element_space_size_": constant("64", 64),
			"ntransform_":         constant("2", 2),
			"ndim_hidden_":        constant("4", 4),
		},
		"buf_view_": map[string]any{
			"$type": "ck_tile::buffer_view<(ck_tile::address_space_enum)1, float>",
		},
	})

	got := Default().Render(v)
	assert.Contains(t, got, "tensor_view{\n  data_type: float\n")
	assert.Contains(t, got, "\n  descriptor: tensor_descriptor{\n    element_space_size: 64\n")
	assert.Contains(t, got, "  buffer_view: {\n    address_space: global\n  }")
}

func TestRenderEncoding(t *testing.T) {
	encType := "ck_tile::tile_distribution_encoding<" +
		"ck_tile::sequence<1>, " +
		"ck_tile::tuple<ck_tile::sequence<4, 8>, ck_tile::sequence<2, 8, 2>>, " +
		"ck_tile::tuple<ck_tile::sequence<1, 2>, ck_tile::sequence<2, 1>>, " +
		"ck_tile::tuple<ck_tile::sequence<1, 0>, ck_tile::sequence<2, 1>>, " +
		"ck_tile::sequence<1, 2>, " +
		"ck_tile::sequence<0, 2>>"
	v := value.NewSnapshot(encType, nil)

	want := `tile_distribution_encoding{
    RsLengths: [1]
    HsLengthss: [[4, 8], [2, 8, 2]]
    Ps2RHssMajor: [[1, 2], [2, 1]]
    Ps2RHssMinor: [[1, 0], [2, 1]]
    Ys2RHsMajor: [1, 2]
    Ys2RHsMinor: [0, 2]
    Ps mappings (with lengths):
      P[0]:
        -> H0[1] (length=8)
        -> H1[0] (length=2)
      P[1]:
        -> H1[2] (length=2)
        -> H0[1] (length=8)
    Ys mappings (with lengths):
      Y[0] -> H0[0] (length=4)
      Y[1] -> H1[2] (length=2)
  }`
	assert.Equal(t, want, Default().Render(v))
}

func TestRenderFallback_AlwaysProducesOutput(t *testing.T) {
	v := value.NewSnapshot("ck_tile::magic_number_widget<9>", map[string]any{
		"a": 1,
		"b": 2,
	})
	assert.Equal(t, "magic_number_widget = {a: 1, b: 2}", Default().Render(v))
}
