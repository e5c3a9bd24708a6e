package extract

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cktools/tileinspect/internal/model"
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

func constant(n int) map[string]any {
	return map[string]any{
		"$type":  "ck_tile::constant<" + itoa(n) + ">",
		"$value": n,
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func descriptorSnapshot() value.Value {
	return value.NewSnapshot(descType, map[string]any{
		"element_space_size_": constant(64),
		"ntransform_":         constant(2),
		"ndim_hidden_":        constant(4),
		"ndim_top_":           constant(3),
		"ndim_bottom_":        constant(1),
		"transforms_": map[string]any{
			"$elements": []any{
				map[string]any{
					"$type":         "ck_tile::embed_transform<...>",
					"up_lengths_":   map[string]any{"$elements": []any{constant(4), constant(8)}},
					"coefficients_": map[string]any{"$elements": []any{constant(8), constant(1)}},
				},
				map[string]any{
					"$type": "ck_tile::pass_through_transform<...>",
				},
			},
		},
	})
}

func TestDescriptor_FullExtraction(t *testing.T) {
	d := Descriptor(descriptorSnapshot())

	require.False(t, d.Uninitialized)
	assert.Equal(t, int64(64), d.ElementSpaceSize)
	assert.Equal(t, 2, d.NTransform())
	assert.Equal(t, 4, d.NDimHidden)
	assert.Equal(t, 3, d.NDimTop)
	assert.Equal(t, 1, d.NDimBottom)
	assert.Equal(t, []int{0}, d.BottomIDs)
	assert.Equal(t, []int{1, 2, 3}, d.TopIDs)

	require.Len(t, d.Transforms, 2)
	embed := d.Transforms[0]
	assert.Equal(t, model.KindEmbed, embed.Kind)
	assert.Equal(t, []int{0}, embed.LowerDims)
	assert.Equal(t, []int{1, 2}, embed.UpperDims)
	assert.Equal(t, []int64{4, 8}, embed.UpLengths)
	assert.Equal(t, []int64{8, 1}, embed.Coefficients)

	pt := d.Transforms[1]
	assert.Equal(t, model.KindPassThrough, pt.Kind)
	assert.Equal(t, []int{0}, pt.LowerDims)
	assert.Equal(t, []int{3}, pt.UpperDims)

	require.NoError(t, d.Validate())
}

func TestDescriptor_CanonicalSnapshot(t *testing.T) {
	d := Descriptor(descriptorSnapshot())

	b, err := model.MarshalCanonical(d.Snapshot())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "descriptor_snapshot", b)
}

func TestDescriptor_ElementSpaceFromTypeWhenFieldMissing(t *testing.T) {
	d := Descriptor(value.NewSnapshot(descType, map[string]any{
		"ntransform_":  constant(2),
		"ndim_hidden_": constant(4),
	}))

	assert.False(t, d.Uninitialized)
	assert.Equal(t, int64(64), d.ElementSpaceSize)
}

func TestDescriptor_Uninitialized(t *testing.T) {
	// Garbage memory: every scalar probe fails or exceeds the sanity
	// bound, so the descriptor reports uninitialized instead of nonsense.
	d := Descriptor(value.NewSnapshot(descType, map[string]any{
		"element_space_size_": map[string]any{"$type": "long", "$value": 140737488355328},
		"ntransform_":         map[string]any{"$unavailable": true},
		"ndim_hidden_":        map[string]any{"$unavailable": true},
	}))

	assert.True(t, d.Uninitialized)
}

func TestDescriptor_BadTransformBecomesPlaceholder(t *testing.T) {
	// pass_through declared with two upper ids: arity fails, the entry is
	// replaced by a placeholder, the rest of the chain survives.
	typeStr := "ck_tile::tensor_descriptor<" +
		"ck_tile::tuple<ck_tile::pass_through_transform<ck_tile::constant<8>>, ck_tile::pass_through_transform<ck_tile::constant<4>>>, " +
		"ck_tile::tuple<ck_tile::sequence<0>, ck_tile::sequence<0>>, " +
		"ck_tile::tuple<ck_tile::sequence<1, 2>, ck_tile::sequence<3>>, " +
		"ck_tile::sequence<3>, ck_tile::constant<8>>"
	d := Descriptor(value.NewSnapshot(typeStr, map[string]any{
		"ntransform_":  constant(2),
		"ndim_hidden_": constant(3),
	}))

	require.Len(t, d.Transforms, 2)
	assert.Equal(t, model.KindUnknown, d.Transforms[0].Kind)
	assert.Equal(t, model.KindPassThrough, d.Transforms[1].Kind)
}

func TestAdaptor_BottomTopFromType(t *testing.T) {
	typeStr := "ck_tile::tensor_adaptor<" +
		"ck_tile::tuple<ck_tile::merge_transform<ck_tile::tuple<ck_tile::constant<2>, ck_tile::constant<4>>>>, " +
		"ck_tile::tuple<ck_tile::sequence<0, 1>>, " +
		"ck_tile::tuple<ck_tile::sequence<2>>, " +
		"ck_tile::sequence<0, 1>, ck_tile::sequence<2>>"
	d := Adaptor(value.NewSnapshot(typeStr, map[string]any{
		"transforms_": map[string]any{
			"$elements": []any{
				map[string]any{
					"$type":        "ck_tile::merge_transform<...>",
					"low_lengths_": map[string]any{"$elements": []any{constant(2), constant(4)}},
				},
			},
		},
	}))

	assert.Equal(t, []int{0, 1}, d.BottomIDs)
	assert.Equal(t, []int{2}, d.TopIDs)
	require.Len(t, d.Transforms, 1)
	assert.Equal(t, model.KindMerge, d.Transforms[0].Kind)
	assert.Equal(t, []int64{2, 4}, d.Transforms[0].LowLengths)
}

func TestCoordinate_HiddenIndexAndProjection(t *testing.T) {
	typeStr := "ck_tile::tensor_coordinate<4, ck_tile::sequence<1, 3>>"
	c := Coordinate(value.NewSnapshot(typeStr, map[string]any{
		"idx_hidden_": map[string]any{
			"data": map[string]any{"$elements": []any{0, 5, 2, 7}},
		},
	}))

	assert.Equal(t, []int64{0, 5, 2, 7}, c.HiddenIndex)
	assert.Equal(t, []int{0}, c.BottomIDs)
	assert.Equal(t, []int{1, 3}, c.TopIDs)
	assert.Equal(t, []int64{5, 7}, c.TopIndex())
	assert.Equal(t, []int64{0}, c.BottomIndex())
}

func TestAdaptorCoordinate_LastTwoSequences(t *testing.T) {
	typeStr := "ck_tile::tensor_adaptor_coordinate<3, ck_tile::sequence<0>, ck_tile::sequence<1, 2>>"
	c := AdaptorCoordinate(value.NewSnapshot(typeStr, map[string]any{
		"idx_hidden_": map[string]any{"$elements": []any{4, 1, 9}},
	}))

	assert.Equal(t, []int64{4, 1, 9}, c.HiddenIndex)
	assert.Equal(t, []int{0}, c.BottomIDs)
	assert.Equal(t, []int{1, 2}, c.TopIDs)
}

func TestIntField_Forms(t *testing.T) {
	v := value.NewSnapshot("t", map[string]any{
		"compile_time": constant(7),
		"runtime":      9,
		"wrapped":      map[string]any{"value": 11},
		"garbage":      900_000_000,
	})

	n, ok := IntField(v, "compile_time")
	require.True(t, ok)
	assert.Equal(t, int64(7), n)

	n, ok = IntField(v, "runtime")
	require.True(t, ok)
	assert.Equal(t, int64(9), n)

	n, ok = IntField(v, "wrapped")
	require.True(t, ok)
	assert.Equal(t, int64(11), n)

	_, ok = IntField(v, "garbage")
	assert.False(t, ok)

	_, ok = IntField(v, "absent")
	assert.False(t, ok)
}
