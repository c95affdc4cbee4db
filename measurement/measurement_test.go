package measurement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiruzz/topdowndp/basis"
	"github.com/yiruzz/topdowndp/geotree"
	"github.com/yiruzz/topdowndp/measurement"
	"github.com/yiruzz/topdowndp/sampler"
)

func buildSingleLevelTree(t *testing.T) *geotree.Tree {
	t.Helper()
	b, err := basis.New([]basis.Attribute{{Name: "s", Domain: []string{"0", "1"}}})
	require.NoError(t, err)

	records := make([]geotree.Record, 0, 100)
	for i := 0; i < 60; i++ {
		records = append(records, geotree.Record{GeoValues: []string{"R"}, QueryValues: []string{"0"}})
	}
	for i := 0; i < 40; i++ {
		records = append(records, geotree.Record{GeoValues: []string{"R"}, QueryValues: []string{"1"}})
	}

	tree, err := geotree.Build(records, []string{"region"}, b, 1)
	require.NoError(t, err)
	return tree
}

func TestMeasure_FixedRootExempt(t *testing.T) {
	tree := buildSingleLevelTree(t)
	s, err := sampler.NewSampler(nil)
	require.NoError(t, err)

	cfg := measurement.Config{
		Mechanism:   measurement.DiscreteLaplace,
		LevelParams: map[int]float64{1: 2.0},
		FixedRoot:   true,
	}
	require.NoError(t, measurement.Measure(tree, s, cfg))

	assert.Equal(t, []float64{60, 40}, tree.Root.VNoisy)
	assert.NotNil(t, tree.Root.Children[0].VNoisy)
}

func TestMeasure_MissingLevelParamFails(t *testing.T) {
	tree := buildSingleLevelTree(t)
	s, err := sampler.NewSampler(nil)
	require.NoError(t, err)

	cfg := measurement.Config{Mechanism: measurement.DiscreteGaussian, LevelParams: map[int]float64{}}
	err = measurement.Measure(tree, s, cfg)
	assert.Error(t, err)
}

func TestMeasure_RejectsNonPositiveBudget(t *testing.T) {
	tree := buildSingleLevelTree(t)
	s, err := sampler.NewSampler(nil)
	require.NoError(t, err)

	cfg := measurement.Config{
		Mechanism:   measurement.DiscreteGaussian,
		LevelParams: map[int]float64{0: -1, 1: 1},
	}
	err = measurement.Measure(tree, s, cfg)
	assert.Error(t, err)
}
