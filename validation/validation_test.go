package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiruzz/topdowndp/basis"
	"github.com/yiruzz/topdowndp/geotree"
	"github.com/yiruzz/topdowndp/validation"
)

func TestDistance_ManhattanAndEuclidean(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{3, 4}

	m, err := validation.Distance(validation.Manhattan, a, b)
	require.NoError(t, err)
	assert.Equal(t, 7.0, m)

	e, err := validation.Distance(validation.Euclidean, a, b)
	require.NoError(t, err)
	assert.Equal(t, 5.0, e)
}

func TestDistance_CosineIdenticalVectorsIsZero(t *testing.T) {
	a := []float64{1, 2, 3}
	d, err := validation.Distance(validation.Cosine, a, a)
	require.NoError(t, err)
	assert.InDelta(t, 0, d, 1e-9)
}

func TestDistance_LengthMismatchErrors(t *testing.T) {
	_, err := validation.Distance(validation.Euclidean, []float64{1}, []float64{1, 2})
	assert.Error(t, err)
}

func TestDistance_UnknownMetricErrors(t *testing.T) {
	_, err := validation.Distance(validation.Metric("bogus"), []float64{1}, []float64{1})
	assert.Error(t, err)
}

func TestEvaluate_ReportsZeroDistanceUnderZeroNoise(t *testing.T) {
	b, err := basis.New([]basis.Attribute{{Name: "s", Domain: []string{"0", "1"}}})
	require.NoError(t, err)

	records := []geotree.Record{{GeoValues: []string{"R"}, QueryValues: []string{"0"}}}
	tree, err := geotree.Build(records, []string{"region"}, b, 0)
	require.NoError(t, err)

	tree.Root.VNoisy = []float64{1, 0}
	tree.Root.VEst = []int64{1, 0}

	report, err := validation.Evaluate(tree, validation.Euclidean)
	require.NoError(t, err)
	require.Len(t, report.Nodes, 1)
	assert.Equal(t, 0.0, report.Nodes[0].NoisyDistance)
	assert.Equal(t, 0.0, report.Nodes[0].EstDistance)
	assert.True(t, report.Nodes[0].HasNoisy)
	assert.True(t, report.Nodes[0].HasEst)
}

func TestEvaluate_NoneMetricSkipsWork(t *testing.T) {
	b, err := basis.New([]basis.Attribute{{Name: "s", Domain: []string{"0", "1"}}})
	require.NoError(t, err)
	tree, err := geotree.Build(nil, []string{"region"}, b, 0)
	require.NoError(t, err)

	report, err := validation.Evaluate(tree, validation.None)
	require.NoError(t, err)
	assert.Empty(t, report.Nodes)
}
