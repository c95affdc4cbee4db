package estimation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiruzz/topdowndp/basis"
	"github.com/yiruzz/topdowndp/estimation"
	"github.com/yiruzz/topdowndp/geotree"
	"github.com/yiruzz/topdowndp/optimizer"
)

func allOnes(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

func TestEstimate_SingleLevelFixedRoot(t *testing.T) {
	b, err := basis.New([]basis.Attribute{{Name: "s", Domain: []string{"0", "1"}}})
	require.NoError(t, err)

	var records []geotree.Record
	for i := 0; i < 60; i++ {
		records = append(records, geotree.Record{GeoValues: []string{"R"}, QueryValues: []string{"0"}})
	}
	for i := 0; i < 40; i++ {
		records = append(records, geotree.Record{GeoValues: []string{"R"}, QueryValues: []string{"1"}})
	}

	tree, err := geotree.Build(records, []string{"region"}, b, 1)
	require.NoError(t, err)

	tree.Root.VNoisy = []float64{60, 40}
	tree.Root.Children[0].VNoisy = []float64{58, 41} // noisy, slightly off

	cfg := estimation.Config{
		RootConstraints: []optimizer.Constraint{{Coefficients: allOnes(2), Sense: optimizer.Eq, RHS: 100}},
	}
	require.NoError(t, estimation.Estimate(context.Background(), tree, cfg))

	assert.EqualValues(t, []int64{60, 40}, tree.Root.VEst)

	child := tree.Root.Children[0]
	assert.EqualValues(t, 100, child.VEst[0]+child.VEst[1])
	for _, v := range child.VEst {
		assert.GreaterOrEqual(t, v, int64(0))
	}
}

func TestEstimate_ParentSumPreservedAcrossSiblings(t *testing.T) {
	b, err := basis.New([]basis.Attribute{{Name: "s", Domain: []string{"0", "1"}}})
	require.NoError(t, err)

	records := []geotree.Record{
		{GeoValues: []string{"R", "A"}, QueryValues: []string{"0"}},
		{GeoValues: []string{"R", "A"}, QueryValues: []string{"0"}},
		{GeoValues: []string{"R", "A"}, QueryValues: []string{"0"}},
		{GeoValues: []string{"R", "A"}, QueryValues: []string{"1"}},
		{GeoValues: []string{"R", "A"}, QueryValues: []string{"1"}},
		{GeoValues: []string{"R", "B"}, QueryValues: []string{"0"}},
		{GeoValues: []string{"R", "B"}, QueryValues: []string{"1"}},
		{GeoValues: []string{"R", "B"}, QueryValues: []string{"1"}},
		{GeoValues: []string{"R", "B"}, QueryValues: []string{"1"}},
		{GeoValues: []string{"R", "B"}, QueryValues: []string{"1"}},
	}
	tree, err := geotree.Build(records, []string{"region", "commune"}, b, 2)
	require.NoError(t, err)

	tree.Root.VNoisy = []float64{5, 5}
	tree.Root.Children[0].VNoisy = []float64{4.2, 4.8} // region R, with gaussian-ish noise

	cfg := estimation.Config{
		RootConstraints: []optimizer.Constraint{{Coefficients: allOnes(2), Sense: optimizer.Eq, RHS: 10}},
	}
	require.NoError(t, estimation.Estimate(context.Background(), tree, cfg))

	region := tree.Root.Children[0]
	var sum [2]int64
	for _, c := range region.Children {
		sum[0] += c.VEst[0]
		sum[1] += c.VEst[1]
	}
	assert.Equal(t, region.VEst[0], sum[0])
	assert.Equal(t, region.VEst[1], sum[1])
}

func TestEstimate_InfeasibleChildConstraintsDetected(t *testing.T) {
	b, err := basis.New([]basis.Attribute{{Name: "s", Domain: []string{"0", "1"}}})
	require.NoError(t, err)

	records := []geotree.Record{
		{GeoValues: []string{"R", "A"}, QueryValues: []string{"0"}},
		{GeoValues: []string{"R", "B"}, QueryValues: []string{"1"}},
	}
	tree, err := geotree.Build(records, []string{"region", "commune"}, b, 2)
	require.NoError(t, err)

	tree.Root.VNoisy = []float64{1, 1}
	tree.Root.Children[0].VNoisy = []float64{1, 1}

	cfg := estimation.Config{
		RootConstraints: []optimizer.Constraint{{Coefficients: allOnes(2), Sense: optimizer.Eq, RHS: 100}},
		LevelConstraints: map[int][]optimizer.Constraint{
			2: {{Coefficients: allOnes(2), Sense: optimizer.Eq, RHS: 10}}, // 2 children * 10 = 20 != parent's 100
		},
	}
	err = estimation.Estimate(context.Background(), tree, cfg)
	assert.Error(t, err)
}

func TestEstimate_StopsAtNextLevelWhenContextCancelled(t *testing.T) {
	b, err := basis.New([]basis.Attribute{{Name: "s", Domain: []string{"0", "1"}}})
	require.NoError(t, err)

	records := []geotree.Record{
		{GeoValues: []string{"R", "A"}, QueryValues: []string{"0"}},
		{GeoValues: []string{"R", "B"}, QueryValues: []string{"1"}},
	}
	tree, err := geotree.Build(records, []string{"region", "commune"}, b, 2)
	require.NoError(t, err)
	tree.Root.VNoisy = []float64{1, 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := estimation.Config{
		RootConstraints: []optimizer.Constraint{{Coefficients: allOnes(2), Sense: optimizer.Eq, RHS: 2}},
	}
	err = estimation.Estimate(ctx, tree, cfg)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, tree.Root.VEst, "root estimate still completes before cancellation is observed")
}

func TestEstimate_ResumeAfterExtendLeavesUpperLevelsUntouched(t *testing.T) {
	b, err := basis.New([]basis.Attribute{{Name: "s", Domain: []string{"0", "1"}}})
	require.NoError(t, err)

	records := []geotree.Record{
		{GeoValues: []string{"R", "A"}, QueryValues: []string{"0"}},
		{GeoValues: []string{"R", "A"}, QueryValues: []string{"0"}},
		{GeoValues: []string{"R", "B"}, QueryValues: []string{"1"}},
	}
	tree, err := geotree.Build(records, []string{"region", "commune"}, b, 1)
	require.NoError(t, err)
	tree.Root.VNoisy = []float64{2, 1}

	cfg := estimation.Config{
		RootConstraints: []optimizer.Constraint{{Coefficients: allOnes(2), Sense: optimizer.Eq, RHS: 3}},
	}
	require.NoError(t, estimation.Estimate(context.Background(), tree, cfg))

	rootBefore := append([]int64(nil), tree.Root.VEst...)
	childBefore := append([]int64(nil), tree.Root.Children[0].VEst...)

	require.NoError(t, tree.Extend(2))
	require.NoError(t, estimation.Estimate(context.Background(), tree, cfg))

	assert.Equal(t, rootBefore, tree.Root.VEst, "resume must not recompute the root estimate")
	assert.Equal(t, childBefore, tree.Root.Children[0].VEst, "resume must not recompute an already-estimated level")

	for _, grandchild := range tree.Root.Children[0].Children {
		assert.NotNil(t, grandchild.VEst, "newly extended nodes must be estimated")
	}
}
