package microdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiruzz/topdowndp/basis"
	"github.com/yiruzz/topdowndp/geotree"
	"github.com/yiruzz/topdowndp/microdata"
)

func TestConstruct_FaithfulUnderZeroNoise(t *testing.T) {
	b, err := basis.New([]basis.Attribute{{Name: "sex", Domain: []string{"0", "1"}}})
	require.NoError(t, err)

	records := []geotree.Record{
		{GeoValues: []string{"R"}, QueryValues: []string{"0"}},
		{GeoValues: []string{"R"}, QueryValues: []string{"0"}},
		{GeoValues: []string{"R"}, QueryValues: []string{"1"}},
	}
	tree, err := geotree.Build(records, []string{"region"}, b, 1)
	require.NoError(t, err)

	leaf := tree.Root.Children[0]
	leaf.VEst = leaf.VTrue // zero-noise run: estimation is the identity

	table, err := microdata.Construct(tree, b)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	counts := map[string]int{}
	for _, row := range table.Rows {
		assert.Equal(t, []string{"R"}, row.Geo)
		counts[row.Query[0]]++
	}
	assert.Equal(t, 2, counts["0"])
	assert.Equal(t, 1, counts["1"])
}

func TestConstruct_FailsWithoutEstimatedVector(t *testing.T) {
	b, err := basis.New([]basis.Attribute{{Name: "sex", Domain: []string{"0", "1"}}})
	require.NoError(t, err)

	tree, err := geotree.Build(nil, []string{"region"}, b, 0)
	require.NoError(t, err)

	_, err = microdata.Construct(tree, b)
	assert.Error(t, err)
}
