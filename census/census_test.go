package census_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiruzz/topdowndp/census"
	"github.com/yiruzz/topdowndp/microdata"
)

func TestReadRecords_ResolvesColumnsRegardlessOfFileOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "census.csv")
	content := "sex,commune,region,extra\n0,A,R,ignored\n1,B,R,ignored\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	records, err := census.ReadRecords(path, []string{"region", "commune"}, []string{"sex"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"R", "A"}, records[0].GeoValues)
	assert.Equal(t, []string{"0"}, records[0].QueryValues)
	assert.Equal(t, []string{"R", "B"}, records[1].GeoValues)
	assert.Equal(t, []string{"1"}, records[1].QueryValues)
}

func TestReadRecords_MissingColumnErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "census.csv")
	require.NoError(t, os.WriteFile(path, []byte("sex,region\n0,R\n"), 0o600))

	_, err := census.ReadRecords(path, []string{"region", "commune"}, []string{"sex"})
	assert.Error(t, err)
}

func TestReadRecords_MissingValueErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "census.csv")
	require.NoError(t, os.WriteFile(path, []byte("sex,region\n,R\n"), 0o600))

	_, err := census.ReadRecords(path, []string{"region"}, []string{"sex"})
	assert.Error(t, err)
}

func TestWriteTable_RoundTripsThroughReadRecords(t *testing.T) {
	table := &microdata.Table{
		GeoAttrs:   []string{"region"},
		QueryAttrs: []string{"sex"},
		Rows: []microdata.Row{
			{Geo: []string{"R"}, Query: []string{"0"}},
			{Geo: []string{"R"}, Query: []string{"1"}},
		},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, census.WriteTable(path, table))

	records, err := census.ReadRecords(path, []string{"region"}, []string{"sex"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"R"}, records[0].GeoValues)
	assert.Equal(t, []string{"0"}, records[0].QueryValues)
}
