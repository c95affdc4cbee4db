package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiruzz/topdowndp/config"
	"github.com/yiruzz/topdowndp/measurement"
	"github.com/yiruzz/topdowndp/optimizer"
)

const sampleYAML = `
geo_columns: ["region", "commune"]
process_until: 2
queries:
  - name: sex
    domain: ["0", "1"]
privacy_parameters:
  0: 1.0
  1: 0.5
  2: 0.25
mechanism: discrete_laplace
data_path: ./census.csv
output_file: synthetic.csv
root_constraints:
  - coefficients: [1, 1]
    sense: eq
    rhs: 100
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "commune"}, cfg.GeoColumns)
	assert.Equal(t, 2, cfg.ProcessUntil)
	assert.Equal(t, "discrete_laplace", cfg.Mechanism)
	assert.Equal(t, "none", cfg.DistanceMetric, "untouched default survives the file merge")
	assert.Equal(t, 3, cfg.MaxSolverRetries, "untouched default survives the file merge")

	b, err := cfg.Basis()
	require.NoError(t, err)
	assert.Equal(t, 2, b.Size())

	mcfg, err := cfg.Measurement()
	require.NoError(t, err)
	assert.Equal(t, measurement.DiscreteLaplace, mcfg.Mechanism)
	assert.True(t, mcfg.FixedRoot)

	constraints, err := cfg.RootOptimizerConstraints()
	require.NoError(t, err)
	require.Len(t, constraints, 1)
	assert.Equal(t, optimizer.Eq, constraints[0].Sense)
}

func TestLoad_RejectsProcessUntilDeeperThanGeoColumns(t *testing.T) {
	path := writeTempConfig(t, `
geo_columns: ["region"]
process_until: 5
queries:
  - name: sex
    domain: ["0", "1"]
privacy_parameters:
  0: 1.0
mechanism: discrete_gaussian
data_path: ./census.csv
output_file: synthetic.csv
`)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestMerge_FlagsWinOverFileAndDefaults(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	cfg.Merge(config.Config{OutputFile: "override.csv", LogLevel: "debug"})

	assert.Equal(t, "override.csv", cfg.OutputFile)
	assert.Equal(t, "debug", cfg.LogLevel)
}
