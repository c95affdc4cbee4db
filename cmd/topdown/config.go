package main

import (
	"github.com/yiruzz/topdowndp/config"
	"github.com/yiruzz/topdowndp/estimation"
)

// loadConfig loads configPath and overlays whichever flag values are
// non-empty, giving flags the highest precedence over the file and
// environment layers config.Load already merged. The run command's
// --checkpoint flag defaults to topdown.ckpt, so checkpointPath is never
// empty and always replaces a checkpoint_path from the file or environment.
func loadConfig(configPath, dataPath, outputFile, checkpointPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Merge(config.Config{DataPath: dataPath, OutputFile: outputFile, CheckpointPath: checkpointPath})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func estimationConfig(cfg *config.Config) (estimation.Config, error) {
	rootConstraints, err := cfg.RootOptimizerConstraints()
	if err != nil {
		return estimation.Config{}, err
	}
	geoConstraints, err := cfg.GeoOptimizerConstraints()
	if err != nil {
		return estimation.Config{}, err
	}
	return estimation.Config{
		RootConstraints:  rootConstraints,
		LevelConstraints: geoConstraints,
		MaxSolverRetries: cfg.MaxSolverRetries,
	}, nil
}
