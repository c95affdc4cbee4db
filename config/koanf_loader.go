package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config from a config file and environment variables,
// starting from Defaults(): the file layer overrides defaults, and the
// environment layer overrides the file. Flag precedence is applied
// separately by the caller via Merge, since kong parses flags before this
// package ever runs.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading file %s: %w", configPath, err)
		}
	}

	// TOPDOWN_MAX_SOLVER_RETRIES -> max_solver_retries; a double underscore
	// becomes a path separator, a single underscore is preserved.
	if err := k.Load(env.Provider("TOPDOWN_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "TOPDOWN_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: struct validation: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Merge overlays the non-zero fields of flags onto c, giving the CLI flag
// layer the highest precedence over file and environment values.
func (c *Config) Merge(flags Config) {
	if len(flags.GeoColumns) > 0 {
		c.GeoColumns = flags.GeoColumns
	}
	if flags.ProcessUntil != 0 {
		c.ProcessUntil = flags.ProcessUntil
	}
	if flags.Mechanism != "" {
		c.Mechanism = flags.Mechanism
	}
	if flags.DistanceMetric != "" {
		c.DistanceMetric = flags.DistanceMetric
	}
	if flags.DataPath != "" {
		c.DataPath = flags.DataPath
	}
	if flags.OutputPath != "" {
		c.OutputPath = flags.OutputPath
	}
	if flags.OutputFile != "" {
		c.OutputFile = flags.OutputFile
	}
	if flags.CheckpointPath != "" {
		c.CheckpointPath = flags.CheckpointPath
	}
	if flags.MaxSolverRetries != 0 {
		c.MaxSolverRetries = flags.MaxSolverRetries
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.LogFormat != "" {
		c.LogFormat = flags.LogFormat
	}
}
