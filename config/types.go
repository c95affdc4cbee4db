package config

// Config is the complete, validated configuration for one TopDown run.
type Config struct {
	GeoColumns        []string              `yaml:"geo_columns" koanf:"geo_columns" validate:"required,min=1"`
	ProcessUntil      int                   `yaml:"process_until" koanf:"process_until" validate:"gte=0"`
	Queries           []QueryAttribute      `yaml:"queries" koanf:"queries" validate:"required,min=1,dive"`
	PrivacyParameters map[int]float64       `yaml:"privacy_parameters" koanf:"privacy_parameters" validate:"required"`
	Mechanism         string                `yaml:"mechanism" koanf:"mechanism" validate:"required,oneof=discrete_gaussian discrete_laplace"`
	RootConstraints   []ConstraintSpec      `yaml:"root_constraints,omitempty" koanf:"root_constraints"`
	GeoConstraints    map[int][]ConstraintSpec `yaml:"geo_constraints,omitempty" koanf:"geo_constraints"`
	DistanceMetric    string                `yaml:"distance_metric,omitempty" koanf:"distance_metric" validate:"omitempty,oneof=manhattan euclidean cosine none"`

	DataPath   string `yaml:"data_path" koanf:"data_path" validate:"required"`
	OutputPath string `yaml:"output_path,omitempty" koanf:"output_path"`
	OutputFile string `yaml:"output_file" koanf:"output_file" validate:"required"`

	CheckpointPath   string `yaml:"checkpoint_path,omitempty" koanf:"checkpoint_path"`
	MaxSolverRetries int    `yaml:"max_solver_retries,omitempty" koanf:"max_solver_retries" validate:"gte=0"`

	LogLevel  string `yaml:"log_level,omitempty" koanf:"log_level"`
	LogFormat string `yaml:"log_format,omitempty" koanf:"log_format"`
}

// QueryAttribute is one query column's name and declared value domain, the
// configuration-layer counterpart of basis.Attribute.
type QueryAttribute struct {
	Name   string   `yaml:"name" koanf:"name" validate:"required"`
	Domain []string `yaml:"domain" koanf:"domain" validate:"required,min=1"`
}

// ConstraintSpec is the wire form of an optimizer.Constraint: Sense is a
// word ("eq", "le", "ge") rather than optimizer.Sense so it round-trips
// through YAML and environment variables cleanly.
type ConstraintSpec struct {
	Coefficients []float64 `yaml:"coefficients" koanf:"coefficients" validate:"required"`
	Sense        string    `yaml:"sense" koanf:"sense" validate:"required,oneof=eq le ge"`
	RHS          float64   `yaml:"rhs" koanf:"rhs"`
}

// Defaults returns the configuration baseline koanf merges the config file
// and environment layers on top of.
func Defaults() Config {
	return Config{
		Mechanism:        "discrete_gaussian",
		DistanceMetric:   "none",
		MaxSolverRetries: 3,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}
