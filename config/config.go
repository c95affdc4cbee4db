package config

import (
	"github.com/yiruzz/topdowndp/basis"
	"github.com/yiruzz/topdowndp/measurement"
	"github.com/yiruzz/topdowndp/optimizer"
)

// Validate checks cross-field invariants that validator struct tags cannot
// express: process_until against the declared geographic columns, and that
// every constraint row and mechanism name resolves.
func (c *Config) Validate() error {
	if c.ProcessUntil > len(c.GeoColumns) {
		return errProcessUntilTooDeep(c.ProcessUntil, len(c.GeoColumns))
	}
	if _, err := c.mechanism(); err != nil {
		return err
	}
	if _, err := c.constraints(c.RootConstraints); err != nil {
		return err
	}
	for _, specs := range c.GeoConstraints {
		if _, err := c.constraints(specs); err != nil {
			return err
		}
	}
	return nil
}

// Basis builds the permutation basis this run's query attributes describe.
func (c *Config) Basis() (*basis.Basis, error) {
	attrs := make([]basis.Attribute, len(c.Queries))
	for i, q := range c.Queries {
		attrs[i] = basis.Attribute{Name: q.Name, Domain: q.Domain}
	}
	return basis.New(attrs)
}

// Measurement builds the measurement.Config this run's privacy parameters
// and mechanism describe. FixedRoot is true iff root_constraints declares a
// fixed-total row (sense "eq", coefficient 1 on every basis component), per
// the engine's noise-exemption rule (spec §9 open question).
func (c *Config) Measurement() (measurement.Config, error) {
	mech, err := c.mechanism()
	if err != nil {
		return measurement.Config{}, err
	}
	size := 1
	for _, q := range c.Queries {
		size *= len(q.Domain)
	}
	fixedRoot := false
	for _, rc := range c.RootConstraints {
		total := rc.Sense == "eq" && len(rc.Coefficients) == size
		for _, v := range rc.Coefficients {
			total = total && v == 1
		}
		fixedRoot = fixedRoot || total
	}
	return measurement.Config{
		Mechanism:   mech,
		LevelParams: c.PrivacyParameters,
		FixedRoot:   fixedRoot,
	}, nil
}

// RootOptimizerConstraints converts root_constraints to their solver form.
func (c *Config) RootOptimizerConstraints() ([]optimizer.Constraint, error) {
	return c.constraints(c.RootConstraints)
}

// GeoOptimizerConstraints converts geo_constraints[level] to their solver form.
func (c *Config) GeoOptimizerConstraints() (map[int][]optimizer.Constraint, error) {
	out := make(map[int][]optimizer.Constraint, len(c.GeoConstraints))
	for level, specs := range c.GeoConstraints {
		cs, err := c.constraints(specs)
		if err != nil {
			return nil, err
		}
		out[level] = cs
	}
	return out, nil
}

func (c *Config) mechanism() (measurement.Mechanism, error) {
	switch c.Mechanism {
	case "discrete_gaussian":
		return measurement.DiscreteGaussian, nil
	case "discrete_laplace":
		return measurement.DiscreteLaplace, nil
	default:
		return 0, errUnknownMechanism(c.Mechanism)
	}
}

func (c *Config) constraints(specs []ConstraintSpec) ([]optimizer.Constraint, error) {
	out := make([]optimizer.Constraint, len(specs))
	for i, s := range specs {
		sense, err := parseSense(s.Sense)
		if err != nil {
			return nil, err
		}
		out[i] = optimizer.Constraint{
			Coefficients: append([]float64(nil), s.Coefficients...),
			Sense:        sense,
			RHS:          s.RHS,
		}
	}
	return out, nil
}

func parseSense(s string) (optimizer.Sense, error) {
	switch s {
	case "eq":
		return optimizer.Eq, nil
	case "le":
		return optimizer.LE, nil
	case "ge":
		return optimizer.GE, nil
	default:
		return 0, errUnknownSense(s)
	}
}
