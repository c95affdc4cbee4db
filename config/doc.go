// SPDX-License-Identifier: MIT
//
// Package config loads and validates a TopDown run's configuration, with
// precedence flags > environment variables > config file > defaults. The
// file and environment layers are merged with koanf; per-field constraints
// are checked with go-playground/validator, and cross-field invariants
// (process_until against the declared geographic columns, and that every
// constraint sense and the mechanism name resolve) are checked by
// Config.Validate. Constraint row widths are not checked against the basis
// size.
package config
