// SPDX-License-Identifier: MIT
//
// Package topdownerr defines the sentinel error kinds shared by every phase
// of the TopDown engine, plus a Fault type that attaches the node path and
// phase a sentinel surfaced from.
//
// Policy (mirrors the error conventions used across the engine's packages):
//   - Only sentinel variables are exported; callers branch with errors.Is.
//   - Sentinels are never reformatted at definition site; context is added
//     by wrapping with Wrap, which preserves errors.Is/As compatibility.
package topdownerr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig signals missing or conflicting configuration: no mechanism
	// registered, an unknown attribute name, or similar setup mistakes.
	ErrConfig = errors.New("topdown: configuration error")

	// ErrInput signals malformed or missing fields in the raw record stream.
	ErrInput = errors.New("topdown: input error")

	// ErrParameter signals a non-positive or non-finite budget/variance, or
	// a reference to a level with no registered parameters.
	ErrParameter = errors.New("topdown: parameter error")

	// ErrInfeasible signals that user-declared constraints are inconsistent
	// with the parent-sum constraints at some node. Fatal: the run aborts
	// and a checkpoint is written before the error surfaces.
	ErrInfeasible = errors.New("topdown: infeasible constraints")

	// ErrSolver signals a solver failure. Retried a bounded number of times
	// by Estimation before becoming fatal.
	ErrSolver = errors.New("topdown: solver error")

	// ErrState signals a checkpoint that is incompatible with the current
	// configuration or whose format version is not understood.
	ErrState = errors.New("topdown: state error")
)

// Fault wraps a sentinel with the node path and phase it surfaced from.
type Fault struct {
	Sentinel error
	Phase    string
	Path     []string
	Detail   string
}

func (f *Fault) Error() string {
	path := "<root>"
	if len(f.Path) > 0 {
		path = fmt.Sprintf("%v", f.Path)
	}
	if f.Detail == "" {
		return fmt.Sprintf("%s: phase=%s node=%s", f.Sentinel, f.Phase, path)
	}
	return fmt.Sprintf("%s: phase=%s node=%s: %s", f.Sentinel, f.Phase, path, f.Detail)
}

func (f *Fault) Unwrap() error { return f.Sentinel }

// Wrap attaches phase and path context to a sentinel error, preserving it
// for errors.Is/errors.As.
func Wrap(sentinel error, phase string, path []string, detailFormat string, args ...interface{}) error {
	return &Fault{
		Sentinel: sentinel,
		Phase:    phase,
		Path:     append([]string(nil), path...),
		Detail:   fmt.Sprintf(detailFormat, args...),
	}
}
