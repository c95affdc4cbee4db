package estimation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/yiruzz/topdowndp/geotree"
	"github.com/yiruzz/topdowndp/optimizer"
	"github.com/yiruzz/topdowndp/topdownerr"
)

// Config bundles the user-declared constraints Estimation enforces.
type Config struct {
	RootConstraints []optimizer.Constraint
	// LevelConstraints[level] are applied to every node at that level, each
	// Constraint's Coefficients sized to a single node's vector (basis
	// size); Estimate replicates them across children when solving a
	// level jointly.
	LevelConstraints map[int][]optimizer.Constraint
	// MaxSolverRetries bounds the number of times a transient SolverError
	// is retried before the run becomes fatal. Zero means no retry.
	MaxSolverRetries int
}

// Estimate runs the full top-down pass over tree, writing v_est for every
// node that does not already have one. A node whose v_est is already set (a
// resumed run's untouched upper levels) is left bit-identical and its
// children are not re-solved, so resuming after Extend only computes
// estimates for the newly added nodes. It is fatal (no microdata should be
// written by the caller) if any node returns topdownerr.ErrInfeasible or an
// unretried topdownerr.ErrSolver.
// ctx is checked between levels (not within a level's joint solve, which
// runs to completion once started); a caller that cancels ctx gets
// whatever v_est values the completed levels already wrote, so the tree
// remains checkpoint-safe.
func Estimate(ctx context.Context, tree *geotree.Tree, cfg Config) error {
	if tree.Root == nil {
		return nil
	}

	if err := estimateRoot(tree.Root, cfg); err != nil {
		return err
	}

	// Parents at the same tree level write disjoint child subtrees, so they
	// solve concurrently; the level-by-level frontier still guarantees a
	// parent's v_est is written before any of its children are attempted.
	level := []*geotree.Node{tree.Root}
	for len(level) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		var g errgroup.Group
		for _, parent := range level {
			if parent.IsLeaf() || childrenAlreadyEstimated(parent) {
				continue
			}
			parent := parent
			g.Go(func() error { return estimateChildren(parent, cfg) })
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var next []*geotree.Node
		for _, parent := range level {
			next = append(next, parent.Children...)
		}
		level = next
	}
	return nil
}

// childrenAlreadyEstimated reports whether every one of parent's children
// already carries a v_est, meaning a prior run already solved this level
// and Estimate should leave it untouched.
func childrenAlreadyEstimated(parent *geotree.Node) bool {
	for _, c := range parent.Children {
		if c.VEst == nil {
			return false
		}
	}
	return true
}

func estimateRoot(root *geotree.Node, cfg Config) error {
	if root.VEst != nil {
		return nil
	}
	target := root.VNoisy
	if target == nil {
		target = toFloat(root.VTrue)
	}

	_, yInt, err := solveWithRetry(target, cfg.RootConstraints, cfg.MaxSolverRetries)
	if err != nil {
		return topdownerr.Wrap(err, "estimation", root.Path, "root single-node variant")
	}
	root.VEst = yInt
	return nil
}

func estimateChildren(parent *geotree.Node, cfg Config) error {
	m := len(parent.VEst)
	k := len(parent.Children)

	target := make([]float64, m*k)
	for ci, child := range parent.Children {
		src := child.VNoisy
		if src == nil {
			src = toFloat(child.VTrue)
		}
		copy(target[ci*m:(ci+1)*m], src)
	}

	constraints := make([]optimizer.Constraint, 0, m+k)

	// One disjoint equality row per basis component: the children's values
	// at that component must sum to the parent's already-fixed estimate.
	for i := 0; i < m; i++ {
		coeffs := make([]float64, m*k)
		for ci := 0; ci < k; ci++ {
			coeffs[ci*m+i] = 1
		}
		constraints = append(constraints, optimizer.Constraint{
			Coefficients: coeffs,
			Sense:        optimizer.Eq,
			RHS:          float64(parent.VEst[i]),
		})
	}

	childLevel := parent.Level + 1
	userConstraints := cfg.LevelConstraints[childLevel]
	if err := checkTotalConsistency(parent, userConstraints, k, m); err != nil {
		return err
	}
	for _, uc := range userConstraints {
		for ci := 0; ci < k; ci++ {
			coeffs := make([]float64, m*k)
			copy(coeffs[ci*m:(ci+1)*m], uc.Coefficients)
			constraints = append(constraints, optimizer.Constraint{Coefficients: coeffs, Sense: uc.Sense, RHS: uc.RHS})
		}
	}

	_, yInt, err := solveWithRetry(target, constraints, cfg.MaxSolverRetries)
	if err != nil {
		return topdownerr.Wrap(err, "estimation", parent.Path, "joint children estimation (%d children)", k)
	}

	for ci, child := range parent.Children {
		child.VEst = append([]int64(nil), yInt[ci*m:(ci+1)*m]...)
	}
	return nil
}

// checkTotalConsistency catches the central infeasibility scenario spec.md
// §8 names explicitly: a per-child "total population" equality (an Eq row
// whose coefficients cover the whole node vector) replicated across every
// child must sum, across children, to the parent's own total — otherwise
// the joint system is provably overdetermined and contradictory before the
// solver ever runs.
func checkTotalConsistency(parent *geotree.Node, userConstraints []optimizer.Constraint, k, m int) error {
	for _, uc := range userConstraints {
		if uc.Sense != optimizer.Eq || len(uc.Coefficients) != m {
			continue
		}
		if !isAllOnes(uc.Coefficients) {
			continue
		}

		impliedTotal := uc.RHS * float64(k)
		parentTotal := 0.0
		for _, v := range parent.VEst {
			parentTotal += float64(v)
		}
		if math.Abs(impliedTotal-parentTotal) > 1e-6 {
			return topdownerr.Wrap(topdownerr.ErrInfeasible, "estimation", parent.Path,
				"children total constraint implies %v but parent total is %v", impliedTotal, parentTotal)
		}
	}
	return nil
}

func isAllOnes(coeffs []float64) bool {
	for _, c := range coeffs {
		if c != 1 {
			return false
		}
	}
	return true
}

func solveWithRetry(target []float64, constraints []optimizer.Constraint, maxRetries int) ([]float64, []int64, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		xReal, err := optimizer.SolveNonNegativeReal(target, constraints)
		if err != nil {
			lastErr = err
			if isInfeasible(err) {
				return nil, nil, err
			}
			continue
		}
		yInt, err := optimizer.SolveRounding(xReal, constraints)
		if err != nil {
			lastErr = err
			if isInfeasible(err) {
				return nil, nil, err
			}
			continue
		}
		return xReal, yInt, nil
	}
	return nil, nil, fmt.Errorf("estimation: exhausted %d retries: %w", maxRetries, lastErr)
}

func isInfeasible(err error) bool {
	return errors.Is(err, topdownerr.ErrInfeasible)
}

func toFloat(v []int64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
