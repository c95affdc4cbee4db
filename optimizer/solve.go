package optimizer

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	maxIterations = 500
	tolerance     = 1e-7

	// feasibilityTolerance is the slack allowed when checking whether a
	// converged (or iteration-exhausted) point actually lies in the
	// constraint intersection, looser than the per-step convergence
	// tolerance above to absorb accumulated floating-point drift.
	feasibilityTolerance = 1e-6
)

// SolveNonNegativeReal minimizes ||x - target||_2^2 subject to x >= 0 and
// the supplied linear constraints. When every constraint is an equality
// row with 0/1 coefficients and the rows are pairwise disjoint (the shape
// Estimation builds for parent-sum and root-total constraints), the exact
// closed-form simplex projection is used; any inequality or overlapping row
// makes it fall back to an iterative alternating-projections refinement.
func SolveNonNegativeReal(target []float64, constraints []Constraint) ([]float64, error) {
	n := len(target)
	if n == 0 {
		return nil, errSolver("empty target vector")
	}

	if p, ok := detectPartition(n, constraints); ok {
		return p.apply(target), nil
	}

	return dykstraProject(target, constraints)
}

// dykstraProject runs Dykstra's alternating-projections algorithm onto the
// intersection of the non-negative orthant and every constraint
// half-space/hyperplane, using gonum/mat for the per-row projection
// arithmetic. It converges to a feasible point in the intersection (when
// one exists) but, unlike the partition fast path, is not guaranteed to be
// the exact Euclidean-nearest one for arbitrarily combined constraints —
// an accepted approximation at the boundary of the solver abstraction
// spec.md §9 describes as "pluggable". Mutually contradictory constraints
// (e.g. overlapping GE/LE rows with no common point) have no fixed point
// for the algorithm to converge to, so the returned point is always
// checked against every constraint before being accepted; a point outside
// tolerance of any row is reported as ErrInfeasible rather than silently
// returned as if it were a solution.
func dykstraProject(target []float64, constraints []Constraint) ([]float64, error) {
	n := len(target)
	x := mat.NewVecDense(n, append([]float64(nil), target...))

	// Correction terms, one per set in the alternating sequence: index 0 is
	// the non-negativity clip, indices 1..len(constraints) are the rows.
	corrections := make([]*mat.VecDense, len(constraints)+1)
	for i := range corrections {
		corrections[i] = mat.NewVecDense(n, nil)
	}

	for iter := 0; iter < maxIterations; iter++ {
		maxMove := 0.0

		// Project onto x >= 0.
		y := mat.NewVecDense(n, nil)
		y.AddVec(x, corrections[0])
		clipped := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			v := y.AtVec(i)
			if v < 0 {
				v = 0
			}
			clipped.SetVec(i, v)
		}
		corrections[0].SubVec(y, clipped)
		maxMove = math.Max(maxMove, diffNorm(x, clipped))
		x = clipped

		for ci, c := range constraints {
			y := mat.NewVecDense(n, nil)
			y.AddVec(x, corrections[ci+1])
			projected := projectRow(y, c)
			corrections[ci+1].SubVec(y, projected)
			maxMove = math.Max(maxMove, diffNorm(x, projected))
			x = projected
		}

		if maxMove < tolerance {
			break
		}
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = x.AtVec(i)
	}
	if floats.HasNaN(out) {
		return nil, errSolver("non-negative projection failed to converge to a finite point")
	}
	if !feasible(out, constraints) {
		return nil, errInfeasible("no point satisfies all constraints within tolerance after %d iterations", maxIterations)
	}
	return out, nil
}

// feasible reports whether x is non-negative and satisfies every
// constraint row within feasibilityTolerance. dykstraProject's iterative
// refinement only approaches the constraint intersection when one exists;
// when the constraints are mutually contradictory it instead settles on
// some point that still violates at least one row, and feasible is what
// catches that before the caller treats the point as a solution.
func feasible(x []float64, constraints []Constraint) bool {
	for _, v := range x {
		if v < -feasibilityTolerance {
			return false
		}
	}
	for _, c := range constraints {
		lhs := floats.Dot(c.Coefficients, x)
		switch c.Sense {
		case Eq:
			if math.Abs(lhs-c.RHS) > feasibilityTolerance {
				return false
			}
		case LE:
			if lhs > c.RHS+feasibilityTolerance {
				return false
			}
		case GE:
			if lhs < c.RHS-feasibilityTolerance {
				return false
			}
		}
	}
	return true
}

// projectRow projects y onto the half-space/hyperplane a.x <sense> rhs.
func projectRow(y *mat.VecDense, c Constraint) *mat.VecDense {
	n := y.Len()
	a := mat.NewVecDense(n, append([]float64(nil), c.Coefficients...))

	ay := mat.Dot(a, y)
	violated := false
	switch c.Sense {
	case Eq:
		violated = true
	case LE:
		violated = ay > c.RHS
	case GE:
		violated = ay < c.RHS
	}
	if !violated {
		return y
	}

	normSq := mat.Dot(a, a)
	if normSq == 0 {
		return y
	}
	scale := (ay - c.RHS) / normSq

	out := mat.NewVecDense(n, nil)
	out.AddScaledVec(y, -scale, a)
	return out
}

func diffNorm(a, b *mat.VecDense) float64 {
	n := a.Len()
	sum := 0.0
	for i := 0; i < n; i++ {
		d := a.AtVec(i) - b.AtVec(i)
		sum += d * d
	}
	return math.Sqrt(sum)
}
