package optimizer

import (
	"math"
	"sort"
)

// SolveRounding minimizes ||y - targetReal||_1 over integers y >= 0 subject
// to the same constraints Stage A solved against. For the disjoint 0/1
// partition shape, largest-remainder rounding per group is the exact L1
// optimum: Stage A already made each group's real solution sum to an
// integer right-hand side, so distributing the fractional remainder to the
// largest-remainder components is the closest integer point that preserves
// the sum. Rows outside that shape fall back to independent nearest-integer
// rounding (no further constraint enforcement beyond what SolveNonNegativeReal
// already converged to).
func SolveRounding(targetReal []float64, constraints []Constraint) ([]int64, error) {
	n := len(targetReal)
	if n == 0 {
		return nil, errSolver("empty target vector")
	}

	if p, ok := detectPartition(n, constraints); ok {
		return p.round(targetReal), nil
	}

	out := make([]int64, n)
	for i, v := range targetReal {
		out[i] = int64(math.Round(math.Max(v, 0)))
	}
	return out, nil
}

// round applies largest-remainder rounding independently to every group.
func (p *partition) round(target []float64) []int64 {
	out := make([]int64, len(target))
	for g, idx := range p.groups {
		vals := make([]float64, len(idx))
		for i, v := range idx {
			if target[v] < 0 {
				vals[i] = 0
			} else {
				vals[i] = target[v]
			}
		}

		var rounded []int64
		if p.hasTarget[g] {
			rounded = largestRemainder(vals, p.targets[g])
		} else {
			rounded = make([]int64, len(vals))
			for i, v := range vals {
				rounded[i] = int64(math.Round(v))
			}
		}
		for i, v := range idx {
			out[v] = rounded[i]
		}
	}
	return out
}

func largestRemainder(values []float64, target float64) []int64 {
	n := len(values)
	want := int64(math.Round(target))

	floor := make([]int64, n)
	remainder := make([]float64, n)
	base := int64(0)
	for i, v := range values {
		f := math.Floor(v)
		floor[i] = int64(f)
		remainder[i] = v - f
		base += floor[i]
	}

	deficit := int(want - base)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainder[order[a]] > remainder[order[b]]
	})

	out := append([]int64(nil), floor...)
	if deficit > 0 {
		for i := 0; i < deficit && i < n; i++ {
			out[order[i]]++
		}
	} else if deficit < 0 {
		// Real solution overshot (shouldn't happen once Stage A has
		// converged, but guards against numerical drift): trim from the
		// smallest remainders first.
		for i := 0; i < -deficit && i < n; i++ {
			out[order[n-1-i]]--
			if out[order[n-1-i]] < 0 {
				out[order[n-1-i]] = 0
			}
		}
	}
	return out
}
