package optimizer

import "sort"

// partition describes a disjoint grouping of variable indices, each group
// carrying the fixed sum an equality row demands of it. Variables that no
// 0/1 equality row mentions form singleton groups with no sum constraint
// (nil group, projected by a plain non-negativity clip).
type partition struct {
	groups    [][]int
	targets   []float64
	hasTarget []bool
	covered   []bool
}

// detectPartition inspects constraints and returns (p, true) if every
// equality row has 0/1 coefficients and the rows it defines are pairwise
// disjoint over the variable indices (inequality rows, if present, make the
// partition fast-path inapplicable — the caller falls back to the
// iterative solver). n is the total variable count.
func detectPartition(n int, constraints []Constraint) (*partition, bool) {
	covered := make([]bool, n)
	p := &partition{covered: covered}

	for _, c := range constraints {
		if c.Sense != Eq {
			return nil, false
		}
		idx, ok := c.zeroOneSubset()
		if !ok || len(idx) == 0 {
			return nil, false
		}
		for _, i := range idx {
			if covered[i] {
				return nil, false // overlapping rows: not a clean partition
			}
			covered[i] = true
		}
		p.groups = append(p.groups, idx)
		p.targets = append(p.targets, c.RHS)
		p.hasTarget = append(p.hasTarget, true)
	}

	// Any index no equality row touches becomes its own unconstrained group.
	for i := 0; i < n; i++ {
		if !covered[i] {
			p.groups = append(p.groups, []int{i})
			p.targets = append(p.targets, 0)
			p.hasTarget = append(p.hasTarget, false)
		}
	}
	return p, true
}

// projectSimplexSum returns the Euclidean projection of values onto
// {x >= 0, sum(x) == targetSum}, via the classical sort-and-waterfill
// algorithm (Held, Wolfe & Crowder 1974; Michelot 1986): sort descending,
// find the largest prefix whose shifted mean stays positive, and clip
// everything else to zero.
func projectSimplexSum(values []float64, targetSum float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[0] = targetSum
		if out[0] < 0 {
			out[0] = 0
		}
		return out
	}

	sorted := append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	cumsum := 0.0
	rho := -1
	theta := 0.0
	for i := 0; i < n; i++ {
		cumsum += sorted[i]
		t := (cumsum - targetSum) / float64(i+1)
		if sorted[i]-t > 0 {
			rho = i
			theta = t
		}
	}
	if rho == -1 {
		// Degenerate (all values tied/non-positive): spread evenly.
		theta = -targetSum / float64(n)
	}

	for i, v := range values {
		x := v - theta
		if x < 0 {
			x = 0
		}
		out[i] = x
	}
	return out
}

// apply projects target onto every group in p independently: a
// group with a fixed sum uses projectSimplexSum; an unconstrained singleton
// group is just non-negativity clipped.
func (p *partition) apply(target []float64) []float64 {
	out := make([]float64, len(target))
	for g, idx := range p.groups {
		vals := make([]float64, len(idx))
		for i, v := range idx {
			vals[i] = target[v]
		}

		var proj []float64
		if p.hasTarget[g] {
			proj = projectSimplexSum(vals, p.targets[g])
		} else {
			proj = make([]float64, len(vals))
			for i, v := range vals {
				if v < 0 {
					v = 0
				}
				proj[i] = v
			}
		}
		for i, v := range idx {
			out[v] = proj[i]
		}
	}
	return out
}
