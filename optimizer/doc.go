// SPDX-License-Identifier: MIT
//
// Package optimizer is the thin abstraction over a numerical solver that
// Estimation calls twice per node: once to project a noisy vector onto the
// non-negative orthant subject to linear constraints (Stage A), and once to
// round that real solution to integers while preserving the same
// constraints (Stage B).
//
// Constraints are the abstract (coefficients, sense, rhs) rows spec.md §4.6
// describes. When every equality row's coefficients are 0/1 and the rows
// partition the variable set — exactly the shape Estimation's joint
// children-sum and root-total constraints take — both stages solve exactly
// in O(n log n) via a sort-and-waterfill simplex projection and a
// largest-remainder rounding, both provably optimal for that shape. Rows
// outside that shape (general user inequalities) fall back to an iterative
// alternating-projections refinement built on gonum.org/v1/gonum/mat.
package optimizer
