// SPDX-License-Identifier: MIT
//
// Package estimation is the top-down, level-by-level constrained
// optimization pass that turns every node's noisy vector into its
// estimated vector: a non-negative, integer, parent-sum-consistent v_est.
//
// The root is estimated by a single-node variant (root constraints only).
// Every other level is estimated by solving Stage A (optimizer.SolveNonNegativeReal)
// and Stage B (optimizer.SolveRounding) jointly over all children of an
// already-estimated parent, with the parent's v_est as the fixed
// right-hand side of one equality row per basis component — so no node
// ever mutates its parent; children read it once as a constant.
package estimation
