// SPDX-License-Identifier: MIT
//
// Package measurement writes the noisy contingency vector (v_noisy) for
// every node of a geotree.Tree, using a per-level privacy budget and a
// selected discrete mechanism. Level 0 (the root) is exempt from noise
// only when the caller has registered a fixed-root total constraint;
// otherwise it is measured like any other level (spec.md §4.4's resolution
// of the root-exemption open question).
package measurement
