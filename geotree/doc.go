// SPDX-License-Identifier: MIT
//
// Package geotree implements the rooted geographic hierarchy the TopDown
// engine operates on. Each node carries a true contingency vector (v_true),
// written once at construction; a noisy vector (v_noisy), written once by
// measurement; and an estimated vector (v_est), written once by estimation.
// Node-level fields are single-writer by phase (see spec §5), so Node
// itself carries no lock — only Tree.Extend, which appends new children
// concurrently with nothing else running, takes one.
package geotree
