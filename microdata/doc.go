// SPDX-License-Identifier: MIT
//
// Package microdata materializes synthetic individual records from a
// tree's leaf estimated vectors: for every leaf and every basis component,
// v_est(leaf)[i] rows are emitted carrying the leaf's geographic path and
// the query-attribute tuple at position i. Row order is deterministic:
// leaves in tree order, then components in basis order.
package microdata
