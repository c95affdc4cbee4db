// SPDX-License-Identifier: MIT
//
// Package validation implements the quality-validation collaborator: it
// measures how far a tree's noisy and estimated vectors drifted from the
// true ones, under a configurable distance metric, for the operator to log
// alongside a run rather than to gate it.
package validation
