// SPDX-License-Identifier: MIT
//
// Package basis builds and indexes the permutation basis P: the canonical,
// lexicographically ordered Cartesian product of the value domains of the
// declared query attributes. Every contingency vector in a run is indexed
// by the same Basis instance; IndexOf and TupleOf are mutual inverses.
package basis
