// SPDX-License-Identifier: MIT
//
// Package sampler implements exact integer-valued discrete Laplace and
// discrete Gaussian samplers for differential privacy noise addition.
//
// Both distributions are sampled by rejection from a geometric base, and
// every acceptance test is evaluated in exact rational arithmetic
// (math/big.Rat) against a uniform draw from a cryptographically secure
// source (crypto/rand). No floating-point comparison of exp(...) ever
// enters an accept/reject decision: a float substitute would silently
// bias the output distribution and compromise the privacy guarantee.
package sampler
