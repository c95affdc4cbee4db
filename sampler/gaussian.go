package sampler

import (
	"math"
	"math/big"
)

// Gaussian draws one sample from the discrete Gaussian distribution with
// variance sigma2 > 0, mass proportional to exp(-k^2/(2*sigma2)) on the
// integers. It proposes from a discrete Laplace with scale t = floor(sigma)+1
// and accepts with probability exp(-(|k|*t - sigma2)^2 / (2*sigma2*t^2)),
// both the proposal and the acceptance test evaluated exactly.
func (s *Sampler) Gaussian(sigma2 *big.Rat) (int64, error) {
	if sigma2 == nil || sigma2.Sign() <= 0 {
		v := 0.0
		if sigma2 != nil {
			v, _ = sigma2.Float64()
		}
		return 0, paramError("discrete Gaussian variance", v)
	}

	t := floorSqrtRat(sigma2) + 1
	tRat := big.NewRat(t, 1)

	for {
		k, err := s.Laplace(tRat)
		if err != nil {
			return 0, err
		}

		absK := k
		if absK < 0 {
			absK = -absK
		}

		// numerator = (|k|*t - sigma2)^2 ; denominator = 2*sigma2*t^2
		kt := new(big.Rat).SetInt64(absK * t)
		diff := new(big.Rat).Sub(kt, sigma2)
		numerator := new(big.Rat).Mul(diff, diff)

		t2 := new(big.Rat).SetInt64(t * t)
		denominator := new(big.Rat).Mul(new(big.Rat).Mul(big.NewRat(2, 1), sigma2), t2)

		exponent := new(big.Rat).Quo(numerator, denominator)

		accept, err := s.bernoulliExp(exponent)
		if err != nil {
			return 0, err
		}
		if accept {
			return k, nil
		}
	}
}

// floorSqrtRat returns floor(sqrt(r)) for r > 0 as an exact integer, found
// by starting from a floating-point estimate and then stepping it down or up
// one at a time with exact big.Int comparisons (n^2*D vs N for r = N/D) so
// the result is never off by the rounding error of the float64 estimate.
func floorSqrtRat(r *big.Rat) int64 {
	f, _ := r.Float64()
	guess := int64(math.Sqrt(f))
	if guess < 0 {
		guess = 0
	}

	n := r.Num()
	d := r.Denom()

	sq := func(v int64) int {
		lhs := new(big.Int).Mul(big.NewInt(v), big.NewInt(v))
		lhs.Mul(lhs, d)
		return lhs.Cmp(n)
	}

	// Walk down while guess^2 overshoots, then up while (guess+1)^2 undershoots.
	for guess > 0 && sq(guess) > 0 {
		guess--
	}
	for sq(guess+1) <= 0 {
		guess++
	}
	return guess
}
