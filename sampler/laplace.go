package sampler

import (
	"crypto/rand"
	"math"
	"math/big"
)

// Laplace draws one sample from the discrete Laplace distribution with
// scale t > 0, mass proportional to exp(-|k|/t) on the integers.
//
// t is supplied as an exact rational so every acceptance test inside the
// construction (bernoulliExp) stays exact; callers typically build it as
// big.NewRat(numerator, denominator) from a sensitivity/epsilon ratio.
func (s *Sampler) Laplace(t *big.Rat) (int64, error) {
	if t == nil || t.Sign() <= 0 {
		v := 0.0
		if t != nil {
			v, _ = t.Float64()
		}
		return 0, paramError("discrete Laplace scale", v)
	}

	p := t.Num() // t = p/q in lowest terms
	q := t.Denom()

	for {
		u, err := rand.Int(s.reader(), p)
		if err != nil {
			return 0, err
		}

		// D ~ Bernoulli(exp(-U/p)), U uniform on [0, p)
		exponent := new(big.Rat).SetFrac(u, p)
		ok, err := s.bernoulliExp(exponent)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}

		v := int64(0)
		for {
			a, err := s.bernoulliExp(big.NewRat(1, 1))
			if err != nil {
				return 0, err
			}
			if !a {
				break
			}
			v++
		}

		// X = U + p*V has mass proportional to exp(-X/p); Y = floor(X/q)
		// then has mass proportional to exp(-Y*q/p) = exp(-Y/t).
		x := new(big.Int).Add(u, new(big.Int).Mul(p, big.NewInt(v)))
		y := new(big.Int).Quo(x, q)

		negative, err := s.uniformBit()
		if err != nil {
			return 0, err
		}
		if negative && y.Sign() == 0 {
			continue
		}

		result := y.Int64()
		if negative {
			result = -result
		}
		return result, nil
	}
}

// LaplaceScale builds the exact scale t = delta/epsilon for sensitivity
// delta (always 1 here) and privacy parameter epsilon, guarding against
// non-finite or non-positive epsilon before it ever reaches big.Rat.
func LaplaceScale(epsilon float64) (*big.Rat, error) {
	if epsilon <= 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return nil, paramError("epsilon", epsilon)
	}
	return new(big.Rat).SetFloat64(1.0 / epsilon), nil
}
