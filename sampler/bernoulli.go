package sampler

import (
	"crypto/rand"
	"math/big"
)

// bernoulliRat draws a Bernoulli(p) trial for an exact rational p in [0,1]
// by drawing a uniform integer in [0, denom) and comparing it against the
// numerator. This is exact: no floating-point value of p is ever formed.
func (s *Sampler) bernoulliRat(p *big.Rat) (bool, error) {
	num := p.Num()
	den := p.Denom()
	if num.Sign() <= 0 {
		return false, nil
	}
	if num.Cmp(den) >= 0 {
		return true, nil
	}

	draw, err := rand.Int(s.reader(), den)
	if err != nil {
		return false, err
	}
	return draw.Cmp(num) < 0, nil
}

// bernoulliExp01 draws a Bernoulli(exp(-x)) trial for exact rational x in
// [0,1], using the alternating-series construction: sample independent
// trials H_i ~ Bernoulli(x/i) for i=1,2,... and stop at the first failure;
// the outcome is true iff the stopping index is odd. This relies only on
// bernoulliRat, so every decision stays exact.
func (s *Sampler) bernoulliExp01(x *big.Rat) (bool, error) {
	if x.Sign() == 0 {
		return true, nil
	}

	i := int64(1)
	for {
		pi := new(big.Rat).Quo(x, big.NewRat(i, 1))
		keep, err := s.bernoulliRat(pi)
		if err != nil {
			return false, err
		}
		if !keep {
			break
		}
		i++
	}
	return i%2 == 1, nil
}

// bernoulliExp draws a Bernoulli(exp(-x)) trial for any exact rational
// x >= 0, decomposing x into its integer part (one Bernoulli(exp(-1)) trial
// per unit) and its fractional remainder (one bernoulliExp01 trial), all of
// which must succeed.
func (s *Sampler) bernoulliExp(x *big.Rat) (bool, error) {
	if x.Sign() < 0 {
		return false, errNegativeRate
	}
	if x.Sign() == 0 {
		return true, nil
	}

	intPart := new(big.Int).Quo(x.Num(), x.Denom())
	frac := new(big.Rat).Sub(x, new(big.Rat).SetInt(intPart))

	if frac.Sign() > 0 {
		ok, err := s.bernoulliExp01(frac)
		if err != nil || !ok {
			return false, err
		}
	}

	one := big.NewRat(1, 1)
	n := intPart.Int64()
	for k := int64(0); k < n; k++ {
		ok, err := s.bernoulliExp01(one)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// uniformBit draws an unbiased random bit from the Sampler's stream.
func (s *Sampler) uniformBit() (bool, error) {
	v, err := rand.Int(s.reader(), big.NewInt(2))
	if err != nil {
		return false, err
	}
	return v.Sign() == 1, nil
}
