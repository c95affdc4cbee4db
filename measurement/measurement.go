package measurement

import (
	"fmt"
	"math"
	"math/big"

	"github.com/yiruzz/topdowndp/geotree"
	"github.com/yiruzz/topdowndp/sampler"
	"github.com/yiruzz/topdowndp/topdownerr"
)

// Mechanism selects the discrete noise distribution used at every level.
type Mechanism int

const (
	// DiscreteGaussian adds discrete Gaussian noise (variance sigma2 = 1/(2*rho)).
	DiscreteGaussian Mechanism = iota
	// DiscreteLaplace adds discrete Laplace noise (scale t = 1/rho).
	DiscreteLaplace
)

// Config bundles the privacy parameters for one measurement pass.
type Config struct {
	Mechanism   Mechanism
	LevelParams map[int]float64 // rho_l, indexed by tree level
	FixedRoot   bool            // noise-exempt root iff a fixed-total constraint is registered
}

// Measure walks tree breadth-first and writes v_noisy for every node that
// does not already have one, sampling |P| independent draws per node from s
// under the mechanism and budget Config declares for that node's level. A
// node whose v_noisy is already set (a resumed run's untouched upper
// levels) is left bit-identical and draws nothing from s, so resuming after
// Extend only consumes stream output for the newly added nodes.
//
// Ordering guarantee: a level's parameters are resolved once per node
// before any of its samples are drawn; samples across distinct nodes and
// across components of the same node are all independent draws from s.
func Measure(tree *geotree.Tree, s *sampler.Sampler, cfg Config) error {
	return tree.TraverseBFS(geotree.BFSOptions{
		OnVisit: func(n *geotree.Node, level int) error {
			if n.VNoisy != nil {
				return nil
			}
			if level == 0 && cfg.FixedRoot {
				n.VNoisy = toFloat(n.VTrue)
				return nil
			}

			rho, ok := cfg.LevelParams[level]
			if !ok {
				return topdownerr.Wrap(topdownerr.ErrParameter, "measurement", n.Path, "no privacy parameter registered for level %d", level)
			}
			if rho <= 0 || math.IsInf(rho, 0) || math.IsNaN(rho) {
				return topdownerr.Wrap(topdownerr.ErrParameter, "measurement", n.Path, "level %d budget must be positive and finite, got %v", level, rho)
			}

			noisy := make([]float64, len(n.VTrue))
			for i, v := range n.VTrue {
				noise, err := sampleNoise(s, cfg.Mechanism, rho)
				if err != nil {
					return topdownerr.Wrap(topdownerr.ErrParameter, "measurement", n.Path, "sampling component %d: %v", i, err)
				}
				noisy[i] = float64(v) + float64(noise)
			}
			n.VNoisy = noisy
			return nil
		},
	})
}

func sampleNoise(s *sampler.Sampler, mechanism Mechanism, rho float64) (int64, error) {
	switch mechanism {
	case DiscreteLaplace:
		// sensitivity delta = 1, scale t = delta/epsilon = 1/rho.
		t, err := sampler.LaplaceScale(rho)
		if err != nil {
			return 0, err
		}
		return s.Laplace(t)
	case DiscreteGaussian:
		// sensitivity delta = 1, variance sigma^2 = delta^2/(2*rho) = 1/(2*rho).
		sigma2 := new(big.Rat).SetFloat64(1.0 / (2 * rho))
		return s.Gaussian(sigma2)
	default:
		return 0, fmt.Errorf("measurement: unknown mechanism %d: %w", mechanism, topdownerr.ErrConfig)
	}
}

func toFloat(v []int64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
