package validation

import (
	"gonum.org/v1/gonum/floats"

	"github.com/yiruzz/topdowndp/geotree"
)

// Metric selects the distance function Evaluate reports.
type Metric string

const (
	Manhattan Metric = "manhattan"
	Euclidean Metric = "euclidean"
	Cosine    Metric = "cosine"
	None      Metric = "none"
)

// Distance computes the distance between a and b under metric. a and b must
// be the same length.
func Distance(metric Metric, a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errLengthMismatch(len(a), len(b))
	}
	switch metric {
	case Manhattan:
		return floats.Distance(a, b, 1), nil
	case Euclidean:
		return floats.Distance(a, b, 2), nil
	case Cosine:
		return cosineDistance(a, b), nil
	case None:
		return 0, nil
	default:
		return 0, errUnknownMetric(string(metric))
	}
}

// cosineDistance is 1 minus cosine similarity; two zero vectors are defined
// as maximally distant (1) rather than dividing by zero.
func cosineDistance(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - floats.Dot(a, b)/(normA*normB)
}

// NodeReport is the distance between one node's v_true and its v_noisy and
// v_est, whichever are present.
type NodeReport struct {
	Path          []string
	Level         int
	NoisyDistance float64
	HasNoisy      bool
	EstDistance   float64
	HasEst        bool
}

// Report is the per-node distance breakdown for one tree under one metric.
type Report struct {
	Metric Metric
	Nodes  []NodeReport
}

// Evaluate walks tree breadth-first and computes, for every node, the
// distance from v_true to v_noisy and from v_true to v_est under metric.
// Evaluate never blocks a run: it is a read-only diagnostic pass over
// whatever vectors have been written so far.
func Evaluate(tree *geotree.Tree, metric Metric) (Report, error) {
	report := Report{Metric: metric}
	if metric == None {
		return report, nil
	}

	err := tree.TraverseBFS(geotree.BFSOptions{
		OnVisit: func(n *geotree.Node, level int) error {
			nr := NodeReport{Path: append([]string(nil), n.Path...), Level: level}
			vtrue := toFloat(n.VTrue)

			if n.VNoisy != nil {
				d, err := Distance(metric, vtrue, n.VNoisy)
				if err != nil {
					return err
				}
				nr.NoisyDistance = d
				nr.HasNoisy = true
			}
			if n.VEst != nil {
				d, err := Distance(metric, vtrue, toFloat(n.VEst))
				if err != nil {
					return err
				}
				nr.EstDistance = d
				nr.HasEst = true
			}
			report.Nodes = append(report.Nodes, nr)
			return nil
		},
	})
	return report, err
}

func toFloat(v []int64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
