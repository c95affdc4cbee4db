package checkpoint

import (
	"github.com/yiruzz/topdowndp/basis"
	"github.com/yiruzz/topdowndp/estimation"
	"github.com/yiruzz/topdowndp/geotree"
	"github.com/yiruzz/topdowndp/measurement"
	"github.com/yiruzz/topdowndp/optimizer"
	"github.com/yiruzz/topdowndp/sampler"
)

// magic identifies a topdown checkpoint file; version gates the payload
// shape this build knows how to decode.
var magic = [4]byte{'T', 'D', 'C', 'P'}

const formatVersion uint32 = 1

// Checkpoint is everything a resumed run needs: the tree as built and
// measured/estimated so far, the sampler seed and stream offset it drew
// noise from, and the configuration the run was started with.
type Checkpoint struct {
	Tree        *geotree.Tree
	Seed        []byte
	Consumed    uint64
	Measurement measurement.Config
	Estimation  estimation.Config
}

// state is the gob-encoded payload. geotree.Tree and sampler.Sampler carry
// unexported fields (a mutex, a cipher stream) that gob cannot see, so state
// flattens a Checkpoint down to plain exported data and Save/Load do the
// translation.
type state struct {
	GeoAttrs   []string
	Depth      int
	Attributes []basis.Attribute
	Root       *geotree.Node
	Records    []geotree.Record
	Seed       []byte
	Consumed   uint64

	Mechanism   measurement.Mechanism
	LevelParams map[int]float64
	FixedRoot   bool

	RootConstraints  []optimizer.Constraint
	LevelConstraints map[int][]optimizer.Constraint
	MaxSolverRetries int
}

func toState(cp Checkpoint) state {
	var root *geotree.Node
	var geoAttrs []string
	var depth int
	var records []geotree.Record
	var attrs []basis.Attribute

	if cp.Tree != nil {
		root = cp.Tree.Root.Clone()
		geoAttrs = cp.Tree.GeoAttrs
		depth = cp.Tree.Depth
		records = cp.Tree.Records()
		if b := cp.Tree.Basis(); b != nil {
			attrs = b.Attributes()
		}
	}

	return state{
		GeoAttrs:         geoAttrs,
		Depth:            depth,
		Attributes:       attrs,
		Root:             root,
		Records:          records,
		Seed:             append([]byte(nil), cp.Seed...),
		Consumed:         cp.Consumed,
		Mechanism:        cp.Measurement.Mechanism,
		LevelParams:      cp.Measurement.LevelParams,
		FixedRoot:        cp.Measurement.FixedRoot,
		RootConstraints:  cp.Estimation.RootConstraints,
		LevelConstraints: cp.Estimation.LevelConstraints,
		MaxSolverRetries: cp.Estimation.MaxSolverRetries,
	}
}

func fromState(st state) (Checkpoint, error) {
	var tree *geotree.Tree
	if st.Root != nil {
		b, err := basis.New(st.Attributes)
		if err != nil {
			return Checkpoint{}, err
		}
		tree = geotree.Restore(st.Root, st.Depth, st.GeoAttrs, st.Records, b)
	}

	return Checkpoint{
		Tree:     tree,
		Seed:     st.Seed,
		Consumed: st.Consumed,
		Measurement: measurement.Config{
			Mechanism:   st.Mechanism,
			LevelParams: st.LevelParams,
			FixedRoot:   st.FixedRoot,
		},
		Estimation: estimation.Config{
			RootConstraints:  st.RootConstraints,
			LevelConstraints: st.LevelConstraints,
			MaxSolverRetries: st.MaxSolverRetries,
		},
	}, nil
}

// Sampler rehydrates the deterministic noise source a Checkpoint was saved
// with: the same seed, replayed past exactly the Consumed bytes the saved
// run had already drawn, so a resumed run continues the stream rather than
// restarting it at offset zero (which would replay already-used noise for
// any newly added node sharing a level's privacy parameters with an
// earlier one).
func (cp Checkpoint) Sampler() (*sampler.Sampler, error) {
	return sampler.NewSamplerAt(cp.Seed, cp.Consumed)
}
