package geotree

import (
	"sync"

	"github.com/yiruzz/topdowndp/basis"
)

// Record is one raw microdata row: the full-depth geographic path (one
// value per geographic attribute, coarsest first) and the query-attribute
// values in the order the run's basis expects them.
type Record struct {
	GeoValues   []string
	QueryValues []string
}

// Node is one vertex of the geographic hierarchy: a path of geographic
// attribute values from the root, its level (len(Path)), and the three
// contingency vectors spec.md §3 attaches to every node.
type Node struct {
	Path   []string
	Level  int
	VTrue  []int64
	VNoisy []float64
	VEst   []int64

	Children []*Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Clone deep-copies n and its subtree. Used by checkpoint to snapshot a
// node tree without aliasing slices the running tree still mutates.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Path:   append([]string(nil), n.Path...),
		Level:  n.Level,
		VTrue:  append([]int64(nil), n.VTrue...),
		VNoisy: append([]float64(nil), n.VNoisy...),
		VEst:   append([]int64(nil), n.VEst...),
	}
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.Clone()
		}
	}
	return clone
}

// Tree is the geographic hierarchy built from a raw record stream down to
// depth Depth. It retains the original records and geo attribute count so
// Extend can grow new levels without recomputing anything above Depth.
type Tree struct {
	mu sync.Mutex // guards Depth and the leaf set during Extend only

	Root     *Node
	Depth    int
	GeoAttrs []string

	records []Record
	basis   *basis.Basis
}

// Records returns a copy of the raw records the tree was built from, for
// checkpointing and Extend re-aggregation.
func (t *Tree) Records() []Record { return append([]Record(nil), t.records...) }

// Basis returns the permutation basis the tree's vectors are indexed by.
func (t *Tree) Basis() *basis.Basis { return t.basis }

// Restore rebuilds a Tree from previously-decoded parts: a node tree (as
// produced by Build or a prior Extend and later decoded from a checkpoint),
// the raw records needed for a future Extend, and the basis the vectors are
// indexed by. It performs no recomputation; callers are responsible for the
// node tree being internally consistent.
func Restore(root *Node, depth int, geoAttrs []string, records []Record, b *basis.Basis) *Tree {
	return &Tree{
		Root:     root,
		Depth:    depth,
		GeoAttrs: append([]string(nil), geoAttrs...),
		records:  append([]Record(nil), records...),
		basis:    b,
	}
}
