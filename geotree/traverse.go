package geotree

import "context"

// BFSOptions configures a breadth-first walk of the tree. Measurement and
// validation plug into OnVisit; OnVisit returning an error aborts the walk
// at once, before that node's children are queued.
type BFSOptions struct {
	Ctx     context.Context
	OnVisit func(n *Node, depth int) error
}

// TraverseBFS walks the tree breadth-first, root first, calling OnVisit for
// every node, so a parent is always visited before any of its children.
func (t *Tree) TraverseBFS(opts BFSOptions) error {
	if t.Root == nil {
		return nil
	}
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	queue := []*Node{t.Root}
	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n := queue[0]
		queue = queue[1:]

		if opts.OnVisit != nil {
			if err := opts.OnVisit(n, n.Level); err != nil {
				return err
			}
		}
		queue = append(queue, n.Children...)
	}
	return nil
}

// Leaves returns the level-Depth nodes in deterministic, lexicographic-by-path
// order. Because children are built in sorted order (see build.go), a
// pre-order walk already visits leaves left to right.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if t.Root != nil {
		walk(t.Root)
	}
	return leaves
}

// Stats summarizes node counts per level and total leaf population, for
// diagnostic logging.
type Stats struct {
	NodesPerLevel []int
	LeafPopulation int64
}

// Stats produces an O(n) snapshot of the tree's size.
func (t *Tree) Stats() Stats {
	s := Stats{NodesPerLevel: make([]int, t.Depth+1)}
	_ = t.TraverseBFS(BFSOptions{OnVisit: func(n *Node, depth int) error {
		s.NodesPerLevel[depth]++
		if n.IsLeaf() {
			for _, v := range n.VTrue {
				s.LeafPopulation += v
			}
		}
		return nil
	}})
	return s
}
