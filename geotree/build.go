package geotree

import (
	"sort"

	"github.com/yiruzz/topdowndp/basis"
)

// Build constructs the geographic tree from records down to level depth
// (depth <= len(geoAttrs)). Every node's VTrue is the aggregate count, over
// the basis, of every record whose geographic path is a prefix match for
// that node's Path.
func Build(records []Record, geoAttrs []string, b *basis.Basis, depth int) (*Tree, error) {
	if depth < 0 || depth > len(geoAttrs) {
		return nil, errDepthTooDeep(depth, len(geoAttrs))
	}

	for i, r := range records {
		if len(r.GeoValues) != len(geoAttrs) {
			return nil, errMissingGeoValue(i, len(r.GeoValues))
		}
		for lvl, v := range r.GeoValues {
			if v == "" {
				return nil, errMissingGeoValue(i, lvl)
			}
		}
	}

	root, err := buildNode(records, b, 0, depth, nil)
	if err != nil {
		return nil, err
	}

	return &Tree{
		Root:     root,
		Depth:    depth,
		GeoAttrs: append([]string(nil), geoAttrs...),
		records:  append([]Record(nil), records...),
		basis:    b,
	}, nil
}

// buildNode aggregates records into VTrue and, if level < depth, groups
// them by the next geographic attribute value to build children.
func buildNode(records []Record, b *basis.Basis, level, depth int, path []string) (*Node, error) {
	vtrue := make([]int64, b.Size())
	for _, r := range records {
		idx, err := b.IndexOf(r.QueryValues)
		if err != nil {
			return nil, err
		}
		vtrue[idx]++
	}

	node := &Node{
		Path:  append([]string(nil), path...),
		Level: level,
		VTrue: vtrue,
	}

	if level == depth {
		return node, nil
	}

	groups := groupByGeoValue(records, level)
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	node.Children = make([]*Node, 0, len(keys))
	for _, k := range keys {
		child, err := buildNode(groups[k], b, level+1, depth, append(path, k))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func groupByGeoValue(records []Record, level int) map[string][]Record {
	groups := make(map[string][]Record)
	for _, r := range records {
		v := r.GeoValues[level]
		groups[v] = append(groups[v], r)
	}
	return groups
}
