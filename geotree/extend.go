package geotree

import "sort"

// Extend grows the tree from its current Depth to newDepth > Depth, adding
// children below every existing leaf using the raw records the tree was
// built from. Every node at level <= the old Depth — its Path, VTrue,
// VNoisy and VEst — is left bit-identical; only new Node values are
// allocated.
func (t *Tree) Extend(newDepth int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if newDepth <= t.Depth {
		return errExtendNotDeeper(t.Depth, newDepth)
	}
	if newDepth > len(t.GeoAttrs) {
		return errDepthTooDeep(newDepth, len(t.GeoAttrs))
	}

	leaves := t.Leaves()
	for _, leaf := range leaves {
		matching := recordsUnderPath(t.records, leaf.Path)
		groups := groupByGeoValue(matching, leaf.Level)

		keys := sortedKeys(groups)
		leaf.Children = make([]*Node, 0, len(keys))
		for _, k := range keys {
			child, err := buildNode(groups[k], t.basis, leaf.Level+1, newDepth, append(append([]string(nil), leaf.Path...), k))
			if err != nil {
				return err
			}
			leaf.Children = append(leaf.Children, child)
		}
	}

	t.Depth = newDepth
	return nil
}

func recordsUnderPath(records []Record, path []string) []Record {
	var out []Record
	for _, r := range records {
		match := true
		for i, v := range path {
			if r.GeoValues[i] != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, r)
		}
	}
	return out
}

func sortedKeys(groups map[string][]Record) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
