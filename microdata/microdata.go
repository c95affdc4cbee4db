package microdata

import (
	"fmt"

	"github.com/yiruzz/topdowndp/basis"
	"github.com/yiruzz/topdowndp/geotree"
	"github.com/yiruzz/topdowndp/topdownerr"
)

// Row is one synthetic individual: geographic path values followed by
// query-attribute values, both in the order GeoAttrs/Basis.Attributes
// declare.
type Row struct {
	Geo   []string
	Query []string
}

// Table is a row-per-individual synthetic dataset.
type Table struct {
	GeoAttrs   []string
	QueryAttrs []string
	Rows       []Row
}

// Construct emits one row per synthetic individual from every leaf's
// estimated vector. It fails with topdownerr.ErrInput if a leaf's v_est was
// never written (Estimation did not run, or skipped a node).
func Construct(tree *geotree.Tree, b *basis.Basis) (*Table, error) {
	queryNames := make([]string, len(b.Attributes()))
	for i, a := range b.Attributes() {
		queryNames[i] = a.Name
	}

	table := &Table{GeoAttrs: tree.GeoAttrs, QueryAttrs: queryNames}

	for _, leaf := range tree.Leaves() {
		if leaf.VEst == nil {
			return nil, topdownerr.Wrap(topdownerr.ErrInput, "microdata", leaf.Path, "leaf has no estimated vector")
		}
		for i, count := range leaf.VEst {
			if count < 0 {
				return nil, fmt.Errorf("microdata: leaf %v component %d has negative count %d: %w", leaf.Path, i, count, topdownerr.ErrInput)
			}
			tuple, err := b.TupleOf(i)
			if err != nil {
				return nil, err
			}
			for n := int64(0); n < count; n++ {
				table.Rows = append(table.Rows, Row{
					Geo:   append([]string(nil), leaf.Path...),
					Query: tuple,
				})
			}
		}
	}
	return table, nil
}
