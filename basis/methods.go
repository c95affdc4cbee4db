package basis

import (
	"fmt"

	"github.com/yiruzz/topdowndp/topdownerr"
)

// IndexOf returns the position of tuple in the canonical basis order.
// IndexOf and TupleOf are mutual inverses: IndexOf(TupleOf(i)) == i for
// every valid i, and TupleOf(IndexOf(t)) == t for every tuple t in the
// basis.
func (b *Basis) IndexOf(tuple []string) (int, error) {
	if len(tuple) != len(b.attributes) {
		return 0, fmt.Errorf("basis: tuple has %d components, want %d: %w", len(tuple), len(b.attributes), topdownerr.ErrInput)
	}
	idx, ok := b.index[key(tuple)]
	if !ok {
		return 0, fmt.Errorf("basis: tuple %v not in basis: %w", tuple, topdownerr.ErrInput)
	}
	return idx, nil
}

// TupleOf returns the query-attribute tuple at position i in the basis.
func (b *Basis) TupleOf(i int) ([]string, error) {
	if i < 0 || i >= len(b.tuples) {
		return nil, fmt.Errorf("basis: index %d out of range [0,%d): %w", i, len(b.tuples), topdownerr.ErrInput)
	}
	return append([]string(nil), b.tuples[i]...), nil
}
