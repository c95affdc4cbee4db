package basis

import (
	"fmt"

	"github.com/yiruzz/topdowndp/topdownerr"
)

// Attribute is a named categorical variable with a finite, ordered value
// domain. Query attributes (sex, age bucket, ...) build the permutation
// basis; geographic attributes are handled by package geotree instead.
type Attribute struct {
	Name   string
	Domain []string
}

// Basis is the canonical, lexicographically ordered Cartesian product of
// the query attributes' domains. Built once per run and shared by
// reference; it never mutates after New returns.
type Basis struct {
	attributes []Attribute
	tuples     [][]string
	index      map[string]int
}

// Size returns |P|, the number of rows in the basis.
func (b *Basis) Size() int { return len(b.tuples) }

// Attributes returns the ordered query attributes the basis was built from.
func (b *Basis) Attributes() []Attribute {
	return append([]Attribute(nil), b.attributes...)
}

// New builds the permutation basis for the given ordered query attributes.
// |P| = product of |Domain(q)| over every attribute q. Every attribute must
// declare a non-empty domain.
func New(attributes []Attribute) (*Basis, error) {
	if len(attributes) == 0 {
		return nil, fmt.Errorf("basis: no query attributes declared: %w", topdownerr.ErrConfig)
	}
	for _, a := range attributes {
		if len(a.Domain) == 0 {
			return nil, fmt.Errorf("basis: attribute %q has an empty domain: %w", a.Name, topdownerr.ErrConfig)
		}
	}

	attrs := append([]Attribute(nil), attributes...)
	tuples := cartesianProduct(attrs)

	index := make(map[string]int, len(tuples))
	for i, tup := range tuples {
		index[key(tup)] = i
	}

	return &Basis{attributes: attrs, tuples: tuples, index: index}, nil
}

// cartesianProduct enumerates every combination of attribute values in
// lexicographic order, treating the first attribute as the most significant.
func cartesianProduct(attrs []Attribute) [][]string {
	total := 1
	for _, a := range attrs {
		total *= len(a.Domain)
	}

	tuples := make([][]string, total)
	for i := range tuples {
		tuples[i] = make([]string, len(attrs))
	}

	stride := total
	for pos, a := range attrs {
		stride /= len(a.Domain)
		for i := 0; i < total; i++ {
			valueIdx := (i / stride) % len(a.Domain)
			tuples[i][pos] = a.Domain[valueIdx]
		}
	}
	return tuples
}

func key(tuple []string) string {
	s := ""
	for i, v := range tuple {
		if i > 0 {
			s += "\x1f"
		}
		s += v
	}
	return s
}
