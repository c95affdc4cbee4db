package basis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiruzz/topdowndp/basis"
)

func TestBasis_RoundTrip(t *testing.T) {
	b, err := basis.New([]basis.Attribute{
		{Name: "sex", Domain: []string{"M", "F"}},
		{Name: "age_bucket", Domain: []string{"0-17", "18-64", "65+"}},
	})
	require.NoError(t, err)
	require.Equal(t, 6, b.Size())

	for i := 0; i < b.Size(); i++ {
		tup, err := b.TupleOf(i)
		require.NoError(t, err)
		idx, err := b.IndexOf(tup)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
}

func TestBasis_LexicographicOrder(t *testing.T) {
	b, err := basis.New([]basis.Attribute{
		{Name: "sex", Domain: []string{"M", "F"}},
		{Name: "age_bucket", Domain: []string{"young", "old"}},
	})
	require.NoError(t, err)

	want := [][]string{
		{"M", "young"},
		{"M", "old"},
		{"F", "young"},
		{"F", "old"},
	}
	for i, w := range want {
		got, err := b.TupleOf(i)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
}

func TestBasis_RejectsEmptyDomain(t *testing.T) {
	_, err := basis.New([]basis.Attribute{{Name: "sex", Domain: nil}})
	assert.Error(t, err)
}

func TestBasis_RejectsUnknownTuple(t *testing.T) {
	b, err := basis.New([]basis.Attribute{{Name: "sex", Domain: []string{"M", "F"}}})
	require.NoError(t, err)

	_, err = b.IndexOf([]string{"X"})
	assert.Error(t, err)
}
