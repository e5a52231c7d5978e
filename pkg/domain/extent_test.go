package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtent_ZeroValueIsEmpty(t *testing.T) {
	var e Extent
	assert.True(t, e.IsEmpty())
	assert.False(t, e.Contains(0))
	assert.Equal(t, 0.0, e.Duration())
}

func TestExtent_Merge(t *testing.T) {
	tests := []struct {
		name string
		a, b Extent
		want Extent
	}{
		{"empty with empty", Extent{}, Extent{}, Extent{}},
		{"empty adopts other", Extent{}, NewExtent(1, 2), NewExtent(1, 2)},
		{"other empty keeps self", NewExtent(1, 2), Extent{}, NewExtent(1, 2)},
		{"disjoint", NewExtent(0, 1), NewExtent(3, 4), NewExtent(0, 4)},
		{"nested", NewExtent(0, 10), NewExtent(3, 4), NewExtent(0, 10)},
		{"overlap", NewExtent(2, 5), NewExtent(1, 3), NewExtent(1, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Merge(tt.b))
			assert.Equal(t, tt.want, tt.b.Merge(tt.a), "merge must be commutative")
		})
	}
}

func TestExtent_NewExtentSwapsReversedBounds(t *testing.T) {
	assert.Equal(t, NewExtent(1, 2), NewExtent(2, 1))
}

func TestExtent_MergeMatchesMinMax(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var e Extent
	lo, hi := 1e18, -1e18
	for i := 0; i < 500; i++ {
		a := rng.Float64() * 100
		b := a + rng.Float64()*5
		e = e.MergeBounds(a, b)
		lo = min(lo, a)
		hi = max(hi, b)
	}
	assert.Equal(t, lo, e.Lower)
	assert.Equal(t, hi, e.Upper)
	assert.True(t, e.Contains(lo))
	assert.True(t, e.Contains(hi))
	assert.InDelta(t, hi-lo, e.Duration(), 1e-9)
}
