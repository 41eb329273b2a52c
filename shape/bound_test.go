package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lemnos/shape"
)

func TestNewBound_Malformed(t *testing.T) {
	_, err := shape.NewBound(shape.Between(5, 2))
	assert.ErrorIs(t, err, shape.ErrBadBound)

	_, err = shape.NewBound(shape.Any(), shape.Axis{Lower: -1})
	assert.ErrorIs(t, err, shape.ErrBadBound)

	_, err = shape.NewBound(shape.Between(0, 5))
	assert.ErrorIs(t, err, shape.ErrBadBound, "an explicit upper needs a lower of at least 1")

	_, err = shape.NewBound(shape.Any(), shape.AtLeast(0), shape.Between(1, 5))
	assert.NoError(t, err)

	assert.Panics(t, func() { shape.MustBound(shape.Between(3, 1)) })
}

func TestBound_ClampValue(t *testing.T) {
	b := shape.MustBound(shape.Between(2, 10), shape.Any(), shape.AtLeast(4))
	assert.Equal(t, 2, b.ClampValue(1, 0))
	assert.Equal(t, 10, b.ClampValue(50, 0))
	assert.Equal(t, 7, b.ClampValue(7, 0))
	assert.Equal(t, 12345, b.ClampValue(12345, 1), "unbounded axis passes through")
	assert.Equal(t, 4, b.ClampValue(1, 2))
	assert.Equal(t, 9, b.ClampValue(9, 7), "out of range axis passes through")
}

func TestBound_Clamp(t *testing.T) {
	b := shape.MustBound(shape.Between(1, 4), shape.Exact(8))
	got := b.Clamp(shape.Locked(9, 3))
	assert.True(t, shape.Locked(4, 8).Equal(got), "got %v", got)
}

func TestBound_Contains(t *testing.T) {
	b := shape.MustBound(shape.Between(1, 10), shape.Between(1, 10))
	assert.True(t, b.Contains(shape.Locked(1, 8)))
	assert.False(t, b.Contains(shape.Locked(11, 8)))
	assert.False(t, b.Contains(shape.Locked(1, 1, 8)), "rank above bound")
	assert.True(t, b.Contains(shape.Locked(8)), "lower rank checks trailing axes only")
	assert.True(t, b.Contains(shape.Open(3)))
	assert.Equal(t, "Bound(1..10, 1..10)", b.String())
}

func TestRange(t *testing.T) {
	_, err := shape.NewRange(2, 1)
	assert.ErrorIs(t, err, shape.ErrBadRange)

	r, err := shape.NewRange(0.5, 2)
	require.NoError(t, err)
	lo, hi := r.Scale(100)
	assert.Equal(t, 50, lo)
	assert.Equal(t, 200, hi)
	assert.InDelta(t, 1.5, r.Difference(), 1e-9)

	lo, hi = shape.Range{}.Scale(64)
	assert.Equal(t, 64, lo)
	assert.Equal(t, 64, hi)
}
