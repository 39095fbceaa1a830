package segment_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/segment/internal/backend/cpu"
	"github.com/born-ml/segment/internal/segment"
	"github.com/born-ml/segment/internal/tensor"
)

func TestNewPermutation(t *testing.T) {
	tests := []struct {
		rank, axis int
		want       segment.Permutation
	}{
		{1, 0, nil},
		{3, 0, nil},
		{2, 1, segment.Permutation{1, 0}},
		{4, 2, segment.Permutation{2, 0, 1, 3}},
		{4, 3, segment.Permutation{3, 0, 1, 2}},
	}

	for _, tt := range tests {
		got, err := segment.NewPermutation(tt.rank, tt.axis)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "rank %d axis %d", tt.rank, tt.axis)
	}
}

func TestNewPermutation_OutOfRange(t *testing.T) {
	for _, axis := range []int{-1, 3, 10} {
		_, err := segment.NewPermutation(3, axis)
		require.Error(t, err)
		assert.True(t, errors.Is(err, segment.ErrAxisOutOfRange), "axis %d", axis)
	}
}

func TestPermutation_InverseComposesToIdentity(t *testing.T) {
	for rank := 1; rank <= 5; rank++ {
		for axis := 0; axis < rank; axis++ {
			perm, err := segment.NewPermutation(rank, axis)
			require.NoError(t, err)
			if perm == nil {
				assert.Nil(t, perm.Inverse())
				continue
			}

			inv := perm.Inverse()
			composed := make(segment.Permutation, rank)
			for i := range composed {
				composed[i] = perm[inv[i]]
			}
			assert.True(t, composed.IsIdentity(), "rank %d axis %d: %v", rank, axis, composed)
		}
	}
}

func TestNormalize_AxisZeroReturnsInput(t *testing.T) {
	backend := cpu.New()
	x := raw(t, []float32{1, 2, 3, 4}, 2, 2)

	got, perm, canonical, err := segment.Normalize(backend, x, 0)
	require.NoError(t, err)

	assert.Same(t, x, got)
	assert.Nil(t, perm)
	assert.Equal(t, 0, canonical)
	assert.Same(t, x, segment.Denormalize(backend, x, perm))
}

func TestNormalize_RoundTrip(t *testing.T) {
	backend := cpu.New()
	data := make([]float32, 24)
	for i := range data {
		data[i] = float32(i)
	}
	x := raw(t, data, 2, 3, 4)

	got, perm, canonical, err := segment.Normalize(backend, x, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, canonical)
	assert.Equal(t, tensor.Shape{4, 2, 3}, got.Shape())
	// got[k, i, j] == x[i, j, k]
	assert.Equal(t, float32(1*12+2*4+3), got.AsFloat32()[3*6+1*3+2])

	back := segment.Denormalize(backend, got, perm)
	assert.Equal(t, x.Shape(), back.Shape())
	assert.Equal(t, data, back.AsFloat32())
}

func TestNormalize_InvalidAxis(t *testing.T) {
	backend := cpu.New()
	x := raw(t, []float32{1, 2}, 2)

	_, _, _, err := segment.Normalize(backend, x, 1)
	var rangeErr *segment.RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 1, rangeErr.Axis)
	assert.Equal(t, 1, rangeErr.Rank)
}
