package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/segment/internal/tensor"
)

func TestGather1D(t *testing.T) {
	backend := New()
	x := rawOf(t, []float32{10, 20, 30, 40}, 4)
	idx := rawOf(t, []int64{3, 0, 0}, 3)

	result := backend.Gather(x, idx, 0)
	assert.Equal(t, tensor.Shape{3}, result.Shape())
	assert.Equal(t, []float32{40, 10, 10}, result.AsFloat32())
}

func TestGather2D(t *testing.T) {
	backend := New()
	x := rawOf(t, []float32{1, 2, 3, 4, 5, 6}, 3, 2)

	rows := backend.Gather(x, rawOf(t, []int32{2, 0, 2}, 3), 0)
	assert.Equal(t, tensor.Shape{3, 2}, rows.Shape())
	assert.Equal(t, []float32{5, 6, 1, 2, 5, 6}, rows.AsFloat32())

	cols := backend.Gather(x, rawOf(t, []int32{1}, 1), 1)
	assert.Equal(t, tensor.Shape{3, 1}, cols.Shape())
	assert.Equal(t, []float32{2, 4, 6}, cols.AsFloat32())
}

func TestGather3D(t *testing.T) {
	backend := New()
	x := rawOf(t, []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, 2, 3, 2)

	result := backend.Gather(x, rawOf(t, []int32{2, 1}, 2), 1)
	assert.Equal(t, tensor.Shape{2, 2, 2}, result.Shape())
	assert.Equal(t, []int64{4, 5, 2, 3, 10, 11, 8, 9}, result.AsInt64())
}

func TestGatherEmptyIndices(t *testing.T) {
	backend := New()
	x := rawOf(t, []float32{1, 2, 3}, 3)

	result := backend.Gather(x, rawOf(t, []int32{}, 0), 0)
	assert.Equal(t, tensor.Shape{0}, result.Shape())
}

func TestGatherOutOfBounds(t *testing.T) {
	backend := New()
	x := rawOf(t, []float32{1, 2, 3}, 3)

	assert.Panics(t, func() { backend.Gather(x, rawOf(t, []int32{3}, 1), 0) })
	assert.Panics(t, func() { backend.Gather(x, rawOf(t, []int32{-1}, 1), 0) })
	assert.Panics(t, func() { backend.Gather(x, rawOf(t, []int32{0}, 1), 1) })
	assert.Panics(t, func() { backend.Gather(x, rawOf(t, []int32{0, 1}, 1, 2), 0) })
}
