package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaw(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Float32, CPU)
	require.NoError(t, err)

	assert.Equal(t, Shape{2, 3}, r.Shape())
	assert.Equal(t, []int{3, 1}, r.Strides())
	assert.Equal(t, 6, r.NumElements())
	assert.Equal(t, 24, r.ByteSize())
	assert.Equal(t, CPU, r.Device())
	assert.Equal(t, make([]float32, 6), r.AsFloat32())

	_, err = NewRaw(Shape{-1}, Float32, CPU)
	assert.Error(t, err)
}

func TestNewRaw_ZeroSize(t *testing.T) {
	r, err := NewRaw(Shape{0, 4}, Int64, CPU)
	require.NoError(t, err)

	assert.Equal(t, 0, r.NumElements())
	assert.NotNil(t, r.AsInt64())
	assert.Empty(t, r.AsInt64())
}

func TestRawTensor_DTypeChecks(t *testing.T) {
	r, err := NewRaw(Shape{2}, Int32, CPU)
	require.NoError(t, err)

	assert.Panics(t, func() { r.AsFloat32() })
	assert.NotPanics(t, func() { r.AsInt32() })
}

func TestRawTensor_Indices(t *testing.T) {
	r32, _ := NewRaw(Shape{3}, Int32, CPU)
	copy(r32.AsInt32(), []int32{-1, 0, 7})
	assert.Equal(t, []int64{-1, 0, 7}, r32.Indices())

	r64, _ := NewRaw(Shape{2}, Int64, CPU)
	copy(r64.AsInt64(), []int64{5, -2})
	idx := r64.Indices()
	assert.Equal(t, []int64{5, -2}, idx)

	// Indices returns a copy.
	idx[0] = 100
	assert.Equal(t, int64(5), r64.AsInt64()[0])

	f, _ := NewRaw(Shape{1}, Float32, CPU)
	assert.Panics(t, func() { f.Indices() })
}

func TestRawTensor_Float64s(t *testing.T) {
	r, _ := NewRaw(Shape{3}, Uint8, CPU)
	copy(r.AsUint8(), []uint8{1, 2, 255})
	assert.Equal(t, []float64{1, 2, 255}, r.Float64s())

	b, _ := NewRaw(Shape{2}, Bool, CPU)
	b.AsBool()[1] = true
	assert.Equal(t, []float64{0, 1}, b.Float64s())
}

func TestRawTensor_FillRaw(t *testing.T) {
	r, _ := NewRaw(Shape{2}, Int32, CPU)
	FillRaw(r, 3)
	assert.Equal(t, []int32{3, 3}, r.AsInt32())
}

func TestRawTensor_CloneSharesBuffer(t *testing.T) {
	r, _ := NewRaw(Shape{2}, Float32, CPU)
	assert.True(t, r.IsUnique())

	c := r.Clone()
	assert.False(t, r.IsUnique())
	c.AsFloat32()[0] = 9
	assert.Equal(t, float32(9), r.AsFloat32()[0])

	c.Release()
	assert.True(t, r.IsUnique())
}

func TestRawTensor_ForceNonUnique(t *testing.T) {
	r, _ := NewRaw(Shape{1}, Float32, CPU)

	restore := r.ForceNonUnique()
	assert.False(t, r.IsUnique())
	restore()
	assert.True(t, r.IsUnique())
}

func TestRawTensor_Reshaped(t *testing.T) {
	r, _ := NewRaw(Shape{2, 3}, Float32, CPU)
	v, err := r.Reshaped(Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, v.Shape())
	assert.Equal(t, []int{2, 1}, v.Strides())

	_, err = r.Reshaped(Shape{4})
	assert.Error(t, err)
}
