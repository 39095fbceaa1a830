package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/segment/internal/parallel"
	"github.com/born-ml/segment/internal/tensor"
)

func TestUnsortedSegmentSum_1D(t *testing.T) {
	backend := New()
	x := rawOf(t, []float32{1, 2, 3, 4}, 4)
	ids := rawOf(t, []int32{1, 2, 0, 1}, 4)

	result := backend.UnsortedSegmentSum(x, ids, 3)
	assert.Equal(t, tensor.Shape{3}, result.Shape())
	assert.Equal(t, []float32{3, 5, 2}, result.AsFloat32())
}

func TestUnsortedSegmentSum_Rows(t *testing.T) {
	backend := New()
	x := rawOf(t, []float64{
		1, 2,
		3, 4,
		5, 6,
	}, 3, 2)
	ids := rawOf(t, []int64{0, -1, 0}, 3)

	result := backend.UnsortedSegmentSum(x, ids, 2)
	assert.Equal(t, tensor.Shape{2, 2}, result.Shape())
	assert.Equal(t, []float64{6, 8, 0, 0}, result.AsFloat64())
}

func TestUnsortedSegmentSum_Uint8(t *testing.T) {
	backend := New()
	x := rawOf(t, []uint8{1, 2, 3}, 3)
	ids := rawOf(t, []int32{0, 0, 0}, 3)

	result := backend.UnsortedSegmentSum(x, ids, 1)
	assert.Equal(t, []uint8{6}, result.AsUint8())
}

func TestUnsortedSegmentSum_ZeroSegments(t *testing.T) {
	backend := New()
	x := rawOf(t, []float32{1, 2}, 2, 1)
	ids := rawOf(t, []int32{-1, -1}, 2)

	result := backend.UnsortedSegmentSum(x, ids, 0)
	assert.Equal(t, tensor.Shape{0, 1}, result.Shape())
	assert.Empty(t, result.AsFloat32())
}

func TestUnsortedSegmentSum_Preconditions(t *testing.T) {
	backend := New()
	x := rawOf(t, []float32{1, 2}, 2)

	assert.Panics(t, func() { backend.UnsortedSegmentSum(x, rawOf(t, []int32{0, 3}, 2), 3) })
	assert.Panics(t, func() { backend.UnsortedSegmentSum(x, rawOf(t, []int32{0}, 1), 1) })
	assert.Panics(t, func() { backend.UnsortedSegmentSum(x, rawOf(t, []float32{0, 0}, 2), 1) })
	assert.Panics(t, func() { backend.UnsortedSegmentSum(x, rawOf(t, []int32{0, 0}, 2), -1) })
}

// The parallel kernel splits columns across workers; results must match the
// sequential kernel exactly.
func TestUnsortedSegmentSum_ParallelMatchesSequential(t *testing.T) {
	const rows, cols, segments = 37, 300, 7

	data := make([]float32, rows*cols)
	for i := range data {
		data[i] = float32(i%13) - 6
	}
	idData := make([]int64, rows)
	for i := range idData {
		idData[i] = int64(i%(segments+1)) - 1 // includes -1
	}

	x := rawOf(t, data, rows, cols)
	ids := rawOf(t, idData, rows)

	seq := NewWithConfig(parallel.Sequential()).UnsortedSegmentSum(x, ids, segments)
	par := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16}).
		UnsortedSegmentSum(x, ids, segments)

	assert.Equal(t, seq.Shape(), par.Shape())
	assert.Equal(t, seq.AsFloat32(), par.AsFloat32())

	// Spot check one column by hand.
	var want float32
	for i := 0; i < rows; i++ {
		if idData[i] == 2 {
			want += data[i*cols+5]
		}
	}
	assert.Equal(t, want, seq.AsFloat32()[2*cols+5])
}
