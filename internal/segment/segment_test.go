package segment_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/segment/internal/backend/cpu"
	"github.com/born-ml/segment/internal/parallel"
	"github.com/born-ml/segment/internal/segment"
	"github.com/born-ml/segment/internal/tensor"
)

func raw[T tensor.DType](t *testing.T, data []T, shape ...int) *tensor.RawTensor {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape), cpu.New())
	require.NoError(t, err)
	return x.Raw()
}

func TestUnsortedSum_Basic(t *testing.T) {
	backend := cpu.New()
	x := raw(t, []float32{1, 2, 3, 4}, 4)
	ids := raw(t, []int32{1, 2, 0, 1}, 4)

	out, err := segment.UnsortedSum(backend, x, ids, 3, 0)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{3}, out.Shape())
	assert.Equal(t, []float32{3, 5, 2}, out.AsFloat32())
}

func TestUnsortedSum_NegativeIDsExcluded(t *testing.T) {
	backend := cpu.New()
	x := raw(t, []float64{10, 20}, 2)
	ids := raw(t, []int64{-1, 0}, 2)

	out, err := segment.UnsortedSum(backend, x, ids, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, []float64{20}, out.AsFloat64())
}

func TestUnsortedSum_EmptySegmentsAreZero(t *testing.T) {
	backend := cpu.New()
	x := raw(t, []float32{1, 2, 3, 4, 5, 6}, 3, 2)
	ids := raw(t, []int32{3, 3, 0}, 3)

	out, err := segment.UnsortedSum(backend, x, ids, 5, 0)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{5, 2}, out.Shape())
	assert.Equal(t, []float32{
		5, 6,
		0, 0,
		0, 0,
		4, 6,
		0, 0,
	}, out.AsFloat32())
}

func TestUnsortedSum_IntegerInput(t *testing.T) {
	backend := cpu.New()
	x := raw(t, []int64{1, 2, 3, 4, 5}, 5)
	ids := raw(t, []int64{0, 1, 0, -3, 1}, 5)

	out, err := segment.UnsortedSum(backend, x, ids, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, []int64{4, 7}, out.AsInt64())
}

func TestUnsortedSum_ZeroSegments(t *testing.T) {
	backend := cpu.New()
	x := raw(t, []float32{1, 2, 3, 4}, 2, 2)

	out, err := segment.UnsortedSum(backend, x, raw(t, []int32{-1, -2}, 2), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{0, 2}, out.Shape())
	assert.Empty(t, out.AsFloat32())

	_, err = segment.UnsortedSum(backend, x, raw(t, []int32{-1, 0}, 2), 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, segment.ErrSegmentIDOutOfRange))
}

func TestUnsortedSum_AlongAxis(t *testing.T) {
	backend := cpu.New()
	// [2, 3]
	x := raw(t, []float32{
		1, 2, 3,
		4, 5, 6,
	}, 2, 3)
	ids := raw(t, []int32{1, 0, 1}, 3)

	out, err := segment.UnsortedSum(backend, x, ids, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float32{
		2, 4,
		5, 10,
	}, out.AsFloat32())
}

// Reducing along k must match transposing k to the front, reducing along 0
// and transposing back.
func TestUnsortedSum_AxisGenerality(t *testing.T) {
	backend := cpu.NewWithConfig(parallel.Sequential())

	data := make([]float64, 2*3*4)
	for i := range data {
		data[i] = float64(i*7%11) - 3
	}
	x := raw(t, data, 2, 3, 4)

	idsByAxis := [][]int64{
		{1, -1},
		{2, 0, 2},
		{0, -1, 1, 0},
	}

	for axis, idv := range idsByAxis {
		ids := raw(t, idv, len(idv))
		const n = 3

		got, err := segment.UnsortedSum(backend, x, ids, n, axis)
		require.NoError(t, err)

		perm, err := segment.NewPermutation(3, axis)
		require.NoError(t, err)

		front := x
		if perm != nil {
			front = backend.Transpose(x, perm...)
		}
		want := backend.UnsortedSegmentSum(front, ids, n)
		if perm != nil {
			want = backend.Transpose(want, perm.Inverse()...)
		}

		assert.Equal(t, want.Shape(), got.Shape(), "axis %d", axis)
		assert.Equal(t, want.AsFloat64(), got.AsFloat64(), "axis %d", axis)
	}
}

func TestUnsortedSum_DoesNotMutateInputs(t *testing.T) {
	backend := cpu.New()
	x := raw(t, []float32{1, 2, 3, 4}, 2, 2)
	ids := raw(t, []int32{-1, 0}, 2)

	_, err := segment.UnsortedSum(backend, x, ids, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 2, 3, 4}, x.AsFloat32())
	assert.Equal(t, []int32{-1, 0}, ids.AsInt32())
}

func TestUnsortedSum_Validation(t *testing.T) {
	backend := cpu.New()
	x := raw(t, []float32{1, 2, 3, 4}, 4)
	ids := raw(t, []int32{0, 1, 0, 1}, 4)

	tests := []struct {
		name        string
		backend     tensor.Backend
		x           *tensor.RawTensor
		ids         *tensor.RawTensor
		numSegments int
		axis        int
		kind        error
	}{
		{"nil backend", nil, x, ids, 2, 0, segment.ErrMissingTensor},
		{"nil x", backend, nil, ids, 2, 0, segment.ErrMissingTensor},
		{"nil ids", backend, x, nil, 2, 0, segment.ErrMissingTensor},
		{"float ids", backend, x, raw(t, []float32{0, 1, 0, 1}, 4), 2, 0, segment.ErrInvalidDType},
		{"uint8 ids", backend, x, raw(t, []uint8{0, 1, 0, 1}, 4), 2, 0, segment.ErrInvalidDType},
		{"bool x", backend, raw(t, []bool{true, false, true, true}, 4), ids, 2, 0, segment.ErrInvalidDType},
		{"negative numSegments", backend, x, ids, -1, 0, segment.ErrInvalidNumSegments},
		{"axis too large", backend, x, ids, 2, 1, segment.ErrAxisOutOfRange},
		{"negative axis", backend, x, ids, 2, -1, segment.ErrAxisOutOfRange},
		{"scalar x", backend, raw(t, []float32{1}), ids, 2, 0, segment.ErrAxisOutOfRange},
		{"ids too short", backend, x, raw(t, []int32{0, 1}, 2), 2, 0, segment.ErrShapeMismatch},
		{"ids 2-D", backend, x, raw(t, []int32{0, 1, 0, 1}, 2, 2), 2, 0, segment.ErrShapeMismatch},
		{"id out of range", backend, x, raw(t, []int32{0, 2, 0, 1}, 4), 2, 0, segment.ErrSegmentIDOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := segment.UnsortedSum(tt.backend, tt.x, tt.ids, tt.numSegments, tt.axis)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestUnsortedSum_TypedErrors(t *testing.T) {
	backend := cpu.New()
	x := raw(t, []float32{1, 2, 3, 4}, 2, 2)

	_, err := segment.UnsortedSum(backend, x, raw(t, []int32{0, 1, 1}, 3), 2, 1)
	var shapeErr *segment.ShapeMismatchError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, tensor.Shape{2}, shapeErr.Want)
	assert.Equal(t, tensor.Shape{3}, shapeErr.Got)

	_, err = segment.UnsortedSum(backend, x, raw(t, []int32{0, 1}, 2), 2, 2)
	var rangeErr *segment.RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 2, rangeErr.Axis)
	assert.Equal(t, 2, rangeErr.Rank)

	_, err = segment.UnsortedSum(backend, x, raw(t, []float64{0, 1}, 2), 2, 0)
	var validationErr *segment.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "segmentIDs", validationErr.Arg)
}

func TestOutputShape(t *testing.T) {
	shape, err := segment.OutputShape(tensor.Shape{4, 5, 6}, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 7, 6}, shape)

	_, err = segment.OutputShape(tensor.Shape{4}, 7, 1)
	assert.True(t, errors.Is(err, segment.ErrAxisOutOfRange))

	_, err = segment.OutputShape(tensor.Shape{4}, -1, 0)
	assert.True(t, errors.Is(err, segment.ErrInvalidNumSegments))
}
