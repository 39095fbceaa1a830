package ops

import (
	"fmt"

	"github.com/born-ml/segment/internal/segment"
	"github.com/born-ml/segment/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	if gradShape.Equal(targetShape) {
		return grad
	}

	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	// A scalar loss gradient is spread over the target.
	if len(gradShape) < len(targetShape) {
		return backend.Expand(grad, targetShape)
	}

	// NumPy broadcasting aligns shapes from the right: first fold the extra
	// leading dimensions into one and sum it away.
	result := grad
	if extra := len(gradShape) - len(targetShape); extra > 0 {
		lead := 1
		for _, d := range gradShape[:extra] {
			lead *= d
		}
		folded := append(tensor.Shape{lead}, gradShape[extra:]...)
		result = sumAlongDimension(backend.Reshape(result, folded), 0, backend)
		result = backend.Reshape(result, gradShape[extra:].Clone())
	}

	// Then sum along dimensions where target is 1.
	for i, d := range targetShape {
		if d == 1 && result.Shape()[i] != 1 {
			result = sumAlongDimension(result, i, backend)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}

	return result
}

// sumAlongDimension sums t along dim, keeping it as a size-1 dimension.
// Every slice goes to segment 0 of a single-segment sum.
func sumAlongDimension(t *tensor.RawTensor, dim int, backend tensor.Backend) *tensor.RawTensor {
	shape := t.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sumAlongDimension: invalid dimension %d for shape %v", dim, shape))
	}

	ids := backend.Full(tensor.Shape{shape[dim]}, tensor.Int64, 0)
	return mustSegmentSum("sumAlongDimension", backend, t, ids, 1, dim)
}

// scatterAdd adds slice i of src (along axis) into slot index[i] of a
// zero tensor with size slots along axis.
func scatterAdd(src, index *tensor.RawTensor, size, axis int, backend tensor.Backend) *tensor.RawTensor {
	return mustSegmentSum("scatterAdd", backend, src, index, size, axis)
}

func mustSegmentSum(op string, backend tensor.Backend, x, ids *tensor.RawTensor, n, axis int) *tensor.RawTensor {
	out, err := segment.UnsortedSum(backend, x, ids, n, axis)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return out
}
