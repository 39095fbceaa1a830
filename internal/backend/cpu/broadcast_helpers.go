package cpu

import (
	"github.com/born-ml/segment/internal/tensor"
)

// forEachBroadcast walks every element of outShape in row-major order and
// calls fn with the output flat index and, for each operand k, the flat
// index offs[k] computed from strides[k].
//
// Operand strides are usually produced by tensor.BroadcastStrides, where a
// stride of 0 repeats the operand along that dimension.
func forEachBroadcast(outShape tensor.Shape, strides [][]int, fn func(i int, offs []int)) {
	n := outShape.NumElements()
	if n == 0 {
		return
	}

	ndim := len(outShape)
	coords := make([]int, ndim)
	offs := make([]int, len(strides))

	for i := 0; i < n; i++ {
		fn(i, offs)

		// Odometer increment, innermost dimension first.
		for d := ndim - 1; d >= 0; d-- {
			coords[d]++
			for k := range strides {
				offs[k] += strides[k][d]
			}
			if coords[d] < outShape[d] {
				break
			}
			for k := range strides {
				offs[k] -= strides[k][d] * outShape[d]
			}
			coords[d] = 0
		}
	}
}

// sliceLayout describes x viewed as [outer, dim, inner] around one axis.
func sliceLayout(shape tensor.Shape, axis int) (outer, dim, inner int) {
	outer, inner = 1, 1
	for i := 0; i < axis; i++ {
		outer *= shape[i]
	}
	for i := axis + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	return outer, shape[axis], inner
}
