package cpu

import (
	"fmt"

	"github.com/born-ml/segment/internal/tensor"
)

// Gather selects whole slices of x along axis.
//
// indices is a 1-D int32 or int64 tensor; the output has x's shape with
// dimension axis replaced by len(indices), and
// output[..., j, ...] = x[..., indices[j], ...].
//
// Example:
//
//	x:       [[1, 2], [3, 4], [5, 6]]
//	indices: [2, 0, 2]
//	axis:    0
//	output:  [[5, 6], [1, 2], [5, 6]]
func (cpu *CPUBackend) Gather(x, indices *tensor.RawTensor, axis int) *tensor.RawTensor {
	if !indices.DType().IsSignedInteger() {
		panic(fmt.Sprintf("gather: indices must have dtype int32 or int64, got %s", indices.DType()))
	}
	if len(indices.Shape()) != 1 {
		panic(fmt.Sprintf("gather: indices must be 1-D, got shape %v", indices.Shape()))
	}

	ndim := len(x.Shape())
	if axis < 0 || axis >= ndim {
		panic(fmt.Sprintf("gather: invalid axis %d for %dD tensor", axis, ndim))
	}

	idx := indices.Indices()
	limit := int64(x.Shape()[axis])
	for i, v := range idx {
		if v < 0 || v >= limit {
			panic(fmt.Sprintf("gather: index %d out of bounds [0, %d) at position %d", v, limit, i))
		}
	}

	outShape := x.Shape().WithDim(axis, len(idx))
	result := cpu.newResult("gather", outShape, x.DType())
	outer, dim, inner := sliceLayout(x.Shape(), axis)

	switch x.DType() {
	case tensor.Float32:
		gatherSlices(result.AsFloat32(), x.AsFloat32(), idx, outer, dim, inner)
	case tensor.Float64:
		gatherSlices(result.AsFloat64(), x.AsFloat64(), idx, outer, dim, inner)
	case tensor.Int32:
		gatherSlices(result.AsInt32(), x.AsInt32(), idx, outer, dim, inner)
	case tensor.Int64:
		gatherSlices(result.AsInt64(), x.AsInt64(), idx, outer, dim, inner)
	case tensor.Uint8:
		gatherSlices(result.AsUint8(), x.AsUint8(), idx, outer, dim, inner)
	case tensor.Bool:
		gatherSlices(result.AsBool(), x.AsBool(), idx, outer, dim, inner)
	default:
		panic(fmt.Sprintf("gather: unsupported dtype %s", x.DType()))
	}

	return result
}

func gatherSlices[E any](dst, src []E, idx []int64, outer, dim, inner int) {
	k := len(idx)
	for o := 0; o < outer; o++ {
		for j, v := range idx {
			from := (o*dim + int(v)) * inner
			to := (o*k + j) * inner
			copy(dst[to:to+inner], src[from:from+inner])
		}
	}
}
