package cpu

import (
	"fmt"

	"github.com/born-ml/segment/internal/tensor"
)

// Expand broadcasts the tensor to a new shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	xShape := x.Shape()

	if len(newShape) < len(xShape) {
		panic(fmt.Sprintf("expand: new shape %v has fewer dimensions than input shape %v",
			newShape, xShape))
	}

	// Align shapes from the right; each input dim must match or be 1.
	offset := len(newShape) - len(xShape)
	for i, xDim := range xShape {
		newDim := newShape[offset+i]
		if xDim != 1 && xDim != newDim {
			panic(fmt.Sprintf("expand: cannot expand dimension %d from %d to %d",
				i, xDim, newDim))
		}
	}

	result := cpu.newResult("expand", newShape, x.DType())
	gatherStrided(result, x, newShape, tensor.BroadcastStrides(xShape, newShape))

	return result
}
