// Package cpu implements the dense row-major CPU backend.
package cpu

import (
	"fmt"

	"github.com/born-ml/segment/internal/parallel"
	"github.com/born-ml/segment/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend with the default parallel configuration.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend that fans kernels out according to cfg.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// ParallelConfig returns the fan-out configuration used by the kernels.
func (cpu *CPUBackend) ParallelConfig() parallel.Config {
	return cpu.parallel
}

// newResult allocates a result tensor or panics with the operation name.
func (cpu *CPUBackend) newResult(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// Full creates a tensor filled with value converted to dtype.
func (cpu *CPUBackend) Full(shape tensor.Shape, dtype tensor.DataType, value float64) *tensor.RawTensor {
	result := cpu.newResult("full", shape, dtype)
	if value != 0 {
		tensor.FillRaw(result, value)
	}
	return result
}

// Reshape returns a copy of t with a new shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}

	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}

	result := cpu.newResult("reshape", newShape, t.DType())
	copy(result.Data(), t.Data())
	return result
}

// Transpose transposes the tensor by permuting its dimensions.
// With no axes, all dimensions are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := shape.Permute(axes)
	result := cpu.newResult("transpose", newShape, t.DType())

	// Reading the input with permuted strides in output order.
	inStrides := t.Strides()
	strides := make([]int, ndim)
	for i, ax := range axes {
		strides[i] = inStrides[ax]
	}
	gatherStrided(result, t, newShape, strides)

	return result
}

// gatherStrided fills dst (contiguous, shape outShape) by reading src at the
// given per-dimension strides.
func gatherStrided(dst, src *tensor.RawTensor, outShape tensor.Shape, strides []int) {
	switch src.DType() {
	case tensor.Float32:
		stridedCopy(dst.AsFloat32(), src.AsFloat32(), outShape, strides)
	case tensor.Float64:
		stridedCopy(dst.AsFloat64(), src.AsFloat64(), outShape, strides)
	case tensor.Int32:
		stridedCopy(dst.AsInt32(), src.AsInt32(), outShape, strides)
	case tensor.Int64:
		stridedCopy(dst.AsInt64(), src.AsInt64(), outShape, strides)
	case tensor.Uint8:
		stridedCopy(dst.AsUint8(), src.AsUint8(), outShape, strides)
	case tensor.Bool:
		stridedCopy(dst.AsBool(), src.AsBool(), outShape, strides)
	default:
		panic(fmt.Sprintf("strided copy: unsupported dtype %s", src.DType()))
	}
}

func stridedCopy[E any](dst, src []E, outShape tensor.Shape, strides []int) {
	forEachBroadcast(outShape, [][]int{strides}, func(i int, offs []int) {
		dst[i] = src[offs[0]]
	})
}
