// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation (CPU, WebGPU) and adds
// gradient tracking capabilities through a GradientTape.
//
// Architecture:
//   - Decorator pattern: AutodiffBackend[B] wraps any Backend implementation
//   - GradientTape: Records operations during forward pass
//   - Operation interface: Each op implements its backward pass
//   - Reverse-mode AD: Computes gradients using the chain rule
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4}, backend)
//	ids, _ := tensor.FromSlice([]int32{1, 2, 0, 1}, tensor.Shape{4}, backend)
//	sums, _ := segment.Sum(x, ids, 3, 0)
//	loss := sums.Mul(weights).Sum()
//
//	grads := autodiff.Backward(loss, backend)
//	dx := grads[x.Raw()]
package autodiff

import (
	"github.com/born-ml/segment/internal/autodiff/ops"
	"github.com/born-ml/segment/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in a GradientTape.
//
// Type parameter B must satisfy the tensor.Backend interface.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend (CPU, GPU, etc.)
	tape  *GradientTape // Records operations for backpropagation
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
// Useful for:
//   - Starting/stopping recording
//   - Clearing tape between iterations
//   - Inspecting recorded operations
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	// Recorded inputs are read again during the backward pass; keep their
	// buffers shared for the duration of the dispatch.
	defer a.ForceNonUnique()()
	defer c.ForceNonUnique()()

	result := b.inner.Add(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddOp(a, c, result))
	}

	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(a, c *tensor.RawTensor) *tensor.RawTensor {
	defer a.ForceNonUnique()()
	defer c.ForceNonUnique()()

	result := b.inner.Mul(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulOp(a, c, result))
	}

	return result
}

// Sum reduces x to a scalar and records the operation.
func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	result := b.inner.Sum(x)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSumOp(x, result))
	}

	return result
}

// UnsortedSegmentSum dispatches the segment-sum kernel to the wrapped
// backend and records exactly one UnsortedSegmentSumOp, the gradient record
// for x. The kernel always reduces along axis 0.
func (b *AutodiffBackend[B]) UnsortedSegmentSum(x, segmentIDs *tensor.RawTensor, numSegments int) *tensor.RawTensor {
	defer x.ForceNonUnique()()
	defer segmentIDs.ForceNonUnique()()

	result := b.inner.UnsortedSegmentSum(x, segmentIDs, numSegments)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewUnsortedSegmentSumOp(x, segmentIDs, numSegments, 0, result))
	}

	return result
}

// Reshape changes tensor shape and records the operation.
func (b *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	defer t.ForceNonUnique()()

	result := b.inner.Reshape(t, newShape)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewReshapeOp(t, result))
	}

	return result
}

// Transpose permutes dimensions and records the operation.
func (b *AutodiffBackend[B]) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	defer t.ForceNonUnique()()

	result := b.inner.Transpose(t, axes...)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewTransposeOp(t, result, axes))
	}

	return result
}

// Gather selects slices along axis and records the operation.
func (b *AutodiffBackend[B]) Gather(x, indices *tensor.RawTensor, axis int) *tensor.RawTensor {
	defer x.ForceNonUnique()()
	defer indices.ForceNonUnique()()

	result := b.inner.Gather(x, indices, axis)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewGatherOp(x, indices, axis, result))
	}

	return result
}

// Where performs conditional selection and records the operation.
func (b *AutodiffBackend[B]) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	defer condition.ForceNonUnique()()
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	result := b.inner.Where(condition, x, y)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewWhereOp(condition, x, y, result))
	}

	return result
}

// Maximum is not differentiated; it only feeds index arithmetic here.
func (b *AutodiffBackend[B]) Maximum(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Maximum(a, c)
}

// GreaterEqual returns a bool tensor, which carries no gradient.
func (b *AutodiffBackend[B]) GreaterEqual(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.GreaterEqual(a, c)
}

// Expand broadcasts x to shape and records the operation.
func (b *AutodiffBackend[B]) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	defer x.ForceNonUnique()()

	result := b.inner.Expand(x, shape)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewExpandOp(x, result))
	}

	return result
}

// Full creates a constant tensor. Constants are not recorded.
func (b *AutodiffBackend[B]) Full(shape tensor.Shape, dtype tensor.DataType, value float64) *tensor.RawTensor {
	return b.inner.Full(shape, dtype, value)
}
