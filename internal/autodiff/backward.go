package autodiff

import (
	"fmt"

	"github.com/born-ml/segment/internal/tensor"
)

// BackwardCapable is an interface for backends that support backward pass.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the gradient tape for backward computation.
	GetTape() *GradientTape
}

// GetTape returns the gradient tape (implements BackwardCapable interface).
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward computes gradients for a tensor using the AutodiffBackend's tape.
//
// This helper function extracts the tape from an AutodiffBackend
// and computes gradients for the given tensor.
//
// Parameters:
//   - t: The output tensor to compute gradients for
//   - backend: The backend (must be AutodiffBackend or implement BackwardCapable)
//
// Returns a map from RawTensor to its gradient.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.Ones[float32](Shape{2}, backend)
//	y := x.Mul(x).Sum() // y = Σ x²
//	gradients := autodiff.Backward(y, backend)
//	grad := gradients[x.Raw()] // 2x
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()

	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}

	switch t.DType() {
	case tensor.Float32, tensor.Float64:
	default:
		panic(fmt.Sprintf("backward: unsupported dtype %s (only float32/float64 supported)", t.DType()))
	}

	// dL/dL = 1 for every element of the output.
	outputGrad := backend.Full(t.Shape(), t.DType(), 1)

	// Compute gradients using tape
	return tape.Backward(outputGrad, backend)
}
