package ops

import "github.com/born-ml/segment/internal/tensor"

// TransposeOp represents a transpose operation.
//
// Forward:
//
//	output = transpose(input, axes)
//
// Backward:
//
//	∂L/∂input = transpose(∂L/∂output, inverse_axes)
type TransposeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	axes   []int // Axes used for forward transpose
}

// NewTransposeOp creates a new TransposeOp.
// Empty axes mean the dimensions were reversed.
func NewTransposeOp(input, output *tensor.RawTensor, axes []int) *TransposeOp {
	if len(axes) == 0 {
		ndim := len(input.Shape())
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	return &TransposeOp{
		input:  input,
		output: output,
		axes:   append([]int(nil), axes...),
	}
}

// Backward computes input gradient for transpose.
//
// For example, if forward uses axes [2, 0, 1], backward uses [1, 2, 0].
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inverseAxes := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverseAxes[ax] = i
	}

	inputGrad := backend.Transpose(outputGrad, inverseAxes...)

	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns the input tensors.
func (op *TransposeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *TransposeOp) Output() *tensor.RawTensor {
	return op.output
}
