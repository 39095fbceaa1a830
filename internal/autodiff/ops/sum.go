package ops

import "github.com/born-ml/segment/internal/tensor"

// SumOp represents a total reduction: output = sum(input), a scalar.
//
// Backward:
//
//	grad_input = broadcast(outputGrad, input.shape)
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{
		input:  input,
		output: output,
	}
}

// Backward spreads the scalar output gradient over every input element.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Expand(outputGrad, op.input.Shape())}
}

// Inputs returns the input tensor.
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the scalar output tensor.
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}
