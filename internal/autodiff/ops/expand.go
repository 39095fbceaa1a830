package ops

import "github.com/born-ml/segment/internal/tensor"

// ExpandOp records a broadcast of input to a larger shape.
//
// Backward sums the output gradient over the broadcast dimensions.
type ExpandOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewExpandOp creates a new ExpandOp.
func NewExpandOp(input, output *tensor.RawTensor) *ExpandOp {
	return &ExpandOp{
		input:  input,
		output: output,
	}
}

// Backward reduces the output gradient back to the input shape.
func (op *ExpandOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{reduceBroadcast(outputGrad, op.input.Shape(), backend)}
}

// Inputs returns the input tensor.
func (op *ExpandOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ExpandOp) Output() *tensor.RawTensor {
	return op.output
}
