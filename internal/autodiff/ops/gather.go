package ops

import (
	"github.com/born-ml/segment/internal/tensor"
)

// GatherOp represents a gather operation that selects slices along an axis.
//
// Forward: output = Gather(input, index, axis)
//
// Backward:
//
//	Scatter-add gradOutput into a zero gradInput at the positions given by
//	index. Indices that repeat accumulate.
//
// Example:
//
//	input: [10, 20, 30, 40]
//	index: [2, 0, 2] along axis=0
//	output: [30, 10, 30]
//	gradOutput: [a, b, c]
//	gradInput: [b, 0, a+c, 0]
type GatherOp struct {
	input  *tensor.RawTensor // Input tensor
	axis   int               // Axis along which gather happened
	index  *tensor.RawTensor // 1-D int32/int64 index tensor
	output *tensor.RawTensor // Gathered output tensor
}

// NewGatherOp creates a new gather operation.
func NewGatherOp(input, index *tensor.RawTensor, axis int, output *tensor.RawTensor) *GatherOp {
	return &GatherOp{
		input:  input,
		axis:   axis,
		index:  index,
		output: output,
	}
}

// Inputs returns the input tensor.
// Note: index tensor doesn't need gradient.
func (op *GatherOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *GatherOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward scatters gradOutput back onto the input positions.
//
// The scatter-add is an unsorted segment sum whose segment ids are the
// gather indices and whose segment count is the input size along axis.
func (op *GatherOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	size := op.input.Shape()[op.axis]
	gradInput := scatterAdd(gradOutput, op.index, size, op.axis, backend)
	return []*tensor.RawTensor{gradInput}
}
