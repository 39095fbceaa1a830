package ops

import (
	"github.com/born-ml/segment/internal/tensor"
)

// WhereOp represents a conditional selection: output = where(cond, x, y).
//
// Forward: output[i] = x[i] if cond[i] else y[i]
//
// Backward:
//
//	grad_x = where(cond, grad_out, 0)
//	grad_y = where(cond, 0, grad_out)
//
// The condition tensor has no gradient (it's boolean).
type WhereOp struct {
	condition *tensor.RawTensor // bool tensor
	x         *tensor.RawTensor // "true" branch values
	y         *tensor.RawTensor // "false" branch values
	output    *tensor.RawTensor // result tensor
}

// NewWhereOp creates a new where operation.
func NewWhereOp(condition, x, y, output *tensor.RawTensor) *WhereOp {
	return &WhereOp{
		condition: condition,
		x:         x,
		y:         y,
		output:    output,
	}
}

// Inputs returns the input tensors (x and y).
// Note: condition is not included as it has no gradient (boolean).
func (op *WhereOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.x, op.y}
}

// Output returns the output tensor.
func (op *WhereOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes gradients for x and y, reduced to their shapes when the
// forward pass broadcast them.
func (op *WhereOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	zeros := backend.Full(gradOutput.Shape(), gradOutput.DType(), 0)

	gradX := backend.Where(op.condition, gradOutput, zeros)
	gradY := backend.Where(op.condition, zeros, gradOutput)

	return []*tensor.RawTensor{
		reduceBroadcast(gradX, op.x.Shape(), backend),
		reduceBroadcast(gradY, op.y.Shape(), backend),
	}
}
