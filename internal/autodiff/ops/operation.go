// Package ops defines operation interfaces and implementations for automatic differentiation.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: computed by the backend
//   - Backward pass: computes gradients for inputs given output gradient
//
// Supported operations:
//   - AddOp: element-wise addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - MulOp: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - SumOp: total sum (d(sum(x))/dx = 1)
//   - TransposeOp, ReshapeOp: layout changes, gradient is the inverse layout change
//   - GatherOp: slice selection, gradient is a scatter-add
//   - WhereOp: conditional selection
//   - UnsortedSegmentSumOp: grouped sum, gradient gathers per-segment
//     gradients back to the rows and zeroes rows with a negative id
package ops

import "github.com/born-ml/segment/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
//
// An Operation is an explicit record of what the backward pass needs: it
// captures immutable references only and may be invoked at most once per
// backward pass, or never.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
