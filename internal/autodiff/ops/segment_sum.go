package ops

import (
	"github.com/born-ml/segment/internal/segment"
	"github.com/born-ml/segment/internal/tensor"
)

// UnsortedSegmentSumOp records an unsorted segment sum:
//
//	output[s] = Σ input[i] over every i with segmentIDs[i] == s  (along axis)
//
// Backward ("gather, drop negatives"):
//
//	grad_input[i] = outputGrad[segmentIDs[i]]  if segmentIDs[i] >= 0
//	grad_input[i] = 0                          otherwise
//
// The record holds the segment ids and the axis; the backward pass needs
// nothing else from the forward call. The segment ids receive no gradient.
type UnsortedSegmentSumOp struct {
	input       *tensor.RawTensor
	segmentIDs  *tensor.RawTensor
	numSegments int
	axis        int
	output      *tensor.RawTensor
}

// NewUnsortedSegmentSumOp creates a new UnsortedSegmentSumOp.
func NewUnsortedSegmentSumOp(input, segmentIDs *tensor.RawTensor, numSegments, axis int, output *tensor.RawTensor) *UnsortedSegmentSumOp {
	return &UnsortedSegmentSumOp{
		input:       input,
		segmentIDs:  segmentIDs,
		numSegments: numSegments,
		axis:        axis,
		output:      output,
	}
}

// Inputs returns the reduced tensor.
func (op *UnsortedSegmentSumOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the per-segment sums.
func (op *UnsortedSegmentSumOp) Output() *tensor.RawTensor {
	return op.output
}

// SegmentIDs returns the recorded segment ids.
func (op *UnsortedSegmentSumOp) SegmentIDs() *tensor.RawTensor {
	return op.segmentIDs
}

// NumSegments returns the recorded segment count.
func (op *UnsortedSegmentSumOp) NumSegments() int {
	return op.numSegments
}

// Axis returns the axis the segments were taken along.
func (op *UnsortedSegmentSumOp) Axis() int {
	return op.axis
}

// Gradient computes the gradient with respect to the input.
//
// outputGrad must have the shape of the recorded output; otherwise a
// *segment.ShapeMismatchError is returned.
func (op *UnsortedSegmentSumOp) Gradient(outputGrad *tensor.RawTensor, backend tensor.Backend) (*tensor.RawTensor, error) {
	if outputGrad == nil {
		return nil, &segment.ValidationError{
			Op:      "unsortedSegmentSumGrad",
			Arg:     "outputGrad",
			Details: "outputGrad is nil",
			Kind:    segment.ErrMissingTensor,
		}
	}
	if !outputGrad.Shape().Equal(op.output.Shape()) {
		return nil, &segment.ShapeMismatchError{
			Op:      "unsortedSegmentSumGrad",
			Want:    op.output.Shape(),
			Got:     outputGrad.Shape(),
			Details: "upstream gradient must match the segment sum output",
		}
	}
	return segment.ReconstructGradient(backend, outputGrad, op.segmentIDs, op.axis)
}

// Backward computes the input gradient and panics on a malformed upstream
// gradient, like every other operation on the tape.
func (op *UnsortedSegmentSumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad, err := op.Gradient(outputGrad, backend)
	if err != nil {
		panic(err)
	}
	return []*tensor.RawTensor{grad}
}
