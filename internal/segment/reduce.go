package segment

import (
	"github.com/pkg/errors"

	"github.com/born-ml/segment/internal/tensor"
)

// UnsortedSum sums the slices of x along axis into numSegments groups.
//
// Slice i of x (taken along axis) is added into group segmentIDs[i]. The
// result has x's shape with dimension axis replaced by numSegments; groups
// that receive no slice are zero. Slices with a negative id are left out of
// every group. An id >= numSegments is rejected.
//
// All arguments are validated before the backend is called. On an autodiff
// backend the reduction is recorded on the tape, so the gradient with
// respect to x is available after a backward pass.
//
// Example:
//
//	x:           [1, 2, 3, 4]
//	segmentIDs:  [1, 2, 0, 1]
//	numSegments: 3
//	result:      [3, 5, 2]
func UnsortedSum(b tensor.Backend, x, segmentIDs *tensor.RawTensor, numSegments, axis int) (*tensor.RawTensor, error) {
	if err := validateSum(b, x, segmentIDs, numSegments, axis); err != nil {
		return nil, errors.WithMessagef(err, "unsorted segment sum along axis %d", axis)
	}

	permuted, perm, _, err := Normalize(b, x, axis)
	if err != nil {
		return nil, errors.WithMessagef(err, "unsorted segment sum along axis %d", axis)
	}

	reduced := b.UnsortedSegmentSum(permuted, segmentIDs, numSegments)

	return Denormalize(b, reduced, perm), nil
}

// OutputShape returns the shape UnsortedSum produces for an input of shape
// inShape.
func OutputShape(inShape tensor.Shape, numSegments, axis int) (tensor.Shape, error) {
	if axis < 0 || axis >= len(inShape) {
		return nil, &RangeError{Op: opUnsortedSum, Axis: axis, Rank: len(inShape)}
	}
	if numSegments < 0 {
		return nil, invalid(opUnsortedSum, "numSegments", ErrInvalidNumSegments,
			"numSegments must be non-negative, got %d", numSegments)
	}
	return inShape.WithDim(axis, numSegments), nil
}
