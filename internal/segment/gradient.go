package segment

import (
	"github.com/pkg/errors"

	"github.com/born-ml/segment/internal/tensor"
)

// ReconstructGradient maps the gradient of an unsorted segment sum back onto
// its input.
//
// dy is the gradient with respect to the reduced tensor, with the segment
// dimension at axis. The result has dy's shape with dimension axis replaced by
// len(segmentIDs): slice i is dy's slice segmentIDs[i], or zero when that id
// is negative.
//
// Negative ids are first clamped to 0 so that every gather index is valid,
// and the clamped rows are then masked out. A negative-id slice never
// contributed to the forward sum, so its gradient must be zero rather than
// the gradient of group 0.
//
// Example:
//
//	dy:         [7, 8, 9]
//	segmentIDs: [1, -1, 0, 1]
//	result:     [8, 0, 7, 8]
func ReconstructGradient(b tensor.Backend, dy, segmentIDs *tensor.RawTensor, axis int) (*tensor.RawTensor, error) {
	if err := validateGradient(b, dy, segmentIDs, axis); err != nil {
		return nil, errors.WithMessagef(err, "segment sum gradient along axis %d", axis)
	}

	// With zero segments every id is negative and there is nothing to gather.
	if dy.Shape()[axis] == 0 {
		return b.Full(dy.Shape().WithDim(axis, segmentIDs.NumElements()), dy.DType(), 0), nil
	}

	zero := b.Full(tensor.Shape{}, segmentIDs.DType(), 0)

	clipped := b.Maximum(segmentIDs, zero)
	gathered := b.Gather(dy, clipped, axis)

	positive := b.GreaterEqual(segmentIDs, zero)
	mask := b.Expand(b.Reshape(positive, maskShape(len(gathered.Shape()), axis, segmentIDs.NumElements())), gathered.Shape())

	zeros := b.Full(gathered.Shape(), gathered.DType(), 0)
	return b.Where(mask, gathered, zeros), nil
}

// maskShape returns a rank-dimensional shape of ones with n at axis, the
// shape that lines a per-id mask up with the gathered slices.
func maskShape(rank, axis, n int) tensor.Shape {
	shape := make(tensor.Shape, rank)
	for i := range shape {
		shape[i] = 1
	}
	shape[axis] = n
	return shape
}
