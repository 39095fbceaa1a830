package segment

import (
	"github.com/born-ml/segment/internal/tensor"
)

const (
	opUnsortedSum = "unsortedSegmentSum"
	opGradient    = "unsortedSegmentSumGrad"
)

// checkOperands rejects missing arguments and wrong dtypes. It is shared by the
// forward and backward entry points; x is the reduced tensor or the upstream
// gradient.
func checkOperands(op string, b tensor.Backend, x, segmentIDs *tensor.RawTensor, xName string) error {
	switch {
	case b == nil:
		return invalid(op, "backend", ErrMissingTensor, "backend is nil")
	case x == nil:
		return invalid(op, xName, ErrMissingTensor, "%s is nil", xName)
	case segmentIDs == nil:
		return invalid(op, "segmentIDs", ErrMissingTensor, "segmentIDs is nil")
	}

	if !segmentIDs.DType().IsSignedInteger() {
		return invalid(op, "segmentIDs", ErrInvalidDType,
			"segment ids must be int32 or int64, got %s", segmentIDs.DType())
	}
	if !x.DType().IsNumeric() {
		return invalid(op, xName, ErrInvalidDType, "cannot sum %s values", x.DType())
	}
	return nil
}

// checkIDs verifies that segmentIDs is 1-D and, when length >= 0, has that
// many entries. It returns the ids widened to int64.
func checkIDs(op string, segmentIDs *tensor.RawTensor, length int) ([]int64, error) {
	if len(segmentIDs.Shape()) != 1 {
		var want tensor.Shape
		if length >= 0 {
			want = tensor.Shape{length}
		}
		return nil, &ShapeMismatchError{
			Op:      op,
			Want:    want,
			Got:     segmentIDs.Shape(),
			Details: "segment ids must be 1-D",
		}
	}
	if length >= 0 && segmentIDs.Shape()[0] != length {
		return nil, &ShapeMismatchError{
			Op:      op,
			Want:    tensor.Shape{length},
			Got:     segmentIDs.Shape(),
			Details: "segment ids length must equal the size of the reduced axis",
		}
	}
	return segmentIDs.Indices(), nil
}

// checkIDRange rejects any id >= numSegments. Negative ids are legal.
func checkIDRange(op string, ids []int64, numSegments int) error {
	for i, s := range ids {
		if s >= int64(numSegments) {
			return invalid(op, "segmentIDs", ErrSegmentIDOutOfRange,
				"segment id %d at position %d is not below numSegments %d", s, i, numSegments)
		}
	}
	return nil
}

// validateSum checks every argument of UnsortedSum before anything is
// dispatched to the backend.
func validateSum(b tensor.Backend, x, segmentIDs *tensor.RawTensor, numSegments, axis int) error {
	if err := checkOperands(opUnsortedSum, b, x, segmentIDs, "x"); err != nil {
		return err
	}
	if numSegments < 0 {
		return invalid(opUnsortedSum, "numSegments", ErrInvalidNumSegments,
			"numSegments must be non-negative, got %d", numSegments)
	}

	rank := len(x.Shape())
	if axis < 0 || axis >= rank {
		return &RangeError{Op: opUnsortedSum, Axis: axis, Rank: rank}
	}

	ids, err := checkIDs(opUnsortedSum, segmentIDs, x.Shape()[axis])
	if err != nil {
		return err
	}
	return checkIDRange(opUnsortedSum, ids, numSegments)
}

// validateGradient checks the arguments of ReconstructGradient. The ids may
// have any length; each non-negative id must address a slice of dy.
func validateGradient(b tensor.Backend, dy, segmentIDs *tensor.RawTensor, axis int) error {
	if err := checkOperands(opGradient, b, dy, segmentIDs, "dy"); err != nil {
		return err
	}

	rank := len(dy.Shape())
	if axis < 0 || axis >= rank {
		return &RangeError{Op: opGradient, Axis: axis, Rank: rank}
	}

	ids, err := checkIDs(opGradient, segmentIDs, -1)
	if err != nil {
		return err
	}
	return checkIDRange(opGradient, ids, dy.Shape()[axis])
}
