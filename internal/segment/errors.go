package segment

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/segment/internal/tensor"
)

// Error kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	// ErrMissingTensor is returned when a required tensor argument or the
	// backend is nil.
	ErrMissingTensor = errors.New("missing required argument")

	// ErrInvalidDType is returned when segment ids are not int32/int64 or the
	// reduced tensor is not numeric.
	ErrInvalidDType = errors.New("invalid dtype")

	// ErrInvalidNumSegments is returned for a negative segment count.
	ErrInvalidNumSegments = errors.New("invalid number of segments")

	// ErrSegmentIDOutOfRange is returned when a segment id is >= numSegments.
	ErrSegmentIDOutOfRange = errors.New("segment id out of range")

	// ErrShapeMismatch is returned when segment ids or an upstream gradient
	// disagree with the shape they are paired with.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrAxisOutOfRange is returned for an axis outside [0, rank).
	ErrAxisOutOfRange = errors.New("axis out of range")
)

// ValidationError reports a malformed call argument.
type ValidationError struct {
	Op      string // operation that rejected the argument
	Arg     string // argument name
	Details string
	Kind    error // one of the validation sentinels
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Arg, e.Details)
}

// Unwrap returns the error kind.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// ShapeMismatchError reports a tensor whose shape does not line up with the
// shape it is paired with.
type ShapeMismatchError struct {
	Op      string
	Want    tensor.Shape
	Got     tensor.Shape
	Details string
}

func (e *ShapeMismatchError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: shape mismatch: want %v, got %v", e.Op, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: shape mismatch: %s: want %v, got %v", e.Op, e.Details, e.Want, e.Got)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeMismatchError) Unwrap() error {
	return ErrShapeMismatch
}

// RangeError reports an axis outside [0, Rank).
type RangeError struct {
	Op   string
	Axis int
	Rank int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: axis %d out of range [0, %d)", e.Op, e.Axis, e.Rank)
}

// Unwrap returns ErrAxisOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrAxisOutOfRange
}

func invalid(op, arg string, kind error, format string, args ...any) error {
	return &ValidationError{
		Op:      op,
		Arg:     arg,
		Details: fmt.Sprintf(format, args...),
		Kind:    kind,
	}
}
