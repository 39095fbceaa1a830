// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package segment provides the unsorted segment-sum reduction and its
// gradient.
//
// Slice i of a tensor, taken along an axis, is summed into group
// segmentIDs[i]. Slices with a negative id belong to no group: they are left
// out of every sum and receive a zero gradient. Ids must be below the number
// of groups.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4}, backend)
//	ids, _ := tensor.FromSlice([]int32{1, 2, 0, 1}, tensor.Shape{4}, backend)
//
//	sums, err := segment.Sum(x, ids, 3, 0) // [3, 5, 2]
//	if err != nil {
//	    return err
//	}
//	grads := autodiff.Backward(sums, backend)
//	dx := grads[x.Raw()] // [1, 1, 1, 1]
package segment

import (
	"github.com/born-ml/segment/internal/segment"
	"github.com/born-ml/segment/internal/tensor"
)

// Error kinds, matched with errors.Is.
var (
	ErrMissingTensor       = segment.ErrMissingTensor
	ErrInvalidDType        = segment.ErrInvalidDType
	ErrInvalidNumSegments  = segment.ErrInvalidNumSegments
	ErrSegmentIDOutOfRange = segment.ErrSegmentIDOutOfRange
	ErrShapeMismatch       = segment.ErrShapeMismatch
	ErrAxisOutOfRange      = segment.ErrAxisOutOfRange
)

// ValidationError reports a malformed argument.
type ValidationError = segment.ValidationError

// ShapeMismatchError reports tensors whose shapes do not line up.
type ShapeMismatchError = segment.ShapeMismatchError

// RangeError reports an axis outside [0, rank).
type RangeError = segment.RangeError

// Permutation reorders dimensions so that a reduction axis comes first.
type Permutation = segment.Permutation

// NewPermutation returns the permutation moving axis to the front, or nil
// for axis 0.
func NewPermutation(rank, axis int) (Permutation, error) {
	return segment.NewPermutation(rank, axis)
}

// Sum sums the slices of x along axis into numSegments groups.
//
// The result has x's shape with dimension axis replaced by numSegments.
// On an autodiff backend with a recording tape the reduction is recorded,
// so the gradient with respect to x is produced by autodiff.Backward.
func Sum[T tensor.DType, I tensor.Index, B tensor.Backend](x *tensor.Tensor[T, B], segmentIDs *tensor.Tensor[I, B], numSegments, axis int) (*tensor.Tensor[T, B], error) {
	if x == nil || segmentIDs == nil {
		return nil, &segment.ValidationError{
			Op:      "unsortedSegmentSum",
			Arg:     "x",
			Details: "x and segmentIDs are required",
			Kind:    segment.ErrMissingTensor,
		}
	}
	out, err := segment.UnsortedSum(x.Backend(), x.Raw(), segmentIDs.Raw(), numSegments, axis)
	if err != nil {
		return nil, err
	}
	return tensor.New[T, B](out, x.Backend()), nil
}

// UnsortedSum is the untyped form of Sum.
func UnsortedSum(b tensor.Backend, x, segmentIDs *tensor.RawTensor, numSegments, axis int) (*tensor.RawTensor, error) {
	return segment.UnsortedSum(b, x, segmentIDs, numSegments, axis)
}

// ReconstructGradient maps dy, the gradient of a segment sum along axis,
// back onto the summed input: slice i of the result is dy's slice
// segmentIDs[i], or zero when that id is negative.
func ReconstructGradient(b tensor.Backend, dy, segmentIDs *tensor.RawTensor, axis int) (*tensor.RawTensor, error) {
	return segment.ReconstructGradient(b, dy, segmentIDs, axis)
}

// Gradient is the typed form of ReconstructGradient.
func Gradient[T tensor.DType, I tensor.Index, B tensor.Backend](dy *tensor.Tensor[T, B], segmentIDs *tensor.Tensor[I, B], axis int) (*tensor.Tensor[T, B], error) {
	if dy == nil || segmentIDs == nil {
		return nil, &segment.ValidationError{
			Op:      "unsortedSegmentSumGrad",
			Arg:     "dy",
			Details: "dy and segmentIDs are required",
			Kind:    segment.ErrMissingTensor,
		}
	}
	grad, err := segment.ReconstructGradient(dy.Backend(), dy.Raw(), segmentIDs.Raw(), axis)
	if err != nil {
		return nil, err
	}
	return tensor.New[T, B](grad, dy.Backend()), nil
}
