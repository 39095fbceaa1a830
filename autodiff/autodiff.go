// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation (backpropagation)
// using a gradient tape. It wraps any backend to add autodiff capabilities.
//
// Example:
//
//	import (
//	    "github.com/born-ml/segment/autodiff"
//	    "github.com/born-ml/segment/backend/cpu"
//	    "github.com/born-ml/segment/segment"
//	    "github.com/born-ml/segment/tensor"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    backend.Tape().StartRecording()
//
//	    x, _ := tensor.FromSlice([]float32{10, 20}, tensor.Shape{2}, backend)
//	    ids, _ := tensor.FromSlice([]int32{-1, 0}, tensor.Shape{2}, backend)
//	    sums, _ := segment.Sum(x, ids, 1, 0)
//
//	    grads := autodiff.Backward(sums, backend)
//	    _ = grads[x.Raw()] // [0, 1]
//	}
package autodiff

import (
	"github.com/born-ml/segment/internal/autodiff"
	"github.com/born-ml/segment/internal/autodiff/ops"
	"github.com/born-ml/segment/internal/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// Operation is a recorded differentiable operation.
type Operation = ops.Operation

// UnsortedSegmentSumOp is the tape record of an unsorted segment sum.
type UnsortedSegmentSumOp = ops.UnsortedSegmentSumOp

// BackwardCapable interface for backends that support backpropagation.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes gradients via backpropagation.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}
