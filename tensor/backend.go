// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/segment/internal/tensor"

// Backend defines the primitive library that the segment operators are
// coded against. Backends handle the actual computation.
//
// Implementations:
//   - backend/cpu: Pure Go, parallel over trailing columns
//   - backend/webgpu: GPU segment-sum and gather kernels via WebGPU (Windows)
//
// Decorator backends for additional functionality:
//   - autodiff: Automatic differentiation (wraps any backend)
//
// Every method allocates its result; arguments are never modified.
type Backend interface {
	// Element-wise binary operations (NumPy broadcasting).
	Add(a, b *RawTensor) *RawTensor          // Element-wise addition.
	Mul(a, b *RawTensor) *RawTensor          // Element-wise multiplication.
	Maximum(a, b *RawTensor) *RawTensor      // Element-wise maximum.
	GreaterEqual(a, b *RawTensor) *RawTensor // a >= b as a bool tensor.
	Where(condition, x, y *RawTensor) *RawTensor

	// Reductions.
	Sum(x *RawTensor) *RawTensor                                            // Total sum (scalar result).
	UnsortedSegmentSum(x, segmentIDs *RawTensor, numSegments int) *RawTensor // Grouped sum along axis 0.

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor // Reshape tensor.
	Transpose(t *RawTensor, axes ...int) *RawTensor  // Transpose dimensions.
	Expand(x *RawTensor, shape Shape) *RawTensor     // Broadcast to shape.

	// Indexing operations.
	Gather(x, indices *RawTensor, axis int) *RawTensor // Select slices along axis.

	// Creation.
	Full(shape Shape, dtype DataType, value float64) *RawTensor // Constant tensor.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU", "WebGPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
