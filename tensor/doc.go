// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors and the backend contract used by
// the segment reduction operators.
//
// # Overview
//
// This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for element-wise primitives
//   - Device abstraction (CPU, WebGPU)
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/segment/backend/cpu"
//	    "github.com/born-ml/segment/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
//	    y := x.Transpose()
//	    total := x.Mul(y).Sum()
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers, also used for segment ids)
//   - uint8 (unsigned integers)
//   - bool (boolean masks)
//
// # Memory Management
//
// Buffers are reference-counted. Backend primitives always allocate a new
// result, so a tensor handed to an operation keeps its values.
package tensor
