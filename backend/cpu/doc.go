// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32, Float64, Int32, Int64 and Uint8 arithmetic
//   - NumPy-compatible broadcasting
//   - An unsorted segment-sum kernel split across goroutines by output column
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/segment/backend/cpu"
//	    "github.com/born-ml/segment/segment"
//	    "github.com/born-ml/segment/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4}, backend)
//	    ids, _ := tensor.FromSlice([]int32{1, 2, 0, 1}, tensor.Shape{4}, backend)
//	    sums, _ := segment.Sum(x, ids, 3, 0) // [3, 5, 2]
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
