// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend.
//
// Float32 segment sums and gathers run as compute shaders; all other
// primitives run on an embedded CPU backend. GPU kernels are built on
// windows only. On other platforms New returns ErrUnavailable.
//
// Example:
//
//	import (
//	    "github.com/born-ml/segment/autodiff"
//	    "github.com/born-ml/segment/backend/cpu"
//	    "github.com/born-ml/segment/backend/webgpu"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New(webgpu.WithLogger(slog.Default()))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    backend := autodiff.New(gpu)
//	    // ...
//	}
package webgpu

import (
	"log/slog"

	internalcpu "github.com/born-ml/segment/internal/backend/cpu"
	internalwebgpu "github.com/born-ml/segment/internal/backend/webgpu"
	"github.com/born-ml/segment/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Option configures a Backend.
type Option = internalwebgpu.Option

// ErrUnavailable is returned by New when no WebGPU adapter can be used.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
// Call Release() when done to free GPU resources.
func New(opts ...Option) (*Backend, error) {
	return internalwebgpu.New(opts...)
}

// WithLogger sets the logger for adapter selection, shader compilation and
// CPU fallbacks (debug level).
func WithLogger(logger *slog.Logger) Option {
	return internalwebgpu.WithLogger(logger)
}

// WithFallback sets the CPU backend used for primitives without a GPU kernel.
func WithFallback(backend *internalcpu.CPUBackend) Option {
	return internalwebgpu.WithFallback(backend)
}

// IsAvailable checks if WebGPU is available on the current system.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    backend = autodiff.New(gpu)
//	} else {
//	    backend = autodiff.New(cpu.New())
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
