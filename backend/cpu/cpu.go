// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/segment/internal/backend/cpu"
	"github.com/born-ml/segment/internal/parallel"
	"github.com/born-ml/segment/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// ParallelConfig controls how kernels fan out across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns one worker per CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig returns a configuration that never spawns goroutines.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/segment/backend/cpu"
//	    "github.com/born-ml/segment/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
