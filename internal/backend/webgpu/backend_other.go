//go:build !windows

package webgpu

import (
	"github.com/born-ml/segment/internal/backend/cpu"
	"github.com/born-ml/segment/internal/tensor"
)

// Backend is the WebGPU backend. GPU kernels are only built on windows;
// New always fails on this platform.
type Backend struct {
	*cpu.CPUBackend
}

// New reports ErrUnavailable: there is no WebGPU runtime on this platform.
func New(opts ...Option) (*Backend, error) {
	cfg := newConfig(opts)
	cfg.logger.Debug("webgpu unavailable on this platform")
	return nil, ErrUnavailable
}

// Release is a no-op.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// IsAvailable always reports false on this platform.
func IsAvailable() bool {
	return false
}
