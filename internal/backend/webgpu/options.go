// Package webgpu implements the WebGPU backend.
//
// The segment-sum and gather kernels run as WGSL compute shaders through
// go-webgpu (github.com/go-webgpu/webgpu, zero-CGO bindings) for float32
// data. Every other primitive, and every other dtype, is delegated to an
// embedded CPU backend. GPU execution is only available on windows builds;
// elsewhere New reports ErrUnavailable.
package webgpu

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/born-ml/segment/internal/backend/cpu"
)

// ErrUnavailable is returned by New when no WebGPU adapter can be used.
var ErrUnavailable = errors.New("webgpu: not available")

// Option configures a Backend.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	fallback *cpu.CPUBackend
}

func defaultConfig() config {
	return config{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		fallback: cpu.New(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger used for adapter selection, shader compilation
// and CPU fallbacks. All messages are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFallback sets the CPU backend that runs the primitives without a GPU
// kernel.
func WithFallback(backend *cpu.CPUBackend) Option {
	return func(c *config) {
		if backend != nil {
			c.fallback = backend
		}
	}
}
