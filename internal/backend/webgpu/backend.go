//go:build windows

package webgpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"

	"github.com/born-ml/segment/internal/backend/cpu"
	"github.com/born-ml/segment/internal/tensor"
)

// Backend runs UnsortedSegmentSum and Gather on the GPU and everything else
// on the embedded CPU backend.
type Backend struct {
	*cpu.CPUBackend

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	adapterInfo *wgpu.AdapterInfo
	logger      *slog.Logger
}

// New creates a new WebGPU backend.
// Returns an error wrapping ErrUnavailable if WebGPU is not available or
// initialization fails.
func New(opts ...Option) (backend *Backend, err error) {
	cfg := newConfig(opts)

	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = errors.Wrapf(ErrUnavailable, "native library: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, errors.Wrapf(ErrUnavailable, "request adapter: %v", adapterErr)
	}

	adapterInfo := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrapf(ErrUnavailable, "request device: %v", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(ErrUnavailable, "no device queue")
	}

	cfg.logger.Debug("webgpu adapter selected",
		"device", adapterInfo.Device,
		"vendor", adapterInfo.Vendor,
		"architecture", adapterInfo.Architecture)

	return &Backend{
		CPUBackend:  cfg.fallback,
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		shaders:     make(map[string]*wgpu.ShaderModule),
		pipelines:   make(map[string]*wgpu.ComputePipeline),
		adapterInfo: &adapterInfo,
		logger:      cfg.logger,
	}, nil
}

// Release frees all GPU resources. The backend must not be used afterwards.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil

	for _, s := range b.shaders {
		s.Release()
	}
	b.shaders = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// Name returns the backend name including the adapter, when known.
func (b *Backend) Name() string {
	if b.adapterInfo != nil {
		return fmt.Sprintf("WebGPU (%s %s)", b.adapterInfo.Device, b.adapterInfo.Vendor)
	}
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// AdapterInfo returns information about the GPU adapter.
func (b *Backend) AdapterInfo() *wgpu.AdapterInfo {
	return b.adapterInfo
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}
