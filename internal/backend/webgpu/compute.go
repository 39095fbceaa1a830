//go:build windows

package webgpu

import (
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"

	"github.com/born-ml/segment/internal/tensor"
)

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)
	b.logger.Debug("webgpu shader compiled", "shader", name)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Auto layout (nil layout).
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer initialised with data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), size), data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer rounded up to 16 bytes.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	alignedSize := (uint64(len(data)) + 15) &^ 15

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), alignedSize), data)
	buffer.Unmap()

	return buffer
}

// readBuffer copies a storage buffer back to host memory through a staging
// buffer.
func (b *Backend) readBuffer(src *wgpu.Buffer, size uint64) ([]byte, error) {
	staging := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	b.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, errors.Wrap(err, "map staging buffer")
	}

	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	out := append([]byte(nil), unsafe.Slice((*byte)(mappedPtr), size)...)
	staging.Unmap()

	return out, nil
}

// runIndexedKernel dispatches a shader with bindings (x, indices, result,
// params) and one invocation per output element. The result is float32.
func (b *Backend) runIndexedKernel(name, code string, x *tensor.RawTensor, idx []int64,
	outShape tensor.Shape, params kernelParams,
) (*tensor.RawTensor, error) {
	numElements := outShape.NumElements()

	shader := b.compileShader(name, code)
	if shader == nil {
		return nil, errors.Errorf("webgpu: failed to compile shader %s", name)
	}
	pipeline := b.getOrCreatePipeline(name, shader)

	//nolint:gosec // G115: sizes are non-negative
	xSize, resultSize := uint64(x.ByteSize()), uint64(numElements*4)
	idxData := int32Bytes(idx)

	bufferX := b.createBuffer(x.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferX.Release()

	bufferIdx := b.createBuffer(idxData, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferIdx.Release()

	bufferResult := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  resultSize,
	})
	defer bufferResult.Release()

	bufferParams := b.createUniformBuffer(params.bytes())
	defer bufferParams.Release()

	bindGroup := b.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferX, 0, xSize),
		wgpu.BufferBindingEntry(1, bufferIdx, 0, uint64(len(idxData))),
		wgpu.BufferBindingEntry(2, bufferResult, 0, resultSize),
		wgpu.BufferBindingEntry(3, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)

	//nolint:gosec // G115: workgroup count is non-negative
	workgroups := uint32((numElements + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	b.queue.Submit(encoder.Finish(nil))

	data, err := b.readBuffer(bufferResult, resultSize)
	if err != nil {
		return nil, err
	}

	result, err := tensor.NewRaw(outShape, tensor.Float32, tensor.WebGPU)
	if err != nil {
		return nil, err
	}
	copy(result.Data(), data)
	return result, nil
}
