//go:build windows

package webgpu

import (
	"github.com/born-ml/segment/internal/tensor"
)

// UnsortedSegmentSum runs the segment-sum shader for float32 input.
// Other dtypes, empty results and invalid arguments go to the CPU backend,
// which also panics on violated preconditions.
func (b *Backend) UnsortedSegmentSum(x, segmentIDs *tensor.RawTensor, numSegments int) *tensor.RawTensor {
	plan := planSegmentSum(x, segmentIDs, numSegments)
	if plan.skip != "" {
		b.logger.Debug("webgpu fallback", "op", "unsortedSegmentSum", "reason", plan.skip)
		return b.CPUBackend.UnsortedSegmentSum(x, segmentIDs, numSegments)
	}

	result, err := b.runIndexedKernel("segmentSum", segmentSumShader, x, plan.indices, plan.outShape, plan.params)
	if err != nil {
		b.logger.Debug("webgpu fallback", "op", "unsortedSegmentSum", "error", err)
		return b.CPUBackend.UnsortedSegmentSum(x, segmentIDs, numSegments)
	}
	return result
}

// Gather runs the gather shader for float32 input and delegates the rest to
// the CPU backend.
func (b *Backend) Gather(x, indices *tensor.RawTensor, axis int) *tensor.RawTensor {
	plan := planGather(x, indices, axis)
	if plan.skip != "" {
		b.logger.Debug("webgpu fallback", "op", "gather", "reason", plan.skip)
		return b.CPUBackend.Gather(x, indices, axis)
	}

	result, err := b.runIndexedKernel("gather", gatherShader, x, plan.indices, plan.outShape, plan.params)
	if err != nil {
		b.logger.Debug("webgpu fallback", "op", "gather", "error", err)
		return b.CPUBackend.Gather(x, indices, axis)
	}
	return result
}
