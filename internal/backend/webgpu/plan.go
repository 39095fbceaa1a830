package webgpu

import (
	"encoding/binary"
	"math"

	"github.com/born-ml/segment/internal/tensor"
)

// dispatchPlan describes one GPU kernel launch. A non-empty skip names the
// reason the call must run on the CPU backend instead; the CPU backend then
// either computes the result or panics on the violated precondition.
type dispatchPlan struct {
	outShape tensor.Shape
	indices  []int64
	params   kernelParams
	skip     string
}

// kernelParams is the 16-byte uniform block shared by the shaders.
type kernelParams [4]uint32

func (p kernelParams) bytes() []byte {
	buf := make([]byte, 16)
	for i, v := range p {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// int32Bytes narrows validated indices to the i32 layout the shaders read.
// Negative values become -1.
func int32Bytes(idx []int64) []byte {
	buf := make([]byte, 4*len(idx))
	for i, v := range idx {
		if v < 0 {
			v = -1
		}
		//nolint:gosec // G115: indices are bounded by a tensor dimension or -1
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(v)))
	}
	return buf
}

func fallback(reason string) dispatchPlan {
	return dispatchPlan{skip: reason}
}

// fitsU32 reports whether every value fits the shaders' u32/i32 arithmetic.
func fitsU32(values ...int) bool {
	for _, v := range values {
		if v < 0 || v > math.MaxInt32 {
			return false
		}
	}
	return true
}

// planSegmentSum checks whether UnsortedSegmentSum(x, ids, n) can run on the
// segment-sum shader.
func planSegmentSum(x, segmentIDs *tensor.RawTensor, numSegments int) dispatchPlan {
	switch {
	case x.DType() != tensor.Float32:
		return fallback("dtype " + x.DType().String())
	case len(x.Shape()) == 0 || !segmentIDs.DType().IsSignedInteger():
		return fallback("invalid arguments")
	case len(segmentIDs.Shape()) != 1 || segmentIDs.Shape()[0] != x.Shape()[0]:
		return fallback("invalid arguments")
	case numSegments < 0:
		return fallback("invalid arguments")
	}

	rows := x.Shape()[0]
	outShape := x.Shape().WithDim(0, numSegments)
	size := outShape.NumElements()
	if rows == 0 || size == 0 {
		return fallback("empty")
	}

	ids := segmentIDs.Indices()
	for _, s := range ids {
		if s >= int64(numSegments) {
			return fallback("invalid arguments")
		}
	}

	inner := size / numSegments
	if !fitsU32(rows, inner, numSegments, size, x.NumElements()) {
		return fallback("too large")
	}

	//nolint:gosec // G115: bounded by fitsU32
	return dispatchPlan{
		outShape: outShape,
		indices:  ids,
		params:   kernelParams{uint32(rows), uint32(inner), uint32(numSegments), uint32(size)},
	}
}

// planGather checks whether Gather(x, indices, axis) can run on the gather
// shader.
func planGather(x, indices *tensor.RawTensor, axis int) dispatchPlan {
	switch {
	case x.DType() != tensor.Float32:
		return fallback("dtype " + x.DType().String())
	case !indices.DType().IsSignedInteger() || len(indices.Shape()) != 1:
		return fallback("invalid arguments")
	case axis < 0 || axis >= len(x.Shape()):
		return fallback("invalid arguments")
	}

	idx := indices.Indices()
	dim := x.Shape()[axis]
	for _, v := range idx {
		if v < 0 || v >= int64(dim) {
			return fallback("invalid arguments")
		}
	}

	outShape := x.Shape().WithDim(axis, len(idx))
	size := outShape.NumElements()
	if size == 0 {
		return fallback("empty")
	}

	inner := 1
	for _, d := range x.Shape()[axis+1:] {
		inner *= d
	}
	if !fitsU32(dim, inner, len(idx), size, x.NumElements()) {
		return fallback("too large")
	}

	//nolint:gosec // G115: bounded by fitsU32
	return dispatchPlan{
		outShape: outShape,
		indices:  idx,
		params:   kernelParams{uint32(dim), uint32(inner), uint32(len(idx)), uint32(size)},
	}
}
