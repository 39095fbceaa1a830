package cpu

import (
	"fmt"

	"github.com/born-ml/segment/internal/parallel"
	"github.com/born-ml/segment/internal/tensor"
)

// Sum returns the sum of all elements as a scalar (shape []) tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("sum", tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = sumAll(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = sumAll(x.AsFloat64())
	case tensor.Int32:
		result.AsInt32()[0] = sumAll(x.AsInt32())
	case tensor.Int64:
		result.AsInt64()[0] = sumAll(x.AsInt64())
	case tensor.Uint8:
		result.AsUint8()[0] = sumAll(x.AsUint8())
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

func sumAll[E number](data []E) E {
	var s E
	for _, v := range data {
		s += v
	}
	return s
}

// UnsortedSegmentSum computes out[s] = Σ x[i] over every row i with
// segmentIDs[i] == s.
//
// x has shape [N, d1, ..., dk], segmentIDs is a 1-D int32/int64 tensor of
// length N and the result has shape [numSegments, d1, ..., dk]. Slots that no
// row maps to stay zero. Rows whose id is negative are skipped; an id
// >= numSegments panics.
//
// Example:
//
//	x:          [1, 2, 3, 4]
//	segmentIDs: [1, 2, 0, 1]
//	output:     [3, 5, 2]  (numSegments = 3)
//
// The kernel splits the trailing columns across workers; every worker owns
// a disjoint set of output columns, so no synchronisation is needed.
func (cpu *CPUBackend) UnsortedSegmentSum(x, segmentIDs *tensor.RawTensor, numSegments int) *tensor.RawTensor {
	ids := checkSegmentArgs(x, segmentIDs, numSegments)

	outShape := x.Shape().WithDim(0, numSegments)
	result := cpu.newResult("unsortedSegmentSum", outShape, x.DType())

	_, _, inner := sliceLayout(x.Shape(), 0)

	switch x.DType() {
	case tensor.Float32:
		segmentSum(result.AsFloat32(), x.AsFloat32(), ids, inner, cpu.parallel)
	case tensor.Float64:
		segmentSum(result.AsFloat64(), x.AsFloat64(), ids, inner, cpu.parallel)
	case tensor.Int32:
		segmentSum(result.AsInt32(), x.AsInt32(), ids, inner, cpu.parallel)
	case tensor.Int64:
		segmentSum(result.AsInt64(), x.AsInt64(), ids, inner, cpu.parallel)
	case tensor.Uint8:
		segmentSum(result.AsUint8(), x.AsUint8(), ids, inner, cpu.parallel)
	default:
		panic(fmt.Sprintf("unsortedSegmentSum: unsupported dtype %s", x.DType()))
	}

	return result
}

// checkSegmentArgs enforces the kernel preconditions and returns the ids.
func checkSegmentArgs(x, segmentIDs *tensor.RawTensor, numSegments int) []int64 {
	if len(x.Shape()) == 0 {
		panic("unsortedSegmentSum: input must have rank >= 1")
	}
	if !segmentIDs.DType().IsSignedInteger() {
		panic(fmt.Sprintf("unsortedSegmentSum: segment ids must be int32 or int64, got %s", segmentIDs.DType()))
	}
	if len(segmentIDs.Shape()) != 1 || segmentIDs.Shape()[0] != x.Shape()[0] {
		panic(fmt.Sprintf("unsortedSegmentSum: segment ids shape %v does not match leading dimension of %v",
			segmentIDs.Shape(), x.Shape()))
	}
	if numSegments < 0 {
		panic(fmt.Sprintf("unsortedSegmentSum: negative numSegments %d", numSegments))
	}

	ids := segmentIDs.Indices()
	for i, s := range ids {
		if s >= int64(numSegments) {
			panic(fmt.Sprintf("unsortedSegmentSum: segment id %d at position %d out of range [0, %d)",
				s, i, numSegments))
		}
	}
	return ids
}

func segmentSum[E number](dst, src []E, ids []int64, inner int, cfg parallel.Config) {
	parallel.ForRange(inner, func(start, end int) {
		for i, s := range ids {
			if s < 0 {
				continue
			}
			row := src[i*inner : (i+1)*inner]
			out := dst[int(s)*inner : (int(s)+1)*inner]
			for j := start; j < end; j++ {
				out[j] += row[j]
			}
		}
	}, cfg)
}
