// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/born-ml/segment/internal/backend/cpu"
	"github.com/born-ml/segment/tensor"
)

// TestBackendInterface verifies that cpu.CPUBackend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.CPUBackend)(nil)
}

// TestRawTensorAPI verifies RawTensor type alias exposes expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", raw.DType())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}
	if n := raw.NumElements(); n != 6 {
		t.Errorf("NumElements() = %d, want 6", n)
	}
	if size := raw.ByteSize(); size != 6*4 {
		t.Errorf("ByteSize() = %d, want %d", size, 6*4)
	}
}

// TestGather verifies the generic gather wrapper.
func TestGather(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	idx, err := tensor.FromSlice([]int32{2, 0, 2}, tensor.Shape{3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	got := tensor.Gather(x, idx, 0).Data()
	want := []float32{30, 10, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Gather()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestZeroSizeShape verifies that empty dimensions are representable.
func TestZeroSizeShape(t *testing.T) {
	x := tensor.Zeros[float64](tensor.Shape{0, 3}, cpu.New())
	if x.NumElements() != 0 {
		t.Errorf("NumElements() = %d, want 0", x.NumElements())
	}
	if len(x.Data()) != 0 {
		t.Errorf("Data() has %d elements, want 0", len(x.Data()))
	}
}
