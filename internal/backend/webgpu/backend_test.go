//go:build windows

package webgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/segment/internal/backend/cpu"
	"github.com/born-ml/segment/internal/tensor"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := New()
	if err != nil {
		t.Logf("WebGPU not available: %v", err)
		t.Skip("WebGPU not available on this system")
	}
	t.Cleanup(backend.Release)
	return backend
}

func TestIsAvailable(t *testing.T) {
	t.Logf("WebGPU available: %v", IsAvailable())
}

func TestNew(t *testing.T) {
	backend := newTestBackend(t)

	if backend.Name() == "" {
		t.Error("Backend name should not be empty")
	}
	t.Logf("Backend name: %s", backend.Name())

	if backend.Device() != tensor.WebGPU {
		t.Errorf("Expected device WebGPU, got %v", backend.Device())
	}

	var _ tensor.Backend = backend
}

func TestUnsortedSegmentSum_MatchesCPU(t *testing.T) {
	backend := newTestBackend(t)
	ref := cpu.New()

	const rows, cols, segments = 50, 7, 6
	data := make([]float32, rows*cols)
	for i := range data {
		data[i] = float32(i%11) * 0.5
	}
	idData := make([]int32, rows)
	for i := range idData {
		idData[i] = int32(i%(segments+2)) - 2
	}

	x := rawOf(t, data, rows, cols)
	ids := rawOf(t, idData, rows)

	got := backend.UnsortedSegmentSum(x, ids, segments)
	want := ref.UnsortedSegmentSum(x, ids, segments)

	assert.Equal(t, want.Shape(), got.Shape())
	assert.InDeltaSlice(t, want.AsFloat32(), got.AsFloat32(), 1e-4)
}

func TestUnsortedSegmentSum_Fallback(t *testing.T) {
	backend := newTestBackend(t)

	x := rawOf(t, []int64{1, 2, 3}, 3)
	ids := rawOf(t, []int64{0, 1, 0}, 3)

	got := backend.UnsortedSegmentSum(x, ids, 2)
	assert.Equal(t, []int64{4, 2}, got.AsInt64())

	assert.Panics(t, func() { backend.UnsortedSegmentSum(x, rawOf(t, []int64{0, 5, 0}, 3), 2) })
}

func TestGather_MatchesCPU(t *testing.T) {
	backend := newTestBackend(t)
	ref := cpu.New()

	x := rawOf(t, []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, 2, 3, 2)

	tests := []struct {
		axis int
		idx  []int64
	}{
		{0, []int64{1, 0, 1}},
		{1, []int64{2, 2, 0}},
		{2, []int64{1}},
	}
	for _, tt := range tests {
		idx := rawOf(t, tt.idx, len(tt.idx))
		got := backend.Gather(x, idx, tt.axis)
		want := ref.Gather(x, idx, tt.axis)
		require.Equal(t, want.Shape(), got.Shape())
		assert.Equal(t, want.AsFloat32(), got.AsFloat32(), "axis %d", tt.axis)
	}
}
