//go:build !windows

package webgpu

import (
	"testing"

	"github.com/pkg/errors"
)

func TestNew_Unavailable(t *testing.T) {
	backend, err := New()
	if backend != nil {
		t.Fatalf("expected nil backend, got %v", backend)
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if IsAvailable() {
		t.Error("IsAvailable() = true on a platform without WebGPU")
	}
}
