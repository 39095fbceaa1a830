package autodiff

import (
	"github.com/born-ml/segment/internal/autodiff/ops"
	"github.com/born-ml/segment/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic differentiation.
//
// Usage:
//
//	tape := NewGradientTape()
//	tape.StartRecording()
//	// ... perform operations ...
//	gradients := tape.Backward(outputGrad, backend)
type GradientTape struct {
	operations []ops.Operation // Recorded operations (in execution order)
	recording  bool            // Whether tape is currently recording
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64), // Pre-allocate for common case
		recording:  false,
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape.
// Only records if the tape is currently recording.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape, removing all recorded operations.
// Recording state is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// Backward computes gradients for all inputs by walking the tape in reverse.
//
// Algorithm:
//  1. Start with the output gradient (typically ones for scalar loss)
//  2. Walk operations in reverse order
//  3. For each operation, compute input gradients using chain rule
//  4. Accumulate gradients when the same tensor is used multiple times
//
// Returns a map from RawTensor to its accumulated gradient.
func (t *GradientTape) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	if len(t.operations) == 0 {
		return make(map[*tensor.RawTensor]*tensor.RawTensor)
	}

	// Stop recording during backward pass to prevent recording gradient operations
	wasRecording := t.recording
	t.recording = false
	defer func() {
		t.recording = wasRecording
	}()

	// Map to accumulate gradients for each tensor
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)

	// Initialize with output gradient
	lastOp := t.operations[len(t.operations)-1]
	grads[lastOp.Output()] = outputGrad

	// Walk tape backwards
	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		inputGrads := t.computeInputGrads(op, grads, backend)
		if inputGrads == nil {
			continue
		}
		t.accumulateGrads(op, inputGrads, grads, backend)
	}

	return grads
}

// computeInputGrads computes gradients for an operation's inputs.
// Returns nil if no gradient flows to this operation.
func (t *GradientTape) computeInputGrads(
	op ops.Operation,
	grads map[*tensor.RawTensor]*tensor.RawTensor,
	backend tensor.Backend,
) []*tensor.RawTensor {
	opOutputGrad, hasGrad := grads[op.Output()]
	if !hasGrad {
		return nil
	}
	return op.Backward(opOutputGrad, backend)
}

// accumulateGrads accumulates gradients for each input tensor.
func (t *GradientTape) accumulateGrads(
	op ops.Operation,
	inputGrads []*tensor.RawTensor,
	grads map[*tensor.RawTensor]*tensor.RawTensor,
	backend tensor.Backend,
) {
	inputs := op.Inputs()
	for j, input := range inputs {
		if j >= len(inputGrads) {
			break
		}
		inputGrad := inputGrads[j]
		if inputGrad == nil {
			continue
		}
		if existing, ok := grads[input]; ok {
			grads[input] = backend.Add(existing, inputGrad)
		} else {
			grads[input] = inputGrad
		}
	}
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Operations returns the recorded operations in execution order.
// The slice is owned by the tape.
func (t *GradientTape) Operations() []ops.Operation {
	return t.operations
}
