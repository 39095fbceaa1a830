package tensor

// Backend defines the primitive library and kernel executor that the segment
// operators are coded against.
//
// Implementations:
//   - internal/backend/cpu: pure Go, dense row-major buffers
//   - internal/backend/webgpu: GPU kernels via WebGPU (windows), CPU for the rest
//
// Decorator backends:
//   - internal/autodiff: records differentiable ops on a gradient tape
//
// All methods allocate their result and never modify their arguments.
// Precondition violations panic; argument validation that callers are
// expected to handle lives in the segment package and returns errors.
type Backend interface {
	// Element-wise binary operations (NumPy broadcasting).
	Add(a, b *RawTensor) *RawTensor          // a + b
	Mul(a, b *RawTensor) *RawTensor          // a * b
	Maximum(a, b *RawTensor) *RawTensor      // max(a, b)
	GreaterEqual(a, b *RawTensor) *RawTensor // a >= b, bool result
	Where(condition, x, y *RawTensor) *RawTensor

	// Reductions.
	Sum(x *RawTensor) *RawTensor // total sum, scalar result

	// UnsortedSegmentSum sums the slices x[i] into slot segmentIDs[i] of a
	// [numSegments, x.shape[1:]...] result. Rows with a negative id are skipped.
	UnsortedSegmentSum(x, segmentIDs *RawTensor, numSegments int) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor

	// Gather selects whole slices of x along axis: the result has x's shape
	// with dimension axis replaced by len(indices).
	Gather(x, indices *RawTensor, axis int) *RawTensor

	// Full creates a tensor filled with value converted to dtype.
	// Full(shape, dt, 0) is zerosLike, Full(Shape{}, dt, v) a scalar constant.
	Full(shape Shape, dtype DataType, value float64) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
