package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// tensorBuffer is a reference-counted shared buffer.
// Clones share the buffer; a buffer with refCount == 1 is owned by a single tensor.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer creates a new reference-counted buffer with refCount = 1.
func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

func (tb *tensorBuffer) isUnique() bool {
	return tb.refCount.Load() == 1
}

// RawTensor is the untyped tensor representation passed to backends.
//
// Operations in this module never write into an input tensor: every backend
// primitive allocates its result. Data accessors hand out the underlying
// memory and are meant for filling freshly created tensors.
type RawTensor struct {
	buffer *tensorBuffer
	shape  Shape
	stride []int
	dtype  DataType
	device Device
	offset int
}

// NewRaw creates a new zero-filled RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()

	return &RawTensor{
		buffer: newTensorBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
		offset: 0,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.buffer.data[r.offset : r.offset+r.ByteSize()]
}

// view reinterprets the tensor's bytes as n elements of E.
// Empty tensors yield an empty, non-nil slice.
func view[E any](r *RawTensor) []E {
	n := r.NumElements()
	if n == 0 {
		return []E{}
	}
	data := r.buffer.data[r.offset:]
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*E)(unsafe.Pointer(&data[0])), n)
}

func (r *RawTensor) mustBe(dt DataType) {
	if r.dtype != dt {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, dt))
	}
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	r.mustBe(Float32)
	return view[float32](r)
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	r.mustBe(Float64)
	return view[float64](r)
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	r.mustBe(Int32)
	return view[int32](r)
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	r.mustBe(Int64)
	return view[int64](r)
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	r.mustBe(Uint8)
	return view[uint8](r)
}

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	r.mustBe(Bool)
	return view[bool](r)
}

// Indices returns the values of an int32 or int64 tensor widened to int64.
// The result is a copy.
func (r *RawTensor) Indices() []int64 {
	switch r.dtype {
	case Int32:
		src := r.AsInt32()
		out := make([]int64, len(src))
		for i, v := range src {
			out[i] = int64(v)
		}
		return out
	case Int64:
		return append([]int64(nil), r.AsInt64()...)
	default:
		panic(fmt.Sprintf("tensor dtype is %s, not an index type", r.dtype))
	}
}

// Float64s returns the values of a numeric tensor converted to float64.
// The result is a copy.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	switch r.dtype {
	case Float32:
		for i, v := range r.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, r.AsFloat64())
	case Int32:
		for i, v := range r.AsInt32() {
			out[i] = float64(v)
		}
	case Int64:
		for i, v := range r.AsInt64() {
			out[i] = float64(v)
		}
	case Uint8:
		for i, v := range r.AsUint8() {
			out[i] = float64(v)
		}
	case Bool:
		for i, v := range r.AsBool() {
			if v {
				out[i] = 1
			}
		}
	}
	return out
}

// Clone creates a shallow copy of the RawTensor that shares the buffer.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
		offset: r.offset,
	}
}

// Reshaped returns a view of the same buffer with a new shape.
// The element count must match.
func (r *RawTensor) Reshaped(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("cannot view %v as %v: element count differs", r.shape, shape)
	}
	out := r.Clone()
	out.shape = shape.Clone()
	out.stride = shape.ComputeStrides()
	return out, nil
}

// Release decrements the reference count and deallocates if it reaches 0.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// IsUnique returns true if this tensor is the only reference to the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.isUnique()
}

// ForceNonUnique temporarily increases refCount so the buffer is treated as shared.
// Returns a cleanup function that MUST be called to restore refCount (use defer).
//
// The autodiff backend wraps every recorded dispatch in it so recorded inputs
// keep their values until the backward pass.
//
//	defer x.ForceNonUnique()()
func (r *RawTensor) ForceNonUnique() func() {
	r.buffer.addRef()
	return func() {
		r.buffer.release()
	}
}
