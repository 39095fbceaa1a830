// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/segment/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// Index is a constraint for segment id and gather index types: int32, int64.
type Index = tensor.Index

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
// Zero-size dimensions are allowed.
type Shape = tensor.Shape

// Tensor is a generic type-safe tensor.
//
// T is the data type (float32, float64, int32, int64, uint8, bool).
// B is the backend implementation (CPU, WebGPU, autodiff).
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Element-wise addition
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Creation functions

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Full[float32](tensor.Shape{2, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	backend := cpu.New()
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros, Ones, or FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Indexing functions

// Gather selects slices of t along axis at the given indices.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{3}, backend)
//	idx, _ := tensor.FromSlice([]int32{2, 0}, tensor.Shape{2}, backend)
//	y := tensor.Gather(x, idx, 0)  // [30, 10]
func Gather[T DType, I Index, B Backend](t *Tensor[T, B], indices *Tensor[I, B], axis int) *Tensor[T, B] {
	return tensor.Gather(t, indices, axis)
}

// Where selects elements from x or y based on condition.
func Where[T DType, B Backend](cond *Tensor[bool, B], x, y *Tensor[T, B]) *Tensor[T, B] {
	return tensor.Where(cond, x, y)
}

// Utility functions

// BroadcastShapes computes the broadcast shape for two shapes following NumPy broadcasting rules.
// Returns the resulting shape and a flag indicating whether broadcasting is needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
