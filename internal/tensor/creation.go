package tensor

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	raw, err := NewRaw(shape, DataTypeOf[T](), b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return New[T, B](b.Full(shape, DataTypeOf[T](), 1), b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// FillRaw writes value, converted to the tensor's dtype, into every element of r.
// Intended for freshly allocated tensors only.
func FillRaw(r *RawTensor, value float64) {
	switch r.DType() {
	case Float32:
		fill(r.AsFloat32(), float32(value))
	case Float64:
		fill(r.AsFloat64(), value)
	case Int32:
		fill(r.AsInt32(), int32(value))
	case Int64:
		fill(r.AsInt64(), int64(value))
	case Uint8:
		fill(r.AsUint8(), uint8(value))
	case Bool:
		fill(r.AsBool(), value != 0)
	}
}

func fill[E any](dst []E, v E) {
	for i := range dst {
		dst[i] = v
	}
}
