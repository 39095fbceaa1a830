package tensor

// Typed wrappers over Backend primitives. They panic on shape or dtype
// errors, like the backend methods they forward to.

// Add performs element-wise addition with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Add(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](t.backend.Mul(t.raw, other.raw), t.backend)
}

// Sum returns the sum of all elements as a scalar tensor.
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	return New[T, B](t.backend.Sum(t.raw), t.backend)
}

// Transpose permutes the tensor's dimensions.
// Without axes all dimensions are reversed.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	return New[T, B](t.backend.Transpose(t.raw, axes...), t.backend)
}

// Reshape returns a tensor with the same data and a new shape.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	return New[T, B](t.backend.Reshape(t.raw, Shape(newShape)), t.backend)
}

// Gather selects slices along axis at the given indices.
func Gather[T DType, I Index, B Backend](t *Tensor[T, B], indices *Tensor[I, B], axis int) *Tensor[T, B] {
	return New[T, B](t.backend.Gather(t.raw, indices.raw, axis), t.backend)
}

// Where selects x where cond is true and y elsewhere.
func Where[T DType, B Backend](cond *Tensor[bool, B], x, y *Tensor[T, B]) *Tensor[T, B] {
	return New[T, B](x.backend.Where(cond.raw, x.raw, y.raw), x.backend)
}
