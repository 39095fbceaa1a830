package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
//
// Zero-sized dimensions are legal: a segment reduction with zero segments
// produces a [0, ...] result.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1 // Scalar has 1 element
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks that no dimension is negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Permute returns the shape reordered by axes: result[i] = s[axes[i]].
func (s Shape) Permute(axes []int) Shape {
	out := make(Shape, len(axes))
	for i, ax := range axes {
		out[i] = s[ax]
	}
	return out
}

// WithDim returns a copy of the shape with dimension dim set to size.
func (s Shape) WithDim(dim, size int) Shape {
	out := s.Clone()
	out[dim] = size
	return out
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Missing dimensions are treated as 1
//
// Returns the broadcasted shape, a flag indicating if broadcasting is needed, and an error if incompatible.
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(1, 5) + (3, 5) → (3, 5), true, nil
//	(3, 5) + (3, 5) → (3, 5), false, nil
//	(3, 4) + (3, 5) → nil, false, Error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := len(a) != len(b)

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[maxLen-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, needsBroadcast, nil
}

// BroadcastStrides computes strides for reading a tensor of shape in as if
// it had shape out. Padded and size-1 dimensions get stride 0.
func BroadcastStrides(in, out Shape) []int {
	strides := make([]int, len(out))
	offset := len(out) - len(in)
	orig := in.ComputeStrides()

	for i := range out {
		inIdx := i - offset
		switch {
		case inIdx < 0:
			strides[i] = 0
		case in[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = orig[inIdx]
		}
	}
	return strides
}
