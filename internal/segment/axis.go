package segment

import (
	"github.com/born-ml/segment/internal/tensor"
)

// Permutation reorders tensor dimensions so that a reduction axis becomes
// dimension 0. A nil Permutation is the identity.
type Permutation []int

// NewPermutation returns the permutation that moves axis to the front of a
// rank-dimensional tensor while keeping the remaining dimensions in order.
//
// It returns nil for axis 0. Negative axes are not wrapped.
//
// Example:
//
//	NewPermutation(4, 2) // [2, 0, 1, 3]
func NewPermutation(rank, axis int) (Permutation, error) {
	if axis < 0 || axis >= rank {
		return nil, &RangeError{Op: "normalize", Axis: axis, Rank: rank}
	}
	if axis == 0 {
		return nil, nil
	}

	perm := make(Permutation, 0, rank)
	perm = append(perm, axis)
	for d := 0; d < rank; d++ {
		if d != axis {
			perm = append(perm, d)
		}
	}
	return perm, nil
}

// IsIdentity reports whether p leaves every dimension in place.
func (p Permutation) IsIdentity() bool {
	for i, d := range p {
		if i != d {
			return false
		}
	}
	return true
}

// Inverse returns q with q[p[i]] = i, so that applying p then q restores the
// original order. The inverse of nil is nil.
func (p Permutation) Inverse() Permutation {
	if p == nil {
		return nil
	}
	inv := make(Permutation, len(p))
	for i, d := range p {
		inv[d] = i
	}
	return inv
}

// Normalize moves axis of x to dimension 0.
//
// It returns the permuted tensor, the permutation that was applied (nil when
// axis is already 0, in which case x itself is returned) and the canonical
// axis, which is always 0.
func Normalize(b tensor.Backend, x *tensor.RawTensor, axis int) (*tensor.RawTensor, Permutation, int, error) {
	perm, err := NewPermutation(len(x.Shape()), axis)
	if err != nil {
		return nil, nil, 0, err
	}
	if perm == nil {
		return x, nil, 0, nil
	}
	return b.Transpose(x, perm...), perm, 0, nil
}

// Denormalize undoes Normalize: it applies the inverse of perm to y.
// A nil perm returns y unchanged.
func Denormalize(b tensor.Backend, y *tensor.RawTensor, perm Permutation) *tensor.RawTensor {
	if perm == nil {
		return y
	}
	return b.Transpose(y, perm.Inverse()...)
}
