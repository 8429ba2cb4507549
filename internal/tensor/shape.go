package tensor

import (
	"fmt"
	"strings"
)

// Shape represents the dimensions of a tensor.
//
// Node output tensors are laid out time-major: Shape{T, N, D...} where T is
// the number of time steps, N the number of parallel sequences (samples),
// and D... the per-sample element dimensions. Row-major strides make a
// subrange of the leading time axis a contiguous block.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
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

// TimeSteps returns the leading (time) dimension, or 1 for a scalar shape.
func (s Shape) TimeSteps() int {
	if len(s) == 0 {
		return 1
	}
	return s[0]
}

// Samples returns the second (sequence/sample) dimension, or 1 if absent.
func (s Shape) Samples() int {
	if len(s) < 2 {
		return 1
	}
	return s[1]
}

// SampleSize returns the number of elements per (time step, sample) pair.
func (s Shape) SampleSize() int {
	n := 1
	for _, dim := range s[min(2, len(s)):] {
		n *= dim
	}
	return n
}

// String returns a human-readable representation like "[4 x 2 x 3]".
func (s Shape) String() string {
	if len(s) == 0 {
		return "[]"
	}
	parts := make([]string, len(s))
	for i, dim := range s {
		parts[i] = fmt.Sprintf("%d", dim)
	}
	return "[" + strings.Join(parts, " x ") + "]"
}
