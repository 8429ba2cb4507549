// Copyright 2026 Lattice ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for Lattice tensor storage and
// views.
//
// The package defines the types graph nodes and external operators work
// with:
//   - RawTensor: flat buffer with shape, strides and runtime dtype
//   - View: a window over the time steps of a node's output for one
//     evaluation slice; external operators mutate values through it
//   - Shape, DataType: core type definitions
package tensor

import (
	"github.com/lattice-ml/lattice/internal/tensor"
)

// DType is a constraint for tensor element types (float32 or float64).
type DType = tensor.DType

// DataType represents the underlying element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of a tensor, laid out time-major:
// Shape{T, N, D...}.
type Shape = tensor.Shape

// RawTensor is the low-level tensor representation.
type RawTensor = tensor.RawTensor

// View is a window over a RawTensor for one evaluation slice.
type View = tensor.View

// NewRaw creates a zero-initialized tensor with the given geometry.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromSlice creates a tensor with the given shape from flat element values.
func FromSlice[T DType](shape Shape, values []T) (*RawTensor, error) {
	return tensor.FromSlice(shape, values)
}

// NewView creates a view over time steps [begin, end) of raw.
func NewView(raw *RawTensor, begin, end int) (*View, error) {
	return tensor.NewView(raw, begin, end)
}

// Elems reinterprets a tensor's buffer as a slice of T.
func Elems[T DType](r *RawTensor) []T {
	return tensor.Elems[T](r)
}
