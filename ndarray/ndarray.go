// SPDX-License-Identifier: MIT

// Package ndarray provides a minimal N-dimensional dense array.
//
// What & Why:
//
//	Array is the rank-agnostic dense collaborator of linop: a shape, a flat
//	row-major (C-order) float64 buffer and a descriptive dtype tag. It exists
//	so that values of any rank can reach the operator normalizer, which
//	accepts rank 0..2 and rejects anything deeper.
//
// Complexity:
//
//	Dims/Rank/Len/DType run in O(1) (Dims copies the shape, O(rank)).
//	At runs in O(rank). AtLeast2D copies the buffer once, O(Len).
package ndarray

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/linop/dtype"
	"github.com/katalvlaran/linop/matrix"
)

var (
	// ErrShape is returned when a shape contains a negative extent or its
	// element count overflows int.
	ErrShape = errors.New("ndarray: invalid shape")

	// ErrDataLength is returned when the buffer length differs from the shape product.
	ErrDataLength = errors.New("ndarray: data length does not match shape")

	// ErrIndex is returned for an index of the wrong arity or out of bounds.
	ErrIndex = errors.New("ndarray: index out of range")

	// ErrRank is returned when an operation needs rank <= 2.
	ErrRank = errors.New("ndarray: rank must be <= 2")
)

// Array is an immutable N-dimensional dense array in row-major order.
type Array struct {
	shape   []int
	strides []int
	data    []float64
	dt      dtype.DType
}

// New builds an Array over a copy of data.
// An empty shape denotes a rank-0 (scalar) array holding exactly one value.
// A zero dt means "unspecified" and is stored as dtype.Float64, the storage type.
//
// Errors:
//   - ErrShape for negative extents, or when the running product of the
//     extents overflows int.
//   - ErrDataLength when len(data) != product(shape).
func New(shape []int, data []float64, dt dtype.DType) (*Array, error) {
	n := 1
	for axis, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("axis %d has extent %d: %w", axis, d, ErrShape)
		}
		if d != 0 && n > math.MaxInt/d {
			return nil, fmt.Errorf("shape %v overflows the element count: %w", shape, ErrShape)
		}
		n *= d
	}
	if len(data) != n {
		return nil, fmt.Errorf("len(data)=%d, shape %v needs %d: %w", len(data), shape, n, ErrDataLength)
	}
	if dt == dtype.Unknown {
		dt = dtype.Float64
	}

	a := &Array{
		shape:   append([]int(nil), shape...),
		strides: make([]int, len(shape)),
		data:    append([]float64(nil), data...),
		dt:      dt,
	}
	stride := 1
	for axis := len(shape) - 1; axis >= 0; axis-- {
		a.strides[axis] = stride
		stride *= shape[axis]
	}

	return a, nil
}

// Scalar returns a rank-0 array holding v.
func Scalar(v float64) *Array {
	a, _ := New(nil, []float64{v}, dtype.Float64)
	return a
}

// FromSlice returns a rank-1 float64 array over a copy of v.
func FromSlice(v []float64) *Array {
	a, _ := New([]int{len(v)}, v, dtype.Float64)
	return a
}

// Dims returns a copy of the shape.
func (a *Array) Dims() []int { return append([]int(nil), a.shape...) }

// Rank returns the number of axes.
func (a *Array) Rank() int { return len(a.shape) }

// Len returns the total number of elements.
func (a *Array) Len() int { return len(a.data) }

// DType returns the element-type tag.
func (a *Array) DType() dtype.DType { return a.dt }

// At returns the element at the given multi-index.
func (a *Array) At(idx ...int) (float64, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("got %d indices for rank %d: %w", len(idx), len(a.shape), ErrIndex)
	}
	off := 0
	for axis, i := range idx {
		if i < 0 || i >= a.shape[axis] {
			return 0, fmt.Errorf("index %d on axis %d (extent %d): %w", i, axis, a.shape[axis], ErrIndex)
		}
		off += i * a.strides[axis]
	}

	return a.data[off], nil
}

// AtLeast2D views the array as a matrix: rank 0 becomes 1×1, rank 1 of
// length n becomes 1×n, rank 2 keeps its shape. The result is a copy.
//
// Errors:
//   - ErrRank when Rank() > 2.
func (a *Array) AtLeast2D() (*matrix.Dense, error) {
	var rows, cols int
	switch len(a.shape) {
	case 0:
		rows, cols = 1, 1
	case 1:
		rows, cols = 1, a.shape[0]
	case 2:
		rows, cols = a.shape[0], a.shape[1]
	default:
		return nil, fmt.Errorf("shape %v: %w", a.shape, ErrRank)
	}

	return matrix.NewDenseFrom(rows, cols, a.data)
}

// String summarizes the array, e.g. "ndarray(shape=[2 3], dtype=float64)".
func (a *Array) String() string {
	return fmt.Sprintf("ndarray(shape=%v, dtype=%s)", a.shape, a.dt)
}
