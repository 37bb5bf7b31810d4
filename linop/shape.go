// SPDX-License-Identifier: MIT

package linop

import "fmt"

// Shape is the (M, N) pair of an operator: M outputs, N inputs.
type Shape struct {
	Rows int // M, output dimension
	Cols int // N, input dimension
}

// Dims returns the shape as a two-element slice.
func (s Shape) Dims() []int { return []int{s.Rows, s.Cols} }

// String renders the shape as "MxN".
func (s Shape) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Cols) }

// IsShape reports whether dims is a valid operator shape: exactly two
// elements, both non-negative.
func IsShape(dims []int) bool {
	return len(dims) == 2 && dims[0] >= 0 && dims[1] >= 0
}

// ValidateShape converts dims into a Shape.
// Errors: ErrInvalidShape when IsShape(dims) is false.
func ValidateShape(dims []int) (Shape, error) {
	if !IsShape(dims) {
		return Shape{}, fmt.Errorf("%v: %w", dims, ErrInvalidShape)
	}

	return Shape{Rows: dims[0], Cols: dims[1]}, nil
}
