// SPDX-License-Identifier: MIT
// Package linop: sentinel error set.
// Errors raised by this package wrap one of these sentinels; match them with
// errors.Is. Errors returned by wrapped behaviors (user functions, dense and
// sparse kernels) are passed through unchanged and never wrapped here.

package linop

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is returned when a shape is not exactly two
	// non-negative integers. Raised at construction, before any field is set.
	ErrInvalidShape = errors.New("linop: invalid shape")

	// ErrInvalidRank is returned when a dense array with more than two
	// dimensions is normalized.
	ErrInvalidRank = errors.New("linop: array must have rank <= 2")

	// ErrUnsupportedOperation is returned when the Hermitian-transpose action
	// is invoked on an operator that was built without one. Raised lazily,
	// only on use.
	ErrUnsupportedOperation = errors.New("linop: unsupported operation")

	// ErrUnsupportedType is returned when AsOperator is given a value that
	// matches no recognized kind.
	ErrUnsupportedType = errors.New("linop: type not understood")

	// ErrNilFunc is returned when the required matvec behavior is nil.
	ErrNilFunc = errors.New("linop: matvec function is nil")
)

// errHermitianUndefined is the failure stored in place of an absent
// Hermitian-transpose action.
var errHermitianUndefined = fmt.Errorf("%w: Hermitian-transpose action is not defined", ErrUnsupportedOperation)

// Operation tags for error wrapping.
const (
	opNew        = "New"
	opAsOperator = "AsOperator"
)

// linopErrorf wraps err with an operation tag, preserving it for errors.Is.
func linopErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
