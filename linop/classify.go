// SPDX-License-Identifier: MIT

package linop

import (
	"reflect"

	"github.com/katalvlaran/linop/dtype"
	"github.com/katalvlaran/linop/matrix"
	"github.com/katalvlaran/linop/ndarray"
	"github.com/katalvlaran/linop/sparse"
	"gonum.org/v1/gonum/mat"
)

// Kind names the category AsOperator assigned to a value.
// Cases are listed in dispatch priority order.
type Kind uint8

const (
	KindUnsupported Kind = iota // no recognized category
	KindOperator                // already an *Operator
	KindDense                   // dense array or matrix of any rank
	KindSparse                  // member of the sparse.Matrix family
	KindCapability              // exposes Dims and MatVec
)

var kindNames = [...]string{
	KindUnsupported: "unsupported",
	KindOperator:    "operator",
	KindDense:       "dense",
	KindSparse:      "sparse",
	KindCapability:  "capability",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "kind(?)"
}

// Capability is the minimum a custom value must expose to be normalized:
// a shape and a vector action.
type Capability interface {
	Dims() []int
	MatVec(x []float64) ([]float64, error)
}

// RMatVecer is optionally implemented by a Capability with a Hermitian action.
type RMatVecer interface {
	RMatVec(v []float64) ([]float64, error)
}

// DTyper is optionally implemented by a Capability that knows its scalar type.
// Returning dtype.Unknown means "unspecified".
type DTyper interface {
	DType() dtype.DType
}

// Classify assigns v to exactly one Kind, first match wins:
// Operator, Dense, Sparse, Capability, otherwise Unsupported.
// Nil values, including typed nil pointers to recognized types, are Unsupported.
func Classify(v any) Kind {
	switch x := v.(type) {
	case nil:
		return KindUnsupported
	case *Operator:
		if x == nil {
			return KindUnsupported
		}
		return KindOperator
	case *ndarray.Array:
		if x == nil {
			return KindUnsupported
		}
		return KindDense
	case []float64, [][]float64:
		return KindDense
	case matrix.Matrix, mat.Matrix:
		if isNilPointer(x) {
			return KindUnsupported
		}
		return KindDense
	case sparse.Matrix:
		if isNilPointer(x) {
			return KindUnsupported
		}
		return KindSparse
	case Capability:
		if isNilPointer(x) {
			return KindUnsupported
		}
		return KindCapability
	}
	if sliceRank(reflect.TypeOf(v)) > 0 {
		return KindDense // deeper nested float64 slices: rejected later by rank
	}

	return KindUnsupported
}

// sliceRank returns the nesting depth of t when t is ([])+float64, else 0.
func sliceRank(t reflect.Type) int {
	rank := 0
	for t.Kind() == reflect.Slice {
		rank++
		t = t.Elem()
	}
	if t.Kind() != reflect.Float64 {
		return 0
	}

	return rank
}

// isNilPointer reports whether v holds a typed nil pointer.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
