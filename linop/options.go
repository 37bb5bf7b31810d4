// SPDX-License-Identifier: MIT

// Package linop: functional configuration for operator construction.
//
// Every optional behavior of an Operator is supplied through an Option.
// Absent options are resolved once, in New, into stored fallback behaviors;
// nothing is re-decided per call.

package linop

// Option configures optional operator behavior at construction.
type Option func(*Options)

// Options holds the resolved construction inputs. Fields are unexported;
// public APIs consume ...Option.
type Options struct {
	rmatvec  VecFunc // nil ⇒ Hermitian action unsupported
	matmat   MatFunc // nil ⇒ column-wise synthesis from matvec
	dtype    any     // raw tag, normalized by dtype.Parse in New
	dtypeSet bool
}

// WithRMatVec supplies the Hermitian-transpose action v ↦ Aᴴ·v.
// A nil f is the same as not supplying the option.
func WithRMatVec(f VecFunc) Option {
	return func(o *Options) { o.rmatvec = f }
}

// WithMatMat supplies the batched action V ↦ A·V.
// A nil f is the same as not supplying the option.
func WithMatMat(f MatFunc) Option {
	return func(o *Options) { o.matmat = f }
}

// WithDType tags the operator with a scalar type. d may be anything
// dtype.Parse accepts (a dtype.DType, a name such as "float32", a
// reflect.Type, or a sample value). A nil d is the same as not supplying
// the option.
func WithDType(d any) Option {
	return func(o *Options) {
		o.dtype = d
		o.dtypeSet = d != nil
	}
}

// gatherOptions applies setters in order (last-writer-wins).
func gatherOptions(user ...Option) Options {
	var o Options
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
