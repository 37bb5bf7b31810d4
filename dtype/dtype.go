// SPDX-License-Identifier: MIT

// Package dtype defines canonical scalar element-type tags.
//
// Purpose:
//   - Give array, sparse and operator values one small, comparable tag for
//     "what kind of scalar lives here", independent of how values are stored.
//   - Normalize the many spellings a caller may use (names, numpy-style codes,
//     reflect types, sample values) into exactly one canonical tag.
//
// Tags are descriptive only: storage in this module is float64 throughout,
// and a tag never changes how arithmetic is performed.
package dtype

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrUnknown is returned when a value cannot be normalized to a DType.
var ErrUnknown = errors.New("dtype: unrecognized scalar type")

// DType is a canonical scalar element-type tag.
// The zero value is Unknown, which is never produced by Parse.
type DType uint8

const (
	Unknown DType = iota // zero value; "no recognized tag"
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Complex64
	Complex128
)

// names holds canonical spellings, indexed by DType.
var names = [...]string{
	Unknown:    "unknown",
	Bool:       "bool",
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
}

// sizes holds bytes per element, indexed by DType.
var sizes = [...]int{
	Unknown:    0,
	Bool:       1,
	Int8:       1,
	Int16:      2,
	Int32:      4,
	Int64:      8,
	Uint8:      1,
	Uint16:     2,
	Uint32:     4,
	Uint64:     8,
	Float32:    4,
	Float64:    8,
	Complex64:  8,
	Complex128: 16,
}

// aliases maps accepted non-canonical spellings (lower-case, byte-order
// marks stripped) to their canonical tag.
var aliases = map[string]DType{
	"?":       Bool,
	"b1":      Bool,
	"i1":      Int8,
	"byte":    Uint8,
	"u1":      Uint8,
	"i2":      Int16,
	"short":   Int16,
	"u2":      Uint16,
	"i4":      Int32,
	"int":     Int64,
	"i8":      Int64,
	"long":    Int64,
	"u4":      Uint32,
	"u8":      Uint64,
	"f4":      Float32,
	"single":  Float32,
	"float":   Float64,
	"f8":      Float64,
	"double":  Float64,
	"c8":      Complex64,
	"complex": Complex128,
	"c16":     Complex128,
}

// String returns the canonical name ("float64", "int32", ...).
func (d DType) String() string {
	if int(d) < len(names) {
		return names[d]
	}

	return fmt.Sprintf("dtype(%d)", uint8(d))
}

// Valid reports whether d is one of the recognized tags (not Unknown).
func (d DType) Valid() bool { return d > Unknown && d <= Complex128 }

// Size returns the storage width of one element in bytes (0 for Unknown).
func (d DType) Size() int {
	if !d.Valid() {
		return 0
	}

	return sizes[d]
}

// IsComplex reports whether d is a complex type.
func (d DType) IsComplex() bool { return d == Complex64 || d == Complex128 }

// IsFloat reports whether d is a real floating-point type.
func (d DType) IsFloat() bool { return d == Float32 || d == Float64 }

// IsInt reports whether d is a signed or unsigned integer type.
func (d DType) IsInt() bool { return d >= Int8 && d <= Uint64 }

// Parse normalizes v into a canonical DType.
//
// Accepted inputs, checked in order:
//   - DType: returned as is when Valid.
//   - string: canonical name or alias, case-insensitive, surrounding space
//     and a leading byte-order mark ('<', '>', '=', '|') ignored.
//   - reflect.Type / reflect.Kind: mapped by kind.
//   - any other non-nil value: treated as a sample scalar (see Of).
//
// Errors:
//   - ErrUnknown for nil, Unknown, unrecognized names and non-scalar samples.
func Parse(v any) (DType, error) {
	switch x := v.(type) {
	case nil:
		return Unknown, fmt.Errorf("%w: <nil>", ErrUnknown)
	case DType:
		if !x.Valid() {
			return Unknown, fmt.Errorf("%w: %s", ErrUnknown, x)
		}
		return x, nil
	case string:
		return parseName(x)
	case reflect.Type:
		if x == nil {
			return Unknown, fmt.Errorf("%w: <nil type>", ErrUnknown)
		}
		return fromKind(x.Kind())
	case reflect.Kind:
		return fromKind(x)
	}

	return Of(v)
}

// Of returns the tag of a sample scalar value, e.g. Of(float32(0)) == Float32.
// Named types are resolved through their underlying kind.
func Of(v any) (DType, error) {
	if v == nil {
		return Unknown, fmt.Errorf("%w: <nil>", ErrUnknown)
	}

	return fromKind(reflect.TypeOf(v).Kind())
}

// parseName resolves a textual dtype spelling.
func parseName(s string) (DType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if len(key) > 1 && strings.ContainsRune("<>=|", rune(key[0])) {
		key = key[1:] // drop numpy byte-order mark
	}
	for d := Bool; d <= Complex128; d++ {
		if names[d] == key {
			return d, nil
		}
	}
	if d, ok := aliases[key]; ok {
		return d, nil
	}

	return Unknown, fmt.Errorf("%w: %q", ErrUnknown, s)
}

// fromKind maps a reflect.Kind to a DType.
// int and uint follow the 64-bit platform width.
func fromKind(k reflect.Kind) (DType, error) {
	switch k {
	case reflect.Bool:
		return Bool, nil
	case reflect.Int8:
		return Int8, nil
	case reflect.Int16:
		return Int16, nil
	case reflect.Int32:
		return Int32, nil
	case reflect.Int, reflect.Int64:
		return Int64, nil
	case reflect.Uint8:
		return Uint8, nil
	case reflect.Uint16:
		return Uint16, nil
	case reflect.Uint32:
		return Uint32, nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return Uint64, nil
	case reflect.Float32:
		return Float32, nil
	case reflect.Float64:
		return Float64, nil
	case reflect.Complex64:
		return Complex64, nil
	case reflect.Complex128:
		return Complex128, nil
	}

	return Unknown, fmt.Errorf("%w: kind %s", ErrUnknown, k)
}
