// Package equality implements the pluggable equality algorithms used for
// duplicate detection and collection comparison across the engine.
//
// Four algorithms are provided, differing only in how they treat coercion,
// NaN, and signed zero:
//
//	Loose          coercive; numeric strings and bools compare as numbers
//	Strict         no coercion; NaN != NaN, +0 == -0
//	SameValue      like Strict but NaN == NaN and +0 != -0
//	SameValueZero  like SameValue but +0 == -0
//
// All four are total: incomparable inputs yield false, never a panic.
package equality

import (
	"math"
	"reflect"
	"strconv"
)

// Func is a binary equality predicate over two values of the same
// conceptual type. Implementations must be reflexive for identical
// references but are otherwise unconstrained; collection comparison
// tolerates asymmetric functions.
type Func func(a, b any) bool

// Loose reports coercive equality. Numeric kinds compare by value across
// int, uint, and float widths; numeric strings and booleans coerce to
// numbers; nil compares equal to nil, typed or not. Strings coerce only
// when strconv can parse them, so the empty string never equals zero.
func Loose(a, b any) bool {
	if Strict(a, b) {
		return true
	}
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	av, aok := looseOperand(a)
	bv, bok := looseOperand(b)
	if aok && bok {
		return numbersEqual(av, bv)
	}
	return false
}

// looseOperand yields a numeric reflect.Value for v: numeric kinds pass
// through untouched so integer precision survives, strings and bools
// coerce to float64.
func looseOperand(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	if kindClass(rv.Kind()) == classNumber {
		return rv, true
	}
	n, ok := coerceNumber(v)
	if !ok {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(n), true
}

// Strict reports equality without coercion. Differing runtime kinds are
// never equal; numbers, strings, and booleans compare by value, reference
// types by identity. NaN is unequal to itself and +0 equals -0.
func Strict(a, b any) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	ak, bk := kindClass(av.Kind()), kindClass(bv.Kind())
	if ak != bk {
		return false
	}

	switch ak {
	case classNumber:
		return numbersEqual(av, bv)
	case classString:
		return av.String() == bv.String()
	case classBool:
		return av.Bool() == bv.Bool()
	default:
		return referenceEqual(av, bv)
	}
}

// SameValue is Strict except that NaN equals NaN and +0 does not equal -0.
func SameValue(a, b any) bool {
	if bothNaN(a, b) {
		return true
	}
	if !Strict(a, b) {
		return false
	}
	// Strict collapses signed zeros; SameValue keeps them apart.
	if az, aok := floatValue(a); aok && az == 0 {
		bz, _ := floatValue(b)
		return math.Signbit(az) == math.Signbit(bz)
	}
	return true
}

// SameValueZero is SameValue except that +0 equals -0. This is the
// algorithm set membership uses.
func SameValueZero(a, b any) bool {
	if bothNaN(a, b) {
		return true
	}
	return Strict(a, b)
}

type class int

const (
	classNumber class = iota
	classString
	classBool
	classReference
)

func kindClass(k reflect.Kind) class {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return classNumber
	case reflect.String:
		return classString
	case reflect.Bool:
		return classBool
	default:
		return classReference
	}
}

type numKind int

const (
	numInt numKind = iota
	numUint
	numFloat
)

func numericKind(k reflect.Kind) numKind {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return numUint
	default:
		return numFloat
	}
}

// numbersEqual compares numeric values without losing precision. Same-kind
// integers compare directly; integers beyond 2^53 would collapse under
// float64 widening, so mixed int/float pairs go through an exactness guard
// instead. Floats compare as floats: NaN != NaN, +0 == -0.
func numbersEqual(a, b reflect.Value) bool {
	ak, bk := numericKind(a.Kind()), numericKind(b.Kind())
	switch {
	case ak == numInt && bk == numInt:
		return a.Int() == b.Int()
	case ak == numUint && bk == numUint:
		return a.Uint() == b.Uint()
	case ak == numInt && bk == numUint:
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	case ak == numUint && bk == numInt:
		return b.Int() >= 0 && uint64(b.Int()) == a.Uint()
	case ak == numInt:
		return intFloatEqual(a.Int(), b.Float())
	case bk == numInt:
		return intFloatEqual(b.Int(), a.Float())
	case ak == numUint:
		return uintFloatEqual(a.Uint(), b.Float())
	case bk == numUint:
		return uintFloatEqual(b.Uint(), a.Float())
	default:
		return a.Float() == b.Float()
	}
}

// intFloatEqual reports whether f is the exact integer i. NaN, infinities,
// fractional values, and floats outside the int64 range are never equal.
func intFloatEqual(i int64, f float64) bool {
	if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return false
	}
	return int64(f) == i
}

func uintFloatEqual(u uint64, f float64) bool {
	if f != math.Trunc(f) || f < 0 || f >= 1<<64 {
		return false
	}
	return uint64(f) == u
}

// numericValue widens any numeric kind to float64. NaN propagates.
func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

func floatValue(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return numericValue(reflect.ValueOf(v))
}

func bothNaN(a, b any) bool {
	an, aok := floatValue(a)
	bn, bok := floatValue(b)
	return aok && bok && math.IsNaN(an) && math.IsNaN(bn)
}

// coerceNumber converts numbers, numeric strings, and bools to float64.
func coerceNumber(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	if n, ok := numericValue(rv); ok {
		return n, true
	}
	switch rv.Kind() {
	case reflect.String:
		n, err := strconv.ParseFloat(rv.String(), 64)
		return n, err == nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// referenceEqual compares reference-class values by identity: pointers,
// maps, slices, funcs, and channels by their data pointer, comparable
// values of identical dynamic type by ==.
func referenceEqual(a, b reflect.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	default:
		if !a.Comparable() {
			return false
		}
		return a.Interface() == b.Interface()
	}
}

// isNil reports whether v is nil, either untyped or a nil value of a
// nilable kind. Both play the nullish role.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
