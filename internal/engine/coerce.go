package engine

import (
	"math"
	"reflect"
	"strconv"

	"github.com/arrakeen/dune-api/internal/errors"
)

// ToInteger coerces v to an int: Go integer kinds, whole-valued floats,
// and decimal strings. Failure is a type error.
func ToInteger(v any) (int, error) {
	if v == nil {
		return 0, errors.InvalidArgument("cannot convert nil to integer")
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, errors.OutOfRangef("value %d overflows integer", u)
		}
		return int(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, errors.InvalidArgumentf("cannot convert %v to integer", f)
		}
		return int(f), nil
	case reflect.String:
		n, err := strconv.Atoi(rv.String())
		if err != nil {
			return 0, errors.InvalidArgumentf("cannot convert %q to integer", rv.String())
		}
		return n, nil
	default:
		return 0, errors.InvalidArgumentf("cannot convert %T to integer", v)
	}
}

// AssertInteger is the defensive counterpart to ToInteger: it reports an
// assertion error when v does not convert, for internal invariant
// checks rather than user-facing validation.
func AssertInteger(v any) error {
	if _, err := ToInteger(v); err != nil {
		return errors.Assertionf("expected an integer, got %T(%v)", v, v)
	}
	return nil
}
