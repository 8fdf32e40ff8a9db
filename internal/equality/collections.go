package equality

import (
	"reflect"

	"github.com/arrakeen/dune-api/internal/contract"
)

// EqualSlices reports whether a and b are sequences of equal length whose
// elements are pairwise equal at matching indices. Order matters. A nil eq
// falls back to Strict. Non-sequence input yields false.
func EqualSlices(a, b any, eq Func) bool {
	if eq == nil {
		eq = Strict
	}

	av, aok := sequenceValue(a)
	bv, bok := sequenceValue(b)
	if !aok || !bok {
		return false
	}
	if av.Len() != bv.Len() {
		return false
	}
	for i := 0; i < av.Len(); i++ {
		if !eq(av.Index(i).Interface(), bv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

// EqualSets reports true set equality: order is irrelevant and containment
// is checked in both directions, so asymmetric or non-reflexive equality
// functions behave correctly. Both inputs must be set-like; for plain
// (map-backed) sets mismatched sizes reject cheaply. A nil eq falls back
// to Strict.
func EqualSets(a, b any, eq Func) bool {
	if eq == nil {
		eq = Strict
	}

	as, aPlain, aok := contract.AsSetLike(a)
	bs, bPlain, bok := contract.AsSetLike(b)
	if !aok || !bok {
		return false
	}
	if aPlain && bPlain && as.Size() != bs.Size() {
		return false
	}

	aKeys, bKeys := as.Keys(), bs.Keys()
	for _, ka := range aKeys {
		if !containsUnder(bKeys, ka, eq) {
			return false
		}
	}
	for _, kb := range bKeys {
		if !containsUnder(aKeys, kb, eq) {
			return false
		}
	}
	return true
}

// EqualMaps reports whether two maps have equal key sets under keyEq
// (default SameValueZero) and, for every key of a, values that satisfy
// valEq (default Strict) at the matching key of b.
func EqualMaps(a, b any, keyEq, valEq Func) bool {
	if keyEq == nil {
		keyEq = SameValueZero
	}
	if valEq == nil {
		valEq = Strict
	}

	av, aok := mapValue(a)
	bv, bok := mapValue(b)
	if !aok || !bok {
		return false
	}

	aKeys := mapKeys(av)
	bKeys := mapKeys(bv)
	for _, ka := range aKeys {
		if !containsUnder(bKeys, ka, keyEq) {
			return false
		}
	}
	for _, kb := range bKeys {
		if !containsUnder(aKeys, kb, keyEq) {
			return false
		}
	}

	for _, ka := range aKeys {
		kb, found := findUnder(bKeys, ka, keyEq)
		if !found {
			return false
		}
		aVal := av.MapIndex(reflect.ValueOf(ka))
		bVal := bv.MapIndex(reflect.ValueOf(kb))
		if !aVal.IsValid() || !bVal.IsValid() {
			return false
		}
		if !valEq(aVal.Interface(), bVal.Interface()) {
			return false
		}
	}
	return true
}

// containsUnder scans keys for a counterpart of k under eq. The needle
// always takes the first argument position, so asymmetric equality
// functions see each direction of the bidirectional check distinctly.
func containsUnder(keys []any, k any, eq Func) bool {
	for _, key := range keys {
		if eq(k, key) {
			return true
		}
	}
	return false
}

func findUnder(keys []any, k any, eq Func) (any, bool) {
	for _, key := range keys {
		if eq(k, key) {
			return key, true
		}
	}
	return nil, false
}

func sequenceValue(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv, true
	}
	return reflect.Value{}, false
}

func mapValue(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		return rv, true
	}
	return reflect.Value{}, false
}

func mapKeys(v reflect.Value) []any {
	keys := make([]any, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.Interface())
	}
	return keys
}
