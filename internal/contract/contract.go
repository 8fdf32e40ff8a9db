// Package contract provides runtime capability checks: predicates that
// decide whether an arbitrary value satisfies a structural contract,
// without requiring a common base type. Anything that quacks right is
// accepted; malformed input yields false rather than a panic.
package contract

import (
	"reflect"
)

// ArityConstraint bounds the declared required-parameter count of a
// callable. Max < 0 means no upper bound.
type ArityConstraint struct {
	Min int
	Max int
}

// AnyArity accepts any callable regardless of parameter count.
var AnyArity = ArityConstraint{Min: 0, Max: -1}

// IsFunc reports whether v is callable and its required-parameter count
// lies within c. A variadic tail does not count as required.
func IsFunc(v any, c ArityConstraint) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Func {
		return false
	}

	required := t.NumIn()
	if t.IsVariadic() {
		required--
	}
	if required < c.Min {
		return false
	}
	if c.Max >= 0 && required > c.Max {
		return false
	}
	return true
}

// Sequencer is the iteration entry point: a value that can produce its
// elements as a slice on demand.
type Sequencer interface {
	Seq() []any
}

// Iterator is a step cursor over a sequence. Stop is cooperative and
// optional; IsIterator accepts values without it.
type Iterator interface {
	Next() (any, bool)
}

// IsIterable reports whether v can produce a sequence of elements:
// slices, arrays, maps, strings, channels, or anything with a Seq method.
func IsIterable(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(Sequencer); ok {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return true
	default:
		return false
	}
}

// IsIterator reports whether v is a step cursor: it must expose a
// zero-argument Next method; a Stop method may accompany it.
func IsIterator(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(Iterator); ok {
		return true
	}
	m, ok := methodByName(v, "Next")
	return ok && IsFunc(m, ArityConstraint{Min: 0, Max: 0})
}

// MemberTester validates a single member of a value under test.
type MemberTester func(member any) bool

// Contract names the members a value must (or may) expose, with a tester
// per member. Optional members are checked only when present.
type Contract struct {
	Required map[string]MemberTester
	Optional map[string]MemberTester
}

// Implements reports whether v satisfies c. On failure the name of the
// first offending member is returned for diagnostics. Non-object values
// fail outright, and a panicking tester counts as a failed member.
func Implements(v any, c Contract) (ok bool, failing string) {
	if !isObjectLike(v) {
		return false, ""
	}

	for name, test := range c.Required {
		member, present := Member(v, name)
		if !present || !runTester(test, member) {
			return false, name
		}
	}
	for name, test := range c.Optional {
		member, present := Member(v, name)
		if present && !runTester(test, member) {
			return false, name
		}
	}
	return true, ""
}

func runTester(test MemberTester, member any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if test == nil {
		return true
	}
	return test(member)
}

// Member resolves a named member of v: a map entry for string-keyed maps,
// an exported field or method for structs. Lowercase wire names resolve
// against their exported Go spelling. A nil pointer field reports absent.
func Member(v any, name string) (member any, present bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(name))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		fv := rv.FieldByName(exportedName(name))
		if fv.IsValid() && fv.CanInterface() {
			if fv.Kind() == reflect.Ptr && fv.IsNil() {
				return nil, false
			}
			if fv.Kind() == reflect.Ptr {
				return fv.Elem().Interface(), true
			}
			return fv.Interface(), true
		}
	}

	return methodByName(v, exportedName(name))
}

func methodByName(v any, name string) (any, bool) {
	rv := reflect.ValueOf(v)
	mv := rv.MethodByName(name)
	if mv.IsValid() {
		return mv.Interface(), true
	}
	return nil, false
}

func exportedName(name string) string {
	if name == "" {
		return name
	}
	c := name[0]
	if c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + name[1:]
	}
	return name
}

func isObjectLike(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	default:
		return false
	}
}
