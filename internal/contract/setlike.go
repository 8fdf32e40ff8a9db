package contract

import (
	"fmt"
	"reflect"
)

// SetLike is the minimal set capability: anything exposing size,
// membership, and keys is a set, regardless of concrete implementation.
type SetLike interface {
	Size() int
	Has(v any) bool
	Keys() []any
}

// ReadableSetLike extends SetLike with value iteration.
type ReadableSetLike interface {
	SetLike
	Values() []any
	Entries() [][2]any
	Each(fn func(v any))
}

// WritableSetLike extends ReadableSetLike with mutation.
type WritableSetLike interface {
	ReadableSetLike
	Clear()
	Add(v any)
	Delete(v any) bool
}

// IsSetLike reports whether v satisfies the minimal set capability,
// either by interface or by Go map kind.
func IsSetLike(v any) bool {
	_, _, ok := AsSetLike(v)
	return ok
}

// IsReadableSetLike reports whether v additionally supports value
// iteration. Plain Go maps qualify.
func IsReadableSetLike(v any) bool {
	if _, ok := v.(ReadableSetLike); ok {
		return true
	}
	return isGoMap(v)
}

// IsWritableSetLike reports whether v additionally supports mutation.
// Plain Go maps qualify; wrapped views of them do not expose mutation.
func IsWritableSetLike(v any) bool {
	if _, ok := v.(WritableSetLike); ok {
		return true
	}
	return isGoMap(v)
}

// AsSetLike adapts v into a SetLike view. Go maps adapt with their keys
// as members. plain is true for map-backed sets, whose size can be
// trusted for cheap rejection before a full containment check.
func AsSetLike(v any) (s SetLike, plain bool, ok bool) {
	if v == nil {
		return nil, false, false
	}
	if s, ok := v.(*StringSet); ok {
		return s, true, true
	}
	if s, ok := v.(SetLike); ok {
		return s, false, true
	}
	if isGoMap(v) {
		return &mapSet{rv: reflect.ValueOf(v)}, true, true
	}
	return nil, false, false
}

func isGoMap(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Map
}

// mapSet is a read-only SetLike view over the keys of a Go map.
type mapSet struct {
	rv reflect.Value
}

func (m *mapSet) Size() int {
	return m.rv.Len()
}

func (m *mapSet) Has(v any) bool {
	for _, k := range m.rv.MapKeys() {
		if k.Interface() == v {
			return true
		}
	}
	return false
}

func (m *mapSet) Keys() []any {
	keys := make([]any, 0, m.rv.Len())
	for _, k := range m.rv.MapKeys() {
		keys = append(keys, k.Interface())
	}
	return keys
}

// StringSet is an insertion-ordered set of strings. It owns a plain map
// and re-exposes only the set capability surface, rather than embedding
// a built-in collection type.
type StringSet struct {
	members map[string]int // value is insertion rank
	order   []string
}

// NewStringSet creates a StringSet holding the given values.
func NewStringSet(values ...string) *StringSet {
	s := &StringSet{members: make(map[string]int)}
	for _, v := range values {
		s.AddString(v)
	}
	return s
}

// Size returns the number of members.
func (s *StringSet) Size() int {
	return len(s.members)
}

// Has reports membership. Non-string values are converted via fmt.
func (s *StringSet) Has(v any) bool {
	_, ok := s.members[stringify(v)]
	return ok
}

// Keys returns the members in insertion order.
func (s *StringSet) Keys() []any {
	keys := make([]any, len(s.order))
	for i, m := range s.order {
		keys[i] = m
	}
	return keys
}

// Values returns the members in insertion order. For sets, values and
// keys coincide.
func (s *StringSet) Values() []any {
	return s.Keys()
}

// Entries returns [member, member] pairs in insertion order.
func (s *StringSet) Entries() [][2]any {
	entries := make([][2]any, len(s.order))
	for i, m := range s.order {
		entries[i] = [2]any{m, m}
	}
	return entries
}

// Each calls fn for every member in insertion order.
func (s *StringSet) Each(fn func(v any)) {
	for _, m := range s.order {
		fn(m)
	}
}

// Clear removes all members.
func (s *StringSet) Clear() {
	s.members = make(map[string]int)
	s.order = nil
}

// Add inserts a member.
func (s *StringSet) Add(v any) {
	s.AddString(stringify(v))
}

// AddString inserts a string member, keeping first-insertion order.
func (s *StringSet) AddString(v string) {
	if _, ok := s.members[v]; ok {
		return
	}
	s.members[v] = len(s.order)
	s.order = append(s.order, v)
}

// Delete removes a member, reporting whether it was present.
func (s *StringSet) Delete(v any) bool {
	key := stringify(v)
	if _, ok := s.members[key]; !ok {
		return false
	}
	delete(s.members, key)
	for i, m := range s.order {
		if m == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Strings returns the members as a string slice in insertion order.
func (s *StringSet) Strings() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

var (
	_ WritableSetLike = (*StringSet)(nil)
	_ SetLike         = (*mapSet)(nil)
)
