// Package safejson round-trips values that plain JSON cannot represent.
// Big integers, NaN, and the infinities are encoded as reversible
// sentinel strings; funcs and channels degrade to null in array slots
// and are dropped from objects, matching standard serializer behavior.
package safejson

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/arrakeen/dune-api/internal/errors"
)

// Sentinel tokens for values JSON cannot carry natively
const (
	TokenNaN    = "[NaN]"
	TokenPosInf = "[+Inf]"
	TokenNegInf = "[-Inf]"
)

// Big integers encode as their decimal form with a trailing n, e.g.
// "10n". Compiled once.
var bigIntPattern = regexp.MustCompile(`^[+-]?[0-9]+n$`)

// Marshal encodes v to JSON text using the safe replacer.
func Marshal(v any) ([]byte, error) {
	return MarshalWith(v, SafeReplacer())
}

// MarshalWith encodes v to JSON text using the given replacer.
func MarshalWith(v any, r *Replacer) ([]byte, error) {
	encoded, _ := encode("", v, r, false)
	data, err := json.Marshal(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal value")
	}
	return data, nil
}

// Unmarshal decodes JSON text, reviving sentinel strings back into
// big integers, NaN, and the infinities. All other strings pass
// through unchanged.
func Unmarshal(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid JSON")
	}
	return decode(v), nil
}

// Replacer filters and transforms members during encoding. With only an
// allow-list configured it degenerates to a plain field-name hint,
// exposed via AllowList.
type Replacer struct {
	fields map[string]bool
	ignore map[string]bool
	accept func(key string, v any) bool
	order  []string
}

// ReplacerOptions configures a Replacer. Fields is an allow-list of
// member names; Ignore drops members by name; Accept overrides the
// default acceptance check.
type ReplacerOptions struct {
	Fields []string
	Ignore []string
	Accept func(key string, v any) bool
}

// NewReplacer builds a replacer from opts.
func NewReplacer(opts ReplacerOptions) *Replacer {
	r := &Replacer{order: opts.Fields}
	if len(opts.Fields) > 0 {
		r.fields = make(map[string]bool, len(opts.Fields))
		for _, f := range opts.Fields {
			r.fields[f] = true
		}
	}
	if len(opts.Ignore) > 0 {
		r.ignore = make(map[string]bool, len(opts.Ignore))
		for _, f := range opts.Ignore {
			r.ignore[f] = true
		}
	}
	r.accept = opts.Accept
	return r
}

// SafeReplacer accepts all JSON-native types, times, and objects. In
// numeric-indexed array slots it also accepts funcs and channels so
// they surface as null instead of silently vanishing.
func SafeReplacer() *Replacer {
	return NewReplacer(ReplacerOptions{})
}

// AllowList returns the configured field names when the replacer is a
// plain allow-list, nil otherwise.
func (r *Replacer) AllowList() []string {
	if r.fields != nil && r.ignore == nil && r.accept == nil {
		return append([]string(nil), r.order...)
	}
	return nil
}

// keep decides whether the member named key with value v survives
// encoding. arraySlot marks numeric-indexed positions.
func (r *Replacer) keep(key string, v any, arraySlot bool) bool {
	if r.ignore != nil && r.ignore[key] {
		return false
	}
	if r.fields != nil && key != "" && !arraySlot && !r.fields[key] {
		return false
	}
	if r.accept != nil {
		return r.accept(key, v)
	}
	if isUnserializable(v) {
		// Array slots keep their positions; object members drop.
		return arraySlot
	}
	return true
}

func encode(key string, v any, r *Replacer, arraySlot bool) (any, bool) {
	if !r.keep(key, v, arraySlot) {
		return nil, false
	}
	if v == nil {
		return nil, true
	}
	if isUnserializable(v) {
		return nil, true
	}

	switch val := v.(type) {
	case *big.Int:
		return val.String() + "n", true
	case big.Int:
		return val.String() + "n", true
	case float64:
		return encodeFloat(val), true
	case float32:
		return encodeFloat(float64(val)), true
	case time.Time:
		return val, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, true
		}
		return encode(key, rv.Elem().Interface(), r, arraySlot)
	case reflect.Map:
		return encodeMap(rv, r), true
	case reflect.Slice, reflect.Array:
		return encodeSequence(rv, r), true
	case reflect.Struct:
		return encodeStruct(rv, r), true
	default:
		return v, true
	}
}

func encodeFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return TokenNaN
	case math.IsInf(f, 1):
		return TokenPosInf
	case math.IsInf(f, -1):
		return TokenNegInf
	default:
		return f
	}
}

func encodeMap(rv reflect.Value, r *Replacer) map[string]any {
	out := make(map[string]any, rv.Len())
	for _, k := range rv.MapKeys() {
		name := mapKeyName(k)
		member := rv.MapIndex(k).Interface()
		if encoded, ok := encode(name, member, r, false); ok {
			out[name] = encoded
		}
	}
	return out
}

func encodeSequence(rv reflect.Value, r *Replacer) []any {
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		encoded, ok := encode(strconv.Itoa(i), rv.Index(i).Interface(), r, true)
		if !ok {
			encoded = nil
		}
		out = append(out, encoded)
	}
	return out
}

func encodeStruct(rv reflect.Value, r *Replacer) map[string]any {
	out := make(map[string]any, rv.NumField())
	encodeStructFields(rv, r, out)
	return out
}

func encodeStructFields(rv reflect.Value, r *Replacer, out map[string]any) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		// Untagged embedded structs flatten into the parent, matching
		// encoding/json promotion
		if f.Anonymous && f.Tag.Get("json") == "" && f.Type.Kind() == reflect.Struct {
			encodeStructFields(rv.Field(i), r, out)
			continue
		}
		name := jsonFieldName(f)
		if name == "-" {
			continue
		}
		if encoded, ok := encode(name, rv.Field(i).Interface(), r, false); ok {
			out[name] = encoded
		}
	}
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return f.Name
	}
	return name
}

func mapKeyName(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

func isUnserializable(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func decode(v any) any {
	switch val := v.(type) {
	case string:
		return decodeString(val)
	case map[string]any:
		for k, member := range val {
			val[k] = decode(member)
		}
		return val
	case []any:
		for i, member := range val {
			val[i] = decode(member)
		}
		return val
	default:
		return v
	}
}

func decodeString(s string) any {
	switch s {
	case TokenNaN:
		return math.NaN()
	case TokenPosInf:
		return math.Inf(1)
	case TokenNegInf:
		return math.Inf(-1)
	}
	if bigIntPattern.MatchString(s) {
		n := new(big.Int)
		// The pattern guarantees a parseable decimal.
		n.SetString(strings.TrimSuffix(s, "n"), 10)
		return n
	}
	return s
}
