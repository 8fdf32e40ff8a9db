package dune

import (
	"fmt"
	"math"
	"reflect"
	"regexp"

	"github.com/arrakeen/dune-api/internal/contract"
)

// Name grammar: a capitalized word followed by further words joined by
// space or dash. Connective words after the first may be lowercase, and
// a quoted multi-word segment counts as a word. Compiled once.
var (
	nameHead   = `(?:"[^"]+"|[A-Z][A-Za-z']*)`
	nameTail   = `(?:"[^"]+"|[A-Za-z][A-Za-z']*)`
	nameRegexp = regexp.MustCompile(`^` + nameHead + `(?:[ -]` + nameTail + `)*$`)

	// Placeholder-aware variant also accepts [Kind] / [KindIndex] slots.
	placeholderHead       = `(?:"[^"]+"|[A-Z][A-Za-z']*|\[[A-Z][A-Za-z]*[0-9]*\])`
	placeholderTail       = `(?:"[^"]+"|[A-Za-z][A-Za-z']*|\[[A-Z][A-Za-z]*[0-9]*\])`
	placeholderNameRegexp = regexp.MustCompile(`^` + placeholderHead + `(?:[ -]` + placeholderTail + `)*$`)
)

// IsNamed reports whether v's string conversion matches the name
// grammar. Only strings and Stringers convert; everything else fails
// closed.
func IsNamed(v any) bool {
	s, ok := stringConversion(v)
	return ok && nameRegexp.MatchString(s)
}

// IsNamedWithPlaceholders is IsNamed extended to accept bracketed
// placeholder slots, as used by talent name patterns.
func IsNamedWithPlaceholders(v any) bool {
	s, ok := stringConversion(v)
	return ok && placeholderNameRegexp.MatchString(s)
}

// IsDescribed reports whether v carries a non-empty string description.
func IsDescribed(v any) bool {
	ok, _ := contract.Implements(v, describedContract)
	return ok
}

// IsOptionallyDescribed reports whether v either has no description or
// a string one.
func IsOptionallyDescribed(v any) bool {
	ok, _ := contract.Implements(v, optionallyDescribedContract)
	return ok
}

// IsTrait reports whether v satisfies the trait contract. Assets are
// traits too.
func IsTrait(v any) bool {
	ok, _ := contract.Implements(v, traitContract)
	return ok
}

// IsTalent reports whether v satisfies the talent contract.
func IsTalent(v any) bool {
	ok, _ := contract.Implements(v, talentContract)
	return ok
}

// IsAsset reports whether v satisfies the asset contract: the trait
// contract plus the asset marker and handling fields.
func IsAsset(v any) bool {
	ok, _ := contract.Implements(v, assetContract)
	return ok
}

// IsDrive reports whether v satisfies the drive contract.
func IsDrive(v any) bool {
	ok, _ := contract.Implements(v, driveContract)
	return ok
}

// IsSkill reports whether v satisfies the skill contract.
func IsSkill(v any) bool {
	ok, _ := contract.Implements(v, skillContract)
	return ok
}

var describedContract = contract.Contract{
	Required: map[string]contract.MemberTester{
		"description": isNonEmptyString,
	},
}

var optionallyDescribedContract = contract.Contract{
	Optional: map[string]contract.MemberTester{
		"description": isString,
	},
}

var traitContract = contract.Contract{
	Required: map[string]contract.MemberTester{
		"name":    IsNamed,
		"isTrait": isTrue,
		"count":   isPositiveInteger,
	},
	Optional: map[string]contract.MemberTester{
		"description": isString,
	},
}

var talentContract = contract.Contract{
	Required: map[string]contract.MemberTester{
		"name":        IsNamed,
		"description": isString,
		"isTalent":    isTrue,
	},
	Optional: map[string]contract.MemberTester{
		"unique": isBool,
		"count":  isInteger,
	},
}

var assetContract = contract.Contract{
	Required: map[string]contract.MemberTester{
		"name":    IsNamed,
		"isTrait": isTrue,
		"isAsset": isTrue,
		"count":   isPositiveInteger,
	},
	Optional: map[string]contract.MemberTester{
		"description":   isString,
		"quality":       isInteger,
		"types":         isStringSequence,
		"tangible":      isBool,
		"temporary":     isBool,
		"reserved":      isBool,
		"transferrable": isBool,
	},
}

var driveContract = contract.Contract{
	Required: map[string]contract.MemberTester{
		"name":    IsNamed,
		"isDrive": isTrue,
	},
	Optional: map[string]contract.MemberTester{
		"challenged": isBool,
		"value":      isInteger,
		"statement":  isString,
	},
}

var skillContract = contract.Contract{
	Required: map[string]contract.MemberTester{
		"name":    IsNamed,
		"isSkill": isTrue,
	},
	Optional: map[string]contract.MemberTester{
		"value": isInteger,
	},
}

// NameOf extracts the display value of v: the raw string, a Stringer's
// conversion, or the entity's name member.
func NameOf(v any) (string, bool) {
	if s, ok := stringConversion(v); ok {
		return s, true
	}
	member, present := contract.Member(v, "name")
	if !present {
		return "", false
	}
	s, ok := member.(string)
	return s, ok
}

func stringConversion(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	default:
		return "", false
	}
}

func isString(member any) bool {
	_, ok := member.(string)
	return ok
}

func isNonEmptyString(member any) bool {
	s, ok := member.(string)
	return ok && s != ""
}

func isBool(member any) bool {
	_, ok := member.(bool)
	return ok
}

func isTrue(member any) bool {
	b, ok := member.(bool)
	return ok && b
}

// isInteger accepts Go integer kinds and whole-valued floats; JSON
// numbers arrive as float64.
func isInteger(member any) bool {
	_, ok := integerValue(member)
	return ok
}

func isPositiveInteger(member any) bool {
	n, ok := integerValue(member)
	return ok && n >= 1
}

func integerValue(member any) (int64, bool) {
	if member == nil {
		return 0, false
	}
	rv := reflect.ValueOf(member)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// isStringSequence accepts []string or any slice whose elements are all
// strings.
func isStringSequence(member any) bool {
	if _, ok := member.([]string); ok {
		return true
	}
	rv := reflect.ValueOf(member)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if _, ok := rv.Index(i).Interface().(string); !ok {
			return false
		}
	}
	return true
}
