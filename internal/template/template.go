// Package template implements placeholder-driven talent templates: a
// name pattern containing typed slots is parsed once, then stamped into
// concrete talents from an ordered argument list.
package template

import (
	"regexp"
	"strings"

	"github.com/arrakeen/dune-api/internal/entities/dune"
	"github.com/arrakeen/dune-api/internal/errors"
)

// Placeholders take the form [Kind] or [KindIndex], e.g. [Drive] or
// [Talent2]. Compiled once for all templates.
var placeholderRegexp = regexp.MustCompile(`\[([A-Z][A-Za-z]*)([0-9]*)\]`)

// slot is one distinct placeholder key with its gatekeeper and
// substitution function, fixed at construction.
type slot struct {
	key        string
	token      string
	accepts    func(any) bool
	substitute func(any) (string, bool)
}

// TalentTemplate stamps out talents from a name pattern. It is a pure
// function of its captured pattern: built once, safe to reuse.
type TalentTemplate struct {
	namePattern string
	description string
	slots       []slot
}

// New parses namePattern and builds a template. Each distinct
// placeholder key claims one positional argument, in first-appearance
// order; repeated keys share their first occurrence's slot.
func New(namePattern, description string) (*TalentTemplate, error) {
	if strings.TrimSpace(namePattern) == "" {
		return nil, errors.InvalidArgument("talent template name pattern cannot be empty")
	}

	t := &TalentTemplate{
		namePattern: namePattern,
		description: description,
	}

	seen := make(map[string]bool)
	for _, m := range placeholderRegexp.FindAllStringSubmatch(namePattern, -1) {
		token, kind, index := m[0], m[1], m[2]
		key := kind + index
		if seen[key] {
			continue
		}
		seen[key] = true

		accepts, substitute := slotFuncs(kind)
		t.slots = append(t.slots, slot{
			key:        key,
			token:      token,
			accepts:    accepts,
			substitute: substitute,
		})
	}

	return t, nil
}

// slotFuncs selects the gatekeeper and substitution function for a
// placeholder kind. Recognized kinds take the matching domain entity and
// substitute its name; anything else takes a non-empty string verbatim.
func slotFuncs(kind string) (func(any) bool, func(any) (string, bool)) {
	switch kind {
	case "Drive":
		return dune.IsDrive, dune.NameOf
	case "Talent":
		return dune.IsTalent, dune.NameOf
	case "Trait":
		return dune.IsTrait, dune.NameOf
	case "Asset":
		return dune.IsAsset, dune.NameOf
	case "Skill":
		return dune.IsSkill, dune.NameOf
	default:
		return acceptsNonEmptyString, rawString
	}
}

func acceptsNonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func rawString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// NamePattern returns the pattern the template was built from.
func (t *TalentTemplate) NamePattern() string {
	return t.namePattern
}

// Placeholders returns the distinct placeholder keys in first-appearance
// order.
func (t *TalentTemplate) Placeholders() []string {
	keys := make([]string, len(t.slots))
	for i, sl := range t.slots {
		keys[i] = sl.key
	}
	return keys
}

// ValidInstantiator reports whether args can instantiate the template:
// at least one argument per placeholder, each accepted by its positional
// gatekeeper.
func (t *TalentTemplate) ValidInstantiator(args []any) bool {
	if len(args) < len(t.slots) {
		return false
	}
	for i, sl := range t.slots {
		if !sl.accepts(args[i]) {
			return false
		}
	}
	return true
}

// CreateInstance materializes a concrete talent from args. Every
// occurrence of a placeholder key, in both the name pattern and the
// description, resolves to the same supplied value.
func (t *TalentTemplate) CreateInstance(args []any) (*dune.Talent, error) {
	if len(args) < len(t.slots) {
		return nil, errors.InvalidArgumentf(
			"talent template %q requires %d arguments, got %d",
			t.namePattern, len(t.slots), len(args))
	}
	for i, sl := range t.slots {
		if !sl.accepts(args[i]) {
			return nil, errors.InvalidArgumentf(
				"talent template %q: argument %d rejected by gatekeeper for %s",
				t.namePattern, i, sl.key)
		}
	}

	name := t.namePattern
	description := t.description
	for i, sl := range t.slots {
		value, ok := sl.substitute(args[i])
		if !ok {
			return nil, errors.Assertionf(
				"talent template %q: argument %d passed its gatekeeper but has no display value",
				t.namePattern, i)
		}
		name = strings.ReplaceAll(name, sl.token, value)
		description = strings.ReplaceAll(description, sl.token, value)
	}

	unique := true
	return &dune.Talent{
		Name:        name,
		Description: description,
		Count:       1,
		IsTalent:    true,
		Unique:      &unique,
	}, nil
}
