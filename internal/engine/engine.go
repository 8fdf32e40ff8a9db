// Package engine implements character validation and normalization:
// duplicate detection over a character's sub-collections under
// sub-group-specific identity rules, and the repair operation that folds
// duplicate traits into counted entries.
package engine

import (
	"github.com/arrakeen/dune-api/internal/entities/dune"
	"github.com/arrakeen/dune-api/internal/equality"
	"github.com/arrakeen/dune-api/internal/errors"
)

// Sub-group names used as report keys
const (
	SubgroupTraits  = "traits"
	SubgroupAssets  = "assets"
	SubgroupTalents = "talents"
	SubgroupSkills  = "skills"
	SubgroupDrives  = "drives"
)

// CheckOptions controls duplicate scanning behavior
type CheckOptions struct {
	// FailFast raises on the first collision instead of accumulating
	// a report
	FailFast bool
}

// Report maps sub-group name to entity name to the errors recorded for
// it. An empty sub-map signals a clean sub-group.
type Report map[string]map[string][]error

// NewReport creates a report with an empty entry per sub-group.
func NewReport() Report {
	return Report{
		SubgroupTraits:  {},
		SubgroupAssets:  {},
		SubgroupTalents: {},
		SubgroupSkills:  {},
		SubgroupDrives:  {},
	}
}

// Clean reports whether no sub-group recorded any error.
func (r Report) Clean() bool {
	for _, entities := range r {
		if len(entities) > 0 {
			return false
		}
	}
	return true
}

// Subgroup returns the recorded errors for one sub-group.
func (r Report) Subgroup(name string) map[string][]error {
	return r[name]
}

func (r Report) add(subgroup, name string, err error) {
	if r[subgroup] == nil {
		r[subgroup] = make(map[string][]error)
	}
	r[subgroup][name] = append(r[subgroup][name], err)
}

// Check scans every sub-collection of c for duplicates under its
// identity rule. In FailFast mode the first collision is returned as an
// error and scanning stops; otherwise all collisions accumulate into the
// report. Skills and drives are name-keyed maps, so they cannot hold
// duplicates, but they appear in the report for uniform consumption.
func Check(c *dune.Character, opts CheckOptions) (Report, error) {
	report := NewReport()
	if c == nil {
		return report, nil
	}

	if err := scanDuplicates(report, SubgroupTraits, len(c.Traits), opts.FailFast,
		func(i int) string { return c.Traits[i].Name },
		func(i, j int) bool { return TraitsCollide(&c.Traits[i], &c.Traits[j]) },
	); err != nil {
		return report, err
	}

	if err := scanDuplicates(report, SubgroupAssets, len(c.Assets), opts.FailFast,
		func(i int) string { return c.Assets[i].Name },
		func(i, j int) bool { return AssetsCollide(&c.Assets[i], &c.Assets[j]) },
	); err != nil {
		return report, err
	}

	if err := scanDuplicates(report, SubgroupTalents, len(c.Talents), opts.FailFast,
		func(i int) string { return c.Talents[i].Name },
		func(i, j int) bool { return TalentsCollide(&c.Talents[i], &c.Talents[j]) },
	); err != nil {
		return report, err
	}

	return report, nil
}

// scanDuplicates compares every element against all elements before it.
func scanDuplicates(report Report, subgroup string, n int, failFast bool,
	nameAt func(int) string, collide func(i, j int) bool) error {
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			if !collide(i, j) {
				continue
			}
			err := errors.AlreadyExistsf("duplicate in %s: %q at index %d collides with index %d",
				subgroup, nameAt(i), i, j).
				WithMeta("subgroup", subgroup).
				WithMeta("first_index", j).
				WithMeta("second_index", i)
			if failFast {
				return err
			}
			report.add(subgroup, nameAt(i), err)
			break
		}
	}
	return nil
}

// TraitsCollide reports trait identity: the name.
func TraitsCollide(a, b *dune.Trait) bool {
	return a.Name == b.Name
}

// TalentsCollide reports talent identity: the (unique, name) pair. Two
// non-unique talents never collide, whatever their names.
func TalentsCollide(a, b *dune.Talent) bool {
	return a.IsUnique() && b.IsUnique() && a.Name == b.Name
}

// AssetsCollide reports structural asset equality over name, quality,
// the ordered types array, tangible, and temporary. Reserved and
// transferrable describe usage, not identity, and are excluded.
func AssetsCollide(a, b *dune.Asset) bool {
	return a.Name == b.Name &&
		a.Quality == b.Quality &&
		equality.EqualSlices(a.Types, b.Types, nil) &&
		a.Tangible == b.Tangible &&
		a.Temporary == b.Temporary
}

// Normalize folds duplicate traits into the first occurrence, growing
// its count per duplicate found. Duplication is a legitimate signal for
// traits, unlike the other sub-groups, so this repairs rather than
// rejects. The character is mutated in place.
func Normalize(c *dune.Character) {
	if c == nil || len(c.Traits) < 2 {
		return
	}

	index := make(map[string]int, len(c.Traits))
	merged := make([]dune.Trait, 0, len(c.Traits))
	for _, t := range c.Traits {
		if t.Count < 1 {
			t.Count = 1
		}
		if i, ok := index[t.Name]; ok {
			merged[i].Count += t.Count
			continue
		}
		index[t.Name] = len(merged)
		merged = append(merged, t)
	}
	c.Traits = merged
}
