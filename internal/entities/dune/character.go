// Package dune implements the Dune 2d20 entities
package dune

// Trait represents a narrative descriptor attached to a character.
// Identity is the name; holding the same trait twice is legitimate and
// folds into a single entry with an incremented count.
// NOTE: This is a data-only struct. Duplicate detection and merging are
// done by the engine (internal/engine), not here.
type Trait struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count"`
	IsTrait     bool   `json:"isTrait"`
}

// NewTrait creates a trait with a count of one.
func NewTrait(name string) *Trait {
	return &Trait{Name: name, Count: 1, IsTrait: true}
}

// Talent represents a learned capability. Identity is the (unique, name)
// pair: two talents collide only when both are unique and share a name.
type Talent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count,omitempty"`
	IsTalent    bool   `json:"isTalent"`
	// Unique defaults to true when unset
	Unique *bool `json:"unique,omitempty"`
}

// NewTalent creates a unique talent.
func NewTalent(name, description string) *Talent {
	return &Talent{Name: name, Description: description, Count: 1, IsTalent: true}
}

// IsUnique reports the effective uniqueness, defaulting to true.
func (t *Talent) IsUnique() bool {
	return t.Unique == nil || *t.Unique
}

// Asset represents something a character holds: a trait plus quality,
// type tags, and handling flags. Reserved and Transferrable describe how
// an asset may be used, not what it is, and are excluded from identity.
type Asset struct {
	Trait
	IsAsset       bool     `json:"isAsset"`
	Quality       int      `json:"quality,omitempty"`
	Types         []string `json:"types,omitempty"`
	Tangible      bool     `json:"tangible,omitempty"`
	Temporary     bool     `json:"temporary,omitempty"`
	Reserved      bool     `json:"reserved,omitempty"`
	Transferrable bool     `json:"transferrable,omitempty"`
}

// NewAsset creates an asset with a count of one.
func NewAsset(name string) *Asset {
	return &Asset{Trait: Trait{Name: name, Count: 1, IsTrait: true}, IsAsset: true}
}

// Drive represents one of the five motivations, optionally challenged
// and carrying a personal statement.
type Drive struct {
	Name       string `json:"name"`
	IsDrive    bool   `json:"isDrive"`
	Challenged bool   `json:"challenged,omitempty"`
	Value      int    `json:"value,omitempty"`
	Statement  string `json:"statement,omitempty"`
}

// NewDrive creates a drive.
func NewDrive(name string) *Drive {
	return &Drive{Name: name, IsDrive: true}
}

// Skill represents one of the five skills.
type Skill struct {
	Name    string `json:"name"`
	IsSkill bool   `json:"isSkill"`
	Value   int    `json:"value"`
}

// NewSkill creates a skill at the default rating.
func NewSkill(name string) *Skill {
	return &Skill{Name: name, IsSkill: true, Value: DefaultSkillValue}
}

// Character is the aggregate root for a Dune character. Sub-collections
// are mutated only through the engine's check and normalize operations;
// after normalization no two traits share a name, no two unique talents
// share a name, and no two assets are asset-equal.
type Character struct {
	ID        string         `json:"id"`
	PlayerID  string         `json:"playerId"`
	House     string         `json:"house,omitempty"`
	Traits    []Trait        `json:"traits"`
	Talents   []Talent       `json:"talents"`
	Assets    []Asset        `json:"assets"`
	Skills    map[string]int `json:"skills"`
	Drives    map[string]int `json:"drives"`
	CreatedAt int64          `json:"createdAt,omitempty"`
	UpdatedAt int64          `json:"updatedAt,omitempty"`
}

// CharacterConfig carries the options a character is created from.
// Omitted skills take the default rating.
type CharacterConfig struct {
	ID       string
	PlayerID string
	House    string
	Traits   []Trait
	Talents  []Talent
	Assets   []Asset
	Skills   map[string]int
	Drives   map[string]int
}

// NewCharacter creates a character from cfg, filling in default skill
// ratings for any canonical skill the config omits.
func NewCharacter(cfg *CharacterConfig) *Character {
	if cfg == nil {
		cfg = &CharacterConfig{}
	}

	skills := make(map[string]int, len(SkillNames()))
	for _, name := range SkillNames() {
		skills[name] = DefaultSkillValue
	}
	for name, value := range cfg.Skills {
		skills[name] = value
	}

	drives := make(map[string]int, len(cfg.Drives))
	for name, value := range cfg.Drives {
		drives[name] = value
	}

	return &Character{
		ID:       cfg.ID,
		PlayerID: cfg.PlayerID,
		House:    cfg.House,
		Traits:   append([]Trait(nil), cfg.Traits...),
		Talents:  append([]Talent(nil), cfg.Talents...),
		Assets:   append([]Asset(nil), cfg.Assets...),
		Skills:   skills,
		Drives:   drives,
	}
}

// FindTrait returns the index of the first trait with the given name,
// or -1 when absent.
func (c *Character) FindTrait(name string) int {
	for i := range c.Traits {
		if c.Traits[i].Name == name {
			return i
		}
	}
	return -1
}

// AddTrait adds a trait, incrementing the count of an existing entry
// with the same name instead of appending a duplicate.
func (c *Character) AddTrait(t Trait) {
	if i := c.FindTrait(t.Name); i >= 0 {
		c.Traits[i].Count += t.Count
		return
	}
	c.Traits = append(c.Traits, t)
}
