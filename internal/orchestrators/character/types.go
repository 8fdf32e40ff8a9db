package character

import (
	"github.com/arrakeen/dune-api/internal/engine"
	"github.com/arrakeen/dune-api/internal/entities/dune"
)

// CreateCharacterInput defines the input for creating a character
type CreateCharacterInput struct {
	PlayerID string
	House    string
	Traits   []dune.Trait
	Talents  []dune.Talent
	Assets   []dune.Asset
	Skills   map[string]int
	Drives   map[string]int
}

// CreateCharacterOutput defines the output for creating a character
type CreateCharacterOutput struct {
	Character *dune.Character
}

// GetCharacterInput defines the input for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the output for getting a character
type GetCharacterOutput struct {
	Character *dune.Character
}

// ListCharactersInput defines the input for listing a player's characters
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput defines the output for listing a player's characters
type ListCharactersOutput struct {
	Characters []*dune.Character
}

// DeleteCharacterInput defines the input for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the output for deleting a character
type DeleteCharacterOutput struct{}

// ValidateCharacterInput defines the input for validating a character
type ValidateCharacterInput struct {
	CharacterID string
	FailFast    bool
}

// ValidateCharacterOutput carries the per-subgroup duplicate report
type ValidateCharacterOutput struct {
	Report engine.Report
	Clean  bool
}

// NormalizeCharacterInput defines the input for normalizing a character
type NormalizeCharacterInput struct {
	CharacterID string
}

// NormalizeCharacterOutput returns the character after duplicate folding
type NormalizeCharacterOutput struct {
	Character *dune.Character
}

// InstantiateTalentInput defines the input for instantiating a talent template
type InstantiateTalentInput struct {
	CharacterID string
	NamePattern string
	Description string
	// Arguments fill the template's placeholders positionally
	Arguments []any
}

// InstantiateTalentOutput returns the updated character and the new talent
type InstantiateTalentOutput struct {
	Character *dune.Character
	Talent    *dune.Talent
}
