package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/arrakeen/dune-api/internal/entities/dune"
)

// CharacterEntity wraps dune.Character to implement the core.Entity
// interface, letting toolkit consumers address characters by ID and type.
type CharacterEntity struct {
	*dune.Character
}

// GetID returns the character's ID
func (c *CharacterEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type
func (c *CharacterEntity) GetType() string {
	return "character"
}

// WrapCharacter converts a dune.Character to a CharacterEntity
func WrapCharacter(character *dune.Character) *CharacterEntity {
	return &CharacterEntity{Character: character}
}

// Compile-time check that the wrapper implements core.Entity
var _ core.Entity = (*CharacterEntity)(nil)
