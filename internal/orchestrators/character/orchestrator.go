// Package character implements the character orchestrator for the Dune 2d20 system
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/arrakeen/dune-api/internal/orchestrators/character Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/arrakeen/dune-api/internal/engine"
	"github.com/arrakeen/dune-api/internal/entities/dune"
	"github.com/arrakeen/dune-api/internal/errors"
	"github.com/arrakeen/dune-api/internal/pkg/idgen"
	characterrepo "github.com/arrakeen/dune-api/internal/repositories/character"
	"github.com/arrakeen/dune-api/internal/template"
)

// Service defines the interface for character operations
type Service interface {
	// CreateCharacter validates and persists a new character
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// ListCharacters lists all characters belonging to a player
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)

	// DeleteCharacter removes a character
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// ValidateCharacter reports duplicate entries per subgroup
	ValidateCharacter(ctx context.Context, input *ValidateCharacterInput) (*ValidateCharacterOutput, error)

	// NormalizeCharacter folds duplicate traits and persists the result
	NormalizeCharacter(ctx context.Context, input *NormalizeCharacterInput) (*NormalizeCharacterOutput, error)

	// InstantiateTalent fills a talent template and grants the result
	InstantiateTalent(ctx context.Context, input *InstantiateTalentInput) (*InstantiateTalentOutput, error)
}

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	IDGenerator   idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	charRepo characterrepo.Repository
	idGen    idgen.Generator
}

// NewOrchestrator creates a new character orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		charRepo: cfg.CharacterRepo,
		idGen:    cfg.IDGenerator,
	}, nil
}

func (o *orchestrator) CreateCharacter(
	ctx context.Context,
	input *CreateCharacterInput,
) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	if err := validateRatings(input.Skills, input.Drives); err != nil {
		return nil, err
	}

	char := dune.NewCharacter(&dune.CharacterConfig{
		ID:       o.idGen.Generate(),
		PlayerID: input.PlayerID,
		House:    input.House,
		Traits:   input.Traits,
		Talents:  input.Talents,
		Assets:   input.Assets,
		Skills:   input.Skills,
		Drives:   input.Drives,
	})

	// Fold any duplicates the caller handed us before persisting
	engine.Normalize(char)

	var entity core.Entity = engine.WrapCharacter(char)
	slog.InfoContext(ctx, "creating character",
		"entity_type", entity.GetType(),
		"entity_id", entity.GetID(),
		"player_id", char.PlayerID,
		"house", char.House)

	createOutput, err := o.charRepo.Create(ctx, characterrepo.CreateInput{Character: char})
	if err != nil {
		return nil, err
	}

	return &CreateCharacterOutput{Character: createOutput.Character}, nil
}

func (o *orchestrator) GetCharacter(
	ctx context.Context,
	input *GetCharacterInput,
) (*GetCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	getOutput, err := o.charRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	return &GetCharacterOutput{Character: getOutput.Character}, nil
}

func (o *orchestrator) ListCharacters(
	ctx context.Context,
	input *ListCharactersInput,
) (*ListCharactersOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	listOutput, err := o.charRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, err
	}

	return &ListCharactersOutput{Characters: listOutput.Characters}, nil
}

func (o *orchestrator) DeleteCharacter(
	ctx context.Context,
	input *DeleteCharacterInput,
) (*DeleteCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	slog.InfoContext(ctx, "deleting character", "character_id", input.CharacterID)

	if _, err := o.charRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, err
	}

	return &DeleteCharacterOutput{}, nil
}

func (o *orchestrator) ValidateCharacter(
	ctx context.Context,
	input *ValidateCharacterInput,
) (*ValidateCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	getOutput, err := o.charRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	report, err := engine.Check(getOutput.Character, engine.CheckOptions{FailFast: input.FailFast})
	if err != nil {
		return nil, err
	}

	return &ValidateCharacterOutput{Report: report, Clean: report.Clean()}, nil
}

func (o *orchestrator) NormalizeCharacter(
	ctx context.Context,
	input *NormalizeCharacterInput,
) (*NormalizeCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	getOutput, err := o.charRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	char := getOutput.Character
	engine.Normalize(char)

	updateOutput, err := o.charRepo.Update(ctx, characterrepo.UpdateInput{Character: char})
	if err != nil {
		return nil, err
	}

	return &NormalizeCharacterOutput{Character: updateOutput.Character}, nil
}

func (o *orchestrator) InstantiateTalent(
	ctx context.Context,
	input *InstantiateTalentInput,
) (*InstantiateTalentOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	tmpl, err := template.New(input.NamePattern, input.Description)
	if err != nil {
		return nil, err
	}

	talent, err := tmpl.CreateInstance(input.Arguments)
	if err != nil {
		return nil, err
	}

	getOutput, err := o.charRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	char := getOutput.Character
	for i := range char.Talents {
		if char.Talents[i].IsUnique() && talent.IsUnique() && char.Talents[i].Name == talent.Name {
			return nil, errors.AlreadyExistsf("character already has talent %q", talent.Name)
		}
	}
	char.Talents = append(char.Talents, *talent)

	var entity core.Entity = engine.WrapCharacter(char)
	slog.InfoContext(ctx, "instantiated talent",
		"entity_type", entity.GetType(),
		"entity_id", entity.GetID(),
		"talent", talent.Name)

	updateOutput, err := o.charRepo.Update(ctx, characterrepo.UpdateInput{Character: char})
	if err != nil {
		return nil, err
	}

	return &InstantiateTalentOutput{Character: updateOutput.Character, Talent: talent}, nil
}

// validateRatings bounds-checks skill and drive ratings against the
// 2d20 ranges before a character is built from them
func validateRatings(skills, drives map[string]int) error {
	vb := errors.NewValidationBuilder()

	for name, value := range skills {
		if !dune.IsCanonicalSkill(name) {
			vb.InvalidField("skills", "unknown skill "+name)
			continue
		}
		if value < dune.MinSkillValue || value > dune.MaxSkillValue {
			vb.Fieldf("skills", "skill %s rating %d out of range", name, value)
		}
	}
	for name, value := range drives {
		if !dune.IsCanonicalDrive(name) {
			vb.InvalidField("drives", "unknown drive "+name)
			continue
		}
		if value < dune.MinDriveValue || value > dune.MaxDriveValue {
			vb.Fieldf("drives", "drive %s rating %d out of range", name, value)
		}
	}

	return vb.Build()
}
