// Package skilltest implements the 2d20 skill test orchestrator
package skilltest

//go:generate mockgen -destination=mock/mock_service.go -package=skilltestmock github.com/arrakeen/dune-api/internal/orchestrators/skilltest Service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/arrakeen/dune-api/internal/engine"
	"github.com/arrakeen/dune-api/internal/entities/dune"
	"github.com/arrakeen/dune-api/internal/errors"
	characterrepo "github.com/arrakeen/dune-api/internal/repositories/character"
)

const (
	// BaseDice is the number of d20s every test starts with
	BaseDice = 2

	// MaxBonusDice caps momentum/determination dice bought for a test
	MaxBonusDice = 3

	dieSize = 20

	// MaxDifficulty is the highest difficulty the rulebook defines
	MaxDifficulty = 5
)

// Service defines the interface for skill test operations
type Service interface {
	RollSkillTest(ctx context.Context, input *RollSkillTestInput) (*RollSkillTestOutput, error)
}

// RollSkillTestInput defines the parameters of a 2d20 test
type RollSkillTestInput struct {
	CharacterID string
	Skill       string
	Drive       string
	Difficulty  int
	BonusDice   int
	// Focused doubles successes on dice at or under the skill rating
	Focused bool
}

// RollSkillTestOutput carries the resolved test
type RollSkillTestOutput struct {
	Rolls         []int
	Target        int
	Successes     int
	Complications int
	Succeeded     bool
	Momentum      int
}

// Config holds the dependencies for the skill test orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	charRepo characterrepo.Repository
}

// NewOrchestrator creates a new skill test orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{charRepo: cfg.CharacterRepo}, nil
}

func (o *orchestrator) RollSkillTest(
	ctx context.Context,
	input *RollSkillTestInput,
) (*RollSkillTestOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if !dune.IsCanonicalSkill(input.Skill) {
		return nil, errors.InvalidArgumentf("unknown skill %q", input.Skill)
	}
	if !dune.IsCanonicalDrive(input.Drive) {
		return nil, errors.InvalidArgumentf("unknown drive %q", input.Drive)
	}
	if input.Difficulty < 0 || input.Difficulty > MaxDifficulty {
		return nil, errors.OutOfRangef("difficulty %d out of range [0,%d]", input.Difficulty, MaxDifficulty)
	}
	if input.BonusDice < 0 || input.BonusDice > MaxBonusDice {
		return nil, errors.OutOfRangef("bonus dice %d out of range [0,%d]", input.BonusDice, MaxBonusDice)
	}

	getOutput, err := o.charRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	char := getOutput.Character

	skillValue, ok := char.Skills[input.Skill]
	if !ok {
		return nil, errors.FailedPreconditionf("character %s has no %s rating", char.ID, input.Skill)
	}
	driveValue, ok := char.Drives[input.Drive]
	if !ok {
		return nil, errors.FailedPreconditionf("character %s has no %s rating", char.ID, input.Drive)
	}
	target := skillValue + driveValue

	rolls, err := rollD20s(BaseDice + input.BonusDice)
	if err != nil {
		return nil, err
	}

	successes, complications := 0, 0
	for _, roll := range rolls {
		switch {
		case roll == 1, input.Focused && roll <= skillValue:
			successes += 2
		case roll <= target:
			successes++
		}
		if roll == dieSize {
			complications++
		}
	}

	succeeded := successes >= input.Difficulty
	momentum := 0
	if succeeded {
		momentum = successes - input.Difficulty
	}

	var entity core.Entity = engine.WrapCharacter(char)
	slog.InfoContext(ctx, "resolved skill test",
		"entity_type", entity.GetType(),
		"entity_id", entity.GetID(),
		"skill", input.Skill,
		"drive", input.Drive,
		"target", target,
		"rolls", rolls,
		"successes", successes,
		"complications", complications,
		"succeeded", succeeded)

	return &RollSkillTestOutput{
		Rolls:         rolls,
		Target:        target,
		Successes:     successes,
		Complications: complications,
		Succeeded:     succeeded,
		Momentum:      momentum,
	}, nil
}

// rollD20s rolls count d20s and returns the individual faces, parsed
// out of the toolkit's roll description ("+2d20[13,4]=17")
func rollD20s(count int) ([]int, error) {
	roll, err := dice.NewRoll(count, dieSize)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create dice roll")
	}

	description := roll.GetDescription()
	start := strings.Index(description, "[")
	end := strings.Index(description, "]")
	if start < 0 || end <= start {
		return nil, errors.Internalf("unexpected roll description %q", description)
	}

	faces := strings.Split(description[start+1:end], ",")
	rolls := make([]int, 0, count)
	for _, face := range faces {
		value, err := strconv.Atoi(strings.TrimSpace(face))
		if err != nil {
			return nil, errors.Wrapf(err, "unexpected roll description %q", description)
		}
		rolls = append(rolls, value)
	}

	return rolls, nil
}
