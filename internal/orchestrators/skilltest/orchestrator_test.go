package skilltest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arrakeen/dune-api/internal/entities/dune"
	"github.com/arrakeen/dune-api/internal/errors"
	"github.com/arrakeen/dune-api/internal/orchestrators/skilltest"
	characterrepo "github.com/arrakeen/dune-api/internal/repositories/character"
	"github.com/arrakeen/dune-api/internal/testutils"
)

const testCharID = "char_123"

type SkillTestSuite struct {
	suite.Suite
	svc     skilltest.Service
	cleanup func()
	ctx     context.Context
}

func (s *SkillTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	s.Require().NoError(err)

	char := dune.NewCharacter(&dune.CharacterConfig{
		ID:       testCharID,
		PlayerID: "player_456",
		Skills:   map[string]int{dune.SkillBattle: 6},
		Drives:   map[string]int{dune.DriveDuty: 7},
	})
	_, err = repo.Create(context.Background(), characterrepo.CreateInput{Character: char})
	s.Require().NoError(err)

	svc, err := skilltest.NewOrchestrator(&skilltest.Config{CharacterRepo: repo})
	s.Require().NoError(err)
	s.svc = svc
	s.ctx = context.Background()
}

func (s *SkillTestSuite) TearDownTest() {
	s.cleanup()
}

// recount recomputes successes and complications from the raw faces so
// the test holds for any random outcome
func recount(out *skilltest.RollSkillTestOutput, skillValue int, focused bool) (successes, complications int) {
	for _, roll := range out.Rolls {
		switch {
		case roll == 1, focused && roll <= skillValue:
			successes += 2
		case roll <= out.Target:
			successes++
		}
		if roll == 20 {
			complications++
		}
	}
	return successes, complications
}

func (s *SkillTestSuite) TestRollSkillTest() {
	out, err := s.svc.RollSkillTest(s.ctx, &skilltest.RollSkillTestInput{
		CharacterID: testCharID,
		Skill:       dune.SkillBattle,
		Drive:       dune.DriveDuty,
		Difficulty:  1,
	})
	s.Require().NoError(err)

	s.Equal(13, out.Target)
	s.Require().Len(out.Rolls, skilltest.BaseDice)
	for _, roll := range out.Rolls {
		s.GreaterOrEqual(roll, 1)
		s.LessOrEqual(roll, 20)
	}

	successes, complications := recount(out, 6, false)
	s.Equal(successes, out.Successes)
	s.Equal(complications, out.Complications)
	s.Equal(out.Successes >= 1, out.Succeeded)
	if out.Succeeded {
		s.Equal(out.Successes-1, out.Momentum)
	} else {
		s.Zero(out.Momentum)
	}
}

func (s *SkillTestSuite) TestBonusDiceAddToPool() {
	out, err := s.svc.RollSkillTest(s.ctx, &skilltest.RollSkillTestInput{
		CharacterID: testCharID,
		Skill:       dune.SkillBattle,
		Drive:       dune.DriveDuty,
		Difficulty:  2,
		BonusDice:   3,
	})
	s.Require().NoError(err)
	s.Len(out.Rolls, skilltest.BaseDice+3)
}

func (s *SkillTestSuite) TestFocusedDoublesLowRolls() {
	out, err := s.svc.RollSkillTest(s.ctx, &skilltest.RollSkillTestInput{
		CharacterID: testCharID,
		Skill:       dune.SkillBattle,
		Drive:       dune.DriveDuty,
		Difficulty:  0,
		Focused:     true,
	})
	s.Require().NoError(err)

	successes, _ := recount(out, 6, true)
	s.Equal(successes, out.Successes)
	s.True(out.Succeeded)
}

func (s *SkillTestSuite) TestInputValidation() {
	cases := []struct {
		name  string
		input *skilltest.RollSkillTestInput
		check func(error) bool
	}{
		{
			name:  "missing character",
			input: &skilltest.RollSkillTestInput{Skill: dune.SkillBattle, Drive: dune.DriveDuty},
			check: errors.IsInvalidArgument,
		},
		{
			name: "unknown skill",
			input: &skilltest.RollSkillTestInput{
				CharacterID: testCharID, Skill: "Piloting", Drive: dune.DriveDuty,
			},
			check: errors.IsInvalidArgument,
		},
		{
			name: "unknown drive",
			input: &skilltest.RollSkillTestInput{
				CharacterID: testCharID, Skill: dune.SkillBattle, Drive: "Greed",
			},
			check: errors.IsInvalidArgument,
		},
		{
			name: "difficulty too high",
			input: &skilltest.RollSkillTestInput{
				CharacterID: testCharID, Skill: dune.SkillBattle, Drive: dune.DriveDuty, Difficulty: 6,
			},
			check: errors.IsOutOfRange,
		},
		{
			name: "too many bonus dice",
			input: &skilltest.RollSkillTestInput{
				CharacterID: testCharID, Skill: dune.SkillBattle, Drive: dune.DriveDuty, BonusDice: 4,
			},
			check: errors.IsOutOfRange,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.svc.RollSkillTest(s.ctx, tc.input)
			s.True(tc.check(err))
		})
	}
}

func (s *SkillTestSuite) TestUnknownCharacter() {
	_, err := s.svc.RollSkillTest(s.ctx, &skilltest.RollSkillTestInput{
		CharacterID: "char_missing",
		Skill:       dune.SkillBattle,
		Drive:       dune.DriveDuty,
	})
	s.True(errors.IsNotFound(err))
}

func TestSkillTestSuite(t *testing.T) {
	suite.Run(t, new(SkillTestSuite))
}
