package character_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arrakeen/dune-api/internal/engine"
	"github.com/arrakeen/dune-api/internal/entities/dune"
	"github.com/arrakeen/dune-api/internal/errors"
	character "github.com/arrakeen/dune-api/internal/orchestrators/character"
	"github.com/arrakeen/dune-api/internal/pkg/idgen"
	characterrepo "github.com/arrakeen/dune-api/internal/repositories/character"
	"github.com/arrakeen/dune-api/internal/testutils"
)

const testPlayerID = "player_456"

type OrchestratorTestSuite struct {
	suite.Suite
	svc     character.Service
	repo    characterrepo.Repository
	cleanup func()
	ctx     context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo

	svc, err := character.NewOrchestrator(&character.Config{
		CharacterRepo: repo,
		IDGenerator:   idgen.NewSequential("char"),
	})
	s.Require().NoError(err)
	s.svc = svc
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := character.NewOrchestrator(&character.Config{})
	s.Error(err)
}

func (s *OrchestratorTestSuite) TestCreateCharacter() {
	out, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		PlayerID: testPlayerID,
		House:    "House Atreides",
		Skills:   map[string]int{dune.SkillBattle: 6},
	})
	s.Require().NoError(err)
	s.NotEmpty(out.Character.ID)
	s.Equal(6, out.Character.Skills[dune.SkillBattle])
	s.Equal(dune.DefaultSkillValue, out.Character.Skills[dune.SkillMove])
}

func (s *OrchestratorTestSuite) TestCreateCharacterLogsEntityIdentity() {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	out, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		PlayerID: testPlayerID,
	})
	s.Require().NoError(err)

	// Characters are addressed as typed entities at the logging boundary
	s.Contains(buf.String(), "entity_type=character")
	s.Contains(buf.String(), "entity_id="+out.Character.ID)
}

func (s *OrchestratorTestSuite) TestCreateCharacterNormalizesDuplicates() {
	out, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		PlayerID: testPlayerID,
		Traits: []dune.Trait{
			{Name: "Mentat", Count: 1, IsTrait: true},
			{Name: "Mentat", Count: 1, IsTrait: true},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Character.Traits, 1)
	s.Equal(2, out.Character.Traits[0].Count)
}

func (s *OrchestratorTestSuite) TestCreateCharacterRejectsBadRatings() {
	_, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		PlayerID: testPlayerID,
		Skills:   map[string]int{"Piloting": 5},
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		PlayerID: testPlayerID,
		Drives:   map[string]int{dune.DriveDuty: 12},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestValidateCharacter() {
	created, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		PlayerID: testPlayerID,
	})
	s.Require().NoError(err)

	// Sneak a duplicate past normalization by editing the stored record
	char := created.Character
	char.Traits = []dune.Trait{
		{Name: "Fremen", Count: 1, IsTrait: true},
		{Name: "Fremen", Count: 1, IsTrait: true},
	}
	_, err = s.repo.Update(s.ctx, characterrepo.UpdateInput{Character: char})
	s.Require().NoError(err)

	out, err := s.svc.ValidateCharacter(s.ctx, &character.ValidateCharacterInput{
		CharacterID: char.ID,
	})
	s.Require().NoError(err)
	s.False(out.Clean)
	s.NotEmpty(out.Report.Subgroup(engine.SubgroupTraits)["Fremen"])
}

func (s *OrchestratorTestSuite) TestNormalizeCharacterPersists() {
	created, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		PlayerID: testPlayerID,
	})
	s.Require().NoError(err)

	char := created.Character
	char.Traits = []dune.Trait{
		{Name: "Fremen", Count: 1, IsTrait: true},
		{Name: "Fremen", Count: 1, IsTrait: true},
	}
	_, err = s.repo.Update(s.ctx, characterrepo.UpdateInput{Character: char})
	s.Require().NoError(err)

	out, err := s.svc.NormalizeCharacter(s.ctx, &character.NormalizeCharacterInput{
		CharacterID: char.ID,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Character.Traits, 1)
	s.Equal(2, out.Character.Traits[0].Count)

	stored, err := s.svc.GetCharacter(s.ctx, &character.GetCharacterInput{CharacterID: char.ID})
	s.Require().NoError(err)
	s.Len(stored.Character.Traits, 1)
}

func (s *OrchestratorTestSuite) TestInstantiateTalent() {
	created, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		PlayerID: testPlayerID,
	})
	s.Require().NoError(err)

	out, err := s.svc.InstantiateTalent(s.ctx, &character.InstantiateTalentInput{
		CharacterID: created.Character.ID,
		NamePattern: "Friend of [Skill]",
		Description: "Gains an advantage on [Skill] tests among allies.",
		Arguments:   []any{dune.NewSkill(dune.SkillBattle)},
	})
	s.Require().NoError(err)
	s.Equal("Friend of Battle", out.Talent.Name)
	s.Require().Len(out.Character.Talents, 1)

	// Unique talents cannot be granted twice
	_, err = s.svc.InstantiateTalent(s.ctx, &character.InstantiateTalentInput{
		CharacterID: created.Character.ID,
		NamePattern: "Friend of [Skill]",
		Description: "Gains an advantage on [Skill] tests among allies.",
		Arguments:   []any{dune.NewSkill(dune.SkillBattle)},
	})
	s.True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestInstantiateTalentRejectsBadArgs() {
	created, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		PlayerID: testPlayerID,
	})
	s.Require().NoError(err)

	_, err = s.svc.InstantiateTalent(s.ctx, &character.InstantiateTalentInput{
		CharacterID: created.Character.ID,
		NamePattern: "Friend of [Skill]",
		Arguments:   []any{"not a skill entity"},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListAndDelete() {
	created, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		PlayerID: testPlayerID,
	})
	s.Require().NoError(err)

	list, err := s.svc.ListCharacters(s.ctx, &character.ListCharactersInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Len(list.Characters, 1)

	_, err = s.svc.DeleteCharacter(s.ctx, &character.DeleteCharacterInput{
		CharacterID: created.Character.ID,
	})
	s.Require().NoError(err)

	_, err = s.svc.GetCharacter(s.ctx, &character.GetCharacterInput{
		CharacterID: created.Character.ID,
	})
	s.True(errors.IsNotFound(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
