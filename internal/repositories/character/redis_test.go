package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arrakeen/dune-api/internal/entities/dune"
	"github.com/arrakeen/dune-api/internal/errors"
	"github.com/arrakeen/dune-api/internal/pkg/clock"
	redisclient "github.com/arrakeen/dune-api/internal/redis"
	character "github.com/arrakeen/dune-api/internal/repositories/character"
	"github.com/arrakeen/dune-api/internal/testutils"
)

const (
	testCharID   = "char_123"
	testPlayerID = "player_456"
	testHouse    = "House Atreides"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    character.Repository
	client  redisclient.Client
	cleanup func()
	now     time.Time
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.client = client
	s.cleanup = cleanup
	s.now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	repo, err := character.NewRedis(&character.RedisConfig{
		Client: client,
		Clock:  &clock.Fixed{Time: s.now},
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) testCharacter() *dune.Character {
	char := dune.NewCharacter(&dune.CharacterConfig{
		ID:       testCharID,
		PlayerID: testPlayerID,
		House:    testHouse,
	})
	char.Traits = []dune.Trait{*dune.NewTrait("Mentat")}
	char.Talents = []dune.Talent{*dune.NewTalent("Bold", "Acts without hesitation")}
	return char
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)
	s.Equal(s.now.Unix(), created.Character.CreatedAt)
	s.Equal(s.now.Unix(), created.Character.UpdatedAt)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: testCharID})
	s.Require().NoError(err)
	s.Equal(testCharID, got.Character.ID)
	s.Equal(testPlayerID, got.Character.PlayerID)
	s.Equal(testHouse, got.Character.House)
	s.Require().Len(got.Character.Traits, 1)
	s.Equal("Mentat", got.Character.Traits[0].Name)
	s.Require().Len(got.Character.Talents, 1)
	s.True(got.Character.Talents[0].IsUnique())
	s.Equal(dune.DefaultSkillValue, got.Character.Skills[dune.SkillBattle])
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: nil})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, character.CreateInput{
		Character: dune.NewCharacter(&dune.CharacterConfig{}),
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, character.GetInput{ID: "char_missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateReindexes() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)

	updated := s.testCharacter()
	updated.House = "House Harkonnen"
	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: updated})
	s.Require().NoError(err)

	byOld, err := s.repo.ListByHouse(s.ctx, character.ListByHouseInput{House: testHouse})
	s.Require().NoError(err)
	s.Empty(byOld.Characters)

	byNew, err := s.repo.ListByHouse(s.ctx, character.ListByHouseInput{House: "House Harkonnen"})
	s.Require().NoError(err)
	s.Require().Len(byNew.Characters, 1)
	s.Equal(testCharID, byNew.Characters[0].ID)
}

func (s *RedisRepositoryTestSuite) TestUpdateNotFound() {
	_, err := s.repo.Update(s.ctx, character.UpdateInput{Character: s.testCharacter()})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{ID: testCharID})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, character.GetInput{ID: testCharID})
	s.True(errors.IsNotFound(err))

	byPlayer, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Empty(byPlayer.Characters)
}

func (s *RedisRepositoryTestSuite) TestListByPlayerID() {
	for _, id := range []string{"char_1", "char_2"} {
		char := s.testCharacter()
		char.ID = id
		_, err := s.repo.Create(s.ctx, character.CreateInput{Character: char})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Len(out.Characters, 2)

	_, err = s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: ""})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestListPrunesStaleIndexEntries() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)

	// Plant an index member whose character record no longer exists
	indexKey := "character:player:" + testPlayerID
	s.Require().NoError(s.client.SAdd(s.ctx, indexKey, "char_gone").Err())

	out, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Require().Len(out.Characters, 1)
	s.Equal(testCharID, out.Characters[0].ID)

	members, err := s.client.SMembers(s.ctx, indexKey).Result()
	s.Require().NoError(err)
	s.NotContains(members, "char_gone")
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
