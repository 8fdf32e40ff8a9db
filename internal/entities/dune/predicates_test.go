package dune_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arrakeen/dune-api/internal/entities/dune"
)

type PredicatesTestSuite struct {
	suite.Suite
}

func TestPredicatesSuite(t *testing.T) {
	suite.Run(t, new(PredicatesTestSuite))
}

func (s *PredicatesTestSuite) TestIsNamed() {
	testCases := []struct {
		name     string
		value    any
		expected bool
	}{
		{"single word", "Thief", true},
		{"two words", "Bene Gesserit", true},
		{"dash joined", "Sardaukar-Trained", true},
		{"quoted segment", `Duncan "The Blade" Idaho`, true},
		{"lowercase connective", "Friend of Battle", true},
		{"apostrophe", "Muad'Dib", true},
		{"empty string", "", false},
		{"lowercase start", "thief", false},
		{"number", 42, false},
		{"nil", nil, false},
		{"trailing separator", "Thief-", false},
		{"placeholder not allowed", "Friend of [Skill]", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, dune.IsNamed(tc.value))
		})
	}
}

func (s *PredicatesTestSuite) TestIsNamedWithPlaceholders() {
	s.Assert().True(dune.IsNamedWithPlaceholders("Friend of [Skill]"))
	s.Assert().True(dune.IsNamedWithPlaceholders("[Drive] Follower"))
	s.Assert().True(dune.IsNamedWithPlaceholders("Bound To [Talent2]"))
	s.Assert().True(dune.IsNamedWithPlaceholders("Mentat"))
	s.Assert().False(dune.IsNamedWithPlaceholders("[drive] Follower"), "placeholder kind must be bracketed word")
	s.Assert().False(dune.IsNamedWithPlaceholders(""))
}

func (s *PredicatesTestSuite) TestIsTrait() {
	s.Assert().True(dune.IsTrait(dune.NewTrait("Thief")))
	s.Assert().True(dune.IsTrait(*dune.NewTrait("Thief")))
	s.Assert().True(dune.IsTrait(map[string]any{"name": "Thief", "isTrait": true, "count": 1.0}))
	s.Assert().True(dune.IsTrait(dune.NewAsset("Crysknife")), "assets are traits")

	s.Assert().False(dune.IsTrait(map[string]any{"name": "Thief", "count": 1}))
	s.Assert().False(dune.IsTrait(map[string]any{"name": "thief", "isTrait": true, "count": 1}))
	s.Assert().False(dune.IsTrait(map[string]any{"name": "Thief", "isTrait": true, "count": 0}))
	s.Assert().False(dune.IsTrait(map[string]any{"name": "Thief", "isTrait": true, "count": 1.5}))
	s.Assert().False(dune.IsTrait("Thief"))
	s.Assert().False(dune.IsTrait(nil))
	s.Assert().False(dune.IsTrait(42))
}

func (s *PredicatesTestSuite) TestIsTalent() {
	s.Assert().True(dune.IsTalent(dune.NewTalent("Subtle Step", "Move without drawing attention.")))
	s.Assert().True(dune.IsTalent(map[string]any{
		"name":        "Subtle Step",
		"description": "Move without drawing attention.",
		"isTalent":    true,
		"unique":      false,
	}))

	s.Assert().False(dune.IsTalent(map[string]any{"name": "Subtle Step", "isTalent": true}), "description required")
	s.Assert().False(dune.IsTalent(map[string]any{
		"name":        "Subtle Step",
		"description": "x",
		"isTalent":    true,
		"unique":      "yes",
	}), "unique must be a bool when present")
	s.Assert().False(dune.IsTalent(dune.NewTrait("Thief")))
}

func (s *PredicatesTestSuite) TestIsAsset() {
	asset := dune.NewAsset("Maula Pistol")
	asset.Quality = 1
	asset.Types = []string{"Weapon"}
	s.Assert().True(dune.IsAsset(asset))
	s.Assert().True(dune.IsAsset(map[string]any{
		"name":    "Maula Pistol",
		"isTrait": true,
		"isAsset": true,
		"count":   1,
		"types":   []string{"Weapon"},
	}))

	s.Assert().False(dune.IsAsset(dune.NewTrait("Thief")), "traits are not assets")
	s.Assert().False(dune.IsAsset(map[string]any{
		"name":    "Maula Pistol",
		"isTrait": true,
		"isAsset": true,
		"count":   1,
		"quality": "fine",
	}), "quality must be an integer when present")
}

func (s *PredicatesTestSuite) TestIsDrive() {
	drive := dune.NewDrive("Duty")
	drive.Statement = "House Atreides comes first."
	s.Assert().True(dune.IsDrive(drive))
	s.Assert().True(dune.IsDrive(map[string]any{"name": "Faith", "isDrive": true, "value": 7.0}))

	s.Assert().False(dune.IsDrive(map[string]any{"name": "Faith"}))
	s.Assert().False(dune.IsDrive(map[string]any{"name": "Faith", "isDrive": true, "value": 7.5}))
	s.Assert().False(dune.IsDrive(dune.NewSkill("Battle")))
}

func (s *PredicatesTestSuite) TestIsSkill() {
	s.Assert().True(dune.IsSkill(dune.NewSkill("Battle")))
	s.Assert().True(dune.IsSkill(map[string]any{"name": "Understand", "isSkill": true}))
	s.Assert().False(dune.IsSkill(map[string]any{"name": "Understand"}))
	s.Assert().False(dune.IsSkill(dune.NewDrive("Duty")))
}

func (s *PredicatesTestSuite) TestIsDescribed() {
	s.Assert().True(dune.IsDescribed(map[string]any{"description": "A wiry, careful thief."}))
	s.Assert().False(dune.IsDescribed(map[string]any{"description": ""}))
	s.Assert().False(dune.IsDescribed(map[string]any{}))
	s.Assert().False(dune.IsDescribed(nil))

	s.Assert().True(dune.IsOptionallyDescribed(map[string]any{}))
	s.Assert().True(dune.IsOptionallyDescribed(map[string]any{"description": ""}))
	s.Assert().False(dune.IsOptionallyDescribed(map[string]any{"description": 42}))
}

func (s *PredicatesTestSuite) TestNameOf() {
	name, ok := dune.NameOf("Battle")
	s.Assert().True(ok)
	s.Assert().Equal("Battle", name)

	name, ok = dune.NameOf(dune.NewDrive("Justice"))
	s.Assert().True(ok)
	s.Assert().Equal("Justice", name)

	name, ok = dune.NameOf(map[string]any{"name": "Thief"})
	s.Assert().True(ok)
	s.Assert().Equal("Thief", name)

	_, ok = dune.NameOf(42)
	s.Assert().False(ok)
}
