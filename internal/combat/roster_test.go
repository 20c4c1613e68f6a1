package combat_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/idgen"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

type fixedGenerator struct {
	ids []string
	n   int
}

func (g *fixedGenerator) Generate() string {
	id := g.ids[g.n%len(g.ids)]
	g.n++
	return id
}

type RosterTestSuite struct {
	suite.Suite
	ids     idgen.Generator
	wolf    *entities.Source
	fighter *entities.Source
}

func TestRosterSuite(t *testing.T) {
	suite.Run(t, new(RosterTestSuite))
}

func (s *RosterTestSuite) SetupTest() {
	s.ids = idgen.NewSequential("cmb")
	s.wolf = &entities.Source{
		ID:    7,
		Kind:  entities.SourceKindCreature,
		Name:  "Wolf",
		HP:    intPtr(11),
		AC:    intPtr(13),
		Notes: strPtr("pack tactics"),
	}
	s.fighter = &entities.Source{
		ID:   3,
		Kind: entities.SourceKindCharacter,
		Name: "Brienne",
		HP:   intPtr(44),
		AC:   intPtr(18),
	}
}

func (s *RosterTestSuite) TestAddCombatantDefaults() {
	roster, added, err := combat.AddCombatant(nil, s.wolf, entities.SourceTypeCreature, combat.Overrides{}, s.ids)
	s.Require().NoError(err)
	s.Require().Len(roster, 1)

	s.Equal("cmb_1", added.InternalID)
	s.Equal(int64(7), added.SourceID)
	s.Equal(entities.SourceTypeCreature, added.SourceType)
	s.Equal("Wolf", added.Name)
	s.Equal(11, added.HPMax)
	s.Equal(11, added.HPCurrent)
	s.Equal(0, added.TempHP)
	s.Equal(13, added.AC)
	s.Equal(0, added.Initiative)
	s.False(added.IsDead)
	s.Require().NotNil(added.Notes)
	s.Equal("pack tactics", *added.Notes)
	s.Equal(added, roster[0])
}

func (s *RosterTestSuite) TestAddCombatantMissingSourceStats() {
	bare := &entities.Source{ID: 9, Name: "Commoner"}

	_, added, err := combat.AddCombatant(nil, bare, entities.SourceTypeCreature, combat.Overrides{}, s.ids)
	s.Require().NoError(err)
	s.Equal(0, added.HPMax)
	s.Equal(0, added.AC)
	s.Nil(added.Notes)
	s.True(combat.IsValid(added))
}

func (s *RosterTestSuite) TestAddCombatantWithoutHPStartsDead() {
	zero := "0"

	_, added, err := combat.AddCombatant(nil, s.fighter, entities.SourceTypeCharacter,
		combat.Overrides{HPMax: &zero}, s.ids)
	s.Require().NoError(err)
	s.Equal(0, added.HPMax)
	s.Equal(0, added.HPCurrent)
	s.True(added.IsDead)
	s.True(combat.IsValid(added))
}

func (s *RosterTestSuite) TestAddCombatantCopiesSourceNotes() {
	_, added, err := combat.AddCombatant(nil, s.wolf, entities.SourceTypeCreature, combat.Overrides{}, s.ids)
	s.Require().NoError(err)

	*s.wolf.Notes = "edited later"
	s.Require().NotNil(added.Notes)
	s.Equal("pack tactics", *added.Notes)
}

func (s *RosterTestSuite) TestAddCombatantOverrides() {
	testCases := []struct {
		name         string
		source       func() *entities.Source
		sourceType   entities.SourceType
		overrides    combat.Overrides
		expectedName string
		expectedHP   int
		expectedInit int
	}{
		{
			name:         "creature name override is trimmed",
			source:       func() *entities.Source { return s.wolf },
			sourceType:   entities.SourceTypeCreature,
			overrides:    combat.Overrides{NameOverride: "  Wolf A  "},
			expectedName: "Wolf A",
			expectedHP:   11,
		},
		{
			name:         "blank creature override keeps source name",
			source:       func() *entities.Source { return s.wolf },
			sourceType:   entities.SourceTypeCreature,
			overrides:    combat.Overrides{NameOverride: "   "},
			expectedName: "Wolf",
			expectedHP:   11,
		},
		{
			name:         "character ignores name override",
			source:       func() *entities.Source { return s.fighter },
			sourceType:   entities.SourceTypeCharacter,
			overrides:    combat.Overrides{NameOverride: "Not Brienne"},
			expectedName: "Brienne",
			expectedHP:   44,
		},
		{
			name:         "hp and initiative overrides",
			source:       func() *entities.Source { return s.wolf },
			sourceType:   entities.SourceTypeCreature,
			overrides:    combat.Overrides{HPMax: strPtr(" 20 "), Initiative: strPtr("-2")},
			expectedName: "Wolf",
			expectedHP:   20,
			expectedInit: -2,
		},
		{
			name:         "blank overrides fall back",
			source:       func() *entities.Source { return s.wolf },
			sourceType:   entities.SourceTypeCreature,
			overrides:    combat.Overrides{HPMax: strPtr(""), Initiative: strPtr(" ")},
			expectedName: "Wolf",
			expectedHP:   11,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, added, err := combat.AddCombatant(nil, tc.source(), tc.sourceType, tc.overrides, s.ids)
			s.Require().NoError(err)
			s.Equal(tc.expectedName, added.Name)
			s.Equal(tc.expectedHP, added.HPMax)
			s.Equal(tc.expectedHP, added.HPCurrent)
			s.Equal(tc.expectedInit, added.Initiative)
		})
	}
}

func (s *RosterTestSuite) TestAddCombatantInvalidInput() {
	existing, _, err := combat.AddCombatant(nil, s.fighter, entities.SourceTypeCharacter, combat.Overrides{}, s.ids)
	s.Require().NoError(err)
	before := append([]entities.Combatant(nil), existing...)

	testCases := []struct {
		name      string
		overrides combat.Overrides
	}{
		{"non numeric hp", combat.Overrides{HPMax: strPtr("lots")}},
		{"negative hp", combat.Overrides{HPMax: strPtr("-4")}},
		{"non numeric initiative", combat.Overrides{Initiative: strPtr("fast")}},
		{"decimal initiative", combat.Overrides{Initiative: strPtr("1.5")}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			roster, _, err := combat.AddCombatant(existing, s.wolf, entities.SourceTypeCreature, tc.overrides, s.ids)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Equal(before, roster)
			s.Equal(before, existing)
		})
	}
}

func (s *RosterTestSuite) TestAddCombatantRejectsBadArguments() {
	_, _, err := combat.AddCombatant(nil, nil, entities.SourceTypeCreature, combat.Overrides{}, s.ids)
	s.True(errors.IsInvalidArgument(err))

	_, _, err = combat.AddCombatant(nil, s.wolf, entities.SourceType("npc"), combat.Overrides{}, s.ids)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RosterTestSuite) TestAddCombatantSortsByInitiative() {
	var roster []entities.Combatant
	for _, init := range []string{"12", "18", "3", "12", "20"} {
		var err error
		roster, _, err = combat.AddCombatant(roster, s.wolf, entities.SourceTypeCreature,
			combat.Overrides{Initiative: strPtr(init)}, s.ids)
		s.Require().NoError(err)
	}

	s.True(combat.IsSorted(roster))
	got := make([]int, len(roster))
	for i, c := range roster {
		got[i] = c.Initiative
	}
	s.Equal([]int{20, 18, 12, 12, 3}, got)

	// ties keep insertion order
	s.Equal("cmb_1", roster[2].InternalID)
	s.Equal("cmb_4", roster[3].InternalID)
}

func (s *RosterTestSuite) TestAddCombatantDoesNotMutateInput() {
	roster, _, err := combat.AddCombatant(nil, s.wolf, entities.SourceTypeCreature,
		combat.Overrides{Initiative: strPtr("1")}, s.ids)
	s.Require().NoError(err)
	snapshot := append([]entities.Combatant(nil), roster...)

	next, _, err := combat.AddCombatant(roster, s.fighter, entities.SourceTypeCharacter,
		combat.Overrides{Initiative: strPtr("15")}, s.ids)
	s.Require().NoError(err)
	s.Len(next, 2)
	s.Equal(snapshot, roster)
}

func (s *RosterTestSuite) TestAddCombatantRegeneratesCollidingID() {
	gen := &fixedGenerator{ids: []string{"dup", "dup", "fresh"}}
	roster, _, err := combat.AddCombatant(nil, s.wolf, entities.SourceTypeCreature, combat.Overrides{}, gen)
	s.Require().NoError(err)

	_, added, err := combat.AddCombatant(roster, s.wolf, entities.SourceTypeCreature, combat.Overrides{}, gen)
	s.Require().NoError(err)
	s.Equal("fresh", added.InternalID)
}

func (s *RosterTestSuite) TestAddCombatantGivesUpOnConstantCollisions() {
	gen := &fixedGenerator{ids: []string{"dup"}}
	roster, _, err := combat.AddCombatant(nil, s.wolf, entities.SourceTypeCreature, combat.Overrides{}, gen)
	s.Require().NoError(err)

	_, _, err = combat.AddCombatant(roster, s.wolf, entities.SourceTypeCreature, combat.Overrides{}, gen)
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func (s *RosterTestSuite) TestSameSourceTwiceGivesDistinctCombatants() {
	roster, first, err := combat.AddCombatant(nil, s.wolf, entities.SourceTypeCreature, combat.Overrides{}, s.ids)
	s.Require().NoError(err)
	_, second, err := combat.AddCombatant(roster, s.wolf, entities.SourceTypeCreature, combat.Overrides{}, s.ids)
	s.Require().NoError(err)

	s.NotEqual(first.InternalID, second.InternalID)
	s.Equal(first.SourceID, second.SourceID)
}
