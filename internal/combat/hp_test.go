package combat_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
)

func combatant(id string, hpMax, hpCurrent, tempHP int) entities.Combatant {
	return entities.Combatant{
		InternalID: id,
		SourceType: entities.SourceTypeCreature,
		Name:       id,
		HPMax:      hpMax,
		HPCurrent:  hpCurrent,
		TempHP:     tempHP,
		IsDead:     hpCurrent <= 0,
	}
}

func TestApplyAmount(t *testing.T) {
	testCases := []struct {
		name         string
		start        entities.Combatant
		mode         combat.Mode
		amount       int
		expectedHP   int
		expectedTemp int
		expectedDead bool
	}{
		{
			name:         "temp hp absorbs damage first",
			start:        combatant("a", 10, 10, 5),
			mode:         combat.ModeDamage,
			amount:       8,
			expectedHP:   7,
			expectedTemp: 0,
		},
		{
			name:         "temp hp fully absorbs small hit",
			start:        combatant("a", 10, 10, 5),
			mode:         combat.ModeDamage,
			amount:       3,
			expectedHP:   10,
			expectedTemp: 2,
		},
		{
			name:         "heal clamps at max",
			start:        combatant("a", 10, 2, 0),
			mode:         combat.ModeHeal,
			amount:       50,
			expectedHP:   10,
			expectedTemp: 0,
		},
		{
			name:         "heal never adds temp hp",
			start:        combatant("a", 10, 4, 3),
			mode:         combat.ModeHeal,
			amount:       2,
			expectedHP:   6,
			expectedTemp: 3,
		},
		{
			name:         "damage to exactly zero kills",
			start:        combatant("a", 10, 3, 0),
			mode:         combat.ModeDamage,
			amount:       3,
			expectedHP:   0,
			expectedDead: true,
		},
		{
			name:         "overkill clamps at zero",
			start:        combatant("a", 10, 3, 0),
			mode:         combat.ModeDamage,
			amount:       30,
			expectedHP:   0,
			expectedDead: true,
		},
		{
			name:         "heal revives",
			start:        combatant("a", 10, 0, 0),
			mode:         combat.ModeHeal,
			amount:       1,
			expectedHP:   1,
			expectedDead: false,
		},
		{
			name:         "temp hp stacks",
			start:        combatant("a", 10, 10, 4),
			mode:         combat.ModeTemp,
			amount:       6,
			expectedHP:   10,
			expectedTemp: 10,
		},
		{
			name:         "temp hp does not revive",
			start:        combatant("a", 10, 0, 0),
			mode:         combat.ModeTemp,
			amount:       5,
			expectedHP:   0,
			expectedTemp: 5,
			expectedDead: true,
		},
		{
			name:         "huge heal fills to max",
			start:        combatant("a", 10, 5, 0),
			mode:         combat.ModeHeal,
			amount:       math.MaxInt,
			expectedHP:   10,
			expectedTemp: 0,
		},
		{
			name:         "huge temp saturates",
			start:        combatant("a", 10, 10, 1),
			mode:         combat.ModeTemp,
			amount:       math.MaxInt,
			expectedHP:   10,
			expectedTemp: math.MaxInt,
		},
		{
			name:         "huge damage after saturated temp",
			start:        combatant("a", 10, 10, math.MaxInt),
			mode:         combat.ModeDamage,
			amount:       math.MaxInt,
			expectedHP:   10,
			expectedTemp: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			roster := []entities.Combatant{tc.start}
			next := combat.ApplyAmount(roster, "a", tc.mode, tc.amount)

			require.Len(t, next, 1)
			assert.Equal(t, tc.expectedHP, next[0].HPCurrent)
			assert.Equal(t, tc.expectedTemp, next[0].TempHP)
			assert.Equal(t, tc.expectedDead, next[0].IsDead)
			assert.True(t, combat.IsValid(next[0]))
			// the input roster is untouched
			assert.Equal(t, tc.start, roster[0])
		})
	}
}

func TestApplyAmountDeathAndRevival(t *testing.T) {
	roster := []entities.Combatant{combatant("a", 10, 3, 0)}

	roster = combat.ApplyAmount(roster, "a", combat.ModeDamage, 3)
	assert.Equal(t, 0, roster[0].HPCurrent)
	assert.True(t, roster[0].IsDead)

	roster = combat.ApplyAmount(roster, "a", combat.ModeHeal, 1)
	assert.Equal(t, 1, roster[0].HPCurrent)
	assert.False(t, roster[0].IsDead)
}

func TestApplyAmountOnlyTouchesTarget(t *testing.T) {
	roster := []entities.Combatant{
		combatant("a", 10, 10, 0),
		combatant("b", 10, 10, 0),
		combatant("c", 10, 10, 0),
	}

	next := combat.ApplyAmount(roster, "b", combat.ModeDamage, 4)
	assert.Equal(t, roster[0], next[0])
	assert.Equal(t, 6, next[1].HPCurrent)
	assert.Equal(t, roster[2], next[2])
}

func TestApplyAmountDamageHealAsymmetry(t *testing.T) {
	start := []entities.Combatant{combatant("a", 10, 8, 0)}

	healFirst := combat.ApplyAmount(combat.ApplyAmount(start, "a", combat.ModeHeal, 5), "a", combat.ModeDamage, 5)
	damageFirst := combat.ApplyAmount(combat.ApplyAmount(start, "a", combat.ModeDamage, 5), "a", combat.ModeHeal, 5)

	assert.Equal(t, 5, healFirst[0].HPCurrent)
	assert.Equal(t, 8, damageFirst[0].HPCurrent)
}

func TestApplyAmountNoOps(t *testing.T) {
	roster := []entities.Combatant{combatant("a", 10, 6, 2)}

	testCases := []struct {
		name   string
		id     string
		mode   combat.Mode
		amount int
	}{
		{"zero amount", "a", combat.ModeDamage, 0},
		{"negative amount", "a", combat.ModeHeal, -3},
		{"unknown combatant", "missing", combat.ModeDamage, 5},
		{"unknown mode", "a", combat.Mode("poison"), 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := combat.ApplyAmount(roster, tc.id, tc.mode, tc.amount)
			assert.Equal(t, roster, next)
		})
	}
}

func TestApplyChangeParsesRawAmount(t *testing.T) {
	roster := []entities.Combatant{combatant("a", 20, 20, 0)}

	testCases := []struct {
		name       string
		raw        string
		expectedHP int
	}{
		{"plain number", "7", 13},
		{"surrounding spaces", " 7 ", 13},
		{"trailing text", " 7 hp", 20},
		{"digits then letters", "3abc", 20},
		{"negative", "-5", 20},
		{"explicit plus", "+5", 20},
		{"empty", "", 20},
		{"letters only", "abc", 20},
		{"zero", "0", 20},
		{"all zeros", "000", 20},
		{"overflow", "99999999999999999999999", 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := combat.ApplyChange(roster, "a", combat.ModeDamage, tc.raw)
			assert.Equal(t, tc.expectedHP, next[0].HPCurrent)
		})
	}
}

func TestParseAmount(t *testing.T) {
	amount, ok := combat.ParseAmount("12")
	assert.True(t, ok)
	assert.Equal(t, 12, amount)

	amount, ok = combat.ParseAmount("9223372036854775807")
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt, amount)

	for _, raw := range []string{"1,2", "-", "-5", "3abc", "1.5"} {
		_, ok = combat.ParseAmount(raw)
		assert.False(t, ok, raw)
	}
}

func TestApplyChangeHugeHealStaysValid(t *testing.T) {
	roster := []entities.Combatant{combatant("a", 10, 5, 0)}

	next := combat.ApplyChange(roster, "a", combat.ModeHeal, "9223372036854775807")
	assert.Equal(t, 10, next[0].HPCurrent)
	assert.False(t, next[0].IsDead)
	assert.True(t, combat.IsValid(next[0]))

	next = combat.ApplyChange(next, "a", combat.ModeTemp, "9223372036854775807")
	next = combat.ApplyChange(next, "a", combat.ModeTemp, "1")
	assert.Equal(t, math.MaxInt, next[0].TempHP)
	assert.True(t, combat.IsValid(next[0]))
}

func TestApplyChangeKeepsOrder(t *testing.T) {
	roster := []entities.Combatant{
		{InternalID: "a", HPMax: 5, HPCurrent: 5, Initiative: 20},
		{InternalID: "b", HPMax: 5, HPCurrent: 5, Initiative: 10},
	}

	next := combat.ApplyChange(roster, "a", combat.ModeDamage, "5")
	assert.Equal(t, "a", next[0].InternalID)
	assert.Equal(t, "b", next[1].InternalID)
}
