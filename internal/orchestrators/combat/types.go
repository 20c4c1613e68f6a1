package combat

import (
	combatengine "github.com/KirkDiggler/rpg-combat-tracker/internal/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
)

// LoadBattleInput defines the request for loading a battle into its session
type LoadBattleInput struct {
	BattleID int64
}

// LoadBattleOutput defines the response for loading a battle
type LoadBattleOutput struct {
	Battle *entities.Battle
}

// AddCombatantInput defines the request for adding a combatant. HPMax and
// Initiative hold the raw text typed by the user; nil or blank falls back to
// the source.
type AddCombatantInput struct {
	BattleID     int64
	SourceKind   entities.SourceKind
	SourceID     int64
	HPMax        *string
	Initiative   *string
	NameOverride string

	// RollInitiative rolls a d20 plus InitiativeModifier when Initiative is blank
	RollInitiative     bool
	InitiativeModifier int
}

// AddCombatantOutput defines the response for adding a combatant
type AddCombatantOutput struct {
	Battle    *entities.Battle
	Combatant entities.Combatant
}

// ApplyChangeInput defines the request for a heal, damage or temp change
type ApplyChangeInput struct {
	BattleID    int64
	CombatantID string
	Mode        combatengine.Mode
	Amount      string
}

// ApplyChangeOutput defines the response for an hp change. Changed is false
// when the input left the roster as it was.
type ApplyChangeOutput struct {
	Battle  *entities.Battle
	Changed bool
}
