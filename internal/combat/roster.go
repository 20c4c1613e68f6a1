package combat

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/idgen"
)

// maxIDAttempts bounds regeneration when a fresh id collides with the roster
const maxIDAttempts = 16

// Overrides carry the raw text a user typed when adding a combatant. Nil or
// blank values fall back to the source's values.
type Overrides struct {
	HPMax        *string
	Initiative   *string
	NameOverride string
}

// AddCombatant builds a combatant from source, appends it to a copy of the
// roster and re-sorts by initiative. The input roster is never modified.
func AddCombatant(
	roster []entities.Combatant,
	source *entities.Source,
	sourceType entities.SourceType,
	overrides Overrides,
	ids idgen.Generator,
) ([]entities.Combatant, entities.Combatant, error) {
	vb := errors.NewValidationBuilder()
	if source == nil {
		vb.RequiredField("source")
	}
	if !sourceType.Valid() {
		vb.InvalidField("sourceType", string(sourceType))
	}
	if ids == nil {
		vb.RequiredField("idGenerator")
	}
	if err := vb.Build(); err != nil {
		return roster, entities.Combatant{}, err
	}

	hpMax := 0
	if source.HP != nil {
		hpMax = *source.HP
	}
	if v, ok, err := parseOverride(overrides.HPMax); err != nil {
		return roster, entities.Combatant{}, errors.InvalidArgumentf("hp max must be a number: %q", *overrides.HPMax)
	} else if ok {
		if v < 0 {
			return roster, entities.Combatant{}, errors.InvalidArgumentf("hp max must not be negative: %d", v)
		}
		hpMax = v
	}

	initiative := 0
	if v, ok, err := parseOverride(overrides.Initiative); err != nil {
		return roster, entities.Combatant{}, errors.InvalidArgumentf("initiative must be a number: %q", *overrides.Initiative)
	} else if ok {
		initiative = v
	}

	name := source.Name
	if sourceType == entities.SourceTypeCreature {
		if override := strings.TrimSpace(overrides.NameOverride); override != "" {
			name = override
		}
	}

	ac := 0
	if source.AC != nil {
		ac = *source.AC
	}

	var notes *string
	if source.Notes != nil {
		n := *source.Notes
		notes = &n
	}

	internalID, err := uniqueID(roster, ids)
	if err != nil {
		return roster, entities.Combatant{}, err
	}

	combatant := entities.Combatant{
		InternalID: internalID,
		SourceID:   source.ID,
		SourceType: sourceType,
		Name:       name,
		HPMax:      hpMax,
		HPCurrent:  hpMax,
		TempHP:     0,
		AC:         ac,
		Initiative: initiative,
		IsDead:     hpMax <= 0,
		Notes:      notes,
	}

	next := append(cloneRoster(roster), combatant)
	return SortRoster(next), combatant, nil
}

// parseOverride returns ok=false when the value is absent or blank
func parseOverride(raw *string) (int, bool, error) {
	if raw == nil {
		return 0, false, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func uniqueID(roster []entities.Combatant, ids idgen.Generator) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := ids.Generate()
		if id != "" && Find(roster, id) < 0 {
			return id, nil
		}
	}
	return "", errors.Internal("could not generate a unique combatant id")
}
