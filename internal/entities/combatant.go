package entities

import "encoding/json"

// SourceType identifies which pool a combatant was drawn from
type SourceType string

const (
	SourceTypeCharacter SourceType = "character"
	SourceTypeCreature  SourceType = "creature"
)

// Valid reports whether the source type is known
func (t SourceType) Valid() bool {
	return t == SourceTypeCharacter || t == SourceTypeCreature
}

// Combatant is one participant in a battle roster. It has no identity outside
// the battle that owns it.
type Combatant struct {
	InternalID string     `json:"internalId" yaml:"internalId"`
	SourceID   int64      `json:"sourceId" yaml:"sourceId"`
	SourceType SourceType `json:"sourceType" yaml:"sourceType"`
	Name       string     `json:"name" yaml:"name"`
	HPMax      int        `json:"hpMax" yaml:"hpMax"`
	HPCurrent  int        `json:"hpCurrent" yaml:"hpCurrent"`
	TempHP     int        `json:"tempHp" yaml:"tempHp"`
	AC         int        `json:"ac" yaml:"ac"`
	Initiative int        `json:"initiative" yaml:"initiative"`
	IsDead     bool       `json:"isDead" yaml:"isDead"`
	Notes      *string    `json:"notes" yaml:"notes"`
}

// storedCombatant mirrors Combatant with nullable hit point fields so rows
// written without them can be normalized on load.
type storedCombatant struct {
	InternalID string     `json:"internalId"`
	SourceID   int64      `json:"sourceId"`
	SourceType SourceType `json:"sourceType"`
	Name       string     `json:"name"`
	HPMax      int        `json:"hpMax"`
	HPCurrent  *int       `json:"hpCurrent"`
	TempHP     *int       `json:"tempHp"`
	AC         int        `json:"ac"`
	Initiative int        `json:"initiative"`
	Notes      *string    `json:"notes"`
}

// UnmarshalJSON fills a missing hpCurrent with hpMax and a missing tempHp
// with zero, then clamps hpMax and tempHp to at least zero and hpCurrent
// into [0, hpMax]. isDead is always derived from the resulting hpCurrent.
func (c *Combatant) UnmarshalJSON(data []byte) error {
	var raw storedCombatant
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	raw.HPMax = max(0, raw.HPMax)
	current := raw.HPMax
	if raw.HPCurrent != nil {
		current = min(max(0, *raw.HPCurrent), raw.HPMax)
	}
	temp := 0
	if raw.TempHP != nil {
		temp = max(0, *raw.TempHP)
	}

	*c = Combatant{
		InternalID: raw.InternalID,
		SourceID:   raw.SourceID,
		SourceType: raw.SourceType,
		Name:       raw.Name,
		HPMax:      raw.HPMax,
		HPCurrent:  current,
		TempHP:     temp,
		AC:         raw.AC,
		Initiative: raw.Initiative,
		IsDead:     current <= 0,
		Notes:      raw.Notes,
	}
	return nil
}
