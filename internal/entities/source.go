package entities

import "time"

// SourceKind names the two pools combatants are drawn from
type SourceKind string

const (
	SourceKindCharacter SourceKind = "character"
	SourceKindCreature  SourceKind = "creature"
)

// Valid reports whether the kind is known
func (k SourceKind) Valid() bool {
	return k == SourceKindCharacter || k == SourceKindCreature
}

// SourceType converts the kind to the tag stored on combatants
func (k SourceKind) SourceType() SourceType {
	return SourceType(k)
}

// Source is a character or a creature. The combat engine only reads its
// name, hp, ac and notes when a combatant is created.
type Source struct {
	ID        int64      `json:"id" yaml:"id"`
	Kind      SourceKind `json:"-" yaml:"kind"`
	Name      string     `json:"name" yaml:"name"`
	HP        *int       `json:"hp" yaml:"hp"`
	AC        *int       `json:"ac" yaml:"ac"`
	Notes     *string    `json:"notes" yaml:"notes"`
	CreatedAt time.Time  `json:"created_at" yaml:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" yaml:"updatedAt"`
}

// Avatar links a character to a locally cached image reference
type Avatar struct {
	CharacterID int64     `json:"characterId" yaml:"characterId"`
	URI         string    `json:"uri" yaml:"uri"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}
