// Package entities contains the records shared by the combat engine, the
// repositories and the CLI.
package entities

import "time"

// Battle is a named fight owning its roster of combatants
type Battle struct {
	ID         int64       `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Notes      *string     `json:"notes" yaml:"notes"`
	Combatants []Combatant `json:"combatants" yaml:"combatants"`
	CreatedAt  time.Time   `json:"created_at" yaml:"createdAt"`
	UpdatedAt  time.Time   `json:"updated_at" yaml:"updatedAt"`
}

// Clone returns a copy whose roster can be modified without touching b
func (b *Battle) Clone() *Battle {
	if b == nil {
		return nil
	}
	out := *b
	if b.Combatants != nil {
		out.Combatants = make([]Combatant, len(b.Combatants))
		copy(out.Combatants, b.Combatants)
	}
	return &out
}
