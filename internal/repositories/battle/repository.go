// Package battle provides the storage contract for battles and their rosters
package battle

//go:generate mockgen -destination=mock/mock_repository.go -package=battlemock github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/battle Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
)

// Repository stores battles. A battle's roster is always written and read as
// a whole; there are no row-level combatant updates and no concurrency token,
// so the last Update for a battle wins.
type Repository interface {
	// List returns every battle ordered by id
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Get loads a battle with its full roster. Returns NotFound when no
	// battle has the id and Unavailable when the backend fails.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Create stores a new battle with an empty roster
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Update replaces name, notes and the entire roster in one write. Either
	// everything is stored and returned or nothing is.
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes the battle and its roster
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// ListInput defines the request for listing battles
type ListInput struct{}

// ListOutput defines the response for listing battles
type ListOutput struct {
	Battles []*entities.Battle
}

// GetInput defines the request for loading a battle
type GetInput struct {
	ID int64
}

// GetOutput defines the response for loading a battle
type GetOutput struct {
	Battle *entities.Battle
}

// CreateInput defines the request for creating a battle
type CreateInput struct {
	Name  string
	Notes *string
}

// CreateOutput defines the response for creating a battle
type CreateOutput struct {
	Battle *entities.Battle
}

// UpdateInput defines the request for saving a battle
type UpdateInput struct {
	Battle *entities.Battle
}

// UpdateOutput defines the response for saving a battle
type UpdateOutput struct {
	Battle *entities.Battle
}

// DeleteInput defines the request for deleting a battle
type DeleteInput struct {
	ID int64
}

// DeleteOutput defines the response for deleting a battle
type DeleteOutput struct{}

const (
	errBattleNil    = "battle cannot be nil"
	errBattleIDZero = "battle ID must be positive"
	errNameEmpty    = "battle name cannot be empty"
)

func rosterOrEmpty(roster []entities.Combatant) []entities.Combatant {
	if roster == nil {
		return []entities.Combatant{}
	}
	return roster
}
