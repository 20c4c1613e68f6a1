package battle

import (
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
)

// CreateBattleInput defines the request for creating a battle
type CreateBattleInput struct {
	Name  string
	Notes *string
}

// CreateBattleOutput defines the response for creating a battle
type CreateBattleOutput struct {
	Battle *entities.Battle
}

// UpdateBattleInput defines the request for renaming or annotating a battle
type UpdateBattleInput struct {
	BattleID int64
	Name     string
	Notes    *string
}

// UpdateBattleOutput defines the response for updating a battle
type UpdateBattleOutput struct {
	Battle *entities.Battle
}

// DeleteBattleInput defines the request for deleting a battle
type DeleteBattleInput struct {
	BattleID int64
}

// DeleteBattleOutput defines the response for deleting a battle
type DeleteBattleOutput struct{}

// GetBattleInput defines the request for loading a battle
type GetBattleInput struct {
	BattleID int64
}

// GetBattleOutput defines the response for loading a battle
type GetBattleOutput struct {
	Battle *entities.Battle
}

// ListBattlesInput defines the request for listing battles
type ListBattlesInput struct{}

// ListBattlesOutput defines the response for listing battles
type ListBattlesOutput struct {
	Battles []*entities.Battle
}
