package battle

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/clients/postgrest"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

const battlesTable = "battles"

// battleRow is the payload written to the battles table
type battleRow struct {
	Name       string               `json:"name"`
	Notes      *string              `json:"notes"`
	Combatants []entities.Combatant `json:"combatants"`
}

type postgrestRepository struct {
	client postgrest.Client
}

// NewPostgREST creates a battle repository on top of a PostgREST endpoint
func NewPostgREST(client postgrest.Client) (Repository, error) {
	if client == nil {
		return nil, errors.InvalidArgument("client cannot be nil")
	}
	return &postgrestRepository{client: client}, nil
}

func (r *postgrestRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	var rows []*entities.Battle
	if err := r.client.Select(ctx, battlesTable, &rows); err != nil {
		return nil, errors.Transport(err, "failed to list battles")
	}
	for _, b := range rows {
		b.Combatants = rosterOrEmpty(b.Combatants)
	}
	if rows == nil {
		rows = []*entities.Battle{}
	}
	return &ListOutput{Battles: rows}, nil
}

func (r *postgrestRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	var rows []*entities.Battle
	if err := r.client.Select(ctx, battlesTable, &rows, postgrest.Eq("id", input.ID)); err != nil {
		return nil, errors.Transportf(err, "failed to get battle %d", input.ID)
	}
	b, err := firstBattle(rows, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Battle: b}, nil
}

func (r *postgrestRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	row := battleRow{Name: input.Name, Notes: input.Notes, Combatants: []entities.Combatant{}}
	var rows []*entities.Battle
	if err := r.client.Insert(ctx, battlesTable, row, &rows); err != nil {
		return nil, errors.Transport(err, "failed to create battle")
	}
	if len(rows) == 0 {
		return nil, errors.Unavailable("store returned no battle after insert")
	}
	rows[0].Combatants = rosterOrEmpty(rows[0].Combatants)
	return &CreateOutput{Battle: rows[0]}, nil
}

func (r *postgrestRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Battle == nil {
		return nil, errors.InvalidArgument(errBattleNil)
	}
	if input.Battle.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	patch := battleRow{
		Name:       input.Battle.Name,
		Notes:      input.Battle.Notes,
		Combatants: rosterOrEmpty(input.Battle.Combatants),
	}
	var rows []*entities.Battle
	err := r.client.Update(ctx, battlesTable, patch, &rows, postgrest.Eq("id", input.Battle.ID))
	if err != nil {
		return nil, errors.Transportf(err, "failed to save battle %d", input.Battle.ID)
	}
	b, err := firstBattle(rows, input.Battle.ID)
	if err != nil {
		return nil, err
	}
	return &UpdateOutput{Battle: b}, nil
}

func (r *postgrestRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	var rows []*entities.Battle
	if err := r.client.Delete(ctx, battlesTable, &rows, postgrest.Eq("id", input.ID)); err != nil {
		return nil, errors.Transportf(err, "failed to delete battle %d", input.ID)
	}
	if len(rows) == 0 {
		return nil, errors.NotFoundf("battle %d not found", input.ID)
	}
	return &DeleteOutput{}, nil
}

// firstBattle unwraps the single row PostgREST returns for an id filter
func firstBattle(rows []*entities.Battle, id int64) (*entities.Battle, error) {
	if len(rows) == 0 || rows[0] == nil {
		return nil, errors.NotFoundf("battle %d not found", id)
	}
	b := rows[0]
	b.Combatants = rosterOrEmpty(b.Combatants)
	return b, nil
}
