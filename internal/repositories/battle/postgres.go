package battle

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

const battleColumns = `id, name, notes, combatants, created_at, updated_at`

// PostgresRepository stores battles in the battles table with the roster as
// a JSONB column.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgres creates a PostgresRepository backed by the given pool
func NewPostgres(db *pgxpool.Pool) (*PostgresRepository, error) {
	if db == nil {
		return nil, errors.InvalidArgument("pool cannot be nil")
	}
	return &PostgresRepository{db: db}, nil
}

var _ Repository = (*PostgresRepository)(nil)

// List returns every battle ordered by id
func (r *PostgresRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.Query(ctx, `SELECT `+battleColumns+` FROM battles ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Transport(err, "listing battles")
	}
	defer rows.Close()

	battles := make([]*entities.Battle, 0)
	for rows.Next() {
		b, err := scanBattle(rows)
		if err != nil {
			return nil, err
		}
		battles = append(battles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Transport(err, "listing battles")
	}
	return &ListOutput{Battles: battles}, nil
}

// Get loads a battle by id
func (r *PostgresRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	row := r.db.QueryRow(ctx, `SELECT `+battleColumns+` FROM battles WHERE id = $1`, input.ID)
	b, err := scanBattle(row)
	if err != nil {
		return nil, notFoundOr(err, input.ID)
	}
	return &GetOutput{Battle: b}, nil
}

// Create inserts a battle with an empty roster
func (r *PostgresRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO battles (name, notes, combatants)
		VALUES ($1, $2, '[]'::jsonb)
		RETURNING `+battleColumns,
		input.Name, input.Notes,
	)
	b, err := scanBattle(row)
	if err != nil {
		return nil, errors.Transport(err, "inserting battle")
	}
	return &CreateOutput{Battle: b}, nil
}

// Update replaces name, notes and roster in a single statement
func (r *PostgresRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Battle == nil {
		return nil, errors.InvalidArgument(errBattleNil)
	}
	if input.Battle.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	roster, err := json.Marshal(rosterOrEmpty(input.Battle.Combatants))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal roster")
	}

	row := r.db.QueryRow(ctx, `
		UPDATE battles
		SET name = $2, notes = $3, combatants = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+battleColumns,
		input.Battle.ID, input.Battle.Name, input.Battle.Notes, roster,
	)
	b, err := scanBattle(row)
	if err != nil {
		return nil, notFoundOr(err, input.Battle.ID)
	}
	return &UpdateOutput{Battle: b}, nil
}

// Delete removes a battle
func (r *PostgresRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM battles WHERE id = $1`, input.ID)
	if err != nil {
		return nil, errors.Transportf(err, "deleting battle %d", input.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, errors.NotFoundf("battle %d not found", input.ID)
	}
	return &DeleteOutput{}, nil
}

func scanBattle(row pgx.Row) (*entities.Battle, error) {
	var (
		b      entities.Battle
		roster []byte
	)
	if err := row.Scan(&b.ID, &b.Name, &b.Notes, &roster, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(roster, &b.Combatants); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal roster of battle %d", b.ID)
	}
	b.Combatants = rosterOrEmpty(b.Combatants)
	return &b, nil
}

func notFoundOr(err error, id int64) error {
	if stderrors.Is(err, pgx.ErrNoRows) {
		return errors.NotFoundf("battle %d not found", id)
	}
	return errors.Transportf(err, "battle %d", id)
}
