package source

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

const sourceColumns = `id, name, hp, ac, notes, created_at, updated_at`

// PostgresRepository stores one source kind in its own table
type PostgresRepository struct {
	db    *pgxpool.Pool
	kind  entities.SourceKind
	table string
}

// NewPostgres creates a PostgresRepository for kind backed by the given pool
func NewPostgres(db *pgxpool.Pool, kind entities.SourceKind) (*PostgresRepository, error) {
	if db == nil {
		return nil, errors.InvalidArgument("pool cannot be nil")
	}
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	return &PostgresRepository{db: db, kind: kind, table: table(kind)}, nil
}

var _ Repository = (*PostgresRepository)(nil)

// Kind reports which pool this repository serves
func (r *PostgresRepository) Kind() entities.SourceKind {
	return r.kind
}

// List returns every source ordered by id
func (r *PostgresRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	// the table name comes from a closed set of kinds, never from input
	rows, err := r.db.Query(ctx, `SELECT `+sourceColumns+` FROM `+r.table+` ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Transportf(err, "listing %s", r.table)
	}
	defer rows.Close()

	sources := make([]*entities.Source, 0)
	for rows.Next() {
		src, err := r.scan(rows)
		if err != nil {
			return nil, errors.Transportf(err, "scanning %s row", r.kind)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Transportf(err, "listing %s", r.table)
	}
	return &ListOutput{Sources: sources}, nil
}

// Get loads a source by id
func (r *PostgresRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	src, err := r.scan(r.db.QueryRow(ctx, `SELECT `+sourceColumns+` FROM `+r.table+` WHERE id = $1`, input.ID))
	if err != nil {
		return nil, r.notFoundOr(err, input.ID)
	}
	return &GetOutput{Source: src}, nil
}

// Create inserts a source
func (r *PostgresRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	src, err := r.scan(r.db.QueryRow(ctx, `
		INSERT INTO `+r.table+` (name, hp, ac, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING `+sourceColumns,
		input.Name, input.HP, input.AC, input.Notes,
	))
	if err != nil {
		return nil, errors.Transportf(err, "inserting %s", r.kind)
	}
	return &CreateOutput{Source: src}, nil
}

// Update replaces a source's fields
func (r *PostgresRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Source == nil {
		return nil, errors.InvalidArgument(errSourceNil)
	}
	if input.Source.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	s := input.Source
	src, err := r.scan(r.db.QueryRow(ctx, `
		UPDATE `+r.table+`
		SET name = $2, hp = $3, ac = $4, notes = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+sourceColumns,
		s.ID, s.Name, s.HP, s.AC, s.Notes,
	))
	if err != nil {
		return nil, r.notFoundOr(err, s.ID)
	}
	return &UpdateOutput{Source: src}, nil
}

// Delete removes a source
func (r *PostgresRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, input.ID)
	if err != nil {
		return nil, errors.Transportf(err, "deleting %s %d", r.kind, input.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, notFound(r.kind, input.ID)
	}
	return &DeleteOutput{}, nil
}

func (r *PostgresRepository) scan(row pgx.Row) (*entities.Source, error) {
	src := entities.Source{Kind: r.kind}
	if err := row.Scan(&src.ID, &src.Name, &src.HP, &src.AC, &src.Notes, &src.CreatedAt, &src.UpdatedAt); err != nil {
		return nil, err
	}
	return &src, nil
}

func (r *PostgresRepository) notFoundOr(err error, id int64) error {
	if stderrors.Is(err, pgx.ErrNoRows) {
		return notFound(r.kind, id)
	}
	return errors.Transportf(err, "%s %d", r.kind, id)
}
