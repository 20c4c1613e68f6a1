package source

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/clients/postgrest"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

// sourceRow is the payload written to the characters and creatures tables
type sourceRow struct {
	Name  string  `json:"name"`
	HP    *int    `json:"hp"`
	AC    *int    `json:"ac"`
	Notes *string `json:"notes"`
}

type postgrestRepository struct {
	kind   entities.SourceKind
	table  string
	client postgrest.Client
}

// NewPostgREST creates a source repository for kind on a PostgREST endpoint
func NewPostgREST(client postgrest.Client, kind entities.SourceKind) (Repository, error) {
	if client == nil {
		return nil, errors.InvalidArgument("client cannot be nil")
	}
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	return &postgrestRepository{kind: kind, table: table(kind), client: client}, nil
}

func (r *postgrestRepository) Kind() entities.SourceKind {
	return r.kind
}

func (r *postgrestRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	var rows []*entities.Source
	if err := r.client.Select(ctx, r.table, &rows); err != nil {
		return nil, errors.Transportf(err, "failed to list %s", r.table)
	}
	sources := make([]*entities.Source, 0, len(rows))
	for _, src := range rows {
		if src == nil {
			continue
		}
		src.Kind = r.kind
		sources = append(sources, src)
	}
	return &ListOutput{Sources: sources}, nil
}

func (r *postgrestRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	var rows []*entities.Source
	if err := r.client.Select(ctx, r.table, &rows, postgrest.Eq("id", input.ID)); err != nil {
		return nil, errors.Transportf(err, "failed to get %s %d", r.kind, input.ID)
	}
	src, err := r.first(rows, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Source: src}, nil
}

func (r *postgrestRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	row := sourceRow{Name: input.Name, HP: input.HP, AC: input.AC, Notes: input.Notes}
	var rows []*entities.Source
	if err := r.client.Insert(ctx, r.table, row, &rows); err != nil {
		return nil, errors.Transportf(err, "failed to create %s", r.kind)
	}
	if len(rows) == 0 || rows[0] == nil {
		return nil, errors.Unavailablef("store returned no %s after insert", r.kind)
	}
	rows[0].Kind = r.kind
	return &CreateOutput{Source: rows[0]}, nil
}

func (r *postgrestRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Source == nil {
		return nil, errors.InvalidArgument(errSourceNil)
	}
	if input.Source.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	s := input.Source
	patch := sourceRow{Name: s.Name, HP: s.HP, AC: s.AC, Notes: s.Notes}
	var rows []*entities.Source
	if err := r.client.Update(ctx, r.table, patch, &rows, postgrest.Eq("id", s.ID)); err != nil {
		return nil, errors.Transportf(err, "failed to update %s %d", r.kind, s.ID)
	}
	src, err := r.first(rows, s.ID)
	if err != nil {
		return nil, err
	}
	return &UpdateOutput{Source: src}, nil
}

func (r *postgrestRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	var rows []*entities.Source
	if err := r.client.Delete(ctx, r.table, &rows, postgrest.Eq("id", input.ID)); err != nil {
		return nil, errors.Transportf(err, "failed to delete %s %d", r.kind, input.ID)
	}
	if len(rows) == 0 {
		return nil, notFound(r.kind, input.ID)
	}
	return &DeleteOutput{}, nil
}

func (r *postgrestRepository) first(rows []*entities.Source, id int64) (*entities.Source, error) {
	if len(rows) == 0 || rows[0] == nil {
		return nil, notFound(r.kind, id)
	}
	rows[0].Kind = r.kind
	return rows[0], nil
}
