// Package source stores the characters and creatures combatants are built
// from. One repository instance serves one kind.
package source

//go:generate mockgen -destination=mock/mock_repository.go -package=sourcemock github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/source Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

// Repository defines CRUD storage for one source kind
type Repository interface {
	// Kind reports which pool this repository serves
	Kind() entities.SourceKind

	List(ctx context.Context, input ListInput) (*ListOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// ListInput defines the request for listing sources
type ListInput struct{}

// ListOutput defines the response for listing sources
type ListOutput struct {
	Sources []*entities.Source
}

// GetInput defines the request for loading a source
type GetInput struct {
	ID int64
}

// GetOutput defines the response for loading a source
type GetOutput struct {
	Source *entities.Source
}

// CreateInput defines the request for creating a source
type CreateInput struct {
	Name  string
	HP    *int
	AC    *int
	Notes *string
}

// CreateOutput defines the response for creating a source
type CreateOutput struct {
	Source *entities.Source
}

// UpdateInput defines the request for updating a source
type UpdateInput struct {
	Source *entities.Source
}

// UpdateOutput defines the response for updating a source
type UpdateOutput struct {
	Source *entities.Source
}

// DeleteInput defines the request for deleting a source
type DeleteInput struct {
	ID int64
}

// DeleteOutput defines the response for deleting a source
type DeleteOutput struct{}

const (
	errSourceNil    = "source cannot be nil"
	errSourceIDZero = "source ID must be positive"
	errNameEmpty    = "source name cannot be empty"
)

// table returns the collection name used by the SQL and REST backends
func table(kind entities.SourceKind) string {
	return string(kind) + "s"
}

func validateKind(kind entities.SourceKind) error {
	if !kind.Valid() {
		return errors.InvalidArgumentf("unknown source kind %q", kind)
	}
	return nil
}

func notFound(kind entities.SourceKind, id int64) error {
	return errors.NotFoundf("%s %d not found", kind, id)
}
