// Package avatar keeps the local image reference attached to each character.
// Avatars never leave the machine; the remote store only knows characters.
package avatar

//go:generate mockgen -destination=mock/mock_store.go -package=avatarmock github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/avatar Store

import (
	"context"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
)

// Store defines the avatar persistence operations
type Store interface {
	Set(ctx context.Context, input SetInput) (*SetOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	List(ctx context.Context, input ListInput) (*ListOutput, error)
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
	Close() error
}

// SetInput defines the request for attaching an image to a character
type SetInput struct {
	CharacterID int64
	URI         string
}

// SetOutput defines the response for attaching an image
type SetOutput struct {
	Avatar *entities.Avatar
}

// GetInput defines the request for loading a character's avatar
type GetInput struct {
	CharacterID int64
}

// GetOutput defines the response for loading an avatar
type GetOutput struct {
	Avatar *entities.Avatar
}

// ListInput defines the request for listing avatars
type ListInput struct{}

// ListOutput defines the response for listing avatars
type ListOutput struct {
	Avatars []*entities.Avatar
}

// DeleteInput defines the request for removing a character's avatar
type DeleteInput struct {
	CharacterID int64
}

// DeleteOutput defines the response for removing an avatar. Removed is false
// when the character had none.
type DeleteOutput struct {
	Removed bool
}
