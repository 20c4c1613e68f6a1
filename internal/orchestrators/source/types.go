package source

import (
	"github.com/KirkDiggler/rpg-combat-tracker/internal/clients/srd"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
)

// Form is the raw text of the character and creature editor
type Form struct {
	Name  string
	HP    string
	AC    string
	Notes string
}

// ListSourcesInput defines the request for listing characters or creatures
type ListSourcesInput struct {
	Kind entities.SourceKind
}

// ListSourcesOutput defines the response for listing sources
type ListSourcesOutput struct {
	Sources []*entities.Source
}

// GetSourceInput defines the request for loading a source
type GetSourceInput struct {
	Kind entities.SourceKind
	ID   int64
}

// GetSourceOutput defines the response for loading a source
type GetSourceOutput struct {
	Source *entities.Source
	Avatar *entities.Avatar // nil for creatures and characters without one
}

// CreateSourceInput defines the request for creating a source
type CreateSourceInput struct {
	Kind entities.SourceKind
	Form Form
}

// CreateSourceOutput defines the response for creating a source
type CreateSourceOutput struct {
	Source *entities.Source
}

// UpdateSourceInput defines the request for editing a source
type UpdateSourceInput struct {
	Kind entities.SourceKind
	ID   int64
	Form Form
}

// UpdateSourceOutput defines the response for editing a source
type UpdateSourceOutput struct {
	Source *entities.Source
}

// DeleteSourceInput defines the request for deleting a source
type DeleteSourceInput struct {
	Kind entities.SourceKind
	ID   int64
}

// DeleteSourceOutput defines the response for deleting a source
type DeleteSourceOutput struct {
	AvatarRemoved bool
}

// SetAvatarInput defines the request for attaching an image to a character
type SetAvatarInput struct {
	CharacterID int64
	URI         string
}

// SetAvatarOutput defines the response for attaching an image
type SetAvatarOutput struct {
	Avatar *entities.Avatar
}

// ListAvatarsInput defines the request for listing avatars
type ListAvatarsInput struct{}

// ListAvatarsOutput defines the response for listing avatars
type ListAvatarsOutput struct {
	Avatars []*entities.Avatar
}

// SearchMonstersInput defines the request for an SRD monster lookup
type SearchMonstersInput struct {
	Query string
}

// SearchMonstersOutput defines the response for an SRD monster lookup
type SearchMonstersOutput struct {
	Monsters []srd.Monster
}
