// Package source implements character and creature management: the form
// rules for creating and editing them, their local avatars and the SRD
// monster lookup used when filling in the bestiary.
package source

//go:generate mockgen -destination=mock/mock_service.go -package=sourcemock github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/source Service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/clients/srd"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	avatarrepo "github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/avatar"
	sourcerepo "github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/source"
)

// Service defines the interface for character and creature operations
type Service interface {
	ListSources(ctx context.Context, input *ListSourcesInput) (*ListSourcesOutput, error)
	GetSource(ctx context.Context, input *GetSourceInput) (*GetSourceOutput, error)
	CreateSource(ctx context.Context, input *CreateSourceInput) (*CreateSourceOutput, error)
	UpdateSource(ctx context.Context, input *UpdateSourceInput) (*UpdateSourceOutput, error)
	DeleteSource(ctx context.Context, input *DeleteSourceInput) (*DeleteSourceOutput, error)

	// Avatars belong to characters only
	SetAvatar(ctx context.Context, input *SetAvatarInput) (*SetAvatarOutput, error)
	ListAvatars(ctx context.Context, input *ListAvatarsInput) (*ListAvatarsOutput, error)

	SearchMonsters(ctx context.Context, input *SearchMonstersInput) (*SearchMonstersOutput, error)
}

// Config holds the dependencies for the source orchestrator
type Config struct {
	CharacterRepo sourcerepo.Repository
	CreatureRepo  sourcerepo.Repository
	AvatarStore   avatarrepo.Store
	// SRDClient is optional; SearchMonsters fails without it
	SRDClient srd.Client
	Logger    *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	} else if c.CharacterRepo.Kind() != entities.SourceKindCharacter {
		vb.InvalidField("CharacterRepo", "serves "+string(c.CharacterRepo.Kind()))
	}
	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	} else if c.CreatureRepo.Kind() != entities.SourceKindCreature {
		vb.InvalidField("CreatureRepo", "serves "+string(c.CreatureRepo.Kind()))
	}
	if c.AvatarStore == nil {
		vb.RequiredField("AvatarStore")
	}

	return vb.Build()
}

type orchestrator struct {
	repos   map[entities.SourceKind]sourcerepo.Repository
	avatars avatarrepo.Store
	srd     srd.Client
	logger  *zap.Logger
}

// NewOrchestrator creates a new source orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &orchestrator{
		repos: map[entities.SourceKind]sourcerepo.Repository{
			entities.SourceKindCharacter: cfg.CharacterRepo,
			entities.SourceKindCreature:  cfg.CreatureRepo,
		},
		avatars: cfg.AvatarStore,
		srd:     cfg.SRDClient,
		logger:  logger,
	}, nil
}

func (o *orchestrator) repo(kind entities.SourceKind) (sourcerepo.Repository, error) {
	r, ok := o.repos[kind]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown source kind %q", kind)
	}
	return r, nil
}

// ListSources returns every character or creature
func (o *orchestrator) ListSources(ctx context.Context, input *ListSourcesInput) (*ListSourcesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	r, err := o.repo(input.Kind)
	if err != nil {
		return nil, err
	}

	out, err := r.List(ctx, sourcerepo.ListInput{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %ss", input.Kind)
	}
	return &ListSourcesOutput{Sources: out.Sources}, nil
}

// GetSource loads one character or creature. Characters come with their
// avatar when one is set.
func (o *orchestrator) GetSource(ctx context.Context, input *GetSourceInput) (*GetSourceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	r, err := o.repo(input.Kind)
	if err != nil {
		return nil, err
	}

	out, err := r.Get(ctx, sourcerepo.GetInput{ID: input.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s %d", input.Kind, input.ID)
	}

	result := &GetSourceOutput{Source: out.Source}
	if input.Kind != entities.SourceKindCharacter {
		return result, nil
	}

	av, err := o.avatars.Get(ctx, avatarrepo.GetInput{CharacterID: input.ID})
	switch {
	case err == nil:
		result.Avatar = av.Avatar
	case errors.IsNotFound(err):
	default:
		return nil, errors.Wrapf(err, "failed to load avatar for character %d", input.ID)
	}
	return result, nil
}

// CreateSource validates the form and stores a new character or creature
func (o *orchestrator) CreateSource(ctx context.Context, input *CreateSourceInput) (*CreateSourceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	r, err := o.repo(input.Kind)
	if err != nil {
		return nil, err
	}

	fields, err := input.Form.parse()
	if err != nil {
		return nil, err
	}

	out, err := r.Create(ctx, sourcerepo.CreateInput{
		Name:  fields.name,
		HP:    &fields.hp,
		AC:    &fields.ac,
		Notes: fields.notes,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", input.Kind)
	}

	o.logger.Info("source created",
		zap.String("kind", string(input.Kind)),
		zap.Int64("id", out.Source.ID),
		zap.String("name", out.Source.Name),
	)
	return &CreateSourceOutput{Source: out.Source}, nil
}

// UpdateSource replaces a character's or creature's fields with the form
func (o *orchestrator) UpdateSource(ctx context.Context, input *UpdateSourceInput) (*UpdateSourceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	r, err := o.repo(input.Kind)
	if err != nil {
		return nil, err
	}
	if input.ID <= 0 {
		return nil, errors.InvalidArgument("id must be positive")
	}

	fields, err := input.Form.parse()
	if err != nil {
		return nil, err
	}

	out, err := r.Update(ctx, sourcerepo.UpdateInput{Source: &entities.Source{
		ID:    input.ID,
		Kind:  input.Kind,
		Name:  fields.name,
		HP:    &fields.hp,
		AC:    &fields.ac,
		Notes: fields.notes,
	}})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update %s %d", input.Kind, input.ID)
	}
	return &UpdateSourceOutput{Source: out.Source}, nil
}

// DeleteSource removes a character or creature. A deleted character's
// avatar is removed too.
func (o *orchestrator) DeleteSource(ctx context.Context, input *DeleteSourceInput) (*DeleteSourceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	r, err := o.repo(input.Kind)
	if err != nil {
		return nil, err
	}

	if _, err := r.Delete(ctx, sourcerepo.DeleteInput{ID: input.ID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete %s %d", input.Kind, input.ID)
	}

	result := &DeleteSourceOutput{}
	if input.Kind != entities.SourceKindCharacter {
		return result, nil
	}

	removed, err := o.avatars.Delete(ctx, avatarrepo.DeleteInput{CharacterID: input.ID})
	if err != nil {
		o.logger.Warn("character deleted but its avatar was not",
			zap.Int64("character_id", input.ID),
			zap.Error(err),
		)
		return result, nil
	}
	result.AvatarRemoved = removed.Removed
	return result, nil
}

// SetAvatar attaches an image reference to an existing character
func (o *orchestrator) SetAvatar(ctx context.Context, input *SetAvatarInput) (*SetAvatarOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r := o.repos[entities.SourceKindCharacter]
	if _, err := r.Get(ctx, sourcerepo.GetInput{ID: input.CharacterID}); err != nil {
		return nil, errors.Wrapf(err, "failed to load character %d", input.CharacterID)
	}

	out, err := o.avatars.Set(ctx, avatarrepo.SetInput{CharacterID: input.CharacterID, URI: input.URI})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set avatar for character %d", input.CharacterID)
	}
	return &SetAvatarOutput{Avatar: out.Avatar}, nil
}

// ListAvatars returns every stored avatar
func (o *orchestrator) ListAvatars(ctx context.Context, input *ListAvatarsInput) (*ListAvatarsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.avatars.List(ctx, avatarrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list avatars")
	}
	return &ListAvatarsOutput{Avatars: out.Avatars}, nil
}

// SearchMonsters looks up SRD monster names containing the query
func (o *orchestrator) SearchMonsters(ctx context.Context, input *SearchMonstersInput) (*SearchMonstersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if o.srd == nil {
		return nil, errors.FailedPrecondition("srd lookup is not configured")
	}

	monsters, err := o.srd.SearchMonsters(ctx, strings.TrimSpace(input.Query))
	if err != nil {
		return nil, errors.Wrap(err, "failed to search monsters")
	}
	return &SearchMonstersOutput{Monsters: monsters}, nil
}

type formFields struct {
	name  string
	hp    int
	ac    int
	notes *string
}

// parse applies the form rules: name is required after trimming, blank hp
// and ac mean zero, blank notes are dropped
func (f Form) parse() (*formFields, error) {
	vb := errors.NewValidationBuilder()

	name := strings.TrimSpace(f.Name)
	errors.ValidateRequired("name", name, vb)
	hp := parseStat("hp", f.HP, vb)
	ac := parseStat("ac", f.AC, vb)

	if err := vb.Build(); err != nil {
		return nil, err
	}

	fields := &formFields{name: name, hp: hp, ac: ac}
	if notes := strings.TrimSpace(f.Notes); notes != "" {
		fields.notes = &notes
	}
	return fields, nil
}

func parseStat(field, raw string, vb *errors.ValidationBuilder) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		vb.Field(field, "must be a whole number")
		return 0
	}
	if v < 0 {
		vb.Field(field, "must not be negative")
		return 0
	}
	return v
}
