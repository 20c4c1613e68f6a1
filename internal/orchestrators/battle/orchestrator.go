// Package battle implements the battle lifecycle: create, rename or annotate,
// delete and the read surfaces. Roster changes live in the combat orchestrator.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/battle Service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	battlerepo "github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/battle"
)

// Service defines the interface for battle lifecycle operations
type Service interface {
	CreateBattle(ctx context.Context, input *CreateBattleInput) (*CreateBattleOutput, error)
	UpdateBattle(ctx context.Context, input *UpdateBattleInput) (*UpdateBattleOutput, error)
	DeleteBattle(ctx context.Context, input *DeleteBattleInput) (*DeleteBattleOutput, error)
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)
	ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error)
}

// Sessions serializes lifecycle writes with roster changes. The combat
// orchestrator implements it so a rename cannot overwrite a roster save made
// between its load and its write, and no stale session outlives a rename or
// delete.
type Sessions interface {
	Exclusive(battleID int64, fn func() error) error
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	BattleRepo battlerepo.Repository
	// Sessions is optional
	Sessions Sessions
	Logger   *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	repo     battlerepo.Repository
	sessions Sessions
	logger   *zap.Logger
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
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
		repo:     cfg.BattleRepo,
		sessions: cfg.Sessions,
		logger:   logger,
	}, nil
}

// CreateBattle stores a new battle with an empty roster
func (o *orchestrator) CreateBattle(ctx context.Context, input *CreateBattleInput) (*CreateBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name, notes, err := normalizeForm(input.Name, input.Notes)
	if err != nil {
		return nil, err
	}

	out, err := o.repo.Create(ctx, battlerepo.CreateInput{Name: name, Notes: notes})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create battle")
	}

	o.logger.Info("battle created",
		zap.Int64("battle_id", out.Battle.ID),
		zap.String("name", out.Battle.Name),
	)
	return &CreateBattleOutput{Battle: out.Battle}, nil
}

// UpdateBattle renames or annotates a battle. The stored roster is kept.
func (o *orchestrator) UpdateBattle(ctx context.Context, input *UpdateBattleInput) (*UpdateBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID <= 0 {
		return nil, errors.InvalidArgument("battle ID must be positive")
	}

	name, notes, err := normalizeForm(input.Name, input.Notes)
	if err != nil {
		return nil, err
	}

	var updated *entities.Battle
	err = o.exclusive(input.BattleID, func() error {
		current, err := o.repo.Get(ctx, battlerepo.GetInput{ID: input.BattleID})
		if err != nil {
			return errors.Wrapf(err, "failed to load battle %d", input.BattleID)
		}

		next := current.Battle.Clone()
		next.Name = name
		next.Notes = notes

		out, err := o.repo.Update(ctx, battlerepo.UpdateInput{Battle: next})
		if err != nil {
			return errors.Wrapf(err, "failed to update battle %d", input.BattleID)
		}
		updated = out.Battle
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("battle updated", zap.Int64("battle_id", input.BattleID))
	return &UpdateBattleOutput{Battle: updated}, nil
}

// DeleteBattle removes a battle and its roster
func (o *orchestrator) DeleteBattle(ctx context.Context, input *DeleteBattleInput) (*DeleteBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID <= 0 {
		return nil, errors.InvalidArgument("battle ID must be positive")
	}

	err := o.exclusive(input.BattleID, func() error {
		if _, err := o.repo.Delete(ctx, battlerepo.DeleteInput{ID: input.BattleID}); err != nil {
			return errors.Wrapf(err, "failed to delete battle %d", input.BattleID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("battle deleted", zap.Int64("battle_id", input.BattleID))
	return &DeleteBattleOutput{}, nil
}

// GetBattle loads a battle with its roster sorted by initiative
func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID <= 0 {
		return nil, errors.InvalidArgument("battle ID must be positive")
	}

	out, err := o.repo.Get(ctx, battlerepo.GetInput{ID: input.BattleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load battle %d", input.BattleID)
	}

	b := out.Battle.Clone()
	b.Combatants = combat.SortRoster(b.Combatants)
	return &GetBattleOutput{Battle: b}, nil
}

// ListBattles returns every stored battle
func (o *orchestrator) ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.repo.List(ctx, battlerepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list battles")
	}
	return &ListBattlesOutput{Battles: out.Battles}, nil
}

func (o *orchestrator) exclusive(battleID int64, fn func() error) error {
	if o.sessions == nil {
		return fn()
	}
	return o.sessions.Exclusive(battleID, fn)
}

// normalizeForm trims the name and notes. Blank notes become nil.
func normalizeForm(name string, notes *string) (string, *string, error) {
	name = strings.TrimSpace(name)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	if err := vb.Build(); err != nil {
		return "", nil, err
	}

	if notes == nil {
		return name, nil, nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return name, nil, nil
	}
	return name, &trimmed, nil
}
