// Package combat runs roster changes against stored battles. Each battle gets
// its own session: load, compute, save and replace happen under the session
// lock, and the cached roster only moves forward once the store confirms.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/combat Service

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.uber.org/zap"

	combatengine "github.com/KirkDiggler/rpg-combat-tracker/internal/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/idgen"
	battlerepo "github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/battle"
	sourcerepo "github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/source"
)

// InitiativeDie is rolled when a combatant is added with RollInitiative set
const InitiativeDie = 20

// Service defines the interface for combat operations on a battle roster
type Service interface {
	// LoadBattle refreshes the session from the store
	LoadBattle(ctx context.Context, input *LoadBattleInput) (*LoadBattleOutput, error)
	AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantOutput, error)
	ApplyChange(ctx context.Context, input *ApplyChangeInput) (*ApplyChangeOutput, error)
	// Exclusive runs fn while no roster change to battleID can start or
	// finish, then forgets the cached battle so the next call reloads it
	Exclusive(battleID int64, fn func() error) error
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	BattleRepo    battlerepo.Repository
	CharacterRepo sourcerepo.Repository
	CreatureRepo  sourcerepo.Repository
	IDGenerator   idgen.Generator
	// DiceRoller defaults to dice.DefaultRoller
	DiceRoller dice.Roller
	Logger     *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
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
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// session is the local copy of one battle. battle is nil until loaded.
type session struct {
	mu     sync.Mutex
	battle *entities.Battle
}

type orchestrator struct {
	battles battlerepo.Repository
	sources map[entities.SourceKind]sourcerepo.Repository
	ids     idgen.Generator
	roller  dice.Roller
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*session
}

// NewOrchestrator creates a new combat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.DiceRoller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &orchestrator{
		battles: cfg.BattleRepo,
		sources: map[entities.SourceKind]sourcerepo.Repository{
			entities.SourceKindCharacter: cfg.CharacterRepo,
			entities.SourceKindCreature:  cfg.CreatureRepo,
		},
		ids:      cfg.IDGenerator,
		roller:   roller,
		logger:   logger,
		sessions: make(map[int64]*session),
	}, nil
}

// LoadBattle loads a battle into its session, replacing whatever was cached
func (o *orchestrator) LoadBattle(ctx context.Context, input *LoadBattleInput) (*LoadBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID <= 0 {
		return nil, errors.InvalidArgument("battle ID must be positive")
	}

	s := o.acquire(input.BattleID)
	defer s.mu.Unlock()

	s.battle = nil
	b, err := o.load(ctx, s, input.BattleID)
	if err != nil {
		return nil, err
	}
	return &LoadBattleOutput{Battle: b.Clone()}, nil
}

// AddCombatant reads a character or creature and appends a combatant built
// from it to the battle roster
func (o *orchestrator) AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.BattleID <= 0 {
		vb.Field("battleID", "must be positive")
	}
	if !input.SourceKind.Valid() {
		vb.InvalidField("sourceKind", string(input.SourceKind))
	}
	if input.SourceID <= 0 {
		vb.Field("sourceID", "must be positive")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	initiative := input.Initiative
	if input.RollInitiative && isBlank(initiative) {
		rolled, err := o.rollInitiative(input.InitiativeModifier)
		if err != nil {
			return nil, err
		}
		initiative = &rolled
	}

	src, err := o.sources[input.SourceKind].Get(ctx, sourcerepo.GetInput{ID: input.SourceID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s %d", input.SourceKind, input.SourceID)
	}

	s := o.acquire(input.BattleID)
	defer s.mu.Unlock()

	current, err := o.load(ctx, s, input.BattleID)
	if err != nil {
		return nil, err
	}

	roster, added, err := combatengine.AddCombatant(
		current.Combatants,
		src.Source,
		input.SourceKind.SourceType(),
		combatengine.Overrides{
			HPMax:        input.HPMax,
			Initiative:   initiative,
			NameOverride: input.NameOverride,
		},
		o.ids,
	)
	if err != nil {
		return nil, err
	}

	saved, err := o.save(ctx, s, current, roster)
	if err != nil {
		return nil, err
	}

	o.logger.Info("combatant added",
		zap.Int64("battle_id", input.BattleID),
		zap.String("combatant_id", added.InternalID),
		zap.String("source_type", string(added.SourceType)),
		zap.Int("initiative", added.Initiative),
	)
	return &AddCombatantOutput{Battle: saved.Clone(), Combatant: added}, nil
}

// ApplyChange applies a heal, damage or temp change typed by the user. An
// unusable amount, unknown mode or missing combatant changes nothing and
// nothing is saved.
func (o *orchestrator) ApplyChange(ctx context.Context, input *ApplyChangeInput) (*ApplyChangeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID <= 0 {
		return nil, errors.InvalidArgument("battle ID must be positive")
	}

	s := o.acquire(input.BattleID)
	defer s.mu.Unlock()

	current, err := o.load(ctx, s, input.BattleID)
	if err != nil {
		return nil, err
	}

	roster := combatengine.ApplyChange(current.Combatants, input.CombatantID, input.Mode, input.Amount)
	if slices.Equal(roster, current.Combatants) {
		o.logger.Debug("hp change had no effect",
			zap.Int64("battle_id", input.BattleID),
			zap.String("combatant_id", input.CombatantID),
			zap.String("mode", string(input.Mode)),
		)
		return &ApplyChangeOutput{Battle: current.Clone()}, nil
	}

	saved, err := o.save(ctx, s, current, roster)
	if err != nil {
		return nil, err
	}

	return &ApplyChangeOutput{Battle: saved.Clone(), Changed: true}, nil
}

// Exclusive holds the session lock for battleID while fn runs. Lifecycle
// writes that go through it cannot interleave with a roster save, and the
// cached copy is dropped afterwards whether or not fn succeeded.
func (o *orchestrator) Exclusive(battleID int64, fn func() error) error {
	s := o.acquire(battleID)
	defer s.mu.Unlock()

	s.battle = nil
	return fn()
}

// acquire returns the session for battleID with its lock held
func (o *orchestrator) acquire(battleID int64) *session {
	o.mu.Lock()
	s, ok := o.sessions[battleID]
	if !ok {
		s = &session{}
		o.sessions[battleID] = s
	}
	o.mu.Unlock()

	s.mu.Lock()
	return s
}

// load returns the cached battle, fetching it on first use. The roster is
// sorted by initiative on load.
func (o *orchestrator) load(ctx context.Context, s *session, battleID int64) (*entities.Battle, error) {
	if s.battle != nil {
		return s.battle, nil
	}

	out, err := o.battles.Get(ctx, battlerepo.GetInput{ID: battleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load battle %d", battleID)
	}

	b := out.Battle.Clone()
	b.Combatants = combatengine.SortRoster(b.Combatants)
	s.battle = b
	return b, nil
}

// save writes roster through the gateway. The session moves to the stored
// battle only on success and is dropped when the battle no longer exists.
func (o *orchestrator) save(ctx context.Context, s *session, current *entities.Battle, roster []entities.Combatant) (*entities.Battle, error) {
	next := current.Clone()
	next.Combatants = roster

	out, err := o.battles.Update(ctx, battlerepo.UpdateInput{Battle: next})
	if err != nil {
		if errors.IsNotFound(err) {
			s.battle = nil
		}
		o.logger.Warn("failed to save roster",
			zap.Int64("battle_id", current.ID),
			zap.Error(err),
		)
		return nil, errors.Wrapf(err, "failed to save battle %d", current.ID)
	}

	stored := out.Battle.Clone()
	stored.Combatants = combatengine.SortRoster(stored.Combatants)
	s.battle = stored
	return stored, nil
}

// rollInitiative rolls a d20 and adds modifier
func (o *orchestrator) rollInitiative(modifier int) (string, error) {
	roll, err := o.roller.Roll(InitiativeDie)
	if err != nil {
		return "", errors.Wrap(err, "failed to roll initiative")
	}
	return strconv.Itoa(roll + modifier), nil
}

func isBlank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}
