package battle

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
)

// InMemoryRepository implements Repository using process memory. Used by the
// memory store driver and by tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	store  map[int64]*entities.Battle
	nextID int64
	clock  clock.Clock
}

// NewInMemory creates a new in-memory repository
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		store: make(map[int64]*entities.Battle),
		clock: c,
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// List returns every battle ordered by id
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	battles := make([]*entities.Battle, 0, len(r.store))
	for _, b := range r.store {
		battles = append(battles, b.Clone())
	}
	sort.Slice(battles, func(i, j int) bool { return battles[i].ID < battles[j].ID })

	return &ListOutput{Battles: battles}, nil
}

// Get retrieves a battle by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("battle %d not found", input.ID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Battle: b.Clone()}, nil
}

// Create stores a new battle with an empty roster
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.clock.Now()
	b := &entities.Battle{
		ID:         r.nextID,
		Name:       input.Name,
		Notes:      input.Notes,
		Combatants: []entities.Combatant{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.store[b.ID] = b

	return &CreateOutput{Battle: b.Clone()}, nil
}

// Update replaces name, notes and roster
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Battle == nil {
		return nil, errors.InvalidArgument(errBattleNil)
	}
	if input.Battle.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.store[input.Battle.ID]
	if !exists {
		return nil, errors.NotFoundf("battle %d not found", input.Battle.ID)
	}

	updated := input.Battle.Clone()
	updated.Combatants = rosterOrEmpty(updated.Combatants)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = r.clock.Now()
	r.store[updated.ID] = updated

	return &UpdateOutput{Battle: updated.Clone()}, nil
}

// Delete removes a battle
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("battle %d not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}
