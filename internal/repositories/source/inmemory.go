package source

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
)

// InMemoryRepository implements Repository using process memory
type InMemoryRepository struct {
	mu     sync.RWMutex
	kind   entities.SourceKind
	store  map[int64]entities.Source
	nextID int64
	clock  clock.Clock
}

// NewInMemory creates a new in-memory repository for kind
func NewInMemory(kind entities.SourceKind, c clock.Clock) (*InMemoryRepository, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		kind:  kind,
		store: make(map[int64]entities.Source),
		clock: c,
	}, nil
}

var _ Repository = (*InMemoryRepository)(nil)

// Kind reports which pool this repository serves
func (r *InMemoryRepository) Kind() entities.SourceKind {
	return r.kind
}

// List returns all sources ordered by id
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]*entities.Source, 0, len(r.store))
	for _, src := range r.store {
		sources = append(sources, &src)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].ID < sources[j].ID })
	return &ListOutput{Sources: sources}, nil
}

// Get loads a source by id
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	src, ok := r.store[input.ID]
	if !ok {
		return nil, notFound(r.kind, input.ID)
	}
	return &GetOutput{Source: &src}, nil
}

// Create stores a new source
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.clock.Now()
	src := entities.Source{
		ID:        r.nextID,
		Kind:      r.kind,
		Name:      input.Name,
		HP:        input.HP,
		AC:        input.AC,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.store[src.ID] = src
	return &CreateOutput{Source: &src}, nil
}

// Update replaces a source's fields
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Source == nil {
		return nil, errors.InvalidArgument(errSourceNil)
	}
	if input.Source.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[input.Source.ID]
	if !ok {
		return nil, notFound(r.kind, input.Source.ID)
	}

	updated := *input.Source
	updated.Kind = r.kind
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = r.clock.Now()
	r.store[updated.ID] = updated
	return &UpdateOutput{Source: &updated}, nil
}

// Delete removes a source
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[input.ID]; !ok {
		return nil, notFound(r.kind, input.ID)
	}
	delete(r.store, input.ID)
	return &DeleteOutput{}, nil
}
