package battle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/idgen"
	battlerepo "github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/battle"
	sourcerepo "github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/source"
)

// getHook runs onFirstGet right after the first Get returns
type getHook struct {
	battlerepo.Repository
	once       sync.Once
	onFirstGet func()
}

func (h *getHook) Get(ctx context.Context, input battlerepo.GetInput) (*battlerepo.GetOutput, error) {
	out, err := h.Repository.Get(ctx, input)
	h.once.Do(h.onFirstGet)
	return out, err
}

func TestRenameKeepsRosterSavedDuringRename(t *testing.T) {
	ctx := context.Background()
	store := battlerepo.NewInMemory(clock.New())
	created, err := store.Create(ctx, battlerepo.CreateInput{Name: "Ambush"})
	require.NoError(t, err)
	battleID := created.Battle.ID

	creatures, err := sourcerepo.NewInMemory(entities.SourceKindCreature, nil)
	require.NoError(t, err)
	characters, err := sourcerepo.NewInMemory(entities.SourceKindCharacter, nil)
	require.NoError(t, err)
	hp := 7
	wolf, err := creatures.Create(ctx, sourcerepo.CreateInput{Name: "Wolf", HP: &hp})
	require.NoError(t, err)

	repo := &getHook{Repository: store}
	sessions, err := combat.NewOrchestrator(&combat.Config{
		BattleRepo:    repo,
		CharacterRepo: characters,
		CreatureRepo:  creatures,
		IDGenerator:   idgen.NewSequential("c"),
	})
	require.NoError(t, err)
	battles, err := battle.NewOrchestrator(&battle.Config{BattleRepo: repo, Sessions: sessions})
	require.NoError(t, err)

	// a roster change submitted while the rename sits between its load and
	// its write
	added := make(chan error, 1)
	repo.onFirstGet = func() {
		go func() {
			_, err := sessions.AddCombatant(ctx, &combat.AddCombatantInput{
				BattleID:   battleID,
				SourceKind: entities.SourceKindCreature,
				SourceID:   wolf.Source.ID,
			})
			added <- err
		}()
		time.Sleep(20 * time.Millisecond)
	}

	_, err = battles.UpdateBattle(ctx, &battle.UpdateBattleInput{BattleID: battleID, Name: "Ambush at dusk"})
	require.NoError(t, err)
	require.NoError(t, <-added)

	stored, err := store.Get(ctx, battlerepo.GetInput{ID: battleID})
	require.NoError(t, err)
	assert.Equal(t, "Ambush at dusk", stored.Battle.Name)
	require.Len(t, stored.Battle.Combatants, 1)
	assert.Equal(t, "Wolf", stored.Battle.Combatants[0].Name)
}

func TestDeleteDropsSession(t *testing.T) {
	ctx := context.Background()
	store := battlerepo.NewInMemory(clock.New())
	created, err := store.Create(ctx, battlerepo.CreateInput{Name: "Crypt"})
	require.NoError(t, err)

	creatures, _ := sourcerepo.NewInMemory(entities.SourceKindCreature, nil)
	characters, _ := sourcerepo.NewInMemory(entities.SourceKindCharacter, nil)
	sessions, err := combat.NewOrchestrator(&combat.Config{
		BattleRepo:    store,
		CharacterRepo: characters,
		CreatureRepo:  creatures,
		IDGenerator:   idgen.NewSequential("c"),
	})
	require.NoError(t, err)
	battles, err := battle.NewOrchestrator(&battle.Config{BattleRepo: store, Sessions: sessions})
	require.NoError(t, err)

	_, err = sessions.LoadBattle(ctx, &combat.LoadBattleInput{BattleID: created.Battle.ID})
	require.NoError(t, err)

	_, err = battles.DeleteBattle(ctx, &battle.DeleteBattleInput{BattleID: created.Battle.ID})
	require.NoError(t, err)

	_, err = sessions.ApplyChange(ctx, &combat.ApplyChangeInput{
		BattleID: created.Battle.ID, CombatantID: "any", Amount: "1",
	})
	assert.True(t, errors.IsNotFound(err))
}
