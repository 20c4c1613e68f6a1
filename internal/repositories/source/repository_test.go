package source_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/clients/postgrest"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/redis"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/source"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/testutils"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

type backend struct {
	// open returns one repository per kind sharing the same store
	open func(t *testing.T) (characters, creatures source.Repository)
}

type RepositoryContractSuite struct {
	suite.Suite
	backend    backend
	characters source.Repository
	creatures  source.Repository
	ctx        context.Context
}

func (s *RepositoryContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.characters, s.creatures = s.backend.open(s.T())
}

func fixedClock() clock.Clock {
	return clock.Fixed{At: time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)}
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{backend: backend{
		open: func(t *testing.T) (source.Repository, source.Repository) {
			chars, err := source.NewInMemory(entities.SourceKindCharacter, fixedClock())
			if err != nil {
				t.Fatal(err)
			}
			creatures, err := source.NewInMemory(entities.SourceKindCreature, fixedClock())
			if err != nil {
				t.Fatal(err)
			}
			return chars, creatures
		},
	}})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{backend: backend{
		open: func(t *testing.T) (source.Repository, source.Repository) {
			client, _ := testutils.CreateTestRedisClient(t)
			return newRedis(t, client, entities.SourceKindCharacter), newRedis(t, client, entities.SourceKindCreature)
		},
	}})
}

func newRedis(t *testing.T, client redis.Client, kind entities.SourceKind) source.Repository {
	repo, err := source.NewRedis(&source.RedisConfig{Kind: kind, Client: client, Clock: fixedClock()})
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestPostgRESTRepository(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{backend: backend{
		open: func(t *testing.T) (source.Repository, source.Repository) {
			fake := testutils.NewFakePostgREST(t)
			client, err := postgrest.New(&postgrest.Config{BaseURL: fake.URL(), APIKey: "anon"})
			if err != nil {
				t.Fatal(err)
			}
			chars, err := source.NewPostgREST(client, entities.SourceKindCharacter)
			if err != nil {
				t.Fatal(err)
			}
			creatures, err := source.NewPostgREST(client, entities.SourceKindCreature)
			if err != nil {
				t.Fatal(err)
			}
			return chars, creatures
		},
	}})
}

func TestPostgresRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	suite.Run(t, &RepositoryContractSuite{backend: backend{
		open: func(t *testing.T) (source.Repository, source.Repository) {
			pool := testutils.NewPostgresPool(t)
			chars, err := source.NewPostgres(pool, entities.SourceKindCharacter)
			if err != nil {
				t.Fatal(err)
			}
			creatures, err := source.NewPostgres(pool, entities.SourceKindCreature)
			if err != nil {
				t.Fatal(err)
			}
			return chars, creatures
		},
	}})
}

func (s *RepositoryContractSuite) TestCreateAndGet() {
	created, err := s.creatures.Create(s.ctx, source.CreateInput{
		Name:  "Owlbear",
		HP:    intPtr(59),
		AC:    intPtr(13),
		Notes: strPtr("multiattack"),
	})
	s.Require().NoError(err)
	s.Greater(created.Source.ID, int64(0))
	s.Equal(entities.SourceKindCreature, created.Source.Kind)

	got, err := s.creatures.Get(s.ctx, source.GetInput{ID: created.Source.ID})
	s.Require().NoError(err)
	s.Equal("Owlbear", got.Source.Name)
	s.Require().NotNil(got.Source.HP)
	s.Equal(59, *got.Source.HP)
	s.Require().NotNil(got.Source.AC)
	s.Equal(13, *got.Source.AC)
	s.Require().NotNil(got.Source.Notes)
	s.Equal("multiattack", *got.Source.Notes)
	s.Equal(entities.SourceKindCreature, got.Source.Kind)
}

func (s *RepositoryContractSuite) TestNullableStats() {
	created, err := s.characters.Create(s.ctx, source.CreateInput{Name: "Pip"})
	s.Require().NoError(err)

	got, err := s.characters.Get(s.ctx, source.GetInput{ID: created.Source.ID})
	s.Require().NoError(err)
	s.Nil(got.Source.HP)
	s.Nil(got.Source.AC)
	s.Nil(got.Source.Notes)
}

func (s *RepositoryContractSuite) TestKindsAreSeparate() {
	char, err := s.characters.Create(s.ctx, source.CreateInput{Name: "Brienne", HP: intPtr(44)})
	s.Require().NoError(err)

	s.Equal(entities.SourceKindCharacter, s.characters.Kind())
	s.Equal(entities.SourceKindCreature, s.creatures.Kind())

	list, err := s.creatures.List(s.ctx, source.ListInput{})
	s.Require().NoError(err)
	s.Empty(list.Sources)

	list, err = s.characters.List(s.ctx, source.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Sources, 1)
	s.Equal(char.Source.ID, list.Sources[0].ID)
}

func (s *RepositoryContractSuite) TestUpdate() {
	created, err := s.characters.Create(s.ctx, source.CreateInput{Name: "Ayla", HP: intPtr(20)})
	s.Require().NoError(err)

	src := created.Source
	src.Name = "Ayla the Bold"
	src.HP = intPtr(27)
	src.Notes = strPtr("level 4")
	updated, err := s.characters.Update(s.ctx, source.UpdateInput{Source: src})
	s.Require().NoError(err)
	s.Equal("Ayla the Bold", updated.Source.Name)

	got, err := s.characters.Get(s.ctx, source.GetInput{ID: src.ID})
	s.Require().NoError(err)
	s.Equal("Ayla the Bold", got.Source.Name)
	s.Equal(27, *got.Source.HP)
	s.Equal("level 4", *got.Source.Notes)
}

func (s *RepositoryContractSuite) TestMissing() {
	_, err := s.characters.Get(s.ctx, source.GetInput{ID: 77})
	s.True(errors.IsNotFound(err))

	_, err = s.characters.Update(s.ctx, source.UpdateInput{Source: &entities.Source{ID: 77, Name: "x"}})
	s.True(errors.IsNotFound(err))

	_, err = s.characters.Delete(s.ctx, source.DeleteInput{ID: 77})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestDelete() {
	created, err := s.creatures.Create(s.ctx, source.CreateInput{Name: "Wolf"})
	s.Require().NoError(err)

	_, err = s.creatures.Delete(s.ctx, source.DeleteInput{ID: created.Source.ID})
	s.Require().NoError(err)

	_, err = s.creatures.Get(s.ctx, source.GetInput{ID: created.Source.ID})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestValidation() {
	_, err := s.creatures.Create(s.ctx, source.CreateInput{Name: " "})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.creatures.Get(s.ctx, source.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.creatures.Update(s.ctx, source.UpdateInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestUnknownKindRejected(t *testing.T) {
	_, err := source.NewInMemory(entities.SourceKind("npc"), nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
