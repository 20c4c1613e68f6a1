package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/clients/postgrest"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/clients/srd"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/config"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	battleorch "github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/battle"
	combatorch "github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/combat"
	sourceorch "github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/source"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-combat-tracker/internal/redis"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/avatar"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/battle"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/source"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/storage/postgres"
)

// application holds the wired orchestrators for one process
type application struct {
	battles battleorch.Service
	combat  combatorch.Service
	sources sourceorch.Service
	logger  *zap.Logger
	closers []func() error
}

// stores are the repositories for the selected driver
type stores struct {
	battles    battle.Repository
	characters source.Repository
	creatures  source.Repository
	closers    []func() error
}

func newApplication(ctx context.Context, cfg config.Config, logger *zap.Logger) (*application, error) {
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app := &application{logger: logger, closers: st.closers}

	avatars, err := avatar.OpenSQLite(&avatar.SQLiteConfig{Path: cfg.Avatars.Path, Logger: logger})
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.closers = append(app.closers, avatars.Close)

	catalog, err := srd.New(&srd.Config{
		BaseURL:     cfg.SRD.BaseURL,
		HTTPTimeout: cfg.SRD.Timeout,
		CacheTTL:    cfg.SRD.CacheTTL,
		Logger:      logger,
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.combat, err = combatorch.NewOrchestrator(&combatorch.Config{
		BattleRepo:    st.battles,
		CharacterRepo: st.characters,
		CreatureRepo:  st.creatures,
		IDGenerator:   idgen.NewTimestamp(""),
		Logger:        logger,
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.battles, err = battleorch.NewOrchestrator(&battleorch.Config{
		BattleRepo: st.battles,
		Sessions:   app.combat,
		Logger:     logger,
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.sources, err = sourceorch.NewOrchestrator(&sourceorch.Config{
		CharacterRepo: st.characters,
		CreatureRepo:  st.creatures,
		AvatarStore:   avatars,
		SRDClient:     catalog,
		Logger:        logger,
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	logger.Debug("tracker ready", zap.String("store", cfg.Store.Driver))
	return app, nil
}

// Close releases every store in reverse order of opening
func (a *application) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	_ = a.logger.Sync()
	return first
}

func openStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memoryStores()
	case config.DriverRedis:
		return redisStores(ctx, cfg.Redis, logger)
	case config.DriverPostgres:
		return postgresStores(ctx, cfg.Postgres)
	case config.DriverPostgREST:
		return postgrestStores(cfg.PostgREST, logger)
	}
	return nil, errors.InvalidArgumentf("unknown store driver %q", cfg.Store.Driver)
}

func memoryStores() (*stores, error) {
	c := clock.New()
	characters, err := source.NewInMemory(entities.SourceKindCharacter, c)
	if err != nil {
		return nil, err
	}
	creatures, err := source.NewInMemory(entities.SourceKindCreature, c)
	if err != nil {
		return nil, err
	}
	return &stores{battles: battle.NewInMemory(c), characters: characters, creatures: creatures}, nil
}

func redisStores(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*stores, error) {
	client, err := redisclient.NewClient(cfg.Addr, &redisclient.Options{
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
		UseTLS:   cfg.UseTLS,
	})
	if err != nil {
		return nil, errors.Transport(err, "failed to create redis client")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Transportf(err, "failed to reach redis at %s", cfg.Addr)
	}

	st := &stores{closers: []func() error{client.Close}}
	st.battles, err = battle.NewRedis(&battle.RedisConfig{Client: client, Logger: logger})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	st.characters, err = source.NewRedis(&source.RedisConfig{Kind: entities.SourceKindCharacter, Client: client, Logger: logger})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	st.creatures, err = source.NewRedis(&source.RedisConfig{Kind: entities.SourceKindCreature, Client: client, Logger: logger})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return st, nil
}

func postgresStores(ctx context.Context, cfg config.PostgresConfig) (*stores, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	closePool := func() error {
		pool.Close()
		return nil
	}

	st := &stores{closers: []func() error{closePool}}
	st.battles, err = battle.NewPostgres(pool.DB())
	if err != nil {
		pool.Close()
		return nil, err
	}
	st.characters, err = source.NewPostgres(pool.DB(), entities.SourceKindCharacter)
	if err != nil {
		pool.Close()
		return nil, err
	}
	st.creatures, err = source.NewPostgres(pool.DB(), entities.SourceKindCreature)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return st, nil
}

func postgrestStores(cfg config.PostgRESTConfig, logger *zap.Logger) (*stores, error) {
	client, err := postgrest.New(&postgrest.Config{
		BaseURL:    cfg.URL,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	st := &stores{}
	if st.battles, err = battle.NewPostgREST(client); err != nil {
		return nil, err
	}
	if st.characters, err = source.NewPostgREST(client, entities.SourceKindCharacter); err != nil {
		return nil, err
	}
	if st.creatures, err = source.NewPostgREST(client, entities.SourceKindCreature); err != nil {
		return nil, err
	}
	return st, nil
}
