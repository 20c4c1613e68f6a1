package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/config"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func validConfig() config.Config {
	return config.Config{
		Store: config.StoreConfig{Driver: config.DriverMemory},
		Postgres: config.PostgresConfig{
			Host: "localhost", Port: 5432, User: "tracker", Name: "tracker",
			SSLMode: "disable", MaxConns: 5, MinConns: 1,
		},
		Avatars: config.AvatarConfig{Path: "avatars.db"},
		Logging: config.LoggingConfig{Level: "info", Format: "json"},
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, time.Hour, cfg.Postgres.MaxConnLifetime)
	assert.Equal(t, 24*time.Hour, cfg.SRD.CacheTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
store:
  driver: postgrest
postgrest:
  url: https://abc.supabase.co
  api_key: anon
  timeout: 5s
logging:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgREST, cfg.Store.Driver)
	assert.Equal(t, "https://abc.supabase.co", cfg.PostgREST.URL)
	assert.Equal(t, 5*time.Second, cfg.PostgREST.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TRACKER_STORE_DRIVER", "redis")
	t.Setenv("TRACKER_REDIS_ADDR", "cache:6380")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = config.DriverPostgREST
	cfg.Avatars.Path = " "
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "postgrest.url")
	assert.Contains(t, msg, "postgrest.api_key")
	assert.Contains(t, msg, "avatars.path")
	assert.Contains(t, msg, "logging.level")
}

func TestValidateUnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = "mongo"
	assert.ErrorContains(t, cfg.Validate(), "store.driver")
}

func TestValidateOnlyChecksSelectedBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Postgres = config.PostgresConfig{}
	assert.NoError(t, cfg.Validate())

	cfg.Store.Driver = config.DriverPostgres
	assert.ErrorContains(t, cfg.Validate(), "postgres.host")
}

func TestPostgresDSN(t *testing.T) {
	p := config.PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p@ss", Name: "tracker", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5433/tracker?sslmode=disable", p.DSN())
}

func TestPropertyPostgresPortRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := validConfig()
		cfg.Store.Driver = config.DriverPostgres
		cfg.Postgres.Port = rapid.IntRange(1, 65535).Draw(rt, "port")
		if err := cfg.Validate(); err != nil {
			rt.Fatalf("expected valid port %d: %v", cfg.Postgres.Port, err)
		}
	})

	rapid.Check(t, func(rt *rapid.T) {
		cfg := validConfig()
		cfg.Store.Driver = config.DriverPostgres
		cfg.Postgres.Port = rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(65536, 100000),
		).Draw(rt, "port")
		if cfg.Validate() == nil {
			rt.Fatalf("expected port %d to be rejected", cfg.Postgres.Port)
		}
	})
}

func TestPropertyPoolSizes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := validConfig()
		cfg.Store.Driver = config.DriverPostgres
		cfg.Postgres.MaxConns = rapid.Int32Range(1, 100).Draw(rt, "max_conns")
		cfg.Postgres.MinConns = rapid.Int32Range(cfg.Postgres.MaxConns+1, cfg.Postgres.MaxConns+100).Draw(rt, "min_conns")
		if cfg.Validate() == nil {
			rt.Fatalf("min_conns %d > max_conns %d accepted", cfg.Postgres.MinConns, cfg.Postgres.MaxConns)
		}
	})
}
