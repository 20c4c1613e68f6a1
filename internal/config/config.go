// Package config loads tracker settings from an optional YAML file,
// TRACKER_* environment variables and built-in defaults.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

// EnvPrefix is prepended to every environment override, e.g. TRACKER_STORE_DRIVER
const EnvPrefix = "TRACKER"

// Store drivers
const (
	DriverMemory    = "memory"
	DriverRedis     = "redis"
	DriverPostgres  = "postgres"
	DriverPostgREST = "postgrest"
)

// StoreConfig selects the backend for battles, characters and creatures
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

// PostgresConfig holds database connection parameters
type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns a postgres:// URL usable by both pgx and golang-migrate
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Name,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}

// PostgRESTConfig points at a Supabase style REST endpoint
type PostgRESTConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AvatarConfig locates the local avatar database
type AvatarConfig struct {
	Path string `mapstructure:"path"`
}

// SRDConfig configures the monster catalog
type SRDConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the root configuration
type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	PostgREST PostgRESTConfig `mapstructure:"postgrest"`
	Avatars   AvatarConfig    `mapstructure:"avatars"`
	SRD       SRDConfig       `mapstructure:"srd"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// Validate reports every violation at once. Backend sections are only
// checked when their driver is selected.
func (c Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("store.driver", c.Store.Driver,
		[]string{DriverMemory, DriverRedis, DriverPostgres, DriverPostgREST}, vb)

	switch c.Store.Driver {
	case DriverRedis:
		errors.ValidateRequired("redis.addr", c.Redis.Addr, vb)
		if c.Redis.DB < 0 {
			vb.Field("redis.db", "must not be negative")
		}
	case DriverPostgres:
		validatePostgres(c.Postgres, vb)
	case DriverPostgREST:
		if u, err := url.Parse(c.PostgREST.URL); err != nil || u.Scheme == "" || u.Host == "" {
			vb.Field("postgrest.url", "must be an absolute URL")
		}
		errors.ValidateRequired("postgrest.api_key", c.PostgREST.APIKey, vb)
		if c.PostgREST.Timeout < 0 {
			vb.Field("postgrest.timeout", "must not be negative")
		}
	}

	errors.ValidateRequired("avatars.path", c.Avatars.Path, vb)
	if c.SRD.CacheTTL < 0 {
		vb.Field("srd.cache_ttl", "must not be negative")
	}

	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{"json", "console"}, vb)

	return vb.Build()
}

func validatePostgres(p PostgresConfig, vb *errors.ValidationBuilder) {
	errors.ValidateRequired("postgres.host", p.Host, vb)
	errors.ValidateRange("postgres.port", p.Port, 1, 65535, vb)
	errors.ValidateRequired("postgres.user", p.User, vb)
	errors.ValidateRequired("postgres.name", p.Name, vb)
	errors.ValidateEnum("postgres.sslmode", p.SSLMode, []string{"disable", "require", "verify-ca", "verify-full"}, vb)
	if p.MaxConns < 1 {
		vb.Fieldf("postgres.max_conns", "must be >= 1, got %d", p.MaxConns)
	}
	if p.MinConns < 0 {
		vb.Fieldf("postgres.min_conns", "must be >= 0, got %d", p.MinConns)
	}
	if p.MinConns > p.MaxConns {
		vb.Field("postgres.min_conns", "must not exceed postgres.max_conns")
	}
}

// New returns a viper instance with defaults and environment overrides
// applied. Callers may bind flags to it before calling LoadFromViper.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads the file at path, when given, on top of the defaults
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "reading config file %s", path)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper unmarshals and validates an already prepared viper instance
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "unmarshalling config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", DriverMemory)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.use_tls", false)
	v.SetDefault("redis.password", "")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "tracker")
	v.SetDefault("postgres.password", "tracker")
	v.SetDefault("postgres.name", "tracker")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", "1h")

	v.SetDefault("postgrest.url", "")
	v.SetDefault("postgrest.api_key", "")
	v.SetDefault("postgrest.timeout", "10s")

	v.SetDefault("avatars.path", "tracker-avatars.db")

	v.SetDefault("srd.base_url", "https://www.dnd5eapi.co/api/2014/")
	v.SetDefault("srd.timeout", "30s")
	v.SetDefault("srd.cache_ttl", "24h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
