// Package srd looks up monster names in the D&D 5e SRD so creatures can be
// entered into the bestiary without typing them from memory.
package srd

//go:generate mockgen -destination=mock/mock_client.go -package=srdmock github.com/KirkDiggler/rpg-combat-tracker/internal/clients/srd Client

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

const (
	defaultBaseURL  = "https://www.dnd5eapi.co/api/2014/"
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 24 * time.Hour
)

// Monster is a catalog entry
type Monster struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
}

// Client searches the monster catalog
type Client interface {
	// SearchMonsters returns monsters whose name contains query, ignoring
	// case. An empty query returns the whole catalog.
	SearchMonsters(ctx context.Context, query string) ([]Monster, error)
}

// Config contains configuration options for the SRD client
type Config struct {
	// BaseURL for the D&D 5e API (optional)
	BaseURL string
	// HTTPTimeout for API requests (optional)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional)
	CacheTTL time.Duration
	// API overrides the dnd5e-api client, mostly for tests
	API    dnd5e.Interface
	Logger *zap.Logger
}

// Validate sets defaults for anything not provided
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultTimeout
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return nil
}

type client struct {
	api    dnd5e.Interface
	logger *zap.Logger
}

// New creates a catalog client backed by a cached dnd5e-api client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	api := cfg.API
	if api == nil {
		base, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
			Client:  &http.Client{Timeout: cfg.HTTPTimeout},
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create D&D 5e API client")
		}
		api = dnd5e.NewCachedClient(base, cfg.CacheTTL)
	}

	return &client{
		api:    api,
		logger: cfg.Logger,
	}, nil
}

func (c *client) SearchMonsters(_ context.Context, query string) ([]Monster, error) {
	refs, err := c.api.ListMonsters()
	if err != nil {
		c.logger.Warn("failed to list SRD monsters", zap.Error(err))
		return nil, errors.Transport(err, "failed to list SRD monsters")
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	monsters := make([]Monster, 0, len(refs))
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(ref.Name), needle) {
			continue
		}
		monsters = append(monsters, Monster{Key: ref.Key, Name: ref.Name})
	}

	sort.SliceStable(monsters, func(i, j int) bool {
		return monsters[i].Name < monsters[j].Name
	})
	return monsters, nil
}
