package source

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-combat-tracker/internal/redis"
)

// RedisConfig contains configuration for the Redis source repository
type RedisConfig struct {
	Kind   entities.SourceKind
	Client redisclient.Client
	Clock  clock.Clock
	Logger *zap.Logger
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return validateKind(cfg.Kind)
}

type redisRepository struct {
	kind   entities.SourceKind
	client redisclient.Client
	clock  clock.Clock
	logger *zap.Logger
}

// NewRedis creates a Redis-backed source repository. Keys are namespaced by
// kind: character:{id}, character:index, character:next_id.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &redisRepository{
		kind:   cfg.Kind,
		client: cfg.Client,
		clock:  c,
		logger: logger,
	}, nil
}

func (r *redisRepository) Kind() entities.SourceKind {
	return r.kind
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, errors.Transportf(err, "failed to list %ss", r.kind)
	}
	sources := make([]*entities.Source, 0, len(ids))
	if len(ids) == 0 {
		return &ListOutput{Sources: sources}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.prefix() + id
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Transportf(err, "failed to load %ss", r.kind)
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			r.logger.Warn("source index points at missing key", zap.String("key", keys[i]))
			continue
		}
		src, err := r.decode(s)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return &ListOutput{Sources: sources}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	result, err := r.client.Get(ctx, r.key(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, notFound(r.kind, input.ID)
		}
		return nil, errors.Transportf(err, "failed to get %s %d", r.kind, input.ID)
	}

	src, err := r.decode(result)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Source: src}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	id, err := r.client.Incr(ctx, r.counterKey()).Result()
	if err != nil {
		return nil, errors.Transportf(err, "failed to allocate %s id", r.kind)
	}

	now := r.clock.Now()
	src := &entities.Source{
		ID:        id,
		Kind:      r.kind,
		Name:      input.Name,
		HP:        input.HP,
		AC:        input.AC,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	data, err := json.Marshal(src)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal %s", r.kind)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(id), data, 0)
	pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Transportf(err, "failed to create %s", r.kind)
	}
	return &CreateOutput{Source: src}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Source == nil {
		return nil, errors.InvalidArgument(errSourceNil)
	}
	if input.Source.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	existing, err := r.Get(ctx, GetInput{ID: input.Source.ID})
	if err != nil {
		return nil, err
	}

	updated := *input.Source
	updated.Kind = r.kind
	updated.CreatedAt = existing.Source.CreatedAt
	updated.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(&updated)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal %s", r.kind)
	}

	// XX only writes when the key still exists, so a concurrent delete wins
	ok, err := r.client.SetXX(ctx, r.key(updated.ID), data, 0).Result()
	if err != nil {
		return nil, errors.Transportf(err, "failed to update %s %d", r.kind, updated.ID)
	}
	if !ok {
		return nil, notFound(r.kind, updated.ID)
	}
	return &UpdateOutput{Source: &updated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errSourceIDZero)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, r.key(input.ID))
	pipe.ZRem(ctx, r.indexKey(), strconv.FormatInt(input.ID, 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Transportf(err, "failed to delete %s %d", r.kind, input.ID)
	}
	if del.Val() == 0 {
		return nil, notFound(r.kind, input.ID)
	}
	return &DeleteOutput{}, nil
}

func (r *redisRepository) prefix() string     { return string(r.kind) + ":" }
func (r *redisRepository) indexKey() string   { return r.prefix() + "index" }
func (r *redisRepository) counterKey() string { return r.prefix() + "next_id" }

func (r *redisRepository) key(id int64) string {
	return r.prefix() + strconv.FormatInt(id, 10)
}

func (r *redisRepository) decode(data string) (*entities.Source, error) {
	var src entities.Source
	if err := json.Unmarshal([]byte(data), &src); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s", r.kind)
	}
	src.Kind = r.kind
	return &src, nil
}
