package battle

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-combat-tracker/internal/redis"
)

const (
	battleKeyPrefix = "battle:"
	indexKey        = "battle:index"
	counterKey      = "battle:next_id"

	// optimistic transactions retried when another writer touched the key
	maxTxRetries = 3
)

// RedisConfig contains configuration for the Redis battle repository
type RedisConfig struct {
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
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	logger *zap.Logger
}

// NewRedis creates a Redis-backed battle repository. Each battle is one JSON
// document so a roster save is a single SET.
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
		client: cfg.Client,
		clock:  c,
		logger: logger,
	}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Transport(err, "failed to list battles")
	}
	if len(ids) == 0 {
		return &ListOutput{Battles: []*entities.Battle{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = battleKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Transport(err, "failed to load battles")
	}

	battles := make([]*entities.Battle, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// index entry left behind by an interrupted delete
			r.logger.Warn("battle index points at missing key", zap.String("key", keys[i]))
			continue
		}
		b, err := decodeBattle(s)
		if err != nil {
			return nil, err
		}
		battles = append(battles, b)
	}

	return &ListOutput{Battles: battles}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	result, err := r.client.Get(ctx, battleKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("battle %d not found", input.ID)
		}
		return nil, errors.Transportf(err, "failed to get battle %d", input.ID)
	}

	b, err := decodeBattle(result)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Battle: b}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	id, err := r.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return nil, errors.Transport(err, "failed to allocate battle id")
	}

	now := r.clock.Now()
	b := &entities.Battle{
		ID:         id,
		Name:       input.Name,
		Notes:      input.Notes,
		Combatants: []entities.Combatant{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	data, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, battleKey(id), data, 0)
	pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Transport(err, "failed to create battle")
	}

	return &CreateOutput{Battle: b}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Battle == nil {
		return nil, errors.InvalidArgument(errBattleNil)
	}
	if input.Battle.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	key := battleKey(input.Battle.ID)
	var saved *entities.Battle

	// WATCH keeps a concurrent delete from being resurrected by this write
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("battle %d not found", input.Battle.ID)
			}
			return errors.Transportf(err, "failed to get battle %d", input.Battle.ID)
		}
		existing, err := decodeBattle(current)
		if err != nil {
			return err
		}

		updated := input.Battle.Clone()
		updated.Combatants = rosterOrEmpty(updated.Combatants)
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = r.clock.Now()

		data, err := json.Marshal(updated)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal battle")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}
		saved = updated
		return nil
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &UpdateOutput{Battle: saved}, nil
		}
		if !stderrors.Is(err, redis.TxFailedErr) {
			return nil, errors.Transportf(err, "failed to save battle %d", input.Battle.ID)
		}
		r.logger.Debug("battle changed during save, retrying",
			zap.Int64("battle_id", input.Battle.ID),
			zap.Int("attempt", attempt+1))
	}

	return nil, errors.Unavailablef("battle %d kept changing during save", input.Battle.ID)
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errBattleIDZero)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, battleKey(input.ID))
	pipe.ZRem(ctx, indexKey, strconv.FormatInt(input.ID, 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Transportf(err, "failed to delete battle %d", input.ID)
	}

	if del.Val() == 0 {
		return nil, errors.NotFoundf("battle %d not found", input.ID)
	}
	return &DeleteOutput{}, nil
}

func battleKey(id int64) string {
	return battleKeyPrefix + strconv.FormatInt(id, 10)
}

func decodeBattle(data string) (*entities.Battle, error) {
	var b entities.Battle
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal battle")
	}
	b.Combatants = rosterOrEmpty(b.Combatants)
	return &b, nil
}
