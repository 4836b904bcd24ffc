package roster

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
	redisclient "github.com/KirkDiggler/doodle-garden/internal/redis"
)

type redisRepository struct {
	client redisclient.Client
	key    string
}

// RedisConfig contains configuration for the Redis roster repository
type RedisConfig struct {
	Client redisclient.Client
	Key    string
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

// NewRedis creates a Redis-backed roster repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	return &redisRepository{
		client: cfg.Client,
		key:    key,
	}, nil
}

func (r *redisRepository) Load(ctx context.Context, _ LoadInput) (*LoadOutput, error) {
	result, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			slog.DebugContext(ctx, "roster key not found", "key", r.key)
			return &LoadOutput{Record: &Record{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to get roster").WithMeta("key", r.key)
	}

	record, err := Decode(result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode roster").WithMeta("key", r.key)
	}

	return &LoadOutput{Record: record, Found: true}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	data, err := Encode(input.Record)
	if err != nil {
		return nil, err
	}

	// SET replaces the value atomically; readers never see a partial record
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save roster").WithMeta("key", r.key)
	}

	slog.DebugContext(ctx, "saved roster",
		"key", r.key,
		"plants", len(input.Record.Plants),
		"bytes", len(data))

	return &SaveOutput{Bytes: len(data)}, nil
}
