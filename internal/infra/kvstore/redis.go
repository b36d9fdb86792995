package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-priority-board/internal/observability/tracing"
)

const defaultKeyPrefix = "priority-board:"

type Redis struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedis wraps an existing client. The caller owns instrumentation; Close
// closes the client.
func NewRedis(client *redis.Client, keyPrefix string) *Redis {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &Redis{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	fullKey := r.keyPrefix + key

	ctx, span := tracing.StartStoreOperationSpan(ctx, BackendRedis, "get", fullKey)
	defer span.End()

	data, err := r.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			tracing.RecordError(span, nil)
			return nil, nil
		}
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("%w: get %s: %w", ErrRedisConnection, fullKey, err)
	}

	tracing.RecordError(span, nil)
	return data, nil
}

func (r *Redis) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	fullKey := r.keyPrefix + key

	ctx, span := tracing.StartStoreOperationSpan(ctx, BackendRedis, "set", fullKey)
	defer span.End()

	if err := r.client.Set(ctx, fullKey, data, 0).Err(); err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("%w: set %s: %w", ErrRedisConnection, fullKey, err)
	}

	tracing.RecordError(span, nil)
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Backend() string { return BackendRedis }
