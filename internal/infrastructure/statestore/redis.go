package statestore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis keeps state in Redis under prefix, e.g. "creatorhub:".
func NewRedis(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{
		backend: &redisBackend{client: client, prefix: prefix},
		ttl:     ttl,
	}
}

type redisBackend struct {
	client redis.UniversalClient
	prefix string
}

func (b *redisBackend) get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (b *redisBackend) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.client.Set(ctx, b.prefix+key, value, ttl).Err()
}

func (b *redisBackend) del(ctx context.Context, key string) error {
	return b.client.Del(ctx, b.prefix+key).Err()
}

// Ping checks connectivity for startup and health probes.
func Ping(ctx context.Context, client redis.UniversalClient) error {
	return client.Ping(ctx).Err()
}
