package localstore

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Key prefix for snapshot blobs: intereal:store:{key}
const redisKeyPrefix = "intereal:store:"

// RedisBackend stores snapshot blobs as Redis string values. Snapshots are
// durable session state, so no TTL is applied.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *RedisBackend) Put(ctx context.Context, key string, data []byte) error {
	return b.client.Set(ctx, redisKeyPrefix+key, data, 0).Err()
}
