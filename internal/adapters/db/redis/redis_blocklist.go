package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blocklistPrefix = "blocklist:"

// minTTL keeps a just-expiring token's entry alive long enough to be seen.
const minTTL = time.Second

type RedisBlocklist struct {
	client redis.UniversalClient
}

func NewRedisBlocklist(client redis.UniversalClient) *RedisBlocklist {
	return &RedisBlocklist{
		client: client,
	}
}

func BlocklistKey(jti string) string {
	return blocklistPrefix + jti
}

func (r *RedisBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return r.client.Set(ctx, BlocklistKey(jti), "revoked", safeTTL(ttl)).Err()
}

func (r *RedisBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, BlocklistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func safeTTL(ttl time.Duration) time.Duration {
	if ttl < minTTL {
		return minTTL
	}
	return ttl
}

func (r *RedisBlocklist) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
