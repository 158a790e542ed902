package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

// RedisIdempotencyStore keeps submit keys in Redis with a fixed lifetime.
type RedisIdempotencyStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb redis.Cmdable, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *RedisIdempotencyStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	return s.rdb.SetNX(ctx, lockKey(scope, key), "1", s.ttl).Result()
}

func (s *RedisIdempotencyStore) Unlock(ctx context.Context, scope, key string) error {
	return s.rdb.Del(ctx, lockKey(scope, key)).Err()
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, scope, key, value string) error {
	return s.rdb.Set(ctx, resultKey(scope, key), value, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, resultKey(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// RedisRevocationStore marks identity tokens as signed out until they expire.
type RedisRevocationStore struct {
	rdb redis.Cmdable
}

func NewRedisRevocationStore(rdb redis.Cmdable) *RedisRevocationStore {
	return &RedisRevocationStore{rdb: rdb}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func lockKey(scope, key string) string   { return "idemp:" + scope + ":" + key }
func resultKey(scope, key string) string { return "idemp:map:" + scope + ":" + key }
func revokedKey(tokenID string) string   { return "revoked:" + tokenID }

var (
	_ repository.IdempotencyStore = (*RedisIdempotencyStore)(nil)
	_ repository.RevocationStore  = (*RedisRevocationStore)(nil)
)
