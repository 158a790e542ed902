package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/drinkshop/internal/config"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

// Module provides idempotency and revocation stores, Redis backed when REDIS_ADDR is set.
var Module = fx.Options(
	fx.Provide(newStores),
	fx.Provide(
		func(s *Stores) repository.IdempotencyStore { return s.Idempotency },
		func(s *Stores) repository.RevocationStore { return s.Revocations },
	),
	fx.Invoke(registerLifecycle),
)

// Stores groups the key-value stores sharing one Redis connection.
type Stores struct {
	Idempotency repository.IdempotencyStore
	Revocations repository.RevocationStore

	client *redis.Client
}

type storesParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStores(p storesParams) (*Stores, error) {
	if p.Config.RedisAddr == "" {
		p.Logger.Info("redis address not set, using in-memory stores")
		return &Stores{
			Idempotency: NewMemoryIdempotencyStore(p.Config.IdempotencyTTL),
			Revocations: NewMemoryRevocationStore(),
		}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     p.Config.RedisAddr,
		Password: p.Config.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(p.Ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Stores{
		Idempotency: NewRedisIdempotencyStore(rdb, p.Config.IdempotencyTTL),
		Revocations: NewRedisRevocationStore(rdb),
		client:      rdb,
	}, nil
}

// Close releases the Redis connection if one is open.
func (s *Stores) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func registerLifecycle(lc fx.Lifecycle, stores *Stores) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return stores.Close()
		},
	})
}
