package repository

import (
	"context"
	"time"
)

// IdempotencyStore guards repeated submits carrying the same key.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Unlock(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// RevocationStore remembers signed-out identity tokens until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
