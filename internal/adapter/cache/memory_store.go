package cache

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

// sweepEvery bounds how often writes scan the map for expired entries.
const sweepEvery = time.Minute

type entry struct {
	value   string
	expires time.Time
}

// expiringMap is a mutex guarded map whose entries disappear after their deadline.
type expiringMap struct {
	mu        sync.Mutex
	items     map[string]entry
	now       func() time.Time
	lastSweep time.Time
}

func newExpiringMap() *expiringMap {
	return &expiringMap{items: make(map[string]entry), now: time.Now}
}

func (m *expiringMap) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		return "", false
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.items, key)
		return "", false
	}
	return e.value, true
}

func (m *expiringMap) set(key, value string, expires time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.items[key] = entry{value: value, expires: expires}
}

func (m *expiringMap) setNX(key, value string, expires time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	if e, ok := m.items[key]; ok && (e.expires.IsZero() || m.now().Before(e.expires)) {
		return false
	}
	m.items[key] = entry{value: value, expires: expires}
	return true
}

// sweepLocked drops expired entries that were never read again. Callers hold mu.
func (m *expiringMap) sweepLocked() {
	now := m.now()
	if now.Sub(m.lastSweep) < sweepEvery {
		return
	}
	m.lastSweep = now
	for key, e := range m.items {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.items, key)
		}
	}
}

func (m *expiringMap) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *expiringMap) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

// MemoryIdempotencyStore is the single-process fallback used without Redis.
type MemoryIdempotencyStore struct {
	items *expiringMap
	ttl   time.Duration
}

func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{items: newExpiringMap(), ttl: ttl}
}

func (s *MemoryIdempotencyStore) TryLock(_ context.Context, scope, key string) (bool, error) {
	return s.items.setNX(lockKey(scope, key), "1", s.deadline()), nil
}

func (s *MemoryIdempotencyStore) Unlock(_ context.Context, scope, key string) error {
	s.items.delete(lockKey(scope, key))
	return nil
}

func (s *MemoryIdempotencyStore) Remember(_ context.Context, scope, key, value string) error {
	s.items.set(resultKey(scope, key), value, s.deadline())
	return nil
}

func (s *MemoryIdempotencyStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := s.items.get(resultKey(scope, key))
	return v, ok, nil
}

func (s *MemoryIdempotencyStore) deadline() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.items.now().Add(s.ttl)
}

// MemoryRevocationStore is the single-process fallback used without Redis.
type MemoryRevocationStore struct {
	items *expiringMap
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{items: newExpiringMap()}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if !s.items.now().Before(until) {
		return nil
	}
	s.items.set(revokedKey(tokenID), "1", until)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.items.get(revokedKey(tokenID))
	return ok, nil
}

var (
	_ repository.IdempotencyStore = (*MemoryIdempotencyStore)(nil)
	_ repository.RevocationStore  = (*MemoryRevocationStore)(nil)
)
