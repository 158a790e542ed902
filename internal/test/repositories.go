package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/drinkshop/internal/domain/model"
)

// CatalogRepositoryStub serves a fixed drink list.
type CatalogRepositoryStub struct {
	ListFn func(context.Context) ([]model.Drink, error)
	Drinks []model.Drink

	mu    sync.Mutex
	calls int
}

// ListDrinks returns configured drinks and counts invocations.
func (s *CatalogRepositoryStub) ListDrinks(ctx context.Context) ([]model.Drink, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Drinks, nil
}

// Calls reports how many times the catalog was fetched.
func (s *CatalogRepositoryStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// UpdateCall stores information about Update invocations.
type UpdateCall struct {
	ID     string
	Fields model.OrderFields
}

// OrderRepositoryStub allows tests to customize behaviour and inspect calls.
type OrderRepositoryStub struct {
	ListFn   func(context.Context, string) ([]model.Order, error)
	CreateFn func(context.Context, model.OrderFields) (*model.Order, error)
	UpdateFn func(context.Context, string, model.OrderFields) (*model.Order, error)
	DeleteFn func(context.Context, string) error

	Orders []model.Order

	mu      sync.Mutex
	Lists   []string
	Created []model.OrderFields
	Updated []UpdateCall
	Deleted []string
}

// ListByOwner returns orders from configured slice filtered by owner.
func (s *OrderRepositoryStub) ListByOwner(ctx context.Context, owner string) ([]model.Order, error) {
	s.mu.Lock()
	s.Lists = append(s.Lists, owner)
	s.mu.Unlock()
	if s.ListFn != nil {
		return s.ListFn(ctx, owner)
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.OrderName == owner {
			result = append(result, o)
		}
	}
	return result, nil
}

// Create records the payload and echoes it back as an order.
func (s *OrderRepositoryStub) Create(ctx context.Context, fields model.OrderFields) (*model.Order, error) {
	s.mu.Lock()
	s.Created = append(s.Created, fields)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, fields)
	}
	return &model.Order{
		ID:           "recCreated",
		DrinkName:    fields.DrinkName,
		Size:         fields.Size,
		Ice:          fields.Ice,
		Sugar:        fields.Sugar,
		AddOns:       fields.AddOns,
		Price:        fields.Price,
		NumberOfCups: fields.NumberOfCups,
		ImageURL:     fields.ImageURL,
		OrderName:    fields.OrderName,
	}, nil
}

// Update records the patch and echoes it back.
func (s *OrderRepositoryStub) Update(ctx context.Context, id string, fields model.OrderFields) (*model.Order, error) {
	s.mu.Lock()
	s.Updated = append(s.Updated, UpdateCall{ID: id, Fields: fields})
	s.mu.Unlock()
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, fields)
	}
	return &model.Order{
		ID:           id,
		Size:         fields.Size,
		Ice:          fields.Ice,
		Sugar:        fields.Sugar,
		AddOns:       fields.AddOns,
		Price:        fields.Price,
		NumberOfCups: fields.NumberOfCups,
	}, nil
}

// Delete records deleted ids.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.Deleted = append(s.Deleted, id)
	s.mu.Unlock()
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// CreatedCount returns the number of Create calls.
func (s *OrderRepositoryStub) CreatedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Created)
}

// JournalRepositoryStub keeps appended events in memory.
type JournalRepositoryStub struct {
	AppendFn func(context.Context, model.OrderEvent) error
	ListFn   func(context.Context, string, int) ([]model.OrderEvent, error)

	mu     sync.Mutex
	Events []model.OrderEvent
}

// Append stores the event.
func (s *JournalRepositoryStub) Append(ctx context.Context, event model.OrderEvent) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
	return nil
}

// ListByOwner returns the owner's events newest first.
func (s *JournalRepositoryStub) ListByOwner(ctx context.Context, owner string, limit int) ([]model.OrderEvent, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, owner, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.OrderEvent
	for i := len(s.Events) - 1; i >= 0 && len(result) < limit; i-- {
		if s.Events[i].Owner == owner {
			result = append(result, s.Events[i])
		}
	}
	return result, nil
}

// PublisherStub records published events.
type PublisherStub struct {
	mu      sync.Mutex
	Events  []model.OrderEvent
	CtxErrs []error
}

// Publish stores the event and the state of the context it came with.
func (p *PublisherStub) Publish(ctx context.Context, event model.OrderEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	p.CtxErrs = append(p.CtxErrs, ctx.Err())
}

// Kinds lists the kinds of published events in order.
func (p *PublisherStub) Kinds() []model.OrderEventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]model.OrderEventKind, 0, len(p.Events))
	for _, e := range p.Events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// IdempotencyStoreStub is an in-memory idempotency store with error injection.
type IdempotencyStoreStub struct {
	Err error

	mu     sync.Mutex
	locks  map[string]bool
	values map[string]string
}

func (s *IdempotencyStoreStub) init() {
	if s.locks == nil {
		s.locks = make(map[string]bool)
		s.values = make(map[string]string)
	}
}

// TryLock acquires the key once.
func (s *IdempotencyStoreStub) TryLock(_ context.Context, scope, key string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	if s.locks[scope+key] {
		return false, nil
	}
	s.locks[scope+key] = true
	return true, nil
}

// Unlock releases the key.
func (s *IdempotencyStoreStub) Unlock(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	delete(s.locks, scope+key)
	return nil
}

// Remember stores the result for the key.
func (s *IdempotencyStoreStub) Remember(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	s.values[scope+key] = value
	return nil
}

// Recall returns a stored result.
func (s *IdempotencyStoreStub) Recall(_ context.Context, scope, key string) (string, bool, error) {
	if s.Err != nil {
		return "", false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	v, ok := s.values[scope+key]
	return v, ok, nil
}

// RevocationStoreStub remembers revoked token ids.
type RevocationStoreStub struct {
	Err error

	mu      sync.Mutex
	Revoked map[string]time.Time
}

// Revoke records the token.
func (s *RevocationStoreStub) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Revoked == nil {
		s.Revoked = make(map[string]time.Time)
	}
	s.Revoked[tokenID] = until
	return nil
}

// IsRevoked reports whether the token was revoked.
func (s *RevocationStoreStub) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Revoked[tokenID]
	return ok, nil
}
