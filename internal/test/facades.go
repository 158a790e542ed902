package test

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/polkiloo/drinkshop/internal/domain/model"
)

// RefreshFacadeStub implements the worker facade contract.
type RefreshFacadeStub struct {
	Owners    []string
	RefreshFn func(context.Context, string) error
	EventFn   func(context.Context, model.OrderEvent) error

	mu        sync.Mutex
	refreshed map[string]int
	events    []model.OrderEvent
}

// OpenOwners returns the configured owners.
func (s *RefreshFacadeStub) OpenOwners() []string {
	return slices.Clone(s.Owners)
}

// RefreshOrders counts refreshes per owner.
func (s *RefreshFacadeStub) RefreshOrders(ctx context.Context, owner string) error {
	s.mu.Lock()
	if s.refreshed == nil {
		s.refreshed = make(map[string]int)
	}
	s.refreshed[owner]++
	s.mu.Unlock()
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx, owner)
	}
	return nil
}

// HandleOrderEvent records routed events.
func (s *RefreshFacadeStub) HandleOrderEvent(ctx context.Context, event model.OrderEvent) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	if s.EventFn != nil {
		return s.EventFn(ctx, event)
	}
	return nil
}

// Refreshed returns refresh counts per owner.
func (s *RefreshFacadeStub) Refreshed() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.refreshed)
}

// HandledEvents returns the events routed so far.
func (s *RefreshFacadeStub) HandledEvents() []model.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}
