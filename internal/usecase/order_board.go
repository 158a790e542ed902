package usecase

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

// EventPublisher broadcasts order changes.
type EventPublisher interface {
	Publish(ctx context.Context, event model.OrderEvent)
}

// BoardView is a consistent snapshot of one user's order list.
type BoardView struct {
	Orders  []model.Order
	Summary model.OrderSummary
	Badge   string
	Loaded  bool
}

// OrderBoard caches the order list of one owner and keeps aggregates in step with it.
type OrderBoard struct {
	owner     string
	orders    repository.OrderRepository
	publisher EventPublisher
	logger    *slog.Logger

	mu      sync.Mutex
	rows    []model.Order
	summary model.OrderSummary
	loaded  bool
	closed  bool
	// started counts refreshes issued, applied is the newest state installed.
	started uint64
	applied uint64
}

func NewOrderBoard(owner string, orders repository.OrderRepository, publisher EventPublisher, logger *slog.Logger) *OrderBoard {
	return &OrderBoard{owner: owner, orders: orders, publisher: publisher, logger: logger}
}

func (b *OrderBoard) Owner() string { return b.owner }

// Refresh replaces the cached list with the backend's. A result older than the
// state already installed is dropped.
func (b *OrderBoard) Refresh(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return domainErrors.ErrSessionClosed
	}
	b.started++
	seq := b.started
	b.mu.Unlock()

	rows, err := b.orders.ListByOwner(ctx, b.owner)
	if err != nil {
		b.logger.Error("refresh orders failed", slog.String("owner", b.owner), slog.String("error", err.Error()))
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || seq <= b.applied {
		b.logger.Debug("stale order refresh dropped", slog.String("owner", b.owner))
		return nil
	}
	b.rows = rows
	b.applied = seq
	b.loaded = true
	b.recompute()
	return nil
}

// View returns the cached state, refreshing first when nothing was loaded yet.
func (b *OrderBoard) View(ctx context.Context) (BoardView, error) {
	b.mu.Lock()
	loaded := b.loaded
	b.mu.Unlock()

	if !loaded {
		if err := b.Refresh(ctx); err != nil {
			return BoardView{}, err
		}
	}
	return b.Snapshot(), nil
}

func (b *OrderBoard) Snapshot() BoardView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BoardView{
		Orders:  slices.Clone(b.rows),
		Summary: b.summary,
		Badge:   b.summary.Badge(),
		Loaded:  b.loaded,
	}
}

// Find returns the cached order with the id.
func (b *OrderBoard) Find(ctx context.Context, id string) (model.Order, error) {
	view, err := b.View(ctx)
	if err != nil {
		return model.Order{}, err
	}
	for _, o := range view.Orders {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Order{}, domainErrors.ErrNotFound
}

// OnOrdersChanged reacts to an order event of this owner.
func (b *OrderBoard) OnOrdersChanged(ctx context.Context, event model.OrderEvent) error {
	if event.Kind == model.OrderDeleted {
		b.forget(event.OrderID)
		return nil
	}
	return b.Refresh(ctx)
}

// DeleteRow deletes the order displayed at the row index.
func (b *OrderBoard) DeleteRow(ctx context.Context, row int) error {
	b.mu.Lock()
	if row < 0 || row >= len(b.rows) {
		b.mu.Unlock()
		return domainErrors.ErrNotFound
	}
	id := b.rows[row].ID
	b.mu.Unlock()

	return b.Delete(ctx, id)
}

// Delete removes the order on the backend, then from the cache. The write outlives the caller's cancellation.
func (b *OrderBoard) Delete(ctx context.Context, id string) error {
	ctx = context.WithoutCancel(ctx)
	if _, err := b.Find(ctx, id); err != nil {
		return err
	}

	if err := b.orders.Delete(ctx, id); err != nil {
		b.logger.Error("delete order failed",
			slog.String("owner", b.owner),
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	b.forget(id)
	b.publisher.Publish(ctx, model.NewOrderEvent(model.OrderDeleted, id, b.owner))
	return nil
}

// ChangeQuantity patches the cup count and price of a cached order.
func (b *OrderBoard) ChangeQuantity(ctx context.Context, id string, numberOfCups, price int) (*model.Order, error) {
	ctx = context.WithoutCancel(ctx)
	if numberOfCups < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	if price < 0 {
		return nil, domainErrors.ErrInvalidPrice
	}

	current, err := b.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := b.orders.Update(ctx, id, current.UpdateFields(numberOfCups, price))
	if err != nil {
		b.logger.Error("update order quantity failed",
			slog.String("owner", b.owner),
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	merged := current
	merged.NumberOfCups = updated.NumberOfCups
	merged.Price = updated.Price
	b.replace(merged)

	b.publisher.Publish(ctx, model.NewOrderEvent(model.OrderUpdated, id, b.owner))
	return &merged, nil
}

// Close discards the board. Completions arriving later change nothing.
func (b *OrderBoard) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.rows = nil
	b.summary = model.OrderSummary{}
	b.loaded = false
}

func (b *OrderBoard) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *OrderBoard) forget(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	i := slices.IndexFunc(b.rows, func(o model.Order) bool { return o.ID == id })
	if i < 0 {
		return
	}
	b.rows = slices.Delete(b.rows, i, i+1)
	b.applied = b.started
	b.recompute()
}

func (b *OrderBoard) replace(order model.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	i := slices.IndexFunc(b.rows, func(o model.Order) bool { return o.ID == order.ID })
	if i < 0 {
		return
	}
	b.rows[i] = order
	b.applied = b.started
	b.recompute()
}

func (b *OrderBoard) recompute() {
	b.summary = model.Summarize(b.rows)
}
