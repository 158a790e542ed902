package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

// HistoryLimit caps the events returned by History.
const HistoryLimit = 50

// OrderUseCase keeps one order board per signed-in owner.
type OrderUseCase struct {
	orders    repository.OrderRepository
	journal   repository.JournalRepository
	publisher EventPublisher
	logger    *slog.Logger

	mu     sync.Mutex
	boards map[string]*OrderBoard
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, journal repository.JournalRepository, publisher EventPublisher, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		journal:   journal,
		publisher: publisher,
		logger:    logger,
		boards:    make(map[string]*OrderBoard),
	}
}

// Board returns the owner's board, creating it on first use.
func (u *OrderUseCase) Board(owner string) *OrderBoard {
	u.mu.Lock()
	defer u.mu.Unlock()
	if b, ok := u.boards[owner]; ok {
		return b
	}
	b := NewOrderBoard(owner, u.orders, u.publisher, u.logger)
	u.boards[owner] = b
	return b
}

// Lookup returns an existing board without creating one.
func (u *OrderUseCase) Lookup(owner string) (*OrderBoard, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	b, ok := u.boards[owner]
	return b, ok
}

// Boards lists the open boards.
func (u *OrderUseCase) Boards() []*OrderBoard {
	u.mu.Lock()
	defer u.mu.Unlock()
	result := make([]*OrderBoard, 0, len(u.boards))
	for _, b := range u.boards {
		result = append(result, b)
	}
	return result
}

// List returns the owner's orders with totals.
func (u *OrderUseCase) List(ctx context.Context, owner string) (BoardView, error) {
	return u.Board(owner).View(ctx)
}

func (u *OrderUseCase) Find(ctx context.Context, owner, id string) (model.Order, error) {
	return u.Board(owner).Find(ctx, id)
}

func (u *OrderUseCase) Delete(ctx context.Context, owner, id string) error {
	return u.Board(owner).Delete(ctx, id)
}

// ChangeQuantity updates the cup count. When price is nil the current unit price is kept.
func (u *OrderUseCase) ChangeQuantity(ctx context.Context, owner, id string, numberOfCups int, price *int) (*model.Order, error) {
	board := u.Board(owner)
	if price != nil {
		return board.ChangeQuantity(ctx, id, numberOfCups, *price)
	}

	current, err := board.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	unit := current.Price
	if current.NumberOfCups > 0 {
		unit = current.Price / current.NumberOfCups
	}
	return board.ChangeQuantity(ctx, id, numberOfCups, unit*numberOfCups)
}

// HandleEvent routes an order event to the owner's board if it is open.
func (u *OrderUseCase) HandleEvent(ctx context.Context, event model.OrderEvent) error {
	board, ok := u.Lookup(event.Owner)
	if !ok {
		return nil
	}
	return board.OnOrdersChanged(ctx, event)
}

// SignOut closes and forgets the owner's board.
func (u *OrderUseCase) SignOut(owner string) {
	u.mu.Lock()
	b, ok := u.boards[owner]
	delete(u.boards, owner)
	u.mu.Unlock()

	if ok {
		b.Close()
	}
}

// History lists the owner's most recent order events, newest first.
func (u *OrderUseCase) History(ctx context.Context, owner string) ([]model.OrderEvent, error) {
	return u.journal.ListByOwner(ctx, owner, HistoryLimit)
}
