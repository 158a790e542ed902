package repository

import (
	"context"

	"github.com/polkiloo/drinkshop/internal/domain/model"
)

// JournalRepository keeps the history of order events.
type JournalRepository interface {
	Append(ctx context.Context, event model.OrderEvent) error
	ListByOwner(ctx context.Context, owner string, limit int) ([]model.OrderEvent, error)
}
