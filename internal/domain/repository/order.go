package repository

import (
	"context"

	"github.com/polkiloo/drinkshop/internal/domain/model"
)

// OrderRepository describes operations with persisted drink orders.
type OrderRepository interface {
	ListByOwner(ctx context.Context, owner string) ([]model.Order, error)
	Create(ctx context.Context, fields model.OrderFields) (*model.Order, error)
	Update(ctx context.Context, id string, fields model.OrderFields) (*model.Order, error)
	Delete(ctx context.Context, id string) error
}
