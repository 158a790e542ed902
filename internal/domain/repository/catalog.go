package repository

import (
	"context"

	"github.com/polkiloo/drinkshop/internal/domain/model"
)

// CatalogRepository provides the drink menu.
type CatalogRepository interface {
	ListDrinks(ctx context.Context) ([]model.Drink, error)
}
