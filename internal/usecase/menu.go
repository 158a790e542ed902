package usecase

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

var knownCategories = []model.Category{
	model.CategorySeasonal,
	model.CategoryClassic,
	model.CategoryMilkTea,
	model.CategoryFruitTea,
}

// MenuUseCase serves the drink catalog from a cache filled on first use.
type MenuUseCase struct {
	catalog repository.CatalogRepository
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	drinks    []model.Drink
	fetchedAt time.Time
	loaded    bool
}

// NewMenuUseCase constructs MenuUseCase. A zero ttl keeps the first fetch forever.
func NewMenuUseCase(catalog repository.CatalogRepository, ttl time.Duration, logger *slog.Logger) *MenuUseCase {
	return &MenuUseCase{catalog: catalog, ttl: ttl, logger: logger, now: time.Now}
}

func (u *MenuUseCase) load(ctx context.Context) ([]model.Drink, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.loaded && (u.ttl <= 0 || u.now().Sub(u.fetchedAt) < u.ttl) {
		return u.drinks, nil
	}

	drinks, err := u.catalog.ListDrinks(ctx)
	if err != nil {
		u.logger.Error("fetch drink catalog failed", slog.String("error", err.Error()))
		return nil, err
	}
	u.drinks = drinks
	u.fetchedAt = u.now()
	u.loaded = true
	return u.drinks, nil
}

// Drinks returns drinks of the category, the seasonal list when category is empty.
func (u *MenuUseCase) Drinks(ctx context.Context, category model.Category) ([]model.Drink, error) {
	if category == "" {
		category = model.DefaultCategory
	}
	drinks, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	return model.FilterByCategory(drinks, category), nil
}

func (u *MenuUseCase) Drink(ctx context.Context, id string) (model.Drink, error) {
	drinks, err := u.load(ctx)
	if err != nil {
		return model.Drink{}, err
	}
	for _, d := range drinks {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Drink{}, domainErrors.ErrNotFound
}

// DrinkByName resolves the drink an order was placed for.
func (u *MenuUseCase) DrinkByName(ctx context.Context, name string) (model.Drink, error) {
	drinks, err := u.load(ctx)
	if err != nil {
		return model.Drink{}, err
	}
	for _, d := range drinks {
		if d.Name == name {
			return d, nil
		}
	}
	return model.Drink{}, domainErrors.ErrNotFound
}

// Categories lists known categories present in the catalog, then any others in catalog order.
func (u *MenuUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	drinks, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	present := make(map[model.Category]bool)
	var extra []model.Category
	for _, d := range drinks {
		if present[d.Category] {
			continue
		}
		present[d.Category] = true
		if !slices.Contains(knownCategories, d.Category) {
			extra = append(extra, d.Category)
		}
	}

	result := make([]model.Category, 0, len(present))
	for _, c := range knownCategories {
		if present[c] {
			result = append(result, c)
		}
	}
	return append(result, extra...), nil
}
