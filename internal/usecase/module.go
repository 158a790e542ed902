package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/drinkshop/internal/config"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newMenuUseCase,
	NewOrderUseCase,
	newCustomizationUseCase,
	NewSessionUseCase,
)

type menuParams struct {
	fx.In

	Catalog repository.CatalogRepository
	Config  *config.Config
	Logger  *slog.Logger
}

func newMenuUseCase(p menuParams) *MenuUseCase {
	return NewMenuUseCase(p.Catalog, p.Config.CatalogTTL, p.Logger)
}

type customizationParams struct {
	fx.In

	Menu        *MenuUseCase
	Boards      *OrderUseCase
	Orders      repository.OrderRepository
	Idempotency repository.IdempotencyStore
	Publisher   EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

func newCustomizationUseCase(p customizationParams) *CustomizationUseCase {
	return NewCustomizationUseCase(
		p.Menu,
		p.Boards,
		p.Orders,
		p.Idempotency,
		p.Publisher,
		PolicyFor(p.Config.EnforceRequiredOptions),
		p.Logger,
	)
}
