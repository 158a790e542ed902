package airtable

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/drinkshop/internal/config"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

// Module exposes the Airtable-backed repositories to fx graph.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(
		func(c *HTTPClient) repository.CatalogRepository { return c.Catalog() },
		func(c *HTTPClient) repository.OrderRepository { return c.Orders() },
	),
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*HTTPClient, error) {
	return NewHTTPClient(Options{
		BaseURL:    p.Config.AirtableURL,
		BaseID:     p.Config.AirtableBaseID,
		APIKey:     p.Config.AirtableAPIKey,
		DrinkTable: p.Config.DrinkTable,
		OrderTable: p.Config.OrderTable,
		Timeout:    p.Config.AirtableTimeout,
	}, p.Logger)
}
