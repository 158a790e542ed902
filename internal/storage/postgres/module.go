package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/drinkshop/internal/config"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
	"github.com/polkiloo/drinkshop/internal/events"
)

// Module wires PostgreSQL storage and the order journal.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.JournalRepository { return s.Journal() },
	),
	fx.Invoke(registerLifecycle, registerJournalSink),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}

func registerJournalSink(bus *events.Bus, journal repository.JournalRepository) {
	bus.AddSink("journal", events.SinkFunc(journal.Append))
}
