package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/drinkshop/internal/config"
)

// Module provides the in-process order event bus.
var Module = fx.Options(
	fx.Provide(newBus),
	fx.Invoke(registerLifecycle),
)

type busParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newBus(p busParams) *Bus {
	return NewBus(p.Config.EventBuffer, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, bus *Bus) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			bus.Close()
			return nil
		},
	})
}
