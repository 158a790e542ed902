package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/drinkshop/internal/adapter/airtable"
	"github.com/polkiloo/drinkshop/internal/adapter/broker"
	"github.com/polkiloo/drinkshop/internal/adapter/cache"
	"github.com/polkiloo/drinkshop/internal/app"
	"github.com/polkiloo/drinkshop/internal/config"
	"github.com/polkiloo/drinkshop/internal/events"
	"github.com/polkiloo/drinkshop/internal/logger"
	"github.com/polkiloo/drinkshop/internal/pkg/auth"
	"github.com/polkiloo/drinkshop/internal/server/http/handlers"
	"github.com/polkiloo/drinkshop/internal/server/http/router"
	"github.com/polkiloo/drinkshop/internal/storage/postgres"
	"github.com/polkiloo/drinkshop/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		events.Module,
		postgres.Module,
		airtable.Module,
		cache.Module,
		broker.Module,
		usecase.Module,
		fx.Provide(
			func(b *events.Bus) usecase.EventPublisher { return b },
			func(s *postgres.Storage) router.HealthChecker { return s },
			func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
