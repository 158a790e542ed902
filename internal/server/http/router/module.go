package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/drinkshop/internal/config"
	"github.com/polkiloo/drinkshop/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade handlers.StorefrontFacade
	Health HealthChecker `optional:"true"`
	Config *config.Config
	Logger *slog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Health, p.Config, p.Logger)
}
