package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/drinkshop/internal/config"
	"github.com/polkiloo/drinkshop/internal/server/http/handlers"
	"github.com/polkiloo/drinkshop/internal/server/http/middleware"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// Setup configures gin router with handlers and middleware. health may be nil.
func Setup(facade handlers.StorefrontFacade, health HealthChecker, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(cors.New(corsConfig(cfg)))
	engine.Use(middleware.RequestBody(middleware.DefaultBodyLimit))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/healthz", healthHandler(health))

	menuHandler := handlers.NewMenuHandler(facade)
	sessionHandler := handlers.NewSessionHandler(facade)
	customizationHandler := handlers.NewCustomizationHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")
	menu := api.Group("/menu")
	menu.GET("", menuHandler.List)
	menu.GET("/categories", menuHandler.Categories)
	menu.GET("/options", menuHandler.Options)
	menu.GET("/drinks/:id", menuHandler.Drink)

	user := api.Group("/user")
	user.Use(middleware.AuthRequired(facade))
	user.GET("/session", sessionHandler.Current)
	user.POST("/session/signout", sessionHandler.SignOut)

	user.POST("/customizations", customizationHandler.Open)
	user.GET("/customizations/:id", customizationHandler.Get)
	user.PUT("/customizations/:id/options", customizationHandler.SelectOption)
	user.POST("/customizations/:id/addons", customizationHandler.ToggleAddOn)
	user.POST("/customizations/:id/submit", customizationHandler.Submit)
	user.DELETE("/customizations/:id", customizationHandler.Cancel)

	user.GET("/orders", orderHandler.List)
	user.GET("/orders/history", orderHandler.History)
	user.PATCH("/orders/:id", orderHandler.ChangeQuantity)
	user.DELETE("/orders/:id", orderHandler.Delete)

	return engine
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", handlers.IdempotencyKeyHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return c
}

func healthHandler(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health == nil {
			c.Status(http.StatusOK)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := health.HealthCheck(ctx); err != nil {
			c.Error(err)
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	}
}
