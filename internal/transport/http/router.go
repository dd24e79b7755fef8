package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fomcdots/internal/config"
	"fomcdots/internal/infrastructure"
	"fomcdots/internal/middleware"
	"fomcdots/internal/services"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Dotplot        *services.DotplotService
	Health         *services.HealthService
	Logger         *slog.Logger
	ServerConfig   config.ServerConfig
	Metrics        *infrastructure.PipelineMetrics
	MetricsHandler http.Handler
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.Compress(5))

	rateLimiter := middleware.NewRateLimiter(
		deps.ServerConfig.RateLimitRPS,
		deps.ServerConfig.RateLimitBurst,
		deps.Logger,
	)
	r.Use(rateLimiter.Handler)

	healthHandler := NewHealthHandler(deps.Health, deps.Logger)
	healthHandler.RegisterRoutes(r)

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		healthHandler.RegisterRoutes(r)

		dotplotHandler := NewDotplotHandler(deps.Dotplot, deps.Logger)
		dotplotHandler.RegisterRoutes(r)
	})

	return r
}
