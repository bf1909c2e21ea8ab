// Package api provides the HTTP API for the Inkwell server.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/inkwell-cms/inkwell/internal/api/handlers"
	"github.com/inkwell-cms/inkwell/internal/api/middleware"
	"github.com/inkwell-cms/inkwell/internal/db"
	"github.com/inkwell-cms/inkwell/internal/scheduler"
)

// Config holds configuration for the API router.
type Config struct {
	// AllowedOrigins for CORS. Empty means all origins allowed in dev mode.
	AllowedOrigins []string
	// RateLimitRequests is the number of requests allowed per period.
	RateLimitRequests int64
	// RateLimitPeriod is the duration string for rate limiting (e.g. "1m", "1h").
	RateLimitPeriod string
}

// DefaultConfig returns a Config with sensible defaults for development.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins:    []string{},
		RateLimitRequests: 100,
		RateLimitPeriod:   "1m",
	}
}

// Router wraps a Gin engine with configured middleware and routes.
type Router struct {
	Engine *gin.Engine
	logger zerolog.Logger
}

// NewRouter creates a new Router with the given dependencies.
func NewRouter(
	cfg Config,
	database *db.DB,
	manager *scheduler.Manager,
	engine *scheduler.Engine,
	index *scheduler.Index,
	logger zerolog.Logger,
) (*Router, error) {
	r := &Router{
		Engine: gin.New(),
		logger: logger.With().Str("component", "router").Logger(),
	}

	// Global middleware
	r.Engine.Use(gin.Recovery())
	r.Engine.Use(middleware.RequestLogger(logger))
	r.Engine.Use(middleware.CORS(cfg.AllowedOrigins))

	// Rate limiting
	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitPeriod)
	if err != nil {
		return nil, err
	}
	r.Engine.Use(rateLimiter)

	// Prometheus-style metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(database, engine, index, logger)
	metricsHandler.RegisterPublicRoutes(r.Engine)

	// API v1 routes
	apiV1 := r.Engine.Group("/api/v1")

	healthHandler := handlers.NewHealthHandler(database, logger)
	healthHandler.RegisterRoutes(apiV1)

	contentHandler := handlers.NewContentHandler(database, manager, logger)
	contentHandler.RegisterRoutes(apiV1)

	schedulesHandler := handlers.NewSchedulesHandler(manager, logger)
	schedulesHandler.RegisterRoutes(apiV1)

	r.logger.Info().Msg("API router initialized")
	return r, nil
}
