package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"prism-lab/internal/api/handlers"
	apimiddleware "prism-lab/internal/api/middleware"
	"prism-lab/internal/config"
	"prism-lab/internal/infrastructure/cache"
	"prism-lab/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Health check
	router.Get("/health", r.handlers.Health.Check)
	router.Get("/ready", r.handlers.Health.Ready)

	// API v1 routes
	router.Route("/api/v1", func(api chi.Router) {
		// Message analysis endpoints
		api.Route("/message", func(msg chi.Router) {
			msg.Post("/analyze", r.handlers.Message.Analyze)
			msg.Post("/analyze/batch", r.handlers.Message.AnalyzeBatch)
			msg.Get("/categories", r.handlers.Message.Categories)
		})

		// URL threat analysis endpoints
		api.Route("/url", func(url chi.Router) {
			url.Post("/scan", r.handlers.URL.Scan)
			url.Post("/scan/batch", r.handlers.URL.ScanBatch)
		})

		// Public stats
		api.Get("/stats", r.handlers.Stats.Get)
	})

	return router
}
