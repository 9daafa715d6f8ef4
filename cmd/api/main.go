package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"prism-lab/internal/api"
	"prism-lab/internal/api/handlers"
	"prism-lab/internal/config"
	"prism-lab/internal/domain/services"
	"prism-lab/internal/domain/services/classifier"
	"prism-lab/internal/domain/services/translate"
	"prism-lab/internal/infrastructure/cache"
	"prism-lab/internal/infrastructure/database"
	"prism-lab/internal/infrastructure/database/repository"
	"prism-lab/internal/urlscan"
	"prism-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting PRISM Lab")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure
	db, redisCache := initInfrastructure(ctx, cfg, log)
	defer func() {
		if db != nil {
			db.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Initialize report store
	var reports *repository.ReportRepository
	if db != nil {
		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to apply database schema")
		}
		reports = repository.NewReportRepository(db.Pool())
		log.Info().Msg("report store initialized with database")
	} else {
		log.Warn().Msg("running without database - reports are not persisted")
	}

	// Initialize the classifier backend
	var model classifier.Classifier = classifier.NewRemoteService(cfg.Classifier, log)
	if cfg.Classifier.Serialize {
		model = classifier.NewSerialized(model)
		log.Info().Msg("classifier calls serialized")
	}

	// Initialize the URL scanner
	scannerOpts := []urlscan.ScannerOption{}
	if redisCache != nil {
		scannerOpts = append(scannerOpts, urlscan.WithCache(redisCache))
	}
	scanner := urlscan.NewScanner(cfg.URLScan, log, scannerOpts...)
	log.Info().Msg("URL scanner initialized")

	// Initialize the message analyzer
	table := services.DefaultCategoryTable()
	analyzerOpts := []services.AnalyzerOption{
		services.WithURLScanner(scanner),
		services.WithMaxConcurrent(cfg.URLScan.MaxConcurrent),
	}
	if cfg.Translator.Enabled {
		analyzerOpts = append(analyzerOpts, services.WithTranslator(translate.NewHTTPService(cfg.Translator, log)))
		log.Info().Str("base_url", cfg.Translator.BaseURL).Msg("translation enabled")
	}
	analyzer := services.NewMessageAnalyzer(model, table, log, analyzerOpts...)
	log.Info().Msg("message analyzer initialized")

	// Initialize handlers
	deps := handlers.Dependencies{
		Analyzer: analyzer,
		Scanner:  scanner,
		Table:    table,
		Cache:    redisCache,
		DB:       db,
		Reports:  reports,
		Logger:   log,
		Version:  cfg.App.Version,
	}
	h := handlers.NewHandlers(deps)

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// initInfrastructure connects to PostgreSQL and Redis. Both are optional:
// without them the service still analyzes, it just stops caching and
// persisting.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache) {
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
	}

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
	}

	return db, redisCache
}
