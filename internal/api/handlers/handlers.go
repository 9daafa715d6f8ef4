package handlers

import (
	"prism-lab/internal/domain/services"
	"prism-lab/internal/infrastructure/cache"
	"prism-lab/internal/infrastructure/database"
	"prism-lab/internal/infrastructure/database/repository"
	"prism-lab/internal/urlscan"
	"prism-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health  *HealthHandler
	Message *MessageHandler
	URL     *URLHandler
	Stats   *StatsHandler
}

// Dependencies holds dependencies for handlers. Cache, DB and Reports may
// be nil: the API keeps analyzing without them, it just stops caching,
// persisting and counting.
type Dependencies struct {
	Analyzer *services.MessageAnalyzer
	Scanner  *urlscan.Scanner
	Table    *services.CategoryTable
	Cache    *cache.RedisCache
	DB       *database.PostgresDB
	Reports  *repository.ReportRepository
	Logger   *logger.Logger
	Version  string
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Cache, deps.DB, deps.Version, deps.Logger),
		Message: NewMessageHandler(deps.Analyzer, deps.Table, deps.Cache, deps.Reports, deps.Logger),
		URL:     NewURLHandler(deps.Scanner, deps.Cache, deps.Reports, deps.Logger),
		Stats:   NewStatsHandler(deps.Cache, deps.Reports, deps.Logger),
	}
}
