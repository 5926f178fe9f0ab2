package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"NewsPulse/internal/config"
	"NewsPulse/internal/infrastructure/cache"
	"NewsPulse/internal/infrastructure/provider"
	"NewsPulse/internal/infrastructure/scheduler"
	"NewsPulse/internal/infrastructure/storage"
	"NewsPulse/internal/logging"
	"NewsPulse/internal/ports"
	"NewsPulse/internal/usecase"
)

// Application wires configuration to use cases and owns the run lifecycle.
type Application struct {
	cfg    config.Config
	logger *slog.Logger

	db        *sql.DB
	cache     *cache.RedisCache
	runner    *usecase.Runner
	search    *usecase.SearchEngine
	scheduler ports.Scheduler
}

// New builds a fully wired application instance. It connects to Postgres
// eagerly so misconfiguration fails at startup, not mid-run. The cache is
// best-effort: an unreachable Redis degrades search to storage reads and
// never blocks startup.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect storage: %w", err)
	}
	store := storage.NewPostgresStore(db)

	redisCache, resultCache := buildCache(ctx, cfg.Redis.URL, baseLogger.With("component", "cache"))

	sources := buildSources(cfg.Providers, baseLogger)
	if len(sources) == 0 {
		baseLogger.Warn("no provider keys configured, runs will be empty")
	}

	gateway := usecase.NewGateway(store, baseLogger.With("component", "gateway"))
	ingestor := usecase.NewIngestor(sources, gateway, usecase.IngestorOptions{
		FetchWindow:  cfg.Providers.FetchWindow(),
		PageSize:     cfg.Providers.PageSize,
		FetchTimeout: cfg.Providers.RequestTimeout(),
	}, baseLogger.With("component", "ingestor"))

	runner := usecase.NewRunner(ingestor, usecase.RunnerOptions{
		MaxAttempts: cfg.Scheduler.MaxAttempts,
		BaseBackoff: cfg.Scheduler.BaseBackoff(),
	}, baseLogger.With("component", "runner"))

	search := usecase.NewSearchEngine(store, resultCache, usecase.SearchOptions{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
		CacheTTL:        cfg.Redis.CacheTTL(),
	}, baseLogger.With("component", "search"))

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		db:        db,
		cache:     redisCache,
		runner:    runner,
		search:    search,
		scheduler: scheduler.NewIntervalScheduler(cfg.Scheduler.Interval()),
	}, nil
}

// buildCache connects to Redis, degrading to no cache when the backend is
// unreachable. The untyped nil keeps the search engine's nil guard honest.
func buildCache(ctx context.Context, redisURL string, logger *slog.Logger) (*cache.RedisCache, ports.ResultCache) {
	redisCache, err := cache.NewRedisCache(ctx, redisURL, logger)
	if err != nil {
		logger.Warn("cache unavailable, search will read storage directly", "error", err)
		return nil, nil
	}
	return redisCache, redisCache
}

func buildSources(cfg config.ProviderConfig, baseLogger *slog.Logger) []ports.NewsSource {
	client := &http.Client{Timeout: cfg.RequestTimeout()}

	var sources []ports.NewsSource
	if cfg.NewsAPIKey != "" {
		sources = append(sources, provider.NewNewsAPISource(cfg.NewsAPIKey, client, baseLogger.With("component", "provider.newsapi")))
	}
	if cfg.GuardianAPIKey != "" {
		sources = append(sources, provider.NewGuardianSource(cfg.GuardianAPIKey, client, baseLogger.With("component", "provider.guardian")))
	}
	if cfg.NYTimesAPIKey != "" {
		sources = append(sources, provider.NewNYTimesSource(cfg.NYTimesAPIKey, client, baseLogger.With("component", "provider.nytimes")))
	}
	return sources
}

// Search exposes the read-side engine to embedding callers.
func (a *Application) Search() *usecase.SearchEngine {
	return a.search
}

// Run schedules periodic ingestion and blocks until the context is canceled.
func (a *Application) Run(ctx context.Context) error {
	err := a.scheduler.Start(ctx, func(t time.Time) {
		summary, err := a.runner.RunOnce(ctx)
		if err != nil {
			a.logger.Error("scheduled run failed", "error", err)
			return
		}
		a.logger.Info("scheduled run finished",
			"started_at", summary.StartedAt,
			"providers", len(summary.Results),
			"note", summary.Note,
		)
	})
	if err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	return a.shutdown()
}

func (a *Application) shutdown() error {
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.scheduler.Stop(stopCtx); err != nil {
		a.logger.Warn("scheduler stop failed", "error", err)
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close failed", "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
