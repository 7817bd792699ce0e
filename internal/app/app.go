package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/khrees2412/internly/internal/cache"
	"github.com/khrees2412/internly/internal/config"
	"github.com/khrees2412/internly/internal/database"
	"github.com/khrees2412/internly/internal/logger"
	"github.com/khrees2412/internly/internal/scraper"
)

// App is the dependency container for the CLI application
type App struct {
	DB      *sql.DB
	Config  *config.Config
	Cache   cache.Store
	Fetcher scraper.Fetcher

	now func() time.Time
}

// NewApp loads configuration, sets up logging and opens the database and cache
func NewApp(ctx context.Context) (*App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.AppConfig

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := database.Initialize(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store, err := cache.Open(ctx, cfg.CacheBackend, cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	logger.Debug().
		Str("db", cfg.DBPath).
		Str("cache", cfg.CacheBackend).
		Int("workers", cfg.Workers).
		Msg("app initialized")

	return New(cfg, database.DB, store, scraper.NewBrowserFetcher(cfg.FetchTimeout)), nil
}

// New assembles an App from already opened dependencies
func New(cfg *config.Config, db *sql.DB, store cache.Store, fetcher scraper.Fetcher) *App {
	return &App{
		DB:      db,
		Config:  cfg,
		Cache:   store,
		Fetcher: fetcher,
		now:     time.Now,
	}
}

// Close closes all resources
func (a *App) Close() error {
	var cacheErr error
	if a.Cache != nil {
		cacheErr = a.Cache.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return err
		}
	}
	return cacheErr
}

func (a *App) workers() int {
	if a.Config == nil || a.Config.Workers < 1 {
		return 1
	}
	return a.Config.Workers
}

func (a *App) cacheTTL() time.Duration {
	if a.Config == nil {
		return 0
	}
	return a.Config.CacheTTL
}
