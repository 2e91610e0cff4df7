// Package app wires configuration, storage, and the holiday and police
// services into one MCP tool set.
package app

import (
	"context"
	"fmt"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/ukdata-mcp/internal/cache"
	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/config"
	"github.com/bobmcallan/ukdata-mcp/internal/fetch"
	"github.com/bobmcallan/ukdata-mcp/internal/handlers"
	"github.com/bobmcallan/ukdata-mcp/internal/holidays"
	"github.com/bobmcallan/ukdata-mcp/internal/mcp"
	"github.com/bobmcallan/ukdata-mcp/internal/metrics"
	"github.com/bobmcallan/ukdata-mcp/internal/police"
	"github.com/bobmcallan/ukdata-mcp/internal/storage"
	"github.com/bobmcallan/ukdata-mcp/internal/throttle"
)

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Metrics *metrics.Metrics

	Cache    *cache.Cache
	Throttle *throttle.Throttle
	Fetcher  *fetch.Fetcher
	Holidays *holidays.Service
	Police   *police.Service

	Tools     *mcp.Tools
	MCPServer *mcpserver.MCPServer

	// HTTP handlers
	HealthHandler   *handlers.HealthHandler
	VersionHandler  *handlers.VersionHandler
	UpstreamHandler *handlers.UpstreamHandler
	MCPHandler      *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	if issues := cfg.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("invalid configuration: %v", issues)
	}

	a := &App{
		Config: cfg,
		Logger: logger,
	}
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
	}

	store, err := storage.NewStore(logger, cfg.Cache)
	if err != nil {
		return nil, err
	}
	a.Cache = cache.New(store, logger, cache.WithMetrics(a.Metrics))
	a.Throttle = throttle.New(a.Metrics)

	a.Fetcher = fetch.New(fetch.Options{
		Client:    fetch.NewHTTPClient(cfg.Upstream.GetTimeout()),
		Cache:     a.Cache,
		Throttle:  a.Throttle,
		Rate:      cfg.Throttle.Rate,
		UserAgent: cfg.Upstream.UserAgent,
		Timeout:   cfg.Upstream.GetTimeout(),
		Coalesce:  cfg.Cache.Coalesce,
		Logger:    logger,
		Metrics:   a.Metrics,
	})

	a.Holidays = holidays.NewService(a.Fetcher, cfg.Upstream.HolidaysURL, logger)
	a.Police = police.NewService(a.Fetcher, cfg.Upstream.PoliceURL, logger)

	a.Tools = mcp.NewTools(a.Holidays, a.Police, logger)
	a.Tools.SetMetrics(a.Metrics)
	a.MCPServer = mcp.NewServer(cfg.Server.Name, a.Tools)

	a.initHandlers()

	if maxAge := cfg.Cache.GetPruneAfter(); maxAge > 0 {
		if _, err := a.PruneCache(context.Background(), maxAge); err != nil {
			logger.Warn().Err(err).Msg("startup cache prune failed")
		}
	}

	logger.Info().
		Str("cache_backend", cfg.Cache.Backend).
		Float64("throttle_rate", cfg.Throttle.Rate).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger, a.Config)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.UpstreamHandler = handlers.NewUpstreamHandler(a.Logger, a.Holidays, a.Police)
	a.MCPHandler = mcp.NewHandler(a.MCPServer, a.Tools, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// PruneCache deletes cache entries at least maxAge old.
func (a *App) PruneCache(ctx context.Context, maxAge time.Duration) (int, error) {
	removed, err := a.Cache.Prune(ctx, maxAge)
	if err != nil {
		return removed, fmt.Errorf("failed to prune cache: %w", err)
	}
	a.Logger.Info().
		Int("removed", removed).
		Str("max_age", maxAge.String()).
		Msg("cache pruned")
	return removed, nil
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Cache == nil {
		return nil
	}
	return a.Cache.Close()
}
