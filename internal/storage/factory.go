package storage

import (
	"fmt"

	"github.com/bobmcallan/ukdata-mcp/internal/common"
	"github.com/bobmcallan/ukdata-mcp/internal/config"
	"github.com/bobmcallan/ukdata-mcp/internal/interfaces"
	"github.com/bobmcallan/ukdata-mcp/internal/storage/badger"
	"github.com/bobmcallan/ukdata-mcp/internal/storage/file"
	"github.com/bobmcallan/ukdata-mcp/internal/storage/memory"
	"github.com/bobmcallan/ukdata-mcp/internal/storage/sqlite"
)

// NewStore creates the cache Store selected by cfg.Backend.
func NewStore(logger *common.Logger, cfg config.CacheConfig) (interfaces.Store, error) {
	var (
		store interfaces.Store
		err   error
	)

	switch cfg.Backend {
	case "", "file":
		store, err = file.New(cfg.Dir)
	case "memory":
		store = memory.New(cfg.MaxEntries)
	case "badger":
		store, err = badger.NewStore(logger, cfg.Dir)
	case "sqlite":
		store, err = sqlite.Open(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s cache store: %w", cfg.Backend, err)
	}

	logger.Debug().
		Str("backend", cfg.Backend).
		Str("dir", cfg.Dir).
		Msg("cache store initialized")

	return store, nil
}
