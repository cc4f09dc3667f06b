package cmd

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/clipboard"
	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/history"
	"github.com/clipvault/clipvault/internal/storage"
)

// engine bundles the wired-up components commands operate on.
type engine struct {
	cfg      *config.Config
	provider *config.Provider
	store    *history.Store
	index    *storage.BoltIndex
	marker   *clipboard.ChangeMarker
	clip     clipboard.Clipboard
	logger   *zap.Logger
}

// openEngine loads config, opens persistence and seeds the in-memory
// store from the persisted index.
func openEngine() (*engine, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	paths, err := cfg.Paths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data paths: %w", err)
	}

	blobs, err := storage.NewBlobStore(paths.BlobDir)
	if err != nil {
		return nil, err
	}

	index, err := storage.NewBoltIndex(paths.DBFile, blobs, logger)
	if err != nil {
		return nil, err
	}

	provider := config.NewProvider(cfg)
	store := history.NewStore(provider, logger)

	items, err := index.Load()
	if err != nil {
		index.Close()
		return nil, err
	}
	store.Seed(items)

	return &engine{
		cfg:      cfg,
		provider: provider,
		store:    store,
		index:    index,
		marker:   clipboard.NewChangeMarker(),
		clip:     clipboard.New(logger),
		logger:   logger,
	}, nil
}

// close flushes the store and releases the index.
func (e *engine) close() {
	if err := e.index.SaveSnapshot(e.store.AllItems()); err != nil {
		e.logger.Warn("final history flush failed", zap.Error(err))
	}
	if err := e.index.Close(); err != nil {
		e.logger.Warn("failed to close history index", zap.Error(err))
	}
}

// flushInterval returns the configured background flush cadence.
func (e *engine) flushInterval() time.Duration {
	return time.Duration(e.cfg.FlushIntervalMS) * time.Millisecond
}
