// clipvaultd runs the clipboard history engine headless: monitor loop plus
// background persistence, no CLI surface.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/clipboard"
	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/history"
	"github.com/clipvault/clipvault/internal/storage"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	paths, err := cfg.Paths()
	if err != nil {
		logger.Fatal("failed to resolve data paths", zap.Error(err))
	}

	blobs, err := storage.NewBlobStore(paths.BlobDir)
	if err != nil {
		logger.Fatal("failed to open blob store", zap.Error(err))
	}

	index, err := storage.NewBoltIndex(paths.DBFile, blobs, logger)
	if err != nil {
		logger.Fatal("failed to open history index", zap.Error(err))
	}
	defer index.Close()

	provider := config.NewProvider(cfg)
	store := history.NewStore(provider, logger)

	items, err := index.Load()
	if err != nil {
		logger.Fatal("failed to load history", zap.Error(err))
	}
	store.Seed(items)
	logger.Info("history loaded",
		zap.Int("items", store.Len()),
		zap.Int64("total_bytes", store.TotalBytes()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flusher := storage.NewFlusher(store, index,
		time.Duration(cfg.FlushIntervalMS)*time.Millisecond, logger)
	flusherDone := make(chan struct{})
	go func() {
		defer close(flusherDone)
		flusher.Run(ctx)
	}()

	marker := clipboard.NewChangeMarker()
	monitor := clipboard.NewMonitor(provider, clipboard.New(logger), store, marker, logger)
	monitor.Start(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	monitor.Stop()
	cancel()
	<-flusherDone
}

func buildLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err == nil {
		zcfg.Level = level
	}
	return zcfg.Build()
}
