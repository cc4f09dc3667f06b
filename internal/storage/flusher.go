package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/history"
)

// Flusher persists the in-memory store in the background. Store mutations
// are visible to readers immediately; the flusher lags behind by at most
// one flush interval, which is the accepted loss window on crash.
type Flusher struct {
	store    *history.Store
	index    *BoltIndex
	interval time.Duration
	logger   *zap.Logger
}

// NewFlusher wires a background flusher.
func NewFlusher(store *history.Store, index *BoltIndex, interval time.Duration, logger *zap.Logger) *Flusher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Flusher{store: store, index: index, interval: interval, logger: logger}
}

// Run flushes on a fixed interval whenever the store has changed since the
// last successful flush, and once more on shutdown. A failed flush is
// logged and retried on the next cycle; it never blocks store operations.
func (f *Flusher) Run(ctx context.Context) {
	changes := f.store.Subscribe()
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	dirty := false
	for {
		select {
		case <-ctx.Done():
			if dirty {
				f.flush()
			}
			return
		case <-changes:
			dirty = true
		case <-ticker.C:
			if !dirty {
				continue
			}
			if f.flush() {
				dirty = false
			}
		}
	}
}

func (f *Flusher) flush() bool {
	items := f.store.AllItems()
	if err := f.index.SaveSnapshot(items); err != nil {
		f.logger.Warn("history flush failed, will retry", zap.Error(err))
		return false
	}
	f.logger.Debug("history flushed", zap.Int("items", len(items)))
	return true
}
