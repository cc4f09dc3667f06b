package clipboard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/history"
	"github.com/clipvault/clipvault/internal/types"
)

// SettingsProvider hands the monitor a fresh settings snapshot per tick.
type SettingsProvider interface {
	Snapshot() types.Settings
	PollingIntervalMS() int64
}

// Monitor polls the system clipboard on a fixed cadence and feeds changes
// through the classifier into the history store.
type Monitor struct {
	settings  SettingsProvider
	clipboard Clipboard
	store     *history.Store
	marker    *ChangeMarker
	logger    *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor wires a monitor. The marker must be shared with the paste
// dispatcher so self-writes are suppressed.
func NewMonitor(settings SettingsProvider, clip Clipboard, store *history.Store, marker *ChangeMarker, logger *zap.Logger) *Monitor {
	return &Monitor{
		settings:  settings,
		clipboard: clip,
		store:     store,
		marker:    marker,
		logger:    logger,
	}
}

// Start launches the polling loop. It returns immediately; use Stop to
// shut the loop down.
func (m *Monitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})

	m.logger.Info("starting clipboard monitor",
		zap.Int64("polling_interval_ms", m.settings.PollingIntervalMS()))

	go m.run(ctx)
}

// Stop terminates the polling loop and waits for the in-flight tick.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.logger.Info("clipboard monitor stopped")
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	interval := time.Duration(m.settings.PollingIntervalMS()) * time.Millisecond
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(interval)
		}
	}
}

// tick runs one poll cycle. Any failure is swallowed and logged; the loop
// continues on the next tick. A read that outlives the polling interval is
// abandoned rather than awaited.
func (m *Monitor) tick(interval time.Duration) {
	count, err := m.clipboard.ChangeCount()
	if err != nil {
		m.logger.Debug("clipboard change count unavailable", zap.Error(err))
		return
	}

	if m.marker.Seen(count) {
		return
	}

	settings := m.settings.Snapshot()
	if !settings.Enabled {
		m.marker.Record(count)
		return
	}

	snap, err := m.readWithTimeout(interval)
	if err != nil {
		m.logger.Warn("clipboard read failed", zap.Error(err))
		return
	}

	// The generation we handled is the one the snapshot was read under,
	// which may already be newer than the count observed above.
	m.marker.Record(snap.ChangeCount)

	if settings.AppIgnored(snap.SourceApp.BundleID) {
		m.logger.Debug("ignoring clipboard change from excluded app",
			zap.String("bundle_id", snap.SourceApp.BundleID))
		return
	}

	item, err := Classify(snap)
	if err != nil {
		if !errors.Is(err, ErrNoContent) {
			m.logger.Warn("failed to classify clipboard content", zap.Error(err))
		}
		return
	}

	stored := m.store.Insert(item)
	if stored == nil {
		m.logger.Debug("duplicate clipboard poll suppressed", zap.String("type", string(item.Type)))
		return
	}

	m.logger.Info("captured clipboard item",
		zap.String("id", stored.ID),
		zap.String("type", string(stored.Type)),
		zap.Int64("size", stored.DataSize),
		zap.String("source_app", stored.SourceAppBundleID))
}

// readWithTimeout abandons a stalled clipboard read after the polling
// interval so no tick blocks longer than the cadence.
func (m *Monitor) readWithTimeout(timeout time.Duration) (*Snapshot, error) {
	type result struct {
		snap *Snapshot
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		snap, err := m.clipboard.Read()
		ch <- result{snap, err}
	}()

	select {
	case r := <-ch:
		return r.snap, r.err
	case <-time.After(timeout):
		return nil, ErrReadFailure
	}
}
