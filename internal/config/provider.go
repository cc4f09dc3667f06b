package config

import (
	"sync"

	"github.com/clipvault/clipvault/internal/types"
)

// Provider hands out read-only settings snapshots to the engine. The store
// calls Snapshot on every eviction pass, so a Replace is picked up without
// restarting the monitor.
type Provider struct {
	mu  sync.RWMutex
	cfg *Config
}

// NewProvider wraps a loaded Config.
func NewProvider(cfg *Config) *Provider {
	return &Provider{cfg: cfg}
}

// Snapshot returns the current settings.
func (p *Provider) Snapshot() types.Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.Settings()
}

// PollingIntervalMS returns the monitor cadence in milliseconds.
func (p *Provider) PollingIntervalMS() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.PollingIntervalMS
}

// Replace swaps in a new configuration.
func (p *Provider) Replace(cfg *Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
}
