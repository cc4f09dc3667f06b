// Package history holds the in-memory clipboard history: an ordered,
// capacity- and age-bounded collection of items with pin-aware eviction
// and filtered read views.
package history

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/types"
)

// SettingsSource yields the current limits. The store re-reads a snapshot
// on every eviction pass so changed limits apply without a restart.
type SettingsSource interface {
	Snapshot() types.Settings
}

// Store is the single serialization point for the clipboard history.
// The monitor, the presentation layer and the persistence flusher all go
// through the same mutex, so no reader ever observes a torn eviction.
type Store struct {
	mu         sync.Mutex
	items      []*types.ClipboardItem // newest first
	totalBytes int64
	settings   SettingsSource
	logger     *zap.Logger
	subs       []chan struct{}
}

// NewStore creates an empty history store.
func NewStore(settings SettingsSource, logger *zap.Logger) *Store {
	return &Store{settings: settings, logger: logger}
}

// Subscribe returns a channel that receives a signal whenever the visible
// contents change (insert, evict, remove, clear, pin toggle). The send is
// non-blocking; a slow consumer coalesces signals.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Insert adds a candidate as the newest entry and runs eviction. It
// returns nil when the candidate's fingerprint matches the current newest
// unpinned item, collapsing accidental duplicate polls. Copying the same
// content twice with something else in between still creates two entries.
func (s *Store) Insert(candidate *types.ClipboardItem) *types.ClipboardItem {
	if candidate == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if newest := s.newestUnpinnedLocked(); newest != nil {
		if types.FingerprintOf(newest).Equal(types.FingerprintOf(candidate)) {
			return nil
		}
	}

	s.items = append([]*types.ClipboardItem{candidate}, s.items...)
	s.totalBytes += candidate.DataSize

	s.evictLocked(s.settings.Snapshot())
	s.notifyLocked()

	return candidate
}

// Remove deletes items by id. Explicit removal is the only way a pinned
// item leaves the store.
func (s *Store) Remove(ids ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	removed := 0
	kept := s.items[:0]
	for _, it := range s.items {
		if drop[it.ID] {
			s.totalBytes -= it.DataSize
			removed++
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept

	if removed > 0 {
		s.notifyLocked()
	}
	return removed
}

// Clear removes all unpinned items. Pinned items are untouched.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	kept := s.items[:0]
	for _, it := range s.items {
		if it.Pinned {
			kept = append(kept, it)
			continue
		}
		s.totalBytes -= it.DataSize
		removed++
	}
	s.items = kept

	if removed > 0 {
		s.logger.Info("history cleared", zap.Int("removed", removed), zap.Int("pinned_kept", len(s.items)))
		s.notifyLocked()
	}
	return removed
}

// TogglePin flips the pinned flag of the item with the given id. It
// returns the new pinned state and whether the item was found.
func (s *Store) TogglePin(id string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID == id {
			it.Pinned = !it.Pinned
			s.notifyLocked()
			return it.Pinned, true
		}
	}
	return false, false
}

// Get returns a copy of the item with the given id, or nil.
func (s *Store) Get(id string) *types.ClipboardItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID == id {
			return it.Clone()
		}
	}
	return nil
}

// AllItems returns copies of every item, newest first.
func (s *Store) AllItems() []*types.ClipboardItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of stored items, pinned included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// TotalBytes returns the aggregate payload size of all items.
func (s *Store) TotalBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalBytes
}

// Seed replaces the store contents, used when loading persisted history at
// startup. Items are re-sorted newest first to restore the recency order.
func (s *Store) Seed(items []*types.ClipboardItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	s.items = items
	s.totalBytes = 0
	for _, it := range items {
		s.totalBytes += it.DataSize
	}
}

func (s *Store) snapshotLocked() []*types.ClipboardItem {
	out := make([]*types.ClipboardItem, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

func (s *Store) newestUnpinnedLocked() *types.ClipboardItem {
	for _, it := range s.items {
		if !it.Pinned {
			return it
		}
	}
	return nil
}

// evictLocked applies the count, age and capacity limits, in that order,
// to unpinned items only. Oldest items (by CreatedAt) go first.
//
// Capacity eviction stops once no unpinned items remain even if the total
// stays above the limit: user-pinned content always wins. This is an
// accepted design limit, not a bug.
func (s *Store) evictLocked(settings types.Settings) {
	if settings.MaxItems > 0 {
		unpinned := 0
		for _, it := range s.items {
			if !it.Pinned {
				unpinned++
			}
		}
		for unpinned > settings.MaxItems {
			if !s.dropOldestUnpinnedLocked("count limit") {
				break
			}
			unpinned--
		}
	}

	if settings.RetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -settings.RetentionDays)
		kept := s.items[:0]
		for _, it := range s.items {
			if !it.Pinned && it.CreatedAt.Before(cutoff) {
				s.totalBytes -= it.DataSize
				s.logger.Debug("evicting expired item",
					zap.String("id", it.ID),
					zap.Time("created_at", it.CreatedAt))
				continue
			}
			kept = append(kept, it)
		}
		s.items = kept
	}

	if settings.MaxCapacityBytes > 0 {
		for s.totalBytes > settings.MaxCapacityBytes {
			if !s.dropOldestUnpinnedLocked("capacity limit") {
				break
			}
		}
	}
}

// dropOldestUnpinnedLocked removes the oldest unpinned item, reporting
// whether anything was removed.
func (s *Store) dropOldestUnpinnedLocked(reason string) bool {
	idx := -1
	for i := len(s.items) - 1; i >= 0; i-- {
		if !s.items[i].Pinned {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	it := s.items[idx]
	s.totalBytes -= it.DataSize
	s.items = append(s.items[:idx], s.items[idx+1:]...)

	s.logger.Debug("evicted item",
		zap.String("id", it.ID),
		zap.String("reason", reason),
		zap.Int64("size", it.DataSize))
	return true
}
