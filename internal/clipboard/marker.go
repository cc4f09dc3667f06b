package clipboard

import "sync"

// ChangeMarker records the last clipboard generation the engine has seen or
// produced. The monitor advances it after every handled tick; the paste
// dispatcher advances it after writing so its own write is never
// re-captured as new history.
type ChangeMarker struct {
	mu   sync.Mutex
	last int64
	set  bool
}

// NewChangeMarker returns an unset marker; the first monitor tick seeds it.
func NewChangeMarker() *ChangeMarker {
	return &ChangeMarker{}
}

// Seen reports whether count matches the last recorded generation.
// An unset marker matches nothing.
func (m *ChangeMarker) Seen(count int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set && m.last == count
}

// Record stores count as the latest handled generation.
func (m *ChangeMarker) Record(count int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = count
	m.set = true
}
