package types

// ClickMode selects how the presentation layer pastes a selected entry.
// The engine only carries the value; it never interprets it.
type ClickMode string

const (
	ClickModeSingle ClickMode = "single"
	ClickModeDouble ClickMode = "double"
)

// Settings is a read-only snapshot of the user-facing limits the engine
// consults. Zero values mean "unlimited" / "forever". The store re-reads a
// fresh snapshot on every eviction pass rather than caching one.
type Settings struct {
	Enabled          bool
	ClickMode        ClickMode
	MaxItems         int      // unpinned item count limit, 0 = unlimited
	RetentionDays    int      // drop unpinned items older than this, 0 = forever
	MaxCapacityBytes int64    // total payload budget (pinned + unpinned), 0 = unlimited
	IgnoredApps      []string // source app bundle ids never captured
}

// AppIgnored reports whether a source bundle id is on the ignore list.
func (s Settings) AppIgnored(bundleID string) bool {
	if bundleID == "" {
		return false
	}
	for _, id := range s.IgnoredApps {
		if id == bundleID {
			return true
		}
	}
	return false
}
