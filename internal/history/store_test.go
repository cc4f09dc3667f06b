package history

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/types"
)

type stubSettings struct {
	mu sync.Mutex
	s  types.Settings
}

func (s *stubSettings) Snapshot() types.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s
}

func (s *stubSettings) set(settings types.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s = settings
}

func newTestStore(settings types.Settings) (*Store, *stubSettings) {
	src := &stubSettings{s: settings}
	return NewStore(src, zap.NewNop()), src
}

func textItem(text string) *types.ClipboardItem {
	return types.NewItem(types.TypeText, types.ClipboardItem{Text: text})
}

func agedTextItem(text string, age time.Duration) *types.ClipboardItem {
	it := textItem(text)
	it.CreatedAt = time.Now().Add(-age)
	return it
}

func TestInsertDuplicateConsecutivePoll(t *testing.T) {
	store, _ := newTestStore(types.Settings{Enabled: true})

	first := store.Insert(textItem("hello"))
	require.NotNil(t, first)

	// Same content on the very next poll collapses.
	assert.Nil(t, store.Insert(textItem("hello")))
	assert.Equal(t, 1, store.Len())

	// Same content with a different item in between is intentional.
	require.NotNil(t, store.Insert(textItem("other")))
	require.NotNil(t, store.Insert(textItem("hello")))
	assert.Equal(t, 3, store.Len())
}

func TestInsertPrependsNewestFirst(t *testing.T) {
	store, _ := newTestStore(types.Settings{})

	store.Insert(textItem("a"))
	store.Insert(textItem("b"))
	store.Insert(textItem("c"))

	items := store.AllItems()
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].Text)
	assert.Equal(t, "b", items[1].Text)
	assert.Equal(t, "a", items[2].Text)
}

func TestCountLimitNeverExceeded(t *testing.T) {
	store, _ := newTestStore(types.Settings{MaxItems: 5})

	for i := 0; i < 20; i++ {
		store.Insert(textItem(fmt.Sprintf("item-%d", i)))
	}

	assert.Equal(t, 5, store.Len())

	items := store.AllItems()
	assert.Equal(t, "item-19", items[0].Text)
	assert.Equal(t, "item-15", items[4].Text)
}

func TestCountLimitIgnoresPinnedItems(t *testing.T) {
	store, _ := newTestStore(types.Settings{MaxItems: 2})

	pinned := store.Insert(textItem("keep me"))
	require.NotNil(t, pinned)
	_, found := store.TogglePin(pinned.ID)
	require.True(t, found)

	for i := 0; i < 10; i++ {
		store.Insert(textItem(fmt.Sprintf("item-%d", i)))
	}

	// 2 unpinned + the pinned one.
	assert.Equal(t, 3, store.Len())
	assert.NotNil(t, store.Get(pinned.ID))
}

func TestPinnedSurvivesAllEvictionPressure(t *testing.T) {
	store, settings := newTestStore(types.Settings{})

	pinned := store.Insert(agedTextItem(strings.Repeat("x", 1000), 30*24*time.Hour))
	require.NotNil(t, pinned)
	store.TogglePin(pinned.ID)

	settings.set(types.Settings{MaxItems: 1, RetentionDays: 7, MaxCapacityBytes: 100})

	for i := 0; i < 5; i++ {
		store.Insert(textItem(fmt.Sprintf("pressure-%d", i)))
	}

	assert.NotNil(t, store.Get(pinned.ID), "pinned item must never be evicted")
}

func TestCapacityEvictionDropsOldestFirst(t *testing.T) {
	store, _ := newTestStore(types.Settings{MaxCapacityBytes: 100})

	a := store.Insert(textItem(strings.Repeat("a", 40)))
	b := store.Insert(textItem(strings.Repeat("b", 40)))
	c := store.Insert(textItem(strings.Repeat("c", 40)))
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.NotNil(t, c)

	assert.Nil(t, store.Get(a.ID), "oldest item should be evicted")
	assert.NotNil(t, store.Get(b.ID))
	assert.NotNil(t, store.Get(c.ID))
	assert.LessOrEqual(t, store.TotalBytes(), int64(100))
}

func TestCapacityNeverEvictsPinned(t *testing.T) {
	store, _ := newTestStore(types.Settings{MaxCapacityBytes: 50})

	big := store.Insert(textItem(strings.Repeat("p", 200)))
	require.NotNil(t, big)
	store.TogglePin(big.ID)

	small := store.Insert(textItem("small"))
	require.NotNil(t, small)

	// The unpinned item goes; the pinned one stays even though the total
	// remains above the capacity limit. Accepted design limit.
	assert.Nil(t, store.Get(small.ID))
	assert.NotNil(t, store.Get(big.ID))
	assert.Greater(t, store.TotalBytes(), int64(50))
}

func TestRetentionDropsExpiredUnpinned(t *testing.T) {
	store, _ := newTestStore(types.Settings{RetentionDays: 7})

	old := store.Insert(agedTextItem("eight days old", 8*24*time.Hour))
	require.NotNil(t, old)

	pinnedOld := store.Insert(agedTextItem("thirty days old but pinned", 30*24*time.Hour))
	require.NotNil(t, pinnedOld)
	store.TogglePin(pinnedOld.ID)

	fresh := store.Insert(textItem("fresh"))
	require.NotNil(t, fresh)

	assert.Nil(t, store.Get(old.ID))
	assert.NotNil(t, store.Get(pinnedOld.ID))
	assert.NotNil(t, store.Get(fresh.ID))
}

func TestClearKeepsPinned(t *testing.T) {
	store, _ := newTestStore(types.Settings{})

	pinned := store.Insert(textItem("pinned"))
	store.TogglePin(pinned.ID)
	store.Insert(textItem("a"))
	store.Insert(textItem("b"))

	removed := store.Clear()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Len())
	assert.NotNil(t, store.Get(pinned.ID))
}

func TestRemoveDeletesPinnedExplicitly(t *testing.T) {
	store, _ := newTestStore(types.Settings{})

	pinned := store.Insert(textItem("pinned"))
	store.TogglePin(pinned.ID)

	removed := store.Remove(pinned.ID)
	assert.Equal(t, 1, removed)
	assert.Nil(t, store.Get(pinned.ID))
	assert.Equal(t, int64(0), store.TotalBytes())
}

func TestTogglePinRoundTrip(t *testing.T) {
	store, _ := newTestStore(types.Settings{})
	it := store.Insert(textItem("toggle"))

	pinned, found := store.TogglePin(it.ID)
	require.True(t, found)
	assert.True(t, pinned)

	pinned, found = store.TogglePin(it.ID)
	require.True(t, found)
	assert.False(t, pinned)

	_, found = store.TogglePin("missing-id")
	assert.False(t, found)
}

func TestTotalBytesTracksPayloads(t *testing.T) {
	store, _ := newTestStore(types.Settings{})

	store.Insert(textItem(strings.Repeat("a", 10)))
	it := store.Insert(textItem(strings.Repeat("b", 25)))
	assert.Equal(t, int64(35), store.TotalBytes())

	store.Remove(it.ID)
	assert.Equal(t, int64(10), store.TotalBytes())
}

func TestSubscribeSignalsOnMutation(t *testing.T) {
	store, _ := newTestStore(types.Settings{})
	ch := store.Subscribe()

	store.Insert(textItem("hello"))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected change notification after insert")
	}
}

func TestSeedRestoresRecencyOrder(t *testing.T) {
	store, _ := newTestStore(types.Settings{})

	older := agedTextItem("older", time.Hour)
	newer := agedTextItem("newer", time.Minute)
	store.Seed([]*types.ClipboardItem{older, newer})

	items := store.AllItems()
	require.Len(t, items, 2)
	assert.Equal(t, "newer", items[0].Text)
	assert.Equal(t, int64(len("older")+len("newer")), store.TotalBytes())
}

func TestSettingsReReadOnEveryEvictionPass(t *testing.T) {
	store, settings := newTestStore(types.Settings{MaxItems: 10})

	for i := 0; i < 10; i++ {
		store.Insert(textItem(fmt.Sprintf("item-%d", i)))
	}
	require.Equal(t, 10, store.Len())

	// Tighten the limit; the next insert must pick it up without a restart.
	settings.set(types.Settings{MaxItems: 3})
	store.Insert(textItem("trigger"))

	assert.Equal(t, 3, store.Len())
}
