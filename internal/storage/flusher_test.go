package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/history"
	"github.com/clipvault/clipvault/internal/types"
)

type fixedSettings struct{ s types.Settings }

func (f fixedSettings) Snapshot() types.Settings { return f.s }

func TestFlusherPersistsStoreChanges(t *testing.T) {
	dir := t.TempDir()
	blobs, err := NewBlobStore(filepath.Join(dir, "blobs"))
	require.NoError(t, err)
	index, err := NewBoltIndex(filepath.Join(dir, "history.db"), blobs, zap.NewNop())
	require.NoError(t, err)
	defer index.Close()

	store := history.NewStore(fixedSettings{}, zap.NewNop())
	flusher := NewFlusher(store, index, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		flusher.Run(ctx)
	}()

	store.Insert(types.NewItem(types.TypeText, types.ClipboardItem{Text: "persist me"}))

	require.Eventually(t, func() bool {
		items, err := index.Load()
		return err == nil && len(items) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestFlusherFinalFlushOnShutdown(t *testing.T) {
	dir := t.TempDir()
	blobs, err := NewBlobStore(filepath.Join(dir, "blobs"))
	require.NoError(t, err)
	index, err := NewBoltIndex(filepath.Join(dir, "history.db"), blobs, zap.NewNop())
	require.NoError(t, err)
	defer index.Close()

	store := history.NewStore(fixedSettings{}, zap.NewNop())
	// Long interval: the periodic flush never fires during the test.
	flusher := NewFlusher(store, index, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		flusher.Run(ctx)
	}()

	store.Insert(types.NewItem(types.TypeText, types.ClipboardItem{Text: "shutdown flush"}))
	time.Sleep(20 * time.Millisecond) // let the change signal land

	cancel()
	<-done

	items, err := index.Load()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
