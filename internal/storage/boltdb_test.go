package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/types"
)

func newTestIndex(t *testing.T) (*BoltIndex, *BlobStore) {
	t.Helper()
	dir := t.TempDir()

	blobs, err := NewBlobStore(filepath.Join(dir, "blobs"))
	require.NoError(t, err)

	index, err := NewBoltIndex(filepath.Join(dir, "history.db"), blobs, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	return index, blobs
}

func TestSaveLoadRoundTrip(t *testing.T) {
	index, _ := newTestIndex(t)

	text := types.NewItem(types.TypeText, types.ClipboardItem{
		Text:              "remember me",
		SourceAppBundleID: "com.example.editor",
		SourceAppName:     "Editor",
	})
	text.Pinned = true
	color := types.NewItem(types.TypeColor, types.ClipboardItem{ColorHex: "#aabbcc"})
	files := types.NewItem(types.TypeFile, types.ClipboardItem{FilePaths: []string{"/a.txt", "/b.txt"}})

	require.NoError(t, index.SaveSnapshot([]*types.ClipboardItem{text, color, files}))

	loaded, err := index.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	byID := make(map[string]*types.ClipboardItem)
	for _, it := range loaded {
		byID[it.ID] = it
	}

	got := byID[text.ID]
	require.NotNil(t, got)
	assert.Equal(t, "remember me", got.Text)
	assert.True(t, got.Pinned)
	assert.Equal(t, "com.example.editor", got.SourceAppBundleID)
	assert.WithinDuration(t, text.CreatedAt, got.CreatedAt, time.Second)

	assert.Equal(t, "#aabbcc", byID[color.ID].ColorHex)
	assert.Equal(t, []string{"/a.txt", "/b.txt"}, byID[files.ID].FilePaths)
}

func TestImagePayloadStoredAsBlob(t *testing.T) {
	index, blobs := newTestIndex(t)

	payload := []byte{0x89, 'P', 'N', 'G', 1, 2, 3, 4}
	img := types.NewItem(types.TypeImage, types.ClipboardItem{ImageData: payload})

	require.NoError(t, index.SaveSnapshot([]*types.ClipboardItem{img}))

	// The payload landed in the blob store, not the index.
	digests, err := blobs.List()
	require.NoError(t, err)
	require.Len(t, digests, 1)

	loaded, err := index.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, payload, loaded[0].ImageData)
}

func TestSaveSnapshotPrunesRemovedItems(t *testing.T) {
	index, _ := newTestIndex(t)

	a := types.NewItem(types.TypeText, types.ClipboardItem{Text: "a"})
	b := types.NewItem(types.TypeText, types.ClipboardItem{Text: "b"})
	require.NoError(t, index.SaveSnapshot([]*types.ClipboardItem{a, b}))

	// Second snapshot without a: the stale record must disappear.
	require.NoError(t, index.SaveSnapshot([]*types.ClipboardItem{b}))

	loaded, err := index.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, b.ID, loaded[0].ID)
}

func TestOrphanBlobsCollected(t *testing.T) {
	index, blobs := newTestIndex(t)

	img := types.NewItem(types.TypeImage, types.ClipboardItem{ImageData: []byte{1, 2, 3}})
	require.NoError(t, index.SaveSnapshot([]*types.ClipboardItem{img}))

	digests, err := blobs.List()
	require.NoError(t, err)
	require.Len(t, digests, 1)

	// Dropping the item orphans its blob; the next flush collects it.
	require.NoError(t, index.SaveSnapshot(nil))

	digests, err = blobs.List()
	require.NoError(t, err)
	assert.Empty(t, digests)
}

func TestLoadSkipsItemWithMissingBlob(t *testing.T) {
	index, blobs := newTestIndex(t)

	img := types.NewItem(types.TypeImage, types.ClipboardItem{ImageData: []byte{9, 9, 9}})
	text := types.NewItem(types.TypeText, types.ClipboardItem{Text: "survives"})
	require.NoError(t, index.SaveSnapshot([]*types.ClipboardItem{img, text}))

	digests, err := blobs.List()
	require.NoError(t, err)
	require.Len(t, digests, 1)
	require.NoError(t, blobs.Delete(digests[0]))

	loaded, err := index.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1, "record with missing blob is skipped, not fatal")
	assert.Equal(t, "survives", loaded[0].Text)
}
