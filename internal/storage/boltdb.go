// Package storage persists the clipboard history. Item records go into a
// bbolt index; large binary payloads are stored as separate
// content-addressed blobs referenced by digest, keeping the index small
// and fast to load.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/types"
)

const itemsBucket = "items"

// ErrFlushFailed marks a background persistence cycle that did not
// complete. Logged and retried on the next cycle, never fatal.
var ErrFlushFailed = errors.New("history flush failed")

// persistedItem is the on-disk record: every ClipboardItem field except
// the image bytes, which are replaced by a blob digest.
type persistedItem struct {
	ID                string            `json:"id"`
	Type              types.ContentType `json:"type"`
	CreatedAt         time.Time         `json:"created_at"`
	Pinned            bool              `json:"pinned"`
	Text              string            `json:"text,omitempty"`
	ImageBlob         string            `json:"image_blob,omitempty"`
	FilePaths         []string          `json:"file_paths,omitempty"`
	ColorHex          string            `json:"color_hex,omitempty"`
	SourceAppBundleID string            `json:"source_app_bundle_id,omitempty"`
	SourceAppName     string            `json:"source_app_name,omitempty"`
	DataSize          int64             `json:"data_size"`
}

// BoltIndex is the bbolt-backed item index.
type BoltIndex struct {
	db     *bbolt.DB
	blobs  *BlobStore
	logger *zap.Logger
}

// NewBoltIndex opens (or creates) the index database.
func NewBoltIndex(dbPath string, blobs *BlobStore, logger *zap.Logger) (*BoltIndex, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(itemsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltIndex{db: db, blobs: blobs, logger: logger}, nil
}

// Close closes the underlying database.
func (s *BoltIndex) Close() error {
	return s.db.Close()
}

// SaveSnapshot writes the full current history, replacing the previous
// index contents, and garbage-collects blobs no longer referenced.
func (s *BoltIndex) SaveSnapshot(items []*types.ClipboardItem) error {
	live := make(map[string]bool)

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(itemsBucket))

		keep := make(map[string]bool, len(items))
		for _, it := range items {
			rec := persistedItem{
				ID:                it.ID,
				Type:              it.Type,
				CreatedAt:         it.CreatedAt,
				Pinned:            it.Pinned,
				Text:              it.Text,
				FilePaths:         it.FilePaths,
				ColorHex:          it.ColorHex,
				SourceAppBundleID: it.SourceAppBundleID,
				SourceAppName:     it.SourceAppName,
				DataSize:          it.DataSize,
			}

			if it.Type == types.TypeImage {
				digest, err := s.blobs.Put(it.ImageData)
				if err != nil {
					return fmt.Errorf("store image blob for %s: %w", it.ID, err)
				}
				rec.ImageBlob = digest
				live[digest] = true
			}

			encoded, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal item %s: %w", it.ID, err)
			}
			if err := b.Put([]byte(it.ID), encoded); err != nil {
				return err
			}
			keep[it.ID] = true
		}

		// Drop index records for items no longer in the history.
		var stale [][]byte
		if err := b.ForEach(func(k, _ []byte) error {
			if !keep[string(k)] {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFlushFailed, err)
	}

	s.gcBlobs(live)
	return nil
}

// gcBlobs deletes blobs not referenced by any persisted item. Best effort.
func (s *BoltIndex) gcBlobs(live map[string]bool) {
	digests, err := s.blobs.List()
	if err != nil {
		s.logger.Warn("blob gc skipped", zap.Error(err))
		return
	}
	for _, d := range digests {
		if live[d] {
			continue
		}
		if err := s.blobs.Delete(d); err != nil {
			s.logger.Warn("failed to delete orphan blob", zap.String("digest", d), zap.Error(err))
		}
	}
}

// Load reads every persisted item, resolving image blobs. Records whose
// blob is missing are skipped with a warning rather than failing the load.
func (s *BoltIndex) Load() ([]*types.ClipboardItem, error) {
	var items []*types.ClipboardItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(itemsBucket))
		return b.ForEach(func(k, v []byte) error {
			var rec persistedItem
			if err := json.Unmarshal(v, &rec); err != nil {
				s.logger.Warn("skipping unreadable history record", zap.ByteString("key", k), zap.Error(err))
				return nil
			}

			it := &types.ClipboardItem{
				ID:                rec.ID,
				Type:              rec.Type,
				CreatedAt:         rec.CreatedAt,
				Pinned:            rec.Pinned,
				Text:              rec.Text,
				FilePaths:         rec.FilePaths,
				ColorHex:          rec.ColorHex,
				SourceAppBundleID: rec.SourceAppBundleID,
				SourceAppName:     rec.SourceAppName,
				DataSize:          rec.DataSize,
			}

			if rec.Type == types.TypeImage {
				data, err := s.blobs.Get(rec.ImageBlob)
				if err != nil {
					s.logger.Warn("skipping item with missing image blob",
						zap.String("id", rec.ID),
						zap.String("digest", rec.ImageBlob),
						zap.Error(err))
					return nil
				}
				it.ImageData = data
			}

			items = append(items, it)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return items, nil
}
