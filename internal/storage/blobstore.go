package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrBlobNotFound is returned when a referenced blob is missing on disk.
var ErrBlobNotFound = errors.New("blob not found")

// validDigest matches a lowercase hex-encoded SHA256 digest (64 characters).
var validDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

// BlobStore keeps large binary payloads (image bytes) out of the item
// index as content-addressed files. Blobs live in a two-level directory
// structure using the first two characters of the digest as a prefix.
type BlobStore struct {
	root string
}

// NewBlobStore creates a filesystem-backed blob store rooted at dir.
func NewBlobStore(dir string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &BlobStore{root: dir}, nil
}

// Put stores data and returns its digest. Idempotent: an existing blob is
// left untouched.
func (s *BlobStore) Put(data []byte) (string, error) {
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	path := s.blobPath(digest)
	if _, err := os.Stat(path); err == nil {
		return digest, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}

	// Write to a temp file and rename so readers never see a partial blob.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".blob-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename blob: %w", err)
	}

	return digest, nil
}

// Get reads a blob by digest. Returns ErrBlobNotFound if missing.
func (s *BlobStore) Get(digest string) ([]byte, error) {
	if !validDigest.MatchString(digest) {
		return nil, ErrBlobNotFound
	}
	data, err := os.ReadFile(s.blobPath(digest))
	if os.IsNotExist(err) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", digest, err)
	}
	return data, nil
}

// Delete removes a blob. Missing blobs are not an error.
func (s *BlobStore) Delete(digest string) error {
	if !validDigest.MatchString(digest) {
		return nil
	}
	err := os.Remove(s.blobPath(digest))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %s: %w", digest, err)
	}
	return nil
}

// List returns the digests of every stored blob.
func (s *BlobStore) List() ([]string, error) {
	var digests []string
	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := filepath.Base(path)
		if validDigest.MatchString(name) {
			digests = append(digests, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	return digests, nil
}

func (s *BlobStore) blobPath(digest string) string {
	return filepath.Join(s.root, digest[:2], digest)
}
