//go:build !darwin

package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// fallbackClipboard is a text-only backend for platforms without a native
// change counter. It synthesizes a generation marker by hashing the text on
// each poll and bumping a counter when the hash moves.
type fallbackClipboard struct {
	mu       sync.Mutex
	logger   *zap.Logger
	lastHash uint64
	count    int64
}

// New returns the text-only fallback clipboard backend.
func New(logger *zap.Logger) Clipboard {
	return &fallbackClipboard{logger: logger}
}

func (c *fallbackClipboard) ChangeCount() (int64, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReadFailure, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if h := xxhash.Sum64String(text); h != c.lastHash {
		c.lastHash = h
		c.count++
	}
	return c.count, nil
}

func (c *fallbackClipboard) Read() (*Snapshot, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailure, err)
	}
	c.mu.Lock()
	count := c.count
	c.mu.Unlock()
	return &Snapshot{ChangeCount: count, Text: text}, nil
}

func (c *fallbackClipboard) Write(p WritePayload) (int64, error) {
	text := p.Text
	if len(p.FilePaths) > 0 {
		text = joinPaths(p.FilePaths)
	}
	if text == "" {
		return 0, fmt.Errorf("%w: only text is supported on this platform", ErrWriteFailure)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastHash = xxhash.Sum64String(text)
	c.count++
	return c.count, nil
}
