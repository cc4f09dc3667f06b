package clipboard

import (
	"fmt"
	"sync"
)

// MemoryClipboard is an in-process clipboard used by tests and by the
// engine on headless systems. Set* methods simulate another application
// writing to the clipboard, bumping the change count.
type MemoryClipboard struct {
	mu         sync.Mutex
	snap       Snapshot
	lastChange int64
	readErr    error
	readDelay  func() // optional hook, runs inside Read before returning
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *MemoryClipboard {
	return &MemoryClipboard{}
}

func (c *MemoryClipboard) ChangeCount() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return 0, c.readErr
	}
	return c.snap.ChangeCount, nil
}

func (c *MemoryClipboard) Read() (*Snapshot, error) {
	c.mu.Lock()
	delay := c.readDelay
	c.mu.Unlock()
	if delay != nil {
		delay()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return nil, c.readErr
	}
	cp := c.snap
	cp.Image = append([]byte(nil), c.snap.Image...)
	cp.FilePaths = append([]string(nil), c.snap.FilePaths...)
	return &cp, nil
}

func (c *MemoryClipboard) Write(p WritePayload) (int64, error) {
	if p.Text == "" && len(p.Image) == 0 && len(p.FilePaths) == 0 {
		return 0, fmt.Errorf("%w: empty payload", ErrWriteFailure)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = Snapshot{
		Text:      p.Text,
		Image:     append([]byte(nil), p.Image...),
		FilePaths: append([]string(nil), p.FilePaths...),
	}
	c.snap.ChangeCount = c.bumpLocked()
	return c.snap.ChangeCount, nil
}

// SetText simulates an external application copying text.
func (c *MemoryClipboard) SetText(text string, app AppInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = Snapshot{Text: text, SourceApp: app}
	c.snap.ChangeCount = c.bumpLocked()
}

// SetImage simulates an external application copying an image.
func (c *MemoryClipboard) SetImage(data []byte, app AppInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = Snapshot{Image: append([]byte(nil), data...), SourceApp: app}
	c.snap.ChangeCount = c.bumpLocked()
}

// SetFiles simulates an external application copying a file list.
func (c *MemoryClipboard) SetFiles(paths []string, app AppInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = Snapshot{FilePaths: append([]string(nil), paths...), SourceApp: app}
	c.snap.ChangeCount = c.bumpLocked()
}

// SetColor simulates an external application copying a color.
func (c *MemoryClipboard) SetColor(hex string, app AppInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = Snapshot{ColorHex: hex, SourceApp: app}
	c.snap.ChangeCount = c.bumpLocked()
}

// FailReads makes subsequent reads return err; nil restores normal reads.
func (c *MemoryClipboard) FailReads(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readErr = err
}

// StallReads installs a hook that runs inside Read, letting tests simulate
// a stalled clipboard.
func (c *MemoryClipboard) StallReads(hook func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readDelay = hook
}

// Current returns a copy of the snapshot, for test assertions.
func (c *MemoryClipboard) Current() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

func (c *MemoryClipboard) bumpLocked() int64 {
	c.lastChange++
	return c.lastChange
}
