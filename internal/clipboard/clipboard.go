// Package clipboard provides access to the system clipboard, the content
// classifier, the polling monitor and the paste dispatcher. Build
// constraints select the platform backend:
//
//	clipboard_darwin.go   — macOS via golang.design/x/clipboard + cgo changeCount
//	clipboard_fallback.go — other platforms, text-only via atotto/clipboard
package clipboard

import (
	"errors"
)

var (
	// ErrReadFailure marks a clipboard read that failed this tick.
	// Transient; the monitor retries on the next tick.
	ErrReadFailure = errors.New("clipboard read failed")

	// ErrNoContent means the snapshot carried no recognizable representation.
	ErrNoContent = errors.New("no recognizable clipboard content")

	// ErrWriteFailure marks a paste-dispatcher write that could not complete.
	ErrWriteFailure = errors.New("clipboard write failed")
)

// AppInfo identifies the application that owned the clipboard at capture
// time. Best effort; both fields may be empty.
type AppInfo struct {
	BundleID string
	Name     string
}

// Snapshot is one observation of the system clipboard: zero or more typed
// representations plus the generation marker they were read under.
type Snapshot struct {
	ChangeCount int64
	Text        string
	Image       []byte
	FilePaths   []string
	ColorHex    string
	SourceApp   AppInfo
}

// Empty reports whether the snapshot carries no representation at all.
func (s *Snapshot) Empty() bool {
	return s.Text == "" && len(s.Image) == 0 && len(s.FilePaths) == 0 && s.ColorHex == ""
}

// WritePayload is the representation the paste dispatcher puts on the
// system clipboard. At most one field is set.
type WritePayload struct {
	Text      string
	Image     []byte
	FilePaths []string
}

// Clipboard abstracts the system clipboard. ChangeCount is a monotonic
// generation marker that advances on every clipboard write, including our
// own. Write returns the marker resulting from the write so the caller can
// record it for self-write suppression.
type Clipboard interface {
	ChangeCount() (int64, error)
	Read() (*Snapshot, error)
	Write(p WritePayload) (int64, error)
}
