//go:build darwin

package clipboard

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
//
// long clipvault_changeCount() {
//     return (long)[[NSPasteboard generalPasteboard] changeCount];
// }
//
// const char *clipvault_frontmostBundleID() {
//     NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
//     return app ? [[app bundleIdentifier] UTF8String] : NULL;
// }
//
// const char *clipvault_frontmostName() {
//     NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
//     return app ? [[app localizedName] UTF8String] : NULL;
// }
import "C"

import (
	"fmt"

	"go.uber.org/zap"
	xclip "golang.design/x/clipboard"
)

type darwinClipboard struct {
	logger *zap.Logger
}

// New returns the macOS clipboard backend. clipboard.Init is called here
// rather than in init() so CLI sub-commands that never touch the clipboard
// don't log spurious warnings on headless systems.
func New(logger *zap.Logger) Clipboard {
	if err := xclip.Init(); err != nil {
		logger.Warn("clipboard init failed", zap.Error(err))
	}
	return &darwinClipboard{logger: logger}
}

func (c *darwinClipboard) ChangeCount() (int64, error) {
	return int64(C.clipvault_changeCount()), nil
}

func (c *darwinClipboard) Read() (*Snapshot, error) {
	snap := &Snapshot{ChangeCount: int64(C.clipvault_changeCount())}

	if text := xclip.Read(xclip.FmtText); len(text) > 0 {
		snap.Text = string(text)
	}
	if img := xclip.Read(xclip.FmtImage); len(img) > 0 {
		snap.Image = img
	}

	if id := C.clipvault_frontmostBundleID(); id != nil {
		snap.SourceApp.BundleID = C.GoString(id)
	}
	if name := C.clipvault_frontmostName(); name != nil {
		snap.SourceApp.Name = C.GoString(name)
	}

	return snap, nil
}

func (c *darwinClipboard) Write(p WritePayload) (int64, error) {
	switch {
	case len(p.Image) > 0:
		xclip.Write(xclip.FmtImage, p.Image)
	case len(p.FilePaths) > 0:
		// golang.design/x/clipboard has no file-URL format; a newline-joined
		// path list is what most targets accept anyway.
		xclip.Write(xclip.FmtText, []byte(joinPaths(p.FilePaths)))
	case p.Text != "":
		xclip.Write(xclip.FmtText, []byte(p.Text))
	default:
		return 0, fmt.Errorf("%w: empty payload", ErrWriteFailure)
	}
	return int64(C.clipvault_changeCount()), nil
}
