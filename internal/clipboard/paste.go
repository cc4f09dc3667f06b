package clipboard

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/types"
)

// FormatMode selects the representation a writeback puts on the clipboard.
type FormatMode string

const (
	// FormatOriginal preserves the item's native representation.
	FormatOriginal FormatMode = "original"
	// FormatPlainText coerces any item to its textual projection.
	FormatPlainText FormatMode = "plaintext"
)

// Dispatcher writes a selected history item back to the system clipboard
// and records the resulting generation so the monitor does not re-capture
// the engine's own write.
type Dispatcher struct {
	clipboard Clipboard
	marker    *ChangeMarker
	logger    *zap.Logger
}

// NewDispatcher wires a paste dispatcher sharing the monitor's marker.
func NewDispatcher(clip Clipboard, marker *ChangeMarker, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{clipboard: clip, marker: marker, logger: logger}
}

// Writeback puts the item on the system clipboard in the requested format.
// Failures are returned to the caller, never fatal; the presentation layer
// decides whether to retry.
func (d *Dispatcher) Writeback(item *types.ClipboardItem, mode FormatMode) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", ErrWriteFailure)
	}

	payload, err := buildPayload(item, mode)
	if err != nil {
		return err
	}

	count, err := d.clipboard.Write(payload)
	if err != nil {
		d.logger.Warn("writeback failed",
			zap.String("id", item.ID),
			zap.String("mode", string(mode)),
			zap.Error(err))
		return err
	}

	d.marker.Record(count)

	d.logger.Debug("wrote item back to clipboard",
		zap.String("id", item.ID),
		zap.String("type", string(item.Type)),
		zap.String("mode", string(mode)))
	return nil
}

// buildPayload maps an item to the clipboard representation for mode.
func buildPayload(item *types.ClipboardItem, mode FormatMode) (WritePayload, error) {
	if mode == FormatPlainText {
		return WritePayload{Text: PlainText(item)}, nil
	}

	switch item.Type {
	case types.TypeImage:
		if len(item.ImageData) == 0 {
			return WritePayload{}, fmt.Errorf("%w: image payload unreadable", ErrWriteFailure)
		}
		return WritePayload{Image: item.ImageData}, nil
	case types.TypeFile:
		if len(item.FilePaths) == 0 {
			return WritePayload{}, fmt.Errorf("%w: empty file list", ErrWriteFailure)
		}
		return WritePayload{FilePaths: item.FilePaths}, nil
	default:
		return WritePayload{Text: PlainText(item)}, nil
	}
}

// PlainText renders any item as its textual projection: raw text for
// text/link, the hex code for colors, newline-joined paths for file lists.
// Images have no textual projection and render empty.
func PlainText(item *types.ClipboardItem) string {
	switch item.Type {
	case types.TypeColor:
		return item.ColorHex
	case types.TypeFile:
		return joinPaths(item.FilePaths)
	case types.TypeImage:
		return ""
	default:
		return item.Text
	}
}
