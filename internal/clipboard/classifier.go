package clipboard

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/clipvault/clipvault/internal/types"
)

// colorPattern matches #RGB, #RRGGBB and #RRGGBBAA hex colors.
var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Classify inspects a clipboard snapshot and produces at most one item
// candidate, using the precedence file-list > image > color > link > text.
// A snapshot with no readable representation returns ErrNoContent.
// Pure function of snapshot -> candidate; no side effects.
func Classify(snap *Snapshot) (*types.ClipboardItem, error) {
	if snap == nil || snap.Empty() {
		return nil, ErrNoContent
	}

	base := types.ClipboardItem{
		SourceAppBundleID: snap.SourceApp.BundleID,
		SourceAppName:     snap.SourceApp.Name,
	}

	switch {
	case len(snap.FilePaths) > 0:
		base.FilePaths = append([]string(nil), snap.FilePaths...)
		return types.NewItem(types.TypeFile, base), nil

	case len(snap.Image) > 0:
		base.ImageData = append([]byte(nil), snap.Image...)
		return types.NewItem(types.TypeImage, base), nil

	case snap.ColorHex != "":
		if !colorPattern.MatchString(snap.ColorHex) {
			return nil, ErrNoContent
		}
		base.ColorHex = snap.ColorHex
		return types.NewItem(types.TypeColor, base), nil

	case snap.Text != "":
		base.Text = snap.Text
		if isLink(snap.Text) {
			return types.NewItem(types.TypeLink, base), nil
		}
		if colorPattern.MatchString(strings.TrimSpace(snap.Text)) {
			base.Text = ""
			base.ColorHex = strings.TrimSpace(snap.Text)
			return types.NewItem(types.TypeColor, base), nil
		}
		return types.NewItem(types.TypeText, base), nil
	}

	return nil, ErrNoContent
}

// isLink reports whether text looks like a single URL.
func isLink(text string) bool {
	trimmed := strings.TrimSpace(text)
	if strings.ContainsAny(trimmed, " \t\n") {
		return false
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return false
	}
	u, err := url.ParseRequestURI(trimmed)
	return err == nil && u.Host != ""
}

// joinPaths renders an ordered path list as newline-separated text, the
// plain-text projection of a file item.
func joinPaths(paths []string) string {
	return strings.Join(paths, "\n")
}
