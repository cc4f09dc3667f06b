package history

import (
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/clipvault/clipvault/internal/types"
)

// Search returns items whose searchable projection contains query
// case-insensitively, optionally restricted to a single content type
// (nil = all types), preserving the store's recency order. An empty query
// returns the full type-filtered set. Pure read; reflects the store state
// at call time.
func (s *Store) Search(query string, typeFilter *types.ContentType) []*types.ClipboardItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(query))

	var out []*types.ClipboardItem
	for _, it := range s.items {
		if typeFilter != nil && it.Type != *typeFilter {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(SearchableText(it)), needle) {
			continue
		}
		out = append(out, it.Clone())
	}
	return out
}

// SearchableText is the per-type projection substring matching runs
// against: the raw text for text and link items, the hex code for colors,
// the path base names for file lists, and a fixed "image" token plus a
// humanized size string for images.
func SearchableText(it *types.ClipboardItem) string {
	switch it.Type {
	case types.TypeColor:
		return it.ColorHex
	case types.TypeFile:
		names := make([]string, len(it.FilePaths))
		for i, p := range it.FilePaths {
			names[i] = filepath.Base(p)
		}
		return strings.Join(names, " ")
	case types.TypeImage:
		return "image " + humanize.Bytes(uint64(it.DataSize))
	default:
		return it.Text
	}
}
