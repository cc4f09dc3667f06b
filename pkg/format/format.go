// Package format renders clipboard history items for terminal display.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/clipvault/clipvault/internal/types"
)

// FormatItem renders a full multi-line view of a history item.
func FormatItem(it *types.ClipboardItem, opts Options) string {
	var b strings.Builder

	header := headerLine(it, opts)
	b.WriteString(header)
	b.WriteString("\n")

	if opts.ShowMetadata {
		meta := fmt.Sprintf("  id=%s  %s", it.ID, it.CreatedAt.Format("2006-01-02 15:04:05"))
		if it.SourceAppName != "" {
			meta += "  from " + it.SourceAppName
		}
		b.WriteString(DimIf(meta, opts.UseColors))
		b.WriteString("\n")
	}

	b.WriteString(bodyText(it, opts))
	return b.String()
}

// FormatLine renders a single-line summary, used in compact listings.
func FormatLine(it *types.ClipboardItem, opts Options) string {
	maxLen := opts.MaxWidth
	if maxLen <= 0 {
		maxLen = 80
	}
	return headerLine(it, opts) + "  " + Preview(it, maxLen)
}

func headerLine(it *types.ClipboardItem, opts Options) string {
	label := string(it.Type)
	if it.Pinned {
		label += " ★"
	}
	if color, ok := ContentColors[it.Type]; ok {
		label = ColorizeIf(label, color, opts.UseColors)
	}
	if opts.UseIcons {
		if icon, ok := ContentIcons[it.Type]; ok {
			label = icon + " " + label
		}
	}
	return label
}

func bodyText(it *types.ClipboardItem, opts Options) string {
	switch it.Type {
	case types.TypeImage:
		return fmt.Sprintf("  [image, %s]\n", humanize.Bytes(uint64(it.DataSize)))
	case types.TypeColor:
		return "  " + it.ColorHex + "\n"
	case types.TypeFile:
		return formatFileList(it.FilePaths)
	case types.TypeLink:
		return "  " + ColorizeIf(it.Text, Underline+Blue, opts.UseColors) + "\n"
	default:
		return indentText(it.Text, opts.MaxWidth, opts.MaxLines)
	}
}

// Preview renders a short one-line preview of any item.
func Preview(it *types.ClipboardItem, maxLen int) string {
	switch it.Type {
	case types.TypeImage:
		return fmt.Sprintf("[image %s]", humanize.Bytes(uint64(it.DataSize)))
	case types.TypeColor:
		return it.ColorHex
	case types.TypeFile:
		if len(it.FilePaths) == 1 {
			return TruncateText(it.FilePaths[0], maxLen)
		}
		return fmt.Sprintf("[%d files]", len(it.FilePaths))
	default:
		return TruncateText(it.Text, maxLen)
	}
}

// FormatAge renders a duration as a short human string, e.g. "3 minutes ago".
func FormatAge(createdAt time.Time) string {
	return humanize.Time(createdAt)
}

func formatFileList(files []string) string {
	if len(files) == 0 {
		return "  [empty file list]\n"
	}

	var b strings.Builder
	maxShow := 3
	for i, f := range files {
		if i == maxShow {
			fmt.Fprintf(&b, "  ... and %d more files\n", len(files)-maxShow)
			break
		}
		b.WriteString("  " + f + "\n")
	}
	return b.String()
}
