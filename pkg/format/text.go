package format

import (
	"fmt"
	"strings"
)

// TruncateText cuts text to maxLen runes, collapsing newlines, appending
// an ellipsis when truncated.
func TruncateText(text string, maxLen int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")

	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// indentText formats multi-line text with a two-space indent, trimming to
// maxWidth columns and maxLines lines.
func indentText(text string, maxWidth, maxLines int) string {
	text = strings.ReplaceAll(text, "\t", "  ")
	lines := strings.Split(text, "\n")

	show := len(lines)
	if maxLines > 0 && show > maxLines {
		show = maxLines
	}

	var b strings.Builder
	for i := 0; i < show; i++ {
		line := strings.TrimRight(lines[i], " \t\r\n")
		if maxWidth > 0 && len(line) > maxWidth {
			line = line[:maxWidth] + "..."
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(lines) > show {
		fmt.Fprintf(&b, "  ... (%d more lines not shown)\n", len(lines)-show)
	}

	return b.String()
}
