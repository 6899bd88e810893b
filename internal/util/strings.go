// Package util provides shared utility functions used across the codebase.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis is appended to truncated cells.
const Ellipsis = "…"

// TruncateANSI truncates a string to maxWidth visual columns, ending it with
// Ellipsis if truncated. ANSI escape codes and wide characters are handled,
// so styled strings may be passed. A maxWidth below 1 disables truncation.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth < 1 || lipgloss.Width(s) <= maxWidth {
		return s
	}
	// ansi.Truncate includes the tail in the final width calculation
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// Indent prefixes every non-empty line of s with n spaces.
func Indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
