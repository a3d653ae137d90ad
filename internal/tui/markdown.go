// Package tui holds components shared by the wizard screens.
package tui

import (
	"strings"

	"charm.land/glamour/v2"
)

// RenderMarkdown renders markdown content with syntax highlighting using
// glamour. Falls back to the raw text if rendering fails.
func RenderMarkdown(content string, width int) string {
	// Cap width to 120 for readability
	if width > 120 {
		width = 120
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	// Remove trailing newline that glamour adds
	return strings.TrimSuffix(rendered, "\n")
}
