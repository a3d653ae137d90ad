package theme

import "charm.land/lipgloss/v2"

// Styles contains pre-built lipgloss styles shared across the TUI.
type Styles struct {
	Title     lipgloss.Style
	Muted     lipgloss.Style
	ErrorText lipgloss.Style
}
