// Package testfixtures holds shared helpers for TUI rendering tests.
package testfixtures

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
)

// Initialize test environment
func init() {
	// Ascii profile disables color output so assertions see plain text
	// regardless of CI terminal capabilities.
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// RenderToScreen draws content onto a fixed-size screen buffer the way the
// wizard's View does, returning the flattened cells. Use it to assert on
// what actually lands on the terminal rather than on the styled string.
func RenderToScreen(t *testing.T, content string) string {
	t.Helper()

	canvas := uv.NewScreenBuffer(TestTermWidth, TestTermHeight)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: TestTermWidth, Y: TestTermHeight},
	})
	return canvas.Render()
}

// Contains reports whether any line of the rendered screen contains the
// substring, ignoring the padding the buffer adds to short lines.
func Contains(screen, substr string) bool {
	for _, line := range strings.Split(screen, "\n") {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
