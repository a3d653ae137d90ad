package wizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ultrai/ultrai/internal/backend"
	"github.com/ultrai/ultrai/internal/tui"
)

// ResultView renders the final synthesized response in a scrollable
// viewport with markdown highlighting.
type ResultView struct {
	viewport viewport.Model
	response *backend.AnalyzeResponse
	width    int
	height   int
}

// NewResultView creates a result view for a completed run.
func NewResultView(resp *backend.AnalyzeResponse) *ResultView {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(12),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	vp.SetContent(tui.RenderMarkdown(resp.UltraResponse, 60))

	return &ResultView{
		viewport: vp,
		response: resp,
		width:    60,
		height:   20,
	}
}

// Init initializes the result view.
func (r *ResultView) Init() tea.Cmd {
	return nil
}

// Update handles messages for the result view.
func (r *ResultView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return cmd
}

// View renders the result view.
func (r *ResultView) View() string {
	var b strings.Builder

	metaStyle := lipgloss.NewStyle().Foreground(colorSubtext0)
	b.WriteString(metaStyle.Render(fmt.Sprintf(
		"%s pattern · %d models · %.1fs",
		r.response.PatternUsed,
		len(r.response.ModelsUsed),
		r.response.ProcessingTime,
	)))
	b.WriteString("\n\n")

	b.WriteString(r.viewport.View())
	b.WriteString("\n")
	b.WriteString(renderHintBar("↑↓", "scroll", "r", "start over", "q", "quit"))

	return b.String()
}

// SetSize updates the dimensions of the result view.
func (r *ResultView) SetSize(width, height int) {
	r.width = width
	r.height = height

	r.viewport.SetWidth(width)
	viewportHeight := height - 4
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	r.viewport.SetHeight(viewportHeight)
	r.viewport.SetContent(tui.RenderMarkdown(r.response.UltraResponse, width))
}
