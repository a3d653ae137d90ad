package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ultrai/ultrai/internal/backend"
	"github.com/ultrai/ultrai/internal/catalog"
	"github.com/ultrai/ultrai/internal/progress"
	"github.com/ultrai/ultrai/internal/tui"
	"github.com/ultrai/ultrai/internal/tui/theme"
)

const phaseBarWidth = 24

// ProgressView renders the staged submission progress: one aggregate bar
// per phase, the current stage's narrative, and the ETA. On failure it
// freezes in place and shows the backend error verbatim.
type ProgressView struct {
	sim    *progress.Simulator
	status []catalog.StatusStep
	spin   tui.GradientSpinner
	err    error
	now    time.Time
	width  int
	height int
}

// NewProgressView creates a progress view over a running simulator.
func NewProgressView(sim *progress.Simulator, status []catalog.StatusStep) *ProgressView {
	t := theme.Current()
	return &ProgressView{
		sim:    sim,
		status: status,
		spin:   tui.NewGradientSpinner(t.Primary, t.Secondary, ""),
	}
}

// Tick starts the gradient spinner animation.
func (p *ProgressView) Tick() tea.Cmd {
	return p.spin.Tick()
}

// Update advances the gradient spinner animation.
func (p *ProgressView) Update(msg tea.Msg) tea.Cmd {
	return p.spin.Update(msg)
}

// SetNow updates the rendered instant. The App feeds this from the tick
// loop so View stays pure.
func (p *ProgressView) SetNow(now time.Time) { p.now = now }

// SetError freezes the view with the backend rejection.
func (p *ProgressView) SetError(err error) { p.err = err }

// SetSize updates the dimensions of the progress view.
func (p *ProgressView) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// phaseLabel returns the display label for a phase bar.
func phaseLabel(phase progress.Phase) string {
	switch phase {
	case progress.PhaseInitial:
		return "Initial responses"
	case progress.PhaseMeta:
		return "Cross review"
	case progress.PhaseSynthesis:
		return "Synthesis"
	}
	return string(phase)
}

// overallProgress averages the three phase fractions for the status
// checklist position.
func (p *ProgressView) overallProgress() float64 {
	phases := []progress.Phase{progress.PhaseInitial, progress.PhaseMeta, progress.PhaseSynthesis}
	var sum float64
	for _, phase := range phases {
		sum += p.sim.PhaseProgress(phase, p.now)
	}
	return sum / float64(len(phases))
}

// renderBar renders a fraction as a fixed-width block bar.
func renderBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// View renders the progress view.
func (p *ProgressView) View() string {
	var b strings.Builder

	phases := []progress.Phase{progress.PhaseInitial, progress.PhaseMeta, progress.PhaseSynthesis}

	labelStyle := lipgloss.NewStyle().Foreground(colorText)
	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	doneStyle := lipgloss.NewStyle().Foreground(colorGreen)
	pctStyle := lipgloss.NewStyle().Foreground(colorSubtext0)

	for _, phase := range phases {
		frac := p.sim.PhaseProgress(phase, p.now)

		bar := barStyle.Render(renderBar(frac, phaseBarWidth))
		if frac >= 1 {
			bar = doneStyle.Render(renderBar(frac, phaseBarWidth))
		}

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", phaseLabel(phase))))
		b.WriteString(" ")
		b.WriteString(bar)
		b.WriteString(pctStyle.Render(fmt.Sprintf(" %3.0f%%", frac*100)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Status-step vocabulary as a checklist, positioned by overall progress.
	if len(p.status) > 0 {
		pos := int(p.overallProgress() * float64(len(p.status)))
		if p.sim.Completed() {
			pos = len(p.status)
		}
		doneMark := lipgloss.NewStyle().Foreground(colorGreen)
		currMark := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
		pendMark := lipgloss.NewStyle().Foreground(colorSubtext0)
		for i, st := range p.status {
			label := st.Name
			if st.Icon != "" {
				label = st.Icon + " " + label
			}
			switch {
			case i < pos:
				b.WriteString(doneMark.Render("✓ " + label))
			case i == pos:
				b.WriteString(currMark.Render("▶ " + label))
			default:
				b.WriteString(pendMark.Render("· " + label))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if p.err != nil {
		b.WriteString(p.renderError())
		return b.String()
	}

	// Current stage narrative
	stage := p.sim.CurrentStage()
	stageStyle := lipgloss.NewStyle().Foreground(colorSubtext1)
	if p.sim.Completed() {
		b.WriteString(doneStyle.Render("✓ Analysis complete"))
		b.WriteString("\n")
	} else {
		b.WriteString(p.spin.View())
		b.WriteString("\n")
		b.WriteString(stageStyle.Render("» " + stage.Name))
		b.WriteString("\n")

		eta := p.sim.ETA(p.now)
		etaStyle := lipgloss.NewStyle().Foreground(colorSubtext0)
		b.WriteString(etaStyle.Render(fmt.Sprintf("about %ds remaining", int(eta.Round(time.Second).Seconds()))))
		b.WriteString("\n")
	}

	return b.String()
}

// renderError shows the rejection in place of the stage narrative. When
// the backend attached structured details, they are rendered verbatim.
func (p *ProgressView) renderError() string {
	var b strings.Builder

	errStyle := lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(colorText)

	var apiErr *backend.APIError
	if errors.As(p.err, &apiErr) && apiErr.Details != "" {
		b.WriteString(errStyle.Render("✗ " + apiErr.Message))
		b.WriteString("\n\n")
		b.WriteString(detailStyle.Render(apiErr.Details))
	} else {
		b.WriteString(errStyle.Render("✗ " + p.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(renderHintBar("r", "start over", "q", "quit"))

	return b.String()
}
