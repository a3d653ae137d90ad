package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ultrai/ultrai/internal/catalog"
)

// IntroStep renders a narrative-only step. It carries no selection; Enter
// advances.
type IntroStep struct {
	def    catalog.StepDefinition
	width  int
	height int
}

// NewIntroStep creates an intro step from its catalog definition.
func NewIntroStep(def catalog.StepDefinition) *IntroStep {
	return &IntroStep{def: def}
}

// Init initializes the intro step.
func (s *IntroStep) Init() tea.Cmd {
	return nil
}

// Update handles messages for the intro step.
func (s *IntroStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", " ":
			return func() tea.Msg { return AdvanceMsg{} }
		}
	}
	return nil
}

// View renders the intro step content.
func (s *IntroStep) View() string {
	var b strings.Builder

	narrativeStyle := lipgloss.NewStyle().
		Foreground(colorText).
		Width(s.contentWidth())
	b.WriteString(narrativeStyle.Render(s.def.Narrative))
	b.WriteString("\n\n")
	b.WriteString(renderHintBar("enter", "continue", "→", "next", "esc", "quit"))

	return b.String()
}

// SetSize updates the dimensions of the intro step.
func (s *IntroStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *IntroStep) contentWidth() int {
	if s.width > 0 {
		return s.width
	}
	return 60
}
