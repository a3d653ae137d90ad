package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ultrai/ultrai/internal/catalog"
	"github.com/ultrai/ultrai/internal/flow"
)

// OptionStep renders a single- or multi-select catalog step. Selections are
// written straight into the shared selection store so they survive
// backward navigation.
type OptionStep struct {
	def       catalog.StepDefinition
	stepIndex int
	store     *flow.SelectionStore
	list      OptionList
	width     int
	height    int
}

// NewOptionStep creates an option step bound to the selection store,
// restoring any prior selection for this step.
func NewOptionStep(def catalog.StepDefinition, stepIndex int, store *flow.SelectionStore) *OptionStep {
	multi := def.Kind == catalog.KindMultiSelect
	list := NewOptionList(def.Options, multi)

	if multi {
		list.SetSelected(store.Multi(stepIndex))
	} else if idx, ok := store.Single(stepIndex); ok {
		list.SetSelected([]int{idx})
	}

	return &OptionStep{
		def:       def,
		stepIndex: stepIndex,
		store:     store,
		list:      list,
	}
}

// Init initializes the option step.
func (s *OptionStep) Init() tea.Cmd {
	return nil
}

// Update handles messages for the option step.
func (s *OptionStep) Update(msg tea.Msg) tea.Cmd {
	if !s.list.Update(msg) {
		return nil
	}

	// Selection changed: write through to the store.
	if s.def.Kind == catalog.KindMultiSelect {
		cursor := s.list.Cursor()
		s.store.ToggleOption(s.stepIndex, cursor)
	} else {
		selected := s.list.SelectedIndices()
		if len(selected) == 1 {
			s.store.SetSingle(s.stepIndex, selected[0])
		}
	}
	return func() tea.Msg { return SelectionChangedMsg{} }
}

// View renders the option step content.
func (s *OptionStep) View() string {
	var b strings.Builder

	if s.def.Narrative != "" {
		narrativeStyle := lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Width(s.contentWidth())
		b.WriteString(narrativeStyle.Render(s.def.Narrative))
		b.WriteString("\n\n")
	}

	b.WriteString(s.list.View())
	b.WriteString("\n")

	if s.def.Kind == catalog.KindMultiSelect {
		b.WriteString(renderHintBar("↑↓/j/k", "navigate", "space", "toggle", "←→", "steps"))
	} else {
		b.WriteString(renderHintBar("↑↓/j/k", "navigate", "enter", "select", "←→", "steps"))
	}

	return b.String()
}

// SetSize updates the dimensions of the option step.
func (s *OptionStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Focus focuses the option list.
func (s *OptionStep) Focus() { s.list.Focus() }

// Blur blurs the option list.
func (s *OptionStep) Blur() { s.list.Blur() }

func (s *OptionStep) contentWidth() int {
	if s.width > 0 {
		return s.width
	}
	return 60
}
