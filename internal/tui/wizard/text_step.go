package wizard

import (
	"os"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"

	"github.com/ultrai/ultrai/internal/catalog"
	"github.com/ultrai/ultrai/internal/flow"
)

// TextStep handles a free-text catalog step with a textarea and optional
// external editor. Text is written through to the selection store on every
// change so it survives backward navigation.
type TextStep struct {
	def       catalog.StepDefinition
	stepIndex int
	store     *flow.SelectionStore
	textarea  textarea.Model
	tmpFile   string
	width     int
	height    int
}

// NewTextStep creates a free-text step, restoring prior content.
func NewTextStep(def catalog.StepDefinition, stepIndex int, store *flow.SelectionStore) *TextStep {
	ta := textarea.New()
	ta.Placeholder = "Type your query..."
	ta.CharLimit = 5000
	ta.SetHeight(8)
	ta.SetWidth(60)
	ta.SetValue(store.Text(stepIndex))
	ta.Focus()

	return &TextStep{
		def:       def,
		stepIndex: stepIndex,
		store:     store,
		textarea:  ta,
	}
}

// Init initializes the text step.
func (s *TextStep) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the text step.
func (s *TextStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+e":
			if os.Getenv("EDITOR") != "" {
				return s.openEditor()
			}
			return nil
		}

	case TextEditedMsg:
		if msg.StepIndex != s.stepIndex {
			return nil
		}
		s.textarea.SetValue(strings.TrimRight(msg.Content, "\n"))
		s.store.SetText(s.stepIndex, s.textarea.Value())
		if s.tmpFile != "" {
			_ = os.Remove(s.tmpFile)
			s.tmpFile = ""
		}
		return nil
	}

	var cmd tea.Cmd
	s.textarea, cmd = s.textarea.Update(msg)
	s.store.SetText(s.stepIndex, s.textarea.Value())
	return cmd
}

// openEditor launches the user's $EDITOR with the current text.
func (s *TextStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "ultrai_query_*.md")
	if err != nil {
		return nil // Silently fail - editor not available
	}

	if _, err := tmpfile.WriteString(s.textarea.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	s.tmpFile = tmpfile.Name()

	cmd, err := editor.Command("ultrai", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	stepIndex := s.stepIndex
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return nil
		}
		content, err := os.ReadFile(tmpfile.Name())
		if err != nil {
			return nil
		}
		return TextEditedMsg{StepIndex: stepIndex, Content: string(content)}
	})
}

// View renders the text step content.
func (s *TextStep) View() string {
	var b strings.Builder

	if s.def.Narrative != "" {
		narrativeStyle := lipgloss.NewStyle().
			Foreground(colorSubtext1).
			MarginBottom(1)
		b.WriteString(narrativeStyle.Render(s.def.Narrative))
		b.WriteString("\n\n")
	}

	textareaStyle := lipgloss.NewStyle().
		Width(62).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSurface2)
	b.WriteString(textareaStyle.Render(s.textarea.View()))
	b.WriteString("\n")

	if os.Getenv("EDITOR") != "" {
		b.WriteString(renderHintBar("ctrl+e", "edit in $EDITOR", "shift+←→", "steps"))
	} else {
		b.WriteString(renderHintBar("shift+←→", "steps"))
	}

	return b.String()
}

// SetSize updates the dimensions of the text step.
func (s *TextStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	maxHeight := height - 10
	if maxHeight < 4 {
		maxHeight = 4
	}
	if maxHeight > 12 {
		maxHeight = 12
	}
	s.textarea.SetHeight(maxHeight)
}

// Focus focuses the textarea.
func (s *TextStep) Focus() { s.textarea.Focus() }

// Blur blurs the textarea.
func (s *TextStep) Blur() { s.textarea.Blur() }

// Value returns the current text (trimmed).
func (s *TextStep) Value() string {
	return strings.TrimSpace(s.textarea.Value())
}
