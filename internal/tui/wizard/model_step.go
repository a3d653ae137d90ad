package wizard

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ultrai/ultrai/internal/backend"
	"github.com/ultrai/ultrai/internal/models"
	"github.com/ultrai/ultrai/internal/tui"
)

// ModelStep is the model-selection gate. It fetches the available models
// from the backend, supports preset application and per-model toggling,
// and surfaces the minimum-selection rule inline.
type ModelStep struct {
	client    *backend.Client
	selection models.Selection
	catalog   *models.Catalog
	cursor    int
	minModels int

	loading  bool
	fetchErr string
	gateMsg  string

	spinner tui.Spinner
	width   int
	height  int
}

// NewModelStep creates the model gate bound to the shared selection set.
func NewModelStep(client *backend.Client, selection models.Selection, minModels int) *ModelStep {
	return &ModelStep{
		client:    client,
		selection: selection,
		minModels: minModels,
		loading:   true,
		spinner:   tui.NewSpinner(spinner.Dot),
	}
}

// Init starts the model fetch and the loading spinner.
func (s *ModelStep) Init() tea.Cmd {
	return tea.Batch(s.fetchModels(), s.spinner.Tick())
}

// fetchModels fetches the available models from the backend.
func (s *ModelStep) fetchModels() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		list, err := client.Models(context.Background())
		if err != nil {
			return ModelsErrorMsg{Err: err}
		}
		return ModelsLoadedMsg{Models: list}
	}
}

// Catalog returns the fetched model catalog, nil until loaded.
func (s *ModelStep) Catalog() *models.Catalog { return s.catalog }

// Validate re-checks the minimum-selection rule and refreshes the inline
// gate message. Returns nil when the selection is submittable.
func (s *ModelStep) Validate() error {
	err := s.selection.Validate(s.minModels)
	if err != nil {
		s.gateMsg = err.Error()
		return err
	}
	s.gateMsg = ""
	return nil
}

// Update handles messages for the model step.
func (s *ModelStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ModelsLoadedMsg:
		s.loading = false
		s.catalog = models.NewCatalog(msg.Models)
		if s.cursor >= len(msg.Models) {
			s.cursor = 0
		}
		return nil

	case ModelsErrorMsg:
		s.loading = false
		s.fetchErr = msg.Err.Error()
		return nil

	case spinner.TickMsg:
		if s.loading {
			return s.spinner.Update(msg)
		}
		return nil

	case tea.KeyPressMsg:
		if s.loading {
			return nil
		}
		if s.fetchErr != "" {
			if msg.String() == "r" {
				s.loading = true
				s.fetchErr = ""
				return tea.Batch(s.fetchModels(), s.spinner.Tick())
			}
			return nil
		}

		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
			return nil
		case "down", "j":
			if s.cursor < s.modelCount()-1 {
				s.cursor++
			}
			return nil
		case " ":
			if s.catalog != nil && s.cursor < len(s.catalog.Models) {
				s.selection.Toggle(s.catalog.Models[s.cursor].ID)
				s.gateMsg = ""
				return func() tea.Msg { return SelectionChangedMsg{} }
			}
			return nil
		case "1":
			return s.applyPreset(models.TierPremium)
		case "2":
			return s.applyPreset(models.TierSpeed)
		case "3":
			return s.applyPreset(models.TierBudget)
		}
	}
	return nil
}

// applyPreset replaces the selection wholesale with the tier's models.
func (s *ModelStep) applyPreset(tier models.Tier) tea.Cmd {
	if s.catalog == nil {
		return nil
	}
	s.selection.ApplyPreset(tier, s.catalog)
	s.gateMsg = ""
	return func() tea.Msg { return SelectionChangedMsg{} }
}

func (s *ModelStep) modelCount() int {
	if s.catalog == nil {
		return 0
	}
	return len(s.catalog.Models)
}

// View renders the model step content.
func (s *ModelStep) View() string {
	var b strings.Builder

	if s.loading {
		b.WriteString(s.spinner.View())
		b.WriteString(" Fetching available models...\n")
		return b.String()
	}

	if s.fetchErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(colorRed)
		b.WriteString(errStyle.Render("✗ " + s.fetchErr))
		b.WriteString("\n\n")
		b.WriteString(renderHintBar("r", "retry", "←", "back"))
		return b.String()
	}

	presetStyle := lipgloss.NewStyle().Foreground(colorSubtext1)
	b.WriteString(presetStyle.Render("Presets: [1] premium  [2] speed  [3] budget"))
	b.WriteString("\n\n")

	for i, m := range s.catalog.Models {
		indicator := "☐"
		if s.selection.Has(m.ID) {
			indicator = "☑"
		}

		cursor := "  "
		if i == s.cursor {
			cursor = "▶ "
		}

		style := lipgloss.NewStyle().Foreground(colorText)
		if i == s.cursor {
			style = style.Foreground(colorPrimary).Bold(true)
		}

		line := fmt.Sprintf("%s%s %s", cursor, indicator, m.ID)
		b.WriteString(style.Render(line))

		metaStyle := lipgloss.NewStyle().Foreground(colorSubtext0)
		b.WriteString(metaStyle.Render(fmt.Sprintf("  %s · $%.4f/1k", m.Provider, m.CostPer1K)))
		b.WriteString("\n")
	}

	countStyle := lipgloss.NewStyle().Foreground(colorSubtext1).MarginTop(1)
	b.WriteString("\n")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d selected (minimum %d)", s.selection.Count(), s.minModels)))
	b.WriteString("\n")

	if s.gateMsg != "" {
		gateStyle := lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
		b.WriteString(gateStyle.Render("⚠ " + s.gateMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHintBar("↑↓/j/k", "navigate", "space", "toggle", "1-3", "presets", "←→", "steps"))

	return b.String()
}

// SetSize updates the dimensions of the model step.
func (s *ModelStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}
