package wizard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ultrai/ultrai/internal/catalog"
)

// optionItem is a single selectable option with its selection state.
type optionItem struct {
	def      catalog.OptionDefinition
	selected bool
}

// OptionList manages option selection with keyboard navigation. It works
// for both single-select (radio) and multi-select (checkbox) steps.
type OptionList struct {
	items       []optionItem
	cursor      int
	multiSelect bool
	focused     bool
}

// NewOptionList creates a list over the step's options.
func NewOptionList(opts []catalog.OptionDefinition, multiSelect bool) OptionList {
	items := make([]optionItem, len(opts))
	for i, opt := range opts {
		items[i] = optionItem{def: opt}
	}
	return OptionList{
		items:       items,
		multiSelect: multiSelect,
		focused:     true,
	}
}

// CursorUp moves cursor up.
func (o *OptionList) CursorUp() {
	if o.cursor > 0 {
		o.cursor--
	}
}

// CursorDown moves cursor down.
func (o *OptionList) CursorDown() {
	if o.cursor < len(o.items)-1 {
		o.cursor++
	}
}

// Cursor returns the current cursor index.
func (o *OptionList) Cursor() int { return o.cursor }

// Toggle toggles selection of the option under the cursor. Single-select
// lists clear other selections first.
func (o *OptionList) Toggle() {
	if o.multiSelect {
		o.items[o.cursor].selected = !o.items[o.cursor].selected
		return
	}
	for i := range o.items {
		o.items[i].selected = false
	}
	o.items[o.cursor].selected = true
}

// SetSelected marks the given option indices as selected (used to restore
// state when revisiting a step).
func (o *OptionList) SetSelected(indices []int) {
	for i := range o.items {
		o.items[i].selected = false
	}
	for _, idx := range indices {
		if idx >= 0 && idx < len(o.items) {
			o.items[idx].selected = true
		}
	}
}

// SelectedIndices returns indices of all selected options.
func (o *OptionList) SelectedIndices() []int {
	var indices []int
	for i, item := range o.items {
		if item.selected {
			indices = append(indices, i)
		}
	}
	return indices
}

// Focus focuses the option list.
func (o *OptionList) Focus() { o.focused = true }

// Blur blurs the option list.
func (o *OptionList) Blur() { o.focused = false }

// Update handles messages for the option list. Returns true when the
// selection changed.
func (o *OptionList) Update(msg tea.Msg) bool {
	if !o.focused {
		return false
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			o.CursorUp()
		case "down", "j":
			o.CursorDown()
		case " ", "enter":
			o.Toggle()
			return true
		}
	}
	return false
}

// View renders the option list.
func (o *OptionList) View() string {
	var b strings.Builder

	for i, item := range o.items {
		var indicator string
		if o.multiSelect {
			indicator = "☐"
			if item.selected {
				indicator = "☑"
			}
		} else {
			indicator = "○"
			if item.selected {
				indicator = "●"
			}
		}

		cursor := "  "
		if i == o.cursor && o.focused {
			cursor = "▶ "
		}

		style := lipgloss.NewStyle().Foreground(colorText)
		if i == o.cursor && o.focused {
			style = style.Foreground(colorPrimary).Bold(true)
		}

		label := item.def.Label
		if item.def.Icon != "" {
			label = item.def.Icon + " " + label
		}

		line := fmt.Sprintf("%s%s %s", cursor, indicator, label)
		b.WriteString(style.Render(line))

		// Cost tag: options without a cost carry no tag, an explicit zero
		// shows as free.
		if item.def.Cost != nil {
			costStyle := lipgloss.NewStyle().Foreground(colorGreen)
			if *item.def.Cost == 0 {
				b.WriteString(costStyle.Render("  (free)"))
			} else {
				b.WriteString(costStyle.Render(fmt.Sprintf("  ($%.2f)", *item.def.Cost)))
			}
		}
		b.WriteString("\n")

		if item.def.Description != "" {
			descStyle := lipgloss.NewStyle().Foreground(colorSubtext0)
			b.WriteString(descStyle.Render(fmt.Sprintf("      %s", item.def.Description)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
