package wizard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ultrai/ultrai/internal/receipt"
)

// ReceiptPanel renders the running cost receipt beside the step content.
// It is a pure view over the derived receipt; it holds no state of its own
// beyond visibility.
type ReceiptPanel struct {
	visible bool
	width   int
}

// NewReceiptPanel creates a receipt panel.
func NewReceiptPanel(visible bool) *ReceiptPanel {
	return &ReceiptPanel{visible: visible, width: 30}
}

// Visible reports whether the panel is shown.
func (p *ReceiptPanel) Visible() bool { return p.visible }

// Toggle flips visibility.
func (p *ReceiptPanel) Toggle() { p.visible = !p.visible }

// View renders the receipt.
func (p *ReceiptPanel) View(r receipt.Receipt) string {
	if !p.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	b.WriteString(titleStyle.Render("Receipt"))
	b.WriteString("\n\n")

	if len(r.LineItems) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(colorSubtext0)
		b.WriteString(emptyStyle.Render("No billable selections"))
		b.WriteString("\n")
	} else {
		itemStyle := lipgloss.NewStyle().Foreground(colorText)
		costStyle := lipgloss.NewStyle().Foreground(colorGreen)
		for _, item := range r.LineItems {
			label := item.Label
			maxLabel := p.width - 10
			if maxLabel > 3 && len(label) > maxLabel {
				label = label[:maxLabel-3] + "..."
			}
			b.WriteString(itemStyle.Render(label))
			b.WriteString(costStyle.Render(fmt.Sprintf("  $%.2f", item.Cost)))
			b.WriteString("\n")
		}
	}

	sepStyle := lipgloss.NewStyle().Foreground(colorSurface2)
	b.WriteString(sepStyle.Render(strings.Repeat("─", max(p.width-4, 8))))
	b.WriteString("\n")

	totalStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	b.WriteString(totalStyle.Render(fmt.Sprintf("Total  $%.2f", r.Total)))

	panelStyle := lipgloss.NewStyle().
		Width(p.width).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSurface2)

	return panelStyle.Render(b.String())
}
