package wizard

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/ultrai/ultrai/internal/tui/testfixtures"
)

func sizedApp(t *testing.T) *App {
	t.Helper()
	app := testApp(t)
	app.Update(tea.WindowSizeMsg{Width: testfixtures.TestTermWidth, Height: testfixtures.TestTermHeight})
	return app
}

func TestRenderScreen_ConfiguringShowsStepFrame(t *testing.T) {
	app := sizedApp(t)

	screen := testfixtures.RenderToScreen(t, app.renderScreen())
	assert.True(t, testfixtures.Contains(screen, "Step 1 of 5: Welcome"))
	assert.True(t, testfixtures.Contains(screen, "Receipt"), "receipt panel shown by default")
	assert.True(t, testfixtures.Contains(screen, "Total  $0.00"))
}

func TestRenderScreen_ReceiptPanelToggle(t *testing.T) {
	app := sizedApp(t)

	app.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	screen := testfixtures.RenderToScreen(t, app.renderScreen())
	assert.False(t, testfixtures.Contains(screen, "Receipt"))

	app.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	screen = testfixtures.RenderToScreen(t, app.renderScreen())
	assert.True(t, testfixtures.Contains(screen, "Receipt"))
}

func TestRenderScreen_SubmittingShowsProgress(t *testing.T) {
	app := sizedApp(t)
	submitTestRun(t, app)

	screen := testfixtures.RenderToScreen(t, app.renderScreen())
	assert.True(t, testfixtures.Contains(screen, "UltrAI - Analyzing"))
	assert.True(t, testfixtures.Contains(screen, "Initial responses"))
	assert.True(t, testfixtures.Contains(screen, "Cross review"))
	assert.True(t, testfixtures.Contains(screen, "Synthesis"))
}

func TestRenderScreen_TitlesCostedAddOns(t *testing.T) {
	app := sizedApp(t)

	// Walk to the add-ons step and pick the first costed option.
	app.Update(AdvanceMsg{})
	app.Update(AdvanceMsg{})
	app.store.ToggleOption(2, 0)
	app.Update(SelectionChangedMsg{})

	screen := testfixtures.RenderToScreen(t, app.renderScreen())
	assert.True(t, testfixtures.Contains(screen, "Step 3 of 5: Add-ons"))
	assert.True(t, testfixtures.Contains(screen, "Total  $0.05"))
}
