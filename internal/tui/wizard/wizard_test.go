package wizard

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultrai/ultrai/internal/backend"
	"github.com/ultrai/ultrai/internal/catalog"
	"github.com/ultrai/ultrai/internal/config"
	"github.com/ultrai/ultrai/internal/flow"
	"github.com/ultrai/ultrai/internal/models"
	"github.com/ultrai/ultrai/internal/state"
	"github.com/ultrai/ultrai/internal/tui"
)

func testApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{
		Pattern:      "gut",
		OutputFormat: "txt",
		MinModels:    2,
		EstTokensK:   10,
	}

	app := New(
		cfg,
		catalog.Default(),
		catalog.DefaultStatusSteps(),
		backend.New("http://localhost:0"),
		nil,
		state.DefaultUIState(),
	)
	app.Init()
	return app
}

// drain runs any command returned by Update so follow-up messages produced
// by key handlers reach the model. Commands that would block (HTTP calls,
// ticks) are not executed by tests that use this helper.
func drain(t *testing.T, app *App, msg tea.Msg) {
	t.Helper()
	_, cmd := app.Update(msg)
	for cmd != nil {
		out := cmd()
		if out == nil {
			return
		}
		switch out.(type) {
		case AdvanceMsg, RetreatMsg, SelectionChangedMsg, ResetMsg:
			_, cmd = app.Update(out)
		default:
			return
		}
	}
}

func TestApp_AdvanceAndRetreatClamped(t *testing.T) {
	app := testApp(t)
	last := app.cat.Len() - 1

	require.Equal(t, 0, app.machine.Current())

	// Retreat on the first step is a no-op.
	drain(t, app, RetreatMsg{})
	assert.Equal(t, 0, app.machine.Current())

	for i := 0; i < last; i++ {
		app.Update(AdvanceMsg{})
	}
	assert.Equal(t, last, app.machine.Current())

	// Advancing on the last step attempts submission instead of moving.
	app.Update(SubmitMsg{})
	assert.Equal(t, last, app.machine.Current())
	assert.Equal(t, flow.Configuring, app.machine.Phase(), "empty selection cannot submit")
}

func TestApp_BackwardNavigationPreservesSelections(t *testing.T) {
	app := testApp(t)

	// Step 1 of the default catalog is a single-select.
	app.Update(AdvanceMsg{})
	app.store.SetSingle(1, 0)
	drain(t, app, SelectionChangedMsg{})

	drain(t, app, RetreatMsg{})
	app.Update(AdvanceMsg{})

	idx, ok := app.store.Single(1)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestApp_SubmitGateBlocksBelowMinimum(t *testing.T) {
	app := testApp(t)

	for !app.machine.OnLastStep() {
		app.Update(AdvanceMsg{})
	}
	require.NotNil(t, app.modelStep, "last step is the model gate")

	app.modelStep.Update(ModelsLoadedMsg{Models: []models.Model{
		{ID: "model-x", Provider: "openai", CostPer1K: 0.015},
		{ID: "model-y", Provider: "google", CostPer1K: 0.001},
	}})

	app.chosen.Toggle("model-x")
	app.Update(SubmitMsg{})
	assert.Equal(t, flow.Configuring, app.machine.Phase(), "one model is below the minimum")

	app.chosen.Toggle("model-y")
	app.Update(SubmitMsg{})
	assert.Equal(t, flow.Submitting, app.machine.Phase())
}

func TestApp_NavigationFrozenWhileSubmitting(t *testing.T) {
	app := testApp(t)
	submitTestRun(t, app)
	require.Equal(t, flow.Submitting, app.machine.Phase())

	before := app.machine.Current()
	cmd, handled := app.handleKey(tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.Equal(t, before, app.machine.Current())
}

func TestApp_ErrorFreezesAndResetRecovers(t *testing.T) {
	app := testApp(t)
	submitTestRun(t, app)

	app.Update(AnalyzeErrorMsg{Err: &backend.APIError{Status: 502, Message: "analysis failed", Details: "provider quota exceeded"}})
	assert.Equal(t, flow.Errored, app.machine.Phase())
	assert.True(t, app.sim.Errored())

	view := app.progView.View()
	assert.Contains(t, view, "analysis failed")
	assert.Contains(t, view, "provider quota exceeded", "structured details render verbatim")

	app.Update(ResetMsg{})
	assert.Equal(t, flow.Configuring, app.machine.Phase())
	assert.Equal(t, 0, app.machine.Current())
	assert.Zero(t, app.chosen.Count())
	assert.Empty(t, app.rec.LineItems)
	assert.Nil(t, app.sim, "simulator is discarded, never rewound")
}

func TestApp_CompleteShowsResult(t *testing.T) {
	app := testApp(t)
	submitTestRun(t, app)

	app.Update(AnalyzeCompleteMsg{Response: &backend.AnalyzeResponse{
		UltraResponse:  "# Done",
		ModelsUsed:     []string{"model-x", "model-y"},
		ProcessingTime: 9.5,
		PatternUsed:    "gut",
	}})

	assert.Equal(t, flow.Completed, app.machine.Phase())
	assert.True(t, app.sim.Completed())
	require.NotNil(t, app.resultView)
	assert.Contains(t, app.resultView.View(), "2 models")
}

func TestApp_ReceiptRecomputedOnSelectionChange(t *testing.T) {
	app := testApp(t)

	// Step 2 of the default catalog is the multi-select with costed add-ons.
	app.Update(AdvanceMsg{})
	app.Update(AdvanceMsg{})
	app.store.ToggleOption(2, 0)
	drain(t, app, SelectionChangedMsg{})

	require.Len(t, app.rec.LineItems, 1)
	assert.InDelta(t, 0.05, app.rec.Total, 1e-9)

	app.store.ToggleOption(2, 0)
	drain(t, app, SelectionChangedMsg{})
	assert.Empty(t, app.rec.LineItems)
}

func TestApp_ProgressSpinnerTicksOnlyWhileSubmitting(t *testing.T) {
	app := testApp(t)

	_, cmd := app.Update(tui.GradientSpinnerMsg{})
	assert.Nil(t, cmd, "no spinner before submission")

	submitTestRun(t, app)
	_, cmd = app.Update(tui.GradientSpinnerMsg{})
	assert.NotNil(t, cmd, "spinner animates while the call is in flight")

	app.Update(AnalyzeCompleteMsg{Response: &backend.AnalyzeResponse{UltraResponse: "ok"}})
	_, cmd = app.Update(tui.GradientSpinnerMsg{})
	assert.Nil(t, cmd, "spinner stops once the run resolves")
}

func TestApp_PromptTextTrimmed(t *testing.T) {
	app := testApp(t)
	app.store.SetText(3, "  what should I build?\n\n")

	assert.Equal(t, "what should I build?", app.promptText(), "store fallback trims")

	for i := 0; i < 3; i++ {
		app.Update(AdvanceMsg{})
	}
	assert.Equal(t, "what should I build?", app.promptText(), "live component value trims")
}

// submitTestRun walks the app to the last step, loads two models, and
// submits.
func submitTestRun(t *testing.T, app *App) {
	t.Helper()

	for !app.machine.OnLastStep() {
		app.Update(AdvanceMsg{})
	}
	require.NotNil(t, app.modelStep)

	app.modelStep.Update(ModelsLoadedMsg{Models: []models.Model{
		{ID: "model-x", Provider: "openai", CostPer1K: 0.015},
		{ID: "model-y", Provider: "google", CostPer1K: 0.001},
	}})
	app.chosen.Toggle("model-x")
	app.chosen.Toggle("model-y")
	app.Update(SubmitMsg{})
}
