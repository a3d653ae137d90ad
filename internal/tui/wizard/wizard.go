package wizard

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/ultrai/ultrai/internal/backend"
	"github.com/ultrai/ultrai/internal/catalog"
	"github.com/ultrai/ultrai/internal/config"
	"github.com/ultrai/ultrai/internal/flow"
	"github.com/ultrai/ultrai/internal/history"
	"github.com/ultrai/ultrai/internal/logger"
	"github.com/ultrai/ultrai/internal/models"
	"github.com/ultrai/ultrai/internal/progress"
	"github.com/ultrai/ultrai/internal/receipt"
	"github.com/ultrai/ultrai/internal/state"
	"github.com/ultrai/ultrai/internal/tui"
)

// Modal layout constants
const (
	modalWidth        = 70
	modalPadding      = 2
	modalBorderWidth  = 1
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2)

	// refreshInterval drives the progress display repaint during submission.
	refreshInterval = 100 * time.Millisecond
)

// stepComponent is the contract every step screen implements.
type stepComponent interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
}

// App is the top-level BubbleTea model for the analysis wizard. It owns the
// step state machine, the selection store, the derived receipt, and the
// submission lifecycle.
type App struct {
	cfg     *config.Config
	cat     *catalog.Catalog
	status  []catalog.StatusStep
	client  *backend.Client
	journal *history.Journal // may be nil when the journal failed to open
	ui      *state.UIState

	machine *flow.Machine
	store   *flow.SelectionStore
	chosen  models.Selection
	rec     receipt.Receipt

	// Step components, created lazily and cached so revisiting a step
	// keeps its cursor position.
	steps     map[int]stepComponent
	modelStep *ModelStep

	buttonBar     *ButtonBar
	buttonFocused bool

	receiptPanel *ReceiptPanel

	// Submission lifecycle
	sim        *progress.Simulator
	progView   *ProgressView
	resultView *ResultView
	response   *backend.AnalyzeResponse
	runErr     error

	width     int
	height    int
	cancelled bool
}

// New creates the wizard App.
func New(cfg *config.Config, cat *catalog.Catalog, status []catalog.StatusStep, client *backend.Client, journal *history.Journal, ui *state.UIState) *App {
	return &App{
		cfg:          cfg,
		cat:          cat,
		status:       status,
		client:       client,
		journal:      journal,
		ui:           ui,
		machine:      flow.NewMachine(cat.Len(), cfg.MinModels),
		store:        flow.NewSelectionStore(),
		chosen:       models.NewSelection(),
		steps:        make(map[int]stepComponent),
		receiptPanel: NewReceiptPanel(ui.Receipt.Visible),
	}
}

// Run is the entry point for the wizard. It runs the program to completion
// and persists UI preferences on the way out.
func Run(cfg *config.Config, cat *catalog.Catalog, status []catalog.StatusStep, client *backend.Client, journal *history.Journal, ui *state.UIState) error {
	app := New(cfg, cat, status, client, journal, ui)

	p := tea.NewProgram(app)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	final, ok := finalModel.(*App)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}

	ui.Receipt.Visible = final.receiptPanel.Visible()
	if err := state.Save(cfg.DataDir, ui); err != nil {
		logger.Warn("Failed to save UI state: %v", err)
	}

	if final.cancelled {
		return fmt.Errorf("wizard cancelled by user")
	}
	return nil
}

// Init initializes the wizard.
func (a *App) Init() tea.Cmd {
	return a.initStep(a.machine.Current())
}

// initStep creates (or reuses) the component for step i and returns its
// init command.
func (a *App) initStep(i int) tea.Cmd {
	if comp, ok := a.steps[i]; ok {
		comp.SetSize(a.contentSize())
		return nil
	}

	def := a.cat.Step(i)
	var comp stepComponent
	switch def.Kind {
	case catalog.KindIntro:
		comp = NewIntroStep(def)
	case catalog.KindSingleSelect, catalog.KindMultiSelect:
		comp = NewOptionStep(def, i, a.store)
	case catalog.KindFreeText:
		comp = NewTextStep(def, i, a.store)
	case catalog.KindCustom:
		ms := NewModelStep(a.client, a.chosen, a.cfg.MinModels)
		a.modelStep = ms
		comp = ms
	default:
		comp = NewIntroStep(def)
	}

	a.steps[i] = comp
	comp.SetSize(a.contentSize())
	return comp.Init()
}

// currentStep returns the active step component, nil before Init.
func (a *App) currentStep() stepComponent {
	return a.steps[a.machine.Current()]
}

// Update handles messages for the wizard.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case AdvanceMsg:
		return a, a.advance()

	case RetreatMsg:
		a.machine.Retreat()
		return a, a.initStep(a.machine.Current())

	case SelectionChangedMsg:
		a.recomputeReceipt()
		return a, nil

	case SubmitMsg:
		return a, a.submit()

	case SimTickMsg:
		if a.machine.Phase() != flow.Submitting {
			return a, nil
		}
		if a.progView != nil {
			a.progView.SetNow(msg.At)
		}
		return a, tickCmd()

	case SimAdvanceMsg:
		if a.machine.Phase() != flow.Submitting || a.sim == nil {
			return a, nil
		}
		a.sim.Advance(msg.At)
		return a, a.advanceTimerCmd()

	case tui.GradientSpinnerMsg:
		if a.machine.Phase() != flow.Submitting || a.progView == nil {
			return a, nil
		}
		return a, a.progView.Update(msg)

	case AnalyzeCompleteMsg:
		return a, a.finishRun(msg.Response)

	case AnalyzeErrorMsg:
		return a, a.failRun(msg.Err)

	case ResetMsg:
		a.reset()
		return a, a.initStep(0)
	}

	// Forward everything else to the active screen.
	switch a.machine.Phase() {
	case flow.Completed:
		if a.resultView != nil {
			return a, a.resultView.Update(msg)
		}
	case flow.Configuring:
		if comp := a.currentStep(); comp != nil {
			return a, comp.Update(msg)
		}
	}
	return a, nil
}

// handleKey processes global keybindings. Returns handled=false when the
// key should flow through to the active step component.
func (a *App) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		a.cancelled = true
		return tea.Quit, true
	}

	switch a.machine.Phase() {
	case flow.Submitting:
		// Navigation is frozen while the call is in flight.
		return nil, true

	case flow.Completed, flow.Errored:
		switch key {
		case "r":
			return func() tea.Msg { return ResetMsg{} }, true
		case "q", "esc":
			return tea.Quit, true
		}
		return nil, false
	}

	// Configuring
	freeText := a.cat.Step(a.machine.Current()).Kind == catalog.KindFreeText

	switch key {
	case "esc":
		if a.buttonFocused {
			a.blurButtons()
			return nil, true
		}
		if a.machine.Current() == 0 {
			a.cancelled = true
			return tea.Quit, true
		}
		return func() tea.Msg { return RetreatMsg{} }, true

	case "ctrl+r":
		a.receiptPanel.Toggle()
		return nil, true

	case "right", "shift+right":
		// Plain right stays with the textarea on free-text steps.
		if key == "right" && (freeText || a.buttonFocused) {
			break
		}
		return func() tea.Msg { return AdvanceMsg{} }, true

	case "left", "shift+left":
		if key == "left" && (freeText || a.buttonFocused) {
			break
		}
		return func() tea.Msg { return RetreatMsg{} }, true

	case "tab":
		if !a.buttonFocused {
			a.focusButtons(true)
			return nil, true
		}
		if !a.buttonBar.FocusNext() {
			a.blurButtons()
		}
		return nil, true

	case "shift+tab":
		if !a.buttonFocused {
			a.focusButtons(false)
			return nil, true
		}
		if !a.buttonBar.FocusPrev() {
			a.blurButtons()
		}
		return nil, true

	case "enter", " ":
		if a.buttonFocused && a.buttonBar != nil {
			switch a.buttonBar.FocusedButton() {
			case ButtonBack:
				a.blurButtons()
				return func() tea.Msg { return RetreatMsg{} }, true
			case ButtonNext:
				a.blurButtons()
				return func() tea.Msg { return AdvanceMsg{} }, true
			}
		}
	}

	return nil, false
}

// advance moves forward, or submits from the last step.
func (a *App) advance() tea.Cmd {
	if a.machine.OnLastStep() {
		return func() tea.Msg { return SubmitMsg{} }
	}
	a.machine.Advance()
	return a.initStep(a.machine.Current())
}

// submit runs the two-stage gate and, when it passes, starts the simulator
// and the real backend call side by side.
func (a *App) submit() tea.Cmd {
	if a.modelStep != nil {
		if err := a.modelStep.Validate(); err != nil {
			logger.Debug("Submission blocked: %v", err)
			return nil
		}
	}
	if err := a.machine.Submit(a.chosen); err != nil {
		logger.Debug("Submission blocked: %v", err)
		return nil
	}

	now := time.Now()
	a.sim = progress.New(progress.DefaultStages(), newSimRand())
	a.sim.Start(now)
	a.progView = NewProgressView(a.sim, a.status)
	a.progView.SetNow(now)
	a.progView.SetSize(a.contentSize())

	return tea.Batch(a.analyzeCmd(), tickCmd(), a.advanceTimerCmd(), a.progView.Tick())
}

// analyzeCmd issues the real backend call. No timeout: the simulator's ETA
// is advisory and the call runs until the backend resolves or rejects.
func (a *App) analyzeCmd() tea.Cmd {
	req := backend.AnalyzeRequest{
		Prompt:       a.promptText(),
		Models:       a.chosen.IDs(),
		Pattern:      a.cfg.Pattern,
		OutputFormat: a.cfg.OutputFormat,
	}
	client := a.client
	return func() tea.Msg {
		resp, err := client.Analyze(context.Background(), req)
		if err != nil {
			return AnalyzeErrorMsg{Err: err}
		}
		return AnalyzeCompleteMsg{Response: resp}
	}
}

// promptText collects the free-text step content as the analysis prompt,
// preferring the live component's trimmed value.
func (a *App) promptText() string {
	for i := 0; i < a.cat.Len(); i++ {
		if a.cat.Step(i).Kind != catalog.KindFreeText {
			continue
		}
		if ts, ok := a.steps[i].(*TextStep); ok {
			return ts.Value()
		}
		return strings.TrimSpace(a.store.Text(i))
	}
	return ""
}

// finishRun handles the successful completion of the backend call.
func (a *App) finishRun(resp *backend.AnalyzeResponse) tea.Cmd {
	a.machine.Complete()
	if a.sim != nil {
		a.sim.ForceComplete()
	}
	a.response = resp
	a.resultView = NewResultView(resp)
	a.resultView.SetSize(a.contentSize())
	return a.recordRunCmd(resp, nil)
}

// failRun freezes the progress view at the failing stage.
func (a *App) failRun(err error) tea.Cmd {
	logger.Error("Analysis failed: %v", err)
	a.machine.Fail()
	a.runErr = err
	now := time.Now()
	if a.sim != nil {
		a.sim.Fail(now)
	}
	if a.progView != nil {
		a.progView.SetNow(now)
		a.progView.SetError(err)
	}
	return a.recordRunCmd(nil, err)
}

// recordRunCmd appends the run to the journal, when one is open.
func (a *App) recordRunCmd(resp *backend.AnalyzeResponse, runErr error) tea.Cmd {
	if a.journal == nil {
		return nil
	}

	run := history.Run{
		Prompt:        a.promptText(),
		Models:        a.chosen.IDs(),
		Pattern:       a.cfg.Pattern,
		OutputFormat:  a.cfg.OutputFormat,
		EstimatedCost: a.rec.Total,
	}
	if resp != nil {
		run.ProcessingTime = resp.ProcessingTime
	}
	if runErr != nil {
		run.Errored = true
		run.ErrorMessage = runErr.Error()
	}

	journal := a.journal
	return func() tea.Msg {
		if _, err := journal.Record(context.Background(), run); err != nil {
			logger.Warn("Failed to record run: %v", err)
		}
		return nil
	}
}

// reset discards the finished or failed run and returns to the first step.
// The simulator is discarded, never rewound; an in-flight HTTP call (there
// is none after completion or failure) would keep running detached.
func (a *App) reset() {
	a.machine.Reset()
	a.store.Reset()
	for id := range a.chosen {
		delete(a.chosen, id)
	}
	a.steps = make(map[int]stepComponent)
	a.modelStep = nil
	a.sim = nil
	a.progView = nil
	a.resultView = nil
	a.response = nil
	a.runErr = nil
	a.blurButtons()
	a.recomputeReceipt()
}

// recomputeReceipt rebuilds the receipt from scratch after any mutation.
func (a *App) recomputeReceipt() {
	var costTable map[string]float64
	if a.modelStep != nil && a.modelStep.Catalog() != nil {
		costTable = a.modelStep.Catalog().CostTable()
	}
	a.rec = receipt.Compute(a.store, a.cat, a.chosen, costTable, a.cfg.EstTokensK)
}

// focusButtons moves focus onto the button bar.
func (a *App) focusButtons(first bool) {
	a.ensureButtonBar()
	a.buttonFocused = true
	if blurrable, ok := a.currentStep().(interface{ Blur() }); ok {
		blurrable.Blur()
	}
	if first {
		a.buttonBar.FocusFirst()
	} else {
		a.buttonBar.FocusLast()
	}
}

// blurButtons returns focus to the step content.
func (a *App) blurButtons() {
	a.buttonFocused = false
	if a.buttonBar != nil {
		a.buttonBar.Blur()
	}
	if comp := a.currentStep(); comp != nil {
		if focusable, ok := comp.(interface{ Focus() }); ok {
			focusable.Focus()
		}
	}
}

// ensureButtonBar rebuilds the button bar for the current step.
func (a *App) ensureButtonBar() {
	nextLabel := "Next →"
	if a.machine.OnLastStep() {
		nextLabel = "Submit"
	}
	a.buttonBar = NewButtonBar(CreateBackNextButtons(a.machine.Current() > 0, true, nextLabel))
	a.buttonBar.SetWidth(modalContentWidth)
}

// newSimRand seeds the simulator's jitter source.
func newSimRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// tickCmd schedules the next progress repaint.
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return SimTickMsg{At: t}
	})
}

// advanceTimerCmd schedules the next jittered stage advancement.
func (a *App) advanceTimerCmd() tea.Cmd {
	return tea.Tick(a.sim.NextAdvanceIn(), func(t time.Time) tea.Msg {
		return SimAdvanceMsg{At: t}
	})
}

// contentSize returns the internal content dimensions for the modal.
func (a *App) contentSize() (width, height int) {
	width = modalContentWidth

	height = a.height - 4
	if height < 20 {
		height = 20
	}
	if height > 40 {
		height = 40
	}
	height -= 10
	if height < 10 {
		height = 10
	}
	return width, height
}

// resize propagates the new terminal size to every live component.
func (a *App) resize() {
	w, h := a.contentSize()
	for _, comp := range a.steps {
		comp.SetSize(w, h)
	}
	if a.progView != nil {
		a.progView.SetSize(w, h)
	}
	if a.resultView != nil {
		a.resultView.SetSize(w, h)
	}
}

// View renders the wizard.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.width == 0 || a.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := a.renderScreen()

	centered := lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	canvas := uv.NewScreenBuffer(a.width, a.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: a.width, Y: a.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderScreen renders the active screen inside the modal frame.
func (a *App) renderScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		MarginBottom(1)

	var title, body string
	switch a.machine.Phase() {
	case flow.Submitting, flow.Errored:
		title = "UltrAI - Analyzing"
		if a.machine.Phase() == flow.Errored {
			title = "UltrAI - Failed"
		}
		if a.progView != nil {
			body = a.progView.View()
		}
	case flow.Completed:
		title = "UltrAI - Result"
		if a.resultView != nil {
			body = a.resultView.View()
		}
	default:
		step := a.cat.Step(a.machine.Current())
		title = fmt.Sprintf("UltrAI - Step %d of %d: %s", a.machine.Current()+1, a.cat.Len(), step.Title)
		if comp := a.currentStep(); comp != nil {
			body = comp.View()
		}
	}

	parts := []string{titleStyle.Render(title), body}

	if a.machine.Phase() == flow.Configuring {
		a.ensureButtonBarPreservingFocus()
		parts = append(parts, "", a.buttonBar.Render())

		hintStyle := lipgloss.NewStyle().Foreground(colorSubtext0)
		parts = append(parts, "", hintStyle.Render("tab buttons • ctrl+r receipt • esc back"))
	}

	modal := lipgloss.NewStyle().
		Width(modalWidth).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSurface2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	// Receipt panel rides alongside during configuration.
	if a.machine.Phase() == flow.Configuring && a.receiptPanel.Visible() {
		return lipgloss.JoinHorizontal(lipgloss.Top, modal, " ", a.receiptPanel.View(a.rec))
	}
	return modal
}

// ensureButtonBarPreservingFocus keeps the focused bar across repaints and
// rebuilds it only while unfocused.
func (a *App) ensureButtonBarPreservingFocus() {
	if a.buttonFocused && a.buttonBar != nil {
		return
	}
	a.ensureButtonBar()
}
