package wizard

import (
	"time"

	"github.com/ultrai/ultrai/internal/backend"
	"github.com/ultrai/ultrai/internal/models"
)

// AdvanceMsg requests a move to the next step.
type AdvanceMsg struct{}

// RetreatMsg requests a move to the previous step.
type RetreatMsg struct{}

// SelectionChangedMsg is sent when any selection mutates, so the receipt
// gets recomputed.
type SelectionChangedMsg struct{}

// TextEditedMsg carries free-text content back from the external editor.
type TextEditedMsg struct {
	StepIndex int
	Content   string
}

// ModelsLoadedMsg is sent when the model catalog fetch resolves.
type ModelsLoadedMsg struct {
	Models []models.Model
}

// ModelsErrorMsg is sent when the model catalog fetch fails.
type ModelsErrorMsg struct {
	Err error
}

// SubmitMsg requests submission of the configured run.
type SubmitMsg struct{}

// AnalyzeCompleteMsg is sent when the backend call resolves.
type AnalyzeCompleteMsg struct {
	Response *backend.AnalyzeResponse
}

// AnalyzeErrorMsg is sent when the backend call rejects.
type AnalyzeErrorMsg struct {
	Err error
}

// SimTickMsg refreshes the progress display.
type SimTickMsg struct {
	At time.Time
}

// SimAdvanceMsg fires when the jittered stage advancement timer elapses.
type SimAdvanceMsg struct {
	At time.Time
}

// ResetMsg discards the finished or failed run and returns to the first step.
type ResetMsg struct{}
