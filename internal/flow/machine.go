// Package flow implements the wizard's step state machine and selection
// store. The machine tolerates free backward navigation while preventing
// skip-ahead: a step becomes reachable only after every step before it has
// been visited, so each jump is bounded by current+1.
package flow

import (
	"fmt"

	"github.com/ultrai/ultrai/internal/logger"
	"github.com/ultrai/ultrai/internal/models"
)

// Phase is the submission lifecycle of a wizard session.
type Phase int

const (
	// Configuring covers the whole step flow up to and including the
	// ready-to-submit position on the last step.
	Configuring Phase = iota
	Submitting
	Completed
	Errored
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Configuring:
		return "configuring"
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Machine tracks the current step index and validates transitions.
type Machine struct {
	steps     int
	current   int
	phase     Phase
	minModels int
}

// NewMachine creates a machine over a catalog of n steps.
func NewMachine(steps, minModels int) *Machine {
	return &Machine{steps: steps, minModels: minModels}
}

// Current returns the current step index.
func (m *Machine) Current() int { return m.current }

// Phase returns the submission phase.
func (m *Machine) Phase() Phase { return m.phase }

// Steps returns the number of steps.
func (m *Machine) Steps() int { return m.steps }

// OnLastStep reports whether the machine sits on the final configuration
// step.
func (m *Machine) OnLastStep() bool { return m.current == m.steps-1 }

// GoToStep jumps to the given index. Forward jumps beyond current+1 and any
// navigation while submitting are silently ignored: disabling navigation is
// a UI-level soft constraint, not a hard error.
func (m *Machine) GoToStep(i int) bool {
	if m.phase != Configuring {
		return false
	}
	if i < 0 || i >= m.steps || i > m.current+1 {
		return false
	}
	m.current = i
	return true
}

// Advance moves forward one step, clamped to the last index.
func (m *Machine) Advance() {
	if m.phase != Configuring {
		return
	}
	if m.current < m.steps-1 {
		m.current++
	}
}

// Retreat moves back one step, clamped to zero. Prior selections stay
// recorded in the store.
func (m *Machine) Retreat() {
	if m.phase != Configuring {
		return
	}
	if m.current > 0 {
		m.current--
	}
}

// Submit transitions to Submitting. It fails without any state change
// unless the machine sits on the last step and the model-selection
// invariant holds. The selection gate already enforced the minimum; this is
// the second check.
func (m *Machine) Submit(selected models.Selection) error {
	if m.phase != Configuring {
		return fmt.Errorf("cannot submit while %s", m.phase)
	}
	if !m.OnLastStep() {
		return &models.ValidationError{Message: "finish all steps before submitting"}
	}
	if err := selected.Validate(m.minModels); err != nil {
		return err
	}

	logger.Debug("Wizard submitting with %d models", selected.Count())
	m.phase = Submitting
	return nil
}

// Complete marks the in-flight submission as finished.
func (m *Machine) Complete() {
	if m.phase == Submitting {
		m.phase = Completed
	}
}

// Fail marks the in-flight submission as errored.
func (m *Machine) Fail() {
	if m.phase == Submitting {
		m.phase = Errored
	}
}

// Reset returns to step zero in the Configuring phase. Callers discard the
// progress simulator and clear the selection store alongside this.
func (m *Machine) Reset() {
	m.current = 0
	m.phase = Configuring
}
