package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultrai/ultrai/internal/models"
)

func twoModels() models.Selection {
	sel := models.NewSelection()
	sel.Toggle("openai/gpt-4o")
	sel.Toggle("anthropic/claude-sonnet")
	return sel
}

func TestGoToStep_NeverSkipsAhead(t *testing.T) {
	m := NewMachine(5, 2)

	// From step 0, only 0 and 1 are reachable.
	assert.False(t, m.GoToStep(2))
	assert.Equal(t, 0, m.Current())

	assert.True(t, m.GoToStep(1))
	assert.Equal(t, 1, m.Current())

	// current+1 is always the outer bound.
	assert.False(t, m.GoToStep(3))
	assert.True(t, m.GoToStep(2))

	// Backward jumps are free.
	assert.True(t, m.GoToStep(0))
	assert.Equal(t, 0, m.Current())

	// Out-of-range indices are ignored.
	assert.False(t, m.GoToStep(-1))
	assert.False(t, m.GoToStep(5))
}

func TestAdvanceRetreat_Clamped(t *testing.T) {
	m := NewMachine(3, 2)

	m.Retreat()
	assert.Equal(t, 0, m.Current())

	m.Advance()
	m.Advance()
	assert.Equal(t, 2, m.Current())

	m.Advance()
	assert.Equal(t, 2, m.Current(), "advance clamps at last step")
}

func TestBackwardNavigationPreservesSelections(t *testing.T) {
	m := NewMachine(4, 2)
	store := NewSelectionStore()

	m.Advance()
	store.SetSingle(1, 2)
	m.Advance()
	store.ToggleOption(2, 0)
	store.ToggleOption(2, 3)

	// Walk all the way back, then forward again.
	m.Retreat()
	m.Retreat()
	m.Retreat()
	require.Equal(t, 0, m.Current())
	m.Advance()
	m.Advance()

	got, ok := store.Single(1)
	require.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, []int{0, 3}, store.Multi(2))
}

func TestSubmit_GateAndTransitions(t *testing.T) {
	m := NewMachine(3, 2)

	// Not on the last step: blocked, no transition.
	err := m.Submit(twoModels())
	require.Error(t, err)
	assert.Equal(t, Configuring, m.Phase())

	m.Advance()
	m.Advance()
	require.True(t, m.OnLastStep())

	// Too few models: validation failure, no transition.
	one := models.NewSelection()
	one.Toggle("openai/gpt-4o")
	err = m.Submit(one)
	require.Error(t, err)
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, Configuring, m.Phase())
	assert.Equal(t, 2, m.Current(), "wizard stays on the same step")

	// Valid submission transitions to Submitting.
	require.NoError(t, m.Submit(twoModels()))
	assert.Equal(t, Submitting, m.Phase())

	// Navigation is frozen while submitting.
	m.Retreat()
	m.Advance()
	assert.False(t, m.GoToStep(0))
	assert.Equal(t, 2, m.Current())

	// Double submit is rejected.
	assert.Error(t, m.Submit(twoModels()))
}

func TestTerminalPhasesAndReset(t *testing.T) {
	m := NewMachine(2, 2)
	m.Advance()
	require.NoError(t, m.Submit(twoModels()))

	m.Complete()
	assert.Equal(t, Completed, m.Phase())

	// Terminal phase only exits via Reset.
	assert.Error(t, m.Submit(twoModels()))
	m.Reset()
	assert.Equal(t, 0, m.Current())
	assert.Equal(t, Configuring, m.Phase())

	// Errored behaves the same way.
	m.Advance()
	require.NoError(t, m.Submit(twoModels()))
	m.Fail()
	assert.Equal(t, Errored, m.Phase())
	m.Reset()
	assert.Equal(t, Configuring, m.Phase())
}

func TestSelectionStore_Reset(t *testing.T) {
	store := NewSelectionStore()
	store.SetText(3, "compare the two proposals")
	store.ToggleOption(2, 1)
	store.SetSingle(1, 0)

	store.Reset()

	assert.Empty(t, store.Text(3))
	assert.Empty(t, store.Multi(2))
	_, ok := store.Single(1)
	assert.False(t, ok)
}

func TestSelectionStore_ToggleSemantics(t *testing.T) {
	store := NewSelectionStore()
	store.ToggleOption(0, 1)
	assert.True(t, store.HasOption(0, 1))
	store.ToggleOption(0, 1)
	assert.False(t, store.HasOption(0, 1))
	assert.Empty(t, store.Multi(0))
}
