package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalog([]Model{
		{ID: "openai/gpt-4o", Provider: "openai", CostPer1K: 0.015},
		{ID: "anthropic/claude-sonnet", Provider: "anthropic", CostPer1K: 0.012},
		{ID: "openai/gpt-4o-mini", Provider: "openai", CostPer1K: 0.004},
		{ID: "google/gemini-flash", Provider: "google", CostPer1K: 0.001},
		{ID: "meta/llama-8b", Provider: "meta", CostPer1K: 0.0005},
	})
}

func TestTierOf(t *testing.T) {
	c := testCatalog()

	m, _ := c.Lookup("openai/gpt-4o")
	assert.Equal(t, TierPremium, TierOf(m))

	m, _ = c.Lookup("openai/gpt-4o-mini")
	assert.Equal(t, TierSpeed, TierOf(m))

	m, _ = c.Lookup("meta/llama-8b")
	assert.Equal(t, TierBudget, TierOf(m))
}

func TestApplyPreset_ReplacesWholesale(t *testing.T) {
	c := testCatalog()
	sel := NewSelection()

	// Manual picks first
	sel.Toggle("meta/llama-8b")
	sel.Toggle("openai/gpt-4o-mini")
	require.Equal(t, 2, sel.Count())

	// Preset replaces the whole selection, not merges
	sel.ApplyPreset(TierPremium, c)
	assert.ElementsMatch(t, []string{"anthropic/claude-sonnet", "openai/gpt-4o"}, sel.IDs())
	assert.False(t, sel.Has("meta/llama-8b"))
}

func TestToggle_CustomModePreservesSelection(t *testing.T) {
	c := testCatalog()
	sel := NewSelection()
	sel.ApplyPreset(TierBudget, c)
	before := sel.Count()

	// Switching to custom (manual toggle) adds without clearing
	sel.Toggle("openai/gpt-4o")
	assert.Equal(t, before+1, sel.Count())
	assert.True(t, sel.Has("google/gemini-flash"))

	// Toggling off removes only that one
	sel.Toggle("openai/gpt-4o")
	assert.Equal(t, before, sel.Count())
}

func TestValidate_MinimumSelection(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("openai/gpt-4o")

	err := sel.Validate(2)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "at least 2")

	sel.Toggle("anthropic/claude-sonnet")
	assert.NoError(t, sel.Validate(2))
}

func TestCostTable(t *testing.T) {
	c := testCatalog()
	table := c.CostTable()
	assert.Equal(t, 0.015, table["openai/gpt-4o"])
	assert.Len(t, table, 5)
}
