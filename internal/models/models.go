// Package models holds the selectable AI model catalog and the selection
// gate that guards submission.
package models

import (
	"fmt"
	"sort"
)

// Model is one selectable AI model with provider and unit cost metadata,
// sourced from the backend model catalog.
type Model struct {
	ID       string
	Provider string
	// CostPer1K is the unit price per 1k tokens in currency.
	CostPer1K float64
}

// Tier buckets models by unit cost for preset selection.
type Tier string

const (
	TierPremium Tier = "premium"
	TierSpeed   Tier = "speed"
	TierBudget  Tier = "budget"
)

// Cost thresholds for tier classification. The exact cut points follow the
// hosted pricing tiers rather than any metering contract.
const (
	premiumFloor = 0.010 // per 1k tokens
	budgetCeil   = 0.002
)

// TierOf classifies a model by unit cost.
func TierOf(m Model) Tier {
	switch {
	case m.CostPer1K >= premiumFloor:
		return TierPremium
	case m.CostPer1K <= budgetCeil:
		return TierBudget
	default:
		return TierSpeed
	}
}

// Catalog is the list of available models with a cost lookup.
type Catalog struct {
	Models []Model
	byID   map[string]Model
}

// NewCatalog builds a catalog from a model list, sorted by ID for stable
// rendering.
func NewCatalog(list []Model) *Catalog {
	sorted := make([]Model, len(list))
	copy(sorted, list)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[string]Model, len(sorted))
	for _, m := range sorted {
		byID[m.ID] = m
	}
	return &Catalog{Models: sorted, byID: byID}
}

// Lookup returns the model with the given ID.
func (c *Catalog) Lookup(id string) (Model, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// CostTable returns a per-1k-token unit cost map keyed by model ID.
func (c *Catalog) CostTable() map[string]float64 {
	table := make(map[string]float64, len(c.Models))
	for _, m := range c.Models {
		table[m.ID] = m.CostPer1K
	}
	return table
}

// TierModels returns the IDs of all catalog models in the given tier.
func (c *Catalog) TierModels(tier Tier) []string {
	var ids []string
	for _, m := range c.Models {
		if TierOf(m) == tier {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// Selection is the set of chosen model IDs.
type Selection map[string]struct{}

// NewSelection returns an empty selection.
func NewSelection() Selection { return make(Selection) }

// Toggle flips membership of a model ID. Manual toggling (custom mode)
// never clears the rest of the selection.
func (s Selection) Toggle(id string) {
	if _, ok := s[id]; ok {
		delete(s, id)
	} else {
		s[id] = struct{}{}
	}
}

// Has reports membership.
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Count returns the number of selected models.
func (s Selection) Count() int { return len(s) }

// IDs returns the selected model IDs in sorted order.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ApplyPreset replaces the selection wholesale with the tier's fixed model
// list. Switching back to custom afterwards keeps whatever the preset chose.
func (s Selection) ApplyPreset(tier Tier, c *Catalog) {
	for id := range s {
		delete(s, id)
	}
	for _, id := range c.TierModels(tier) {
		s[id] = struct{}{}
	}
}

// ValidationError is a user-facing gate failure. It blocks submission
// without transitioning any state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate enforces the minimum-selection invariant. Enforced here at the
// gate and again inside the wizard's Submit.
func (s Selection) Validate(min int) error {
	if s.Count() < min {
		return &ValidationError{
			Message: fmt.Sprintf("select at least %d models (%d selected)", min, s.Count()),
		}
	}
	return nil
}
