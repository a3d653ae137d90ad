// Package receipt derives the billable line-item list from the current
// selections. Compute is a pure function recomputed in full on every
// mutation; at this scale correctness beats caching.
package receipt

import (
	"github.com/ultrai/ultrai/internal/catalog"
	"github.com/ultrai/ultrai/internal/flow"
	"github.com/ultrai/ultrai/internal/models"
)

// SourceModels marks line items that come from the model selection rather
// than a catalog step.
const SourceModels = -1

// LineItem is one billable entry. Derived, never stored.
type LineItem struct {
	Label      string
	Cost       float64
	SourceStep int
}

// Receipt is the derived list of line items and their sum.
type Receipt struct {
	LineItems []LineItem
	Total     float64
}

// Compute resolves every selection against the catalog and the model cost
// table. Options without a cost field stay selected but contribute no line
// item; an explicit zero cost produces a zero line item. Model line items
// are the unit cost scaled by the configured token estimate (in thousands
// of tokens) — a heuristic, not metering.
func Compute(sel *flow.SelectionStore, cat *catalog.Catalog, chosen models.Selection, costTable map[string]float64, estTokensK float64) Receipt {
	var r Receipt

	for i := 0; i < cat.Len(); i++ {
		step := cat.Step(i)
		switch step.Kind {
		case catalog.KindSingleSelect:
			if idx, ok := sel.Single(i); ok && idx < len(step.Options) {
				r.appendOption(step.Options[idx], i)
			}
		case catalog.KindMultiSelect:
			for _, idx := range sel.Multi(i) {
				if idx < len(step.Options) {
					r.appendOption(step.Options[idx], i)
				}
			}
		}
	}

	for _, id := range chosen.IDs() {
		cost, ok := costTable[id]
		if !ok {
			continue
		}
		r.LineItems = append(r.LineItems, LineItem{
			Label:      id,
			Cost:       cost * estTokensK,
			SourceStep: SourceModels,
		})
	}

	for _, item := range r.LineItems {
		r.Total += item.Cost
	}
	return r
}

func (r *Receipt) appendOption(opt catalog.OptionDefinition, step int) {
	if opt.Cost == nil {
		return
	}
	r.LineItems = append(r.LineItems, LineItem{
		Label:      opt.Label,
		Cost:       *opt.Cost,
		SourceStep: step,
	})
}
