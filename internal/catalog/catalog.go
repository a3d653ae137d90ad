// Package catalog defines the wizard step catalog: an ordered, immutable
// list of step definitions loaded once at startup.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ultrai/ultrai/internal/logger"
)

// StepKind discriminates the step definition union. Each kind carries
// exactly the fields it needs; validation rejects mismatched shapes so
// rendering code never probes for optional fields.
type StepKind string

const (
	KindIntro        StepKind = "intro"
	KindSingleSelect StepKind = "single-select"
	KindMultiSelect  StepKind = "multi-select"
	KindFreeText     StepKind = "free-text"
	KindCustom       StepKind = "custom"
)

// OptionDefinition is one selectable option within a select step.
// A nil Cost means the option is free/decorative and produces no receipt
// line item; a zero Cost is "explicitly free" and still produces one.
type OptionDefinition struct {
	Label       string   `json:"label"`
	Cost        *float64 `json:"cost,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Description string   `json:"description,omitempty"`
}

// StepDefinition is one wizard step. Immutable after load.
type StepDefinition struct {
	Title     string             `json:"title"`
	Kind      StepKind           `json:"kind"`
	Narrative string             `json:"narrative,omitempty"`
	Options   []OptionDefinition `json:"options,omitempty"`
}

// Selectable reports whether the step kind carries options.
func (s StepDefinition) Selectable() bool {
	return s.Kind == KindSingleSelect || s.Kind == KindMultiSelect
}

// Catalog is the ordered list of wizard steps.
type Catalog struct {
	Steps []StepDefinition
}

// Len returns the number of steps.
func (c *Catalog) Len() int { return len(c.Steps) }

// Step returns the step at index i. Panics on out-of-range access the same
// way a slice would; callers index only via the state machine's position.
func (c *Catalog) Step(i int) StepDefinition { return c.Steps[i] }

// Parse decodes and validates a JSON array of step definitions.
func Parse(data []byte) (*Catalog, error) {
	var steps []StepDefinition
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parsing step catalog: %w", err)
	}

	c := &Catalog{Steps: steps}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a step catalog from a JSON file. On failure it returns an
// empty catalog and the error; callers degrade to a disabled wizard rather
// than crash.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read step catalog %s: %v", path, err)
		return &Catalog{}, fmt.Errorf("reading step catalog: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		logger.Error("Failed to parse step catalog %s: %v", path, err)
		return &Catalog{}, err
	}

	logger.Debug("Loaded step catalog: %d steps from %s", c.Len(), path)
	return c, nil
}

// validate enforces the kind-dependent shape of each step.
func (c *Catalog) validate() error {
	if len(c.Steps) == 0 {
		return fmt.Errorf("step catalog is empty")
	}

	for i, s := range c.Steps {
		if s.Title == "" {
			return fmt.Errorf("step %d: missing title", i)
		}
		switch s.Kind {
		case KindSingleSelect, KindMultiSelect:
			if len(s.Options) == 0 {
				return fmt.Errorf("step %d (%s): %s step requires options", i, s.Title, s.Kind)
			}
			for j, opt := range s.Options {
				if opt.Label == "" {
					return fmt.Errorf("step %d (%s): option %d missing label", i, s.Title, j)
				}
				if opt.Cost != nil && *opt.Cost < 0 {
					return fmt.Errorf("step %d (%s): option %q has negative cost", i, s.Title, opt.Label)
				}
			}
		case KindIntro, KindFreeText, KindCustom:
			if len(s.Options) > 0 {
				return fmt.Errorf("step %d (%s): %s step must not carry options", i, s.Title, s.Kind)
			}
		default:
			return fmt.Errorf("step %d (%s): unknown kind %q", i, s.Title, s.Kind)
		}
	}

	return nil
}
