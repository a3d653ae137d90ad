package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ultrai/ultrai/internal/logger"
)

// StatusStep is one entry of the coarse-grained progress vocabulary shown
// alongside the simulated stage list. Display metadata only; timing and
// ordering semantics live in the progress package, and the two lists must
// stay consistent in phase order.
type StatusStep struct {
	Name      string   `json:"name"`
	Icon      string   `json:"icon,omitempty"`
	Narrative string   `json:"narrative,omitempty"`
	Substeps  []string `json:"substeps,omitempty"`
	Animation string   `json:"animation,omitempty"`
}

// LoadStatusSteps reads the status-step catalog from a JSON file.
// Failure degrades to an empty list plus the error, never a crash.
func LoadStatusSteps(path string) ([]StatusStep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read status steps %s: %v", path, err)
		return nil, fmt.Errorf("reading status steps: %w", err)
	}

	var steps []StatusStep
	if err := json.Unmarshal(data, &steps); err != nil {
		logger.Error("Failed to parse status steps %s: %v", path, err)
		return nil, fmt.Errorf("parsing status steps: %w", err)
	}

	for i, s := range steps {
		if s.Name == "" {
			return nil, fmt.Errorf("status step %d: missing name", i)
		}
	}

	return steps, nil
}

// DefaultStatusSteps returns the built-in coarse progress vocabulary.
func DefaultStatusSteps() []StatusStep {
	return []StatusStep{
		{Name: "Dispatching", Icon: "📡", Narrative: "Sending your query to each selected model"},
		{Name: "Initial drafts", Icon: "📝", Narrative: "Models produce their first answers", Substeps: []string{"querying", "collecting"}},
		{Name: "Cross review", Icon: "🔁", Narrative: "Each model critiques the others' drafts", Animation: "pulse"},
		{Name: "Synthesis", Icon: "🧬", Narrative: "Combining reviews into the ultra response"},
	}
}
