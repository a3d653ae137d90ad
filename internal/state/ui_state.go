// Package state persists UI preferences that carry across runs.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ultrai/ultrai/internal/logger"
)

// UIState holds persistent UI preferences.
type UIState struct {
	Receipt ReceiptState `json:"receipt"`
}

// ReceiptState holds the receipt panel visibility preference.
type ReceiptState struct {
	Visible bool `json:"visible"`
}

// DefaultUIState returns the defaults for a fresh install.
func DefaultUIState() *UIState {
	return &UIState{
		Receipt: ReceiptState{
			Visible: true,
		},
	}
}

// Load reads the UI state from <dataDir>/ui-state.json, falling back to
// defaults on any failure.
func Load(dataDir string) *UIState {
	path := filepath.Join(dataDir, "ui-state.json")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultUIState()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read UI state file: %v", err)
		return DefaultUIState()
	}

	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return DefaultUIState()
	}

	return &st
}

// Save writes the UI state to <dataDir>/ui-state.json, creating the data
// directory when needed.
func Save(dataDir string, st *UIState) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, "ui-state.json")

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", path)
	return nil
}
