package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ultrai/ultrai/internal/backend"
	"github.com/ultrai/ultrai/internal/catalog"
	"github.com/ultrai/ultrai/internal/config"
	"github.com/ultrai/ultrai/internal/history"
	"github.com/ultrai/ultrai/internal/logger"
	"github.com/ultrai/ultrai/internal/state"
	"github.com/ultrai/ultrai/internal/tui/wizard"
)

var analyzeFlags struct {
	backend   string
	steps     string
	status    string
	pattern   string
	format    string
	minModels int
	estTokens float64
	dataDir   string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the analysis setup wizard",
	Long: `Run the full-screen analysis setup wizard.

The wizard walks through the configured steps, shows a live cost receipt,
and submits the query to the UltrAI backend once at least the minimum
number of models is selected. Finished runs are recorded to the local
journal; use 'ultrai history' to replay them.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFlags.backend, "backend", "b", "", "Backend base URL (default http://localhost:8085)")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.steps, "steps", "s", "", "Step catalog JSON file (default: built-in catalog)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.status, "status", "", "Status step vocabulary JSON file (default: built-in)")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.pattern, "pattern", "p", "", "Analysis pattern sent to the backend (default gut)")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.format, "format", "f", "", "Output format requested from the backend (default txt)")
	analyzeCmd.Flags().IntVar(&analyzeFlags.minModels, "min-models", 0, "Minimum number of models required to submit (default 2)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.estTokens, "est-tokens", 0, "Token estimate in thousands used for cost receipts (default 10)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.dataDir, "data-dir", "", "Data directory for the journal and UI state (default .ultrai)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cat := catalog.Default()
	if cfg.StepsFile != "" {
		cat, err = catalog.Load(cfg.StepsFile)
		if err != nil {
			return fmt.Errorf("loading step catalog: %w", err)
		}
	}

	status := catalog.DefaultStatusSteps()
	if cfg.StatusFile != "" {
		status, err = catalog.LoadStatusSteps(cfg.StatusFile)
		if err != nil {
			return fmt.Errorf("loading status steps: %w", err)
		}
	}

	client := backend.New(cfg.BackendURL)

	// The journal is best-effort: a locked or corrupt data dir degrades to
	// a session without history rather than refusing to run.
	var journal *history.Journal
	journal, err = history.Open(contextOrBackground(cmd), cfg.DataDir)
	if err != nil {
		logger.Warn("Run journal unavailable: %v", err)
		journal = nil
	} else {
		defer func() {
			if err := journal.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing journal: %v\n", err)
			}
		}()
	}

	ui := state.Load(cfg.DataDir)

	return wizard.Run(cfg, cat, status, client, journal, ui)
}

// loadConfig resolves the effective configuration: flags beat environment
// beats config files beats defaults. Flags are applied only when set so an
// empty flag never clobbers a configured value.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("backend") {
		cfg.BackendURL = analyzeFlags.backend
	}
	if cmd.Flags().Changed("steps") {
		cfg.StepsFile = analyzeFlags.steps
	}
	if cmd.Flags().Changed("status") {
		cfg.StatusFile = analyzeFlags.status
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Pattern = analyzeFlags.pattern
	}
	if cmd.Flags().Changed("format") {
		cfg.OutputFormat = analyzeFlags.format
	}
	if cmd.Flags().Changed("min-models") {
		cfg.MinModels = analyzeFlags.minModels
	}
	if cmd.Flags().Changed("est-tokens") {
		cfg.EstTokensK = analyzeFlags.estTokens
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = analyzeFlags.dataDir
	}

	if cfg.MinModels < 1 {
		return nil, fmt.Errorf("min-models must be at least 1, got %d", cfg.MinModels)
	}
	if cfg.EstTokensK < 0 {
		return nil, fmt.Errorf("est-tokens must be non-negative, got %v", cfg.EstTokensK)
	}

	return cfg, nil
}

// contextOrBackground guards against commands constructed without a context.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
