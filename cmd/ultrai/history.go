package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ultrai/ultrai/internal/config"
	"github.com/ultrai/ultrai/internal/history"
)

var historyFlags struct {
	dataDir string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis runs",
	Long: `List the analysis runs recorded in the local journal, newest last.

Each finished wizard run is appended to an embedded JetStream stream under
the data directory, including failed runs with their error message.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.dataDir, "data-dir", "", "Data directory holding the journal (default .ultrai)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = historyFlags.dataDir
	}

	ctx := contextOrBackground(cmd)
	journal, err := history.Open(ctx, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer func() { _ = journal.Close() }()

	runs, err := journal.Runs(ctx)
	if err != nil {
		return fmt.Errorf("reading runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs yet. Run 'ultrai analyze' to start one.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tPATTERN\tMODELS\tEST COST\tRESULT\tPROMPT")
	for _, run := range runs {
		result := fmt.Sprintf("ok (%.1fs)", run.ProcessingTime)
		if run.Errored {
			result = "failed: " + firstLine(run.ErrorMessage)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t$%.2f\t%s\t%s\n",
			run.When.Format("2006-01-02 15:04"),
			run.Pattern,
			len(run.Models),
			run.EstimatedCost,
			result,
			truncate(firstLine(run.Prompt), 48),
		)
	}
	return w.Flush()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
