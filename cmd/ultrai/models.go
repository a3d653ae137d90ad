package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ultrai/ultrai/internal/backend"
	"github.com/ultrai/ultrai/internal/config"
	"github.com/ultrai/ultrai/internal/models"
)

var modelsFlags struct {
	backend string
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the backend currently offers",
	Long: `List the models the backend currently offers, with provider, unit
cost, and the tier each model falls into. The same list backs the
wizard's model selection step and its 1/2/3 tier presets.`,
	RunE: runModels,
}

func init() {
	modelsCmd.Flags().StringVarP(&modelsFlags.backend, "backend", "b", "", "Backend base URL (default http://localhost:8085)")
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("backend") {
		cfg.BackendURL = modelsFlags.backend
	}

	client := backend.New(cfg.BackendURL)
	available, err := client.Models(contextOrBackground(cmd))
	if err != nil {
		return fmt.Errorf("fetching models: %w", err)
	}

	if len(available) == 0 {
		fmt.Println("The backend offers no models right now.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tPROVIDER\tCOST/1K\tTIER")
	for _, m := range available {
		fmt.Fprintf(w, "%s\t%s\t$%.4f\t%s\n", m.ID, m.Provider, m.CostPer1K, models.TierOf(m))
	}
	return w.Flush()
}
