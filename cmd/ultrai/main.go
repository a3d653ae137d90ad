package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/ultrai/ultrai/internal/logger"
	"github.com/ultrai/ultrai/internal/tui/theme"
)

const (
	logoText1 = "█ █ █   ▀█▀ █▀█ ▄▀█ █"
	logoText2 = "█▄█ █▄▄  █  █▀▄ █▀█ █"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ultrai",
	Short: "Multi-model AI analysis wizard",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

UltrAI sends a single query to several AI models at once, has them review
each other's drafts, and synthesizes one combined answer. The analyze
command walks you through the setup in a full-screen wizard, shows a live
cost receipt as you make choices, and records finished runs in an embedded
NATS JetStream journal.`

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(setupCmd)
}
