package cli

import (
	"github.com/spf13/cobra"

	"chartpilot/internal/performance"
)

func newPerformanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "performance",
		Aliases: []string{"perf"},
		Short:   "Recompute and print the performance report",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.loadJournal(cmd.Context())
			report := performance.Compute(app.Agent.History())
			printReport(report)
			return nil
		},
	}
}
