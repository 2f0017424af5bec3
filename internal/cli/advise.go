package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"chartpilot/internal/extract"
)

func newAdviseCmd(app *App) *cobra.Command {
	var (
		elementsPath string
		imagePath    string
	)

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Ask the advisory model for a decision (alternative path)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Advisor == nil {
				return fmt.Errorf("advisor not configured: set advisor.api_key")
			}
			if elementsPath == "" && imagePath == "" {
				return fmt.Errorf("either --elements or --image is required")
			}
			ctx := cmd.Context()

			app.loadJournal(ctx)

			elements, _, err := app.loadElements(ctx, elementsPath, imagePath)
			snap := extract.EmptySnapshot(app.Config.Trading.CurrencyPair, err)
			if err == nil {
				snap = app.Agent.Snapshot(elements)
			}

			advice := app.Advisor.Decide(ctx, snap, app.Agent.History())

			fmt.Printf("%s %s\n", heading.Sprint("Advisory action:"), colorAction(advice.Action))
			fmt.Printf("%s %s\n", heading.Sprint("Reasoning:"), advice.Reasoning)
			return nil
		},
	}

	cmd.Flags().StringVar(&elementsPath, "elements", "", "JSON file with annotated elements")
	cmd.Flags().StringVar(&imagePath, "image", "", "chart screenshot to send to the vision service")

	return cmd
}
