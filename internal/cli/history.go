package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"chartpilot/internal/store"
)

func newHistoryCmd(app *App) *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent trades, optionally exporting them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.loadJournal(cmd.Context())
			trades := app.Agent.History()

			if len(trades) == 0 {
				fmt.Println("No trades recorded.")
				return nil
			}
			printTrades(trades)

			if exportDir != "" {
				path, err := store.ExportHistoryJSON(exportDir, store.HistoryEntries(trades))
				if err != nil {
					return err
				}
				fmt.Printf("History exported to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exportDir, "export", "", "directory to export history JSON into")

	return cmd
}

func newSettleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "settle <pips>",
		Short: "Close the most recent open trade with its realized pips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pips, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid pip amount %q: %w", args[0], err)
			}

			if app.Store != nil {
				closed, err := app.Store.CloseLatestOpen(cmd.Context(), pips)
				if err != nil {
					return err
				}
				if !closed {
					return fmt.Errorf("no open trade to settle")
				}
				fmt.Printf("Settled latest open trade at %+.1f pips\n", pips)
				return nil
			}

			if !app.Agent.SettleTrade(pips) {
				return fmt.Errorf("no open trade to settle")
			}
			fmt.Printf("Settled latest open trade at %+.1f pips\n", pips)
			return nil
		},
	}
}
