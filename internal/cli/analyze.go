package cli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chartpilot/internal/extract"
	"chartpilot/internal/models"
)

// loadElements obtains the annotated element list from either a JSON file of
// elements or a screenshot sent to the vision service. On a vision failure it
// returns nil elements and the upstream error so the caller can degrade to an
// empty snapshot.
func (app *App) loadElements(ctx context.Context, elementsPath, imagePath string) ([]models.RawElement, string, error) {
	if elementsPath != "" {
		data, err := os.ReadFile(elementsPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read elements file: %w", err)
		}
		var elements []models.RawElement
		if err := json.Unmarshal(data, &elements); err != nil {
			return nil, "", fmt.Errorf("failed to parse elements file: %w", err)
		}
		return elements, "", nil
	}

	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	result, err := app.Vision.Parse(ctx, base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		return nil, "", err
	}
	return result.Elements, result.AnnotatedImage, nil
}

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		elementsPath string
		imagePath    string
		record       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one analysis cycle and print the decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			if elementsPath == "" && imagePath == "" {
				return fmt.Errorf("either --elements or --image is required")
			}
			ctx := cmd.Context()

			app.loadJournal(ctx)

			elements, _, err := app.loadElements(ctx, elementsPath, imagePath)

			var d models.Decision
			if err != nil {
				app.Logger.Error().Err(err).Msg("vision collaborator failed, analyzing empty snapshot")
				snap := extract.EmptySnapshot(app.Config.Trading.CurrencyPair, err)
				d = app.Agent.AnalyzeSnapshot(ctx, snap)
			} else {
				d = app.Agent.AnalyzeCycle(ctx, elements)
			}

			printDecision(d)

			if app.Store != nil {
				if err := app.Store.SaveDecision(ctx, &d); err != nil {
					app.Logger.Warn().Err(err).Msg("failed to persist decision")
				}
			}

			if record && d.Action == models.ActionOpen {
				app.Agent.RecordDecision(d)
				if app.Store != nil {
					trades := app.Agent.History()
					if err := app.Store.SaveTrade(ctx, &trades[len(trades)-1]); err != nil {
						app.Logger.Warn().Err(err).Msg("failed to persist trade")
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&elementsPath, "elements", "", "JSON file with annotated elements")
	cmd.Flags().StringVar(&imagePath, "image", "", "chart screenshot to send to the vision service")
	cmd.Flags().BoolVar(&record, "record", false, "journal an open decision as a trade")

	return cmd
}

// loadJournal replays persisted trades into the in-memory journal so risk
// and performance see history across invocations.
func (app *App) loadJournal(ctx context.Context) {
	if app.Store == nil {
		return
	}
	trades, err := app.Store.RecentTrades(ctx, 100)
	if err != nil {
		app.Logger.Warn().Err(err).Msg("failed to load trade history")
		return
	}
	for i := range trades {
		app.Agent.RecordTrade(trades[i])
	}
}
