// Package cli provides the command-line interface for the trading agent.
package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chartpilot/internal/advisor"
	"chartpilot/internal/agent"
	"chartpilot/internal/config"
	"chartpilot/internal/store"
	"chartpilot/internal/vision"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Agent   *agent.Agent
	Store   *store.SQLiteStore
	Vision  *vision.Client
	Advisor *advisor.Advisor
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Agent:  agent.New(cfg, logger),
		Vision: vision.NewClient(cfg.Vision.URL, time.Duration(cfg.Vision.TimeoutSeconds)*time.Second),
	}

	dbPath := filepath.Join(config.DefaultConfigDir(), "chartpilot.db")
	if s, err := store.Open(dbPath); err != nil {
		logger.Warn().Err(err).Msg("failed to open store, persistence disabled")
	} else {
		app.Store = s
	}

	if cfg.Advisor.APIKey != "" {
		client := advisor.NewOpenAIClient(cfg.Advisor.APIKey, cfg.Advisor.Model)
		app.Advisor = advisor.New(client, logger)
		logger.Debug().Str("model", cfg.Advisor.Model).Msg("advisory client initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "chartpilot",
		Short: "Screenshot-driven forex trading decision agent",
		Long: `chartpilot turns annotated chart screenshots into trade decisions using
multi-strategy voting, adaptive risk control and performance tracking.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(app),
		newAdviseCmd(app),
		newHistoryCmd(app),
		newSettleCmd(app),
		newPerformanceCmd(app),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("chartpilot %s\n", Version)
		},
	}
}
