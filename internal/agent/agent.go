// Package agent wires the decision pipeline and owns the trade journal.
package agent

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"chartpilot/internal/analysis/scoring"
	"chartpilot/internal/config"
	"chartpilot/internal/decision"
	"chartpilot/internal/extract"
	"chartpilot/internal/history"
	"chartpilot/internal/models"
	"chartpilot/internal/performance"
	"chartpilot/internal/risk"
	"chartpilot/internal/strategy"
)

// Agent runs analysis cycles: extraction, the three independent analysis
// stages, then aggregation. It is the single writer of the trade journal.
type Agent struct {
	pair       string
	journal    *history.Journal
	extractor  *extract.Extractor
	riskMgr    *risk.Manager
	panel      *strategy.Panel
	aggregator *decision.Aggregator
	logger     zerolog.Logger
}

// New creates an agent from configuration.
func New(cfg *config.Config, logger zerolog.Logger) *Agent {
	riskCfg := risk.Config{
		VolatilityWindowStart: cfg.Risk.VolatilityWindowStart,
		VolatilityWindowEnd:   cfg.Risk.VolatilityWindowEnd,
		MaxExposure:           cfg.Risk.MaxExposure,
	}
	return &Agent{
		pair:       cfg.Trading.CurrencyPair,
		journal:    history.NewJournal(history.DefaultCapacity),
		extractor:  extract.New(logger),
		riskMgr:    risk.NewManager(riskCfg, logger),
		panel:      strategy.NewPanel(logger),
		aggregator: decision.NewAggregator(logger),
		logger:     logger,
	}
}

// Snapshot extracts a market snapshot without deciding. Used by the
// advisory path, which consumes the snapshot directly.
func (a *Agent) Snapshot(elements []models.RawElement) models.MarketSnapshot {
	return a.extractor.Extract(elements, a.pair)
}

// AnalyzeCycle runs one full cycle over the annotated elements.
func (a *Agent) AnalyzeCycle(ctx context.Context, elements []models.RawElement) models.Decision {
	snap := a.extractor.Extract(elements, a.pair)
	return a.AnalyzeSnapshot(ctx, snap)
}

// AnalyzeSnapshot runs the cycle from an already-built snapshot. Callers use
// this with extract.EmptySnapshot when the vision collaborator failed, so
// the pipeline still emits a safe hold.
func (a *Agent) AnalyzeSnapshot(ctx context.Context, snap models.MarketSnapshot) models.Decision {
	hist := a.journal.Snapshot()

	// The three middle stages are read-only over the snapshot and the
	// history copy and have no mutual dependency. The panel receives the
	// baseline risk parameters so it stays independent of the risk stage.
	var (
		confidence float64
		profile    models.RiskProfile
		signals    []models.StrategySignal
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		confidence = scoring.Confidence(snap)
		return nil
	})
	g.Go(func() error {
		profile = a.riskMgr.Profile(snap, hist)
		return nil
	})
	g.Go(func() error {
		signals = a.panel.Evaluate(snap, a.riskMgr.DefaultProfile(), hist)
		return nil
	})
	_ = g.Wait() // stages never error; failures degrade to neutral outputs

	d := a.aggregator.Decide(snap, confidence, profile, signals)
	a.logger.Info().
		Str("pair", d.CurrencyPair).
		Str("action", string(d.Action)).
		Str("direction", string(d.Direction)).
		Float64("confidence", d.Confidence).
		Strs("strategies", d.StrategiesTriggered).
		Msg("analysis cycle complete")
	return d
}

// RecordDecision appends an open trade for an open decision. Hold decisions
// are not journaled.
func (a *Agent) RecordDecision(d models.Decision) {
	if d.Action != models.ActionOpen {
		return
	}
	a.journal.Append(models.TradeRecord{
		Timestamp:           d.Timestamp,
		CurrencyPair:        d.CurrencyPair,
		Action:              d.Action,
		Direction:           d.Direction,
		Status:              models.TradeOpen,
		PositionSize:        d.PositionSize,
		StrategiesTriggered: d.StrategiesTriggered,
	})
}

// RecordTrade appends a fully-formed trade record, e.g. when replaying
// persisted history into the journal.
func (a *Agent) RecordTrade(rec models.TradeRecord) {
	a.journal.Append(rec)
}

// SettleTrade closes the most recent open trade with its realized pips.
func (a *Agent) SettleTrade(rewardPips float64) bool {
	return a.journal.CloseLatestOpen(rewardPips)
}

// History returns a copy of the journal.
func (a *Agent) History() []models.TradeRecord {
	return a.journal.Snapshot()
}

// Report recomputes the performance report from the journal.
func (a *Agent) Report() models.PerformanceReport {
	return performance.Compute(a.journal.Snapshot())
}
