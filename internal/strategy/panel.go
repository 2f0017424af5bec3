package strategy

import (
	"fmt"

	"github.com/rs/zerolog"

	apperrors "chartpilot/internal/errors"
	"chartpilot/internal/models"
)

// namedEvaluator pairs an evaluator with its stable name.
type namedEvaluator struct {
	name string
	fn   Evaluator
}

// evaluators is the closed strategy set. Order is stable so signal slices
// and reasoning output are deterministic.
var evaluators = []namedEvaluator{
	{NameTrendFollowing, TrendFollowing},
	{NameBreakout, Breakout},
	{NameMeanReversion, MeanReversion},
	{NamePatternRecognition, PatternRecognition},
	{NameMultiTimeframe, MultiTimeframe},
}

// Panel runs every evaluator over the same snapshot. A failing evaluator is
// isolated as a hold signal and the remaining evaluators still run.
type Panel struct {
	logger zerolog.Logger
}

// NewPanel creates a strategy panel.
func NewPanel(logger zerolog.Logger) *Panel {
	return &Panel{logger: logger}
}

// Evaluate returns one signal per strategy, in the fixed panel order.
func (p *Panel) Evaluate(snap models.MarketSnapshot, profile models.RiskProfile, history []models.TradeRecord) []models.StrategySignal {
	signals := make([]models.StrategySignal, 0, len(evaluators))
	for _, ev := range evaluators {
		signals = append(signals, p.run(ev, snap, profile, history))
	}
	return signals
}

func (p *Panel) run(ev namedEvaluator, snap models.MarketSnapshot, profile models.RiskProfile, history []models.TradeRecord) (signal models.StrategySignal) {
	defer func() {
		if r := recover(); r != nil {
			err := apperrors.NewStrategyError(ev.name, fmt.Errorf("panic: %v", r))
			p.logger.Error().Err(err).Str("strategy", ev.name).Msg("evaluator failed, treating as hold")
			signal = hold(ev.name)
		}
	}()
	return ev.fn(snap, profile, history)
}
