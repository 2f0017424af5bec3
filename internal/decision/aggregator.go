// Package decision aggregates strategy votes, confidence and risk into the
// final trade decision.
package decision

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chartpilot/internal/models"
)

// Vote thresholds: a strong consensus opens unconditionally, a weaker one
// needs the confidence gate.
const (
	strongConsensus = 3
	weakConsensus   = 2
)

// Aggregator resolves the per-cycle decision.
type Aggregator struct {
	logger zerolog.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger zerolog.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Decide resolves the final decision. The returned decision always carries
// the risk-derived fields and the snapshot confidence, even on hold.
func (a *Aggregator) Decide(snap models.MarketSnapshot, confidence float64, profile models.RiskProfile, signals []models.StrategySignal) models.Decision {
	d := models.Decision{
		Timestamp:           time.Now(),
		CurrencyPair:        snap.CurrencyPair,
		Action:              models.ActionHold,
		Direction:           models.DirectionNone,
		Confidence:          confidence,
		StopLossPips:        profile.StopLossPips,
		TakeProfitPips:      profile.TakeProfitPips,
		PositionSize:        profile.PositionSize,
		StrategiesTriggered: []string{},
		Reasoning:           []string{},
	}

	if reason, ok := insufficientData(snap); ok {
		d.Reasoning = append(d.Reasoning, "insufficient data: "+reason)
		a.appendMarketContext(&d, snap)
		return d
	}

	var buyVotes, sellVotes int
	for _, sig := range signals {
		if sig.Action != models.ActionOpen {
			continue
		}
		d.StrategiesTriggered = append(d.StrategiesTriggered, sig.StrategyName)
		switch sig.Direction {
		case models.DirectionBuy:
			buyVotes++
		case models.DirectionSell:
			sellVotes++
		}
	}

	if len(d.StrategiesTriggered) == 0 {
		d.Reasoning = append(d.Reasoning, "no strategies triggered")
		a.appendMarketContext(&d, snap)
		return d
	}

	switch {
	case buyVotes >= strongConsensus && sellVotes == 0:
		a.openPosition(&d, models.DirectionBuy, fmt.Sprintf("strong buy consensus: %d strategies agree", buyVotes))
	case sellVotes >= strongConsensus && buyVotes == 0:
		a.openPosition(&d, models.DirectionSell, fmt.Sprintf("strong sell consensus: %d strategies agree", sellVotes))
	case buyVotes >= weakConsensus && sellVotes == 0 && confidence >= profile.ConfidenceThreshold:
		a.openPosition(&d, models.DirectionBuy, fmt.Sprintf("buy consensus (%d votes) with confidence %.2f above threshold %.2f", buyVotes, confidence, profile.ConfidenceThreshold))
	case sellVotes >= weakConsensus && buyVotes == 0 && confidence >= profile.ConfidenceThreshold:
		a.openPosition(&d, models.DirectionSell, fmt.Sprintf("sell consensus (%d votes) with confidence %.2f above threshold %.2f", sellVotes, confidence, profile.ConfidenceThreshold))
	case buyVotes > 0 && sellVotes > 0:
		d.Reasoning = append(d.Reasoning, fmt.Sprintf("conflicting signals: %d buy vs %d sell", buyVotes, sellVotes))
	default:
		d.Reasoning = append(d.Reasoning, fmt.Sprintf("insufficient confidence: %.2f below threshold %.2f with %d/%d votes", confidence, profile.ConfidenceThreshold, buyVotes+sellVotes, len(signals)))
	}

	if d.Action == models.ActionOpen && profile.Level == models.RiskExtreme {
		a.logger.Warn().Str("pair", snap.CurrencyPair).Msg("open decision vetoed by extreme risk level")
		d.Action = models.ActionHold
		d.Direction = models.DirectionNone
		d.Reasoning = append(d.Reasoning, "aborted: extreme risk")
	}

	a.appendMarketContext(&d, snap)
	return d
}

func (a *Aggregator) openPosition(d *models.Decision, dir models.SignalDirection, reason string) {
	d.Action = models.ActionOpen
	d.Direction = dir
	d.Reasoning = append(d.Reasoning, reason)
}

// insufficientData checks the aggregator preconditions: at least one of
// bid/ask, non-empty indicators and three processed elements.
func insufficientData(snap models.MarketSnapshot) (string, bool) {
	_, hasBid := snap.Level(models.LevelBid)
	_, hasAsk := snap.Level(models.LevelAsk)
	switch {
	case !hasBid && !hasAsk:
		return "no bid or ask price available", true
	case len(snap.Indicators) == 0:
		return "no indicators extracted", true
	case snap.ElementCount < 3:
		return fmt.Sprintf("only %d elements extracted", snap.ElementCount), true
	}
	return "", false
}

// appendMarketContext adds the descriptive reasoning trail: detected
// patterns, a non-neutral trend and key indicator values.
func (a *Aggregator) appendMarketContext(d *models.Decision, snap models.MarketSnapshot) {
	if snap.ExtractionError != "" {
		d.Reasoning = append(d.Reasoning, "extraction degraded: "+snap.ExtractionError)
	}
	if len(snap.CandlestickPatterns) > 0 {
		d.Reasoning = append(d.Reasoning, "patterns detected: "+strings.Join(snap.CandlestickPatterns, ", "))
	}
	if snap.Trend != models.TrendNeutral {
		d.Reasoning = append(d.Reasoning, fmt.Sprintf("trend: %s", snap.Trend))
	}
	if rsi, ok := snap.IndicatorValue(models.IndicatorRSI); ok {
		d.Reasoning = append(d.Reasoning, fmt.Sprintf("RSI: %.1f", rsi))
	}
	if macd, ok := snap.IndicatorValue(models.IndicatorMACD); ok {
		d.Reasoning = append(d.Reasoning, fmt.Sprintf("MACD: %.4f", macd))
	}
	if atr, ok := snap.IndicatorValue(models.IndicatorATR); ok {
		d.Reasoning = append(d.Reasoning, fmt.Sprintf("ATR: %.2f", atr))
	}
	if snap.MarketState != models.StateNeutral {
		d.Reasoning = append(d.Reasoning, fmt.Sprintf("market state: %s", snap.MarketState))
	}
}
