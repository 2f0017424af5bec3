// Package strategy implements the fixed set of independent trade evaluators.
package strategy

import (
	"strings"

	"chartpilot/internal/analysis/scoring"
	"chartpilot/internal/models"
)

// Strategy names of the closed evaluator set.
const (
	NameTrendFollowing     = "trend_following"
	NameBreakout           = "breakout"
	NameMeanReversion      = "mean_reversion"
	NamePatternRecognition = "pattern_recognition"
	NameMultiTimeframe     = "multi_timeframe"
)

// Evaluator is the common signature of every strategy: a stateless function
// of the snapshot, the cycle risk profile and the journal snapshot.
type Evaluator func(snap models.MarketSnapshot, profile models.RiskProfile, history []models.TradeRecord) models.StrategySignal

func hold(name string) models.StrategySignal {
	return models.StrategySignal{
		StrategyName: name,
		Action:       models.ActionHold,
		Direction:    models.DirectionNone,
	}
}

func open(name string, dir models.SignalDirection, confidence float64) models.StrategySignal {
	if confidence > 1 {
		confidence = 1
	}
	return models.StrategySignal{
		StrategyName: name,
		Action:       models.ActionOpen,
		Direction:    dir,
		Confidence:   confidence,
	}
}

// TrendFollowing opens with the trend when MACD confirms it.
func TrendFollowing(snap models.MarketSnapshot, _ models.RiskProfile, _ []models.TradeRecord) models.StrategySignal {
	macd, ok := snap.IndicatorValue(models.IndicatorMACD)
	if !ok {
		return hold(NameTrendFollowing)
	}
	switch {
	case snap.Trend == models.TrendUp && macd > 0:
		return open(NameTrendFollowing, models.DirectionBuy, 0.7)
	case snap.Trend == models.TrendDown && macd < 0:
		return open(NameTrendFollowing, models.DirectionSell, 0.7)
	}
	return hold(NameTrendFollowing)
}

// Breakout fires when price escapes the support/resistance band. A
// simultaneous trigger on both sides means degenerate level data, so the
// evaluator reports no signal instead of favoring either side.
func Breakout(snap models.MarketSnapshot, _ models.RiskProfile, _ []models.TradeRecord) models.StrategySignal {
	buySide, sellSide := false, false

	if ask, ok := snap.Level(models.LevelAsk); ok {
		if resistance, ok := snap.Level(models.LevelResistance); ok && ask > resistance*1.002 {
			buySide = true
		}
	}
	if bid, ok := snap.Level(models.LevelBid); ok {
		if support, ok := snap.Level(models.LevelSupport); ok && bid < support*0.998 {
			sellSide = true
		}
	}

	switch {
	case buySide && sellSide:
		return hold(NameBreakout)
	case buySide:
		return open(NameBreakout, models.DirectionBuy, 0.75)
	case sellSide:
		return open(NameBreakout, models.DirectionSell, 0.75)
	}
	return hold(NameBreakout)
}

// MeanReversion fades RSI extremes, with a Stochastic agreement bonus.
func MeanReversion(snap models.MarketSnapshot, _ models.RiskProfile, _ []models.TradeRecord) models.StrategySignal {
	rsi, ok := snap.IndicatorValue(models.IndicatorRSI)
	if !ok {
		return hold(NameMeanReversion)
	}

	stoch, _ := snap.IndicatorText(models.IndicatorStochastic)
	stoch = strings.ToLower(stoch)

	switch {
	case rsi < 30:
		confidence := 0.6 + (30-rsi)/100
		if stoch == "oversold" {
			confidence += 0.1
		}
		return open(NameMeanReversion, models.DirectionBuy, confidence)
	case rsi > 70:
		confidence := 0.6 + (rsi-70)/100
		if stoch == "overbought" {
			confidence += 0.1
		}
		return open(NameMeanReversion, models.DirectionSell, confidence)
	}
	return hold(NameMeanReversion)
}

// PatternRecognition votes on one-sided candlestick pattern evidence; mixed
// or absent patterns produce no signal.
func PatternRecognition(snap models.MarketSnapshot, _ models.RiskProfile, _ []models.TradeRecord) models.StrategySignal {
	bullish, bearish := 0, 0
	for _, pattern := range snap.CandlestickPatterns {
		switch {
		case scoring.BullishPatterns[pattern]:
			bullish++
		case scoring.BearishPatterns[pattern]:
			bearish++
		}
	}

	switch {
	case bullish > 0 && bearish == 0:
		return open(NamePatternRecognition, models.DirectionBuy, 0.5+0.1*float64(bullish))
	case bearish > 0 && bullish == 0:
		return open(NamePatternRecognition, models.DirectionSell, 0.5+0.1*float64(bearish))
	}
	return hold(NamePatternRecognition)
}

// MultiTimeframe is a proxy for higher-timeframe alignment: trend, RSI
// headroom, MACD sign and EMA slope must all agree.
func MultiTimeframe(snap models.MarketSnapshot, _ models.RiskProfile, _ []models.TradeRecord) models.StrategySignal {
	rsi, hasRSI := snap.IndicatorValue(models.IndicatorRSI)
	macd, hasMACD := snap.IndicatorValue(models.IndicatorMACD)
	ema, _ := snap.IndicatorText(models.IndicatorEMA)
	if !hasRSI || !hasMACD {
		return hold(NameMultiTimeframe)
	}

	switch {
	case snap.Trend == models.TrendUp && rsi < 70 && macd > 0 && ema == "rising":
		return open(NameMultiTimeframe, models.DirectionBuy, 0.8)
	case snap.Trend == models.TrendDown && rsi > 30 && macd < 0 && ema == "falling":
		return open(NameMultiTimeframe, models.DirectionSell, 0.8)
	}
	return hold(NameMultiTimeframe)
}
