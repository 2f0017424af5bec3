// Package scoring computes a scalar confidence for a market snapshot.
package scoring

import "chartpilot/internal/models"

// Additive adjustments applied on top of the neutral baseline.
const (
	baseline         = 0.5
	patternWeight    = 0.1
	trendWeight      = 0.15
	rsiWeight        = 0.1
	macdWeight       = 0.1
	levelWeight      = 0.1
	levelProximityPc = 0.01
)

// BullishPatterns are the pattern tags that raise confidence.
var BullishPatterns = map[string]bool{
	"bullish_engulfing": true,
	"hammer":            true,
	"morning_star":      true,
	"tweezer_bottom":    true,
}

// BearishPatterns are the pattern tags that lower confidence.
var BearishPatterns = map[string]bool{
	"bearish_engulfing": true,
	"shooting_star":     true,
	"evening_star":      true,
	"tweezer_top":       true,
}

// Confidence maps a snapshot to [0,1]. Adjustments are independent and
// additive: each bullish pattern occurrence +0.1 and bearish -0.1, trend
// +/-0.15, RSI extremes +/-0.1, MACD sign +/-0.1, bid hugging support +0.1,
// ask hugging resistance -0.1. The result is clamped.
func Confidence(snap models.MarketSnapshot) float64 {
	score := baseline

	for _, pattern := range snap.CandlestickPatterns {
		switch {
		case BullishPatterns[pattern]:
			score += patternWeight
		case BearishPatterns[pattern]:
			score -= patternWeight
		}
	}

	switch snap.Trend {
	case models.TrendUp:
		score += trendWeight
	case models.TrendDown:
		score -= trendWeight
	}

	if rsi, ok := snap.IndicatorValue(models.IndicatorRSI); ok {
		if rsi < 30 {
			score += rsiWeight
		} else if rsi > 70 {
			score -= rsiWeight
		}
	}

	if macd, ok := snap.IndicatorValue(models.IndicatorMACD); ok {
		if macd > 0 {
			score += macdWeight
		} else if macd < 0 {
			score -= macdWeight
		}
	}

	if bid, ok := snap.Level(models.LevelBid); ok {
		if support, ok := snap.Level(models.LevelSupport); ok {
			if bid >= support && bid <= support*(1+levelProximityPc) {
				score += levelWeight
			}
		}
	}
	if ask, ok := snap.Level(models.LevelAsk); ok {
		if resistance, ok := snap.Level(models.LevelResistance); ok {
			if ask <= resistance && ask >= resistance*(1-levelProximityPc) {
				score -= levelWeight
			}
		}
	}

	return clamp(score, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
