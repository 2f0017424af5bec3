// Package models defines the core data types shared across the decision pipeline.
package models

import "time"

// ElementKind classifies an annotated element from the vision service.
type ElementKind string

const (
	ElementIcon  ElementKind = "icon"
	ElementText  ElementKind = "text"
	ElementOther ElementKind = "other"
)

// BoundingBox is a normalized bounding box (all values in [0,1] relative to frame size).
type BoundingBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RawElement is a single annotated element produced by the vision collaborator.
type RawElement struct {
	Content string       `json:"content"`
	Kind    ElementKind  `json:"kind"`
	Box     *BoundingBox `json:"box,omitempty"`
}

// Trend represents the extracted chart trend direction.
type Trend string

const (
	TrendUp       Trend = "up"
	TrendDown     Trend = "down"
	TrendSideways Trend = "sideways"
	TrendNeutral  Trend = "neutral"
)

// MarketState is the condition derived from indicators and trend.
type MarketState string

const (
	StateOverbought MarketState = "overbought"
	StateOversold   MarketState = "oversold"
	StateBullish    MarketState = "bullish"
	StateBearish    MarketState = "bearish"
	StateNeutral    MarketState = "neutral"
)

// Well-known indicator names used throughout the pipeline.
const (
	IndicatorRSI        = "RSI"
	IndicatorMACD       = "MACD"
	IndicatorATR        = "ATR"
	IndicatorStochastic = "Stochastic"
	IndicatorEMA        = "EMA"
)

// Well-known price level names.
const (
	LevelBid         = "bid"
	LevelAsk         = "ask"
	LevelSupport     = "support"
	LevelResistance  = "resistance"
	LevelPivot       = "pivot"
	LevelSupport1    = "support_1"
	LevelSupport2    = "support_2"
	LevelResistance1 = "resistance_1"
	LevelResistance2 = "resistance_2"
	LevelCurrent     = "current"
)

// MarketSnapshot is the structured market state extracted from one screenshot.
// It is rebuilt every analysis cycle and never mutated after extraction.
type MarketSnapshot struct {
	CurrencyPair        string             `json:"currency_pair"`
	Timestamp           time.Time          `json:"timestamp"`
	CandlestickPatterns []string           `json:"candlestick_patterns"`
	Indicators          map[string]any     `json:"indicators"`
	PriceLevels         map[string]float64 `json:"price_levels"`
	Trend               Trend              `json:"trend"`
	MarketState         MarketState        `json:"market_state"`
	IconsDetected       int                `json:"icons_detected"`
	TextElements        int                `json:"text_elements"`
	ElementCount        int                `json:"element_count"`
	ExtractionError     string             `json:"extraction_error,omitempty"`
}

// IndicatorValue returns a numeric indicator by name.
func (s *MarketSnapshot) IndicatorValue(name string) (float64, bool) {
	raw, ok := s.Indicators[name]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// IndicatorText returns a textual indicator by name (e.g. a Stochastic
// condition like "oversold").
func (s *MarketSnapshot) IndicatorText(name string) (string, bool) {
	raw, ok := s.Indicators[name]
	if !ok {
		return "", false
	}
	v, ok := raw.(string)
	return v, ok
}

// Level returns a named price level.
func (s *MarketSnapshot) Level(name string) (float64, bool) {
	v, ok := s.PriceLevels[name]
	return v, ok
}

// DeriveMarketState applies the fixed precedence for market condition:
// RSI extremes first, then trend direction, otherwise neutral.
func DeriveMarketState(rsi float64, hasRSI bool, trend Trend) MarketState {
	switch {
	case hasRSI && rsi > 70:
		return StateOverbought
	case hasRSI && rsi < 30:
		return StateOversold
	case trend == TrendUp:
		return StateBullish
	case trend == TrendDown:
		return StateBearish
	default:
		return StateNeutral
	}
}
