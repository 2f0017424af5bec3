package extract

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"chartpilot/internal/models"
)

func text(content string) models.RawElement {
	return models.RawElement{Content: content, Kind: models.ElementText}
}

func icon(content string) models.RawElement {
	return models.RawElement{Content: content, Kind: models.ElementIcon}
}

func newTestExtractor() *Extractor {
	return New(zerolog.Nop())
}

func TestExtractNoElements(t *testing.T) {
	snap := newTestExtractor().Extract(nil, "EURUSD")

	if snap.CurrencyPair != "EURUSD" {
		t.Errorf("expected pair EURUSD, got %s", snap.CurrencyPair)
	}
	if len(snap.CandlestickPatterns) != 0 {
		t.Errorf("expected no patterns, got %v", snap.CandlestickPatterns)
	}
	if len(snap.Indicators) != 0 {
		t.Errorf("expected no indicators, got %v", snap.Indicators)
	}
	if len(snap.PriceLevels) != 0 {
		t.Errorf("expected no price levels, got %v", snap.PriceLevels)
	}
	if snap.Trend != models.TrendNeutral {
		t.Errorf("expected neutral trend, got %s", snap.Trend)
	}
	if snap.MarketState != models.StateNeutral {
		t.Errorf("expected neutral market state, got %s", snap.MarketState)
	}
	if snap.ElementCount != 0 {
		t.Errorf("expected element count 0, got %d", snap.ElementCount)
	}
}

func TestExtractSkipsEmptyContent(t *testing.T) {
	snap := newTestExtractor().Extract([]models.RawElement{
		text(""), text("   "), text("RSI: 40"),
	}, "EURUSD")

	if snap.ElementCount != 1 {
		t.Errorf("expected element count 1, got %d", snap.ElementCount)
	}
}

func TestExtractRSIFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{"colon", "RSI: 25", 25},
		{"equals", "RSI=61.4", 61.4},
		{"plain", "RSI 72", 72},
		{"percent", "RSI: 25%", 25},
		{"embedded", "14-period RSI at 33.3", 33.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := newTestExtractor().Extract([]models.RawElement{text(tt.content)}, "EURUSD")
			got, ok := snap.IndicatorValue(models.IndicatorRSI)
			if !ok {
				t.Fatalf("RSI not extracted from %q", tt.content)
			}
			if got != tt.want {
				t.Errorf("RSI from %q = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestExtractRSIUnparseable(t *testing.T) {
	snap := newTestExtractor().Extract([]models.RawElement{text("RSI looks weak")}, "EURUSD")
	if _, ok := snap.IndicatorValue(models.IndicatorRSI); ok {
		t.Error("expected RSI omitted when not parseable")
	}
}

// One element may contribute to several categories at once; the scans are
// independent, not first-match-wins.
func TestExtractMultiCategoryElement(t *testing.T) {
	snap := newTestExtractor().Extract([]models.RawElement{
		text("Bullish engulfing pattern, RSI: 25, support 1.0825"),
	}, "EURUSD")

	if len(snap.CandlestickPatterns) != 1 || snap.CandlestickPatterns[0] != "bullish_engulfing" {
		t.Errorf("expected bullish_engulfing, got %v", snap.CandlestickPatterns)
	}
	if rsi, ok := snap.IndicatorValue(models.IndicatorRSI); !ok || rsi != 25 {
		t.Errorf("expected RSI 25, got %v (%v)", rsi, ok)
	}
	if support, ok := snap.Level(models.LevelSupport); !ok || support != 1.0825 {
		t.Errorf("expected support 1.0825, got %v (%v)", support, ok)
	}
}

func TestExtractPriceLevels(t *testing.T) {
	snap := newTestExtractor().Extract([]models.RawElement{
		text("bid: 1.0850 ask: 1.0852"),
		text("pivot 1.0840"),
		text("s1 1.0790 s2 1.0750"),
		text("r1 1.0910 r2 1.0950"),
	}, "EURUSD")

	want := map[string]float64{
		models.LevelBid:         1.0850,
		models.LevelAsk:         1.0852,
		models.LevelPivot:       1.0840,
		models.LevelSupport1:    1.0790,
		models.LevelSupport2:    1.0750,
		models.LevelResistance1: 1.0910,
		models.LevelResistance2: 1.0950,
	}
	for name, value := range want {
		if got, ok := snap.Level(name); !ok || got != value {
			t.Errorf("level %s = %v (%v), want %v", name, got, ok, value)
		}
	}
}

func TestExtractTrendLastWriterWins(t *testing.T) {
	snap := newTestExtractor().Extract([]models.RawElement{
		text("clear uptrend forming"),
		text("now in a downtrend"),
	}, "EURUSD")

	if snap.Trend != models.TrendDown {
		t.Errorf("expected down trend, got %s", snap.Trend)
	}
}

func TestExtractIconElements(t *testing.T) {
	snap := newTestExtractor().Extract([]models.RawElement{
		icon("hammer"),
		icon("arrow up"),
	}, "EURUSD")

	if snap.IconsDetected != 2 {
		t.Errorf("expected 2 icons, got %d", snap.IconsDetected)
	}
	if len(snap.CandlestickPatterns) != 1 || snap.CandlestickPatterns[0] != "hammer" {
		t.Errorf("expected hammer pattern, got %v", snap.CandlestickPatterns)
	}
	if snap.Trend != models.TrendUp {
		t.Errorf("expected up trend from icon, got %s", snap.Trend)
	}
}

func TestExtractTickerZone(t *testing.T) {
	box := func(y float64) *models.BoundingBox {
		return &models.BoundingBox{X: 0.8, Y: y, W: 0.1, H: 0.05}
	}
	snap := newTestExtractor().Extract([]models.RawElement{
		{Content: "1.0849", Kind: models.ElementOther, Box: box(0.05)},
		{Content: "1.0901", Kind: models.ElementOther, Box: box(0.5)},
		{Content: "1.0853", Kind: models.ElementOther, Box: box(0.1)},
	}, "EURUSD")

	current, ok := snap.Level(models.LevelCurrent)
	if !ok {
		t.Fatal("expected current price from ticker zone")
	}
	if current != 1.0853 {
		t.Errorf("expected last ticker element to win (1.0853), got %v", current)
	}
}

func TestExtractIndicators(t *testing.T) {
	snap := newTestExtractor().Extract([]models.RawElement{
		text("MACD: -0.0021"),
		text("ATR 12.5"),
		text("EMA rising"),
		text("Stochastic overbought"),
	}, "EURUSD")

	if macd, ok := snap.IndicatorValue(models.IndicatorMACD); !ok || macd != -0.0021 {
		t.Errorf("MACD = %v (%v), want -0.0021", macd, ok)
	}
	if atr, ok := snap.IndicatorValue(models.IndicatorATR); !ok || atr != 12.5 {
		t.Errorf("ATR = %v (%v), want 12.5", atr, ok)
	}
	if ema, ok := snap.IndicatorText(models.IndicatorEMA); !ok || ema != "rising" {
		t.Errorf("EMA = %v (%v), want rising", ema, ok)
	}
	if stoch, ok := snap.IndicatorText(models.IndicatorStochastic); !ok || stoch != "overbought" {
		t.Errorf("Stochastic = %v (%v), want overbought", stoch, ok)
	}
}

func TestExtractMarketStatePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		elements []models.RawElement
		want     models.MarketState
	}{
		{"rsi overbought beats trend", []models.RawElement{text("RSI: 75"), text("strong uptrend")}, models.StateOverbought},
		{"rsi oversold", []models.RawElement{text("RSI: 25")}, models.StateOversold},
		{"trend up bullish", []models.RawElement{text("uptrend confirmed"), text("RSI: 50")}, models.StateBullish},
		{"trend down bearish", []models.RawElement{text("downtrend")}, models.StateBearish},
		{"neutral", []models.RawElement{text("quiet market")}, models.StateNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := newTestExtractor().Extract(tt.elements, "EURUSD")
			if snap.MarketState != tt.want {
				t.Errorf("market state = %s, want %s", snap.MarketState, tt.want)
			}
		})
	}
}

func TestEmptySnapshotCarriesErrorMarker(t *testing.T) {
	snap := EmptySnapshot("EURUSD", errors.New("annotation service unreachable"))
	if snap.ExtractionError != "annotation service unreachable" {
		t.Errorf("extraction error = %q", snap.ExtractionError)
	}
	if snap.Trend != models.TrendNeutral || snap.MarketState != models.StateNeutral {
		t.Error("expected neutral empty snapshot")
	}
}
