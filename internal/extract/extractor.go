// Package extract converts annotated screenshot elements into a structured
// market snapshot. Extraction never fails: malformed values are logged and
// omitted, and an upstream failure yields an empty error-flagged snapshot.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chartpilot/internal/models"
)

// tickerZoneHeight is the normalized frame height band treated as the price
// ticker area. Digit-bearing elements in this band feed priceLevels.current.
const tickerZoneHeight = 0.2

var (
	decimalRe = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)
	digitRe   = regexp.MustCompile(`\d`)

	rsiFallbackRe = regexp.MustCompile(`rsi[^0-9+\-]*([-+]?\d+(?:\.\d+)?)`)

	levelRes = buildLevelRegexps()
)

func buildLevelRegexps() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(levelTerms))
	for _, lt := range levelTerms {
		res[lt.level] = regexp.MustCompile(`\b` + lt.term + `\b`)
	}
	return res
}

// Extractor builds market snapshots from vision service output.
type Extractor struct {
	logger zerolog.Logger
	now    func() time.Time
}

// New creates an Extractor.
func New(logger zerolog.Logger) *Extractor {
	return &Extractor{logger: logger, now: time.Now}
}

// EmptySnapshot returns a neutral snapshot carrying an error marker. Used
// when the vision collaborator fails so the pipeline still emits a safe hold.
func EmptySnapshot(pair string, err error) models.MarketSnapshot {
	snap := newSnapshot(pair, time.Now())
	if err != nil {
		snap.ExtractionError = err.Error()
	}
	return snap
}

func newSnapshot(pair string, ts time.Time) models.MarketSnapshot {
	return models.MarketSnapshot{
		CurrencyPair:        pair,
		Timestamp:           ts,
		CandlestickPatterns: []string{},
		Indicators:          map[string]any{},
		PriceLevels:         map[string]float64{},
		Trend:               models.TrendNeutral,
		MarketState:         models.StateNeutral,
	}
}

// Extract processes the ordered element sequence into a snapshot. Each
// element content is scanned independently per category, so one element may
// contribute a pattern, an indicator and a price level at once.
func (e *Extractor) Extract(elements []models.RawElement, pair string) models.MarketSnapshot {
	snap := newSnapshot(pair, e.now())

	for _, el := range elements {
		content := strings.TrimSpace(el.Content)
		if content == "" {
			continue
		}
		snap.ElementCount++
		lower := strings.ToLower(content)

		switch el.Kind {
		case models.ElementIcon:
			snap.IconsDetected++
			e.scanPatterns(lower, &snap)
			e.scanIconTrend(lower, &snap)
		case models.ElementText:
			snap.TextElements++
			e.scanPatterns(lower, &snap)
			e.scanTrend(lower, &snap)
			e.scanRSI(lower, &snap)
			e.scanIndicators(lower, &snap)
			e.scanPriceLevels(lower, &snap)
		}

		e.scanTicker(el, lower, &snap)
	}

	rsi, hasRSI := snap.IndicatorValue(models.IndicatorRSI)
	snap.MarketState = models.DeriveMarketState(rsi, hasRSI, snap.Trend)

	return snap
}

// scanPatterns records every candlestick pattern phrase present in content.
func (e *Extractor) scanPatterns(lower string, snap *models.MarketSnapshot) {
	for _, phrase := range patternScanOrder {
		if strings.Contains(lower, phrase) {
			snap.CandlestickPatterns = append(snap.CandlestickPatterns, patternPhrases[phrase])
		}
	}
}

// scanTrend overwrites the snapshot trend with the last matching text
// keyword (last writer wins across elements).
func (e *Extractor) scanTrend(lower string, snap *models.MarketSnapshot) {
	for _, tk := range trendKeywords {
		if strings.Contains(lower, tk.phrase) {
			snap.Trend = tk.trend
		}
	}
}

// scanIconTrend classifies directional icons (arrows, markers).
func (e *Extractor) scanIconTrend(lower string, snap *models.MarketSnapshot) {
	for _, ik := range iconTrendKeywords {
		if strings.Contains(lower, ik.keyword) {
			snap.Trend = ik.trend
		}
	}
}

// scanRSI applies the ordered parse fallbacks: split on "rsi:", then "rsi=",
// then a regex for the first decimal after "rsi". First success wins.
func (e *Extractor) scanRSI(lower string, snap *models.MarketSnapshot) {
	if !strings.Contains(lower, "rsi") {
		return
	}
	for _, sep := range []string{"rsi:", "rsi="} {
		if _, after, found := strings.Cut(lower, sep); found {
			if v, ok := firstDecimal(strings.ReplaceAll(after, "%", "")); ok {
				snap.Indicators[models.IndicatorRSI] = v
				return
			}
		}
	}
	if m := rsiFallbackRe.FindStringSubmatch(strings.ReplaceAll(lower, "%", "")); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			snap.Indicators[models.IndicatorRSI] = v
			return
		}
	}
	e.logger.Debug().Str("field", models.IndicatorRSI).Str("content", lower).
		Msg("indicator value not parseable, field omitted")
}

// scanIndicators extracts the remaining indicator values. MACD, ATR and EMA
// are numeric; EMA slope and Stochastic condition may arrive as text.
func (e *Extractor) scanIndicators(lower string, snap *models.MarketSnapshot) {
	if idx := strings.Index(lower, "macd"); idx >= 0 {
		e.setNumericIndicator(models.IndicatorMACD, lower[idx+len("macd"):], lower, snap)
	}
	if idx := strings.Index(lower, "atr"); idx >= 0 {
		e.setNumericIndicator(models.IndicatorATR, lower[idx+len("atr"):], lower, snap)
	}
	if idx := strings.Index(lower, "ema"); idx >= 0 {
		switch {
		case strings.Contains(lower, "rising"):
			snap.Indicators[models.IndicatorEMA] = "rising"
		case strings.Contains(lower, "falling"):
			snap.Indicators[models.IndicatorEMA] = "falling"
		default:
			e.setNumericIndicator(models.IndicatorEMA, lower[idx+len("ema"):], lower, snap)
		}
	}
	if strings.Contains(lower, "stochastic") || strings.Contains(lower, "stoch") {
		switch {
		case strings.Contains(lower, "oversold"):
			snap.Indicators[models.IndicatorStochastic] = "oversold"
		case strings.Contains(lower, "overbought"):
			snap.Indicators[models.IndicatorStochastic] = "overbought"
		default:
			idx := strings.Index(lower, "stoch")
			e.setNumericIndicator(models.IndicatorStochastic, lower[idx+len("stoch"):], lower, snap)
		}
	}
}

func (e *Extractor) setNumericIndicator(name, after, content string, snap *models.MarketSnapshot) {
	v, ok := firstDecimal(strings.ReplaceAll(after, "%", ""))
	if !ok {
		e.logger.Debug().Str("field", name).Str("content", content).
			Msg("indicator value not parseable, field omitted")
		return
	}
	snap.Indicators[name] = v
}

// scanPriceLevels extracts named levels: the first decimal following each
// recognized term. A term with no parseable value is logged and omitted.
func (e *Extractor) scanPriceLevels(lower string, snap *models.MarketSnapshot) {
	for _, lt := range levelTerms {
		loc := levelRes[lt.level].FindStringIndex(lower)
		if loc == nil {
			continue
		}
		v, ok := firstDecimal(lower[loc[1]:])
		if !ok {
			e.logger.Debug().Str("field", lt.level).Str("content", lower).
				Msg("price level not parseable, field omitted")
			continue
		}
		snap.PriceLevels[lt.level] = v
	}
}

// scanTicker treats digit-bearing elements in the top band of the frame as
// the price ticker; the last such element wins priceLevels.current.
func (e *Extractor) scanTicker(el models.RawElement, lower string, snap *models.MarketSnapshot) {
	if el.Box == nil || el.Box.Y >= tickerZoneHeight {
		return
	}
	if !digitRe.MatchString(lower) {
		return
	}
	if v, ok := firstDecimal(lower); ok {
		snap.PriceLevels[models.LevelCurrent] = v
	}
}

func firstDecimal(s string) (float64, bool) {
	m := decimalRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
