package extract

import "chartpilot/internal/models"

// patternPhrases maps lowercase phrases found in annotated text to
// candlestick pattern tags. Every phrase present in an element is recorded;
// matching is substring based so "bullish engulfing pattern forming" still
// tags bullish_engulfing.
var patternPhrases = map[string]string{
	"bullish engulfing": "bullish_engulfing",
	"bearish engulfing": "bearish_engulfing",
	"hammer":            "hammer",
	"shooting star":     "shooting_star",
	"morning star":      "morning_star",
	"evening star":      "evening_star",
	"tweezer bottom":    "tweezer_bottom",
	"tweezer top":       "tweezer_top",
	"spinning top":      "spinning_top",
	"doji":              "doji",
}

// patternScanOrder fixes the scan order so multi-word phrases win over their
// substrings ("shooting star" before "star"-free but also "tweezer top"
// before "top"-like collisions).
var patternScanOrder = []string{
	"bullish engulfing",
	"bearish engulfing",
	"shooting star",
	"morning star",
	"evening star",
	"tweezer bottom",
	"tweezer top",
	"spinning top",
	"hammer",
	"doji",
}

// trendKeywords maps lowercase trend phrases to a trend direction. Longer
// phrases are scanned first so "downtrend" is not shadowed by "trend".
var trendKeywords = []struct {
	phrase string
	trend  models.Trend
}{
	{"uptrend", models.TrendUp},
	{"downtrend", models.TrendDown},
	{"trending up", models.TrendUp},
	{"trending down", models.TrendDown},
	{"higher highs", models.TrendUp},
	{"lower lows", models.TrendDown},
	{"sideways", models.TrendSideways},
	{"ranging", models.TrendSideways},
	{"consolidation", models.TrendSideways},
}

// iconTrendKeywords classifies icon elements (arrows, markers) by direction.
var iconTrendKeywords = []struct {
	keyword string
	trend   models.Trend
}{
	{"arrow up", models.TrendUp},
	{"arrow down", models.TrendDown},
	{"up arrow", models.TrendUp},
	{"down arrow", models.TrendDown},
	{"bullish", models.TrendUp},
	{"bearish", models.TrendDown},
}

// levelTerms maps price level terms to canonical level names. Each term is
// matched on a word boundary and the first decimal after it becomes the
// level value.
var levelTerms = []struct {
	term  string
	level string
}{
	{"bid", models.LevelBid},
	{"ask", models.LevelAsk},
	{"support", models.LevelSupport},
	{"resistance", models.LevelResistance},
	{"pivot", models.LevelPivot},
	{"s1", models.LevelSupport1},
	{"s2", models.LevelSupport2},
	{"r1", models.LevelResistance1},
	{"r2", models.LevelResistance2},
}
