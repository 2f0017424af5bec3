// Package risk adapts position sizing and stops to recent performance and
// the current market snapshot.
package risk

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"chartpilot/internal/models"
)

// Baseline risk parameters before any adjustment.
const (
	defaultStopPips     = 15
	defaultTargetPips   = 30
	defaultPositionSize = 1.0
	defaultMaxExposure  = 3.0
	defaultThreshold    = 0.65

	minStopPips   = 8
	minTargetPips = 16
	minSize       = 0.1

	streakWindow = 10
)

// Config holds the tunable parts of the risk manager.
type Config struct {
	// Hour range (inclusive) treated as a high-volatility session.
	VolatilityWindowStart int
	VolatilityWindowEnd   int
	MaxExposure           float64
}

// DefaultConfig returns the stock configuration: the 13-15h window and a
// three-lot exposure cap.
func DefaultConfig() Config {
	return Config{
		VolatilityWindowStart: 13,
		VolatilityWindowEnd:   15,
		MaxExposure:           defaultMaxExposure,
	}
}

// Manager derives a RiskProfile from the snapshot and the trade journal.
type Manager struct {
	cfg    Config
	logger zerolog.Logger
	now    func() time.Time
}

// NewManager creates a risk manager.
func NewManager(cfg Config, logger zerolog.Logger) *Manager {
	if cfg.MaxExposure <= 0 {
		cfg.MaxExposure = defaultMaxExposure
	}
	return &Manager{cfg: cfg, logger: logger, now: time.Now}
}

// DefaultProfile returns the baseline medium-risk profile.
func (m *Manager) DefaultProfile() models.RiskProfile {
	return models.RiskProfile{
		Level:               models.RiskMedium,
		StopLossPips:        defaultStopPips,
		TakeProfitPips:      defaultTargetPips,
		PositionSize:        defaultPositionSize,
		MaxExposure:         m.cfg.MaxExposure,
		VolatilityFactor:    1.0,
		ConfidenceThreshold: defaultThreshold,
	}
}

// Profile computes the risk profile for one cycle. Adjustments apply
// cumulatively in a fixed order; the tier override never resets the size
// multipliers that follow it.
func (m *Manager) Profile(snap models.MarketSnapshot, history []models.TradeRecord) models.RiskProfile {
	profile := m.DefaultProfile()

	recent := lastN(history, streakWindow)
	streak := lossStreak(recent)

	// Tier override, first match wins.
	switch {
	case streak >= 5:
		profile.Level = models.RiskExtreme
		profile.PositionSize = 0.25
		profile.StopLossPips = 8
		profile.ConfidenceThreshold = 0.85
	case streak >= 3:
		profile.Level = models.RiskHigh
		profile.PositionSize = 0.5
		profile.StopLossPips = 10
		profile.ConfidenceThreshold = 0.75
	case streak == 0 && len(recent) >= 5 && winRate(recent) > 70:
		profile.Level = models.RiskLow
		profile.PositionSize = 1.5
	}

	if atr, ok := snap.IndicatorValue(models.IndicatorATR); ok {
		factor := clamp(atr/10, 0.5, 3.0)
		profile.VolatilityFactor = factor
		profile.StopLossPips = maxInt(minStopPips, int(math.Round(float64(profile.StopLossPips)*factor)))
		profile.TakeProfitPips = maxInt(minTargetPips, int(math.Round(float64(profile.TakeProfitPips)*factor)))
	}

	if opposesTrend(netExposure(history), snap.Trend) {
		profile.PositionSize *= 0.75
	}

	if rsi, ok := snap.IndicatorValue(models.IndicatorRSI); ok {
		if rsi < 20 || rsi > 80 {
			profile.PositionSize *= 0.8
		}
	}

	hour := m.now().Hour()
	if hour >= m.cfg.VolatilityWindowStart && hour <= m.cfg.VolatilityWindowEnd {
		profile.PositionSize *= 0.8
	}

	open := openExposure(history)
	if open+profile.PositionSize > profile.MaxExposure {
		profile.PositionSize = math.Max(minSize, profile.MaxExposure-open)
	}

	if profile.Level == models.RiskExtreme {
		m.logger.Warn().Int("loss_streak", streak).Msg("extreme risk tier active, new positions will be vetoed")
	}

	return profile
}

// lossStreak counts consecutive losing trades from the most recent until a
// non-loss breaks the streak.
func lossStreak(recent []models.TradeRecord) int {
	streak := 0
	for i := len(recent) - 1; i >= 0; i-- {
		if !recent[i].IsLoss() {
			break
		}
		streak++
	}
	return streak
}

func winRate(trades []models.TradeRecord) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for i := range trades {
		if trades[i].IsWin() {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

// netExposure is the signed sum of open position sizes: buys positive,
// sells negative.
func netExposure(history []models.TradeRecord) float64 {
	net := 0.0
	for i := range history {
		if history[i].Status != models.TradeOpen {
			continue
		}
		switch history[i].Direction {
		case models.DirectionBuy:
			net += history[i].PositionSize
		case models.DirectionSell:
			net -= history[i].PositionSize
		}
	}
	return net
}

// openExposure is the gross size of all open positions.
func openExposure(history []models.TradeRecord) float64 {
	total := 0.0
	for i := range history {
		if history[i].Status == models.TradeOpen {
			total += history[i].PositionSize
		}
	}
	return total
}

func opposesTrend(net float64, trend models.Trend) bool {
	switch trend {
	case models.TrendUp:
		return net < 0
	case models.TrendDown:
		return net > 0
	}
	return false
}

func lastN(trades []models.TradeRecord, n int) []models.TradeRecord {
	if len(trades) <= n {
		return trades
	}
	return trades[len(trades)-n:]
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
