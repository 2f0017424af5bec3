// Package performance recomputes trading statistics from the trade journal.
// Reports are always rebuilt from scratch; there is no incremental state.
package performance

import (
	"math"
	"sort"

	"chartpilot/internal/models"
)

// Compute builds a fresh report from the journal snapshot. Only non-hold
// trades count; loss figures are positive magnitudes.
func Compute(history []models.TradeRecord) models.PerformanceReport {
	report := models.PerformanceReport{
		PerStrategy: make(map[string]models.StrategyPerformance),
	}

	trades := make([]models.TradeRecord, 0, len(history))
	for i := range history {
		if history[i].Action != models.ActionHold {
			trades = append(trades, history[i])
		}
	}
	if len(trades) == 0 {
		return report
	}

	report.TotalTrades = len(trades)

	var wins, losses int
	var grossWin, grossLoss float64
	for i := range trades {
		t := &trades[i]
		if t.Status == models.TradeOpen {
			report.ActiveTrades++
		}
		report.TotalPips += t.RewardPips

		switch {
		case t.IsWin():
			wins++
			grossWin += t.RewardPips
			if t.RewardPips > report.LargestWin {
				report.LargestWin = t.RewardPips
			}
		case t.IsLoss():
			losses++
			grossLoss += -t.RewardPips
			if -t.RewardPips > report.LargestLoss {
				report.LargestLoss = -t.RewardPips
			}
		}

		perStrategy(report.PerStrategy, t)
	}

	report.WinRate = float64(wins) / float64(len(trades)) * 100
	if wins > 0 {
		report.AvgWin = grossWin / float64(wins)
	}
	if losses > 0 {
		report.AvgLoss = grossLoss / float64(losses)
	}

	switch {
	case grossLoss > 0:
		report.ProfitFactor = grossWin / grossLoss
	case wins > 0:
		report.ProfitFactor = math.Inf(1)
	}

	series := cumulativeSeries(trades)
	report.MaxDrawdownPct = maxDrawdown(series) * 100
	report.SharpeRatio = sharpe(series)

	return report
}

func perStrategy(stats map[string]models.StrategyPerformance, t *models.TradeRecord) {
	for _, name := range t.StrategiesTriggered {
		s := stats[name]
		switch {
		case t.IsWin():
			s.Wins++
		case t.IsLoss():
			s.Losses++
		default:
			s.Ties++
		}
		s.TotalPips += t.RewardPips
		if total := s.Wins + s.Losses + s.Ties; total > 0 {
			s.WinRate = float64(s.Wins) / float64(total) * 100
		}
		stats[name] = s
	}
}

// cumulativeSeries builds the running pip total in timestamp order,
// starting from zero.
func cumulativeSeries(trades []models.TradeRecord) []float64 {
	ordered := make([]models.TradeRecord, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	series := make([]float64, 0, len(ordered)+1)
	series = append(series, 0)
	cum := 0.0
	for i := range ordered {
		cum += ordered[i].RewardPips
		series = append(series, cum)
	}
	return series
}

// maxDrawdown returns the largest peak-to-trough fraction of the cumulative
// series. Zero when the peak never goes positive.
func maxDrawdown(series []float64) float64 {
	peak, maxDD := 0.0, 0.0
	for _, cum := range series {
		if cum > peak {
			peak = cum
		}
		if peak > 0 && cum < peak {
			if dd := (peak - cum) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// sharpe is the simplified, unannualized mean-to-stddev ratio of per-step
// returns (successive differences of the cumulative series).
func sharpe(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		returns = append(returns, series[i]-series[i-1])
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}
	return mean / std
}
