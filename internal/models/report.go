package models

// StrategyPerformance is the per-strategy slice of a performance report.
type StrategyPerformance struct {
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Ties      int     `json:"ties"`
	WinRate   float64 `json:"win_rate"`
	TotalPips float64 `json:"total_pips"`
}

// PerformanceReport summarizes the trade journal. Loss figures (LargestLoss,
// AvgLoss) are reported as positive magnitudes. ProfitFactor is +Inf when
// there are wins but no losses.
type PerformanceReport struct {
	WinRate        float64                        `json:"win_rate"`
	TotalTrades    int                            `json:"total_trades"`
	ActiveTrades   int                            `json:"active_trades"`
	TotalPips      float64                        `json:"total_pips"`
	LargestWin     float64                        `json:"largest_win"`
	LargestLoss    float64                        `json:"largest_loss"`
	AvgWin         float64                        `json:"avg_win"`
	AvgLoss        float64                        `json:"avg_loss"`
	ProfitFactor   float64                        `json:"profit_factor"`
	SharpeRatio    float64                        `json:"sharpe_ratio"`
	MaxDrawdownPct float64                        `json:"max_drawdown_pct"`
	PerStrategy    map[string]StrategyPerformance `json:"per_strategy"`
}
