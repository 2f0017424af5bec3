package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fatih/color"

	"chartpilot/internal/models"
)

var (
	buyColor  = color.New(color.FgGreen, color.Bold)
	sellColor = color.New(color.FgRed, color.Bold)
	holdColor = color.New(color.FgYellow, color.Bold)
	heading   = color.New(color.Bold)
)

func colorAction(action string) string {
	switch strings.ToLower(action) {
	case "buy":
		return buyColor.Sprint("BUY")
	case "sell":
		return sellColor.Sprint("SELL")
	default:
		return holdColor.Sprint("HOLD")
	}
}

func printDecision(d models.Decision) {
	action := string(d.Action)
	if d.Action == models.ActionOpen {
		action = string(d.Direction)
	}

	fmt.Printf("%s %s  %s\n", heading.Sprint("Decision:"), colorAction(action), d.CurrencyPair)
	fmt.Printf("  Confidence:  %.2f\n", d.Confidence)
	fmt.Printf("  Stop/Target: %d / %d pips\n", d.StopLossPips, d.TakeProfitPips)
	fmt.Printf("  Size:        %.2f lots\n", d.PositionSize)
	if len(d.StrategiesTriggered) > 0 {
		fmt.Printf("  Strategies:  %s\n", strings.Join(d.StrategiesTriggered, ", "))
	}
	fmt.Println(heading.Sprint("Reasoning:"))
	for _, r := range d.Reasoning {
		fmt.Printf("  - %s\n", r)
	}
}

func printTrades(trades []models.TradeRecord) {
	fmt.Println(heading.Sprint("Recent trades:"))
	for i := range trades {
		t := &trades[i]
		fmt.Printf("  %s  %s %-4s  %+7.1f pips  %s\n",
			t.Timestamp.Format("2006-01-02 15:04"),
			t.CurrencyPair,
			colorAction(string(t.Direction)),
			t.RewardPips,
			t.Status)
	}
}

func printReport(r models.PerformanceReport) {
	fmt.Println(heading.Sprint("Performance report:"))
	fmt.Printf("  Trades:        %d (%d active)\n", r.TotalTrades, r.ActiveTrades)
	fmt.Printf("  Win rate:      %.1f%%\n", r.WinRate)
	fmt.Printf("  Total pips:    %+.1f\n", r.TotalPips)
	fmt.Printf("  Avg win/loss:  %.1f / %.1f\n", r.AvgWin, r.AvgLoss)
	fmt.Printf("  Largest:       +%.1f / -%.1f\n", r.LargestWin, r.LargestLoss)
	if math.IsInf(r.ProfitFactor, 1) {
		fmt.Printf("  Profit factor: inf\n")
	} else {
		fmt.Printf("  Profit factor: %.2f\n", r.ProfitFactor)
	}
	fmt.Printf("  Sharpe:        %.2f\n", r.SharpeRatio)
	fmt.Printf("  Max drawdown:  %.1f%%\n", r.MaxDrawdownPct)

	if len(r.PerStrategy) == 0 {
		return
	}
	fmt.Println(heading.Sprint("Per strategy:"))
	names := make([]string, 0, len(r.PerStrategy))
	for name := range r.PerStrategy {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := r.PerStrategy[name]
		fmt.Printf("  %-20s %dW/%dL/%dT  %.1f%%  %+.1f pips\n",
			name, s.Wins, s.Losses, s.Ties, s.WinRate, s.TotalPips)
	}
}
