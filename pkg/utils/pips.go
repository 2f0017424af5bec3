// Package utils provides small shared helpers.
package utils

import (
	"math"
	"strings"
)

// DefaultPipValue is used for pairs missing from the table.
const DefaultPipValue = 10.0

// pipValues holds standard per-lot pip values (USD account) for common pairs.
var pipValues = map[string]float64{
	"EURUSD": 10,
	"GBPUSD": 10,
	"USDJPY": 9.40,
	"AUDUSD": 10,
	"USDCHF": 10.60,
	"USDCAD": 7.60,
	"NZDUSD": 10,
}

// PipValue returns the pip value for a pair scaled by lot size. Unlisted
// pairs fall back to DefaultPipValue. An overrides table (from config) takes
// precedence over the built-in one.
func PipValue(pair string, lotSize float64, overrides map[string]float64) float64 {
	pair = strings.ToUpper(strings.TrimSpace(pair))
	standard, ok := overrides[pair]
	if !ok {
		standard, ok = pipValues[pair]
	}
	if !ok {
		standard = DefaultPipValue
	}
	return standard * lotSize
}

// PositionSizeByRisk computes a lot size from the account balance, the
// percentage of it to risk and the stop distance in pips. Rounded to two
// decimals, the broker lot granularity.
func PositionSizeByRisk(balance, riskPercentage float64, stopLossPips int, pair string, overrides map[string]float64) float64 {
	if balance <= 0 || riskPercentage <= 0 || stopLossPips <= 0 {
		return 0
	}
	riskAmount := balance * (riskPercentage / 100)
	lossPerLot := float64(stopLossPips) * PipValue(pair, 1.0, overrides)
	if lossPerLot == 0 {
		return 0
	}
	return math.Round(riskAmount/lossPerLot*100) / 100
}
