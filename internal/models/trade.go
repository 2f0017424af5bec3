package models

import "time"

// TradeStatus is the lifecycle state of a logged trade.
type TradeStatus string

const (
	TradeOpen   TradeStatus = "open"
	TradeClosed TradeStatus = "closed"
)

// TradeRecord is one entry of the bounded trade journal. RewardPips is the
// realized outcome as a literal pip amount (negative for losses), never a
// trade-taken flag.
type TradeRecord struct {
	Timestamp           time.Time       `json:"timestamp"`
	CurrencyPair        string          `json:"currency_pair"`
	Action              SignalAction    `json:"action"`
	Direction           SignalDirection `json:"direction"`
	RewardPips          float64         `json:"reward_pips"`
	Status              TradeStatus     `json:"status"`
	PositionSize        float64         `json:"position_size"`
	StrategiesTriggered []string        `json:"strategies_triggered"`
}

// IsWin reports whether the trade realized a positive pip outcome.
func (t *TradeRecord) IsWin() bool {
	return t.RewardPips > 0
}

// IsLoss reports whether the trade realized a negative pip outcome.
func (t *TradeRecord) IsLoss() bool {
	return t.RewardPips < 0
}
