package models

import "time"

// SignalAction is what a strategy or decision wants to do.
type SignalAction string

const (
	ActionHold SignalAction = "hold"
	ActionOpen SignalAction = "open"
)

// SignalDirection is the side of a proposed position.
type SignalDirection string

const (
	DirectionNone SignalDirection = "none"
	DirectionBuy  SignalDirection = "buy"
	DirectionSell SignalDirection = "sell"
)

// RiskLevel grades the current risk environment.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskExtreme RiskLevel = "extreme"
)

// RiskProfile holds the adaptive risk parameters for one analysis cycle.
type RiskProfile struct {
	Level               RiskLevel `json:"level"`
	StopLossPips        int       `json:"stop_loss_pips"`
	TakeProfitPips      int       `json:"take_profit_pips"`
	PositionSize        float64   `json:"position_size"`
	MaxExposure         float64   `json:"max_exposure"`
	VolatilityFactor    float64   `json:"volatility_factor"`
	ConfidenceThreshold float64   `json:"confidence_threshold"`
}

// StrategySignal is the output of a single strategy evaluator.
type StrategySignal struct {
	StrategyName string          `json:"strategy_name"`
	Action       SignalAction    `json:"action"`
	Direction    SignalDirection `json:"direction"`
	Confidence   float64         `json:"confidence"`
}

// Decision is the final output of one analysis cycle. It always carries the
// risk-derived fields and the snapshot confidence, even when holding.
type Decision struct {
	Timestamp           time.Time       `json:"timestamp"`
	CurrencyPair        string          `json:"currency_pair"`
	Action              SignalAction    `json:"action"`
	Direction           SignalDirection `json:"direction"`
	Confidence          float64         `json:"confidence"`
	StopLossPips        int             `json:"stop_loss_pips"`
	TakeProfitPips      int             `json:"take_profit_pips"`
	PositionSize        float64         `json:"position_size"`
	StrategiesTriggered []string        `json:"strategies_triggered"`
	Reasoning           []string        `json:"reasoning"`
}
