// Package advisor provides the advisory LLM decision path. It is an
// alternative decision source; the deterministic aggregator never depends
// on it.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chartpilot/internal/models"
	"chartpilot/pkg/utils"
)

const systemPrompt = "You are an expert forex trading assistant. Analyze the market data " +
	"and provide trading advice in JSON format with action and reasoning fields."

const recentTradeLimit = 5

// Advice is the validated advisory output. Action is always one of
// buy/sell/hold; anything malformed degrades to hold.
type Advice struct {
	Action    string    `json:"action"`
	Reasoning string    `json:"reasoning"`
	Timestamp time.Time `json:"timestamp"`
}

// Completer abstracts the chat completion backend.
type Completer interface {
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Advisor turns a snapshot and recent history into advisory trade advice.
type Advisor struct {
	client Completer
	logger zerolog.Logger
	retry  utils.RetryConfig
}

// New creates an advisor backed by the given completion client.
func New(client Completer, logger zerolog.Logger) *Advisor {
	return &Advisor{
		client: client,
		logger: logger,
		retry:  utils.DefaultRetryConfig(),
	}
}

// Decide asks the advisory model for a decision. Transport failures and any
// malformed or out-of-vocabulary output degrade to a hold advice; Decide
// never fails the caller.
func (a *Advisor) Decide(ctx context.Context, snap models.MarketSnapshot, recent []models.TradeRecord) Advice {
	prompt, err := buildPrompt(snap, recent)
	if err != nil {
		a.logger.Error().Err(err).Msg("advisory prompt build failed, holding")
		return holdAdvice("failed to serialize market data: " + err.Error())
	}

	var raw string
	err = utils.Retry(ctx, a.retry, func() error {
		var callErr error
		raw, callErr = a.client.CompleteWithSystem(ctx, systemPrompt, prompt)
		return callErr
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("advisory completion failed, holding")
		return holdAdvice("advisor unavailable: " + err.Error())
	}

	return a.validate(raw)
}

// validate parses the model output and enforces the action vocabulary.
func (a *Advisor) validate(raw string) Advice {
	var parsed struct {
		Action    string `json:"action"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		a.logger.Warn().Err(err).Str("output", raw).Msg("malformed advisory output, holding")
		return holdAdvice("malformed advisory output")
	}

	action := strings.ToLower(strings.TrimSpace(parsed.Action))
	switch action {
	case "buy", "sell", "hold":
	default:
		a.logger.Warn().Str("action", parsed.Action).Msg("invalid advisory action, holding")
		return holdAdvice(fmt.Sprintf("invalid advisory action %q", parsed.Action))
	}
	if parsed.Reasoning == "" {
		return holdAdvice("advisory output missing reasoning")
	}

	return Advice{Action: action, Reasoning: parsed.Reasoning, Timestamp: time.Now()}
}

func holdAdvice(reason string) Advice {
	return Advice{Action: "hold", Reasoning: reason, Timestamp: time.Now()}
}

// extractJSON trims any prose around the first JSON object in the output.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

func buildPrompt(snap models.MarketSnapshot, recent []models.TradeRecord) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}

	if len(recent) > recentTradeLimit {
		recent = recent[len(recent)-recentTradeLimit:]
	}
	var trades strings.Builder
	for i := range recent {
		t := &recent[i]
		fmt.Fprintf(&trades, "Trade %d: %s %s at %s, %.1f pips, %s\n",
			i+1, strings.ToUpper(string(t.Action)), t.Direction,
			t.Timestamp.Format("2006-01-02 15:04:05"), t.RewardPips, t.Status)
	}
	if trades.Len() == 0 {
		trades.WriteString("No previous trades\n")
	}

	return fmt.Sprintf(`Please analyze this forex market data and make a trading decision.

MARKET DATA:
%s

RECENT TRADE HISTORY:
%s
Decide whether to BUY (strong upward trend or oversold condition), SELL
(strong downward trend or overbought condition) or HOLD (unclear direction
or excessive risk). Focus on risk management and default to HOLD when
uncertain.

Respond with a JSON object: {"action": "buy|sell|hold", "reasoning": "brief explanation"}`,
		string(data), trades.String()), nil
}
