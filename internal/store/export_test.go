package store

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"chartpilot/internal/models"
)

func TestExportHistoryJSON(t *testing.T) {
	dir := t.TempDir()

	entries := []HistoryEntry{
		{
			Trade: models.TradeRecord{
				Timestamp:    time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
				CurrencyPair: "EURUSD",
				Action:       models.ActionOpen,
				Direction:    models.DirectionBuy,
				RewardPips:   10,
				Status:       models.TradeClosed,
			},
			AnnotatedImage: "aHVnZSBiYXNlNjQgcGF5bG9hZA==",
		},
		{
			Trade: models.TradeRecord{
				CurrencyPair: "EURUSD",
				Action:       models.ActionOpen,
				Direction:    models.DirectionSell,
				Status:       models.TradeOpen,
			},
		},
	}

	path, err := ExportHistoryJSON(dir, entries)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(path, "trade_history_") {
		t.Errorf("path = %s, want timestamped name", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	var exported []HistoryEntry
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(exported) != 2 {
		t.Fatalf("got %d entries, want 2", len(exported))
	}
	if exported[0].AnnotatedImage != ImagePlaceholder {
		t.Errorf("image = %q, want placeholder", exported[0].AnnotatedImage)
	}
	if exported[1].AnnotatedImage != "" {
		t.Errorf("image = %q, want empty passthrough", exported[1].AnnotatedImage)
	}
	if exported[0].Trade.RewardPips != 10 {
		t.Errorf("reward = %v, want 10", exported[0].Trade.RewardPips)
	}

	// The caller's entries are untouched.
	if entries[0].AnnotatedImage == ImagePlaceholder {
		t.Error("export mutated the input slice")
	}
}

func TestHistoryEntries(t *testing.T) {
	trades := []models.TradeRecord{
		{CurrencyPair: "EURUSD"},
		{CurrencyPair: "GBPUSD"},
	}
	entries := HistoryEntries(trades)
	if len(entries) != 2 || entries[1].Trade.CurrencyPair != "GBPUSD" {
		t.Errorf("entries = %v", entries)
	}
}
