package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Trading.CurrencyPair != "EURUSD" {
		t.Errorf("pair = %s, want EURUSD", cfg.Trading.CurrencyPair)
	}
	if cfg.Risk.MaxExposure != 3.0 {
		t.Errorf("max exposure = %v, want 3.0", cfg.Risk.MaxExposure)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Trading.CurrencyPair != "EURUSD" {
		t.Errorf("pair = %s, want default EURUSD", cfg.Trading.CurrencyPair)
	}
	if cfg.Vision.URL != "http://localhost:8000" {
		t.Errorf("vision url = %s, want default", cfg.Vision.URL)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
trading:
  currency_pair: GBPUSD
  lot_size: 0.05
risk:
  max_exposure: 2.0
advisor:
  api_key: test-key
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Trading.CurrencyPair != "GBPUSD" {
		t.Errorf("pair = %s, want GBPUSD", cfg.Trading.CurrencyPair)
	}
	if cfg.Trading.LotSize != 0.05 {
		t.Errorf("lot size = %v, want 0.05", cfg.Trading.LotSize)
	}
	if cfg.Risk.MaxExposure != 2.0 {
		t.Errorf("max exposure = %v, want 2.0", cfg.Risk.MaxExposure)
	}
	if cfg.Advisor.APIKey != "test-key" {
		t.Errorf("api key = %s", cfg.Advisor.APIKey)
	}
	// Unspecified values keep their defaults.
	if cfg.Trading.RiskPercentage != 2.0 {
		t.Errorf("risk pct = %v, want default 2.0", cfg.Trading.RiskPercentage)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
trading:
  lot_size: -1
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected validation error for negative lot size")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		valid bool
	}{
		{"default", func(*Config) {}, true},
		{"empty pair", func(c *Config) { c.Trading.CurrencyPair = "" }, false},
		{"zero lot", func(c *Config) { c.Trading.LotSize = 0 }, false},
		{"risk over 100", func(c *Config) { c.Trading.RiskPercentage = 150 }, false},
		{"negative exposure", func(c *Config) { c.Risk.MaxExposure = -1 }, false},
		{"window hour out of range", func(c *Config) { c.Risk.VolatilityWindowEnd = 24 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mod(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
