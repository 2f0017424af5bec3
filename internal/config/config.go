// Package config provides configuration management for the trading agent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Trading TradingConfig      `mapstructure:"trading"`
	Risk    RiskConfig         `mapstructure:"risk"`
	Vision  VisionConfig       `mapstructure:"vision"`
	Advisor AdvisorConfig      `mapstructure:"advisor"`
	Logging LoggingConfig      `mapstructure:"logging"`
	Pips    map[string]float64 `mapstructure:"pips"`
}

// TradingConfig holds trading-related configuration.
type TradingConfig struct {
	CurrencyPair   string  `mapstructure:"currency_pair"`
	LotSize        float64 `mapstructure:"lot_size"`
	RiskPercentage float64 `mapstructure:"risk_percentage"`
}

// RiskConfig holds risk manager configuration.
type RiskConfig struct {
	VolatilityWindowStart int     `mapstructure:"volatility_window_start"`
	VolatilityWindowEnd   int     `mapstructure:"volatility_window_end"`
	MaxExposure           float64 `mapstructure:"max_exposure"`
}

// VisionConfig holds the vision collaborator configuration.
type VisionConfig struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// AdvisorConfig holds the advisory LLM configuration.
type AdvisorConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/chartpilot"
	}
	return filepath.Join(home, ".config", "chartpilot")
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Trading: TradingConfig{
			CurrencyPair:   "EURUSD",
			LotSize:        0.01,
			RiskPercentage: 2.0,
		},
		Risk: RiskConfig{
			VolatilityWindowStart: 13,
			VolatilityWindowEnd:   15,
			MaxExposure:           3.0,
		},
		Vision: VisionConfig{
			URL:            "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Advisor: AdvisorConfig{
			Model: "gpt-4o",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Console:  true,
			File:     true,
			FilePath: filepath.Join(DefaultConfigDir(), "logs", "chartpilot.log"),
		},
		Pips: map[string]float64{},
	}
}

// Load loads configuration from the specified directory, falling back to
// defaults when no config file exists. If configDir is empty, the default
// config directory is used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("CHARTPILOT")
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("trading.currency_pair", cfg.Trading.CurrencyPair)
	v.SetDefault("trading.lot_size", cfg.Trading.LotSize)
	v.SetDefault("trading.risk_percentage", cfg.Trading.RiskPercentage)
	v.SetDefault("risk.volatility_window_start", cfg.Risk.VolatilityWindowStart)
	v.SetDefault("risk.volatility_window_end", cfg.Risk.VolatilityWindowEnd)
	v.SetDefault("risk.max_exposure", cfg.Risk.MaxExposure)
	v.SetDefault("vision.url", cfg.Vision.URL)
	v.SetDefault("vision.timeout_seconds", cfg.Vision.TimeoutSeconds)
	v.SetDefault("advisor.model", cfg.Advisor.Model)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.console", cfg.Logging.Console)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.file_path", cfg.Logging.FilePath)
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Trading.CurrencyPair == "" {
		return fmt.Errorf("trading.currency_pair must not be empty")
	}
	if c.Trading.LotSize <= 0 {
		return fmt.Errorf("trading.lot_size must be positive, got %f", c.Trading.LotSize)
	}
	if c.Trading.RiskPercentage <= 0 || c.Trading.RiskPercentage > 100 {
		return fmt.Errorf("trading.risk_percentage must be in (0,100], got %f", c.Trading.RiskPercentage)
	}
	if c.Risk.MaxExposure <= 0 {
		return fmt.Errorf("risk.max_exposure must be positive, got %f", c.Risk.MaxExposure)
	}
	if c.Risk.VolatilityWindowStart < 0 || c.Risk.VolatilityWindowStart > 23 ||
		c.Risk.VolatilityWindowEnd < 0 || c.Risk.VolatilityWindowEnd > 23 {
		return fmt.Errorf("risk volatility window hours must be in [0,23]")
	}
	return nil
}
