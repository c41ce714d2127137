// config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// HedgeConfig holds the parameters of the protective-put hedging strategy.
// All of them are fixed at construction; the engine never reloads them mid-run.
type HedgeConfig struct {
	PutStrikePercent      float64 `yaml:"put_strike_percent"`
	HedgeRatio            float64 `yaml:"hedge_ratio"`
	DrawdownThreshold     float64 `yaml:"drawdown_threshold"`
	MinDaysToExpiration   int     `yaml:"min_days_to_expiration"`
	MaxDaysToExpiration   int     `yaml:"max_days_to_expiration"`
	MinOptionVolume       int64   `yaml:"min_option_volume"`
	MaxBidAskSpread       float64 `yaml:"max_bid_ask_spread"`
	MinIntervalHours      int     `yaml:"min_interval_hours"`
	HedgeScaleDrawdownCap float64 `yaml:"hedge_scale_drawdown_cap"`
	StrikeBandPercent     float64 `yaml:"strike_band_percent"`
}

// MinInterval returns the minimum elapsed time between two full re-evaluations.
func (h *HedgeConfig) MinInterval() time.Duration {
	return time.Duration(h.MinIntervalHours) * time.Hour
}

// LogConfig holds the configuration for logging.
type LogConfig struct {
	LogLevel   string `yaml:"log_level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// NormalConfig holds all general, non-strategy-specific configuration.
type NormalConfig struct {
	TickIntervalSeconds      int    `yaml:"tick_interval_seconds"`
	HeartbeatIntervalMinutes int    `yaml:"heartbeat_interval_minutes"`
	LogDirectory             string `yaml:"log_directory"`
	JournalDirectory         string `yaml:"journal_directory"`
}

// SimulationConfig describes the simulated portfolio the bot runs against when
// no live data feed is wired in.
type SimulationConfig struct {
	Seed            int64              `yaml:"seed"`
	Cash            float64            `yaml:"cash"`
	DailyVolatility float64            `yaml:"daily_volatility"`
	Holdings        []SimulatedHolding `yaml:"holdings"`
}

// SimulatedHolding is one equity line of the simulated portfolio.
type SimulatedHolding struct {
	Symbol   string  `yaml:"symbol"`
	Quantity int     `yaml:"quantity"`
	Price    float64 `yaml:"price"`
}

// Config is the top-level configuration structure.
type Config struct {
	Name             string            `yaml:"name"`
	Hedge            *HedgeConfig      `yaml:"hedge"`
	Normal           *NormalConfig     `yaml:"normal_config"`
	Logs             *LogConfig        `yaml:"logs"`
	Simulation       *SimulationConfig `yaml:"simulation"`
	PremiumBudgetUSD float64           `yaml:"premium_budget_usd"`
}

// NewConfig creates a Config with the documented strategy defaults. The YAML
// file may override any of them; Validate guards the result either way.
func NewConfig() *Config {
	return &Config{
		Name: "protective-put",
		Hedge: &HedgeConfig{
			PutStrikePercent:      0.90,
			HedgeRatio:            0.05,
			DrawdownThreshold:     -0.12,
			MinDaysToExpiration:   60,
			MaxDaysToExpiration:   90,
			MinOptionVolume:       500,
			MaxBidAskSpread:       0.05,
			MinIntervalHours:      24,
			HedgeScaleDrawdownCap: 0.20,
			StrikeBandPercent:     0.05,
		},
		Logs:       &LogConfig{},
		Normal:     &NormalConfig{},
		Simulation: &SimulationConfig{},
	}
}

// LoadConfig loads configuration from a given path, applies defaults, and validates it.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("Error: Config file not found at %s. Program cannot run without a config file", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the logical consistency and completeness of the entire configuration.
func (c *Config) Validate() error {
	if c.Hedge == nil {
		return fmt.Errorf("Critical config missing: 'hedge' configuration block must be provided in config.yaml")
	}
	h := c.Hedge
	if h.PutStrikePercent <= 0 || h.PutStrikePercent >= 1 {
		return fmt.Errorf("Config error: 'hedge.put_strike_percent' must be in (0, 1), got %.4f", h.PutStrikePercent)
	}
	if h.HedgeRatio <= 0 || h.HedgeRatio > 1 {
		return fmt.Errorf("Config error: 'hedge.hedge_ratio' must be in (0, 1], got %.4f", h.HedgeRatio)
	}
	if h.DrawdownThreshold >= 0 {
		return fmt.Errorf("Config error: 'hedge.drawdown_threshold' must be negative (e.g. -0.12), got %.4f", h.DrawdownThreshold)
	}
	if h.MinDaysToExpiration <= 0 {
		return fmt.Errorf("Critical config missing: 'hedge.min_days_to_expiration' must be positive")
	}
	if h.MaxDaysToExpiration <= h.MinDaysToExpiration {
		return fmt.Errorf("Config error: 'hedge.max_days_to_expiration' (%d) must be greater than min_days_to_expiration (%d)", h.MaxDaysToExpiration, h.MinDaysToExpiration)
	}
	if h.MinOptionVolume < 0 {
		return fmt.Errorf("Config error: 'hedge.min_option_volume' cannot be negative")
	}
	if h.MaxBidAskSpread <= 0 || h.MaxBidAskSpread >= 1 {
		return fmt.Errorf("Config error: 'hedge.max_bid_ask_spread' must be in (0, 1), got %.4f", h.MaxBidAskSpread)
	}
	if h.MinIntervalHours <= 0 {
		return fmt.Errorf("Critical config missing: 'hedge.min_interval_hours' must be positive")
	}
	if h.HedgeScaleDrawdownCap <= 0 {
		return fmt.Errorf("Config error: 'hedge.hedge_scale_drawdown_cap' must be positive, got %.4f", h.HedgeScaleDrawdownCap)
	}
	if h.StrikeBandPercent <= 0 || h.StrikeBandPercent >= 1 {
		return fmt.Errorf("Config error: 'hedge.strike_band_percent' must be in (0, 1), got %.4f", h.StrikeBandPercent)
	}

	if c.Normal == nil {
		return fmt.Errorf("Critical config missing: 'normal_config' configuration block must be provided in config.yaml")
	}
	if c.Normal.TickIntervalSeconds <= 0 {
		return fmt.Errorf("Critical config missing: 'normal_config.tick_interval_seconds' must be explicitly specified and be positive")
	}
	if c.Normal.HeartbeatIntervalMinutes <= 0 {
		return fmt.Errorf("Critical config missing: 'normal_config.heartbeat_interval_minutes' must be explicitly specified and be positive")
	}
	if c.Normal.LogDirectory == "" {
		return fmt.Errorf("Critical config missing: 'normal_config.log_directory' must be explicitly specified (e.g., 'logs')")
	}
	if c.Normal.JournalDirectory == "" {
		return fmt.Errorf("Critical config missing: 'normal_config.journal_directory' must be explicitly specified (e.g., 'journal')")
	}

	if c.Logs == nil {
		return fmt.Errorf("Critical config missing: 'logs' configuration block must be provided in config.yaml")
	}
	if c.Logs.LogLevel == "" {
		return fmt.Errorf("Critical config missing: 'logs.log_level' must be explicitly specified (e.g., 'info', 'debug', 'warn', 'error')")
	}
	if c.Logs.MaxSizeMB <= 0 {
		return fmt.Errorf("Critical config missing: 'logs.max_size_mb' must be explicitly specified and be positive")
	}
	if c.Logs.MaxBackups <= 0 {
		return fmt.Errorf("Critical config missing: 'logs.max_backups' must be explicitly specified and be positive")
	}
	if c.Logs.MaxAgeDays <= 0 {
		return fmt.Errorf("Critical config missing: 'logs.max_age_days' must be explicitly specified and be positive")
	}

	if c.Simulation != nil {
		if c.Simulation.DailyVolatility < 0 {
			return fmt.Errorf("Config error: 'simulation.daily_volatility' cannot be negative")
		}
		for i, holding := range c.Simulation.Holdings {
			if holding.Symbol == "" {
				return fmt.Errorf("Config error: 'simulation.holdings[%d].symbol' must not be empty", i)
			}
			if holding.Price <= 0 {
				return fmt.Errorf("Config error: 'simulation.holdings[%d].price' must be positive", i)
			}
		}
	}

	if c.PremiumBudgetUSD < 0 {
		return fmt.Errorf("Config error: premium_budget_usd cannot be negative")
	}

	return nil
}

// EnvConfig carries credentials for a live data feed. The simulation client
// ignores them; a real feed implementation reads them at construction.
type EnvConfig struct {
	ApiKey    string
	ApiSecret string
	BaseURL   string
}

func LoadEnvConfig() *EnvConfig {
	return &EnvConfig{
		ApiKey:    os.Getenv("DATAFEED_API_KEY"),
		ApiSecret: os.Getenv("DATAFEED_SECRET_KEY"),
		BaseURL:   os.Getenv("DATAFEED_BASE_URL"),
	}
}
