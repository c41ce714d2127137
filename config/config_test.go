package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
name: protective-put
hedge:
  put_strike_percent: 0.90
  hedge_ratio: 0.05
  drawdown_threshold: -0.12
  min_days_to_expiration: 60
  max_days_to_expiration: 90
  min_option_volume: 500
  max_bid_ask_spread: 0.05
  min_interval_hours: 24
  hedge_scale_drawdown_cap: 0.20
  strike_band_percent: 0.05
normal_config:
  tick_interval_seconds: 60
  heartbeat_interval_minutes: 30
  log_directory: logs
  journal_directory: journal_data
logs:
  log_level: info
  max_size_mb: 10
  max_backups: 5
  max_age_days: 30
simulation:
  seed: 42
  cash: 250000
  daily_volatility: 0.02
  holdings:
    - symbol: SPY
      quantity: 1000
      price: 450
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "protective-put", cfg.Name)
	assert.Equal(t, 0.90, cfg.Hedge.PutStrikePercent)
	assert.Equal(t, -0.12, cfg.Hedge.DrawdownThreshold)
	assert.Equal(t, 24*time.Hour, cfg.Hedge.MinInterval())
	require.Len(t, cfg.Simulation.Holdings, 1)
	assert.Equal(t, "SPY", cfg.Simulation.Holdings[0].Symbol)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsBadStrategyParams(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"positive drawdown threshold", func(c *Config) { c.Hedge.DrawdownThreshold = 0.12 }},
		{"strike percent above one", func(c *Config) { c.Hedge.PutStrikePercent = 1.5 }},
		{"inverted expiry window", func(c *Config) { c.Hedge.MaxDaysToExpiration = 30 }},
		{"zero interval", func(c *Config) { c.Hedge.MinIntervalHours = 0 }},
		{"spread of one", func(c *Config) { c.Hedge.MaxBidAskSpread = 1.0 }},
		{"negative budget", func(c *Config) { c.PremiumBudgetUSD = -1 }},
		{"missing log level", func(c *Config) { c.Logs.LogLevel = "" }},
		{"zero tick interval", func(c *Config) { c.Normal.TickIntervalSeconds = 0 }},
		{"holding without symbol", func(c *Config) { c.Simulation.Holdings[0].Symbol = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, validYAML))
			require.NoError(t, err)
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_DefaultsAloneAreIncomplete(t *testing.T) {
	// The built-in strategy defaults are valid, but the run-level sections
	// must still come from the file.
	assert.Error(t, NewConfig().Validate())
}
