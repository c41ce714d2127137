package hedge

import (
	"testing"
	"time"

	"auto_hedge_go/config"
	"auto_hedge_go/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterCfg() *config.HedgeConfig {
	return &config.HedgeConfig{
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
	}
}

func liquidPut(id string, strike float64, expiry time.Time) market.OptionContract {
	return market.OptionContract{
		ID:         id,
		Underlying: "SPY",
		Right:      market.Put,
		Strike:     strike,
		Expiry:     expiry,
		Bid:        4.75,
		Ask:        4.80,
		Volume:     1000,
	}
}

func TestSelectContract_TenorBeforeMoneyness(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, 60)
	cfg := filterCfg()

	// Position at $100 with a 0.90 target puts the target strike at $90.
	// The at-the-target 90 strike sits at a farther expiry than the 88 and 93
	// strikes, so tenor closeness must override moneyness.
	catalog := []market.OptionContract{
		liquidPut("p85", 85, target.AddDate(0, 0, 5)), // strike outside the 5% band
		liquidPut("p90", 90, target.AddDate(0, 0, 5)),
		liquidPut("p93", 93, target.AddDate(0, 0, 1)),
		liquidPut("p88", 88, target.AddDate(0, 0, 1)),
	}

	selected, ok := SelectContract(catalog, 90, target, now, cfg)
	require.True(t, ok)
	// 88 and 93 tie at one day from the target expiry; 88 is closer in strike.
	assert.Equal(t, "p88", selected.ID)
}

func TestSelectContract_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, 60)
	cfg := filterCfg()

	catalog := []market.OptionContract{
		liquidPut("a", 89, target.AddDate(0, 0, 3)),
		liquidPut("b", 91, target.AddDate(0, 0, 3)),
		liquidPut("c", 90, target.AddDate(0, 0, 8)),
	}

	first, ok := SelectContract(catalog, 90, target, now, cfg)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := SelectContract(catalog, 90, target, now, cfg)
		require.True(t, ok)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestSelectContract_ExpiryWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, 60)
	cfg := filterCfg()

	catalog := []market.OptionContract{
		liquidPut("tooSoon", 90, now.AddDate(0, 0, 59)),
		liquidPut("tooLate", 90, now.AddDate(0, 0, 100)),
	}
	_, ok := SelectContract(catalog, 90, target, now, cfg)
	assert.False(t, ok)

	catalog = append(catalog, liquidPut("inWindow", 90, now.AddDate(0, 0, 75)))
	selected, ok := SelectContract(catalog, 90, target, now, cfg)
	require.True(t, ok)
	assert.Equal(t, "inWindow", selected.ID)
}

func TestSelectContract_CallsRejected(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, 60)

	call := liquidPut("c90", 90, target)
	call.Right = market.Call

	_, ok := SelectContract([]market.OptionContract{call}, 90, target, now, filterCfg())
	assert.False(t, ok)
}

func TestSelectContract_LiquidityDropsNotReranks(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, 60)
	cfg := filterCfg()

	// The best-ranked candidate fails each liquidity clause in turn; the
	// next-ranked survivor must win without reordering.
	thinVolume := liquidPut("thin", 90, target)
	thinVolume.Volume = 499

	wideSpread := liquidPut("wide", 90, target.AddDate(0, 0, 1))
	wideSpread.Bid = 4.00
	wideSpread.Ask = 4.80 // spread fraction ~0.167

	zeroAsk := liquidPut("zeroAsk", 90, target.AddDate(0, 0, 2))
	zeroAsk.Ask = 0
	zeroAsk.Bid = 0

	survivor := liquidPut("survivor", 89, target.AddDate(0, 0, 3))

	selected, ok := SelectContract([]market.OptionContract{thinVolume, wideSpread, zeroAsk, survivor}, 90, target, now, cfg)
	require.True(t, ok)
	assert.Equal(t, "survivor", selected.ID)
}

func TestSelectContract_EmptyCatalog(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, ok := SelectContract(nil, 90, now.AddDate(0, 0, 60), now, filterCfg())
	assert.False(t, ok)
}
