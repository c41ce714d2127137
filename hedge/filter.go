// hedge/filter.go
package hedge

import (
	"math"
	"sort"
	"time"

	"auto_hedge_go/config"
	"auto_hedge_go/market"
	"auto_hedge_go/utils"
)

// SelectContract picks the protective put to hold for one underlying.
//
// Candidates must be puts expiring within [now+minDTE, now+maxDTE] whose
// strike lies within the configured band of targetStrike. Survivors are
// ordered by distance to the target expiry first and distance to the target
// strike second: tenor drives hedge cost decay, so tenor closeness dominates
// moneyness. The liquidity predicate (volume, nonzero ask, relative spread)
// then drops contracts without re-ranking, and the first survivor wins.
//
// An empty result is not an error; it means "no hedge candidate this round".
func SelectContract(catalog []market.OptionContract, targetStrike float64, targetExpiry, now time.Time, cfg *config.HedgeConfig) (market.OptionContract, bool) {
	minExpiry := now.AddDate(0, 0, cfg.MinDaysToExpiration)
	maxExpiry := now.AddDate(0, 0, cfg.MaxDaysToExpiration)

	candidates := make([]market.OptionContract, 0, len(catalog))
	for _, c := range catalog {
		if c.Right != market.Put {
			continue
		}
		if c.Expiry.Before(minExpiry) || c.Expiry.After(maxExpiry) {
			continue
		}
		if !utils.WithinBand(c.Strike, targetStrike, cfg.StrikeBandPercent) {
			continue
		}
		if c.Bid < 0 || c.Ask < 0 {
			// Quote not resolvable for this row.
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return market.OptionContract{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di := expiryDistanceDays(candidates[i].Expiry, targetExpiry)
		dj := expiryDistanceDays(candidates[j].Expiry, targetExpiry)
		if di != dj {
			return di < dj
		}
		return math.Abs(candidates[i].Strike-targetStrike) < math.Abs(candidates[j].Strike-targetStrike)
	})

	for _, c := range candidates {
		if c.Volume < cfg.MinOptionVolume {
			continue
		}
		if c.Ask <= 0 {
			continue
		}
		if (c.Ask-c.Bid)/c.Ask > cfg.MaxBidAskSpread {
			continue
		}
		return c, true
	}
	return market.OptionContract{}, false
}

func expiryDistanceDays(expiry, target time.Time) float64 {
	return math.Abs(expiry.Sub(target).Hours() / 24)
}
