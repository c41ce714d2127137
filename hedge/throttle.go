// hedge/throttle.go
package hedge

import "time"

// RebalanceThrottle permits at most one full re-evaluation per minimum
// elapsed interval. Denied calls leave the throttle unchanged.
type RebalanceThrottle struct {
	minInterval time.Duration
	lastRun     time.Time
}

func NewRebalanceThrottle(minInterval time.Duration) *RebalanceThrottle {
	return &RebalanceThrottle{minInterval: minInterval}
}

// ShouldRun reports whether a full evaluation may proceed at the given time,
// recording the time when it does. The first call always passes.
func (t *RebalanceThrottle) ShouldRun(now time.Time) bool {
	if !t.lastRun.IsZero() && now.Sub(t.lastRun) < t.minInterval {
		return false
	}
	t.lastRun = now
	return true
}

// LastRun returns the time of the last permitted evaluation.
func (t *RebalanceThrottle) LastRun() time.Time {
	return t.lastRun
}
