// budget/manager.go
package budget

import "auto_hedge_go/logs"

// Manager watches cumulative hedge premium outlay against a configured cap.
// It is advisory only: it logs threshold crossings and reports the flag, but
// never gates the engine's decisions.
type Manager struct {
	limitUSD   float64
	isExceeded bool
}

// NewManager creates a premium budget guard. A limit of 0 disables it.
func NewManager(limitUSD float64) *Manager {
	return &Manager{limitUSD: limitUSD}
}

// CheckAndUpdate compares the current open premium outlay against the limit
// and logs when the state flips.
func (m *Manager) CheckAndUpdate(openPremiumUSD float64) {
	if m.limitUSD <= 0 {
		if m.isExceeded {
			m.isExceeded = false
			logs.Infof("[Budget] Premium budget removed or set to 0, no longer flagging outlay.")
		}
		return
	}

	if openPremiumUSD >= m.limitUSD {
		if !m.isExceeded {
			logs.Warnf("[Budget-Warning] Open hedge premium %.2f USD has reached or exceeded budget %.2f USD.",
				openPremiumUSD, m.limitUSD)
		}
		m.isExceeded = true
	} else {
		if m.isExceeded {
			logs.Infof("[Budget-Restore] Open hedge premium %.2f USD has fallen back below budget %.2f USD.",
				openPremiumUSD, m.limitUSD)
		}
		m.isExceeded = false
	}
}

// IsExceeded returns whether the premium outlay is currently above budget.
func (m *Manager) IsExceeded() bool {
	return m.isExceeded
}
