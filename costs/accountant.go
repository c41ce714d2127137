package costs

import (
	"sync"

	"auto_hedge_go/market"
)

// contractPosition tracks one option contract's book using the weighted
// average cost method.
type contractPosition struct {
	Quantity    int     // held contracts, positive for long puts
	AverageCost float64 // per-share premium
}

// State is a copy of the accountant's aggregate book.
type State struct {
	OpenPremium   float64 // premium tied up in open hedges, in dollars
	RealizedPNL   float64 // cumulative realized premium P&L, in dollars
	OpenContracts int
	RecordedFills int
}

// Accountant tracks the premium spent and recovered on hedge contracts. It
// uses the weighted average cost method per contract and realizes P&L when
// contracts are sold back.
type Accountant struct {
	mu        sync.Mutex
	positions map[string]*contractPosition
	realized  float64
	fillCount int
}

// NewAccountant creates a new premium accounting core.
func NewAccountant() *Accountant {
	return &Accountant{positions: make(map[string]*contractPosition)}
}

// RecordFill folds one executed holding change into the book.
func (a *Accountant) RecordFill(fill market.Fill) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.fillCount++
	pos := a.positions[fill.ContractID]
	if pos == nil {
		pos = &contractPosition{}
		a.positions[fill.ContractID] = pos
	}

	if fill.Quantity > 0 {
		// Buying more: blend the new premium into the average cost.
		oldValue := pos.AverageCost * float64(pos.Quantity)
		newValue := oldValue + fill.Price*float64(fill.Quantity)
		pos.Quantity += fill.Quantity
		if pos.Quantity != 0 {
			pos.AverageCost = newValue / float64(pos.Quantity)
		}
		return
	}

	// Selling back: realize P&L against the average cost. The hedge book is
	// long-only, so a sale never exceeds the held quantity in practice.
	closed := -fill.Quantity
	if closed > pos.Quantity {
		closed = pos.Quantity
	}
	a.realized += (fill.Price - pos.AverageCost) * float64(closed) * market.ContractMultiplier
	pos.Quantity -= closed
	if pos.Quantity == 0 {
		delete(a.positions, fill.ContractID)
	}
}

// OpenPremium returns the dollars of premium currently tied up in open hedges.
func (a *Accountant) OpenPremium() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	var total float64
	for _, pos := range a.positions {
		total += pos.AverageCost * float64(pos.Quantity) * market.ContractMultiplier
	}
	return total
}

// GetRealizedPNL returns cumulative realized premium P&L.
func (a *Accountant) GetRealizedPNL() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.realized
}

// GetState returns a copy of the aggregate book.
func (a *Accountant) GetState() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := State{RealizedPNL: a.realized, RecordedFills: a.fillCount}
	for _, pos := range a.positions {
		st.OpenPremium += pos.AverageCost * float64(pos.Quantity) * market.ContractMultiplier
		st.OpenContracts += pos.Quantity
	}
	return st
}
