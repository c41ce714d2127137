package costs

import (
	"testing"
	"time"

	"auto_hedge_go/market"

	"github.com/stretchr/testify/assert"
)

func fill(id string, qty int, price float64) market.Fill {
	return market.Fill{ContractID: id, Quantity: qty, Price: price, Time: time.Now()}
}

func TestAccountant_OpenPremium(t *testing.T) {
	a := NewAccountant()
	a.RecordFill(fill("p1", 10, 2.00))

	// 10 contracts at $2.00 premium, 100 shares each.
	assert.InDelta(t, 2000.0, a.OpenPremium(), 1e-9)
	assert.Equal(t, 0.0, a.GetRealizedPNL())
}

func TestAccountant_AverageCostBlending(t *testing.T) {
	a := NewAccountant()
	a.RecordFill(fill("p1", 10, 2.00))
	a.RecordFill(fill("p1", 10, 3.00))

	// 20 contracts at a blended $2.50.
	assert.InDelta(t, 5000.0, a.OpenPremium(), 1e-9)

	st := a.GetState()
	assert.Equal(t, 20, st.OpenContracts)
	assert.Equal(t, 2, st.RecordedFills)
}

func TestAccountant_RealizesOnClose(t *testing.T) {
	a := NewAccountant()
	a.RecordFill(fill("p1", 10, 2.00))
	a.RecordFill(fill("p1", -10, 2.50))

	// Sold back for $0.50 more per share across 10 contracts.
	assert.InDelta(t, 500.0, a.GetRealizedPNL(), 1e-9)
	assert.Equal(t, 0.0, a.OpenPremium())
	assert.Equal(t, 0, a.GetState().OpenContracts)
}

func TestAccountant_PartialClose(t *testing.T) {
	a := NewAccountant()
	a.RecordFill(fill("p1", 10, 2.00))
	a.RecordFill(fill("p1", -4, 1.50))

	assert.InDelta(t, -200.0, a.GetRealizedPNL(), 1e-9)
	// Remaining 6 contracts keep the original average cost.
	assert.InDelta(t, 1200.0, a.OpenPremium(), 1e-9)
}

func TestAccountant_IndependentContracts(t *testing.T) {
	a := NewAccountant()
	a.RecordFill(fill("p1", 10, 2.00))
	a.RecordFill(fill("p2", 5, 4.00))

	assert.InDelta(t, 4000.0, a.OpenPremium(), 1e-9)
	assert.Equal(t, 15, a.GetState().OpenContracts)
}
