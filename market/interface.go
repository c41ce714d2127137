package market

import (
	"context"
	"fmt"
	"time"
)

// SecurityType tags a portfolio position.
type SecurityType string

const (
	Equity SecurityType = "EQUITY"
	Option SecurityType = "OPTION"
)

// OptionRight defines the option right (put or call).
type OptionRight string

const (
	Put  OptionRight = "PUT"
	Call OptionRight = "CALL"
)

// ContractMultiplier is the number of shares one standard equity option
// contract controls.
const ContractMultiplier = 100.0

// Position is one line of the portfolio snapshot. Quantity is signed;
// for options it counts whole contracts.
type Position struct {
	ID           string       `json:"id"`
	Quantity     float64      `json:"quantity"`
	Price        float64      `json:"price"`
	SecurityType SecurityType `json:"security_type"`
}

// OptionContract is a single catalog row with its current quote. It is
// immutable within one evaluation; a fresh catalog is fetched every call.
type OptionContract struct {
	ID         string      `json:"id"`
	Underlying string      `json:"underlying"`
	Right      OptionRight `json:"right"`
	Strike     float64     `json:"strike"`
	Expiry     time.Time   `json:"expiry"`
	Bid        float64     `json:"bid"`
	Ask        float64     `json:"ask"`
	Volume     int64       `json:"volume"`
}

// Mid returns the quote midpoint, falling back to the one-sided price when
// the other side is empty.
func (c *OptionContract) Mid() float64 {
	switch {
	case c.Bid > 0 && c.Ask > 0:
		return (c.Bid + c.Ask) / 2
	case c.Ask > 0:
		return c.Ask
	default:
		return c.Bid
	}
}

// DaysToExpiry returns the whole days between now and the contract's expiry.
func (c *OptionContract) DaysToExpiry(now time.Time) int {
	return int(c.Expiry.Sub(now).Hours() / 24)
}

func (c *OptionContract) String() string {
	return fmt.Sprintf("%s %s %s %.2f exp %s", c.Underlying, c.ID, c.Right, c.Strike, c.Expiry.Format("2006-01-02"))
}

// Snapshot is the read-only portfolio view supplied to each evaluation.
type Snapshot struct {
	Time       time.Time  `json:"time"`
	TotalValue float64    `json:"total_value"`
	Positions  []Position `json:"positions"`
}

// HeldQuantity returns the signed quantity currently held for the given
// identifier, or 0 when the identifier is not in the snapshot.
func (s *Snapshot) HeldQuantity(id string) float64 {
	for i := range s.Positions {
		if s.Positions[i].ID == id {
			return s.Positions[i].Quantity
		}
	}
	return 0
}

// Fill reports an executed holding change in the simulated book.
type Fill struct {
	ContractID string    `json:"contract_id"`
	Quantity   int       `json:"quantity"` // signed change in held contracts
	Price      float64   `json:"price"`    // per-share premium
	Time       time.Time `json:"time"`
}

// Client is the data-and-execution collaborator the orchestrator drives the
// engine against. A live implementation would wrap a brokerage API; the
// in-repo implementation is the simulation client.
type Client interface {
	// Snapshot returns the current portfolio view (equities plus any held
	// option contracts), valued at the given time.
	Snapshot(now time.Time) (*Snapshot, error)

	// OptionChain returns the put/call catalog for an underlying. An empty
	// slice means no data (not subscribed yet, or nothing listed).
	OptionChain(underlying string) []OptionContract

	// RequestChain asks the feed to start populating the option catalog for
	// an underlying. Fire-and-forget; the chain appears in a later call.
	RequestChain(underlying string)

	// SetHolding moves the held quantity of a contract to the given target,
	// returning the resulting fill, or nil when nothing changed.
	SetHolding(ctx context.Context, contractID string, quantity int) (*Fill, error)
}
