package market

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"auto_hedge_go/config"
	"auto_hedge_go/logs"
)

//
// Simulation client for running the hedge bot without a live data feed.
//

// Ensure SimClient implements Client interface
var _ Client = (*SimClient)(nil)

type simHolding struct {
	symbol   string
	quantity float64
	price    float64
}

type simContract struct {
	id     string
	right  OptionRight
	strike float64
	expiry time.Time
	volume int64
	spread float64 // relative half-spread drawn once per contract
}

// SimClient simulates an equity portfolio with random-walk prices and a
// synthetic option catalog per subscribed underlying.
type SimClient struct {
	mu         sync.RWMutex
	rng        *rand.Rand
	cash       float64
	dailyVol   float64
	holdings   map[string]*simHolding
	chains     map[string][]simContract
	optionBook map[string]int // contract id -> held contracts
	lastStep   time.Time
}

// NewSimClient builds a simulation client from the configured portfolio.
func NewSimClient(cfg *config.SimulationConfig) *SimClient {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	vol := cfg.DailyVolatility
	if vol <= 0 {
		vol = 0.02
	}

	sc := &SimClient{
		rng:        rand.New(rand.NewSource(seed)),
		cash:       cfg.Cash,
		dailyVol:   vol,
		holdings:   make(map[string]*simHolding),
		chains:     make(map[string][]simContract),
		optionBook: make(map[string]int),
	}
	for _, h := range cfg.Holdings {
		sc.holdings[h.Symbol] = &simHolding{
			symbol:   h.Symbol,
			quantity: float64(h.Quantity),
			price:    h.Price,
		}
	}
	return sc
}

// Snapshot advances the random walk one step and returns the portfolio view.
func (c *SimClient) Snapshot(now time.Time) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stepPrices(now)

	snap := &Snapshot{Time: now, TotalValue: c.cash}
	for _, h := range c.holdings {
		snap.Positions = append(snap.Positions, Position{
			ID:           h.symbol,
			Quantity:     h.quantity,
			Price:        h.price,
			SecurityType: Equity,
		})
		snap.TotalValue += h.quantity * h.price
	}
	for id, qty := range c.optionBook {
		if qty == 0 {
			continue
		}
		contract, ok := c.lookupContract(id, now)
		if !ok {
			continue
		}
		snap.Positions = append(snap.Positions, Position{
			ID:           id,
			Quantity:     float64(qty),
			Price:        contract.Mid(),
			SecurityType: Option,
		})
		snap.TotalValue += float64(qty) * contract.Mid() * ContractMultiplier
	}
	return snap, nil
}

// OptionChain returns the synthetic catalog for an underlying with quotes
// refreshed against the current spot price.
func (c *SimClient) OptionChain(underlying string) []OptionContract {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, ok := c.chains[underlying]
	if !ok {
		return nil
	}
	holding, ok := c.holdings[underlying]
	if !ok {
		return nil
	}

	out := make([]OptionContract, 0, len(rows))
	for _, row := range rows {
		out = append(out, c.quote(underlying, holding.price, row))
	}
	return out
}

// RequestChain generates a synthetic option catalog for the underlying. The
// chain only becomes visible to OptionChain on subsequent calls, matching the
// delayed-subscription behavior of a real feed.
func (c *SimClient) RequestChain(underlying string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.chains[underlying]; exists {
		return
	}
	holding, ok := c.holdings[underlying]
	if !ok {
		logs.Warnf("[Sim Client] Chain requested for unknown underlying %s, ignoring.", underlying)
		return
	}

	base := c.lastStep
	if base.IsZero() {
		base = time.Now()
	}

	var rows []simContract
	// Weekly expiries from two weeks out to about half a year.
	for week := 2; week <= 26; week += 2 {
		expiry := base.AddDate(0, 0, 7*week)
		// Strikes in $5 steps across 65%..115% of spot.
		low := math.Floor(holding.price * 0.65 / 5)
		high := math.Ceil(holding.price * 1.15 / 5)
		for step := low; step <= high; step++ {
			strike := step * 5
			if strike <= 0 {
				continue
			}
			for _, right := range []OptionRight{Put, Call} {
				rows = append(rows, simContract{
					id:     contractID(underlying, expiry, right, strike),
					right:  right,
					strike: strike,
					expiry: expiry,
					volume: int64(c.rng.Intn(4000)),
					spread: 0.005 + c.rng.Float64()*0.04,
				})
			}
		}
	}
	c.chains[underlying] = rows
	logs.Infof("[Sim Client] Generated option catalog for %s: %d contracts.", underlying, len(rows))
}

// SetHolding moves the held contract count to the target quantity, filling at
// the ask when buying and the bid when selling.
func (c *SimClient) SetHolding(ctx context.Context, contractID string, quantity int) (*Fill, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.optionBook[contractID]
	delta := quantity - current
	if delta == 0 {
		return nil, nil
	}

	contract, ok := c.lookupContract(contractID, c.lastStep)
	if !ok {
		return nil, fmt.Errorf("contract %s is not in any known catalog", contractID)
	}

	fillPrice := contract.Ask
	if delta < 0 {
		fillPrice = contract.Bid
	}

	c.optionBook[contractID] = quantity
	if quantity == 0 {
		delete(c.optionBook, contractID)
	}
	c.cash -= float64(delta) * fillPrice * ContractMultiplier

	return &Fill{
		ContractID: contractID,
		Quantity:   delta,
		Price:      fillPrice,
		Time:       c.lastStep,
	}, nil
}

// stepPrices applies a random walk scaled by elapsed time. Caller holds the lock.
func (c *SimClient) stepPrices(now time.Time) {
	if c.lastStep.IsZero() {
		c.lastStep = now
		return
	}
	elapsedDays := now.Sub(c.lastStep).Hours() / 24
	if elapsedDays <= 0 {
		return
	}
	scale := c.dailyVol * math.Sqrt(elapsedDays)
	for _, h := range c.holdings {
		h.price *= 1 + c.rng.NormFloat64()*scale
		if h.price < 0.01 {
			h.price = 0.01
		}
	}
	c.lastStep = now
}

// lookupContract finds a catalog row by id and quotes it. Caller holds the lock.
func (c *SimClient) lookupContract(id string, now time.Time) (OptionContract, bool) {
	for underlying, rows := range c.chains {
		holding, ok := c.holdings[underlying]
		if !ok {
			continue
		}
		for _, row := range rows {
			if row.id == id {
				return c.quote(underlying, holding.price, row), true
			}
		}
	}
	return OptionContract{}, false
}

// quote prices a synthetic contract as intrinsic value plus a crude
// volatility-scaled time value. Good enough to exercise the engine; this is
// not an option pricing model.
func (c *SimClient) quote(underlying string, spot float64, row simContract) OptionContract {
	years := row.expiry.Sub(c.lastStep).Hours() / 24 / 365
	if years < 0 {
		years = 0
	}
	var intrinsic float64
	if row.right == Put {
		intrinsic = math.Max(0, row.strike-spot)
	} else {
		intrinsic = math.Max(0, spot-row.strike)
	}
	timeValue := 0.4 * spot * c.dailyVol * math.Sqrt(252) * math.Sqrt(years)
	mid := intrinsic + timeValue

	return OptionContract{
		ID:         row.id,
		Underlying: underlying,
		Right:      row.right,
		Strike:     row.strike,
		Expiry:     row.expiry,
		Bid:        math.Max(0, mid*(1-row.spread)),
		Ask:        mid * (1 + row.spread),
		Volume:     row.volume,
	}
}

func contractID(underlying string, expiry time.Time, right OptionRight, strike float64) string {
	letter := "P"
	if right == Call {
		letter = "C"
	}
	return fmt.Sprintf("%s%s%s%08.0f", underlying, expiry.Format("060102"), letter, strike*1000)
}
