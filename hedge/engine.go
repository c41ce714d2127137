// hedge/engine.go
package hedge

import (
	"math"
	"time"

	"auto_hedge_go/config"
	"auto_hedge_go/logs"
	"auto_hedge_go/market"
	"auto_hedge_go/utils"

	"github.com/google/uuid"
)

// Inputs bundles the external collaborators for one evaluation. The snapshot
// and catalogs are read-only for the duration of the call; the engine never
// mutates them.
type Inputs struct {
	// Snapshot is the current portfolio view, including wall-clock time and
	// total value.
	Snapshot *market.Snapshot
	// Chain looks up the option catalog for an underlying; it may return an
	// empty slice when no data is available yet.
	Chain func(underlying string) []market.OptionContract
	// Subscribe requests option data for an underlying, fire-and-forget.
	// Its effect is only observed in a later evaluation.
	Subscribe func(underlying string)
}

// Status is a point-in-time report of the engine's internal state.
type Status struct {
	HighWaterMark  float64           `json:"high_water_mark"`
	Drawdown       float64           `json:"drawdown"`
	Hedging        bool              `json:"hedging"`
	LastEvaluation time.Time         `json:"last_evaluation"`
	LastBatchID    string            `json:"last_batch_id"`
	Ledger         map[string]string `json:"ledger"`
	Subscribed     int               `json:"subscribed"`
}

// Engine is the hedge decision engine. Invoked once per scheduling tick, it
// turns a portfolio snapshot and option catalogs into a list of target
// adjustments while maintaining its private state: the high-water mark, the
// throttle clock, the hedge ledger and the set of requested subscriptions.
//
// The invocation model is single-threaded by contract, so none of the state
// is locked.
type Engine struct {
	cfg          *config.HedgeConfig
	drawdown     *DrawdownTracker
	throttle     *RebalanceThrottle
	ledger       *Ledger
	subscribed   map[string]struct{}
	hedging      bool
	lastDrawdown float64
	lastBatchID  string
}

func NewEngine(cfg *config.HedgeConfig) *Engine {
	return &Engine{
		cfg:        cfg,
		drawdown:   &DrawdownTracker{},
		throttle:   NewRebalanceThrottle(cfg.MinInterval()),
		ledger:     NewLedger(),
		subscribed: make(map[string]struct{}),
	}
}

// Evaluate is the single entry point, called by the host once per tick.
// It returns the ordered list of target adjustments needed to move the
// portfolio toward the desired hedge state; an empty list means nothing to do.
// Every anomaly (missing catalog, no surviving candidate, degenerate quote)
// degrades to "no action for that underlying this round"; Evaluate never fails.
func (e *Engine) Evaluate(in Inputs) []TargetAdjustment {
	now := in.Snapshot.Time
	dd := e.drawdown.Update(in.Snapshot.TotalValue)
	e.lastDrawdown = dd

	if !e.throttle.ShouldRun(now) {
		return nil
	}

	batchID := uuid.NewString()
	e.lastBatchID = batchID
	logs.Debugf("[Engine] Evaluation %s: value=%.2f hwm=%.2f drawdown=%.4f", batchID, in.Snapshot.TotalValue, e.drawdown.HighWaterMark(), dd)

	needHedge := dd <= e.cfg.DrawdownThreshold
	if !needHedge {
		return e.hedgeOff(in)
	}
	e.hedging = true

	var adjustments []TargetAdjustment
	for _, pos := range in.Snapshot.Positions {
		if pos.SecurityType != market.Equity || pos.Quantity == 0 {
			continue
		}
		underlying := pos.ID

		// A freshly requested subscription cannot be assumed to deliver a
		// catalog within the same call; skip until the next evaluation.
		if _, ok := e.subscribed[underlying]; !ok {
			e.subscribed[underlying] = struct{}{}
			in.Subscribe(underlying)
			logs.Debugf("[Engine] Requested option subscription for %s.", underlying)
			continue
		}

		catalog := in.Chain(underlying)
		if len(catalog) == 0 {
			continue
		}

		targetStrike := pos.Price * e.cfg.PutStrikePercent
		targetExpiry := now.AddDate(0, 0, e.cfg.MinDaysToExpiration)
		contract, ok := SelectContract(catalog, targetStrike, targetExpiry, now, e.cfg)
		if !ok {
			// No suitable new contract is not evidence the existing hedge
			// is unsuitable; leave any ledger entry untouched.
			continue
		}

		scale := math.Min(1.0, math.Abs(dd)/e.cfg.HedgeScaleDrawdownCap)
		targetQty := utils.TruncateContracts(pos.Quantity * e.cfg.HedgeRatio * scale)

		hadEntry := false
		if heldID, ok := e.ledger.Get(underlying); ok {
			hadEntry = true
			heldQty := int(in.Snapshot.HeldQuantity(heldID))
			if heldQty == targetQty {
				// Unchanged decision; emitting anything would just churn.
				continue
			}
			adjustments = append(adjustments, TargetAdjustment{
				ContractID: heldID,
				Underlying: underlying,
				Quantity:   0,
				Reason:     ReasonReplace,
			})
		}

		if targetQty > 0 {
			e.ledger.Set(underlying, contract.ID)
			adjustments = append(adjustments, TargetAdjustment{
				ContractID: contract.ID,
				Underlying: underlying,
				Quantity:   targetQty,
				Reason:     ReasonOpen,
			})
		} else if hadEntry {
			// Scaled size truncated to zero: no hedge this round for this
			// underlying, and the old position was already closed above.
			e.ledger.Clear(underlying)
		}
	}

	if len(adjustments) > 0 {
		logs.Infof("[Engine] Evaluation %s produced %d adjustment(s) at drawdown %.4f.", batchID, len(adjustments), dd)
	}
	return adjustments
}

// hedgeOff fully unwinds every ledger-held contract. A recovered drawdown
// removes the rationale for any hedge regardless of which underlying it
// protects, so this is a global transition rather than a partial unwind.
func (e *Engine) hedgeOff(in Inputs) []TargetAdjustment {
	var adjustments []TargetAdjustment
	for _, underlying := range e.ledger.Underlyings() {
		contractID, _ := e.ledger.Get(underlying)
		if in.Snapshot.HeldQuantity(contractID) == 0 {
			continue
		}
		adjustments = append(adjustments, TargetAdjustment{
			ContractID: contractID,
			Underlying: underlying,
			Quantity:   0,
			Reason:     ReasonHedgeOff,
		})
	}
	if e.ledger.Len() > 0 {
		logs.Infof("[Engine] Drawdown %.4f above threshold %.4f, unwinding %d hedge(s).", e.lastDrawdown, e.cfg.DrawdownThreshold, e.ledger.Len())
	}
	e.ledger.ClearAll()
	e.hedging = false
	return adjustments
}

// Status reports the engine's current internal state for the monitor and the
// decision journal.
func (e *Engine) Status() Status {
	return Status{
		HighWaterMark:  e.drawdown.HighWaterMark(),
		Drawdown:       e.lastDrawdown,
		Hedging:        e.hedging,
		LastEvaluation: e.throttle.LastRun(),
		LastBatchID:    e.lastBatchID,
		Ledger:         e.ledger.Entries(),
		Subscribed:     len(e.subscribed),
	}
}
