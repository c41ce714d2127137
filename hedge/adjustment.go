// hedge/adjustment.go
package hedge

import "fmt"

// Adjustment reasons, carried for logging and the decision journal only.
const (
	ReasonHedgeOff = "hedge-off"
	ReasonReplace  = "replace"
	ReasonOpen     = "open"
)

// TargetAdjustment tells the host what quantity of one option contract the
// portfolio should hold. Quantity 0 means "close this position"; a positive
// quantity means "hold exactly this many contracts". The host translates
// adjustments into orders; the engine never places any.
type TargetAdjustment struct {
	ContractID string `json:"contract_id"`
	Underlying string `json:"underlying"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
}

func (a TargetAdjustment) Description() string {
	if a.Quantity == 0 {
		return fmt.Sprintf("Close hedge %s on %s (%s)", a.ContractID, a.Underlying, a.Reason)
	}
	return fmt.Sprintf("Hold %d x %s on %s (%s)", a.Quantity, a.ContractID, a.Underlying, a.Reason)
}
