// monitor/loop.go
package monitor

import (
	"context"
	"time"

	"auto_hedge_go/budget"
	"auto_hedge_go/config"
	"auto_hedge_go/costs"
	"auto_hedge_go/hedge"
	"auto_hedge_go/journal"
	"auto_hedge_go/logs"
	"auto_hedge_go/market"
)

// Start runs the main scheduling loop: once per tick it snapshots the
// portfolio, invokes the hedge engine, and executes whatever adjustments the
// engine emitted. The engine itself never places orders; this loop is the
// host side of that contract.
func Start(
	client market.Client,
	engine *hedge.Engine,
	accountant *costs.Accountant,
	budgetGuard *budget.Manager,
	journalWriter *journal.Writer,
	cfg *config.Config,
	stopChan <-chan struct{},
) {
	ticker := time.NewTicker(time.Duration(cfg.Normal.TickIntervalSeconds) * time.Second)
	defer ticker.Stop()

	lastHeartbeat := time.Now()
	heartbeatInterval := time.Duration(cfg.Normal.HeartbeatIntervalMinutes) * time.Minute

	for {
		select {
		case <-stopChan:
			logs.Info("Monitor received stop signal, exiting.")
			return
		case <-ticker.C:
			snap, err := client.Snapshot(time.Now())
			if err != nil {
				logs.Errorf("[Monitor-Error] Failed to get portfolio snapshot: %v", err)
				continue
			}

			adjustments := engine.Evaluate(hedge.Inputs{
				Snapshot:  snap,
				Chain:     client.OptionChain,
				Subscribe: client.RequestChain,
			})

			if len(adjustments) > 0 {
				var fills []market.Fill
				for _, adj := range adjustments {
					logs.Infof("[Monitor] Executing adjustment: %s", adj.Description())
					fill, err := client.SetHolding(context.Background(), adj.ContractID, adj.Quantity)
					if err != nil {
						logs.Errorf("[Monitor-Error] Failed to execute adjustment for %s: %v", adj.ContractID, err)
						continue
					}
					if fill != nil {
						accountant.RecordFill(*fill)
						fills = append(fills, *fill)
					}
				}

				if budgetGuard != nil {
					budgetGuard.CheckAndUpdate(accountant.OpenPremium())
				}

				status := engine.Status()
				rec := journal.Record{
					BatchID:       status.LastBatchID,
					Time:          snap.Time,
					TotalValue:    snap.TotalValue,
					HighWaterMark: status.HighWaterMark,
					Drawdown:      status.Drawdown,
					Adjustments:   adjustments,
					Fills:         fills,
				}
				if err := journalWriter.Append(rec); err != nil {
					logs.Errorf("[Monitor-Error] Failed to write decision journal: %v", err)
				}
			}

			if time.Since(lastHeartbeat) >= heartbeatInterval {
				status := engine.Status()
				logs.Infof("[Heartbeat] hwm=%.2f drawdown=%.4f hedging=%v hedges=%d premium_open=%.2f realized=%.2f",
					status.HighWaterMark, status.Drawdown, status.Hedging, len(status.Ledger),
					accountant.OpenPremium(), accountant.GetRealizedPNL())
				lastHeartbeat = time.Now()
			}
		}
	}
}
