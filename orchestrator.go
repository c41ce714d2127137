// orchestrator.go
package main

import (
	"fmt"
	"sync"

	"auto_hedge_go/budget"
	"auto_hedge_go/config"
	"auto_hedge_go/costs"
	"auto_hedge_go/hedge"
	"auto_hedge_go/journal"
	"auto_hedge_go/logs"
	"auto_hedge_go/market"
	"auto_hedge_go/monitor"
)

// Orchestrator wires the market client, the hedge engine and its supporting
// bookkeeping together and owns the lifecycle of the evaluation loop.
type Orchestrator struct {
	client        market.Client
	engine        *hedge.Engine
	accountant    *costs.Accountant
	budgetGuard   *budget.Manager
	journalWriter *journal.Writer
	cfg           *config.Config
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

func NewOrchestrator(cfg *config.Config, envCfg *config.EnvConfig, journalFilePath string) (*Orchestrator, error) {
	// Only the simulation client ships with the bot; wiring a live brokerage
	// feed means implementing market.Client against envCfg credentials.
	if envCfg.BaseURL != "" {
		logs.Warnf("Live data feed credentials found but no live client is wired in; running the simulation client.")
	}
	if cfg.Simulation == nil || len(cfg.Simulation.Holdings) == 0 {
		return nil, fmt.Errorf("no simulated holdings configured: 'simulation.holdings' must list at least one equity position")
	}
	client := market.NewSimClient(cfg.Simulation)
	logs.Warnf("<<<<<<<<<< Running in simulation mode: %d holdings >>>>>>>>>>", len(cfg.Simulation.Holdings))

	journalWriter, err := journal.NewWriter(journalFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize decision journal: %w", err)
	}
	logs.Infof("Decision journal initialized, entries will be written to: %s", journalFilePath)

	return &Orchestrator{
		client:        client,
		engine:        hedge.NewEngine(cfg.Hedge),
		accountant:    costs.NewAccountant(),
		budgetGuard:   budget.NewManager(cfg.PremiumBudgetUSD),
		journalWriter: journalWriter,
		cfg:           cfg,
		stopChan:      make(chan struct{}),
	}, nil
}

func (o *Orchestrator) Start() {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		monitor.Start(
			o.client,
			o.engine,
			o.accountant,
			o.budgetGuard,
			o.journalWriter,
			o.cfg,
			o.stopChan,
		)
	}()
	logs.Infof("Hedge bot '%s' started, press Ctrl+C to exit.", o.cfg.Name)
}

func (o *Orchestrator) Stop() {
	logs.Info("Received close signal, starting graceful shutdown...")

	close(o.stopChan)
	o.wg.Wait()

	o.printFinalSummary()
	logs.Info("All services stopped successfully.")
}

func (o *Orchestrator) printFinalSummary() {
	status := o.engine.Status()
	book := o.accountant.GetState()

	logs.Info("--- Final Hedge Summary ---")
	logs.Infof("High-water mark: %.2f USD, last drawdown: %.4f", status.HighWaterMark, status.Drawdown)
	logs.Infof("Hedged underlyings: %d, open contracts: %d", len(status.Ledger), book.OpenContracts)
	logs.Infof("Premium tied up in open hedges: %.2f USD", book.OpenPremium)
	logs.Infof("Realized premium P&L: %.2f USD over %d fills", book.RealizedPNL, book.RecordedFills)
	logs.Infof("Journaled evaluations: %d", o.journalWriter.Len())
	logs.Info("---------------------------")
}
