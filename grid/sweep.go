package grid

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/synaptik69/tradingview-strategy/backtest"
	"github.com/synaptik69/tradingview-strategy/config"
	"github.com/synaptik69/tradingview-strategy/logger"
	"github.com/synaptik69/tradingview-strategy/marketdata"
	"github.com/synaptik69/tradingview-strategy/portfolio"
	"github.com/synaptik69/tradingview-strategy/strategy"
)

// Result pairs one combination with the outcome of its full backtest.
// Err is set when that combination's run was abandoned or refused; its
// Summary is then meaningless and must be ignored.
type Result struct {
	Combination Combination
	Summary     backtest.Summary
	Err         error
}

// Sweep runs one independent backtest per combination over the shared
// candle store and returns one Result per combination, in combination
// order regardless of scheduling.
//
// Combinations share no mutable state: each gets its own engine and paper
// ledger, so workers need no coordination beyond collecting results. A
// failed or cancelled combination records its error and leaves every other
// combination's progress untouched.
func Sweep(ctx context.Context, cfg config.StrategyConfig, g config.GridConfig,
	store marketdata.Provider, workers int, log logger.Logger) ([]Result, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(cfg.LookbackWindow); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}

	combos := Combinations(g)
	results := make([]Result, len(combos))

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, comb := range combos {
		i, comb := i, comb
		eg.Go(func() error {
			results[i] = runOne(ctx, cfg, comb, store, log)
			return nil
		})
	}
	_ = eg.Wait()

	log.Info("sweep_finished",
		logger.Int("combinations", len(combos)),
		logger.Int("workers", workers),
	)
	return results, ctx.Err()
}

func runOne(ctx context.Context, cfg config.StrategyConfig, comb Combination,
	store marketdata.Provider, log logger.Logger) Result {

	res := Result{Combination: comb}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	rsiThreshold, stdDevMultiplier, maLength := comb.Destructure()
	eng, err := strategy.New(cfg, rsiThreshold, stdDevMultiplier, maLength, store, log)
	if err != nil {
		res.Err = err
		log.Error("combination_refused", logger.String("combination", comb.Label()), logger.Err(err))
		return res
	}

	ledger := portfolio.NewPaperLedger(cfg.InitialDeposit, cfg.TradingFee)
	exec := backtest.NewExecutor(store, cfg.CycleDuration, cfg.StartAt, cfg.EndAt, log)

	summary, err := exec.Run(ctx, eng, ledger)
	if err != nil {
		// partial results are discarded, not partially reported
		res.Err = err
		return res
	}
	res.Summary = summary
	log.Info("combination_done",
		logger.String("combination", comb.Label()),
		logger.Float64("final_equity", summary.FinalEquity),
		logger.Float64("return_pct", summary.TotalReturnPct),
		logger.Int("trades", summary.Trades),
	)
	return res
}
