package backtest

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/synaptik69/tradingview-strategy/logger"
	"github.com/synaptik69/tradingview-strategy/marketdata"
	"github.com/synaptik69/tradingview-strategy/metrics"
	"github.com/synaptik69/tradingview-strategy/portfolio"
	"github.com/synaptik69/tradingview-strategy/types"
)

// DecisionEngine is what the executor drives once per simulated cycle.
type DecisionEngine interface {
	Pair() string
	Decide(ts time.Time, data marketdata.Provider, ledger portfolio.Ledger) ([]types.TradeIntent, error)
}

// Executor replays simulated time over a historical range, calling the
// engine once per cycle and applying the returned intents to the ledger.
type Executor struct {
	store marketdata.Provider
	log   logger.Logger

	cycle time.Duration
	start time.Time
	end   time.Time
}

func NewExecutor(store marketdata.Provider, cycle time.Duration, start, end time.Time, log logger.Logger) *Executor {
	return &Executor{store: store, log: log, cycle: cycle, start: start, end: end}
}

// Run drives one full backtest. Cycles are strictly sequential: the
// protective stop is checked against the cycle's candle first (a breach
// fills at the stop level), then the engine decides, then intents are
// applied at the candle close. Cancellation discards the run entirely;
// no partial summary is reported.
func (e *Executor) Run(ctx context.Context, eng DecisionEngine, ledger *portfolio.PaperLedger) (Summary, error) {
	pair := eng.Pair()
	curve := make([]float64, 0, int(e.end.Sub(e.start)/e.cycle)+2)
	curve = append(curve, ledger.Cash())
	lastClose := 0.0

	for ts := e.start; !ts.After(e.end); ts = ts.Add(e.cycle) {
		select {
		case <-ctx.Done():
			return Summary{}, ctx.Err()
		default:
		}

		bar := e.store.Window(pair, ts, 1)
		if len(bar) == 0 {
			continue
		}
		candle := bar[0]
		lastClose = candle.Close

		if pos := ledger.Position(pair); pos != nil && candle.Low <= pos.StopLoss {
			stop := pos.StopLoss
			ledger.CloseAt(ts, stop, "stop_loss")
			metrics.StopOuts.Inc()
			e.log.Info("stop_filled",
				logger.Time("ts", ts),
				logger.String("pair", pair),
				logger.Float64("stop", stop),
			)
		}

		intents, err := eng.Decide(ts, e.store, ledger)
		if err != nil {
			return Summary{}, errors.Wrap(err, "decide cycle")
		}
		for _, intent := range intents {
			if err := ledger.Apply(ts, intent, candle.Close); err != nil {
				return Summary{}, errors.Wrap(err, "apply intent")
			}
		}

		curve = append(curve, ledger.Equity(candle.Close))
	}

	metrics.BacktestsCompleted.Inc()
	metrics.EquityGauge.Set(ledger.Equity(lastClose))
	return Summarize(curve, ledger.Trades()), nil
}
