package strategy

import (
	"time"

	"github.com/pkg/errors"
	"github.com/synaptik69/tradingview-strategy/config"
	"github.com/synaptik69/tradingview-strategy/indicator"
	"github.com/synaptik69/tradingview-strategy/logger"
	"github.com/synaptik69/tradingview-strategy/marketdata"
	"github.com/synaptik69/tradingview-strategy/metrics"
	"github.com/synaptik69/tradingview-strategy/portfolio"
	"github.com/synaptik69/tradingview-strategy/risk"
	"github.com/synaptik69/tradingview-strategy/types"
)

// Breakout is the long-only Bollinger-breakout engine with an RSI filter.
//
// It opens when the close breaks above the upper band while RSI confirms
// momentum, and closes when the close falls back under the middle band.
// The grid-searched parameters are plain fields bound at construction, so
// each combination gets its own independently testable instance. The
// engine keeps no state of its own between cycles; the position lives in
// the ledger, which makes re-runs over the same history bit-identical.
type Breakout struct {
	cfg config.StrategyConfig
	log logger.Logger

	// Grid-searched parameters, bound once per combination.
	rsiThreshold     float64
	stdDevMultiplier float64
	maLength         int
}

// New validates the configuration and binds one parameter combination.
// The provider universe must contain exactly the configured pair; a
// strategy built for a single pair refuses to guess among several.
func New(cfg config.StrategyConfig, rsiThreshold, stdDevMultiplier float64, maLength int,
	data marketdata.Provider, log logger.Logger) (*Breakout, error) {

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid strategy config")
	}
	pairs := data.Pairs()
	if len(pairs) != 1 {
		return nil, errors.Errorf("strategy trades exactly one pair, provider has %d", len(pairs))
	}
	if pairs[0] != cfg.Pair {
		return nil, errors.Errorf("provider serves %s, config expects %s", pairs[0], cfg.Pair)
	}
	if maLength <= 0 || maLength > cfg.LookbackWindow {
		return nil, errors.Errorf("moving average length %d must be positive and fit the lookback window (%d)", maLength, cfg.LookbackWindow)
	}
	if stdDevMultiplier <= 0 {
		return nil, errors.Errorf("stddev multiplier %f must be positive", stdDevMultiplier)
	}
	return &Breakout{
		cfg:              cfg,
		log:              log,
		rsiThreshold:     rsiThreshold,
		stdDevMultiplier: stdDevMultiplier,
		maLength:         maLength,
	}, nil
}

// Pair returns the single pair this engine trades.
func (b *Breakout) Pair() string { return b.cfg.Pair }

// Decide runs one decision cycle and returns the trade intents for it.
//
// A window too short for either indicator (or a degenerate one) is a
// normal warm-up condition: the cycle is skipped with no intents and no
// error. While a position is open, the mean-reversion close check and the
// trailing-stop update are independent and both run in the same cycle;
// the trailing update mutates the position but never emits an intent.
func (b *Breakout) Decide(ts time.Time, data marketdata.Provider, ledger portfolio.Ledger) ([]types.TradeIntent, error) {
	metrics.CyclesEvaluated.Inc()

	window := data.Window(b.cfg.Pair, ts, b.cfg.LookbackWindow)
	if len(window) == 0 {
		// looking back before the pair started trading
		return nil, nil
	}
	closes := marketdata.Closes(window)
	snap, ok := indicator.Compute(closes, b.cfg.RSILength, b.maLength, b.stdDevMultiplier)
	if !ok {
		return nil, nil
	}
	latest := closes[len(closes)-1]

	pos := ledger.Position(b.cfg.Pair)
	if pos == nil {
		return b.decideFlat(ts, latest, snap, ledger), nil
	}
	return b.decideLong(ts, latest, snap, pos), nil
}

func (b *Breakout) decideFlat(ts time.Time, latest float64, snap indicator.Snapshot, ledger portfolio.Ledger) []types.TradeIntent {
	if latest <= snap.Upper || snap.RSI < b.rsiThreshold {
		return nil
	}
	notional := risk.Notional(ledger.Cash(), b.cfg.PositionSize)
	if notional <= 0 {
		return nil
	}
	intent := types.TradeIntent{
		Pair:          b.cfg.Pair,
		Direction:     types.Open,
		Notional:      notional,
		StopLossPrice: risk.InitialStop(latest, b.cfg.StopLossRatio),
		Comment:       "band breakout with momentum",
	}
	b.log.Info("open_intent",
		logger.Time("ts", ts),
		logger.String("pair", b.cfg.Pair),
		logger.Float64("close", latest),
		logger.Float64("upper_band", snap.Upper),
		logger.Float64("rsi", snap.RSI),
		logger.Float64("notional", notional),
	)
	metrics.IntentsEmitted.WithLabelValues(string(types.Open)).Inc()
	return []types.TradeIntent{intent}
}

func (b *Breakout) decideLong(ts time.Time, latest float64, snap indicator.Snapshot, pos *portfolio.Position) []types.TradeIntent {
	var intents []types.TradeIntent

	// Closing is price-only, deliberately easier to trigger than opening.
	if latest < snap.Middle {
		intents = append(intents, types.TradeIntent{
			Pair:      b.cfg.Pair,
			Direction: types.Close,
			CloseAll:  true,
			Comment:   "close under middle band",
		})
		b.log.Info("close_intent",
			logger.Time("ts", ts),
			logger.String("pair", b.cfg.Pair),
			logger.Float64("close", latest),
			logger.Float64("middle_band", snap.Middle),
		)
		metrics.IntentsEmitted.WithLabelValues(string(types.Close)).Inc()
	}

	risk.UpdateTrailing(pos, latest, b.cfg.TrailingActivationRatio, b.cfg.TrailingStopRatio)

	return intents
}
