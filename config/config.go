package config

import (
	"time"

	"github.com/pkg/errors"
)

// StrategyConfig is the immutable configuration value object constructed
// once and passed into the engine. The fixed strategy inputs live here;
// the three grid-searched parameters live in GridConfig.
type StrategyConfig struct {
	// Pair is the single tradable pair, e.g. "WAVAX-USDT".
	Pair string

	// CycleDuration is how often the strategy performs a decision cycle.
	CycleDuration time.Duration

	// LookbackWindow is how many candles the engine loads per cycle for
	// indicator calculations.
	LookbackWindow int

	// RSILength is the number of candles behind the relative strength index.
	RSILength int

	// PositionSize is the fraction of available cash deployed per trade.
	PositionSize float64

	// InitialDeposit is the starting cash of every per-combination ledger.
	InitialDeposit float64

	// TradingFee is the assumed LP fee applied to each fill.
	TradingFee float64

	// StopLossRatio sets the initial protective stop relative to the entry
	// price, e.g. 0.98 puts the stop 2 % below entry.
	StopLossRatio float64

	// TrailingStopRatio recomputes the stop from the latest close once
	// trailing is active, e.g. 0.9975.
	TrailingStopRatio float64

	// TrailingActivationRatio arms the trailing stop once the close reaches
	// entry × ratio, e.g. 1.03.
	TrailingActivationRatio float64

	// Backtest range, inclusive on both ends.
	StartAt time.Time
	EndAt   time.Time
}

// Default returns the stock strategy configuration.
func Default() StrategyConfig {
	return StrategyConfig{
		Pair:                    "WAVAX-USDT",
		CycleDuration:           time.Hour,
		LookbackWindow:          90,
		RSILength:               14,
		PositionSize:            0.50,
		InitialDeposit:          5_000,
		TradingFee:              0.0020,
		StopLossRatio:           0.98,
		TrailingStopRatio:       0.9975,
		TrailingActivationRatio: 1.03,
		StartAt:                 time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		EndAt:                   time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Validate checks that all fields are within sensible bounds. It returns the
// first encountered error so the caller can surface a clear configuration
// problem before any backtest starts.
func (c StrategyConfig) Validate() error {
	if c.Pair == "" {
		return errors.New("Pair must be set")
	}
	if c.CycleDuration <= 0 {
		return errors.New("CycleDuration must be positive")
	}
	if c.LookbackWindow <= 0 {
		return errors.New("LookbackWindow must be positive")
	}
	if c.RSILength <= 0 || c.RSILength+1 > c.LookbackWindow {
		return errors.Errorf("RSILength (%d) must be positive and fit the lookback window (%d)", c.RSILength, c.LookbackWindow)
	}
	if c.PositionSize <= 0 || c.PositionSize > 1 {
		return errors.Errorf("PositionSize (%f) must be >0 and <=1", c.PositionSize)
	}
	if c.InitialDeposit <= 0 {
		return errors.New("InitialDeposit must be positive")
	}
	if c.TradingFee < 0 || c.TradingFee >= 1 {
		return errors.Errorf("TradingFee (%f) must be in [0,1)", c.TradingFee)
	}
	if c.StopLossRatio <= 0 || c.StopLossRatio >= 1 {
		return errors.Errorf("StopLossRatio (%f) must be in (0,1)", c.StopLossRatio)
	}
	if c.TrailingStopRatio <= 0 || c.TrailingStopRatio >= 1 {
		return errors.Errorf("TrailingStopRatio (%f) must be in (0,1)", c.TrailingStopRatio)
	}
	if c.TrailingActivationRatio <= 1 {
		return errors.Errorf("TrailingActivationRatio (%f) must be >1", c.TrailingActivationRatio)
	}
	if !c.EndAt.After(c.StartAt) {
		return errors.New("EndAt must be after StartAt")
	}
	return nil
}

// GridConfig holds the three candidate lists the sweep draws from. List
// order is significant: it fixes the destructuring order of every
// combination.
type GridConfig struct {
	RSIThresholds        []float64
	StdDevMultipliers    []float64
	MovingAverageLengths []int
}

// DefaultGrid returns the stock candidate lists for the sweep.
func DefaultGrid() GridConfig {
	return GridConfig{
		RSIThresholds:        []float64{55, 65, 75, 85},
		StdDevMultipliers:    []float64{2.0, 2.5, 2.8, 3.0, 3.5},
		MovingAverageLengths: []int{9, 12, 15, 20, 25},
	}
}

// Validate checks the candidate lists against the strategy lookback so that
// every combination can actually warm up.
func (g GridConfig) Validate(lookback int) error {
	if len(g.RSIThresholds) == 0 || len(g.StdDevMultipliers) == 0 || len(g.MovingAverageLengths) == 0 {
		return errors.New("all three candidate lists must be non-empty")
	}
	for _, t := range g.RSIThresholds {
		if t < 0 || t > 100 {
			return errors.Errorf("RSI threshold %f outside [0,100]", t)
		}
	}
	for _, m := range g.StdDevMultipliers {
		if m <= 0 {
			return errors.Errorf("stddev multiplier %f must be positive", m)
		}
	}
	for _, l := range g.MovingAverageLengths {
		if l <= 0 || l > lookback {
			return errors.Errorf("moving average length %d must be positive and fit the lookback window (%d)", l, lookback)
		}
	}
	return nil
}
