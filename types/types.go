package types

import "time"

type Direction string

const (
	Open  Direction = "OPEN"
	Close Direction = "CLOSE"
)

// Candle is one OHLCV bar as served by the market data provider.
// Immutable once observed.
type Candle struct {
	Pair      string
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// TradeIntent is a pure value returned by the decision engine. The engine
// never moves cash itself; the backtest executor applies intents to the
// ledger.
type TradeIntent struct {
	Pair      string
	Direction Direction
	// Notional is the cash amount to deploy on an OPEN intent.
	Notional float64
	// CloseAll marks a CLOSE intent that flattens the whole position.
	CloseAll bool
	// StopLossPrice carries the initial protective stop on an OPEN intent.
	StopLossPrice float64
	// meta
	Comment string
}
