package portfolio

import (
	"time"

	"github.com/pkg/errors"
	"github.com/synaptik69/tradingview-strategy/types"
)

// Position is the state of the single open position, owned by one
// combination's engine and ledger. At most one position is open per
// strategy instance at any time.
type Position struct {
	Pair       string
	Qty        float64
	EntryPrice float64
	// StopLoss is the currently enforced protective stop level.
	StopLoss float64
	// TrailingStopRatio is non-zero once the trailing stop has been
	// activated for this position. Activation is one-way.
	TrailingStopRatio float64
	OpenedAt          time.Time
}

// TrailingActive reports whether the trailing stop has been armed.
func (p *Position) TrailingActive() bool {
	return p != nil && p.TrailingStopRatio > 0
}

// Ledger is the portfolio/cash view the decision engine consumes.
type Ledger interface {
	Cash() float64
	Position(pair string) *Position
}

// Trade records one completed round trip for reporting.
type Trade struct {
	Pair       string
	OpenedAt   time.Time
	ClosedAt   time.Time
	EntryPrice float64
	ExitPrice  float64
	Qty        float64
	PnL        float64
	Reason     string
}

// PaperLedger is a simulated single-pair ledger with perfect fills and a
// flat fee per side. It implements Ledger for the engine and exposes the
// mutating side to the backtest executor.
type PaperLedger struct {
	cash     float64
	fee      float64
	pos      *Position
	openCost float64
	trades   []Trade
}

func NewPaperLedger(deposit, fee float64) *PaperLedger {
	return &PaperLedger{cash: deposit, fee: fee}
}

func (l *PaperLedger) Cash() float64 { return l.cash }

func (l *PaperLedger) Position(pair string) *Position {
	if l.pos == nil || l.pos.Pair != pair {
		return nil
	}
	return l.pos
}

// Equity values the ledger at the given mark price.
func (l *PaperLedger) Equity(price float64) float64 {
	if l.pos == nil {
		return l.cash
	}
	return l.cash + l.pos.Qty*price
}

// Trades returns a copy of the completed round trips.
func (l *PaperLedger) Trades() []Trade {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Apply executes one trade intent at the given fill price.
func (l *PaperLedger) Apply(ts time.Time, intent types.TradeIntent, price float64) error {
	switch intent.Direction {
	case types.Open:
		return l.open(ts, intent, price)
	case types.Close:
		if l.pos == nil {
			return errors.Errorf("close intent for %s with no open position", intent.Pair)
		}
		l.close(ts, price, intent.Comment)
		return nil
	default:
		return errors.Errorf("unknown intent direction %q", intent.Direction)
	}
}

func (l *PaperLedger) open(ts time.Time, intent types.TradeIntent, price float64) error {
	if l.pos != nil {
		return errors.Errorf("open intent for %s while a position is already open", intent.Pair)
	}
	if price <= 0 {
		return errors.Errorf("open intent for %s at non-positive price %f", intent.Pair, price)
	}
	notional := intent.Notional
	if notional > l.cash {
		notional = l.cash
	}
	if notional <= 0 {
		return errors.Errorf("open intent for %s with no cash available", intent.Pair)
	}
	l.cash -= notional
	l.openCost = notional
	l.pos = &Position{
		Pair:       intent.Pair,
		Qty:        notional * (1 - l.fee) / price,
		EntryPrice: price,
		StopLoss:   intent.StopLossPrice,
		OpenedAt:   ts,
	}
	return nil
}

func (l *PaperLedger) close(ts time.Time, price float64, reason string) {
	proceeds := l.pos.Qty * price * (1 - l.fee)
	l.cash += proceeds
	l.trades = append(l.trades, Trade{
		Pair:       l.pos.Pair,
		OpenedAt:   l.pos.OpenedAt,
		ClosedAt:   ts,
		EntryPrice: l.pos.EntryPrice,
		ExitPrice:  price,
		Qty:        l.pos.Qty,
		PnL:        proceeds - l.openCost,
		Reason:     reason,
	})
	l.pos = nil
	l.openCost = 0
}

// CloseAt flattens the position at the given price, used by the executor
// for protective-stop fills.
func (l *PaperLedger) CloseAt(ts time.Time, price float64, reason string) {
	if l.pos == nil {
		return
	}
	l.close(ts, price, reason)
}
