package portfolio

import (
	"math"
	"testing"
	"time"

	"github.com/synaptik69/tradingview-strategy/types"
)

var ts = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

func openIntent(notional float64) types.TradeIntent {
	return types.TradeIntent{
		Pair:          "X-USD",
		Direction:     types.Open,
		Notional:      notional,
		StopLossPrice: 98,
	}
}

func closeIntent() types.TradeIntent {
	return types.TradeIntent{Pair: "X-USD", Direction: types.Close, CloseAll: true}
}

func TestOpenAppliesFee(t *testing.T) {
	l := NewPaperLedger(5000, 0.002)

	if err := l.Apply(ts, openIntent(2500), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if l.Cash() != 2500 {
		t.Fatalf("expected 2500 cash left, got %v", l.Cash())
	}
	pos := l.Position("X-USD")
	if pos == nil {
		t.Fatalf("expected an open position")
	}
	wantQty := 2500 * 0.998 / 100
	if math.Abs(pos.Qty-wantQty) > 1e-9 {
		t.Fatalf("expected qty %v, got %v", wantQty, pos.Qty)
	}
	if pos.StopLoss != 98 || pos.EntryPrice != 100 {
		t.Fatalf("unexpected position %+v", pos)
	}
}

func TestCloseRealizesPnL(t *testing.T) {
	l := NewPaperLedger(5000, 0)

	if err := l.Apply(ts, openIntent(2500), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := l.Apply(ts.Add(time.Hour), closeIntent(), 110); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if l.Position("X-USD") != nil {
		t.Fatalf("expected position destroyed on close")
	}
	trades := l.Trades()
	if len(trades) != 1 {
		t.Fatalf("expected one round trip, got %d", len(trades))
	}
	if math.Abs(trades[0].PnL-250) > 1e-9 { // 25 units × +10
		t.Fatalf("expected PnL 250, got %v", trades[0].PnL)
	}
	if math.Abs(l.Cash()-5250) > 1e-9 {
		t.Fatalf("expected 5250 cash, got %v", l.Cash())
	}
}

func TestDoubleOpenRejected(t *testing.T) {
	l := NewPaperLedger(5000, 0)
	if err := l.Apply(ts, openIntent(1000), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := l.Apply(ts, openIntent(1000), 100); err == nil {
		t.Fatalf("expected second open to be rejected")
	}
}

func TestCloseWithoutPositionRejected(t *testing.T) {
	l := NewPaperLedger(5000, 0)
	if err := l.Apply(ts, closeIntent(), 100); err == nil {
		t.Fatalf("expected close with no position to be rejected")
	}
}

func TestOpenCappedAtAvailableCash(t *testing.T) {
	l := NewPaperLedger(1000, 0)
	if err := l.Apply(ts, openIntent(5000), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if l.Cash() != 0 {
		t.Fatalf("expected all cash deployed, got %v", l.Cash())
	}
	if got := l.Position("X-USD").Qty; got != 10 {
		t.Fatalf("expected qty 10, got %v", got)
	}
}

func TestEquityMarksOpenPosition(t *testing.T) {
	l := NewPaperLedger(5000, 0)
	if err := l.Apply(ts, openIntent(2500), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if got := l.Equity(120); math.Abs(got-(2500+25*120)) > 1e-9 {
		t.Fatalf("unexpected equity %v", got)
	}
}

func TestCloseAtStopLevel(t *testing.T) {
	l := NewPaperLedger(5000, 0)
	if err := l.Apply(ts, openIntent(2500), 100); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	l.CloseAt(ts.Add(time.Hour), 98, "stop_loss")
	trades := l.Trades()
	if len(trades) != 1 || trades[0].ExitPrice != 98 || trades[0].Reason != "stop_loss" {
		t.Fatalf("unexpected stop fill: %+v", trades)
	}
	if trades[0].PnL >= 0 {
		t.Fatalf("expected a losing stop-out, got PnL %v", trades[0].PnL)
	}
}
