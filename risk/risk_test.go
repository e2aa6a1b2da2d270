package risk

import (
	"testing"

	"github.com/synaptik69/tradingview-strategy/portfolio"
)

func TestNotional(t *testing.T) {
	if got := Notional(5000, 0.5); got != 2500 {
		t.Fatalf("expected 2500, got %v", got)
	}
	if got := Notional(0, 0.5); got != 0 {
		t.Fatalf("expected 0 with no cash, got %v", got)
	}
	if got := Notional(1000, 2); got != 1000 {
		t.Fatalf("fraction must be capped at 1, got %v", got)
	}
}

func TestInitialStop(t *testing.T) {
	if got := InitialStop(100, 0.98); got != 98 {
		t.Fatalf("expected 98, got %v", got)
	}
}

func TestTrailingStaysFixedBeforeActivation(t *testing.T) {
	pos := &portfolio.Position{EntryPrice: 100, StopLoss: 98}

	UpdateTrailing(pos, 102.9, 1.03, 0.9975) // just below activation
	if pos.TrailingActive() {
		t.Fatalf("trailing must not activate below the activation level")
	}
	if pos.StopLoss != 98 {
		t.Fatalf("stop must hold at the open-time level, got %v", pos.StopLoss)
	}
}

func TestTrailingActivatesAtLevel(t *testing.T) {
	pos := &portfolio.Position{EntryPrice: 100, StopLoss: 98}

	UpdateTrailing(pos, 103, 1.03, 0.9975)
	if !pos.TrailingActive() {
		t.Fatalf("trailing must activate at entry × activation level")
	}
	want := 103 * 0.9975
	if pos.StopLoss != want {
		t.Fatalf("expected trailing stop %v, got %v", want, pos.StopLoss)
	}
}

func TestTrailingRatchetsUpward(t *testing.T) {
	pos := &portfolio.Position{EntryPrice: 100, StopLoss: 98}

	UpdateTrailing(pos, 103, 1.03, 0.9975)
	UpdateTrailing(pos, 110, 1.03, 0.9975)
	want := 110 * 0.9975
	if pos.StopLoss != want {
		t.Fatalf("expected stop to follow price up to %v, got %v", want, pos.StopLoss)
	}
}

func TestTrailingHoldsOnRetreat(t *testing.T) {
	pos := &portfolio.Position{EntryPrice: 100, StopLoss: 98}

	UpdateTrailing(pos, 110, 1.03, 0.9975)
	high := pos.StopLoss

	// Price retreats; recomputing from the lower close must not lower the
	// enforced level, and activation must not revert either.
	UpdateTrailing(pos, 104, 1.03, 0.9975)
	if pos.StopLoss != high {
		t.Fatalf("stop must hold at %v on retreat, got %v", high, pos.StopLoss)
	}
	if !pos.TrailingActive() {
		t.Fatalf("activation is one-way")
	}
}

func TestTrailingIgnoresNilPosition(t *testing.T) {
	UpdateTrailing(nil, 110, 1.03, 0.9975) // must not panic
}
