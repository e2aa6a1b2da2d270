package marketdata

import (
	"testing"
	"time"

	"github.com/synaptik69/tradingview-strategy/testutils"
)

var t0 = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

func TestWindowReturnsMostRecentAscending(t *testing.T) {
	store := NewMemoryStore(testutils.CandlesFromCloses("X-USD", t0, testutils.Ramp(100, 1, 10)))

	win := store.Window("X-USD", t0.Add(9*time.Hour), 3)
	if len(win) != 3 {
		t.Fatalf("expected 3 candles, got %d", len(win))
	}
	if win[0].Close != 107 || win[2].Close != 109 {
		t.Fatalf("expected ascending tail 107..109, got %v..%v", win[0].Close, win[2].Close)
	}
}

func TestWindowRespectsAsOf(t *testing.T) {
	store := NewMemoryStore(testutils.CandlesFromCloses("X-USD", t0, testutils.Ramp(100, 1, 10)))

	win := store.Window("X-USD", t0.Add(4*time.Hour), 100)
	if len(win) != 5 {
		t.Fatalf("expected only the 5 candles up to asOf, got %d", len(win))
	}
	for _, c := range win {
		if c.Timestamp.After(t0.Add(4 * time.Hour)) {
			t.Fatalf("candle %v is in the future", c.Timestamp)
		}
	}
}

func TestWindowBeforeHistory(t *testing.T) {
	store := NewMemoryStore(testutils.CandlesFromCloses("X-USD", t0, testutils.Ramp(100, 1, 10)))

	if win := store.Window("X-USD", t0.Add(-time.Hour), 5); win != nil {
		t.Fatalf("expected no candles before history starts, got %d", len(win))
	}
}

func TestWindowUnknownPair(t *testing.T) {
	store := NewMemoryStore(nil)
	if win := store.Window("NOPE-USD", t0, 5); win != nil {
		t.Fatalf("expected no candles for unknown pair")
	}
}

func TestPairsSortedAndCopied(t *testing.T) {
	candles := testutils.CandlesFromCloses("B-USD", t0, testutils.Ramp(1, 1, 2))
	candles = append(candles, testutils.CandlesFromCloses("A-USD", t0, testutils.Ramp(1, 1, 2))...)
	store := NewMemoryStore(candles)

	pairs := store.Pairs()
	if len(pairs) != 2 || pairs[0] != "A-USD" || pairs[1] != "B-USD" {
		t.Fatalf("expected sorted pairs [A-USD B-USD], got %v", pairs)
	}
	pairs[0] = "mutated"
	if store.Pairs()[0] != "A-USD" {
		t.Fatalf("Pairs must return a copy")
	}
}

func TestStoreSortsUnorderedInput(t *testing.T) {
	candles := testutils.CandlesFromCloses("X-USD", t0, []float64{1, 2, 3})
	// shuffle: feed newest first
	candles[0], candles[2] = candles[2], candles[0]
	store := NewMemoryStore(candles)

	win := store.Window("X-USD", t0.Add(2*time.Hour), 3)
	if len(win) != 3 || !win[0].Timestamp.Before(win[1].Timestamp) || !win[1].Timestamp.Before(win[2].Timestamp) {
		t.Fatalf("expected candles sorted ascending, got %v", win)
	}
}
