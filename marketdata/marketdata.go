package marketdata

import (
	"sort"
	"time"

	"github.com/synaptik69/tradingview-strategy/types"
)

// Provider serves candle windows to the decision engine. Implementations
// must return candles ascending by time and never more than length of them.
type Provider interface {
	// Window returns up to length candles for pair with timestamps <= asOf,
	// most recent last. Fewer candles (or none) come back when history is
	// shorter.
	Window(pair string, asOf time.Time, length int) []types.Candle
	// Pairs lists the tradable pairs this provider has history for.
	Pairs() []string
}

// MemoryStore is an in-memory Provider backed by pre-loaded candles.
// It is safe for concurrent readers once constructed; backtest workers
// share one store.
type MemoryStore struct {
	candles map[string][]types.Candle
	pairs   []string
}

// NewMemoryStore indexes the given candles by pair and sorts each series
// ascending by timestamp.
func NewMemoryStore(candles []types.Candle) *MemoryStore {
	byPair := make(map[string][]types.Candle)
	for _, c := range candles {
		byPair[c.Pair] = append(byPair[c.Pair], c)
	}
	pairs := make([]string, 0, len(byPair))
	for p, series := range byPair {
		sort.Slice(series, func(i, j int) bool {
			return series[i].Timestamp.Before(series[j].Timestamp)
		})
		byPair[p] = series
		pairs = append(pairs, p)
	}
	sort.Strings(pairs)
	return &MemoryStore{candles: byPair, pairs: pairs}
}

func (s *MemoryStore) Pairs() []string {
	out := make([]string, len(s.pairs))
	copy(out, s.pairs)
	return out
}

func (s *MemoryStore) Window(pair string, asOf time.Time, length int) []types.Candle {
	series := s.candles[pair]
	if len(series) == 0 || length <= 0 {
		return nil
	}
	// first index with timestamp > asOf
	end := sort.Search(len(series), func(i int) bool {
		return series[i].Timestamp.After(asOf)
	})
	if end == 0 {
		return nil
	}
	start := end - length
	if start < 0 {
		start = 0
	}
	out := make([]types.Candle, end-start)
	copy(out, series[start:end])
	return out
}

// Closes extracts the closing prices of a window, ascending by time.
func Closes(window []types.Candle) []float64 {
	out := make([]float64, len(window))
	for i, c := range window {
		out[i] = c.Close
	}
	return out
}
