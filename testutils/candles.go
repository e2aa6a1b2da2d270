package testutils

import (
	"time"

	"github.com/synaptik69/tradingview-strategy/types"
)

// Series builds candle fixtures for the package tests. Each candle gets a
// small symmetric high/low envelope around its close so stop levels can be
// probed deterministically.

// CandlesFromCloses turns a close-price series into hourly candles for
// pair, starting at start.
func CandlesFromCloses(pair string, start time.Time, closes []float64) []types.Candle {
	out := make([]types.Candle, len(closes))
	for i, c := range closes {
		out[i] = types.Candle{
			Pair:      pair,
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      c,
			High:      c + 0.5,
			Low:       c - 0.5,
			Close:     c,
			Volume:    1000,
		}
	}
	return out
}

// Ramp returns n closes rising (or falling, for a negative step) linearly
// from base.
func Ramp(base, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + step*float64(i)
	}
	return out
}

// Flat returns n identical closes.
func Flat(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Zigzag alternates around base with the given amplitude, giving the
// rolling standard deviation something to measure without trending.
func Zigzag(base, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = base + amplitude
		} else {
			out[i] = base - amplitude
		}
	}
	return out
}
