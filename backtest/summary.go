package backtest

import (
	"math"

	"github.com/synaptik69/tradingview-strategy/portfolio"
)

// Summary is the performance outcome of one combination's full backtest.
type Summary struct {
	FinalEquity    float64
	TotalReturnPct float64
	MaxDrawdownPct float64
	Trades         int
	Wins           int
	WinRate        float64
	ProfitFactor   float64
}

// Summarize computes the performance metrics from an equity curve and the
// completed round trips. The curve's first point is the starting equity.
func Summarize(curve []float64, trades []portfolio.Trade) Summary {
	var s Summary
	if len(curve) == 0 {
		return s
	}

	s.FinalEquity = curve[len(curve)-1]
	if curve[0] > 0 {
		s.TotalReturnPct = (s.FinalEquity/curve[0] - 1) * 100
	}

	peak := curve[0]
	maxDD := 0.0
	for _, eq := range curve {
		if eq > peak {
			peak = eq
		}
		if peak > 0 {
			if dd := (peak - eq) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	s.MaxDrawdownPct = maxDD * 100

	var grossProfit, grossLoss float64
	for _, t := range trades {
		s.Trades++
		if t.PnL > 0 {
			s.Wins++
			grossProfit += t.PnL
		} else {
			grossLoss += -t.PnL
		}
	}
	if s.Trades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Trades)
	}
	switch {
	case grossLoss > 0:
		s.ProfitFactor = grossProfit / grossLoss
	case grossProfit > 0:
		s.ProfitFactor = math.Inf(1)
	}
	return s
}
