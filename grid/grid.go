package grid

import (
	"fmt"

	"github.com/synaptik69/tradingview-strategy/config"
)

// Combination is one immutable point of the parameter grid. Identity is
// the tuple of values; two combinations with equal values are
// interchangeable.
type Combination struct {
	RSIThreshold        float64
	StdDevMultiplier    float64
	MovingAverageLength int
}

// Destructure returns the parameters in the fixed declaration order
// (rsi_threshold, stddev_multiplier, moving_average_length) so consumers
// can rebind them positionally.
func (c Combination) Destructure() (rsiThreshold, stdDevMultiplier float64, movingAverageLength int) {
	return c.RSIThreshold, c.StdDevMultiplier, c.MovingAverageLength
}

// Label renders the combination for logs and reports.
func (c Combination) Label() string {
	return fmt.Sprintf("rsi=%g stddev=%g ma=%d", c.RSIThreshold, c.StdDevMultiplier, c.MovingAverageLength)
}

// Combinations enumerates the cartesian product of the three candidate
// lists, preserving list order: the rsi threshold varies slowest, the
// moving average length fastest.
func Combinations(g config.GridConfig) []Combination {
	out := make([]Combination, 0, len(g.RSIThresholds)*len(g.StdDevMultipliers)*len(g.MovingAverageLengths))
	for _, rsi := range g.RSIThresholds {
		for _, sd := range g.StdDevMultipliers {
			for _, ma := range g.MovingAverageLengths {
				out = append(out, Combination{
					RSIThreshold:        rsi,
					StdDevMultiplier:    sd,
					MovingAverageLength: ma,
				})
			}
		}
	}
	return out
}
