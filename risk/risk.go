package risk

import "github.com/synaptik69/tradingview-strategy/portfolio"

// Notional returns the cash amount to deploy for a new position.
func Notional(cash, fraction float64) float64 {
	if cash <= 0 || fraction <= 0 {
		return 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return cash * fraction
}

// InitialStop returns the protective stop for a fresh position: the entry
// price scaled by the stop-loss ratio (0.98 puts the stop 2 % below entry).
func InitialStop(entry, stopLossRatio float64) float64 {
	return entry * stopLossRatio
}

// UpdateTrailing activates or tightens the trailing stop on pos.
//
// Activation happens once the close reaches entry × activationRatio and is
// one-way. While active the candidate stop is close × trailingRatio, and the
// enforced level only ever ratchets upward: if price retreats between
// cycles the stop holds at its last computed value instead of recomputing
// downward. Before activation the stop stays at the open-time level.
//
// The manager mutates pos directly and never emits trade intents; the
// executor fires the stop when price breaches it.
func UpdateTrailing(pos *portfolio.Position, latestClose, activationRatio, trailingRatio float64) {
	if pos == nil {
		return
	}
	if !pos.TrailingActive() {
		if latestClose < pos.EntryPrice*activationRatio {
			return
		}
		pos.TrailingStopRatio = trailingRatio
	}
	if candidate := latestClose * pos.TrailingStopRatio; candidate > pos.StopLoss {
		pos.StopLoss = candidate
	}
}
