package indicator

import "math"

// Snapshot holds the derived values for one decision cycle. Fields are
// addressed by name rather than constructed string keys.
type Snapshot struct {
	RSI    float64
	Upper  float64
	Middle float64
	Lower  float64
}

// Compute derives the full snapshot from a window of closing prices.
// ok is false whenever either indicator is undefined for the window –
// too little history, a degenerate all-equal window, or a non-finite
// intermediate value. An absent snapshot is a normal warm-up condition,
// never an error, and it is never partially populated.
func Compute(closes []float64, rsiLength, maLength int, stdDevMult float64) (Snapshot, bool) {
	rsi, ok := RSI(closes, rsiLength)
	if !ok {
		return Snapshot{}, false
	}
	upper, middle, lower, ok := Bollinger(closes, maLength, stdDevMult)
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{RSI: rsi, Upper: upper, Middle: middle, Lower: lower}, true
}

// RSI computes the classical Wilder-smoothed relative strength index.
// The first length changes seed the averages; the remainder of the window
// is smoothed with avg = (avg*(n-1) + current) / n. Requires at least
// length+1 closes.
func RSI(closes []float64, length int) (float64, bool) {
	if length <= 0 || len(closes) < length+1 {
		return 0, false
	}
	var avgGain, avgLoss float64
	for i := 1; i <= length; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(length)
	avgLoss /= float64(length)

	n := float64(length)
	for i := length + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*(n-1) + gain) / n
		avgLoss = (avgLoss*(n-1) + loss) / n
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			// flat window – momentum is undefined
			return 0, false
		}
		return 100, true
	}
	rs := avgGain / avgLoss
	rsi := 100 - 100/(1+rs)
	if math.IsNaN(rsi) || math.IsInf(rsi, 0) {
		return 0, false
	}
	return rsi, true
}

// Bollinger computes the band triple over the last length closes:
// middle = SMA, upper/lower = middle ± mult × population standard
// deviation. The deviation uses the same window as the moving average.
// Requires at least length closes; a zero-deviation window leaves the
// bands undefined.
func Bollinger(closes []float64, length int, mult float64) (upper, middle, lower float64, ok bool) {
	if length <= 0 || len(closes) < length {
		return 0, 0, 0, false
	}
	window := closes[len(closes)-length:]

	var sum float64
	for _, c := range window {
		sum += c
	}
	mean := sum / float64(length)

	var variance float64
	for _, c := range window {
		d := c - mean
		variance += d * d
	}
	variance /= float64(length)
	sd := math.Sqrt(variance)
	if sd == 0 || math.IsNaN(sd) || math.IsInf(sd, 0) {
		return 0, 0, 0, false
	}

	return mean + mult*sd, mean, mean - mult*sd, true
}
