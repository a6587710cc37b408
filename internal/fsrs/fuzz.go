package fsrs

import "math"

// fuzz randomizes an interval so that cards reviewed together do not all
// come due on the same day again. Intended as roughly ±5% for short
// intervals and about ±2 days for long ones. Intervals under 2.5 days are
// never fuzzed.
func (e *Engine) fuzz(interval int) int {
	if e.params.DisableFuzz || float64(interval) < 2.5 {
		return interval
	}

	fivePct := int(math.Round(float64(interval) * 0.05))
	twoPct := int(math.Round(float64(interval) * 0.02))
	if twoPct < 1 {
		twoPct = 1
	}
	fuzzRange := fivePct
	if twoPct < fuzzRange {
		fuzzRange = twoPct
	}

	delta := e.rng.Intn(2*fuzzRange+1) - fuzzRange
	fuzzed := interval + delta
	if fuzzed < 1 {
		fuzzed = 1
	}
	return fuzzed
}
