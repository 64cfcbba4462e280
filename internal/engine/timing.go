package engine

import "math"

// timing is the output of the timing estimator.
type timing struct {
	fillHours     float64
	sellHours     float64
	cycleHours    float64
	profit        int64
	profitPerHour float64
}

// estimateTiming converts throughput into expected hours-to-fill and
// hours-to-sell for the sized quantity. Only the buy-side fill time gates
// acceptance; sell time is reported but not bounded.
func estimateTiming(sz sizing, adjMargin int64, opts Options, p Policy) (timing, bool) {
	minRate := 1 / (p.MinHourlyWindow * 24)

	fillHours := math.Inf(1)
	if sz.buyPerHour > 0 {
		fillHours = float64(sz.effectiveQty) / math.Max(sz.buyPerHour, minRate)
	}
	if fillHours > opts.MaxFillHours*sz.favFill {
		return timing{}, false
	}

	sellHours := math.Inf(1)
	if sz.sellPerHour > 0 {
		sellHours = float64(sz.effectiveQty) / math.Max(sz.sellPerHour, minRate)
	}

	profit := adjMargin * sz.effectiveQty
	if profit <= 0 {
		return timing{}, false
	}

	cycleHours := math.Max(p.MinHourlyWindow, fillHours+sellHours)
	return timing{
		fillHours:     fillHours,
		sellHours:     sellHours,
		cycleHours:    cycleHours,
		profit:        profit,
		profitPerHour: float64(profit) / cycleHours,
	}, true
}
