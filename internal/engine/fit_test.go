package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTiming(t *testing.T) {
	p := DefaultPolicy()
	opts := Options{MaxFillHours: 6}

	sz := sizing{effectiveQty: 980, buyPerHour: 2500, sellPerHour: 100_000.0 / 24 * 0.5, favFill: 1}
	tm, ok := estimateTiming(sz, 60, opts, p)
	assert.True(t, ok)
	assert.InDelta(t, 0.392, tm.fillHours, 0.001)
	assert.InDelta(t, 0.4704, tm.sellHours, 0.001)
	assert.Equal(t, int64(58_800), tm.profit)
	assert.InDelta(t, float64(58_800)/tm.cycleHours, tm.profitPerHour, 1e-6)
}

func TestEstimateTimingFillGate(t *testing.T) {
	p := DefaultPolicy()
	opts := Options{MaxFillHours: 1}

	// 100 units at 10/hour needs 10 hours; the one hour window rejects it.
	sz := sizing{effectiveQty: 100, buyPerHour: 10, sellPerHour: 8, favFill: 1}
	_, ok := estimateTiming(sz, 50, opts, p)
	assert.False(t, ok)

	// The favorite multiplier widens the window but not enough here.
	sz.favFill = p.FavoriteFillMultiplier
	_, ok = estimateTiming(sz, 50, opts, p)
	assert.False(t, ok)

	// Only the buy side gates: a slow sell still passes.
	sz = sizing{effectiveQty: 10, buyPerHour: 100, sellPerHour: 0.5, favFill: 1}
	tm, ok := estimateTiming(sz, 50, opts, p)
	assert.True(t, ok)
	assert.Greater(t, tm.sellHours, opts.MaxFillHours)
}

func TestEstimateTimingCycleFloor(t *testing.T) {
	p := DefaultPolicy()
	sz := sizing{effectiveQty: 1, buyPerHour: 1000, sellPerHour: 1000, favFill: 1}
	tm, ok := estimateTiming(sz, 50, Options{MaxFillHours: 6}, p)
	assert.True(t, ok)
	// Near-instant flips still amortize profit over the minimum window.
	assert.InDelta(t, p.MinHourlyWindow, tm.cycleHours, 1e-9)
	assert.InDelta(t, 50/p.MinHourlyWindow, tm.profitPerHour, 1e-6)
}

func TestClassifyFit(t *testing.T) {
	tests := []struct {
		name         string
		volume       int64
		effectiveQty int64
		marginRatio  float64
		spreadRatio  float64
		tm           timing
		maxFillHours float64
		want         FitLevel
	}{
		{
			name:         "strong liquidity moderate margin",
			volume:       100_000,
			effectiveQty: 980,
			marginRatio:  0.06,
			spreadRatio:  0.095,
			tm:           timing{fillHours: 0.4, sellHours: 0.5},
			maxFillHours: 6,
			want:         FitHigh,
		},
		{
			name:         "thin headroom",
			volume:       1000,
			effectiveQty: 400,
			marginRatio:  0.1,
			spreadRatio:  0.1,
			tm:           timing{fillHours: 1, sellHours: 1},
			maxFillHours: 6,
			want:         FitLow,
		},
		{
			name:         "oversized margin",
			volume:       100_000,
			effectiveQty: 980,
			marginRatio:  0.6,
			spreadRatio:  0.4,
			tm:           timing{fillHours: 0.4, sellHours: 0.5},
			maxFillHours: 6,
			want:         FitLow,
		},
		{
			name:         "cycle overruns the window",
			volume:       100_000,
			effectiveQty: 980,
			marginRatio:  0.06,
			spreadRatio:  0.095,
			tm:           timing{fillHours: 4, sellHours: 3},
			maxFillHours: 6,
			want:         FitLow,
		},
		{
			name:         "decent but not strong",
			volume:       10_000,
			effectiveQty: 1000,
			marginRatio:  0.04,
			spreadRatio:  0.05,
			tm:           timing{fillHours: 1, sellHours: 1},
			maxFillHours: 6,
			want:         FitMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := classifyFit(tt.volume, tt.effectiveQty, tt.marginRatio, tt.spreadRatio, tt.tm, tt.maxFillHours)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, reason)
		})
	}
}
