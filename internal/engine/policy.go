package engine

import "time"

// Request defaults and hard limits. These bound what callers may ask for;
// the scoring thresholds themselves live in Policy.
const (
	DefaultBudget         = 10_000_000.0
	DefaultMinVolume      = int64(500)
	DefaultResultLimit    = 25
	MaxResultLimit        = 200
	DefaultMaxFillHours   = 6.0
	DefaultAggressiveness = 0.2
	DefaultSlotsPerItem   = 1
	DefaultTotalSlots     = 6
	MaxSlots              = 6
)

// Policy collects every tuning constant of the scoring pipeline in one
// place, so the whole policy can be swapped or tested in isolation.
type Policy struct {
	// Admissibility bounds.
	MinPlausiblePrice int64         // reject quotes cheaper than this, gp
	MaxPlausiblePrice int64         // reject quotes dearer than this, gp
	MaxQuoteAge       time.Duration // reject quotes older than this
	MinMarginRatio    float64       // below this the margin is noise
	MaxMarginRatio    float64       // above this the spread is corrupt

	// Liquidity guards: large margins and wide spreads on thin items are
	// usually stale or manipulated data.
	HighMarginRatio     float64
	HighMarginMinVolume int64
	WideSpreadRatio     float64
	WideSpreadMinVolume int64

	// Price tuning.
	MaxAggressiveness     float64 // ceiling for buy/sell aggressiveness
	AggroMarginCap        float64 // largest share of the margin a price may give up
	ShortWindowAggroBonus float64 // added when the fill window is tight
	FavoriteAggroBonus    float64 // added for liquid favorites
	FavoriteMinVolume     int64   // liquidity bar for the favorite boost
	HighRiskMarginRatio   float64 // margins at/above this get the full penalty
	ElevatedMarginRatio   float64 // margins at/above this get half the penalty
	HighRiskAggroPenalty  float64
	ElevatedAggroPenalty  float64

	// Capacity and timing.
	LimitWindowsPerDay     float64 // trade-limit windows assumed per day
	BuyFillShare           float64 // share of hourly volume our buy offer captures
	SellFillShare          float64 // share of hourly volume our sell offer captures
	FavoriteFillMultiplier float64 // favorites tolerate proportionally longer fills
	MinHourlyWindow        float64 // floor for all time-based math, hours
	ShortWindowBudgetShare float64 // budget fraction allowed in a <=1h window
	RiskSizeFloor          float64 // the risk multiplier never shrinks below this
	SellWindowSlack        float64 // sell side may run this much past the buy window
}

// DefaultPolicy returns the production scoring policy.
func DefaultPolicy() Policy {
	return Policy{
		MinPlausiblePrice: 10,
		MaxPlausiblePrice: 1_000_000_000,
		MaxQuoteAge:       time.Hour,
		MinMarginRatio:    0.005,
		MaxMarginRatio:    4.0,

		HighMarginRatio:     0.30,
		HighMarginMinVolume: 15_000,
		WideSpreadRatio:     0.65,
		WideSpreadMinVolume: 50_000,

		MaxAggressiveness:     0.5,
		AggroMarginCap:        0.55,
		ShortWindowAggroBonus: 0.05,
		FavoriteAggroBonus:    0.05,
		FavoriteMinVolume:     50_000,
		HighRiskMarginRatio:   0.35,
		ElevatedMarginRatio:   0.20,
		HighRiskAggroPenalty:  0.08,
		ElevatedAggroPenalty:  0.04,

		LimitWindowsPerDay:     6,
		BuyFillShare:           0.6,
		SellFillShare:          0.5,
		FavoriteFillMultiplier: 1.5,
		MinHourlyWindow:        0.25,
		ShortWindowBudgetShare: 0.5,
		RiskSizeFloor:          0.25,
		SellWindowSlack:        1.2,
	}
}
