package engine

import (
	"math"
	"time"
)

// MembershipFilter restricts the scan to one half of the item pool.
type MembershipFilter string

const (
	MembershipAll     MembershipFilter = "all"
	MembershipMembers MembershipFilter = "members"
	MembershipF2P     MembershipFilter = "f2p"
)

// ParseMembershipFilter maps a raw string onto a filter, defaulting to all.
func ParseMembershipFilter(s string) MembershipFilter {
	switch MembershipFilter(s) {
	case MembershipMembers, MembershipF2P:
		return MembershipFilter(s)
	default:
		return MembershipAll
	}
}

// FitLevel is the qualitative label attached to a candidate.
type FitLevel string

const (
	FitLow    FitLevel = "low"
	FitMedium FitLevel = "medium"
	FitHigh   FitLevel = "high"
)

// FlipCandidate is one sized, priced and time-estimated trade recommendation.
type FlipCandidate struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	BuyPrice  int64  `json:"buyPrice"`  // quoted instant-sell (we buy around here)
	SellPrice int64  `json:"sellPrice"` // quoted instant-buy (we sell around here)

	// Margin is the post-tuning spread between the recommended prices.
	Margin    int64   `json:"margin"`
	MarginPct float64 `json:"marginPct"`

	Volume           int64 `json:"volume"`
	MaxAffordableQty int64 `json:"maxAffordableQty"`
	EffectiveQty     int64 `json:"effectiveQty"`

	RecommendedBuyPrice  int64 `json:"recommendedBuyPrice"`
	RecommendedSellPrice int64 `json:"recommendedSellPrice"`

	EstimatedFillHours float64 `json:"estimatedFillHours"`
	EstimatedSellHours float64 `json:"estimatedSellHours"`
	SlotsUsed          int     `json:"slotsUsed"`

	EstimatedProfit int64   `json:"estimatedProfit"`
	ProfitPerHour   float64 `json:"profitPerHour"`

	Fit       FitLevel `json:"fit"`
	FitReason string   `json:"fitReason"`
}

// Options are the request-scoped tuning knobs for one engine run. Zero
// values for volumes, limits, windows and slots fall back to the defaults;
// zero aggressiveness is honored as-is (it means "quote at the raw prices").
type Options struct {
	MinVolume          int64
	ResultLimit        int
	BuyAggressiveness  float64
	SellAggressiveness float64
	MaxFillHours       float64
	SlotsPerItem       int
	TotalSlots         int
	AutoDistribute     bool
	FavoriteIDs        map[int]bool
	Membership         MembershipFilter

	// Now anchors the quote staleness check. Zero means the snapshot's
	// fetch time, which keeps identical snapshots producing identical
	// output.
	Now time.Time
}

// normalized applies defaults and clamps so the scoring pipeline only ever
// sees sane values, whatever the caller passed.
func (o Options) normalized(p Policy) Options {
	if o.MinVolume <= 0 {
		o.MinVolume = DefaultMinVolume
	}
	if o.ResultLimit <= 0 {
		o.ResultLimit = DefaultResultLimit
	}
	if o.ResultLimit > MaxResultLimit {
		o.ResultLimit = MaxResultLimit
	}
	if o.MaxFillHours == 0 {
		o.MaxFillHours = DefaultMaxFillHours
	}
	if o.MaxFillHours < p.MinHourlyWindow {
		o.MaxFillHours = p.MinHourlyWindow
	}
	o.BuyAggressiveness = clampAggro(o.BuyAggressiveness, p.MaxAggressiveness)
	o.SellAggressiveness = clampAggro(o.SellAggressiveness, p.MaxAggressiveness)
	o.SlotsPerItem = clampSlots(o.SlotsPerItem, DefaultSlotsPerItem)
	o.TotalSlots = clampSlots(o.TotalSlots, DefaultTotalSlots)
	if o.Membership == "" {
		o.Membership = MembershipAll
	}
	return o
}

// clampAggro keeps an aggressiveness value inside [0, max]; NaN and
// negatives collapse to 0.
func clampAggro(v, max float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func clampSlots(v, def int) int {
	if v <= 0 {
		return def
	}
	if v > MaxSlots {
		return MaxSlots
	}
	return v
}

// normalizeBudget floors the budget and substitutes the default for
// non-positive or non-finite values.
func normalizeBudget(budget float64) float64 {
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget <= 0 {
		return DefaultBudget
	}
	return math.Floor(budget)
}

// sanitizeFloat replaces NaN/Inf with 0 to keep JSON marshalling safe.
func sanitizeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
