package engine

import "math"

// sizing is the output of the capacity engine: the sized quantity plus the
// throughput figures the timing estimator reuses.
type sizing struct {
	maxAffordableQty int64
	effectiveQty     int64
	budgetShare      float64
	buyPerHour       float64
	sellPerHour      float64
	favFill          float64 // favorites get a wider fill window
}

// sizeQuantity bounds the tradeable quantity by budget, catalog trade limit,
// available liquidity and the requested time window, then shrinks it by the
// risk multiplier. Returns false when nothing affordable survives.
func sizeQuantity(st itemStats, catalogLimit int, prices tunedPrices, budget float64, opts Options, p Policy) (sizing, bool) {
	// A catalog trade limit caps each limit window; assume a fixed number
	// of windows per day.
	safeVolume := st.volume
	if catalogLimit > 0 {
		if capped := int64(catalogLimit) * int64(p.LimitWindowsPerDay); capped < safeVolume {
			safeVolume = capped
		}
	}

	budgetShare := budget
	if opts.AutoDistribute && opts.TotalSlots > 0 {
		budgetShare = math.Floor(budget * float64(opts.SlotsPerItem) / float64(opts.TotalSlots))
		if budgetShare < 1 {
			budgetShare = 1
		}
	}

	maxAffordable := int64(math.Floor(budgetShare / float64(prices.buy)))
	if maxAffordable <= 0 {
		return sizing{}, false
	}

	// Throughput model: we capture only a share of hourly volume, and
	// short windows assume proportionally worse fill competition.
	tightWindow := 1.0
	switch {
	case opts.MaxFillHours <= 1:
		tightWindow = 0.6
	case opts.MaxFillHours <= 2:
		tightWindow = 0.8
	}
	perHourVolume := float64(st.volume) / 24
	buyPerHour := perHourVolume * p.BuyFillShare * tightWindow
	sellPerHour := perHourVolume * p.SellFillShare * tightWindow

	favFill := 1.0
	if st.isFavorite {
		favFill = p.FavoriteFillMultiplier
	}

	var timeCapQty int64
	if buyPerHour > 0 {
		timeCapQty = int64(math.Floor(buyPerHour * opts.MaxFillHours * float64(opts.SlotsPerItem) * favFill))
	}

	limitQty := int64(math.MaxInt64)
	if catalogLimit > 0 {
		limitQty = int64(catalogLimit)
	}

	budgetBoundQty := minInt64(maxAffordable, safeVolume, limitQty)

	timeBound := safeVolume
	if timeCapQty > 0 {
		timeBound = timeCapQty
	}
	effectiveQty := budgetBoundQty
	if timeBound < effectiveQty {
		effectiveQty = timeBound
	}
	if effectiveQty < 0 {
		effectiveQty = 0
	}

	// Never suggest a full-budget stack for a one-hour window.
	if opts.MaxFillHours <= 1 && maxAffordable > 0 {
		if shortCap := int64(math.Floor(float64(maxAffordable) * p.ShortWindowBudgetShare)); shortCap > 0 && shortCap < effectiveQty {
			effectiveQty = shortCap
		}
	}

	mult := riskSizeMultiplier(st.marginRatio, st.volume, opts.MinVolume, opts.MaxFillHours, p)
	effectiveQty = int64(math.Floor(float64(effectiveQty) * mult))
	if effectiveQty == 0 && maxAffordable > 0 {
		// Never fully zero out an affordable, otherwise-valid candidate.
		effectiveQty = 1
	}

	// If the budget-sized stack still fits the fill and sell windows,
	// prefer spending the budget over the risk-shrunk size.
	if budgetBoundQty > effectiveQty {
		minRate := 1 / (p.MinHourlyWindow * 24)
		budgetFillHours := math.Inf(1)
		if buyPerHour > 0 {
			budgetFillHours = float64(budgetBoundQty) / math.Max(buyPerHour, minRate)
		}
		budgetSellHours := math.Inf(1)
		if sellPerHour > 0 {
			budgetSellHours = float64(budgetBoundQty) / math.Max(sellPerHour, minRate)
		}
		if budgetFillHours <= opts.MaxFillHours*favFill && budgetSellHours <= opts.MaxFillHours*favFill*p.SellWindowSlack {
			effectiveQty = budgetBoundQty
		}
	}

	if effectiveQty <= 0 {
		return sizing{}, false
	}

	return sizing{
		maxAffordableQty: maxAffordable,
		effectiveQty:     effectiveQty,
		budgetShare:      budgetShare,
		buyPerHour:       buyPerHour,
		sellPerHour:      sellPerHour,
		favFill:          favFill,
	}, true
}

// riskSizeMultiplier down-scales position size for risky margins, thin
// volume and tight windows. Multiplicative, clamped to [RiskSizeFloor, 1].
func riskSizeMultiplier(marginRatio float64, volume, minVolume int64, maxFillHours float64, p Policy) float64 {
	mult := 1.0

	if marginRatio >= p.HighRiskMarginRatio {
		mult *= 0.5
	} else if marginRatio >= p.ElevatedMarginRatio {
		mult *= 0.7
	}

	if volume < minVolume*3 {
		mult *= 0.7
	} else if volume < minVolume*5 {
		mult *= 0.85
	}

	if maxFillHours <= 1 {
		mult *= 0.9
	} else if maxFillHours <= 2 {
		mult *= 0.95
	}

	if mult < p.RiskSizeFloor {
		return p.RiskSizeFloor
	}
	if mult > 1 {
		return 1
	}
	return mult
}

func minInt64(vals ...int64) int64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
