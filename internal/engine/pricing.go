package engine

import "math"

// tunedPrices is the output of the price tuner: an executable bid/ask pair
// that fills faster than the raw quote while keeping most of the margin.
type tunedPrices struct {
	buy       int64
	sell      int64
	adjMargin int64
}

// tunePrices derives the recommended execution prices for one item. Returns
// false when tuning collapses the spread.
func tunePrices(st itemStats, opts Options, p Policy) (tunedPrices, bool) {
	// Tight windows buy urgency; big margins buy caution. Large margins
	// are more often anomalies than gifts, so they get priced patiently.
	var timeBoost float64
	switch {
	case opts.MaxFillHours <= 1:
		timeBoost = p.ShortWindowAggroBonus
	case opts.MaxFillHours <= 2:
		timeBoost = p.ShortWindowAggroBonus / 2
	}

	var riskPenalty float64
	switch {
	case st.marginRatio >= p.HighRiskMarginRatio:
		riskPenalty = p.HighRiskAggroPenalty
	case st.marginRatio >= p.ElevatedMarginRatio:
		riskPenalty = p.ElevatedAggroPenalty
	}

	var favBoost float64
	if st.isFavorite && st.volume > p.FavoriteMinVolume {
		favBoost = p.FavoriteAggroBonus
	}

	tunedBuy := clampAggro(opts.BuyAggressiveness+favBoost+timeBoost-riskPenalty, p.MaxAggressiveness)
	tunedSell := clampAggro(opts.SellAggressiveness+favBoost+timeBoost-riskPenalty, p.MaxAggressiveness)

	buyF := float64(st.buyPrice)
	sellF := float64(st.sellPrice)
	marginF := float64(st.margin)

	recBuy := int64(math.Floor(math.Min(buyF+marginF*tunedBuy, buyF+marginF*p.AggroMarginCap)))
	if recBuy > st.sellPrice {
		recBuy = st.sellPrice
	}
	if recBuy < 1 {
		recBuy = 1
	}

	recSell := int64(math.Floor(math.Max(sellF-marginF*tunedSell, sellF-marginF*p.AggroMarginCap)))
	if recSell < recBuy+1 {
		recSell = recBuy + 1
	}

	adj := recSell - recBuy
	if adj <= 0 {
		return tunedPrices{}, false
	}
	return tunedPrices{buy: recBuy, sell: recSell, adjMargin: adj}, true
}
