package engine

// Fixed reason strings for the fit labels.
const (
	fitReasonLow    = "Thin liquidity or slow/volatile trade"
	fitReasonHigh   = "Strong liquidity and moderate margin within window"
	fitReasonMedium = "Decent liquidity but watch fills/price moves"
)

// classifyFit labels a candidate by liquidity headroom, margin, spread and
// timing fit. marginRatio here is the post-tuning ratio; spreadRatio the
// raw quoted one.
func classifyFit(volume, effectiveQty int64, marginRatio, spreadRatio float64, tm timing, maxFillHours float64) (FitLevel, string) {
	var volumeToQty float64
	if effectiveQty > 0 {
		volumeToQty = float64(volume) / float64(effectiveQty)
	}
	meetsTime := tm.fillHours+tm.sellHours <= maxFillHours*1.05

	if volumeToQty < 5 || marginRatio > 0.5 || spreadRatio > 0.65 || !meetsTime {
		return FitLow, fitReasonLow
	}
	if volumeToQty >= 15 && marginRatio >= 0.05 && marginRatio <= 0.35 && spreadRatio <= 0.5 && meetsTime {
		return FitHigh, fitReasonHigh
	}
	return FitMedium, fitReasonMedium
}
