package engine

import (
	"time"

	"github.com/Sandwich1998/fl1pperb0nk/internal/wiki"
)

// itemStats carries the pre-tuning numbers every later stage consumes.
type itemStats struct {
	buyPrice    int64
	sellPrice   int64
	margin      int64   // sellPrice - buyPrice, pre-tuning
	marginRatio float64 // margin / buyPrice
	spreadRatio float64 // margin / midprice
	volume      int64
	isFavorite  bool
}

// admit applies the admissibility rules to one catalog item. Inadmissible
// items are skipped silently; the second return value reports admission.
func admit(item wiki.Item, quote wiki.Quote, hasQuote bool, volume int64, opts Options, p Policy, now time.Time) (itemStats, bool) {
	switch opts.Membership {
	case MembershipMembers:
		if !item.Members {
			return itemStats{}, false
		}
	case MembershipF2P:
		if item.Members {
			return itemStats{}, false
		}
	}

	if !hasQuote {
		return itemStats{}, false
	}

	buyPrice := quote.Low
	sellPrice := quote.High
	if buyPrice <= 0 || sellPrice <= 0 {
		return itemStats{}, false
	}
	if buyPrice < p.MinPlausiblePrice || sellPrice > p.MaxPlausiblePrice {
		return itemStats{}, false
	}

	// Stale quotes produce nonsense margins.
	maxAge := int64(p.MaxQuoteAge / time.Second)
	nowSec := now.Unix()
	if nowSec-quote.LowTime > maxAge || nowSec-quote.HighTime > maxAge {
		return itemStats{}, false
	}

	margin := sellPrice - buyPrice
	if margin <= 0 {
		return itemStats{}, false
	}

	marginRatio := float64(margin) / float64(buyPrice)
	if marginRatio < p.MinMarginRatio || marginRatio > p.MaxMarginRatio {
		return itemStats{}, false
	}

	mid := float64(buyPrice+sellPrice) / 2
	if mid < 1 {
		mid = 1
	}
	spreadRatio := float64(margin) / mid

	highMarginMin := p.HighMarginMinVolume
	if opts.MinVolume > highMarginMin {
		highMarginMin = opts.MinVolume
	}
	highMarginThin := marginRatio >= p.HighMarginRatio && volume < highMarginMin
	wideSpreadThin := spreadRatio >= p.WideSpreadRatio && volume < p.WideSpreadMinVolume
	if volume < opts.MinVolume || highMarginThin || wideSpreadThin {
		return itemStats{}, false
	}

	return itemStats{
		buyPrice:    buyPrice,
		sellPrice:   sellPrice,
		margin:      margin,
		marginRatio: marginRatio,
		spreadRatio: spreadRatio,
		volume:      volume,
		isFavorite:  opts.FavoriteIDs[item.ID],
	}, true
}
