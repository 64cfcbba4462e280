package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Sandwich1998/fl1pperb0nk/internal/wiki"
)

func TestAdmit(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	fresh := now.Unix()
	p := DefaultPolicy()
	baseOpts := Options{MinVolume: 500, Membership: MembershipAll}

	tests := []struct {
		name     string
		item     wiki.Item
		quote    wiki.Quote
		hasQuote bool
		volume   int64
		opts     Options
		want     bool
	}{
		{
			name:     "liquid item with sane spread",
			item:     wiki.Item{ID: 1},
			quote:    wiki.Quote{Low: 1000, High: 1100, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   50_000,
			opts:     baseOpts,
			want:     true,
		},
		{
			name:   "no quote",
			item:   wiki.Item{ID: 2},
			volume: 50_000,
			opts:   baseOpts,
		},
		{
			name:     "zero low side",
			item:     wiki.Item{ID: 3},
			quote:    wiki.Quote{Low: 0, High: 1100, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   50_000,
			opts:     baseOpts,
		},
		{
			name:     "below plausibility floor",
			item:     wiki.Item{ID: 4},
			quote:    wiki.Quote{Low: 5, High: 8, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   50_000,
			opts:     baseOpts,
		},
		{
			name:     "above plausibility ceiling",
			item:     wiki.Item{ID: 5},
			quote:    wiki.Quote{Low: 900_000_000, High: 1_100_000_000, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   50_000,
			opts:     baseOpts,
		},
		{
			name:     "stale low side",
			item:     wiki.Item{ID: 6},
			quote:    wiki.Quote{Low: 1000, High: 1100, LowTime: fresh - 3601, HighTime: fresh},
			hasQuote: true,
			volume:   50_000,
			opts:     baseOpts,
		},
		{
			name:     "stale high side",
			item:     wiki.Item{ID: 7},
			quote:    wiki.Quote{Low: 1000, High: 1100, LowTime: fresh, HighTime: fresh - 3601},
			hasQuote: true,
			volume:   50_000,
			opts:     baseOpts,
		},
		{
			name:     "margin ratio below noise floor",
			item:     wiki.Item{ID: 8},
			quote:    wiki.Quote{Low: 10_000, High: 10_020, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   50_000,
			opts:     baseOpts,
		},
		{
			name:     "margin ratio above corruption ceiling",
			item:     wiki.Item{ID: 9},
			quote:    wiki.Quote{Low: 100, High: 600, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   500_000,
			opts:     baseOpts,
		},
		{
			name:     "volume below configured minimum",
			item:     wiki.Item{ID: 10},
			quote:    wiki.Quote{Low: 1000, High: 1100, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   499,
			opts:     baseOpts,
		},
		{
			name:     "high margin on thin volume",
			item:     wiki.Item{ID: 11},
			quote:    wiki.Quote{Low: 100, High: 140, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   14_999,
			opts:     baseOpts,
		},
		{
			name:     "high margin with strong volume",
			item:     wiki.Item{ID: 12},
			quote:    wiki.Quote{Low: 100, High: 140, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   15_000,
			opts:     baseOpts,
			want:     true,
		},
		{
			name:     "wide spread on thin volume",
			item:     wiki.Item{ID: 13},
			quote:    wiki.Quote{Low: 100, High: 200, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   49_999,
			opts:     baseOpts,
		},
		{
			name:     "members item excluded by f2p filter",
			item:     wiki.Item{ID: 14, Members: true},
			quote:    wiki.Quote{Low: 1000, High: 1100, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   50_000,
			opts:     Options{MinVolume: 500, Membership: MembershipF2P},
		},
		{
			name:     "f2p item excluded by members filter",
			item:     wiki.Item{ID: 15},
			quote:    wiki.Quote{Low: 1000, High: 1100, LowTime: fresh, HighTime: fresh},
			hasQuote: true,
			volume:   50_000,
			opts:     Options{MinVolume: 500, Membership: MembershipMembers},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := admit(tt.item, tt.quote, tt.hasQuote, tt.volume, tt.opts, p, now)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestAdmitStats(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	fresh := now.Unix()
	opts := Options{MinVolume: 500, Membership: MembershipAll, FavoriteIDs: map[int]bool{1: true}}

	st, ok := admit(wiki.Item{ID: 1}, wiki.Quote{Low: 1000, High: 1100, LowTime: fresh, HighTime: fresh}, true, 60_000, opts, DefaultPolicy(), now)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), st.buyPrice)
	assert.Equal(t, int64(1100), st.sellPrice)
	assert.Equal(t, int64(100), st.margin)
	assert.InDelta(t, 0.1, st.marginRatio, 1e-9)
	assert.InDelta(t, 100.0/1050.0, st.spreadRatio, 1e-9)
	assert.True(t, st.isFavorite)
}
