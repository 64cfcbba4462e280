// Package engine turns a market snapshot into a ranked list of sized,
// priced, time-estimated flip recommendations. Scoring is a pure function
// of the snapshot and options: identical inputs always yield an identical
// ordered list.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Sandwich1998/fl1pperb0nk/internal/wiki"
)

// SnapshotProvider supplies one consistent market snapshot per call.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*wiki.Snapshot, error)
}

// Engine scores market snapshots into flip recommendations.
type Engine struct {
	snapshots SnapshotProvider
	policy    Policy
	workers   int
	log       zerolog.Logger
}

// New creates an Engine with the default scoring policy.
func New(snapshots SnapshotProvider, log zerolog.Logger) *Engine {
	return &Engine{
		snapshots: snapshots,
		policy:    DefaultPolicy(),
		workers:   runtime.GOMAXPROCS(0),
		log:       log.With().Str("component", "engine").Logger(),
	}
}

// WithPolicy replaces the scoring policy. Used by tests and experiments.
func (e *Engine) WithPolicy(p Policy) *Engine {
	e.policy = p
	return e
}

// Policy returns the active scoring policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// FindBestFlips evaluates the whole catalog against the given budget and
// options and returns candidates ranked by estimated profit. It fails only
// when the snapshot cannot be loaded; an empty market yields an empty list.
func (e *Engine) FindBestFlips(ctx context.Context, budget float64, opts Options) ([]FlipCandidate, error) {
	opts = opts.normalized(e.policy)
	budget = normalizeBudget(budget)

	snap, err := e.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("find best flips: %w", err)
	}

	now := opts.Now
	if now.IsZero() {
		now = snap.FetchedAt
	}

	// Items are independent: fan out, collect into catalog-order slots,
	// then rank once. The snapshot is read-only for the whole call.
	slots := make([]*FlipCandidate, len(snap.Items))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range snap.Items {
		i := i
		g.Go(func() error {
			item := snap.Items[i]
			quote, hasQuote := snap.Quotes[item.ID]
			slots[i] = e.evaluateItem(item, quote, hasQuote, snap.Volumes[item.ID], budget, opts, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("find best flips: %w", err)
	}

	results := make([]FlipCandidate, 0, opts.ResultLimit)
	for _, c := range slots {
		if c != nil {
			results = append(results, *c)
		}
	}

	// Rank by estimated profit; stable keeps catalog order on ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].EstimatedProfit > results[j].EstimatedProfit
	})
	if len(results) > opts.ResultLimit {
		results = results[:opts.ResultLimit]
	}

	e.log.Debug().
		Int("catalog", len(snap.Items)).
		Int("candidates", len(results)).
		Float64("budget", budget).
		Msg("scan complete")

	return results, nil
}

// evaluateItem runs the per-item pipeline: admit, tune, size, time, label.
// A nil return means the item was skipped, never an error.
func (e *Engine) evaluateItem(item wiki.Item, quote wiki.Quote, hasQuote bool, volume int64, budget float64, opts Options, now time.Time) *FlipCandidate {
	st, ok := admit(item, quote, hasQuote, volume, opts, e.policy, now)
	if !ok {
		return nil
	}

	prices, ok := tunePrices(st, opts, e.policy)
	if !ok {
		return nil
	}

	sz, ok := sizeQuantity(st, item.Limit, prices, budget, opts, e.policy)
	if !ok {
		return nil
	}

	tm, ok := estimateTiming(sz, prices.adjMargin, opts, e.policy)
	if !ok {
		return nil
	}

	adjMarginRatio := float64(prices.adjMargin) / float64(prices.buy)
	fit, fitReason := classifyFit(st.volume, sz.effectiveQty, adjMarginRatio, st.spreadRatio, tm, opts.MaxFillHours)

	return &FlipCandidate{
		ID:                   item.ID,
		Name:                 item.Name,
		BuyPrice:             st.buyPrice,
		SellPrice:            st.sellPrice,
		Margin:               prices.adjMargin,
		MarginPct:            sanitizeFloat(adjMarginRatio),
		Volume:               st.volume,
		MaxAffordableQty:     sz.maxAffordableQty,
		EffectiveQty:         sz.effectiveQty,
		RecommendedBuyPrice:  prices.buy,
		RecommendedSellPrice: prices.sell,
		EstimatedFillHours:   sanitizeFloat(tm.fillHours),
		EstimatedSellHours:   sanitizeFloat(tm.sellHours),
		SlotsUsed:            opts.SlotsPerItem,
		EstimatedProfit:      tm.profit,
		ProfitPerHour:        sanitizeFloat(tm.profitPerHour),
		Fit:                  fit,
		FitReason:            fitReason,
	}
}
