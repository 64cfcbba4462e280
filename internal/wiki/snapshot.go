package wiki

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Dataset TTLs. The catalog barely changes; quotes and volumes refresh on
// the upstream's own cadence, so caching below that only saves bandwidth.
const (
	mappingTTL    = time.Hour
	latestTTL     = 30 * time.Second
	volumesTTL    = time.Minute
	timeseriesTTL = time.Minute
	guideTTL      = 30 * time.Second
)

// Snapshot is one consistent view of the market: catalog, latest quotes and
// trailing-day volumes, all fetched for a single reference time.
type Snapshot struct {
	Items     []Item
	Quotes    map[int]Quote
	Volumes   map[int]int64
	FetchedAt time.Time
}

// Loader fetches market snapshots through a TTL cache so interactive
// requests stay cheap while data stays near-live.
type Loader struct {
	client *Client
	cache  *memoCache
	log    zerolog.Logger
}

// NewLoader creates a Loader around the given client.
func NewLoader(client *Client, log zerolog.Logger) *Loader {
	return &Loader{
		client: client,
		cache:  newMemoCache(),
		log:    log.With().Str("component", "snapshot").Logger(),
	}
}

// Mapping returns the (cached) item catalog.
func (l *Loader) Mapping(ctx context.Context) ([]Item, error) {
	v, err := l.cache.do("mapping", mappingTTL, func() (interface{}, error) {
		return l.client.FetchMapping(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Item), nil
}

// Latest returns the (cached) quote map.
func (l *Loader) Latest(ctx context.Context) (map[int]Quote, error) {
	v, err := l.cache.do("latest", latestTTL, func() (interface{}, error) {
		return l.client.FetchLatest(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[int]Quote), nil
}

// Volumes returns the (cached) daily volume map.
func (l *Loader) Volumes(ctx context.Context) (map[int]int64, error) {
	v, err := l.cache.do("volumes", volumesTTL, func() (interface{}, error) {
		return l.client.FetchVolumes(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[int]int64), nil
}

// Timeseries returns (cached) price history for one item.
func (l *Loader) Timeseries(ctx context.Context, id int, timestep string) ([]TimeseriesPoint, error) {
	key := "ts-" + strconv.Itoa(id) + "-" + timestep
	v, err := l.cache.do(key, timeseriesTTL, func() (interface{}, error) {
		return l.client.FetchTimeseries(ctx, id, timestep)
	})
	if err != nil {
		return nil, err
	}
	return v.([]TimeseriesPoint), nil
}

// GuidePrice returns the (cached) official guide price for one item.
func (l *Loader) GuidePrice(ctx context.Context, id int) (*GuidePrice, error) {
	key := "guide-" + strconv.Itoa(id)
	v, err := l.cache.do(key, guideTTL, func() (interface{}, error) {
		return l.client.FetchGuidePrice(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*GuidePrice), nil
}

// Snapshot fetches catalog, quotes and volumes in parallel and stamps them
// with a single reference time. Any dataset failing fails the whole call;
// the engine never sees a partial market.
func (l *Loader) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		items   []Item
		quotes  map[int]Quote
		volumes map[int]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = l.Mapping(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		quotes, err = l.Latest(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		volumes, err = l.Volumes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load market snapshot: %w", err)
	}

	l.log.Debug().
		Int("items", len(items)).
		Int("quotes", len(quotes)).
		Int("volumes", len(volumes)).
		Msg("snapshot assembled")

	return &Snapshot{
		Items:     items,
		Quotes:    quotes,
		Volumes:   volumes,
		FetchedAt: time.Now().UTC(),
	}, nil
}
