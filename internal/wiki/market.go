package wiki

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// allowed timesteps for the /timeseries endpoint.
var validTimesteps = map[string]bool{"5m": true, "1h": true, "24h": true}

// FetchMapping fetches the item catalog.
func (c *Client) FetchMapping(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.getJSON(ctx, "/mapping", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchLatest fetches the latest quote for every item, keyed by item id.
func (c *Client) FetchLatest(ctx context.Context) (map[int]Quote, error) {
	var resp latestResponse
	if err := c.getJSON(ctx, "/latest", nil, &resp); err != nil {
		return nil, err
	}
	quotes := make(map[int]Quote, len(resp.Data))
	for k, q := range resp.Data {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		quotes[id] = q
	}
	return quotes, nil
}

// FetchVolumes fetches the trailing-day trade count for every item.
func (c *Client) FetchVolumes(ctx context.Context) (map[int]int64, error) {
	var resp volumesResponse
	if err := c.getJSON(ctx, "/volumes", nil, &resp); err != nil {
		return nil, err
	}
	volumes := make(map[int]int64, len(resp.Data))
	for k, v := range resp.Data {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		volumes[id] = v
	}
	return volumes, nil
}

// FetchTimeseries fetches the price history for one item at the given
// timestep (5m, 1h or 24h).
func (c *Client) FetchTimeseries(ctx context.Context, id int, timestep string) ([]TimeseriesPoint, error) {
	if !validTimesteps[timestep] {
		return nil, fmt.Errorf("invalid timestep %q", timestep)
	}
	var resp timeseriesResponse
	query := map[string]string{
		"timestep": timestep,
		"id":       strconv.Itoa(id),
	}
	if err := c.getJSON(ctx, "/timeseries", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// guideResponse mirrors the official catalogue detail envelope. The price
// field is either a plain number or an abbreviated string like "1.2m".
type guideResponse struct {
	Item struct {
		Current struct {
			Price interface{} `json:"price"`
			Trend string      `json:"trend"`
		} `json:"current"`
	} `json:"item"`
}

// FetchGuidePrice fetches the official guide price for one item.
func (c *Client) FetchGuidePrice(ctx context.Context, id int) (*GuidePrice, error) {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	var resp guideResponse
	r, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("item", strconv.Itoa(id)).
		SetResult(&resp).
		Get(c.guideURL)
	if err != nil {
		return nil, fmt.Errorf("guide price %d: %w", id, err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("guide price %d: status %d", id, r.StatusCode())
	}

	price, ok := ParseAbbrevPrice(resp.Item.Current.Price)
	if !ok {
		return nil, fmt.Errorf("guide price %d: unparseable price %v", id, resp.Item.Current.Price)
	}
	return &GuidePrice{Price: price, Trend: resp.Item.Current.Trend}, nil
}

var abbrevPriceRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)([kmb])?$`)

// ParseAbbrevPrice parses catalogue price values, which arrive either as
// numbers or as abbreviated strings such as "850k", "1.2m" or "2b".
func ParseAbbrevPrice(v interface{}) (int64, bool) {
	switch p := v.(type) {
	case float64:
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return 0, false
		}
		return int64(math.Round(p)), true
	case int64:
		return p, true
	case int:
		return int64(p), true
	case string:
		normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p)), ",", "")
		m := abbrevPriceRe.FindStringSubmatch(normalized)
		if m == nil {
			n, err := strconv.ParseFloat(normalized, 64)
			if err != nil {
				return 0, false
			}
			return int64(math.Round(n)), true
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		switch m[2] {
		case "k":
			n *= 1_000
		case "m":
			n *= 1_000_000
		case "b":
			n *= 1_000_000_000
		}
		return int64(math.Round(n)), true
	default:
		return 0, false
	}
}
