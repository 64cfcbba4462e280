// Package wiki talks to the OSRS real-time price API and assembles consistent
// market snapshots for the recommendation engine.
package wiki

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	defaultBaseURL  = "https://prices.runescape.wiki/api/v1/osrs"
	defaultGuideURL = "https://services.runescape.com/m=itemdb_oldschool/api/catalogue/detail.json"
	userAgent       = "fl1pperb0nk/1.0 (github.com/Sandwich1998/fl1pperb0nk)"

	// The wiki asks clients to stay well under their burst limits.
	maxConcurrentRequests = 8
)

// Client is a rate-limited HTTP client for the price API.
type Client struct {
	http     *resty.Client
	guideURL string
	sem      chan struct{}
	log      zerolog.Logger
}

// NewClient creates a client with sane timeouts and a concurrency cap.
func NewClient(log zerolog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     rc,
		guideURL: defaultGuideURL,
		sem:      make(chan struct{}, maxConcurrentRequests),
		log:      log.With().Str("component", "wiki").Logger(),
	}
}

// SetBaseURL points the client at a different price API host. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.http.SetBaseURL(u)
}

// SetGuideURL points the client at a different guide-price endpoint. Used by tests.
func (c *Client) SetGuideURL(u string) {
	c.guideURL = u
}

// getJSON fetches a path relative to the base URL and decodes JSON into dst.
func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, dst interface{}) error {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	req := c.http.R().SetContext(ctx).SetResult(dst)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("wiki %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("wiki %s: status %d", path, resp.StatusCode())
	}
	return nil
}
