package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sandwich1998/fl1pperb0nk/internal/config"
	"github.com/Sandwich1998/fl1pperb0nk/internal/db"
	"github.com/Sandwich1998/fl1pperb0nk/internal/engine"
	"github.com/Sandwich1998/fl1pperb0nk/internal/wiki"
)

func timeNowUnix() int64 { return time.Now().Unix() }

type testAPI struct {
	srv *httptest.Server
	db  *db.DB
}

// newTestAPI wires a full server against a fake upstream whose quotes are
// always fresh.
func newTestAPI(t *testing.T, now int64) *testAPI {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/mapping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":2,"name":"Cannonball","limit":11000},{"id":4151,"name":"Abyssal whip","members":true,"limit":70}]`))
	})
	mux.HandleFunc("/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":{"2":{"high":230,"low":220,"highTime":%d,"lowTime":%d},"4151":{"high":1950000,"low":1900000,"highTime":%d,"lowTime":%d}}}`, now, now, now, now)
	})
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"2":2000000,"4151":7500}}`))
	})
	mux.HandleFunc("/timeseries", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"timestamp":1700000000,"avgHighPrice":230,"avgLowPrice":221}]}`))
	})
	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	client := wiki.NewClient(zerolog.Nop())
	client.SetBaseURL(upstream.URL)
	loader := wiki.NewLoader(client, zerolog.Nop())
	eng := engine.New(loader, zerolog.Nop())

	database, err := db.Open(filepath.Join(t.TempDir(), "api.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	server := NewServer(config.Default(), eng, loader, database, zerolog.Nop())
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	return &testAPI{srv: srv, db: database}
}

func getJSON(t *testing.T, url string, dst interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp
}

func TestBestFlipsEndpoint(t *testing.T) {
	api := newTestAPI(t, timeNowUnix())

	var got flipScanResponse
	resp := getJSON(t, api.srv.URL+"/api/best-flips?budget=10m&minVolume=500", &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 10_000_000.0, got.Budget)
	assert.Equal(t, int64(500), got.MinVolume)
	assert.Equal(t, 0.2, got.BuyAggro)
	assert.Equal(t, "all", got.Membership)
	require.NotZero(t, got.Count)
	require.Len(t, got.Flips, got.Count)

	for i := 1; i < len(got.Flips); i++ {
		assert.GreaterOrEqual(t, got.Flips[i-1].EstimatedProfit, got.Flips[i].EstimatedProfit)
	}
	for _, c := range got.Flips {
		assert.Greater(t, c.RecommendedSellPrice, c.RecommendedBuyPrice)
		assert.GreaterOrEqual(t, c.EffectiveQty, int64(1))
	}

	// The scan is journaled.
	scans := api.db.RecentScans(5)
	require.Len(t, scans, 1)
	assert.Equal(t, got.Count, scans[0].Count)
	stored := api.db.GetFlipResults(scans[0].ID)
	assert.Len(t, stored, got.Count)
}

func TestBestFlipsMembershipFilter(t *testing.T) {
	api := newTestAPI(t, timeNowUnix())

	var got flipScanResponse
	getJSON(t, api.srv.URL+"/api/best-flips?membership=f2p", &got)
	assert.Equal(t, "f2p", got.Membership)
	for _, c := range got.Flips {
		assert.NotEqual(t, 4151, c.ID, "members item leaked through f2p filter")
	}
}

func TestListItemsEndpoint(t *testing.T) {
	api := newTestAPI(t, timeNowUnix())

	var got struct {
		Items []catalogEntry `json:"items"`
	}
	resp := getJSON(t, api.srv.URL+"/api/items", &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, got.Items, 2)

	var whip *catalogEntry
	for i := range got.Items {
		if got.Items[i].ID == 4151 {
			whip = &got.Items[i]
		}
	}
	require.NotNil(t, whip)
	assert.True(t, whip.Members)
	require.NotNil(t, whip.Buy)
	assert.Equal(t, int64(1_900_000), *whip.Buy)
	require.NotNil(t, whip.Margin)
	assert.Equal(t, int64(50_000), *whip.Margin)

	getJSON(t, api.srv.URL+"/api/items?membership=members", &got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 4151, got.Items[0].ID)
}

func TestLatestQuotesEndpoint(t *testing.T) {
	api := newTestAPI(t, timeNowUnix())

	var got struct {
		Latest map[string]liteQuote `json:"latest"`
	}
	getJSON(t, api.srv.URL+"/api/items/latest?ids=2", &got)
	require.Len(t, got.Latest, 1)
	assert.Equal(t, liteQuote{Buy: 220, Sell: 230}, got.Latest["2"])

	getJSON(t, api.srv.URL+"/api/items/latest", &got)
	assert.Len(t, got.Latest, 2)
}

func TestItemHistoryEndpoint(t *testing.T) {
	api := newTestAPI(t, timeNowUnix())

	var got struct {
		ID       int                    `json:"id"`
		Timestep string                 `json:"timestep"`
		Count    int                    `json:"count"`
		Points   []wiki.TimeseriesPoint `json:"points"`
	}
	getJSON(t, api.srv.URL+"/api/items/2/history?timestep=bogus", &got)
	assert.Equal(t, "1h", got.Timestep)
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Points, 1)

	resp := getJSON(t, api.srv.URL+"/api/items/0/history", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConfigEndpoints(t *testing.T) {
	api := newTestAPI(t, timeNowUnix())

	var cfg config.Config
	getJSON(t, api.srv.URL+"/api/config", &cfg)
	assert.Equal(t, *config.Default(), cfg)

	cfg.Budget = 2_500_000
	cfg.Membership = "members"
	cfg.ResultLimit = 9999 // clamped on save
	body, _ := json.Marshal(cfg)
	resp, err := http.Post(api.srv.URL+"/api/config", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var saved config.Config
	getJSON(t, api.srv.URL+"/api/config", &saved)
	assert.Equal(t, 2_500_000.0, saved.Budget)
	assert.Equal(t, "members", saved.Membership)
	assert.Equal(t, engine.MaxResultLimit, saved.ResultLimit)
}

func TestFavoritesEndpoints(t *testing.T) {
	api := newTestAPI(t, timeNowUnix())

	body := []byte(`{"item_id":4151,"name":"Abyssal whip"}`)
	resp, err := http.Post(api.srv.URL+"/api/favorites", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Duplicate pin conflicts.
	resp, err = http.Post(api.srv.URL+"/api/favorites", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var got struct {
		Favorites []config.FavoriteItem `json:"favorites"`
	}
	getJSON(t, api.srv.URL+"/api/favorites", &got)
	require.Len(t, got.Favorites, 1)
	assert.Equal(t, "Abyssal whip", got.Favorites[0].Name)

	req, _ := http.NewRequest(http.MethodDelete, api.srv.URL+"/api/favorites/4151", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	getJSON(t, api.srv.URL+"/api/favorites", &got)
	assert.Empty(t, got.Favorites)
}

func TestStatusEndpoint(t *testing.T) {
	api := newTestAPI(t, timeNowUnix())

	var got map[string]interface{}
	resp := getJSON(t, api.srv.URL+"/api/status", &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, got["upstream_ok"])
	assert.EqualValues(t, 2, got["catalog_items"])
}

func TestScanResultsBadID(t *testing.T) {
	api := newTestAPI(t, timeNowUnix())
	resp := getJSON(t, api.srv.URL+"/api/scans/abc/results", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
