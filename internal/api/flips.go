package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Sandwich1998/fl1pperb0nk/internal/engine"
)

// flipScanResponse echoes the resolved parameters alongside the ranked
// candidates so clients can display exactly what was scanned.
type flipScanResponse struct {
	Budget       float64                `json:"budget"`
	MinVolume    int64                  `json:"minVolume"`
	Slots        int                    `json:"slots"`
	MaxFillHours float64                `json:"maxFillHours"`
	BuyAggro     float64                `json:"buyAggro"`
	SellAggro    float64                `json:"sellAggro"`
	Limit        int                    `json:"limit"`
	TotalSlots   int                    `json:"totalSlots"`
	Favorites    []int                  `json:"favorites"`
	Membership   string                 `json:"membership"`
	Count        int                    `json:"count"`
	Flips        []engine.FlipCandidate `json:"flips"`
}

func (s *Server) handleBestFlips(w http.ResponseWriter, r *http.Request) {
	budget := ParseBudget(r.URL.Query().Get("budget"), engine.DefaultBudget)

	opts := engine.Options{
		MinVolume:          int64Param(r, "minVolume", engine.DefaultMinVolume),
		ResultLimit:        intParam(r, "limit", engine.DefaultResultLimit),
		BuyAggressiveness:  floatParam(r, "buyAggro", engine.DefaultAggressiveness),
		SellAggressiveness: floatParam(r, "sellAggro", engine.DefaultAggressiveness),
		MaxFillHours:       floatParam(r, "maxFillHours", engine.DefaultMaxFillHours),
		SlotsPerItem:       intParam(r, "slots", engine.DefaultSlotsPerItem),
		TotalSlots:         intParam(r, "totalSlots", engine.DefaultTotalSlots),
		AutoDistribute:     boolParam(r, "autoDistribute"),
		Membership:         engine.ParseMembershipFilter(r.URL.Query().Get("membership")),
	}

	// Query-string favorites merge with the pinned set from the database.
	favorites := s.db.FavoriteIDs()
	queryFavs := idListParam(r, "favorites")
	for _, id := range queryFavs {
		favorites[id] = true
	}
	opts.FavoriteIDs = favorites

	started := time.Now()
	flips, err := s.engine.FindBestFlips(r.Context(), budget, opts)
	if err != nil {
		s.log.Error().Err(err).Msg("flip scan failed")
		writeError(w, http.StatusBadGateway, "failed to fetch market data")
		return
	}

	s.journalScan(budget, opts, flips, time.Since(started))

	favList := make([]int, 0, len(favorites))
	for id := range favorites {
		favList = append(favList, id)
	}

	writeJSON(w, flipScanResponse{
		Budget:       budget,
		MinVolume:    opts.MinVolume,
		Slots:        opts.SlotsPerItem,
		MaxFillHours: opts.MaxFillHours,
		BuyAggro:     opts.BuyAggressiveness,
		SellAggro:    opts.SellAggressiveness,
		Limit:        opts.ResultLimit,
		TotalSlots:   opts.TotalSlots,
		Favorites:    favList,
		Membership:   string(opts.Membership),
		Count:        len(flips),
		Flips:        flips,
	})
}

// journalScan records the run in scan history. Best-effort only.
func (s *Server) journalScan(budget float64, opts engine.Options, flips []engine.FlipCandidate, took time.Duration) {
	var topProfit int64
	if len(flips) > 0 {
		topProfit = flips[0].EstimatedProfit
	}
	params, _ := json.Marshal(map[string]interface{}{
		"minVolume":    opts.MinVolume,
		"limit":        opts.ResultLimit,
		"maxFillHours": opts.MaxFillHours,
		"buyAggro":     opts.BuyAggressiveness,
		"sellAggro":    opts.SellAggressiveness,
		"slots":        opts.SlotsPerItem,
		"totalSlots":   opts.TotalSlots,
		"membership":   string(opts.Membership),
	})
	scanID := s.db.InsertScan(budget, len(flips), topProfit, string(params), took)
	s.db.InsertFlipResults(scanID, flips)
}
