package api

import (
	"net/http"

	"github.com/Sandwich1998/fl1pperb0nk/internal/engine"
	"github.com/Sandwich1998/fl1pperb0nk/internal/wiki"
)

// catalogEntry is one row of the browsable item catalog: static metadata
// merged with the latest quote and volume.
type catalogEntry struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Members   bool     `json:"members"`
	Limit     int      `json:"limit"`
	Buy       *int64   `json:"buy"`
	Sell      *int64   `json:"sell"`
	Margin    *int64   `json:"margin"`
	MarginPct *float64 `json:"marginPct"`
	Volume    *int64   `json:"volume"`
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	membership := engine.ParseMembershipFilter(r.URL.Query().Get("membership"))

	snap, err := s.loader.Snapshot(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("catalog fetch failed")
		writeError(w, http.StatusBadGateway, "failed to fetch item catalog")
		return
	}

	entries := make([]catalogEntry, 0, len(snap.Items))
	for _, item := range snap.Items {
		switch membership {
		case engine.MembershipMembers:
			if !item.Members {
				continue
			}
		case engine.MembershipF2P:
			if item.Members {
				continue
			}
		}

		entry := catalogEntry{
			ID:      item.ID,
			Name:    item.Name,
			Members: item.Members,
			Limit:   item.Limit,
		}
		if quote, ok := snap.Quotes[item.ID]; ok && quote.Low > 0 && quote.High > 0 {
			buy, sell := quote.Low, quote.High
			margin := sell - buy
			marginPct := float64(margin) / float64(buy)
			entry.Buy = &buy
			entry.Sell = &sell
			entry.Margin = &margin
			entry.MarginPct = &marginPct
		}
		if volume, ok := snap.Volumes[item.ID]; ok {
			entry.Volume = &volume
		}
		entries = append(entries, entry)
	}

	writeJSON(w, map[string]interface{}{"items": entries})
}

// liteQuote is the compact buy/sell pair used for live price refreshes.
type liteQuote struct {
	Buy  int64 `json:"buy"`
	Sell int64 `json:"sell"`
}

func (s *Server) handleLatestQuotes(w http.ResponseWriter, r *http.Request) {
	ids := idListParam(r, "ids")

	quotes, err := s.loader.Latest(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("latest quotes fetch failed")
		writeError(w, http.StatusBadGateway, "failed to fetch latest quotes")
		return
	}

	latest := make(map[int]liteQuote)
	if len(ids) == 0 {
		for id, q := range quotes {
			if q.Low > 0 && q.High > 0 {
				latest[id] = liteQuote{Buy: q.Low, Sell: q.High}
			}
		}
	} else {
		for _, id := range ids {
			if q, ok := quotes[id]; ok && q.Low > 0 && q.High > 0 {
				latest[id] = liteQuote{Buy: q.Low, Sell: q.High}
			}
		}
	}

	writeJSON(w, map[string]interface{}{"latest": latest})
}

func (s *Server) handleItemHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := int64PathParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	timestep := r.URL.Query().Get("timestep")
	switch timestep {
	case "5m", "1h", "24h":
	default:
		timestep = "1h"
	}

	points, err := s.loader.Timeseries(r.Context(), int(id), timestep)
	if err != nil {
		s.log.Error().Err(err).Int64("item", id).Msg("history fetch failed")
		writeError(w, http.StatusBadGateway, "failed to fetch history")
		return
	}
	if points == nil {
		points = []wiki.TimeseriesPoint{}
	}

	writeJSON(w, map[string]interface{}{
		"id":       id,
		"timestep": timestep,
		"count":    len(points),
		"points":   points,
	})
}

func (s *Server) handleItemGuide(w http.ResponseWriter, r *http.Request) {
	id, ok := int64PathParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	guide, err := s.loader.GuidePrice(r.Context(), int(id))
	if err != nil {
		s.log.Error().Err(err).Int64("item", id).Msg("guide price fetch failed")
		writeError(w, http.StatusBadGateway, "failed to fetch guide price")
		return
	}

	writeJSON(w, map[string]interface{}{"id": id, "guide": guide})
}
