package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Sandwich1998/fl1pperb0nk/internal/config"
)

type addFavoriteRequest struct {
	ItemID int    `json:"item_id"`
	Name   string `json:"name"`
}

func (s *Server) handleGetFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"favorites": s.db.GetFavorites()})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid favorite payload")
		return
	}
	if req.ItemID <= 0 || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "item_id and name are required")
		return
	}

	item := config.FavoriteItem{
		ItemID:  req.ItemID,
		Name:    strings.TrimSpace(req.Name),
		AddedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if !s.db.AddFavorite(item) {
		writeError(w, http.StatusConflict, "item already pinned")
		return
	}
	writeJSON(w, item)
}

func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := int64PathParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	s.db.DeleteFavorite(int(id))
	writeJSON(w, map[string]bool{"deleted": true})
}
