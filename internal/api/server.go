// Package api exposes the scanner over HTTP: flip scans, catalog browsing,
// price history, favorites and saved settings.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Sandwich1998/fl1pperb0nk/internal/config"
	"github.com/Sandwich1998/fl1pperb0nk/internal/db"
	"github.com/Sandwich1998/fl1pperb0nk/internal/engine"
	"github.com/Sandwich1998/fl1pperb0nk/internal/wiki"
)

// Server is the HTTP API server connecting the market loader, scoring
// engine and database.
type Server struct {
	cfg    *config.Config
	engine *engine.Engine
	loader *wiki.Loader
	db     *db.DB
	log    zerolog.Logger
	start  time.Time
}

// NewServer creates a Server over the given collaborators.
func NewServer(cfg *config.Config, eng *engine.Engine, loader *wiki.Loader, database *db.DB, log zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		engine: eng,
		loader: loader,
		db:     database,
		log:    log.With().Str("component", "api").Logger(),
		start:  time.Now(),
	}
}

// Handler returns the HTTP handler with all API routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/best-flips", s.handleBestFlips)

		r.Get("/items", s.handleListItems)
		r.Get("/items/latest", s.handleLatestQuotes)
		r.Get("/items/{id}/history", s.handleItemHistory)
		r.Get("/items/{id}/guide", s.handleItemGuide)

		r.Get("/config", s.handleGetConfig)
		r.Post("/config", s.handleSetConfig)

		r.Get("/favorites", s.handleGetFavorites)
		r.Post("/favorites", s.handleAddFavorite)
		r.Delete("/favorites/{id}", s.handleDeleteFavorite)

		r.Get("/scans", s.handleRecentScans)
		r.Get("/scans/{id}/results", s.handleScanResults)
	})

	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap, err := s.loader.Snapshot(r.Context())

	result := map[string]interface{}{
		"uptime_seconds": int64(time.Since(s.start).Seconds()),
		"upstream_ok":    err == nil,
	}
	if err == nil {
		result["catalog_items"] = len(snap.Items)
		result["quoted_items"] = len(snap.Quotes)
		result["snapshot_at"] = snap.FetchedAt.Unix()
	}
	writeJSON(w, result)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.db.LoadConfig())
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid config payload")
		return
	}
	cfg.Clamp()
	if err := s.db.SaveConfig(&cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save config")
		return
	}
	*s.cfg = cfg
	writeJSON(w, s.cfg)
}

func (s *Server) handleRecentScans(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", 20)
	writeJSON(w, map[string]interface{}{"scans": s.db.RecentScans(limit)})
}

func (s *Server) handleScanResults(w http.ResponseWriter, r *http.Request) {
	id, ok := int64PathParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid scan id")
		return
	}
	flips := s.db.GetFlipResults(id)
	if flips == nil {
		flips = []engine.FlipCandidate{}
	}
	writeJSON(w, map[string]interface{}{"scan_id": id, "flips": flips})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
