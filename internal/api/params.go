package api

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

var budgetPattern = regexp.MustCompile(`^(\d+)([mk])?$`)

// ParseBudget reads a budget string with optional k/m shorthand ("500k",
// "10m", "2500000"). Anything unparseable falls back to the default budget.
func ParseBudget(input string, fallback float64) float64 {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(input)), ",", "")
	m := budgetPattern.FindStringSubmatch(normalized)
	if m == nil {
		return fallback
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value <= 0 {
		return fallback
	}
	switch m[2] {
	case "m":
		value *= 1_000_000
	case "k":
		value *= 1_000
	}
	return value
}

func floatParam(r *http.Request, name string, fallback float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func int64Param(r *http.Request, name string, fallback int64) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

func int64PathParam(r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// idListParam parses a comma separated id list, dropping blanks and junk.
func idListParam(r *http.Request, name string) []int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
