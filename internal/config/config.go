// Package config holds the persisted scan settings. Persistence itself is
// handled by internal/db; this package only defines the shape and bounds.
package config

import "github.com/Sandwich1998/fl1pperb0nk/internal/engine"

// FavoriteItem is an item the user has pinned for boosted pricing.
type FavoriteItem struct {
	ItemID  int    `json:"item_id"`
	Name    string `json:"name"`
	AddedAt string `json:"added_at"`
}

// Config holds the saved scan parameters (in-memory representation).
type Config struct {
	Budget             float64 `json:"budget"`
	MinVolume          int64   `json:"min_volume"`
	ResultLimit        int     `json:"result_limit"`
	MaxFillHours       float64 `json:"max_fill_hours"`
	BuyAggressiveness  float64 `json:"buy_aggressiveness"`
	SellAggressiveness float64 `json:"sell_aggressiveness"`
	SlotsPerItem       int     `json:"slots_per_item"`
	TotalSlots         int     `json:"total_slots"`
	AutoDistribute     bool    `json:"auto_distribute"`
	Membership         string  `json:"membership"`
}

// Default returns a Config with the standard scan parameters.
func Default() *Config {
	return &Config{
		Budget:             engine.DefaultBudget,
		MinVolume:          engine.DefaultMinVolume,
		ResultLimit:        engine.DefaultResultLimit,
		MaxFillHours:       engine.DefaultMaxFillHours,
		BuyAggressiveness:  engine.DefaultAggressiveness,
		SellAggressiveness: engine.DefaultAggressiveness,
		SlotsPerItem:       engine.DefaultSlotsPerItem,
		TotalSlots:         engine.DefaultTotalSlots,
		Membership:         string(engine.MembershipAll),
	}
}

// Clamp pulls every field back inside its valid range so a hand-edited or
// stale row cannot poison a scan.
func (c *Config) Clamp() {
	if c.Budget <= 0 {
		c.Budget = engine.DefaultBudget
	}
	if c.MinVolume <= 0 {
		c.MinVolume = engine.DefaultMinVolume
	}
	if c.ResultLimit <= 0 {
		c.ResultLimit = engine.DefaultResultLimit
	}
	if c.ResultLimit > engine.MaxResultLimit {
		c.ResultLimit = engine.MaxResultLimit
	}
	if c.MaxFillHours <= 0 {
		c.MaxFillHours = engine.DefaultMaxFillHours
	}
	if c.MaxFillHours < 0.25 {
		c.MaxFillHours = 0.25
	}
	if c.BuyAggressiveness < 0 {
		c.BuyAggressiveness = 0
	}
	if c.BuyAggressiveness > 0.5 {
		c.BuyAggressiveness = 0.5
	}
	if c.SellAggressiveness < 0 {
		c.SellAggressiveness = 0
	}
	if c.SellAggressiveness > 0.5 {
		c.SellAggressiveness = 0.5
	}
	if c.SlotsPerItem <= 0 {
		c.SlotsPerItem = engine.DefaultSlotsPerItem
	}
	if c.SlotsPerItem > engine.MaxSlots {
		c.SlotsPerItem = engine.MaxSlots
	}
	if c.TotalSlots <= 0 {
		c.TotalSlots = engine.DefaultTotalSlots
	}
	if c.TotalSlots > engine.MaxSlots {
		c.TotalSlots = engine.MaxSlots
	}
	c.Membership = string(engine.ParseMembershipFilter(c.Membership))
}
