package db

import (
	"strconv"

	"github.com/Sandwich1998/fl1pperb0nk/internal/config"
)

// LoadConfig reads saved scan settings. Missing or unreadable rows fall
// back to defaults; the result is always clamped to valid ranges.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if len(m) == 0 {
		return cfg
	}

	if v, ok := m["budget"]; ok {
		cfg.Budget, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["min_volume"]; ok {
		cfg.MinVolume, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok := m["result_limit"]; ok {
		cfg.ResultLimit, _ = strconv.Atoi(v)
	}
	if v, ok := m["max_fill_hours"]; ok {
		cfg.MaxFillHours, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["buy_aggressiveness"]; ok {
		cfg.BuyAggressiveness, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["sell_aggressiveness"]; ok {
		cfg.SellAggressiveness, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["slots_per_item"]; ok {
		cfg.SlotsPerItem, _ = strconv.Atoi(v)
	}
	if v, ok := m["total_slots"]; ok {
		cfg.TotalSlots, _ = strconv.Atoi(v)
	}
	if v, ok := m["auto_distribute"]; ok {
		cfg.AutoDistribute, _ = strconv.ParseBool(v)
	}
	if v, ok := m["membership"]; ok {
		cfg.Membership = v
	}

	cfg.Clamp()
	return cfg
}

// SaveConfig writes scan settings to SQLite (upsert all fields).
func (d *DB) SaveConfig(cfg *config.Config) error {
	pairs := map[string]string{
		"budget":              strconv.FormatFloat(cfg.Budget, 'g', -1, 64),
		"min_volume":          strconv.FormatInt(cfg.MinVolume, 10),
		"result_limit":        strconv.Itoa(cfg.ResultLimit),
		"max_fill_hours":      strconv.FormatFloat(cfg.MaxFillHours, 'g', -1, 64),
		"buy_aggressiveness":  strconv.FormatFloat(cfg.BuyAggressiveness, 'g', -1, 64),
		"sell_aggressiveness": strconv.FormatFloat(cfg.SellAggressiveness, 'g', -1, 64),
		"slots_per_item":      strconv.Itoa(cfg.SlotsPerItem),
		"total_slots":         strconv.Itoa(cfg.TotalSlots),
		"auto_distribute":     strconv.FormatBool(cfg.AutoDistribute),
		"membership":          cfg.Membership,
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for k, v := range pairs {
		if _, err := stmt.Exec(k, v); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
