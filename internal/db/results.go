package db

import (
	"time"

	"github.com/Sandwich1998/fl1pperb0nk/internal/engine"
)

// ScanRecord is one journaled engine run.
type ScanRecord struct {
	ID         int64   `json:"id"`
	Timestamp  string  `json:"timestamp"`
	Budget     float64 `json:"budget"`
	Count      int     `json:"count"`
	TopProfit  int64   `json:"top_profit"`
	ParamsJSON string  `json:"params_json"`
	DurationMS int64   `json:"duration_ms"`
}

// InsertScan journals one engine run and returns its id. Journaling is
// best-effort; a zero id means the write failed.
func (d *DB) InsertScan(budget float64, count int, topProfit int64, paramsJSON string, duration time.Duration) int64 {
	res, err := d.sql.Exec(
		`INSERT INTO scan_history (timestamp, budget, count, top_profit, params_json, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		budget, count, topProfit, paramsJSON, duration.Milliseconds(),
	)
	if err != nil {
		d.log.Warn().Err(err).Msg("insert scan")
		return 0
	}
	id, _ := res.LastInsertId()
	return id
}

// RecentScans returns the newest scan records, up to limit.
func (d *DB) RecentScans(limit int) []ScanRecord {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.Query(`
		SELECT id, timestamp, budget, count, top_profit, params_json, duration_ms
		  FROM scan_history
		 ORDER BY id DESC
		 LIMIT ?
	`, limit)
	if err != nil {
		return []ScanRecord{}
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var r ScanRecord
		rows.Scan(&r.ID, &r.Timestamp, &r.Budget, &r.Count, &r.TopProfit, &r.ParamsJSON, &r.DurationMS)
		records = append(records, r)
	}
	if records == nil {
		return []ScanRecord{}
	}
	return records
}

// InsertFlipResults bulk-inserts candidates linked to a scan record.
func (d *DB) InsertFlipResults(scanID int64, flips []engine.FlipCandidate) {
	if scanID == 0 || len(flips) == 0 {
		return
	}

	tx, err := d.sql.Begin()
	if err != nil {
		d.log.Warn().Err(err).Msg("insert flip results: begin tx")
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO flip_results (
		scan_id, item_id, name, buy_price, sell_price, margin, margin_pct,
		volume, max_affordable_qty, effective_qty,
		recommended_buy_price, recommended_sell_price,
		estimated_fill_hours, estimated_sell_hours, slots_used,
		estimated_profit, profit_per_hour, fit, fit_reason
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		d.log.Warn().Err(err).Msg("insert flip results: prepare")
		return
	}
	defer stmt.Close()

	for _, c := range flips {
		stmt.Exec(
			scanID, c.ID, c.Name, c.BuyPrice, c.SellPrice, c.Margin, c.MarginPct,
			c.Volume, c.MaxAffordableQty, c.EffectiveQty,
			c.RecommendedBuyPrice, c.RecommendedSellPrice,
			c.EstimatedFillHours, c.EstimatedSellHours, c.SlotsUsed,
			c.EstimatedProfit, c.ProfitPerHour, string(c.Fit), c.FitReason,
		)
	}

	if err := tx.Commit(); err != nil {
		d.log.Warn().Err(err).Msg("insert flip results: commit")
	}
}

// GetFlipResults retrieves the journaled candidates for one scan.
func (d *DB) GetFlipResults(scanID int64) []engine.FlipCandidate {
	rows, err := d.sql.Query(`
		SELECT item_id, name, buy_price, sell_price, margin, margin_pct,
		       volume, max_affordable_qty, effective_qty,
		       recommended_buy_price, recommended_sell_price,
		       estimated_fill_hours, estimated_sell_hours, slots_used,
		       estimated_profit, profit_per_hour, fit, fit_reason
		  FROM flip_results
		 WHERE scan_id = ?
		 ORDER BY estimated_profit DESC
	`, scanID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var flips []engine.FlipCandidate
	for rows.Next() {
		var c engine.FlipCandidate
		var fit string
		rows.Scan(
			&c.ID, &c.Name, &c.BuyPrice, &c.SellPrice, &c.Margin, &c.MarginPct,
			&c.Volume, &c.MaxAffordableQty, &c.EffectiveQty,
			&c.RecommendedBuyPrice, &c.RecommendedSellPrice,
			&c.EstimatedFillHours, &c.EstimatedSellHours, &c.SlotsUsed,
			&c.EstimatedProfit, &c.ProfitPerHour, &fit, &c.FitReason,
		)
		c.Fit = engine.FitLevel(fit)
		flips = append(flips, c)
	}
	return flips
}
