package db

import (
	"github.com/Sandwich1998/fl1pperb0nk/internal/config"
)

// GetFavorites returns all pinned items, newest first.
func (d *DB) GetFavorites() []config.FavoriteItem {
	rows, err := d.sql.Query(`
		SELECT item_id, name, added_at
		  FROM favorites
		 ORDER BY added_at DESC
	`)
	if err != nil {
		return []config.FavoriteItem{}
	}
	defer rows.Close()

	var items []config.FavoriteItem
	for rows.Next() {
		var item config.FavoriteItem
		rows.Scan(&item.ItemID, &item.Name, &item.AddedAt)
		items = append(items, item)
	}
	if items == nil {
		return []config.FavoriteItem{}
	}
	return items
}

// FavoriteIDs returns the pinned item ids as a set.
func (d *DB) FavoriteIDs() map[int]bool {
	ids := make(map[int]bool)
	rows, err := d.sql.Query("SELECT item_id FROM favorites")
	if err != nil {
		return ids
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		rows.Scan(&id)
		ids[id] = true
	}
	return ids
}

// HasFavorite checks whether an item is already pinned.
func (d *DB) HasFavorite(itemID int) bool {
	var count int
	d.sql.QueryRow("SELECT COUNT(*) FROM favorites WHERE item_id = ?", itemID).Scan(&count)
	return count > 0
}

// AddFavorite pins an item. Returns true if inserted, false if duplicate.
func (d *DB) AddFavorite(item config.FavoriteItem) bool {
	res, err := d.sql.Exec(
		"INSERT OR IGNORE INTO favorites (item_id, name, added_at) VALUES (?, ?, ?)",
		item.ItemID, item.Name, item.AddedAt,
	)
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

// DeleteFavorite unpins an item by id.
func (d *DB) DeleteFavorite(itemID int) {
	d.sql.Exec("DELETE FROM favorites WHERE item_id = ?", itemID)
}
