// Package repository is the persistence layer behind the in-memory
// desk.  It hands the core fully-structured Room/Guest/Reservation
// records in bulk at startup and writes the desk's snapshot back; the
// core itself never parses rows or touches the database.  Dates travel
// as canonical YYYY-MM-DD strings end to end.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomRepo loads and saves the rooms table.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// LoadAll returns every room in primary-key order.  The occupied flag
// is loaded as-is; the desk recomputes it right after loading because
// "today" may have advanced since the data was saved.
func (r *RoomRepo) LoadAll(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, number, capacity, occupied FROM rooms ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var m model.Room
		if err := rows.Scan(&m.ID, &m.Number, &m.Capacity, &m.Occupied); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveAllTx replaces the rooms table with the given snapshot inside an
// existing transaction.  The caller commits or rolls back.
func (r *RoomRepo) SaveAllTx(ctx context.Context, tx *sql.Tx, rooms []model.Room) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms`); err != nil {
		return err
	}
	const q = `INSERT INTO rooms (id, number, capacity, occupied) VALUES (?, ?, ?, ?)`
	for _, m := range rooms {
		if _, err := tx.ExecContext(ctx, q, m.ID, m.Number, m.Capacity, m.Occupied); err != nil {
			return err
		}
	}
	return nil
}
