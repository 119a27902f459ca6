package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReservationRepo loads and saves the reservations table.  Dates are
// stored as CHAR(10) YYYY-MM-DD strings so the canonical form the
// ledger compares lexicographically survives the round trip untouched.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given
// database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// LoadAll returns the full reservation history in primary-key order,
// cancelled records included.
func (r *ReservationRepo) LoadAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT id, room_id, guest_id, party_size, start_date, end_date, active
	           FROM reservations ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var m model.Reservation
		if err := rows.Scan(&m.ID, &m.RoomID, &m.GuestID, &m.PartySize, &m.StartDate, &m.EndDate, &m.Active); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveAllTx replaces the reservations table with the given snapshot
// inside an existing transaction.
func (r *ReservationRepo) SaveAllTx(ctx context.Context, tx *sql.Tx, reservations []model.Reservation) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM reservations`); err != nil {
		return err
	}
	const q = `INSERT INTO reservations (id, room_id, guest_id, party_size, start_date, end_date, active)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, m := range reservations {
		if _, err := tx.ExecContext(ctx, q, m.ID, m.RoomID, m.GuestID, m.PartySize, m.StartDate, m.EndDate, m.Active); err != nil {
			return err
		}
	}
	return nil
}
