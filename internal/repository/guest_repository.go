package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// GuestRepo loads and saves the guests table.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a new GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

// LoadAll returns every guest in primary-key order.
func (r *GuestRepo) LoadAll(ctx context.Context) ([]model.Guest, error) {
	const q = `SELECT id, name, document FROM guests ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Guest, 0)
	for rows.Next() {
		var m model.Guest
		if err := rows.Scan(&m.ID, &m.Name, &m.Document); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveAllTx replaces the guests table with the given snapshot inside an
// existing transaction.
func (r *GuestRepo) SaveAllTx(ctx context.Context, tx *sql.Tx, guests []model.Guest) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM guests`); err != nil {
		return err
	}
	const q = `INSERT INTO guests (id, name, document) VALUES (?, ?, ?)`
	for _, m := range guests {
		if _, err := tx.ExecContext(ctx, q, m.ID, m.Name, m.Document); err != nil {
			return err
		}
	}
	return nil
}
