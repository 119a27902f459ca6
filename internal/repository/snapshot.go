package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// SaveSnapshot writes a full desk snapshot — rooms, guests and
// reservations — in a single transaction so a crash mid-save can never
// leave the tables describing different moments in time.
func SaveSnapshot(ctx context.Context, db *sql.DB, rooms []model.Room, guests []model.Guest, reservations []model.Reservation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := NewRoomRepo(db).SaveAllTx(ctx, tx, rooms); err != nil {
		return err
	}
	if err := NewGuestRepo(db).SaveAllTx(ctx, tx, guests); err != nil {
		return err
	}
	if err := NewReservationRepo(db).SaveAllTx(ctx, tx, reservations); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
