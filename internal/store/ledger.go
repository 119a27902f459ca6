package store

import "github.com/iliyamo/hotel-reservation/internal/model"

// ReservationLedger owns the reservation collection.  It assigns
// sequential identifiers, validates every mutation against the booking
// invariants and answers conflict and history queries.  Cancellation is
// a soft delete: records stay in the ledger forever so history queries
// over any room or guest keep working.
//
// The ledger performs no locking of its own; the Desk serialises
// access and runs the occupancy resync in the same critical section as
// each mutation.
type ReservationLedger struct {
	reservations []*model.Reservation
	nextID       uint64
}

// NewReservationLedger returns an empty ledger whose first assigned ID
// will be 1.
func NewReservationLedger() *ReservationLedger { return &ReservationLedger{nextID: 1} }

// Load replaces the ledger contents with copies of the given
// reservations and re-seeds the ID counter to max(loaded id)+1.
func (l *ReservationLedger) Load(reservations []model.Reservation) {
	l.reservations = make([]*model.Reservation, 0, len(reservations))
	l.nextID = 1
	for i := range reservations {
		r := reservations[i]
		l.reservations = append(l.reservations, &r)
		if r.ID >= l.nextID {
			l.nextID = r.ID + 1
		}
	}
}

func (l *ReservationLedger) byID(id uint64) *model.Reservation {
	for _, r := range l.reservations {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// All returns copies of every reservation, any status, in insertion
// order.
func (l *ReservationLedger) All() []model.Reservation {
	out := make([]model.Reservation, 0, len(l.reservations))
	for _, r := range l.reservations {
		out = append(out, *r)
	}
	return out
}

// ByGuest returns the full reservation history of one guest.
func (l *ReservationLedger) ByGuest(guestID uint64) []model.Reservation {
	out := make([]model.Reservation, 0)
	for _, r := range l.reservations {
		if r.GuestID == guestID {
			out = append(out, *r)
		}
	}
	return out
}

// ByRoom returns the full history of one room: past, present, future,
// cancelled included.
func (l *ReservationLedger) ByRoom(roomID uint64) []model.Reservation {
	out := make([]model.Reservation, 0)
	for _, r := range l.reservations {
		if r.RoomID == roomID {
			out = append(out, *r)
		}
	}
	return out
}

// ActiveByRoom returns only the active reservations of one room.
func (l *ReservationLedger) ActiveByRoom(roomID uint64) []model.Reservation {
	out := make([]model.Reservation, 0)
	for _, r := range l.reservations {
		if r.RoomID == roomID && r.Active {
			out = append(out, *r)
		}
	}
	return out
}

// CurrentForRoom returns the active reservation whose range contains
// today, if any.  Because active ranges on a room never overlap there
// is at most one; the scan stops at the first match.
func (l *ReservationLedger) CurrentForRoom(roomID uint64, today string) (model.Reservation, bool) {
	for _, r := range l.reservations {
		if r.RoomID == roomID && r.Active && r.StartDate <= today && today <= r.EndDate {
			return *r, true
		}
	}
	return model.Reservation{}, false
}

// Overlaps reports whether any active reservation for roomID conflicts
// with the inclusive range [start,end].  Two inclusive ranges overlap
// iff s1 <= e2 AND s2 <= e1.  The reservation with excludeID is
// skipped, which lets an edit test new dates against every reservation
// but its own; pass 0 to exclude nothing.
func (l *ReservationLedger) Overlaps(roomID uint64, start, end string, excludeID uint64) bool {
	for _, r := range l.reservations {
		if r.ID == excludeID || r.RoomID != roomID || !r.Active {
			continue
		}
		if rangesOverlap(start, end, r.StartDate, r.EndDate) {
			return true
		}
	}
	return false
}

// Create validates and records a new active reservation for the given
// room.  It fails with ErrInvalidDate on a malformed or inverted range,
// ErrCapacityExceeded when the party does not fit the room and
// ErrDateOverlap when an active reservation already covers any of the
// requested days.  On success the reservation gets the next sequential
// ID.  Create does not touch room occupancy; the Desk resyncs it in
// the same critical section.
func (l *ReservationLedger) Create(room *model.Room, guestID uint64, partySize uint32, start, end string) (model.Reservation, error) {
	if !validRange(start, end) {
		return model.Reservation{}, ErrInvalidDate
	}
	if partySize == 0 || partySize > room.Capacity {
		return model.Reservation{}, ErrCapacityExceeded
	}
	if l.Overlaps(room.ID, start, end, 0) {
		return model.Reservation{}, ErrDateOverlap
	}
	r := &model.Reservation{
		ID:        l.nextID,
		RoomID:    room.ID,
		GuestID:   guestID,
		PartySize: partySize,
		StartDate: start,
		EndDate:   end,
		Active:    true,
	}
	l.nextID++
	l.reservations = append(l.reservations, r)
	return *r, nil
}

// Edit changes the party size and date range of an active reservation.
// The conflict check excludes the reservation itself — without that
// self-exclusion every edit would collide with its own current dates.
// Cancelled reservations cannot be edited.
func (l *ReservationLedger) Edit(id uint64, partySize uint32, start, end string, room *model.Room) (model.Reservation, error) {
	r := l.byID(id)
	if r == nil || !r.Active {
		return model.Reservation{}, ErrReservationNotFound
	}
	if !validRange(start, end) {
		return model.Reservation{}, ErrInvalidDate
	}
	if partySize == 0 || partySize > room.Capacity {
		return model.Reservation{}, ErrCapacityExceeded
	}
	if l.Overlaps(r.RoomID, start, end, id) {
		return model.Reservation{}, ErrDateOverlap
	}
	r.PartySize = partySize
	r.StartDate = start
	r.EndDate = end
	return *r, nil
}

// Cancel soft-deletes a reservation: the record stays in the ledger
// with Active=false, freeing its room and dates for new bookings.
func (l *ReservationLedger) Cancel(id uint64) (model.Reservation, error) {
	r := l.byID(id)
	if r == nil {
		return model.Reservation{}, ErrReservationNotFound
	}
	r.Active = false
	return *r, nil
}
