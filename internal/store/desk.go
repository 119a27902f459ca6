package store

import (
	"sync"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Desk is the front desk of the hotel: the single entry point to the
// room store, the guest store and the reservation ledger.  One RWMutex
// serialises every operation, which is what makes the check-then-act
// sequences safe under concurrent HTTP callers — the allocation search
// and the ledger insert of an auto booking run under the same lock, so
// two requests can never both pass the conflict check for the same
// room and dates.  The occupancy resync runs inside the same critical
// section as each mutation, so a reservation without its matching
// occupancy update is never externally visible.
//
// All query methods return value copies; the only mutable access to a
// record is through the Desk's own validated operations.
type Desk struct {
	mu     sync.RWMutex
	rooms  *RoomStore
	guests *GuestStore
	ledger *ReservationLedger
	clock  Clock
}

// NewDesk returns an empty Desk.  A nil clock defaults to RealClock.
func NewDesk(clock Clock) *Desk {
	if clock == nil {
		clock = RealClock{}
	}
	return &Desk{
		rooms:  NewRoomStore(),
		guests: NewGuestStore(),
		ledger: NewReservationLedger(),
		clock:  clock,
	}
}

// today renders the clock's current date in canonical YYYY-MM-DD form.
func (d *Desk) today() string { return d.clock.Now().Format(dateLayout) }

// Today exposes the desk's notion of the current date.
func (d *Desk) Today() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.today()
}

// Load installs already-parsed persisted state into the desk: rooms,
// guests and reservations in one step.  Each collection re-seeds its ID
// counter from the maximum loaded identifier, and occupancy is resynced
// immediately because today may have advanced since the data was saved.
func (d *Desk) Load(rooms []model.Room, guests []model.Guest, reservations []model.Reservation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rooms.Load(rooms)
	d.guests.Load(guests)
	d.ledger.Load(reservations)
	resyncOccupancy(d.rooms, d.ledger, d.today())
}

// Snapshot returns copies of the current in-memory collections for the
// persistence layer to save.  The desk does not know or care how they
// are stored.
func (d *Desk) Snapshot() (rooms []model.Room, guests []model.Guest, reservations []model.Reservation) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rooms.All(), d.guests.All(), d.ledger.All()
}

// --- room queries ---

// Rooms returns every room in insertion order.
func (d *Desk) Rooms() []model.Room {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rooms.All()
}

// FreeRooms returns the rooms whose derived occupancy flag is false.
func (d *Desk) FreeRooms() []model.Room {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rooms.Filter(func(r model.Room) bool { return !r.Occupied })
}

// OccupiedRooms returns the rooms currently hosting a guest.
func (d *Desk) OccupiedRooms() []model.Room {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rooms.Filter(func(r model.Room) bool { return r.Occupied })
}

// RoomByID finds a room by identifier.
func (d *Desk) RoomByID(id uint64) (model.Room, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r := d.rooms.byID(id)
	if r == nil {
		return model.Room{}, ErrRoomNotFound
	}
	return *r, nil
}

// RoomByNumber finds a room by its user-facing door number.
func (d *Desk) RoomByNumber(number uint32) (model.Room, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r := d.rooms.byNumber(number)
	if r == nil {
		return model.Room{}, ErrRoomNotFound
	}
	return *r, nil
}

// CurrentReservation answers "who is in this room right now": the
// active reservation whose range contains today, if any.  The boolean
// is false when the room exists but is empty today.
func (d *Desk) CurrentReservation(roomID uint64) (model.Reservation, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.rooms.byID(roomID) == nil {
		return model.Reservation{}, false, ErrRoomNotFound
	}
	r, ok := d.ledger.CurrentForRoom(roomID, d.today())
	return r, ok, nil
}

// --- guest operations ---

// Guests returns every guest in insertion order.
func (d *Desk) Guests() []model.Guest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.guests.All()
}

// GuestByID finds a guest by identifier.
func (d *Desk) GuestByID(id uint64) (model.Guest, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	g := d.guests.byID(id)
	if g == nil {
		return model.Guest{}, ErrGuestNotFound
	}
	return *g, nil
}

// GuestByDocument finds a guest by exact document match.
func (d *Desk) GuestByDocument(document string) (model.Guest, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	g := d.guests.byDocument(document)
	if g == nil {
		return model.Guest{}, ErrGuestNotFound
	}
	return *g, nil
}

// CreateGuest registers a new guest with a unique document.
func (d *Desk) CreateGuest(name, document string) (model.Guest, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.guests.Create(name, document)
}

// UpdateGuest edits a guest's name and document, rejecting a document
// that already belongs to someone else.
func (d *Desk) UpdateGuest(id uint64, name, document string) (model.Guest, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.guests.Update(id, name, document)
}

// --- reservation operations ---

// Reservations returns the full ledger, any status.
func (d *Desk) Reservations() []model.Reservation {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ledger.All()
}

// ReservationByID finds a reservation by identifier, cancelled ones
// included.
func (d *Desk) ReservationByID(id uint64) (model.Reservation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r := d.ledger.byID(id)
	if r == nil {
		return model.Reservation{}, ErrReservationNotFound
	}
	return *r, nil
}

// ReservationsByGuest returns one guest's full booking history.
func (d *Desk) ReservationsByGuest(guestID uint64) ([]model.Reservation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.guests.byID(guestID) == nil {
		return nil, ErrGuestNotFound
	}
	return d.ledger.ByGuest(guestID), nil
}

// ReservationsByRoom returns one room's booking history; activeOnly
// narrows it to active reservations.
func (d *Desk) ReservationsByRoom(roomID uint64, activeOnly bool) ([]model.Reservation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.rooms.byID(roomID) == nil {
		return nil, ErrRoomNotFound
	}
	if activeOnly {
		return d.ledger.ActiveByRoom(roomID), nil
	}
	return d.ledger.ByRoom(roomID), nil
}

// Overlaps exposes the ledger's conflict primitive for callers that
// want to probe availability without booking.
func (d *Desk) Overlaps(roomID uint64, start, end string, excludeID uint64) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ledger.Overlaps(roomID, start, end, excludeID)
}

// FindSuitableRoom runs the best-fit allocation search without
// reserving anything.  ErrNoRoomAvailable means the search came back
// empty; the booking paths use Reserve/ReserveAuto, which repeat the
// search under the write lock.
func (d *Desk) FindSuitableRoom(partySize uint32, start, end string) (model.Room, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !validRange(start, end) {
		return model.Room{}, ErrInvalidDate
	}
	room := findSuitableRoom(d.rooms, d.ledger, partySize, start, end)
	if room == nil {
		return model.Room{}, ErrNoRoomAvailable
	}
	return *room, nil
}

// Reserve books a specific room for a guest.  Validation, the ledger
// insert and the occupancy resync all happen under one lock so a
// half-applied booking is never observable.
func (d *Desk) Reserve(roomID, guestID uint64, partySize uint32, start, end string) (model.Reservation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	room := d.rooms.byID(roomID)
	if room == nil {
		return model.Reservation{}, ErrRoomNotFound
	}
	if d.guests.byID(guestID) == nil {
		return model.Reservation{}, ErrGuestNotFound
	}
	res, err := d.ledger.Create(room, guestID, partySize, start, end)
	if err != nil {
		return model.Reservation{}, err
	}
	resyncOccupancy(d.rooms, d.ledger, d.today())
	return res, nil
}

// ReserveAuto picks the best-fit room for the party and dates and books
// it in the same critical section.  Running the search and the insert
// under one lock is what prevents two concurrent callers from both
// passing the conflict check and double-booking the winner.
func (d *Desk) ReserveAuto(guestID uint64, partySize uint32, start, end string) (model.Reservation, model.Room, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.guests.byID(guestID) == nil {
		return model.Reservation{}, model.Room{}, ErrGuestNotFound
	}
	if !validRange(start, end) {
		return model.Reservation{}, model.Room{}, ErrInvalidDate
	}
	room := findSuitableRoom(d.rooms, d.ledger, partySize, start, end)
	if room == nil {
		return model.Reservation{}, model.Room{}, ErrNoRoomAvailable
	}
	res, err := d.ledger.Create(room, guestID, partySize, start, end)
	if err != nil {
		return model.Reservation{}, model.Room{}, err
	}
	resyncOccupancy(d.rooms, d.ledger, d.today())
	return res, *room, nil
}

// EditReservation changes an active reservation's party size and dates,
// revalidating capacity and conflicts (excluding the reservation
// itself) and resyncing occupancy atomically.
func (d *Desk) EditReservation(id uint64, partySize uint32, start, end string) (model.Reservation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur := d.ledger.byID(id)
	if cur == nil || !cur.Active {
		return model.Reservation{}, ErrReservationNotFound
	}
	room := d.rooms.byID(cur.RoomID)
	if room == nil {
		return model.Reservation{}, ErrRoomNotFound
	}
	res, err := d.ledger.Edit(id, partySize, start, end, room)
	if err != nil {
		return model.Reservation{}, err
	}
	resyncOccupancy(d.rooms, d.ledger, d.today())
	return res, nil
}

// CancelReservation soft-deletes a reservation and resyncs occupancy,
// freeing the room's dates for new bookings while keeping the record
// for history.
func (d *Desk) CancelReservation(id uint64) (model.Reservation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	res, err := d.ledger.Cancel(id)
	if err != nil {
		return model.Reservation{}, err
	}
	resyncOccupancy(d.rooms, d.ledger, d.today())
	return res, nil
}
