package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// newTestDesk builds a desk pinned to the given date, loaded with a
// small hotel: room 101 sleeps 2, room 102 sleeps 4, room 103 sleeps 4,
// and two registered guests.
func newTestDesk(t *testing.T, today string) *Desk {
	t.Helper()
	day, err := time.Parse(dateLayout, today)
	require.NoError(t, err)
	d := NewDesk(fixedClock{t: day})
	d.Load(
		[]model.Room{
			{ID: 1, Number: 101, Capacity: 2},
			{ID: 2, Number: 102, Capacity: 4},
			{ID: 3, Number: 103, Capacity: 4},
		},
		[]model.Guest{
			{ID: 1, Name: "Ana Ferreira", Document: "X123"},
			{ID: 2, Name: "Bruno Costa", Document: "Y456"},
		},
		nil,
	)
	return d
}

func TestReserveAssignsSequentialIDs(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	r1, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
	r2, err := d.Reserve(2, 2, 3, "2024-06-01", "2024-06-03")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), r1.ID)
	assert.Equal(t, uint64(2), r2.ID)
	assert.True(t, r1.Active)
}

func TestLoadReseedsIDCounters(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")
	d.Load(
		[]model.Room{{ID: 1, Number: 101, Capacity: 2}},
		[]model.Guest{{ID: 7, Name: "Carla Dias", Document: "Z789"}},
		[]model.Reservation{{ID: 41, RoomID: 1, GuestID: 7, PartySize: 1, StartDate: "2024-05-01", EndDate: "2024-05-02", Active: true}},
	)

	g, err := d.CreateGuest("Duarte Melo", "W000")
	require.NoError(t, err)
	assert.Equal(t, uint64(8), g.ID, "guest counter must be max loaded id + 1")

	r, err := d.Reserve(1, 7, 1, "2024-06-10", "2024-06-11")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), r.ID, "reservation counter must be max loaded id + 1")
}

func TestReserveRejectsOverlap(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	_, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)

	// 2024-06-04..06 collides: 06-01 <= 06-06 and 06-04 <= 06-05.
	_, err = d.Reserve(1, 2, 2, "2024-06-04", "2024-06-06")
	assert.ErrorIs(t, err, ErrDateOverlap)

	// A different room with the same dates is fine.
	_, err = d.Reserve(2, 2, 2, "2024-06-04", "2024-06-06")
	assert.NoError(t, err)
}

func TestReserveValidation(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	_, err := d.Reserve(1, 1, 3, "2024-06-01", "2024-06-02")
	assert.ErrorIs(t, err, ErrCapacityExceeded, "party of 3 in a room for 2")

	_, err = d.Reserve(1, 1, 2, "2024-6-1", "2024-06-02")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = d.Reserve(1, 1, 2, "2024-06-05", "2024-06-02")
	assert.ErrorIs(t, err, ErrInvalidDate, "range ends before it starts")

	_, err = d.Reserve(99, 1, 2, "2024-06-01", "2024-06-02")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = d.Reserve(1, 99, 2, "2024-06-01", "2024-06-02")
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

// TestOverlapsSelfConsistency: a fresh booking conflicts with its own
// range, but excluding its ID from the check clears the conflict —
// exactly what lets an edit keep its own unchanged dates.
func TestOverlapsSelfConsistency(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	r, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)

	assert.True(t, d.Overlaps(1, "2024-06-01", "2024-06-05", 0))
	assert.False(t, d.Overlaps(1, "2024-06-01", "2024-06-05", r.ID))
}

func TestEditExcludesItselfFromConflictCheck(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	r, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)

	// Same dates, new party size: must not collide with itself.
	edited, err := d.EditReservation(r.ID, 1, "2024-06-01", "2024-06-05")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), edited.PartySize)

	// But moving onto another reservation's dates still fails.
	_, err = d.Reserve(1, 2, 1, "2024-06-10", "2024-06-12")
	require.NoError(t, err)
	_, err = d.EditReservation(r.ID, 1, "2024-06-09", "2024-06-11")
	assert.ErrorIs(t, err, ErrDateOverlap)
}

func TestEditRejectsCancelledAndMissing(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	r, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)
	_, err = d.CancelReservation(r.ID)
	require.NoError(t, err)

	_, err = d.EditReservation(r.ID, 2, "2024-06-01", "2024-06-05")
	assert.ErrorIs(t, err, ErrReservationNotFound, "cancelled reservations cannot be edited")

	_, err = d.EditReservation(999, 2, "2024-06-01", "2024-06-05")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelFreesDatesAndKeepsHistory(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	r, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)

	_, err = d.Reserve(1, 2, 2, "2024-06-03", "2024-06-04")
	require.ErrorIs(t, err, ErrDateOverlap)

	cancelled, err := d.CancelReservation(r.ID)
	require.NoError(t, err)
	assert.False(t, cancelled.Active)

	// The same dates book again now, and the old record survives.
	_, err = d.Reserve(1, 2, 2, "2024-06-03", "2024-06-04")
	require.NoError(t, err)

	history, err := d.ReservationsByRoom(1, false)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	active, err := d.ReservationsByRoom(1, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

// TestNoTwoActiveReservationsOverlap exercises the ledger through a mix
// of mutations and asserts the core invariant after each one: no pair
// of distinct active reservations on the same room may share a day.
func TestNoTwoActiveReservationsOverlap(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	check := func() {
		t.Helper()
		all := d.Reservations()
		for i := range all {
			for j := i + 1; j < len(all); j++ {
				a, b := all[i], all[j]
				if a.RoomID != b.RoomID || !a.Active || !b.Active {
					continue
				}
				assert.False(t, rangesOverlap(a.StartDate, a.EndDate, b.StartDate, b.EndDate),
					"active reservations %d and %d overlap on room %d", a.ID, b.ID, a.RoomID)
			}
		}
	}

	r1, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)
	check()
	_, err = d.Reserve(1, 2, 2, "2024-06-06", "2024-06-08")
	require.NoError(t, err)
	check()
	_, err = d.EditReservation(r1.ID, 2, "2024-06-02", "2024-06-05")
	require.NoError(t, err)
	check()
	_, err = d.CancelReservation(r1.ID)
	require.NoError(t, err)
	check()
	_, err = d.Reserve(1, 1, 1, "2024-06-01", "2024-06-05")
	require.NoError(t, err)
	check()
}

func TestFindSuitableRoomBestFit(t *testing.T) {
	// Room A capacity 2, room B capacity 4: a party of 2 gets the
	// tighter fit (slack 0 beats slack 2).
	d := NewDesk(fixedClock{t: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	d.Load(
		[]model.Room{
			{ID: 1, Number: 101, Capacity: 2},
			{ID: 2, Number: 102, Capacity: 4},
		},
		[]model.Guest{{ID: 1, Name: "Ana Ferreira", Document: "X123"}},
		nil,
	)

	room, err := d.FindSuitableRoom(2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), room.ID)
}

func TestFindSuitableRoomSkipsConflicts(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	// Occupy the tight-fit room over the requested dates.
	_, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)

	room, err := d.FindSuitableRoom(2, "2024-06-04", "2024-06-06")
	require.NoError(t, err)
	assert.NotEqual(t, uint64(1), room.ID, "conflicting room must be skipped")
	assert.Equal(t, uint64(2), room.ID, "first of the tied remaining rooms wins")
}

func TestFindSuitableRoomTieBreakIsFirstEncountered(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	// Rooms 2 and 3 both sleep 4; insertion order decides.
	room, err := d.FindSuitableRoom(4, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), room.ID)
}

func TestFindSuitableRoomExhausted(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	_, err := d.FindSuitableRoom(9, "2024-06-01", "2024-06-03")
	assert.ErrorIs(t, err, ErrNoRoomAvailable, "no room sleeps 9")
}

func TestReserveAutoBooksBestFit(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	res, room, err := d.ReserveAuto(1, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), room.ID)
	assert.Equal(t, room.ID, res.RoomID)

	// The same request again lands in the next-best room.
	res2, room2, err := d.ReserveAuto(2, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), room2.ID)
	assert.NotEqual(t, res.ID, res2.ID)
}

// TestReserveAutoConcurrentNeverDoubleBooks hammers the desk with
// parallel auto bookings for identical dates.  At most three can
// succeed (one per room) and the no-overlap invariant must hold.
func TestReserveAutoConcurrentNeverDoubleBooks(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = d.ReserveAuto(1, 2, "2024-06-01", "2024-06-03")
		}(i)
	}
	wg.Wait()

	booked := 0
	for _, err := range errs {
		if err == nil {
			booked++
		} else {
			assert.ErrorIs(t, err, ErrNoRoomAvailable)
		}
	}
	assert.Equal(t, 3, booked, "exactly one booking per room")

	perRoom := map[uint64]int{}
	for _, r := range d.Reservations() {
		perRoom[r.RoomID]++
	}
	for roomID, n := range perRoom {
		assert.Equal(t, 1, n, "room %d double-booked", roomID)
	}
}

func TestResyncSetsOccupancyFromToday(t *testing.T) {
	d := newTestDesk(t, "2024-06-02")

	r, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)

	room, err := d.RoomByID(1)
	require.NoError(t, err)
	assert.True(t, room.Occupied, "today falls inside the stay")

	free := d.FreeRooms()
	assert.Len(t, free, 2)
	occupied := d.OccupiedRooms()
	require.Len(t, occupied, 1)
	assert.Equal(t, uint64(1), occupied[0].ID)

	_, err = d.CancelReservation(r.ID)
	require.NoError(t, err)
	room, err = d.RoomByID(1)
	require.NoError(t, err)
	assert.False(t, room.Occupied, "cancelling the stay frees the room")
}

func TestResyncIgnoresFutureStays(t *testing.T) {
	d := newTestDesk(t, "2024-06-02")

	_, err := d.Reserve(1, 1, 2, "2024-06-10", "2024-06-12")
	require.NoError(t, err)

	room, err := d.RoomByID(1)
	require.NoError(t, err)
	assert.False(t, room.Occupied, "a future stay does not occupy the room today")
}

// TestResyncIdempotent reloads the same state twice; the derived flags
// must come out identical because the recomputation is total.
func TestResyncIdempotent(t *testing.T) {
	d := newTestDesk(t, "2024-06-02")
	_, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)

	rooms1, guests, reservations := d.Snapshot()
	d.Load(rooms1, guests, reservations)
	rooms2, _, _ := d.Snapshot()
	d.Load(rooms2, guests, reservations)
	rooms3, _, _ := d.Snapshot()

	assert.Equal(t, rooms2, rooms3)
}

func TestCurrentReservation(t *testing.T) {
	d := newTestDesk(t, "2024-06-02")

	r, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)

	cur, ok, err := d.CurrentReservation(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, r.ID, cur.ID)

	_, ok, err = d.CurrentReservation(2)
	require.NoError(t, err)
	assert.False(t, ok, "room 2 hosts nobody today")

	_, _, err = d.CurrentReservation(99)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestGuestDocumentUniqueness(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	_, err := d.CreateGuest("Eva Lima", "X123")
	assert.ErrorIs(t, err, ErrDuplicateDocument, "X123 is already registered")

	// Editing guest 2's document onto X123 fails and changes nothing.
	_, err = d.UpdateGuest(2, "Bruno Costa", "X123")
	assert.ErrorIs(t, err, ErrDuplicateDocument)
	g, err := d.GuestByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Y456", g.Document)

	// Keeping your own document while renaming is allowed.
	g, err = d.UpdateGuest(2, "Bruno C. Costa", "Y456")
	require.NoError(t, err)
	assert.Equal(t, "Bruno C. Costa", g.Name)

	// Documents are compared case-sensitively.
	created, err := d.CreateGuest("Eva Lima", "x123")
	require.NoError(t, err)
	assert.Equal(t, "x123", created.Document)
}

func TestGuestLookups(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	g, err := d.GuestByDocument("X123")
	require.NoError(t, err)
	assert.Equal(t, "Ana Ferreira", g.Name)

	_, err = d.GuestByDocument("missing")
	assert.ErrorIs(t, err, ErrGuestNotFound)

	_, err = d.GuestByID(42)
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestReservationsByGuest(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	r1, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
	_, err = d.Reserve(2, 1, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
	_, err = d.CancelReservation(r1.ID)
	require.NoError(t, err)

	history, err := d.ReservationsByGuest(1)
	require.NoError(t, err)
	assert.Len(t, history, 2, "history includes cancelled stays")

	_, err = d.ReservationsByGuest(99)
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestRoomLookups(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")

	r, err := d.RoomByNumber(102)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), r.ID)
	assert.Equal(t, 200.0, r.DailyRate())

	_, err = d.RoomByNumber(999)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSnapshotReturnsCopies(t *testing.T) {
	d := newTestDesk(t, "2024-06-01")
	_, err := d.Reserve(1, 1, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)

	_, _, reservations := d.Snapshot()
	require.Len(t, reservations, 1)
	reservations[0].Active = false

	fresh, err := d.ReservationByID(reservations[0].ID)
	require.NoError(t, err)
	assert.True(t, fresh.Active, "mutating a snapshot must not touch the ledger")
}
