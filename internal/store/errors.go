// Package store holds the in-memory reservation core: the room and
// guest stores, the reservation ledger, the room allocation search and
// the occupancy resync.  It owns all booking invariants; everything
// around it (HTTP handlers, MySQL persistence, cache, broker) is glue.
//
// The sentinel errors below let higher layers such as handlers
// distinguish failure scenarios with errors.Is.  The core never panics
// and never aborts the process: every validation failure is an ordinary
// return value.
package store

import "errors"

// ErrRoomNotFound is returned when no room matches the requested ID or
// door number.  Handlers translate this into HTTP 404.
var ErrRoomNotFound = errors.New("room not found")

// ErrGuestNotFound is returned when no guest matches the requested ID
// or document.  Handlers translate this into HTTP 404.
var ErrGuestNotFound = errors.New("guest not found")

// ErrReservationNotFound is returned when no reservation matches the
// requested ID, or when an edit targets a cancelled reservation.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrDuplicateDocument is returned when creating or editing a guest
// would give two guests the same identity document.  Handlers translate
// this into HTTP 409.
var ErrDuplicateDocument = errors.New("document already registered")

// ErrCapacityExceeded is returned when a reservation's party size is
// larger than its room's capacity.
var ErrCapacityExceeded = errors.New("party size exceeds room capacity")

// ErrDateOverlap is returned when a requested date range conflicts with
// another active reservation for the same room.
var ErrDateOverlap = errors.New("dates overlap an active reservation")

// ErrInvalidDate is returned when a date string is not a calendar date
// in YYYY-MM-DD form, or when a range ends before it starts.
var ErrInvalidDate = errors.New("invalid date")

// ErrNoRoomAvailable is returned by the allocation search when no room
// has both enough capacity and a free calendar slot.  An exhausted
// search is a legitimate negative result, not a fault; the sentinel
// only exists so callers can report it distinctly.
var ErrNoRoomAvailable = errors.New("no suitable room available")
