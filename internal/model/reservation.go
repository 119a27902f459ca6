package model

// Reservation records a guest's stay in a room over an inclusive date
// range.  Dates are canonical "YYYY-MM-DD" strings; because the format
// is fixed-width and zero-padded, lexicographic comparison is
// chronological comparison.  Cancellation is a soft delete: the record
// is kept with Active=false so history queries keep working.
//
// Fields:
//  ID        – immutable unique identifier, monotonically assigned.
//  RoomID    – room being reserved.
//  GuestID   – guest staying in the room.
//  PartySize – number of people, never above the room's capacity.
//  StartDate – check-in date, inclusive ("YYYY-MM-DD").
//  EndDate   – check-out date, inclusive, StartDate <= EndDate.
//  Active    – false once cancelled; cancelled rows are never removed.
type Reservation struct {
    ID        uint64 `json:"id"`         // reservations.id
    RoomID    uint64 `json:"room_id"`    // reservations.room_id
    GuestID   uint64 `json:"guest_id"`   // reservations.guest_id
    PartySize uint32 `json:"party_size"` // reservations.party_size
    StartDate string `json:"start_date"` // reservations.start_date
    EndDate   string `json:"end_date"`   // reservations.end_date
    Active    bool   `json:"active"`     // reservations.active (soft delete)
}
