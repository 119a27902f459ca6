package model

// Room represents a physical hotel room.  Rooms are reference data:
// they are loaded once at startup and never created or deleted while
// the service runs.  The Occupied flag is derived state — it mirrors
// "an active reservation covers today" and is recomputed by the desk's
// occupancy resync, never set by hand.
//
// Fields:
//  ID       – immutable unique identifier.
//  Number   – user-facing door number, unique across rooms.
//  Capacity – maximum number of guests the room can host (positive).
//  Occupied – derived: true when an active reservation covers today.
type Room struct {
    ID       uint64 `json:"id"`       // rooms.id
    Number   uint32 `json:"number"`   // rooms.number
    Capacity uint32 `json:"capacity"` // rooms.capacity
    Occupied bool   `json:"occupied"` // derived, maintained by resync only
}

// DailyRate returns the nightly price for the room.  Pricing is a
// trivial capacity-based formula: 50 per person of capacity.
func (r *Room) DailyRate() float64 {
    return float64(r.Capacity) * 50.0
}
