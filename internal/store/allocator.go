package store

import "github.com/iliyamo/hotel-reservation/internal/model"

// findSuitableRoom searches every room for the best candidate to host a
// party over [start,end].  Rooms too small for the party are skipped,
// then rooms with a conflicting active reservation are skipped, and
// among what remains the room with the smallest leftover capacity wins
// (best fit, so larger rooms stay free for larger future parties).
// Ties keep the first room encountered, which makes the choice stable
// across runs but otherwise arbitrary.  A nil result means no room can
// take the booking; that is an expected outcome, not a fault.
func findSuitableRoom(rooms *RoomStore, ledger *ReservationLedger, partySize uint32, start, end string) *model.Room {
	var best *model.Room
	var bestSlack uint32
	for _, room := range rooms.rooms {
		if room.Capacity < partySize {
			continue
		}
		if ledger.Overlaps(room.ID, start, end, 0) {
			continue
		}
		slack := room.Capacity - partySize
		if best == nil || slack < bestSlack {
			best = room
			bestSlack = slack
		}
	}
	return best
}
