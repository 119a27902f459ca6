package store

// resyncOccupancy recomputes every room's derived Occupied flag from
// scratch: a room is occupied exactly when an active reservation's
// range contains today.  The recomputation is always total rather than
// incremental so the cached flag can never drift from the ledger.  One
// match is enough per room — active ranges on a room never overlap, so
// there is at most one current occupant.
//
// The Desk runs this inside the same critical section as every
// mutation that can change today's occupancy (create, cancel, date
// edit) and once right after loading persisted state, because "today"
// may have advanced since the data was last saved.
func resyncOccupancy(rooms *RoomStore, ledger *ReservationLedger, today string) {
	for _, room := range rooms.rooms {
		room.Occupied = false
		for _, r := range ledger.reservations {
			if r.Active && r.RoomID == room.ID && r.StartDate <= today && today <= r.EndDate {
				room.Occupied = true
				break
			}
		}
	}
}
