package store

import "github.com/iliyamo/hotel-reservation/internal/model"

// RoomStore keeps the hotel's rooms in memory.  Rooms are reference
// data: Load installs them once and nothing creates or removes them
// afterwards.  All lookups are linear scans in insertion order.
//
// RoomStore performs no locking of its own; the Desk serialises access.
type RoomStore struct {
	rooms []*model.Room
}

// NewRoomStore returns an empty RoomStore.
func NewRoomStore() *RoomStore { return &RoomStore{} }

// Load replaces the store contents with copies of the given rooms.
func (s *RoomStore) Load(rooms []model.Room) {
	s.rooms = make([]*model.Room, 0, len(rooms))
	for i := range rooms {
		r := rooms[i]
		s.rooms = append(s.rooms, &r)
	}
}

// byID returns mutable access to a room.  Only the store package uses
// it; callers outside receive value copies so invariants cannot be
// bypassed by mutating a shared record.
func (s *RoomStore) byID(id uint64) *model.Room {
	for _, r := range s.rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// byNumber finds a room by its door number.
func (s *RoomStore) byNumber(number uint32) *model.Room {
	for _, r := range s.rooms {
		if r.Number == number {
			return r
		}
	}
	return nil
}

// All returns copies of every room in insertion order.
func (s *RoomStore) All() []model.Room {
	out := make([]model.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, *r)
	}
	return out
}

// Filter returns copies of the rooms for which keep returns true.
func (s *RoomStore) Filter(keep func(model.Room) bool) []model.Room {
	out := make([]model.Room, 0)
	for _, r := range s.rooms {
		if keep(*r) {
			out = append(out, *r)
		}
	}
	return out
}

// Len reports how many rooms are loaded.
func (s *RoomStore) Len() int { return len(s.rooms) }
