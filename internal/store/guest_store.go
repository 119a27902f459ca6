package store

import "github.com/iliyamo/hotel-reservation/internal/model"

// GuestStore keeps guest records in memory and assigns their sequential
// identifiers.  The identity document is the natural key: Create and
// Update refuse any change that would give two guests the same
// document.  Guests are never deleted.
//
// GuestStore performs no locking of its own; the Desk serialises access.
type GuestStore struct {
	guests []*model.Guest
	nextID uint64
}

// NewGuestStore returns an empty GuestStore whose first assigned ID
// will be 1.
func NewGuestStore() *GuestStore { return &GuestStore{nextID: 1} }

// Load replaces the store contents with copies of the given guests and
// re-seeds the ID counter to max(loaded id)+1 so a restart never reuses
// an identifier.
func (s *GuestStore) Load(guests []model.Guest) {
	s.guests = make([]*model.Guest, 0, len(guests))
	s.nextID = 1
	for i := range guests {
		g := guests[i]
		s.guests = append(s.guests, &g)
		if g.ID >= s.nextID {
			s.nextID = g.ID + 1
		}
	}
}

func (s *GuestStore) byID(id uint64) *model.Guest {
	for _, g := range s.guests {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// byDocument finds a guest by exact, case-sensitive document match.
func (s *GuestStore) byDocument(document string) *model.Guest {
	for _, g := range s.guests {
		if g.Document == document {
			return g
		}
	}
	return nil
}

// All returns copies of every guest in insertion order.
func (s *GuestStore) All() []model.Guest {
	out := make([]model.Guest, 0, len(s.guests))
	for _, g := range s.guests {
		out = append(out, *g)
	}
	return out
}

// Create registers a new guest, assigning the next sequential ID.  It
// returns ErrDuplicateDocument when the document is already registered.
func (s *GuestStore) Create(name, document string) (model.Guest, error) {
	if s.byDocument(document) != nil {
		return model.Guest{}, ErrDuplicateDocument
	}
	g := &model.Guest{ID: s.nextID, Name: name, Document: document}
	s.nextID++
	s.guests = append(s.guests, g)
	return *g, nil
}

// Update edits an existing guest's name and document.  Moving the
// document onto one that belongs to another guest fails with
// ErrDuplicateDocument and leaves the record untouched.
func (s *GuestStore) Update(id uint64, name, document string) (model.Guest, error) {
	g := s.byID(id)
	if g == nil {
		return model.Guest{}, ErrGuestNotFound
	}
	if other := s.byDocument(document); other != nil && other.ID != id {
		return model.Guest{}, ErrDuplicateDocument
	}
	g.Name = name
	g.Document = document
	return *g, nil
}
