package store

import "time"

// Clock abstracts "now" so occupancy and current-guest queries can be
// tested against a fixed date.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// fixedClock pins Now to a single instant.  Used by tests.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
