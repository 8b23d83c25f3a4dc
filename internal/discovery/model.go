package discovery

import (
	"math"
	"time"
)

// Event is the projection of a stored event that the discovery pipeline
// operates on. Coordinates are NaN when the event has no position; the
// radius predicate then excludes it implicitly.
type Event struct {
	ID            uint
	Title         string
	Category      string
	StartTime     time.Time
	CreatedAt     time.Time
	Lat           float64
	Lng           float64
	MinAge        int
	Price         int
	AttendeeCount int
}

// Ranked pairs an event with its distance from the caller, computed per
// request and never written back to the stored record.
type Ranked struct {
	Event
	DistanceKm float64
}

// HasPosition reports whether both coordinates are usable numbers
func (e Event) HasPosition() bool {
	return !math.IsNaN(e.Lat) && !math.IsNaN(e.Lng)
}

// HasDistance reports whether a distance could be computed for the caller
func (r Ranked) HasDistance() bool {
	return !math.IsNaN(r.DistanceKm)
}
