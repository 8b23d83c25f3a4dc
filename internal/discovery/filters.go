package discovery

import (
	"strings"
	"time"
)

// AgeBucket is a coarse audience filter. The buckets are intentionally not
// a partition: an event with MinAge 20 passes "18plus" but neither "family"
// nor "seniors". That matches the product behavior and must not be
// "fixed" into strict age-range intersection.
type AgeBucket string

const (
	AgeAll    AgeBucket = "all"
	AgeFamily AgeBucket = "family"
	AgeAdult  AgeBucket = "18plus"
	AgeSenior AgeBucket = "seniors"
)

// Valid reports whether the bucket is one of the known values.
func (b AgeBucket) Valid() bool {
	switch b {
	case "", AgeAll, AgeFamily, AgeAdult, AgeSenior:
		return true
	}
	return false
}

// CategoryAll disables the category predicate
const CategoryAll = "all"

// Filters is the per-request filter configuration. Active predicates are
// applied conjunctively: an event must satisfy all of them to remain.
type Filters struct {
	Category  string    // exact category id, or CategoryAll
	Age       AgeBucket // coarse bucket, AgeAll passes everything
	RadiusKm  float64   // 0 = unlimited
	FreeOnly  bool      // price must be 0
	TodayOnly bool      // start date equals today's calendar day
	Search    string    // case-insensitive substring match on title
	Now       time.Time // reference time for TodayOnly; zero means time.Now()
}

// Matches reports whether the event passes every active predicate.
// distanceKm is the caller-computed distance to the event; NaN fails any
// radius comparison, so events without coordinates drop out of radius
// searches without special handling.
func (f Filters) Matches(e Event, distanceKm float64) bool {
	if f.Category != "" && f.Category != CategoryAll && e.Category != f.Category {
		return false
	}

	switch f.Age {
	case "", AgeAll:
	case AgeFamily:
		if e.MinAge >= 12 {
			return false
		}
	case AgeAdult:
		if e.MinAge < 18 {
			return false
		}
	case AgeSenior:
		if e.MinAge < 65 {
			return false
		}
	default:
		return false
	}

	if f.RadiusKm > 0 && !(distanceKm <= f.RadiusKm) {
		return false
	}

	if f.FreeOnly && e.Price != 0 {
		return false
	}

	if f.TodayOnly {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		ey, em, ed := e.StartTime.Local().Date()
		ny, nm, nd := now.Local().Date()
		if ey != ny || em != nm || ed != nd {
			return false
		}
	}

	if f.Search != "" &&
		!strings.Contains(strings.ToLower(e.Title), strings.ToLower(f.Search)) {
		return false
	}

	return true
}
