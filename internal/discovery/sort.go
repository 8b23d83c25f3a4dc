package discovery

import (
	"math"
	"sort"
)

// SortKey selects the single active ordering of a filtered result
type SortKey string

const (
	SortClosest SortKey = "closest" // ascending by distance
	SortSoonest SortKey = "soonest" // ascending by start time
	SortLatest  SortKey = "latest"  // descending by creation time
	SortPopular SortKey = "popular" // descending by attendee count
)

// Valid reports whether the key is one of the known orderings.
func (k SortKey) Valid() bool {
	switch k {
	case SortClosest, SortSoonest, SortLatest, SortPopular:
		return true
	}
	return false
}

// Sort orders the ranked list in place by the given key. The sort is
// stable; ties keep their incoming order since no secondary key is defined.
func Sort(events []Ranked, key SortKey) {
	switch key {
	case SortClosest:
		sort.SliceStable(events, func(i, j int) bool {
			// events without a usable distance go last
			if math.IsNaN(events[i].DistanceKm) {
				return false
			}
			if math.IsNaN(events[j].DistanceKm) {
				return true
			}
			return events[i].DistanceKm < events[j].DistanceKm
		})
	case SortSoonest:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].StartTime.Before(events[j].StartTime)
		})
	case SortLatest:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].CreatedAt.After(events[j].CreatedAt)
		})
	case SortPopular:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].AttendeeCount > events[j].AttendeeCount
		})
	}
}
