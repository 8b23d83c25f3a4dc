package discovery

import "math"

// Discover runs the full pipeline over the event collection: annotate each
// event with its distance from (userLat, userLng), keep the events passing
// every active predicate, then order by the sort key. The whole collection
// is processed in memory on each call, O(n log n), which is fine at the
// collection sizes this app sees.
func Discover(events []Event, userLat, userLng float64, f Filters, key SortKey) []Ranked {
	result := make([]Ranked, 0, len(events))

	for _, e := range events {
		distance := math.NaN()
		if e.HasPosition() {
			distance = HaversineKm(userLat, userLng, e.Lat, e.Lng)
		}

		if !f.Matches(e, distance) {
			continue
		}

		result = append(result, Ranked{Event: e, DistanceKm: distance})
	}

	Sort(result, key)
	return result
}
