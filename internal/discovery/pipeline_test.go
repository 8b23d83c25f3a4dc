package discovery

import (
	"math"
	"testing"
	"time"
)

func rankedIDs(events []Ranked) []uint {
	ids := make([]uint, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func TestSortClosest(t *testing.T) {
	// distances 3, 1, 2 km must come out ordered 1, 2, 3
	events := []Ranked{
		{Event: Event{ID: 1}, DistanceKm: 3},
		{Event: Event{ID: 2}, DistanceKm: 1},
		{Event: Event{ID: 3}, DistanceKm: 2},
	}
	Sort(events, SortClosest)
	want := []uint{2, 3, 1}
	for i, id := range rankedIDs(events) {
		if id != want[i] {
			t.Fatalf("closest order = %v, want %v", rankedIDs(events), want)
		}
	}
}

func TestSortSoonest(t *testing.T) {
	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	events := []Ranked{
		{Event: Event{ID: 1, StartTime: base.Add(2 * time.Hour)}},
		{Event: Event{ID: 2, StartTime: base.Add(1 * time.Hour)}},
		{Event: Event{ID: 3, StartTime: base.Add(3 * time.Hour)}},
	}
	Sort(events, SortSoonest)
	want := []uint{2, 1, 3}
	for i, id := range rankedIDs(events) {
		if id != want[i] {
			t.Fatalf("soonest order = %v, want %v", rankedIDs(events), want)
		}
	}
}

func TestSortLatestByCreation(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	events := []Ranked{
		{Event: Event{ID: 1, CreatedAt: base}},
		{Event: Event{ID: 2, CreatedAt: base.Add(48 * time.Hour)}},
		{Event: Event{ID: 3, CreatedAt: base.Add(24 * time.Hour)}},
	}
	Sort(events, SortLatest)
	want := []uint{2, 3, 1}
	for i, id := range rankedIDs(events) {
		if id != want[i] {
			t.Fatalf("latest order = %v, want %v", rankedIDs(events), want)
		}
	}
}

func TestSortPopular(t *testing.T) {
	events := []Ranked{
		{Event: Event{ID: 1, AttendeeCount: 2}},
		{Event: Event{ID: 2, AttendeeCount: 9}},
		{Event: Event{ID: 3, AttendeeCount: 5}},
	}
	Sort(events, SortPopular)
	want := []uint{2, 3, 1}
	for i, id := range rankedIDs(events) {
		if id != want[i] {
			t.Fatalf("popular order = %v, want %v", rankedIDs(events), want)
		}
	}
}

func TestSortIsStableOnTies(t *testing.T) {
	events := []Ranked{
		{Event: Event{ID: 1, AttendeeCount: 3}},
		{Event: Event{ID: 2, AttendeeCount: 3}},
		{Event: Event{ID: 3, AttendeeCount: 3}},
	}
	Sort(events, SortPopular)
	want := []uint{1, 2, 3}
	for i, id := range rankedIDs(events) {
		if id != want[i] {
			t.Fatalf("tied events reordered: %v, want %v", rankedIDs(events), want)
		}
	}
}

func TestDiscoverAnnotatesFiltersAndSorts(t *testing.T) {
	// User at the origin; events on the same meridian so distance scales
	// with latitude, roughly 111 km per degree.
	events := []Event{
		{ID: 1, Title: "Längre bort", Lat: 2, Lng: 0, Category: "sport"},
		{ID: 2, Title: "Närmast", Lat: 0.5, Lng: 0, Category: "sport"},
		{ID: 3, Title: "Fel kategori", Lat: 0.1, Lng: 0, Category: "food"},
		{ID: 4, Title: "Utan position", Lat: math.NaN(), Lng: math.NaN(), Category: "sport"},
	}

	result := Discover(events, 0, 0, Filters{Category: "sport", RadiusKm: 300}, SortClosest)

	want := []uint{2, 1}
	got := rankedIDs(result)
	if len(got) != len(want) {
		t.Fatalf("discover returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("discover order = %v, want %v", got, want)
		}
	}

	if result[0].DistanceKm <= 0 || result[0].DistanceKm > 60 {
		t.Errorf("unexpected annotated distance: %v", result[0].DistanceKm)
	}
}

func TestDiscoverDoesNotMutateInput(t *testing.T) {
	events := []Event{
		{ID: 1, Lat: 1, Lng: 1},
		{ID: 2, Lat: 2, Lng: 2},
	}
	_ = Discover(events, 0, 0, Filters{}, SortClosest)
	if events[0].ID != 1 || events[1].ID != 2 {
		t.Fatal("input collection reordered by Discover")
	}
}
