package discovery

import (
	"math"
	"testing"
	"time"
)

func TestCategoryAllNeverExcludes(t *testing.T) {
	categories := []string{"sport", "food", "culture", "custom-thing", ""}
	f := Filters{Category: CategoryAll}
	for _, cat := range categories {
		if !f.Matches(Event{Category: cat}, 0) {
			t.Errorf("category %q excluded under the all filter", cat)
		}
	}
}

func TestCategoryExactMatch(t *testing.T) {
	f := Filters{Category: "sport"}
	if !f.Matches(Event{Category: "sport"}, 0) {
		t.Error("matching category excluded")
	}
	if f.Matches(Event{Category: "food"}, 0) {
		t.Error("non-matching category included")
	}
}

func TestAgeBucketsAreNotAPartition(t *testing.T) {
	// MinAge 20 passes 18plus but neither family nor seniors. This coarse
	// behavior is deliberate.
	e := Event{MinAge: 20}
	if (Filters{Age: AgeFamily}).Matches(e, 0) {
		t.Error("minAge 20 should not pass the family bucket")
	}
	if !(Filters{Age: AgeAdult}).Matches(e, 0) {
		t.Error("minAge 20 should pass the 18plus bucket")
	}
	if (Filters{Age: AgeSenior}).Matches(e, 0) {
		t.Error("minAge 20 should not pass the seniors bucket")
	}

	// MinAge 70 passes both 18plus and seniors.
	senior := Event{MinAge: 70}
	if !(Filters{Age: AgeAdult}).Matches(senior, 0) {
		t.Error("minAge 70 should pass the 18plus bucket")
	}
	if !(Filters{Age: AgeSenior}).Matches(senior, 0) {
		t.Error("minAge 70 should pass the seniors bucket")
	}
}

func TestRadiusBoundary(t *testing.T) {
	f := Filters{RadiusKm: 10}
	cases := []struct {
		distance float64
		want     bool
	}{
		{9.99, true},
		{10, true},
		{10.01, false},
	}
	for _, c := range cases {
		if got := f.Matches(Event{}, c.distance); got != c.want {
			t.Errorf("distance %v within radius 10: got %v, want %v", c.distance, got, c.want)
		}
	}
}

func TestRadiusRejectsMissingCoordinates(t *testing.T) {
	f := Filters{RadiusKm: 50}
	if f.Matches(Event{}, math.NaN()) {
		t.Error("NaN distance should fail any radius comparison")
	}
	// without a radius the same event passes
	if !(Filters{}).Matches(Event{}, math.NaN()) {
		t.Error("NaN distance with no radius filter should pass")
	}
}

func TestFreeOnly(t *testing.T) {
	f := Filters{FreeOnly: true}
	if !f.Matches(Event{Price: 0}, 0) {
		t.Error("free event excluded by free filter")
	}
	if f.Matches(Event{Price: 50}, 0) {
		t.Error("paid event included by free filter")
	}
}

func TestTodayOnly(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	f := Filters{TodayOnly: true, Now: now}

	sameDay := Event{StartTime: time.Date(2026, 8, 28, 23, 30, 0, 0, time.Local)}
	if !f.Matches(sameDay, 0) {
		t.Error("event later the same calendar day excluded")
	}

	tomorrow := Event{StartTime: time.Date(2026, 8, 29, 0, 30, 0, 0, time.Local)}
	if f.Matches(tomorrow, 0) {
		t.Error("event on the next calendar day included")
	}
}

func TestSearchIsCaseInsensitiveTitleOnly(t *testing.T) {
	f := Filters{Search: "fika"}
	if !f.Matches(Event{Title: "Spontan Fika i parken"}, 0) {
		t.Error("title substring match failed")
	}
	if f.Matches(Event{Title: "Grillkväll"}, 0) {
		t.Error("non-matching title included")
	}
}

func TestPredicatesAreConjunctive(t *testing.T) {
	f := Filters{Category: "sport", FreeOnly: true}
	e := Event{Category: "sport", Price: 100}
	if f.Matches(e, 0) {
		t.Error("event failing one active predicate must be excluded")
	}
}
