package event

import (
	"errors"
	"math"
	"testing"
	"time"

	"gorm.io/datatypes"
)

func TestAddAttendeeRespectsCapacity(t *testing.T) {
	list := []Attendee{{UserID: 1}, {UserID: 2}}

	_, added, err := AddAttendee(list, Attendee{UserID: 3}, 2)
	if !errors.Is(err, ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}
	if added {
		t.Fatal("attendee must not be added to a full event")
	}
	if len(list) != 2 {
		t.Fatalf("list mutated on rejected join: %d entries", len(list))
	}
}

func TestAddAttendeeFullMessage(t *testing.T) {
	if ErrEventFull.Error() != "fullbokat" {
		t.Fatalf("full-event message = %q", ErrEventFull.Error())
	}
}

func TestAddAttendeeIdempotent(t *testing.T) {
	list := []Attendee{{UserID: 7, Name: "Sam"}}

	out, added, err := AddAttendee(list, Attendee{UserID: 7, Name: "Sam again"}, 0)
	if err != nil {
		t.Fatalf("repeat join errored: %v", err)
	}
	if added {
		t.Fatal("repeat join must be a no-op")
	}
	if len(out) != 1 || out[0].Name != "Sam" {
		t.Fatalf("repeat join altered the stored snapshot: %+v", out)
	}
}

func TestAddAttendeeUnlimitedWhenNoCap(t *testing.T) {
	var list []Attendee
	for i := 1; i <= 100; i++ {
		var added bool
		var err error
		list, added, err = AddAttendee(list, Attendee{UserID: uint(i)}, 0)
		if err != nil || !added {
			t.Fatalf("join %d failed: added=%v err=%v", i, added, err)
		}
	}
	if len(list) != 100 {
		t.Fatalf("expected 100 attendees, got %d", len(list))
	}
}

func TestRemoveAttendee(t *testing.T) {
	list := []Attendee{{UserID: 1}, {UserID: 2}, {UserID: 3}}

	out, removed := RemoveAttendee(list, 2)
	if !removed {
		t.Fatal("expected removal")
	}
	if len(out) != 2 || out[0].UserID != 1 || out[1].UserID != 3 {
		t.Fatalf("unexpected list after removal: %+v", out)
	}

	out, removed = RemoveAttendee(out, 99)
	if removed {
		t.Fatal("leaving an event never joined must be a no-op")
	}
	if len(out) != 2 {
		t.Fatalf("no-op leave changed the list: %+v", out)
	}
}

func TestAttendeeListRoundTrip(t *testing.T) {
	e := &Event{}

	list, err := e.AttendeeList()
	if err != nil {
		t.Fatalf("empty column should decode: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("empty column decoded to %d entries", len(list))
	}

	if err := e.SetAttendees([]Attendee{{UserID: 5, Email: "a@b.se", Name: "Alva"}}); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	list, err = e.AttendeeList()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(list) != 1 || list[0].UserID != 5 || list[0].Email != "a@b.se" {
		t.Fatalf("round trip lost data: %+v", list)
	}
}

func TestToDiscoveryMapsMissingCoordinatesToNaN(t *testing.T) {
	lat, lng := 59.33, 18.07
	start := time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC)

	withPos := Event{
		ID: 1, Title: "Padel", Category: "sports",
		StartTime: start, Lat: &lat, Lng: &lng,
		MinAge: 18, Price: 50,
		Attendees: datatypes.JSON([]byte(`[{"user_id":1},{"user_id":2}]`)),
	}
	d := withPos.ToDiscovery()
	if d.Lat != lat || d.Lng != lng {
		t.Fatalf("coordinates not carried over: %v,%v", d.Lat, d.Lng)
	}
	if d.AttendeeCount != 2 {
		t.Fatalf("attendee count = %d, want 2", d.AttendeeCount)
	}
	if d.MinAge != 18 || d.Price != 50 || d.Title != "Padel" {
		t.Fatalf("projection lost fields: %+v", d)
	}

	noPos := Event{ID: 2, Title: "Fika"}
	d = noPos.ToDiscovery()
	if !math.IsNaN(d.Lat) || !math.IsNaN(d.Lng) {
		t.Fatalf("missing coordinates must become NaN, got %v,%v", d.Lat, d.Lng)
	}
	if d.HasPosition() {
		t.Fatal("event without coordinates must not report a position")
	}
}

func TestValidateEventFields(t *testing.T) {
	cases := []struct {
		name                         string
		price, minP, maxP, minA, maxA int
		wantErr                      bool
	}{
		{"ok defaults", 0, 0, 0, 0, 0, false},
		{"ok ranged", 100, 2, 10, 18, 65, false},
		{"negative price", -1, 0, 0, 0, 0, true},
		{"min over max participants", 0, 5, 3, 0, 0, true},
		{"unlimited max allows any min", 0, 5, 0, 0, 0, false},
		{"min over max age", 0, 0, 0, 40, 30, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateEventFields(tc.price, tc.minP, tc.maxP, tc.minA, tc.maxA)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tc.wantErr)
			}
		})
	}
}
