package chat

import (
	"testing"
)

func TestDirectRoomKeyOrderIndependent(t *testing.T) {
	if got, want := DirectRoomKey(7, 3), "direct:3:7"; got != want {
		t.Fatalf("DirectRoomKey(7,3) = %q, want %q", got, want)
	}
	if DirectRoomKey(3, 7) != DirectRoomKey(7, 3) {
		t.Fatal("the same pair must always produce the same key")
	}
	if DirectRoomKey(1, 2) == DirectRoomKey(1, 3) {
		t.Fatal("different pairs must not collide")
	}
}

func TestEventRoomKey(t *testing.T) {
	if got, want := EventRoomKey(42), "event:42"; got != want {
		t.Fatalf("EventRoomKey(42) = %q, want %q", got, want)
	}
}

func TestParticipantRoundTrip(t *testing.T) {
	room := &ChatRoom{}

	list, err := room.ParticipantList()
	if err != nil {
		t.Fatalf("empty column should decode: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("empty column decoded to %d entries", len(list))
	}

	if err := room.SetParticipants([]Participant{
		{UserID: 1, Name: "Maja"},
		{UserID: 2, Name: "Nils"},
	}); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if !room.HasParticipant(1) || !room.HasParticipant(2) {
		t.Fatal("stored participants not found")
	}
	if room.HasParticipant(3) {
		t.Fatal("non-member reported as participant")
	}

	others := room.OtherParticipants(1)
	if len(others) != 1 || others[0].UserID != 2 {
		t.Fatalf("OtherParticipants(1) = %+v", others)
	}
}
