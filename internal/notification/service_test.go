package notification

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/vadkul/vadkul-backend/utils"
)

type fakeRepo struct {
	created []Notification
	tokens  map[uint][]string
}

func (f *fakeRepo) Create(_ context.Context, n *Notification) error {
	n.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uint, _ int) ([]Notification, error) {
	var out []Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkAsRead(_ context.Context, id uint, userID uint) error { return nil }
func (f *fakeRepo) MarkAllAsRead(_ context.Context, userID uint) error      { return nil }

func (f *fakeRepo) UnreadCount(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) CountAll(_ context.Context) (int64, error) { return int64(len(f.created)), nil }

func (f *fakeRepo) SaveDeviceToken(_ context.Context, t *FCMDeviceToken) error {
	if f.tokens == nil {
		f.tokens = map[uint][]string{}
	}
	f.tokens[t.UserID] = append(f.tokens[t.UserID], t.DeviceToken)
	return nil
}

func (f *fakeRepo) GetUserDeviceTokens(_ context.Context, userID uint) ([]string, error) {
	return f.tokens[userID], nil
}

func (f *fakeRepo) RemoveDeviceToken(_ context.Context, userID uint, token string) error { return nil }

type fakeChannel struct {
	sent [][]string
}

func (f *fakeChannel) Send(recipients []string, title, body string) error {
	f.sent = append(f.sent, recipients)
	return nil
}

func TestNotifySuppressesSelf(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewServiceWithChannel(repo, &fakeChannel{})

	sender := &SenderSnapshot{UserID: 5, Name: "Elin"}
	if err := svc.Notify(context.Background(), 5, sender, TypeJoin, "Elin joined", ""); err != nil {
		t.Fatalf("self-notification must be a quiet no-op: %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("self-notification stored: %+v", repo.created)
	}
}

func TestNotifyStoresAndPushes(t *testing.T) {
	repo := &fakeRepo{tokens: map[uint][]string{9: {"tok-1", "tok-2"}}}
	ch := &fakeChannel{}
	svc := NewServiceWithChannel(repo, ch)

	sender := &SenderSnapshot{UserID: 5, Name: "Elin", PhotoURL: "p.jpg"}
	if err := svc.Notify(context.Background(), 9, sender, TypeChat, "hej!", "/chat/direct:5:9"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(repo.created))
	}
	n := repo.created[0]
	if n.UserID != 9 || n.Type != TypeChat || n.Message != "hej!" {
		t.Fatalf("stored notification mismatch: %+v", n)
	}

	info := n.SenderInfo()
	if info == nil || info.UserID != 5 || info.Name != "Elin" {
		t.Fatalf("sender snapshot lost: %+v", info)
	}

	if len(ch.sent) != 1 || len(ch.sent[0]) != 2 {
		t.Fatalf("expected one push to 2 tokens, got %+v", ch.sent)
	}
}

func TestNotifyWithoutSenderIsSystem(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewServiceWithChannel(repo, &fakeChannel{})

	if err := svc.Notify(context.Background(), 3, nil, TypeSystem, "welcome", ""); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(repo.created))
	}
	if repo.created[0].SenderInfo() != nil {
		t.Fatal("system notification must have no sender")
	}
}

func TestHandleActivityJoin(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewServiceWithChannel(repo, &fakeChannel{})

	raw, _ := json.Marshal(utils.Activity{
		Type:        TypeJoin,
		EventID:     12,
		EventTitle:  "Grillkväll",
		ActorID:     4,
		ActorName:   "Oskar",
		RecipientID: 2,
	})
	HandleActivity(context.Background(), svc, raw)

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.created))
	}
	n := repo.created[0]
	if n.UserID != 2 || n.Type != TypeJoin {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.Message != "Oskar joined Grillkväll" {
		t.Fatalf("message = %q", n.Message)
	}
	if n.Link != "/events/12" {
		t.Fatalf("link = %q", n.Link)
	}
}

func TestHandleActivityDropsBadRecords(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewServiceWithChannel(repo, &fakeChannel{})

	HandleActivity(context.Background(), svc, []byte("{not json"))

	noRecipient, _ := json.Marshal(utils.Activity{Type: TypeChat, ActorID: 1, Message: "hi"})
	HandleActivity(context.Background(), svc, noRecipient)

	if len(repo.created) != 0 {
		t.Fatalf("bad records produced notifications: %+v", repo.created)
	}
}

func TestHandleActivitySelfActionSuppressed(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewServiceWithChannel(repo, &fakeChannel{})

	// Host joins their own event: actor == recipient
	raw, _ := json.Marshal(utils.Activity{
		Type:        TypeJoin,
		EventID:     8,
		EventTitle:  "Yoga",
		ActorID:     6,
		ActorName:   "Vera",
		RecipientID: 6,
	})
	HandleActivity(context.Background(), svc, raw)

	if len(repo.created) != 0 {
		t.Fatalf("self action produced a notification: %+v", repo.created)
	}
}
