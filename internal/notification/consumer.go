package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/vadkul/vadkul-backend/utils"
)

// StartKafkaConsumer reads activity records from the activity topic and
// turns each one into an in-app notification plus a push. Runs in its own
// goroutine; without a broker it is a no-op.
func StartKafkaConsumer(ctx context.Context, svc Service) {
	reader := utils.NewActivityReader("vadkul-notifications")
	if reader == nil {
		log.Println("ℹ️ Kafka not configured, notification consumer disabled")
		return
	}

	go func() {
		defer reader.Close()
		log.Println("✅ Notification consumer started")

		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				// Context cancellation is the normal shutdown path
				if ctx.Err() != nil {
					return
				}
				log.Printf("❌ Activity read error: %v", err)
				return
			}
			HandleActivity(ctx, svc, m.Value)
		}
	}()
}

// HandleActivity decodes one activity record and notifies the recipient.
// Malformed records are dropped with a log line, never retried.
func HandleActivity(ctx context.Context, svc Service, raw []byte) {
	var act utils.Activity
	if err := json.Unmarshal(raw, &act); err != nil {
		log.Printf("❌ Malformed activity record: %v", err)
		return
	}
	if act.RecipientID == 0 {
		return
	}

	sender := &SenderSnapshot{
		UserID:   act.ActorID,
		Name:     act.ActorName,
		PhotoURL: act.ActorPhoto,
	}

	link := act.Link
	if link == "" && act.EventID != 0 {
		link = fmt.Sprintf("/events/%d", act.EventID)
	}

	if err := svc.Notify(ctx, act.RecipientID, sender, act.Type, activityMessage(act), link); err != nil {
		log.Printf("❌ Failed to notify user %d: %v", act.RecipientID, err)
	}
}

func activityMessage(act utils.Activity) string {
	switch act.Type {
	case TypeJoin:
		return fmt.Sprintf("%s joined %s", act.ActorName, act.EventTitle)
	case TypeLeave:
		return fmt.Sprintf("%s left %s", act.ActorName, act.EventTitle)
	case TypeChat:
		return act.Message
	default:
		return act.Message
	}
}
