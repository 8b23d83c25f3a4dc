package notification

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"

	"github.com/vadkul/vadkul-backend/utils"
)

// Channel sends one message to a list of device tokens
type Channel interface {
	Send(recipients []string, title, body string) error
}

// FCMChannel implements Channel over Firebase Cloud Messaging
type FCMChannel struct {
	client *messaging.Client
	ctx    context.Context
}

// NewFCMChannel wires the shared Firebase client. When Firebase never
// initialized the channel stays disabled and Send reports that.
func NewFCMChannel() Channel {
	if !utils.IsFCMEnabled() {
		log.Println("⚠️ FCM channel disabled (Firebase not initialized)")
	}
	return &FCMChannel{
		client: utils.FirebaseClient,
		ctx:    context.Background(),
	}
}

// Send pushes title/body to the given device tokens
func (f *FCMChannel) Send(recipients []string, title, body string) error {
	if f.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	if len(recipients) == 1 {
		return f.sendSingle(recipients[0], title, body)
	}
	return f.sendMulticast(recipients, title, body)
}

func (f *FCMChannel) sendSingle(token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				ChannelID:    "vadkul_notifications",
				Priority:     messaging.PriorityHigh,
				DefaultSound: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: intPtr(1),
				},
			},
		},
	}

	response, err := f.client.Send(f.ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %v", err)
	}

	log.Printf("✅ FCM message sent: %s\n", response)
	return nil
}

// sendMulticast sends to multiple tokens, max 500 per FCM batch
func (f *FCMChannel) sendMulticast(tokens []string, title, body string) error {
	batchSize := 500
	var failedTokens []string
	successCount := 0

	for i := 0; i < len(tokens); i += batchSize {
		end := i + batchSize
		if end > len(tokens) {
			end = len(tokens)
		}

		batch := tokens[i:end]
		message := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound:        "default",
					ChannelID:    "vadkul_notifications",
					Priority:     messaging.PriorityHigh,
					DefaultSound: true,
				},
			},
			APNS: &messaging.APNSConfig{
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Sound: "default",
						Badge: intPtr(1),
					},
				},
			},
		}

		response, err := f.client.SendMulticast(f.ctx, message)
		if err != nil {
			log.Printf("❌ Error sending FCM multicast batch: %v\n", err)
			failedTokens = append(failedTokens, batch...)
			continue
		}

		successCount += response.SuccessCount
		if response.FailureCount > 0 {
			for idx, resp := range response.Responses {
				if !resp.Success {
					failedTokens = append(failedTokens, batch[idx])
				}
			}
		}
	}

	if len(failedTokens) > 0 {
		return fmt.Errorf("failed to send to %d/%d tokens", len(failedTokens), len(tokens))
	}

	log.Printf("✅ All FCM messages sent: %d tokens\n", successCount)
	return nil
}

func intPtr(i int) *int {
	return &i
}
