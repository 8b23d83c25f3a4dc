package utils

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var activityWriter *kafka.Writer

// ActivityTopic is the topic the notification consumer reads from
const ActivityTopic = "vadkul.activity"

// Activity is the record the event and chat services publish and the
// notification consumer turns into in-app and push notifications.
type Activity struct {
	Type        string `json:"type"` // join | leave | chat
	EventID     uint   `json:"event_id,omitempty"`
	EventTitle  string `json:"event_title,omitempty"`
	RoomKey     string `json:"room_key,omitempty"`
	ActorID     uint   `json:"actor_id"`
	ActorName   string `json:"actor_name"`
	ActorPhoto  string `json:"actor_photo,omitempty"`
	RecipientID uint   `json:"recipient_id"`
	Message     string `json:"message,omitempty"`
	Link        string `json:"link,omitempty"`
}

// InitializeKafka sets up the shared writer for activity events.
// If KAFKA_BROKERS is unset the writer stays nil and publishes become no-ops,
// so the API keeps working without a broker in local development.
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, activity events disabled")
		return
	}

	activityWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        ActivityTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Println("✅ Kafka writer initialized:", brokers)
}

// PublishActivity writes one activity record to the activity topic.
// Errors are logged, never propagated: a lost notification must not fail
// the user-facing write that produced it.
func PublishActivity(key string, payload interface{}) {
	if activityWriter == nil {
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ Failed to marshal activity payload: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := activityWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	}); err != nil {
		log.Printf("❌ Failed to publish activity event: %v", err)
	}
}

// NewActivityReader builds the consumer-side reader for the activity topic
func NewActivityReader(groupID string) *kafka.Reader {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		GroupID:  groupID,
		Topic:    ActivityTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
