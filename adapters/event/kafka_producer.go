package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/devopscompass/waitlist-api/internal/config"
)

const (
	TopicWaitlistEvents = "waitlist.events"
)

type WaitlistEventType string

const (
	WaitlistEventTypeJoined WaitlistEventType = "waitlist.joined"
)

// WaitlistEventPayload is published for downstream consumers (analytics,
// notifications) on every persisted submission. It deliberately carries no
// personal fields.
type WaitlistEventPayload struct {
	EventType    WaitlistEventType `json:"eventType"`
	SubmissionID uuid.UUID         `json:"submissionId"`
	RoleFocus    string            `json:"roleFocus"`
	Location     string            `json:"location"`
	OccurredAt   time.Time         `json:"occurredAt"`
}

type KafkaProducerClient struct {
	WaitlistEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	waitlistWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicWaitlistEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		WaitlistEventsWriter: waitlistWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishWaitlistEvent(ctx context.Context, payload WaitlistEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal waitlist event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.SubmissionID.String()),
		Value: value,
	}
	if err := c.WaitlistEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write waitlist event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.WaitlistEventsWriter != nil {
		c.WaitlistEventsWriter.Close()
	}
}
