// Package kafka publishes entity change events to a Kafka topic. Clients
// subscribe to the feed to refresh their local order, application and invoice
// state without polling.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dentallab/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// ChangeFeedPublisher implements ports.ChangeFeedPublisher on top of a Kafka
// writer. Messages are keyed by entity id so updates for the same entity keep
// their order within a partition.
type ChangeFeedPublisher struct {
	writer *kafka.Writer
}

// NewChangeFeedPublisher creates a publisher for the given brokers and topic.
func NewChangeFeedPublisher(brokers []string, topic string) *ChangeFeedPublisher {
	return &ChangeFeedPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

type changeEventMessage struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Action     string `json:"action"`
	UpdatedAt  int64  `json:"updatedAt"`
}

// Publish emits one change event. Delivery is at least once; consumers
// deduplicate by entity id and update time.
func (p *ChangeFeedPublisher) Publish(ctx context.Context, event ports.ChangeEvent) error {
	value, err := json.Marshal(changeEventMessage{
		EntityType: event.EntityType,
		EntityID:   event.EntityID.String(),
		Action:     event.Action,
		UpdatedAt:  event.UpdatedAt,
	})
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s/%s", event.EntityType, event.EntityID)

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// Close releases the underlying Kafka writer.
func (p *ChangeFeedPublisher) Close() error {
	return p.writer.Close()
}
