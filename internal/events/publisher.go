// Package events publishes account lifecycle events for downstream
// consumers (mail dispatch, audit, sync). Mail sending itself lives in a
// separate service; this package only hands the intent over the broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Event types emitted by the accounts service.
const (
	EventUserCreated    = "accounts.user.created"
	EventTypesChanged   = "accounts.user.types_changed"
	EventEmailRequested = "accounts.user.email_requested"
)

// Event is the envelope shared by every published event.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent builds an envelope with the service identity filled in.
func NewEvent(eventType string, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "accounts-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// UserCreatedEvent is the payload of EventUserCreated.
type UserCreatedEvent struct {
	UserID   uint     `json:"user_id"`
	Username string   `json:"username"`
	Types    []string `json:"types"`
}

// TypesChangedEvent is the payload of EventTypesChanged.
type TypesChangedEvent struct {
	UserID   uint     `json:"user_id"`
	Username string   `json:"username"`
	Previous []string `json:"previous"`
	Current  []string `json:"current"`
}

// EmailRequestedEvent is the payload of EventEmailRequested; the mail
// service renders and sends it.
type EmailRequestedEvent struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	From    string `json:"from,omitempty"`
}

// EventPublisher abstracts the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// KafkaEventPublisher publishes events to a Kafka topic via watermill.
type KafkaEventPublisher struct {
	publisher message.Publisher
	topic     string
}

func NewKafkaEventPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}
	return &KafkaEventPublisher{publisher: publisher, topic: topic}, nil
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}
