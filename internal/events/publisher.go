package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher defines the interface for publishing domain events
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// ChannelPublisher implements Publisher using Watermill's in-process
// go-channel Pub/Sub. There is no external broker in this deployment;
// subscribers run inside the same process.
type ChannelPublisher struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
	topic  string
}

// NewChannelPublisher creates an in-process event publisher.
func NewChannelPublisher(topic string, logger *slog.Logger) *ChannelPublisher {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &ChannelPublisher{
		pubsub: pubsub,
		logger: logger,
		topic:  topic,
	}
}

// Publish marshals the event and hands it to the Pub/Sub.
func (p *ChannelPublisher) Publish(ctx context.Context, event *Event) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("timestamp", event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))

	if err := p.pubsub.Publish(p.topic, msg); err != nil {
		p.logger.Error("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe returns the message stream for this publisher's topic.
func (p *ChannelPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.pubsub.Subscribe(ctx, p.topic)
}

// Close closes the underlying Pub/Sub and releases resources.
func (p *ChannelPublisher) Close() error {
	return p.pubsub.Close()
}

// StartAuditLog subscribes to the event stream and writes every event to the
// log until ctx is cancelled.
func StartAuditLog(ctx context.Context, p *ChannelPublisher, logger *slog.Logger) error {
	msgs, err := p.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe for audit log: %w", err)
	}

	go func() {
		for msg := range msgs {
			logger.Info("domain event",
				"event_id", msg.UUID,
				"event_type", msg.Metadata.Get("event_type"),
				"payload", string(msg.Payload))
			msg.Ack()
		}
	}()

	return nil
}

// MockPublisher is an in-memory Publisher implementation for testing
type MockPublisher struct {
	Events []Event
}

// NewMockPublisher creates a new mock event publisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]Event, 0)}
}

func (m *MockPublisher) Publish(ctx context.Context, event *Event) error {
	m.Events = append(m.Events, *event)
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}

// PublishedEvents returns all published events (for testing)
func (m *MockPublisher) PublishedEvents() []Event {
	return m.Events
}
