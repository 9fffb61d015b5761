package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Publisher is the outbound event contract used by the engine.
type Publisher interface {
	Publish(ctx context.Context, eventType EventType, data interface{}) error
	Close() error
}

// KafkaPublisher publishes events through Watermill's Kafka transport.
type KafkaPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topic     string
}

type PublisherConfig struct {
	Brokers []string
	Topic   string
	Logger  *slog.Logger
}

func NewKafkaPublisher(cfg PublisherConfig) (*KafkaPublisher, error) {
	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   cfg.Brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(cfg.Logger))
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}

	return &KafkaPublisher{
		publisher: publisher,
		logger:    cfg.Logger,
		topic:     cfg.Topic,
	}, nil
}

func (p *KafkaPublisher) Publish(_ context.Context, eventType EventType, data interface{}) error {
	event := newEvent(eventType, data)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.logger.Error("failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.Info("published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topic)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.publisher.Close()
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, EventType, interface{}) error { return nil }
func (NopPublisher) Close() error                                          { return nil }

// MockPublisher records events in memory for tests.
type MockPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(_ context.Context, eventType EventType, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, newEvent(eventType, data))
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// Events returns a snapshot of everything published so far.
func (m *MockPublisher) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// EventsOfType filters the published events by type.
func (m *MockPublisher) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range m.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func newEvent(eventType EventType, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now(),
		Data:      data,
	}
}
