// Package kafka publishes run lifecycle events to the platform event
// stream. Consumers downstream (notification fan-out, analytics) are out of
// this service's hands; it only guarantees well-formed envelopes on the
// right topics.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/turtacn/LeadScout/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Topics
// ─────────────────────────────────────────────────────────────────────────────

const (
	TopicRunSubmitted = "run.submitted"
	TopicRunCompleted = "run.completed"
	TopicRunFailed    = "run.failed"
	TopicRunTrace     = "run.trace"
)

// AllTopics lists every topic this service produces to.
func AllTopics() []string {
	return []string{TopicRunSubmitted, TopicRunCompleted, TopicRunFailed, TopicRunTrace}
}

// ─────────────────────────────────────────────────────────────────────────────
// EventEnvelope
// ─────────────────────────────────────────────────────────────────────────────

// EventEnvelope standardizes event messages across topics.
type EventEnvelope struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewEventEnvelope wraps payload into a versionless envelope with a fresh
// event id.
func NewEventEnvelope(eventType, source string, payload interface{}) (*EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to marshal event payload")
	}
	return &EventEnvelope{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Source:    "leadscout." + source,
		Timestamp: time.Now().UTC(),
		Payload:   raw,
	}, nil
}

// DecodePayload unmarshals the payload into target.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to decode event payload")
	}
	return nil
}

// ToMessage serialises the envelope into a kafka message keyed by the given
// key so all events of one run land on one partition.
func (e *EventEnvelope) ToMessage(topic, key string) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, errors.Wrap(err, errors.CodeInternal, "failed to marshal event envelope")
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  e.Timestamp,
	}, nil
}

//Personal.AI order the ending
