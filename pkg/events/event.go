package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the notes service.
const (
	MessageCreated     = "MESSAGE_CREATED"
	MessageUpdated     = "MESSAGE_UPDATED"
	MessageDeleted     = "MESSAGE_DELETED"
	EntitiesExtracted  = "ENTITIES_EXTRACTED"
	EntityUpdated      = "ENTITY_UPDATED"
	EntitiesMerged     = "ENTITIES_MERGED"
	ExtractionDegraded = "EXTRACTION_DEGRADED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventID is unique per occurrence.
	EventID() string

	// EventType returns the unique code for this event (e.g., "MESSAGE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Publisher delivers events to a bus. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
