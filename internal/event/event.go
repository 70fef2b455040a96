package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/docnav/internal/event/topic"
)

// Metadata contains standard information attached to every envelope.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// Envelope carries a published event payload with its topic and metadata.
// Envelopes are immutable once created.
type Envelope struct {
	// Topic is the hierarchical event type (e.g., "command.finished").
	Topic topic.Topic

	// Payload contains the event-specific data.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// NewEnvelope creates an envelope with the given topic, payload, and source.
func NewEnvelope(t topic.Topic, payload any, source string) Envelope {
	return Envelope{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}
