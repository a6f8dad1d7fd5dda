package events

import "time"

// Domain event type codes published on the bus.
const (
	TypeBoletoCreated   = "BOLETO_CREATED"
	TypeBoletoCancelled = "BOLETO_CANCELLED"
	TypeMessageQueued   = "MESSAGE_QUEUED"
	TypeMessageSent     = "MESSAGE_SENT"
	TypeMessageFailed   = "MESSAGE_FAILED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "BOLETO_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
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
