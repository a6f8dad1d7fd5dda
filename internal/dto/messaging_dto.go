package dto

import (
	"time"

	"github.com/google/uuid"
)

type QueueMessageRequest struct {
	TenantId       uuid.UUID `json:"tenant_id" validate:"required"`
	ContactId      uuid.UUID `json:"contact_id" validate:"required"`
	MessageType    string    `json:"message_type" validate:"required,oneof=reminder notice freeform"`
	Content        string    `json:"content" validate:"required"`
	IdempotencyKey string    `json:"idempotency_key" validate:"required"`
}

type OutboxItemResponse struct {
	Id          uuid.UUID  `json:"id"`
	TenantId    uuid.UUID  `json:"tenant_id"`
	ContactId   uuid.UUID  `json:"contact_id"`
	MessageType string     `json:"message_type"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
}

// OutboxQueuedMessage is the payload published on the internal queue
// topic when an outbox item is persisted.
type OutboxQueuedMessage struct {
	OutboxItemId uuid.UUID `json:"outbox_item_id"`
	TenantId     uuid.UUID `json:"tenant_id"`
}
