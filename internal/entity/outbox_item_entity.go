package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusQueued = "queued"
	OutboxStatusSent   = "sent"
	OutboxStatusFailed = "failed"
)

const (
	MessageTypeReminder = "reminder"
	MessageTypeNotice   = "notice"
	MessageTypeFreeform = "freeform"
)

type OutboxItem struct {
	Id             uuid.UUID
	TenantId       uuid.UUID
	ContactId      uuid.UUID
	MessageType    string
	Payload        map[string]any
	Status         string
	Attempts       int
	LastError      *string
	IdempotencyKey string
	CreatedAt      time.Time
	SentAt         *time.Time
}
