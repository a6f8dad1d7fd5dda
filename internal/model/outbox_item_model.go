package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OutboxItem struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId       uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_outbox_tenant_idem"`
	ContactId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	MessageType    string         `gorm:"type:varchar(32);not null"`
	Payload        datatypes.JSON `gorm:"type:jsonb"`
	Status         string         `gorm:"type:varchar(32);not null;index"`
	Attempts       int            `gorm:"not null;default:0"`
	LastError      *string        `gorm:"type:text"`
	IdempotencyKey string         `gorm:"type:varchar(128);not null;uniqueIndex:idx_outbox_tenant_idem"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	SentAt         *time.Time
}

func (OutboxItem) TableName() string {
	return "outbox_items"
}
