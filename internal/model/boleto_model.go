package model

import (
	"time"

	"github.com/google/uuid"
)

type Boleto struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId          uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_boletos_tenant_idem"`
	ContactId         uuid.UUID `gorm:"type:uuid;not null;index"`
	AmountCents       int64     `gorm:"not null"`
	DueDate           time.Time `gorm:"type:date;not null"`
	Status            string    `gorm:"type:varchar(32);not null;index"`
	IdempotencyKey    string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_boletos_tenant_idem"`
	ProviderReference *string   `gorm:"type:varchar(255)"`
	CancelReason      *string   `gorm:"type:varchar(255)"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Boleto) TableName() string {
	return "boletos"
}
