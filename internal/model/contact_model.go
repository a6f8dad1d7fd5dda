package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contact struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId  uuid.UUID      `gorm:"type:uuid;not null;index:idx_contacts_tenant_name"`
	Name      string         `gorm:"type:varchar(255);not null;index:idx_contacts_tenant_name"`
	Phone     *string        `gorm:"type:varchar(32)"`
	Email     *string        `gorm:"type:varchar(255)"`
	OptedOut  bool           `gorm:"not null;default:false"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Contact) TableName() string {
	return "contacts"
}
