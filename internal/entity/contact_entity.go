package entity

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	Id        uuid.UUID
	TenantId  uuid.UUID
	Name      string
	Phone     *string
	Email     *string
	OptedOut  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
