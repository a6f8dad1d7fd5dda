package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserRoleOwner    = "owner"
	UserRoleOperator = "operator"
)

type User struct {
	Id           uuid.UUID
	TenantId     uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
