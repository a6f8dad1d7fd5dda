package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	TenantId uuid.UUID `json:"tenant_id" validate:"required"`
	Name     string    `json:"name" validate:"required,min=2"`
	Phone    *string   `json:"phone,omitempty" validate:"omitempty,e164"`
	Email    *string   `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateContactRequest struct {
	Id    uuid.UUID `json:"-"`
	Name  *string   `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone *string   `json:"phone,omitempty" validate:"omitempty,e164"`
	Email *string   `json:"email,omitempty" validate:"omitempty,email"`
}

type ContactResponse struct {
	Id        uuid.UUID  `json:"id"`
	TenantId  uuid.UUID  `json:"tenant_id"`
	Name      string     `json:"name"`
	Phone     *string    `json:"phone,omitempty"`
	Email     *string    `json:"email,omitempty"`
	OptedOut  bool       `json:"opted_out"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
