package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBoletoRequest struct {
	TenantId       uuid.UUID `json:"tenant_id" validate:"required"`
	ContactId      uuid.UUID `json:"contact_id" validate:"required"`
	AmountCents    int64     `json:"amount_cents" validate:"required,gt=0"`
	DueDate        string    `json:"due_date" validate:"required"`
	IdempotencyKey string    `json:"idempotency_key" validate:"required"`
	// Confirmed must be true; the use case refuses unconfirmed monetary
	// mutations regardless of the caller.
	Confirmed bool `json:"confirmed"`
}

type CancelBoletoRequest struct {
	TenantId  uuid.UUID `json:"tenant_id" validate:"required"`
	BoletoId  uuid.UUID `json:"boleto_id" validate:"required"`
	Reason    *string   `json:"reason,omitempty"`
	Confirmed bool      `json:"confirmed"`
}

type BoletoResponse struct {
	Id                uuid.UUID  `json:"id"`
	TenantId          uuid.UUID  `json:"tenant_id"`
	ContactId         uuid.UUID  `json:"contact_id"`
	AmountCents       int64      `json:"amount_cents"`
	DueDate           string     `json:"due_date"`
	Status            string     `json:"status"`
	ProviderReference *string    `json:"provider_reference,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

type ListBoletosResponse struct {
	Boletos []*BoletoResponse `json:"boletos"`
	Count   int64             `json:"count"`
}
