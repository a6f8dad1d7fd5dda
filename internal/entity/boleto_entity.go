package entity

import (
	"time"

	"github.com/google/uuid"
)

// Boleto lifecycle. Overdue is derived at read time when a non-terminal
// boleto passes its due date; paid and cancelled are terminal.
const (
	BoletoStatusCreated   = "created"
	BoletoStatusSent      = "sent"
	BoletoStatusPaid      = "paid"
	BoletoStatusOverdue   = "overdue"
	BoletoStatusCancelled = "cancelled"
)

type Boleto struct {
	Id                uuid.UUID
	TenantId          uuid.UUID
	ContactId         uuid.UUID
	AmountCents       int64
	DueDate           time.Time
	Status            string
	IdempotencyKey    string
	ProviderReference *string
	CancelReason      *string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// EffectiveStatus reports the display status, deriving overdue for
// past-due boletos that were never paid or cancelled.
func (b *Boleto) EffectiveStatus(now time.Time) string {
	if b.Status == BoletoStatusCreated || b.Status == BoletoStatusSent {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if b.DueDate.Before(today) {
			return BoletoStatusOverdue
		}
	}
	return b.Status
}
