package payment

import (
	"context"
	"time"
)

// Registration is the provider-side record of an issued boleto.
type Registration struct {
	Reference string
	Barcode   string
	IssuedAt  time.Time
}

// Provider is the outbound port to the boleto issuer. The rest of the
// system only ever talks to it through this interface.
type Provider interface {
	RegisterBoleto(ctx context.Context, amountCents int64, dueDate time.Time, payerName string) (*Registration, error)
	CancelBoleto(ctx context.Context, reference string) error
}
