package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StubProvider fakes boleto registration for local development and
// tests. References are unique and cancellation always succeeds.
type StubProvider struct{}

var _ Provider = &StubProvider{}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (p *StubProvider) RegisterBoleto(ctx context.Context, amountCents int64, dueDate time.Time, payerName string) (*Registration, error) {
	ref := fmt.Sprintf("stub-%s", uuid.NewString())
	return &Registration{
		Reference: ref,
		Barcode:   fmt.Sprintf("23790.00000 %011d", amountCents%100000000000),
		IssuedAt:  time.Now(),
	}, nil
}

func (p *StubProvider) CancelBoleto(ctx context.Context, reference string) error {
	return nil
}
