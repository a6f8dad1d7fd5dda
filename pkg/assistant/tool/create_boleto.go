package tool

import (
	"context"

	"ai-billing-be/internal/dto"

	"github.com/google/uuid"
)

// BoletoCreator is the use-case slice the create tool depends on.
type BoletoCreator interface {
	CreateBoleto(ctx context.Context, req *dto.CreateBoletoRequest) (*dto.BoletoResponse, error)
}

// ContactResolver resolves a contact by display name within a tenant,
// registering it when unknown, so the assistant can bill people the
// tenant has only ever referred to by name.
type ContactResolver interface {
	ResolveByName(ctx context.Context, tenantId uuid.UUID, name string, phone *string) (*dto.ContactResponse, error)
}

// CreateBoletoTool creates a boleto for a named contact. Requires the
// explicit confirmation round-trip before the pipeline will dispatch it.
type CreateBoletoTool struct {
	billing  BoletoCreator
	contacts ContactResolver
}

var _ Tool = &CreateBoletoTool{}

func NewCreateBoletoTool(billing BoletoCreator, contacts ContactResolver) *CreateBoletoTool {
	return &CreateBoletoTool{billing: billing, contacts: contacts}
}

func (t *CreateBoletoTool) Name() string { return "create_boleto" }

func (t *CreateBoletoTool) RequiresConfirmation() bool { return true }

func (t *CreateBoletoTool) ValidateInput(in Input) []string {
	var errs []string
	if in.TenantId == "" {
		errs = append(errs, "tenant_id is required")
	}
	if in.Entities.ContactName == nil {
		errs = append(errs, "contact_name is required")
	}
	if in.Entities.AmountCents == nil {
		errs = append(errs, "amount_cents is required")
	} else if *in.Entities.AmountCents <= 0 {
		errs = append(errs, "amount must be positive")
	}
	if in.Entities.DueDate == nil {
		errs = append(errs, "due_date is required")
	}
	if in.IdempotencyKey == "" {
		errs = append(errs, "idempotency_key is required")
	}
	return errs
}

func (t *CreateBoletoTool) Execute(ctx context.Context, in Input) Result {
	if errs := t.ValidateInput(in); len(errs) > 0 {
		return Fail(joinErrors(errs))
	}

	tenantId, err := uuid.Parse(in.TenantId)
	if err != nil {
		return Fail("tenant_id is not a valid id")
	}

	contact, err := t.contacts.ResolveByName(ctx, tenantId, *in.Entities.ContactName, in.Entities.ContactPhone)
	if err != nil {
		return Fail(err.Error())
	}

	boleto, err := t.billing.CreateBoleto(ctx, &dto.CreateBoletoRequest{
		TenantId:       tenantId,
		ContactId:      contact.Id,
		AmountCents:    *in.Entities.AmountCents,
		DueDate:        *in.Entities.DueDate,
		IdempotencyKey: in.IdempotencyKey,
		Confirmed:      true,
	})
	if err != nil {
		return Fail(err.Error())
	}

	data := map[string]any{
		"boleto_id":    boleto.Id.String(),
		"status":       boleto.Status,
		"amount_cents": boleto.AmountCents,
		"due_date":     boleto.DueDate,
		"contact_name": contact.Name,
	}
	if boleto.ProviderReference != nil {
		data["provider_reference"] = *boleto.ProviderReference
	}
	return Ok(data)
}
