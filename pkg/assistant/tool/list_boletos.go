package tool

import (
	"context"

	"github.com/google/uuid"
)

// ListBoletosTool lists the tenant's boletos. Read-only, dispatched
// without confirmation.
type ListBoletosTool struct {
	billing BoletoReader
}

var _ Tool = &ListBoletosTool{}

func NewListBoletosTool(billing BoletoReader) *ListBoletosTool {
	return &ListBoletosTool{billing: billing}
}

func (t *ListBoletosTool) Name() string { return "list_boletos" }

func (t *ListBoletosTool) RequiresConfirmation() bool { return false }

func (t *ListBoletosTool) ValidateInput(in Input) []string {
	var errs []string
	if in.TenantId == "" {
		errs = append(errs, "tenant_id is required")
	}
	return errs
}

func (t *ListBoletosTool) Execute(ctx context.Context, in Input) Result {
	if errs := t.ValidateInput(in); len(errs) > 0 {
		return Fail(joinErrors(errs))
	}

	tenantId, err := uuid.Parse(in.TenantId)
	if err != nil {
		return Fail("tenant_id is not a valid id")
	}

	list, err := t.billing.ListBoletos(ctx, tenantId)
	if err != nil {
		return Fail(err.Error())
	}

	boletos := make([]map[string]any, 0, len(list.Boletos))
	for _, b := range list.Boletos {
		boletos = append(boletos, map[string]any{
			"boleto_id":    b.Id.String(),
			"status":       b.Status,
			"amount_cents": b.AmountCents,
			"due_date":     b.DueDate,
		})
	}

	return Ok(map[string]any{
		"boletos": boletos,
		"count":   list.Count,
	})
}
