package tool

import (
	"context"

	"ai-billing-be/internal/dto"

	"github.com/google/uuid"
)

// BoletoReader is the use-case slice the read-only tools depend on.
type BoletoReader interface {
	GetBoleto(ctx context.Context, tenantId, boletoId uuid.UUID) (*dto.BoletoResponse, error)
	ListBoletos(ctx context.Context, tenantId uuid.UUID) (*dto.ListBoletosResponse, error)
}

// BoletoStatusTool looks up the current status of a boleto. Read-only,
// dispatched without confirmation.
type BoletoStatusTool struct {
	billing BoletoReader
}

var _ Tool = &BoletoStatusTool{}

func NewBoletoStatusTool(billing BoletoReader) *BoletoStatusTool {
	return &BoletoStatusTool{billing: billing}
}

func (t *BoletoStatusTool) Name() string { return "boleto_status" }

func (t *BoletoStatusTool) RequiresConfirmation() bool { return false }

func (t *BoletoStatusTool) ValidateInput(in Input) []string {
	var errs []string
	if in.TenantId == "" {
		errs = append(errs, "tenant_id is required")
	}
	if in.Entities.BoletoId == nil || *in.Entities.BoletoId == "" {
		errs = append(errs, "boleto_id is required")
	}
	return errs
}

func (t *BoletoStatusTool) Execute(ctx context.Context, in Input) Result {
	if errs := t.ValidateInput(in); len(errs) > 0 {
		return Fail(joinErrors(errs))
	}

	tenantId, err := uuid.Parse(in.TenantId)
	if err != nil {
		return Fail("tenant_id is not a valid id")
	}
	boletoId, err := uuid.Parse(*in.Entities.BoletoId)
	if err != nil {
		return Fail("boleto_id is not a valid id")
	}

	boleto, err := t.billing.GetBoleto(ctx, tenantId, boletoId)
	if err != nil {
		return Fail(err.Error())
	}

	return Ok(map[string]any{
		"boleto_id": boleto.Id.String(),
		"status":    boleto.Status,
	})
}
