package tool

import (
	"context"

	"ai-billing-be/internal/dto"

	"github.com/google/uuid"
)

// BoletoCanceller is the use-case slice the cancel tool depends on.
type BoletoCanceller interface {
	CancelBoleto(ctx context.Context, req *dto.CancelBoletoRequest) (*dto.BoletoResponse, error)
}

// CancelBoletoTool cancels an existing boleto by id. Requires the
// explicit confirmation round-trip before the pipeline will dispatch it.
type CancelBoletoTool struct {
	billing BoletoCanceller
}

var _ Tool = &CancelBoletoTool{}

func NewCancelBoletoTool(billing BoletoCanceller) *CancelBoletoTool {
	return &CancelBoletoTool{billing: billing}
}

func (t *CancelBoletoTool) Name() string { return "cancel_boleto" }

func (t *CancelBoletoTool) RequiresConfirmation() bool { return true }

func (t *CancelBoletoTool) ValidateInput(in Input) []string {
	var errs []string
	if in.TenantId == "" {
		errs = append(errs, "tenant_id is required")
	}
	if in.Entities.BoletoId == nil || *in.Entities.BoletoId == "" {
		errs = append(errs, "boleto_id is required")
	}
	return errs
}

func (t *CancelBoletoTool) Execute(ctx context.Context, in Input) Result {
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

	reason := "cancelled via assistant"
	boleto, err := t.billing.CancelBoleto(ctx, &dto.CancelBoletoRequest{
		TenantId:  tenantId,
		BoletoId:  boletoId,
		Reason:    &reason,
		Confirmed: true,
	})
	if err != nil {
		return Fail(err.Error())
	}

	return Ok(map[string]any{
		"boleto_id": boleto.Id.String(),
		"status":    boleto.Status,
	})
}
