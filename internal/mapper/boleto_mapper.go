package mapper

import (
	"time"

	"ai-billing-be/internal/entity"
	"ai-billing-be/internal/model"
)

type BoletoMapper struct{}

func NewBoletoMapper() *BoletoMapper {
	return &BoletoMapper{}
}

func (m *BoletoMapper) ToEntity(b *model.Boleto) *entity.Boleto {
	if b == nil {
		return nil
	}

	var updatedAt *time.Time
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		updatedAt = &t
	}

	return &entity.Boleto{
		Id:                b.Id,
		TenantId:          b.TenantId,
		ContactId:         b.ContactId,
		AmountCents:       b.AmountCents,
		DueDate:           b.DueDate,
		Status:            b.Status,
		IdempotencyKey:    b.IdempotencyKey,
		ProviderReference: b.ProviderReference,
		CancelReason:      b.CancelReason,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *BoletoMapper) ToModel(b *entity.Boleto) *model.Boleto {
	if b == nil {
		return nil
	}

	var updatedAt time.Time
	if b.UpdatedAt != nil {
		updatedAt = *b.UpdatedAt
	}

	return &model.Boleto{
		Id:                b.Id,
		TenantId:          b.TenantId,
		ContactId:         b.ContactId,
		AmountCents:       b.AmountCents,
		DueDate:           b.DueDate,
		Status:            b.Status,
		IdempotencyKey:    b.IdempotencyKey,
		ProviderReference: b.ProviderReference,
		CancelReason:      b.CancelReason,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *BoletoMapper) ToEntities(boletos []*model.Boleto) []*entity.Boleto {
	entities := make([]*entity.Boleto, len(boletos))
	for i, b := range boletos {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
