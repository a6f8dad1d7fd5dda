package contract

import (
	"context"

	"ai-billing-be/internal/entity"
	"ai-billing-be/internal/repository/specification"
)

type BoletoRepository interface {
	Create(ctx context.Context, boleto *entity.Boleto) error
	Update(ctx context.Context, boleto *entity.Boleto) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Boleto, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Boleto, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
