package contract

import (
	"context"

	"ai-billing-be/internal/entity"
	"ai-billing-be/internal/repository/specification"
)

type OutboxRepository interface {
	Create(ctx context.Context, item *entity.OutboxItem) error
	Update(ctx context.Context, item *entity.OutboxItem) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OutboxItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OutboxItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
