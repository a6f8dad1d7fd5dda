package implementation

import (
	"context"
	"errors"

	"ai-billing-be/internal/entity"
	"ai-billing-be/internal/mapper"
	"ai-billing-be/internal/model"
	"ai-billing-be/internal/repository/contract"
	"ai-billing-be/internal/repository/specification"

	"gorm.io/gorm"
)

type OutboxRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OutboxMapper
}

func NewOutboxRepository(db *gorm.DB) contract.OutboxRepository {
	return &OutboxRepositoryImpl{
		db:     db,
		mapper: mapper.NewOutboxMapper(),
	}
}

func (r *OutboxRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OutboxRepositoryImpl) Create(ctx context.Context, item *entity.OutboxItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *OutboxRepositoryImpl) Update(ctx context.Context, item *entity.OutboxItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *OutboxRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OutboxItem, error) {
	var m model.OutboxItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OutboxRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OutboxItem, error) {
	var models []*model.OutboxItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *OutboxRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.OutboxItem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
