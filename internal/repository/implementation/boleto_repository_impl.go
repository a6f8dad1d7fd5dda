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

type BoletoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BoletoMapper
}

func NewBoletoRepository(db *gorm.DB) contract.BoletoRepository {
	return &BoletoRepositoryImpl{
		db:     db,
		mapper: mapper.NewBoletoMapper(),
	}
}

func (r *BoletoRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BoletoRepositoryImpl) Create(ctx context.Context, boleto *entity.Boleto) error {
	m := r.mapper.ToModel(boleto)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*boleto = *r.mapper.ToEntity(m)
	return nil
}

func (r *BoletoRepositoryImpl) Update(ctx context.Context, boleto *entity.Boleto) error {
	m := r.mapper.ToModel(boleto)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*boleto = *r.mapper.ToEntity(m)
	return nil
}

func (r *BoletoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Boleto, error) {
	var m model.Boleto
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BoletoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Boleto, error) {
	var models []*model.Boleto
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BoletoRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Boleto{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
