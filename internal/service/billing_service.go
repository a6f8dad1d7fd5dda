package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-billing-be/internal/dto"
	"ai-billing-be/internal/entity"
	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/internal/repository/specification"
	"ai-billing-be/internal/repository/unitofwork"
	"ai-billing-be/pkg/events"
	pktNats "ai-billing-be/pkg/nats"
	"ai-billing-be/pkg/payment"

	"github.com/google/uuid"
)

type IBillingService interface {
	CreateBoleto(ctx context.Context, req *dto.CreateBoletoRequest) (*dto.BoletoResponse, error)
	CancelBoleto(ctx context.Context, req *dto.CancelBoletoRequest) (*dto.BoletoResponse, error)
	GetBoleto(ctx context.Context, tenantId, boletoId uuid.UUID) (*dto.BoletoResponse, error)
	ListBoletos(ctx context.Context, tenantId uuid.UUID) (*dto.ListBoletosResponse, error)
}

type billingService struct {
	uowFactory       unitofwork.RepositoryFactory
	paymentProvider  payment.Provider
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewBillingService(
	uowFactory unitofwork.RepositoryFactory,
	paymentProvider payment.Provider,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IBillingService {
	return &billingService{
		uowFactory:       uowFactory,
		paymentProvider:  paymentProvider,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

// CreateBoleto issues a boleto for a contact. The request must carry
// Confirmed=true; the assistant's confirmation gate is re-enforced here
// so no caller can mint charges without it. Retried requests with the
// same idempotency key return the original boleto.
func (b *billingService) CreateBoleto(ctx context.Context, req *dto.CreateBoletoRequest) (*dto.BoletoResponse, error) {
	if !req.Confirmed {
		return nil, ErrNotConfirmed
	}

	uow := b.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.BoletoRepository().FindOne(ctx,
		specification.ByTenantID{TenantID: req.TenantId},
		specification.ByIdempotencyKey{Key: req.IdempotencyKey},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		b.log.Info("service.billing", "idempotent create replay", map[string]interface{}{
			"tenant_id": req.TenantId.String(),
			"boleto_id": existing.Id.String(),
		})
		return toBoletoResponse(existing), nil
	}

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: req.ContactId},
		specification.ByTenantID{TenantID: req.TenantId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}

	dueDate, err := time.ParseInLocation("2006-01-02", req.DueDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("data de vencimento inválida: %w", err)
	}

	registration, err := b.paymentProvider.RegisterBoleto(ctx, req.AmountCents, dueDate, contact.Name)
	if err != nil {
		return nil, err
	}

	boleto := entity.Boleto{
		Id:                uuid.New(),
		TenantId:          req.TenantId,
		ContactId:         req.ContactId,
		AmountCents:       req.AmountCents,
		DueDate:           dueDate,
		Status:            entity.BoletoStatusCreated,
		IdempotencyKey:    req.IdempotencyKey,
		ProviderReference: &registration.Reference,
		CreatedAt:         time.Now(),
	}

	if err := uow.BoletoRepository().Create(ctx, &boleto); err != nil {
		return nil, err
	}

	if err := b.queueBoletoNotice(ctx, uow, &boleto, contact, registration.Barcode); err != nil {
		b.log.Warn("service.billing", "failed to queue boleto notice", map[string]interface{}{
			"boleto_id": boleto.Id.String(),
			"error":     err.Error(),
		})
	}

	b.publishEvent(ctx, events.TypeBoletoCreated, map[string]interface{}{
		"boleto_id":    boleto.Id,
		"tenant_id":    boleto.TenantId,
		"amount_cents": boleto.AmountCents,
	})

	b.log.Info("service.billing", "boleto created", map[string]interface{}{
		"tenant_id": boleto.TenantId.String(),
		"boleto_id": boleto.Id.String(),
	})

	return toBoletoResponse(&boleto), nil
}

func (b *billingService) CancelBoleto(ctx context.Context, req *dto.CancelBoletoRequest) (*dto.BoletoResponse, error) {
	if !req.Confirmed {
		return nil, ErrNotConfirmed
	}

	uow := b.uowFactory.NewUnitOfWork(ctx)

	boleto, err := uow.BoletoRepository().FindOne(ctx,
		specification.ByID{ID: req.BoletoId},
		specification.ByTenantID{TenantID: req.TenantId},
	)
	if err != nil {
		return nil, err
	}
	if boleto == nil {
		return nil, ErrBoletoNotFound
	}

	switch boleto.Status {
	case entity.BoletoStatusPaid:
		return nil, ErrBoletoAlreadyPaid
	case entity.BoletoStatusCancelled:
		return nil, ErrBoletoAlreadyCancelled
	}

	if boleto.ProviderReference != nil {
		if err := b.paymentProvider.CancelBoleto(ctx, *boleto.ProviderReference); err != nil {
			return nil, err
		}
	}

	boleto.Status = entity.BoletoStatusCancelled
	boleto.CancelReason = req.Reason

	if err := uow.BoletoRepository().Update(ctx, boleto); err != nil {
		return nil, err
	}

	b.publishEvent(ctx, events.TypeBoletoCancelled, map[string]interface{}{
		"boleto_id": boleto.Id,
		"tenant_id": boleto.TenantId,
	})

	b.log.Info("service.billing", "boleto cancelled", map[string]interface{}{
		"tenant_id": boleto.TenantId.String(),
		"boleto_id": boleto.Id.String(),
	})

	return toBoletoResponse(boleto), nil
}

func (b *billingService) GetBoleto(ctx context.Context, tenantId, boletoId uuid.UUID) (*dto.BoletoResponse, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)

	boleto, err := uow.BoletoRepository().FindOne(ctx,
		specification.ByID{ID: boletoId},
		specification.ByTenantID{TenantID: tenantId},
	)
	if err != nil {
		return nil, err
	}
	if boleto == nil {
		return nil, ErrBoletoNotFound
	}

	return toBoletoResponse(boleto), nil
}

func (b *billingService) ListBoletos(ctx context.Context, tenantId uuid.UUID) (*dto.ListBoletosResponse, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)

	boletos, err := uow.BoletoRepository().FindAll(ctx,
		specification.ByTenantID{TenantID: tenantId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	count, err := uow.BoletoRepository().Count(ctx,
		specification.ByTenantID{TenantID: tenantId},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.BoletoResponse, len(boletos))
	for i, boleto := range boletos {
		res[i] = toBoletoResponse(boleto)
	}

	return &dto.ListBoletosResponse{
		Boletos: res,
		Count:   count,
	}, nil
}

func (b *billingService) queueBoletoNotice(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	boleto *entity.Boleto,
	contact *entity.Contact,
	barcode string,
) error {
	if contact.OptedOut {
		return nil
	}

	item := entity.OutboxItem{
		Id:          uuid.New(),
		TenantId:    boleto.TenantId,
		ContactId:   contact.Id,
		MessageType: entity.MessageTypeNotice,
		Payload: map[string]any{
			"boleto_id":    boleto.Id.String(),
			"amount_cents": boleto.AmountCents,
			"due_date":     boleto.DueDate.Format("2006-01-02"),
			"barcode":      barcode,
		},
		Status:         entity.OutboxStatusQueued,
		IdempotencyKey: fmt.Sprintf("notice:%s", boleto.Id),
		CreatedAt:      time.Now(),
	}

	if err := uow.OutboxRepository().Create(ctx, &item); err != nil {
		return err
	}

	msgJson, err := json.Marshal(dto.OutboxQueuedMessage{
		OutboxItemId: item.Id,
		TenantId:     item.TenantId,
	})
	if err != nil {
		return err
	}
	return b.publisherService.Publish(ctx, msgJson)
}

func (b *billingService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if b.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := b.eventPublisher.Publish(ctx, evt); err != nil {
		b.log.Warn("service.billing", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func toBoletoResponse(b *entity.Boleto) *dto.BoletoResponse {
	return &dto.BoletoResponse{
		Id:                b.Id,
		TenantId:          b.TenantId,
		ContactId:         b.ContactId,
		AmountCents:       b.AmountCents,
		DueDate:           b.DueDate.Format("2006-01-02"),
		Status:            b.EffectiveStatus(time.Now()),
		ProviderReference: b.ProviderReference,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
