package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-billing-be/internal/dto"
	"ai-billing-be/internal/entity"
	"ai-billing-be/internal/repository/specification"
	"ai-billing-be/internal/repository/unitofwork"
	"ai-billing-be/pkg/events"
	pktNats "ai-billing-be/pkg/nats"

	"github.com/google/uuid"
)

type IMessagingService interface {
	QueueMessage(ctx context.Context, req *dto.QueueMessageRequest) (*dto.OutboxItemResponse, error)
	ListOutbox(ctx context.Context, tenantId uuid.UUID) ([]*dto.OutboxItemResponse, error)
}

type messagingService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewMessagingService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IMessagingService {
	return &messagingService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

// QueueMessage persists an outbox item and hands it to the background
// consumer. Delivery is asynchronous; queueing succeeds even when the
// downstream channel is slow.
func (m *messagingService) QueueMessage(ctx context.Context, req *dto.QueueMessageRequest) (*dto.OutboxItemResponse, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)

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
	if contact.OptedOut {
		return nil, ErrContactOptedOut
	}

	// Retried turns reuse the already queued item.
	existing, err := uow.OutboxRepository().FindOne(ctx,
		specification.ByTenantID{TenantID: req.TenantId},
		specification.ByIdempotencyKey{Key: req.IdempotencyKey},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return toOutboxItemResponse(existing), nil
	}

	item := entity.OutboxItem{
		Id:          uuid.New(),
		TenantId:    req.TenantId,
		ContactId:   req.ContactId,
		MessageType: req.MessageType,
		Payload: map[string]any{
			"content": req.Content,
		},
		Status:         entity.OutboxStatusQueued,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      time.Now(),
	}

	if err := uow.OutboxRepository().Create(ctx, &item); err != nil {
		return nil, err
	}

	msgPayload := dto.OutboxQueuedMessage{
		OutboxItemId: item.Id,
		TenantId:     item.TenantId,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := m.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	if m.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeMessageQueued,
			Data: map[string]interface{}{
				"outbox_item_id": item.Id,
				"tenant_id":      item.TenantId,
				"message_type":   item.MessageType,
			},
			OccurredAt: time.Now(),
		}
		// Auxiliary, not worth failing the request over.
		if err := m.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish MESSAGE_QUEUED event: %v\n", err)
		}
	}

	return toOutboxItemResponse(&item), nil
}

func (m *messagingService) ListOutbox(ctx context.Context, tenantId uuid.UUID) ([]*dto.OutboxItemResponse, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)

	items, err := uow.OutboxRepository().FindAll(ctx,
		specification.ByTenantID{TenantID: tenantId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.OutboxItemResponse, len(items))
	for i, item := range items {
		res[i] = toOutboxItemResponse(item)
	}
	return res, nil
}

func toOutboxItemResponse(item *entity.OutboxItem) *dto.OutboxItemResponse {
	return &dto.OutboxItemResponse{
		Id:          item.Id,
		TenantId:    item.TenantId,
		ContactId:   item.ContactId,
		MessageType: item.MessageType,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
		SentAt:      item.SentAt,
	}
}
