package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-billing-be/internal/dto"
	"ai-billing-be/internal/entity"
	"ai-billing-be/internal/pkg/mailer"
	"ai-billing-be/internal/repository/specification"
	"ai-billing-be/internal/repository/unitofwork"
	"ai-billing-be/pkg/events"
	pktNats "ai-billing-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.OutboxQueuedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal outbox message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.OutboxRepository().FindOne(ctx, specification.ByID{ID: payload.OutboxItemId})
	if err != nil {
		log.Printf("[ERROR] Failed to load outbox item %s: %v", payload.OutboxItemId, err)
		msg.Nack()
		return
	}
	if item == nil {
		log.Printf("[ERROR] Outbox item not found: %s", payload.OutboxItemId)
		msg.Ack()
		return
	}
	if item.Status != entity.OutboxStatusQueued {
		// Already processed by a previous delivery attempt.
		msg.Ack()
		return
	}

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: item.ContactId},
		specification.ByTenantID{TenantID: item.TenantId},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to load contact %s: %v", item.ContactId, err)
		msg.Nack()
		return
	}

	sendErr := cs.deliver(item, contact)

	item.Attempts++
	now := time.Now()
	if sendErr != nil {
		errMsg := sendErr.Error()
		item.Status = entity.OutboxStatusFailed
		item.LastError = &errMsg
		cs.publishEvent(ctx, events.TypeMessageFailed, item)
	} else {
		item.Status = entity.OutboxStatusSent
		item.SentAt = &now
		item.LastError = nil
		cs.markBoletoSent(ctx, uow, item)
		cs.publishEvent(ctx, events.TypeMessageSent, item)
	}

	if err := uow.OutboxRepository().Update(ctx, item); err != nil {
		log.Printf("[ERROR] Failed to update outbox item %s: %v", item.Id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *consumerService) deliver(item *entity.OutboxItem, contact *entity.Contact) error {
	if contact == nil {
		return fmt.Errorf("contato não encontrado")
	}
	if contact.OptedOut {
		return fmt.Errorf("contato optou por não receber mensagens")
	}
	if contact.Email == nil || *contact.Email == "" {
		return fmt.Errorf("contato sem email cadastrado")
	}

	switch item.MessageType {
	case entity.MessageTypeNotice, entity.MessageTypeReminder:
		amount := int64(0)
		if v, ok := item.Payload["amount_cents"].(float64); ok {
			amount = int64(v)
		}
		dueDate, _ := item.Payload["due_date"].(string)
		barcode, _ := item.Payload["barcode"].(string)
		return cs.emailService.SendBoletoNotice(
			*contact.Email,
			contact.Name,
			formatAmountBRL(amount),
			formatDateBR(dueDate),
			barcode,
		)
	default:
		content, _ := item.Payload["content"].(string)
		return cs.emailService.SendFreeform(*contact.Email, contact.Name, content)
	}
}

// markBoletoSent moves a boleto from created to sent once its notice
// reached the contact. Other statuses are left alone.
func (cs *consumerService) markBoletoSent(ctx context.Context, uow unitofwork.UnitOfWork, item *entity.OutboxItem) {
	if item.MessageType != entity.MessageTypeNotice {
		return
	}
	raw, _ := item.Payload["boleto_id"].(string)
	boletoId, err := uuid.Parse(raw)
	if err != nil {
		return
	}

	boleto, err := uow.BoletoRepository().FindOne(ctx,
		specification.ByID{ID: boletoId},
		specification.ByTenantID{TenantID: item.TenantId},
	)
	if err != nil || boleto == nil {
		return
	}
	if boleto.Status != entity.BoletoStatusCreated {
		return
	}

	boleto.Status = entity.BoletoStatusSent
	if err := uow.BoletoRepository().Update(ctx, boleto); err != nil {
		log.Printf("[WARN] Failed to mark boleto %s as sent: %v", boleto.Id, err)
	}
}

func (cs *consumerService) publishEvent(ctx context.Context, eventType string, item *entity.OutboxItem) {
	if cs.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"outbox_item_id": item.Id,
			"tenant_id":      item.TenantId,
			"message_type":   item.MessageType,
			"attempts":       item.Attempts,
		},
		OccurredAt: time.Now(),
	}
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}

func formatAmountBRL(amountCents int64) string {
	reais := amountCents / 100
	cents := amountCents % 100
	if cents < 0 {
		cents = -cents
	}
	return fmt.Sprintf("R$ %d,%02d", reais, cents)
}

func formatDateBR(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02/01/2006")
}
