package service

import (
	"context"

	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/events"
	pktNats "ai-billing-be/pkg/nats"
)

// AuditService consumes every domain event from the bus and writes a
// structured audit trail. Billing mutations must stay reconstructible
// from the log alone.
type AuditService struct {
	subscriber *pktNats.Subscriber
	log        logger.ILogger
}

func NewAuditService(subscriber *pktNats.Subscriber, log logger.ILogger) *AuditService {
	return &AuditService{
		subscriber: subscriber,
		log:        log,
	}
}

// Start begins listening to the event bus with a durable consumer, so
// events emitted while the process was down are replayed on restart.
func (s *AuditService) Start() {
	if s.subscriber == nil {
		s.log.Warn("service.audit", "no event bus connection, audit trail disabled", nil)
		return
	}

	if err := s.subscriber.Subscribe("events.>", "billing-audit-worker", s.handleEvent); err != nil {
		s.log.Error("service.audit", "failed to start audit subscriber", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	s.log.Info("service.audit", "audit service started, listening to events.>", nil)
}

func (s *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	details := map[string]interface{}{
		"event_type": event.EventType(),
		"occurred":   event.Timestamp(),
	}
	// Only ids and counters from the payload; contact data never reaches
	// the audit trail.
	for _, key := range []string{"boleto_id", "tenant_id", "outbox_item_id", "amount_cents", "message_type", "attempts"} {
		if v, ok := event.Payload()[key]; ok {
			details[key] = v
		}
	}

	s.log.Info("service.audit", "domain event", details)
	return nil
}
