package tool

import (
	"context"

	"ai-billing-be/internal/dto"

	"github.com/google/uuid"
)

// MessageQueuer is the use-case slice the send tool depends on.
type MessageQueuer interface {
	QueueMessage(ctx context.Context, req *dto.QueueMessageRequest) (*dto.OutboxItemResponse, error)
}

// QueueMessageTool appends a freeform message to the delivery outbox.
// Queueing is not a monetary mutation, so no confirmation is required.
type QueueMessageTool struct {
	messaging MessageQueuer
	contacts  ContactResolver
}

var _ Tool = &QueueMessageTool{}

func NewQueueMessageTool(messaging MessageQueuer, contacts ContactResolver) *QueueMessageTool {
	return &QueueMessageTool{messaging: messaging, contacts: contacts}
}

func (t *QueueMessageTool) Name() string { return "queue_message" }

func (t *QueueMessageTool) RequiresConfirmation() bool { return false }

func (t *QueueMessageTool) ValidateInput(in Input) []string {
	var errs []string
	if in.TenantId == "" {
		errs = append(errs, "tenant_id is required")
	}
	if in.Entities.ContactName == nil {
		errs = append(errs, "contact_name is required")
	}
	if in.Entities.MessageContent == nil || *in.Entities.MessageContent == "" {
		errs = append(errs, "message_content is required")
	}
	return errs
}

func (t *QueueMessageTool) Execute(ctx context.Context, in Input) Result {
	if errs := t.ValidateInput(in); len(errs) > 0 {
		return Fail(joinErrors(errs))
	}

	tenantId, err := uuid.Parse(in.TenantId)
	if err != nil {
		return Fail("tenant_id is not a valid id")
	}

	contact, err := t.contacts.ResolveByName(ctx, tenantId, *in.Entities.ContactName, in.Entities.ContactPhone)
	if err != nil {
		return Fail(err.Error())
	}

	item, err := t.messaging.QueueMessage(ctx, &dto.QueueMessageRequest{
		TenantId:       tenantId,
		ContactId:      contact.Id,
		MessageType:    "freeform",
		Content:        *in.Entities.MessageContent,
		IdempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		return Fail(err.Error())
	}

	return Ok(map[string]any{
		"message_id": item.Id.String(),
		"status":     "queued",
	})
}
