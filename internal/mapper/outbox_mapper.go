package mapper

import (
	"encoding/json"

	"ai-billing-be/internal/entity"
	"ai-billing-be/internal/model"

	"gorm.io/datatypes"
)

type OutboxMapper struct{}

func NewOutboxMapper() *OutboxMapper {
	return &OutboxMapper{}
}

func (m *OutboxMapper) ToEntity(o *model.OutboxItem) *entity.OutboxItem {
	if o == nil {
		return nil
	}

	var payload map[string]any
	if len(o.Payload) > 0 {
		// Malformed rows decode to an empty payload rather than failing
		// the read.
		_ = json.Unmarshal(o.Payload, &payload)
	}

	return &entity.OutboxItem{
		Id:             o.Id,
		TenantId:       o.TenantId,
		ContactId:      o.ContactId,
		MessageType:    o.MessageType,
		Payload:        payload,
		Status:         o.Status,
		Attempts:       o.Attempts,
		LastError:      o.LastError,
		IdempotencyKey: o.IdempotencyKey,
		CreatedAt:      o.CreatedAt,
		SentAt:         o.SentAt,
	}
}

func (m *OutboxMapper) ToModel(o *entity.OutboxItem) *model.OutboxItem {
	if o == nil {
		return nil
	}

	var payload datatypes.JSON
	if o.Payload != nil {
		raw, err := json.Marshal(o.Payload)
		if err == nil {
			payload = datatypes.JSON(raw)
		}
	}

	return &model.OutboxItem{
		Id:             o.Id,
		TenantId:       o.TenantId,
		ContactId:      o.ContactId,
		MessageType:    o.MessageType,
		Payload:        payload,
		Status:         o.Status,
		Attempts:       o.Attempts,
		LastError:      o.LastError,
		IdempotencyKey: o.IdempotencyKey,
		CreatedAt:      o.CreatedAt,
		SentAt:         o.SentAt,
	}
}

func (m *OutboxMapper) ToEntities(items []*model.OutboxItem) []*entity.OutboxItem {
	entities := make([]*entity.OutboxItem, len(items))
	for i, o := range items {
		entities[i] = m.ToEntity(o)
	}
	return entities
}
