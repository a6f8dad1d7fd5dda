package assistant

import (
	"context"

	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/assistant/state"
	"ai-billing-be/pkg/llm"
)

// extractNode pulls structured entities out of the message. Extraction
// never halts the run: on provider failure it hands an empty bag to the
// validation gate, which asks the user for what is missing.
type extractNode struct {
	provider llm.Provider
	log      logger.ILogger
}

func (n *extractNode) Name() string { return "extract_entities" }

func (n *extractNode) Run(ctx context.Context, s state.State) state.State {
	if s.Intent == "" {
		return s
	}
	if s.ShouldStop() {
		return s
	}

	n.log.Info("assistant.extract", "extracting entities", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"intent":          string(s.Intent),
	})

	normalized := ""
	if s.NormalizedInput != nil {
		normalized = *s.NormalizedInput
	}

	result, err := n.provider.ExtractEntities(ctx, normalized, string(s.Intent))
	if err != nil {
		n.log.Warn("assistant.extract", "provider error", map[string]interface{}{
			"conversation_id": s.ConversationId,
			"correlation_id":  s.CorrelationId,
			"error":           err.Error(),
		})
		return s.Apply(state.SetEntities(state.Entities{}))
	}

	entities := state.Entities{
		ContactName:    result.ContactName,
		ContactPhone:   result.ContactPhone,
		AmountCents:    result.AmountCents,
		DueDate:        result.DueDate,
		BoletoId:       result.BoletoId,
		MessageContent: result.MessageContent,
		Raw:            map[string]any{"llm_extracted": true},
	}

	n.log.Info("assistant.extract", "entities extracted", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"has_contact":     entities.ContactName != nil,
		"has_amount":      entities.AmountCents != nil,
		"has_date":        entities.DueDate != nil,
	})

	return s.Apply(state.SetEntities(entities))
}
