package assistant

import (
	"context"
	"strings"

	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/assistant/state"
)

// normalizeNode lowercases and trims the raw input. Empty input halts
// the run with a retry prompt.
type normalizeNode struct {
	log logger.ILogger
}

func (n *normalizeNode) Name() string { return "normalize_input" }

func (n *normalizeNode) Run(ctx context.Context, s state.State) state.State {
	n.log.Info("assistant.normalize", "normalizing input", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"input_kind":      s.InputKind,
	})

	trimmed := strings.TrimSpace(s.UserInput)
	if trimmed == "" {
		return s.Apply(
			state.ClearNormalizedInput(),
			state.SetResponse("Não entendi sua mensagem. Pode repetir?"),
		)
	}

	normalized := strings.ToLower(trimmed)

	n.log.Debug("assistant.normalize", "input normalized", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"length":          len(normalized),
	})

	return s.Apply(state.SetNormalizedInput(normalized))
}
