package assistant

import (
	"context"
	"strings"

	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/assistant/state"
)

var rejectionWords = []string{"não", "nao", "cancela", "cancelar", "pare"}

// confirmNode gates monetary intents behind an explicit confirmation
// round-trip. Keywords in the original message never authorize
// execution; only the confirm endpoint flips the status to confirmed.
type confirmNode struct {
	log logger.ILogger
}

func (n *confirmNode) Name() string { return "check_confirmation" }

func (n *confirmNode) Run(ctx context.Context, s state.State) state.State {
	if s.ValidationResult != state.ValidationPass {
		return s
	}
	if s.ShouldStop() {
		return s
	}
	if s.Intent == "" {
		return s
	}

	if !s.Intent.RequiresConfirmation() {
		n.log.Info("assistant.confirm", "confirmation not required", map[string]interface{}{
			"conversation_id": s.ConversationId,
			"correlation_id":  s.CorrelationId,
			"intent":          string(s.Intent),
		})
		return s.Apply(state.SetConfirmationStatus(state.ConfirmationNotRequired))
	}

	// A confirmed status set by the confirm endpoint survives the gate.
	if s.ConfirmationStatus == state.ConfirmationConfirmed {
		return s
	}

	normalized := ""
	if s.NormalizedInput != nil {
		normalized = strings.ToLower(*s.NormalizedInput)
	}

	for _, word := range rejectionWords {
		if strings.Contains(normalized, word) {
			n.log.Info("assistant.confirm", "confirmation rejected", map[string]interface{}{
				"conversation_id": s.ConversationId,
				"correlation_id":  s.CorrelationId,
			})
			return s.Apply(
				state.SetConfirmationStatus(state.ConfirmationRejected),
				state.SetResponse("Operação cancelada."),
			)
		}
	}

	msg := confirmationMessage(s)

	n.log.Info("assistant.confirm", "confirmation pending", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"intent":          string(s.Intent),
	})

	return s.Apply(
		state.SetConfirmationStatus(state.ConfirmationPending),
		state.SetConfirmationMessage(msg),
		state.SetResponse(msg),
	)
}
