package assistant

import (
	"context"
	"strings"

	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/assistant/state"
	"ai-billing-be/pkg/llm"
)

const disambiguationMenu = "Não tenho certeza do que você quer fazer. Você pode:\n" +
	"- Criar um boleto\n" +
	"- Cancelar um boleto\n" +
	"- Ver status de um boleto\n" +
	"- Enviar uma mensagem\n\n" +
	"O que deseja?"

// classifyNode asks the provider for an intent and confidence. Provider
// failures and low confidence both resolve to a user-facing prompt, the
// run never errors out.
type classifyNode struct {
	provider llm.Provider
	log      logger.ILogger
}

func (n *classifyNode) Name() string { return "classify_intent" }

func (n *classifyNode) Run(ctx context.Context, s state.State) state.State {
	if s.NormalizedInput == nil {
		return s
	}
	if s.ShouldStop() {
		return s
	}

	n.log.Info("assistant.classify", "classifying intent", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
	})

	result, err := n.provider.ClassifyIntent(ctx, *s.NormalizedInput)
	if err != nil {
		n.log.Warn("assistant.classify", "provider error", map[string]interface{}{
			"conversation_id": s.ConversationId,
			"correlation_id":  s.CorrelationId,
			"error":           err.Error(),
		})
		return s.Apply(
			state.SetIntent(state.IntentUnknown, 0.0),
			state.SetResponse("Desculpe, tive um problema ao entender sua mensagem. Pode repetir?"),
		)
	}

	intent := state.ParseIntent(strings.ToLower(result.Intent))

	if result.Confidence < confidenceThreshold {
		n.log.Info("assistant.classify", "low confidence", map[string]interface{}{
			"conversation_id": s.ConversationId,
			"correlation_id":  s.CorrelationId,
			"intent":          string(intent),
			"confidence":      result.Confidence,
		})
		return s.Apply(
			state.SetIntent(state.IntentUnknown, result.Confidence),
			state.SetResponse(disambiguationMenu),
		)
	}

	n.log.Info("assistant.classify", "intent classified", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"intent":          string(intent),
		"confidence":      result.Confidence,
	})

	return s.Apply(state.SetIntent(intent, result.Confidence))
}
