package assistant

import (
	"context"
	"fmt"

	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/assistant/state"
)

// respondNode turns the tool outcome into the user-facing message. It
// is pure formatting and always succeeds. A response set by an earlier
// node is kept untouched.
type respondNode struct {
	log logger.ILogger
}

func (n *respondNode) Name() string { return "generate_response" }

func (n *respondNode) Run(ctx context.Context, s state.State) state.State {
	if s.Response != nil {
		return s
	}

	if s.ToolError != nil {
		return s.Apply(state.SetResponse(
			fmt.Sprintf("Não foi possível completar a operação: %s", *s.ToolError),
		))
	}

	if s.ToolResult == nil {
		return s.Apply(state.SetResponse("Operação concluída."))
	}

	n.log.Info("assistant.respond", "formatting response", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"tool":            s.ToolName,
	})

	return s.Apply(state.SetResponse(formatToolResponse(s)))
}
