package assistant

import (
	"context"
	"fmt"

	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/assistant/state"
	"ai-billing-be/pkg/assistant/tool"
)

// executeNode dispatches the registered tool for the intent. The
// preconditions are re-checked here from the state itself; the node
// never trusts that earlier gates ran.
type executeNode struct {
	registry *tool.Registry
	log      logger.ILogger
}

func (n *executeNode) Name() string { return "execute_tool" }

func (n *executeNode) Run(ctx context.Context, s state.State) state.State {
	if s.ValidationResult != state.ValidationPass {
		n.log.Warn("assistant.execute", "blocked by validation", map[string]interface{}{
			"conversation_id": s.ConversationId,
			"correlation_id":  s.CorrelationId,
		})
		return s
	}
	if s.ShouldStop() {
		return s
	}
	if s.Intent == "" {
		return s
	}
	if s.Intent.RequiresConfirmation() && s.ConfirmationStatus != state.ConfirmationConfirmed {
		return s
	}

	t, ok := n.registry.Resolve(s.Intent)
	if !ok {
		return s
	}

	n.log.Info("assistant.execute", "dispatching tool", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"intent":          string(s.Intent),
		"tool":            t.Name(),
	})

	result := n.run(ctx, t, tool.Input{
		TenantId:       s.TenantId,
		UserId:         s.UserId,
		ConversationId: s.ConversationId,
		IdempotencyKey: fmt.Sprintf("%s:%s", s.ConversationId, s.CorrelationId),
		Entities:       s.Entities,
	})

	if !result.Success {
		n.log.Error("assistant.execute", "tool failed", map[string]interface{}{
			"conversation_id": s.ConversationId,
			"correlation_id":  s.CorrelationId,
			"tool":            t.Name(),
			"error":           result.Error,
		})
		return s.Apply(
			state.SetToolError(result.Error),
			state.SetResponse(fmt.Sprintf("Ocorreu um erro: %s", result.Error)),
		)
	}

	n.log.Info("assistant.execute", "tool succeeded", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"tool":            t.Name(),
	})

	return s.Apply(state.SetToolOutcome(t.Name(), result.Data))
}

// run guards against panicking tools; a panic becomes a failed result
// instead of killing the request.
func (n *executeNode) run(ctx context.Context, t tool.Tool, in tool.Input) (result tool.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = tool.Fail(fmt.Sprintf("%v", r))
		}
	}()
	return t.Execute(ctx, in)
}
