package assistant

import (
	"context"

	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/assistant/state"
	"ai-billing-be/pkg/assistant/tool"
	"ai-billing-be/pkg/llm"

	"github.com/google/uuid"
)

// confidenceThreshold is the fixed floor below which a classification
// collapses to unknown and the user gets the disambiguation menu.
const confidenceThreshold = 0.7

// Node is a single pipeline stage. A node either acts, returning a
// successor state, or skips, returning its input unchanged.
type Node interface {
	Name() string
	Run(ctx context.Context, s state.State) state.State
}

// Pipeline runs the fixed node sequence over a conversation state. It
// holds no per-conversation data, so one instance serves all requests.
type Pipeline struct {
	nodes []Node
	log   logger.ILogger
}

func NewPipeline(provider llm.Provider, registry *tool.Registry, log logger.ILogger) *Pipeline {
	return &Pipeline{
		nodes: []Node{
			&normalizeNode{log: log},
			&classifyNode{provider: provider, log: log},
			&extractNode{provider: provider, log: log},
			&validateNode{log: log},
			&confirmNode{log: log},
			&executeNode{registry: registry, log: log},
			&respondNode{log: log},
		},
		log: log,
	}
}

// Run executes every node in order. Nodes internally skip once the stop
// predicate holds, so the sequence itself never branches.
func (p *Pipeline) Run(ctx context.Context, s state.State) state.State {
	if s.CorrelationId == "" {
		s = s.Apply(state.SetCorrelationId(uuid.NewString()[:8]))
	}

	p.log.Info("assistant.pipeline", "run started", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"input_length":    len(s.UserInput),
	})

	for _, node := range p.nodes {
		s = node.Run(ctx, s)

		p.log.Debug("assistant.pipeline", "node finished", map[string]interface{}{
			"conversation_id": s.ConversationId,
			"correlation_id":  s.CorrelationId,
			"node":            node.Name(),
			"step":            s.StepCount,
			"has_response":    s.Response != nil,
		})

		if s.ShouldStop() {
			p.log.Info("assistant.pipeline", "early stop", map[string]interface{}{
				"conversation_id": s.ConversationId,
				"correlation_id":  s.CorrelationId,
				"node":            node.Name(),
			})
			break
		}
	}

	p.log.Info("assistant.pipeline", "run finished", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"intent":          string(s.Intent),
		"validation":      string(s.ValidationResult),
		"confirmation":    string(s.ConfirmationStatus),
		"has_response":    s.Response != nil,
		"step_count":      s.StepCount,
	})

	return s
}
