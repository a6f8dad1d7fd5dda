package service

import (
	"context"
	"time"

	"ai-billing-be/internal/dto"
	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/assistant"
	"ai-billing-be/pkg/assistant/state"
	"ai-billing-be/pkg/assistant/store"
)

const fallbackResponse = "Não consegui processar sua mensagem."

type IAssistantService interface {
	HandleMessage(ctx context.Context, req *dto.AssistantMessageRequest) (*dto.AssistantMessageResponse, error)
	HandleConfirm(ctx context.Context, req *dto.AssistantConfirmRequest) (*dto.AssistantConfirmResponse, error)
}

type assistantService struct {
	pipeline *assistant.Pipeline
	store    store.IConversationStore
	log      logger.ILogger
}

func NewAssistantService(
	pipeline *assistant.Pipeline,
	conversationStore store.IConversationStore,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		pipeline: pipeline,
		store:    conversationStore,
		log:      log,
	}
}

// HandleMessage runs one inbound chat turn through the pipeline. An
// expired or unknown conversation id silently starts a fresh
// conversation under the same id.
func (a *assistantService) HandleMessage(ctx context.Context, req *dto.AssistantMessageRequest) (*dto.AssistantMessageResponse, error) {
	a.log.Info("service.assistant", "message received", map[string]interface{}{
		"conversation_id": req.ConversationId,
		"tenant_id":       req.TenantId,
		"text_length":     len(req.Text),
	})

	var s state.State
	if req.ConversationId != "" {
		loaded, err := a.store.LoadState(ctx, req.ConversationId)
		if err != nil {
			return nil, err
		}
		if loaded == nil {
			s = state.New(req.ConversationId, req.TenantId, req.UserId, req.Text)
		} else {
			s = loaded.Apply(
				state.SetUserInput(req.Text),
				state.ClearTurnOutputs(),
				state.BeginAction(),
			)
		}
	} else {
		s = state.New("", req.TenantId, req.UserId, req.Text)
	}

	final := a.pipeline.Run(ctx, s)

	requiresConfirmation := final.ConfirmationStatus == state.ConfirmationPending

	if requiresConfirmation {
		pending := store.PendingConfirmation{
			Intent:    final.Intent,
			Entities:  final.Entities,
			TenantId:  req.TenantId,
			UserId:    req.UserId,
			CreatedAt: time.Now(),
		}
		if err := a.store.SavePendingConfirmation(ctx, final.ConversationId, pending); err != nil {
			return nil, err
		}
	}

	if err := a.store.SaveState(ctx, final); err != nil {
		return nil, err
	}

	a.log.Info("service.assistant", "message handled", map[string]interface{}{
		"conversation_id":       final.ConversationId,
		"intent":                string(final.Intent),
		"requires_confirmation": requiresConfirmation,
	})

	response := fallbackResponse
	if final.Response != nil {
		response = *final.Response
	}

	return &dto.AssistantMessageResponse{
		ConversationId:       final.ConversationId,
		Response:             response,
		RequiresConfirmation: requiresConfirmation,
		SuggestedAction:      string(final.Intent),
		Intent:               string(final.Intent),
	}, nil
}

// HandleConfirm resolves a pending confirmation. The pending record and
// the conversation state expire independently: a missing pending record
// means the short confirmation window closed, a missing state means the
// conversation itself is gone.
func (a *assistantService) HandleConfirm(ctx context.Context, req *dto.AssistantConfirmRequest) (*dto.AssistantConfirmResponse, error) {
	a.log.Info("service.assistant", "confirmation received", map[string]interface{}{
		"conversation_id": req.ConversationId,
		"tenant_id":       req.TenantId,
		"confirmed":       req.Confirmed,
	})

	pending, err := a.store.LoadPendingConfirmation(ctx, req.ConversationId)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		a.log.Warn("service.assistant", "confirmation expired", map[string]interface{}{
			"conversation_id": req.ConversationId,
		})
		return nil, ErrConfirmationExpired
	}

	if pending.TenantId != "" && req.TenantId != pending.TenantId {
		a.log.Warn("service.assistant", "confirmation tenant mismatch", map[string]interface{}{
			"conversation_id": req.ConversationId,
			"tenant_id":       req.TenantId,
		})
		return nil, ErrTenantMismatch
	}

	loaded, err := a.store.LoadState(ctx, req.ConversationId)
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		return nil, ErrConversationNotFound
	}

	if !req.Confirmed {
		if err := a.store.DeletePendingConfirmation(ctx, req.ConversationId); err != nil {
			return nil, err
		}

		final := loaded.Apply(
			state.SetConfirmationStatus(state.ConfirmationRejected),
			state.SetResponse("Operação cancelada."),
		)
		if err := a.store.SaveState(ctx, final); err != nil {
			return nil, err
		}

		a.log.Info("service.assistant", "confirmation rejected", map[string]interface{}{
			"conversation_id": req.ConversationId,
		})

		return &dto.AssistantConfirmResponse{
			ConversationId: req.ConversationId,
			Response:       "Operação cancelada.",
			ActionExecuted: false,
		}, nil
	}

	confirmed := loaded.Apply(
		state.SetConfirmationStatus(state.ConfirmationConfirmed),
		state.ClearTurnOutputs(),
	)

	final := a.pipeline.Run(ctx, confirmed)

	if err := a.store.DeletePendingConfirmation(ctx, req.ConversationId); err != nil {
		return nil, err
	}
	if err := a.store.SaveState(ctx, final); err != nil {
		return nil, err
	}

	a.log.Info("service.assistant", "confirmation executed", map[string]interface{}{
		"conversation_id": req.ConversationId,
		"tool":            final.ToolName,
		"success":         final.ToolError == nil,
	})

	response := "Operação concluída."
	if final.Response != nil {
		response = *final.Response
	}

	return &dto.AssistantConfirmResponse{
		ConversationId: req.ConversationId,
		Response:       response,
		ActionExecuted: final.ToolError == nil,
		Result:         final.ToolResult,
	}, nil
}
