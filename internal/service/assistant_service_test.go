package service

import (
	"context"
	"testing"
	"time"

	"ai-billing-be/internal/dto"
	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/assistant"
	"ai-billing-be/pkg/assistant/state"
	"ai-billing-be/pkg/assistant/store"
	"ai-billing-be/pkg/assistant/tool"
	"ai-billing-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type cannedProvider struct {
	classification llm.ClassificationResult
	extraction     llm.ExtractionResult
}

func (p *cannedProvider) ClassifyIntent(ctx context.Context, text string) (*llm.ClassificationResult, error) {
	c := p.classification
	return &c, nil
}

func (p *cannedProvider) ExtractEntities(ctx context.Context, text string, intent string) (*llm.ExtractionResult, error) {
	e := p.extraction
	return &e, nil
}

type countingTool struct {
	name     string
	confirm  bool
	result   tool.Result
	executed int
	inputs   []tool.Input
}

func (t *countingTool) Name() string                         { return t.name }
func (t *countingTool) RequiresConfirmation() bool           { return t.confirm }
func (t *countingTool) ValidateInput(in tool.Input) []string { return nil }
func (t *countingTool) Execute(ctx context.Context, in tool.Input) tool.Result {
	t.executed++
	t.inputs = append(t.inputs, in)
	return t.result
}

func assistantFixture(provider llm.Provider, tools map[state.Intent]tool.Tool) (IAssistantService, store.IConversationStore) {
	registry := tool.NewRegistry()
	for intent, t := range tools {
		registry.Register(intent, t)
	}
	log := logger.NewNopLogger()
	conversationStore := store.NewMemoryStore(30*time.Minute, 5*time.Minute)
	pipeline := assistant.NewPipeline(provider, registry, log)
	return NewAssistantService(pipeline, conversationStore, log), conversationStore
}

func createBoletoProvider() *cannedProvider {
	name := "maria silva"
	amount := int64(150050)
	due := "2099-12-01"
	return &cannedProvider{
		classification: llm.ClassificationResult{Intent: "create_boleto", Confidence: 0.9},
		extraction: llm.ExtractionResult{
			ContactName: &name,
			AmountCents: &amount,
			DueDate:     &due,
		},
	}
}

func TestHandleMessageStartsConversation(t *testing.T) {
	svc, conversationStore := assistantFixture(&cannedProvider{
		classification: llm.ClassificationResult{Intent: "unknown", Confidence: 0.2},
	}, nil)

	res, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		TenantId: "tenant-1",
		Text:     "bom dia",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.ConversationId)
	assert.NotEmpty(t, res.Response)
	assert.False(t, res.RequiresConfirmation)

	saved, err := conversationStore.LoadState(context.Background(), res.ConversationId)
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, "tenant-1", saved.TenantId)
}

func TestHandleMessageUnknownIdRestartsSilently(t *testing.T) {
	svc, _ := assistantFixture(&cannedProvider{
		classification: llm.ClassificationResult{Intent: "unknown", Confidence: 0.2},
	}, nil)

	res, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		ConversationId: "expired-conv",
		TenantId:       "tenant-1",
		Text:           "oi",
	})

	assert.NoError(t, err)
	assert.Equal(t, "expired-conv", res.ConversationId)
}

func TestHandleMessageMonetaryIntentSavesPending(t *testing.T) {
	create := &countingTool{name: "create_boleto", confirm: true}
	svc, conversationStore := assistantFixture(createBoletoProvider(), map[state.Intent]tool.Tool{
		state.IntentCreateBoleto: create,
	})

	res, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		TenantId: "tenant-1",
		UserId:   "user-1",
		Text:     "criar boleto de 1500,50 para maria",
	})

	assert.NoError(t, err)
	assert.True(t, res.RequiresConfirmation)
	assert.Equal(t, "create_boleto", res.Intent)
	assert.Contains(t, res.Response, "Confirma? (Sim/Não)")
	assert.Equal(t, 0, create.executed)

	pending, err := conversationStore.LoadPendingConfirmation(context.Background(), res.ConversationId)
	assert.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Equal(t, state.IntentCreateBoleto, pending.Intent)
	assert.Equal(t, "tenant-1", pending.TenantId)
	assert.Equal(t, "user-1", pending.UserId)
	assert.NotNil(t, pending.Entities.AmountCents)
}

func TestHandleConfirmExecutesPendingAction(t *testing.T) {
	create := &countingTool{
		name:    "create_boleto",
		confirm: true,
		result: tool.Ok(map[string]any{
			"boleto_id":    "b-1",
			"amount_cents": int64(150050),
			"due_date":     "2099-12-01",
		}),
	}
	svc, conversationStore := assistantFixture(createBoletoProvider(), map[state.Intent]tool.Tool{
		state.IntentCreateBoleto: create,
	})

	msg, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		TenantId: "tenant-1",
		Text:     "criar boleto de 1500,50 para maria",
	})
	assert.NoError(t, err)
	assert.True(t, msg.RequiresConfirmation)

	res, err := svc.HandleConfirm(context.Background(), &dto.AssistantConfirmRequest{
		ConversationId: msg.ConversationId,
		TenantId:       "tenant-1",
		Confirmed:      true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, create.executed)
	assert.True(t, res.ActionExecuted)
	assert.Contains(t, res.Response, "✅ Boleto criado com sucesso!")
	assert.Equal(t, "b-1", res.Result["boleto_id"])

	pending, err := conversationStore.LoadPendingConfirmation(context.Background(), msg.ConversationId)
	assert.NoError(t, err)
	assert.Nil(t, pending)

	saved, err := conversationStore.LoadState(context.Background(), msg.ConversationId)
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, state.ConfirmationConfirmed, saved.ConfirmationStatus)
}

func TestHandleConfirmRejectCancels(t *testing.T) {
	create := &countingTool{name: "create_boleto", confirm: true}
	svc, conversationStore := assistantFixture(createBoletoProvider(), map[state.Intent]tool.Tool{
		state.IntentCreateBoleto: create,
	})

	msg, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		TenantId: "tenant-1",
		Text:     "criar boleto de 1500,50 para maria",
	})
	assert.NoError(t, err)

	res, err := svc.HandleConfirm(context.Background(), &dto.AssistantConfirmRequest{
		ConversationId: msg.ConversationId,
		TenantId:       "tenant-1",
		Confirmed:      false,
	})

	assert.NoError(t, err)
	assert.False(t, res.ActionExecuted)
	assert.Equal(t, "Operação cancelada.", res.Response)
	assert.Equal(t, 0, create.executed)

	pending, err := conversationStore.LoadPendingConfirmation(context.Background(), msg.ConversationId)
	assert.NoError(t, err)
	assert.Nil(t, pending)

	saved, err := conversationStore.LoadState(context.Background(), msg.ConversationId)
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, state.ConfirmationRejected, saved.ConfirmationStatus)
}

func TestHandleConfirmWithoutPendingExpires(t *testing.T) {
	svc, _ := assistantFixture(createBoletoProvider(), nil)

	_, err := svc.HandleConfirm(context.Background(), &dto.AssistantConfirmRequest{
		ConversationId: "conv-1",
		TenantId:       "tenant-1",
		Confirmed:      true,
	})

	assert.ErrorIs(t, err, ErrConfirmationExpired)
}

func TestHandleConfirmWithoutStateNotFound(t *testing.T) {
	svc, conversationStore := assistantFixture(createBoletoProvider(), nil)

	// Pending record survives but the conversation state expired first.
	assert.NoError(t, conversationStore.SavePendingConfirmation(context.Background(), "conv-1", store.PendingConfirmation{
		Intent:   state.IntentCreateBoleto,
		TenantId: "tenant-1",
	}))

	_, err := svc.HandleConfirm(context.Background(), &dto.AssistantConfirmRequest{
		ConversationId: "conv-1",
		TenantId:       "tenant-1",
		Confirmed:      true,
	})

	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestSecondMonetaryActionRequiresConfirmationAgain(t *testing.T) {
	create := &countingTool{
		name:    "create_boleto",
		confirm: true,
		result:  tool.Ok(map[string]any{"boleto_id": "b-1", "amount_cents": int64(150050), "due_date": "2099-12-01"}),
	}
	cancel := &countingTool{
		name:    "cancel_boleto",
		confirm: true,
		result:  tool.Ok(map[string]any{"boleto_id": "b-1", "status": "cancelled"}),
	}
	provider := createBoletoProvider()
	svc, _ := assistantFixture(provider, map[state.Intent]tool.Tool{
		state.IntentCreateBoleto: create,
		state.IntentCancelBoleto: cancel,
	})

	msg, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		TenantId: "tenant-1",
		Text:     "criar boleto de 1500,50 para maria",
	})
	assert.NoError(t, err)

	_, err = svc.HandleConfirm(context.Background(), &dto.AssistantConfirmRequest{
		ConversationId: msg.ConversationId,
		TenantId:       "tenant-1",
		Confirmed:      true,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, create.executed)

	boletoId := "b-1"
	provider.classification = llm.ClassificationResult{Intent: "cancel_boleto", Confidence: 0.9}
	provider.extraction = llm.ExtractionResult{BoletoId: &boletoId}

	second, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		ConversationId: msg.ConversationId,
		TenantId:       "tenant-1",
		Text:           "pode excluir esse boleto",
	})
	assert.NoError(t, err)
	assert.True(t, second.RequiresConfirmation)
	assert.Contains(t, second.Response, "Confirma? (Sim/Não)")
	assert.Equal(t, 0, cancel.executed)
}

func TestConfirmedActionsCarryDistinctIdempotencyKeys(t *testing.T) {
	create := &countingTool{
		name:    "create_boleto",
		confirm: true,
		result:  tool.Ok(map[string]any{"boleto_id": "b-1", "amount_cents": int64(150050), "due_date": "2099-12-01"}),
	}
	svc, _ := assistantFixture(createBoletoProvider(), map[state.Intent]tool.Tool{
		state.IntentCreateBoleto: create,
	})

	msg, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		TenantId: "tenant-1",
		Text:     "criar boleto de 1500,50 para maria",
	})
	assert.NoError(t, err)
	_, err = svc.HandleConfirm(context.Background(), &dto.AssistantConfirmRequest{
		ConversationId: msg.ConversationId,
		TenantId:       "tenant-1",
		Confirmed:      true,
	})
	assert.NoError(t, err)

	second, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		ConversationId: msg.ConversationId,
		TenantId:       "tenant-1",
		Text:           "agora outro boleto de 1500,50 para maria",
	})
	assert.NoError(t, err)
	assert.True(t, second.RequiresConfirmation)

	_, err = svc.HandleConfirm(context.Background(), &dto.AssistantConfirmRequest{
		ConversationId: msg.ConversationId,
		TenantId:       "tenant-1",
		Confirmed:      true,
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, create.executed)

	first, next := create.inputs[0].IdempotencyKey, create.inputs[1].IdempotencyKey
	assert.NotEmpty(t, first)
	assert.NotEmpty(t, next)
	assert.NotEqual(t, first, next)
	assert.Contains(t, first, msg.ConversationId+":")
	assert.Contains(t, next, msg.ConversationId+":")
}

func TestHandleMessageAfterRejectionRespondsNormally(t *testing.T) {
	create := &countingTool{name: "create_boleto", confirm: true}
	svc, _ := assistantFixture(createBoletoProvider(), map[state.Intent]tool.Tool{
		state.IntentCreateBoleto: create,
	})

	msg, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		TenantId: "tenant-1",
		Text:     "criar boleto de 1500,50 para maria",
	})
	assert.NoError(t, err)

	_, err = svc.HandleConfirm(context.Background(), &dto.AssistantConfirmRequest{
		ConversationId: msg.ConversationId,
		TenantId:       "tenant-1",
		Confirmed:      false,
	})
	assert.NoError(t, err)

	// The rejected conversation accepts a new action and the run always
	// produces a user-facing response.
	third, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		ConversationId: msg.ConversationId,
		TenantId:       "tenant-1",
		Text:           "criar boleto de 1500,50 para maria",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, third.Response)
	assert.NotEqual(t, fallbackResponse, third.Response)
	assert.True(t, third.RequiresConfirmation)
	assert.Contains(t, third.Response, "Confirma? (Sim/Não)")
}

func TestHandleConfirmTenantMismatchRejected(t *testing.T) {
	create := &countingTool{name: "create_boleto", confirm: true}
	svc, conversationStore := assistantFixture(createBoletoProvider(), map[state.Intent]tool.Tool{
		state.IntentCreateBoleto: create,
	})

	msg, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		TenantId: "tenant-1",
		Text:     "criar boleto de 1500,50 para maria",
	})
	assert.NoError(t, err)

	_, err = svc.HandleConfirm(context.Background(), &dto.AssistantConfirmRequest{
		ConversationId: msg.ConversationId,
		TenantId:       "tenant-2",
		Confirmed:      true,
	})

	assert.ErrorIs(t, err, ErrTenantMismatch)
	assert.Equal(t, 0, create.executed)

	// The pending record stays: the rightful tenant can still confirm.
	pending, err := conversationStore.LoadPendingConfirmation(context.Background(), msg.ConversationId)
	assert.NoError(t, err)
	assert.NotNil(t, pending)
}

func TestHandleMessageContinuesConversation(t *testing.T) {
	name := "maria silva"
	provider := &cannedProvider{
		classification: llm.ClassificationResult{Intent: "create_boleto", Confidence: 0.9},
		extraction:     llm.ExtractionResult{ContactName: &name},
	}
	svc, _ := assistantFixture(provider, nil)

	first, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		TenantId: "tenant-1",
		Text:     "criar boleto para maria",
	})
	assert.NoError(t, err)
	assert.Contains(t, first.Response, "Para continuar, preciso saber:")

	// Second turn reuses the stored state; entities now complete.
	amount := int64(5000)
	due := "2099-01-01"
	provider.extraction = llm.ExtractionResult{
		ContactName: &name,
		AmountCents: &amount,
		DueDate:     &due,
	}

	second, err := svc.HandleMessage(context.Background(), &dto.AssistantMessageRequest{
		ConversationId: first.ConversationId,
		TenantId:       "tenant-1",
		Text:           "50 reais para dia 01/01/2099",
	})
	assert.NoError(t, err)
	assert.Equal(t, first.ConversationId, second.ConversationId)
	assert.True(t, second.RequiresConfirmation)
	assert.Contains(t, second.Response, "R$ 50,00")
}
