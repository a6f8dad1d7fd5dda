package assistant

import (
	"testing"

	"ai-billing-be/pkg/assistant/state"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{1, "R$ 0,01"},
		{100, "R$ 1,00"},
		{150050, "R$ 1.500,50"},
		{10000000, "R$ 100.000,00"},
		{123456789, "R$ 1.234.567,89"},
		{-2500, "R$ -25,00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBRL(tt.cents))
	}
}

func TestFormatDateBR(t *testing.T) {
	assert.Equal(t, "15/03/2026", FormatDateBR("2026-03-15"))
	assert.Equal(t, "amanhã", FormatDateBR("amanhã"))
}

func TestConfirmationMessageCreateBoleto(t *testing.T) {
	amount := int64(150050)
	name := "Maria Silva"
	due := "2026-12-01"

	s := state.State{
		Intent: state.IntentCreateBoleto,
		Entities: state.Entities{
			ContactName: &name,
			AmountCents: &amount,
			DueDate:     &due,
		},
	}

	got := confirmationMessage(s)
	assert.Equal(t, "Vou criar um boleto de **R$ 1.500,50** para **Maria Silva**, com vencimento em **01/12/2026**.\n\nConfirma? (Sim/Não)", got)
}

func TestConfirmationMessageCancelBoleto(t *testing.T) {
	id := "b-123"
	s := state.State{
		Intent:   state.IntentCancelBoleto,
		Entities: state.Entities{BoletoId: &id},
	}

	assert.Equal(t, "Vou cancelar o boleto **b-123**.\n\nConfirma? (Sim/Não)", confirmationMessage(s))
}

func TestConfirmationMessageFallback(t *testing.T) {
	s := state.State{Intent: state.IntentSendMessage}
	assert.Equal(t, "Confirma a operação? (Sim/Não)", confirmationMessage(s))
}

func TestFormatToolResponse(t *testing.T) {
	tests := []struct {
		name   string
		intent state.Intent
		result map[string]any
		want   string
	}{
		{
			name:   "boleto created",
			intent: state.IntentCreateBoleto,
			result: map[string]any{
				"boleto_id":    "b-1",
				"amount_cents": int64(150050),
				"due_date":     "2026-12-01",
			},
			want: "✅ Boleto criado com sucesso!\n\n**Valor:** R$ 1.500,50\n**Vencimento:** 01/12/2026\n**ID:** b-1\n\nO boleto será enviado ao contato.",
		},
		{
			// Values loaded back from the store arrive as JSON numbers.
			name:   "boleto created from stored result",
			intent: state.IntentCreateBoleto,
			result: map[string]any{
				"boleto_id":    "b-1",
				"amount_cents": float64(150050),
				"due_date":     "2026-12-01",
			},
			want: "✅ Boleto criado com sucesso!\n\n**Valor:** R$ 1.500,50\n**Vencimento:** 01/12/2026\n**ID:** b-1\n\nO boleto será enviado ao contato.",
		},
		{
			name:   "boleto cancelled",
			intent: state.IntentCancelBoleto,
			result: map[string]any{"boleto_id": "b-2"},
			want:   "✅ Boleto **b-2** cancelado com sucesso.",
		},
		{
			name:   "status known label",
			intent: state.IntentCheckStatus,
			result: map[string]any{"boleto_id": "b-3", "status": "paid"},
			want:   "📋 Status do boleto **b-3**: Pago",
		},
		{
			name:   "status missing",
			intent: state.IntentCheckStatus,
			result: map[string]any{"boleto_id": "b-3"},
			want:   "📋 Status do boleto **b-3**: desconhecido",
		},
		{
			name:   "message queued",
			intent: state.IntentSendMessage,
			result: map[string]any{"message_id": "m-1"},
			want:   "✅ Mensagem adicionada à fila de envio.",
		},
		{
			name:   "empty list",
			intent: state.IntentListBoletos,
			result: map[string]any{"count": int64(0)},
			want:   "📋 Você não tem boletos no momento.",
		},
		{
			name:   "non-empty list",
			intent: state.IntentListBoletos,
			result: map[string]any{"count": float64(3)},
			want:   "📋 Você tem 3 boleto(s).",
		},
		{
			name:   "unmapped intent",
			intent: state.IntentGeneralQuestion,
			result: map[string]any{},
			want:   "✅ Operação concluída.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.State{Intent: tt.intent, ToolResult: tt.result}
			assert.Equal(t, tt.want, formatToolResponse(s))
		})
	}
}
