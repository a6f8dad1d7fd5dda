package assistant

import (
	"fmt"
	"strings"

	"ai-billing-be/pkg/assistant/state"
)

// FormatBRL renders an amount in cents as "R$ 1.234,56".
func FormatBRL(amountCents int64) string {
	negative := amountCents < 0
	if negative {
		amountCents = -amountCents
	}

	reais := amountCents / 100
	cents := amountCents % 100

	intPart := fmt.Sprintf("%d", reais)
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("R$ %s%s,%02d", sign, b.String(), cents)
}

// FormatDateBR converts an ISO "YYYY-MM-DD" date into "DD/MM/YYYY" for
// display. Anything that is not a three-part ISO date passes through.
func FormatDateBR(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	if len(parts) != 3 {
		return isoDate
	}
	return fmt.Sprintf("%s/%s/%s", parts[2], parts[1], parts[0])
}

func confirmationMessage(s state.State) string {
	switch s.Intent {
	case state.IntentCreateBoleto:
		var amount int64
		if s.Entities.AmountCents != nil {
			amount = *s.Entities.AmountCents
		}
		contact := "contato"
		if s.Entities.ContactName != nil {
			contact = *s.Entities.ContactName
		}
		dueDate := "data não especificada"
		if s.Entities.DueDate != nil {
			dueDate = FormatDateBR(*s.Entities.DueDate)
		}
		return fmt.Sprintf(
			"Vou criar um boleto de **%s** para **%s**, com vencimento em **%s**.\n\nConfirma? (Sim/Não)",
			FormatBRL(amount), contact, dueDate,
		)
	case state.IntentCancelBoleto:
		boletoId := "ID não especificado"
		if s.Entities.BoletoId != nil {
			boletoId = *s.Entities.BoletoId
		}
		return fmt.Sprintf("Vou cancelar o boleto **%s**.\n\nConfirma? (Sim/Não)", boletoId)
	}
	return "Confirma a operação? (Sim/Não)"
}

var boletoStatusLabels = map[string]string{
	"created":   "Criado",
	"sent":      "Enviado",
	"paid":      "Pago",
	"overdue":   "Vencido",
	"cancelled": "Cancelado",
}

func formatToolResponse(s state.State) string {
	result := s.ToolResult
	if result == nil {
		result = map[string]any{}
	}

	switch s.Intent {
	case state.IntentCreateBoleto:
		amount := asInt64(result["amount_cents"])
		boletoId := asString(result["boleto_id"])
		dueDate := FormatDateBR(asString(result["due_date"]))
		return fmt.Sprintf(
			"✅ Boleto criado com sucesso!\n\n**Valor:** %s\n**Vencimento:** %s\n**ID:** %s\n\nO boleto será enviado ao contato.",
			FormatBRL(amount), dueDate, boletoId,
		)
	case state.IntentCancelBoleto:
		return fmt.Sprintf("✅ Boleto **%s** cancelado com sucesso.", asString(result["boleto_id"]))
	case state.IntentCheckStatus:
		status := asString(result["status"])
		if status == "" {
			status = "desconhecido"
		}
		if label, ok := boletoStatusLabels[status]; ok {
			status = label
		}
		return fmt.Sprintf("📋 Status do boleto **%s**: %s", asString(result["boleto_id"]), status)
	case state.IntentSendMessage:
		return "✅ Mensagem adicionada à fila de envio."
	case state.IntentListBoletos:
		count := asInt64(result["count"])
		if count == 0 {
			return "📋 Você não tem boletos no momento."
		}
		return fmt.Sprintf("📋 Você tem %d boleto(s).", count)
	}
	return "✅ Operação concluída."
}

// Tool result maps round-trip through JSON in the conversation store, so
// numeric values may arrive as float64.
func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
