package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-billing-be/internal/pkg/logger"
	"ai-billing-be/pkg/assistant/state"
)

// requiredEntities lists what each intent needs before it may execute.
var requiredEntities = map[state.Intent][]string{
	state.IntentCreateBoleto:    {"contact_name", "amount_cents", "due_date"},
	state.IntentCancelBoleto:    {"boleto_id"},
	state.IntentCheckStatus:     {"boleto_id"},
	state.IntentSendMessage:     {"contact_name", "message_content"},
	state.IntentListBoletos:     {},
	state.IntentGeneralQuestion: {},
	state.IntentUnknown:         {},
}

var fieldNames = map[string]string{
	"contact_name":    "nome do contato",
	"contact_phone":   "telefone do contato",
	"amount_cents":    "valor",
	"due_date":        "data de vencimento",
	"boleto_id":       "ID do boleto",
	"message_content": "conteúdo da mensagem",
}

const maxAmountCents = 100_000_00

// validateNode is the completeness and value gate. Missing fields
// produce CLARIFY with a question naming them; invalid values produce
// FAIL. Execution only ever happens after PASS.
type validateNode struct {
	log logger.ILogger
}

func (n *validateNode) Name() string { return "validate_request" }

func (n *validateNode) Run(ctx context.Context, s state.State) state.State {
	if s.Intent == "" {
		return s
	}
	if s.ShouldStop() {
		return s
	}

	n.log.Info("assistant.validate", "validating request", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
		"intent":          string(s.Intent),
	})

	var missing []string
	for _, field := range requiredEntities[s.Intent] {
		if !s.Entities.Has(field) {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, f := range missing {
			name, ok := fieldNames[f]
			if !ok {
				name = f
			}
			names = append(names, name)
		}

		var joined string
		if len(names) == 1 {
			joined = names[0]
		} else {
			joined = strings.Join(names[:len(names)-1], ", ") + " e " + names[len(names)-1]
		}

		n.log.Info("assistant.validate", "missing fields", map[string]interface{}{
			"conversation_id": s.ConversationId,
			"correlation_id":  s.CorrelationId,
			"missing":         missing,
		})

		return s.Apply(
			state.SetValidation(state.ValidationClarify, missing),
			state.SetResponse(fmt.Sprintf("Para continuar, preciso saber: %s.", joined)),
		)
	}

	if errs := validateValues(s.Entities); len(errs) > 0 {
		n.log.Info("assistant.validate", "invalid values", map[string]interface{}{
			"conversation_id": s.ConversationId,
			"correlation_id":  s.CorrelationId,
			"errors":          len(errs),
		})
		return s.Apply(
			state.SetValidation(state.ValidationFail, errs),
			state.SetResponse(errs[0]),
		)
	}

	n.log.Info("assistant.validate", "validation passed", map[string]interface{}{
		"conversation_id": s.ConversationId,
		"correlation_id":  s.CorrelationId,
	})

	return s.Apply(state.SetValidation(state.ValidationPass, nil))
}

func validateValues(e state.Entities) []string {
	var errs []string

	if e.AmountCents != nil {
		switch {
		case *e.AmountCents <= 0:
			errs = append(errs, "O valor precisa ser positivo.")
		case *e.AmountCents > maxAmountCents:
			errs = append(errs, "O valor máximo permitido é R$ 100.000,00.")
		}
	}

	if e.DueDate != nil {
		due, err := time.ParseInLocation("2006-01-02", *e.DueDate, time.Local)
		if err != nil {
			errs = append(errs, "Data de vencimento inválida. Use o formato DD/MM/AAAA.")
		} else {
			now := time.Now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
			if due.Before(today) {
				errs = append(errs, "A data de vencimento não pode ser no passado.")
			}
		}
	}

	return errs
}
