package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	s := New("", "tenant-1", "user-1", "oi")

	assert.NotEmpty(t, s.ConversationId)
	assert.Equal(t, "tenant-1", s.TenantId)
	assert.Equal(t, "user-1", s.UserId)
	assert.Equal(t, "oi", s.UserInput)
	assert.Equal(t, InputKindText, s.InputKind)
	assert.Equal(t, ValidationFail, s.ValidationResult)
	assert.Equal(t, ConfirmationNotRequired, s.ConfirmationStatus)
	assert.Equal(t, 0, s.StepCount)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestNewKeepsGivenConversationId(t *testing.T) {
	s := New("conv-42", "tenant-1", "", "oi")
	assert.Equal(t, "conv-42", s.ConversationId)
}

func TestApplyIncrementsStepOnce(t *testing.T) {
	s := New("c", "t", "u", "oi")

	next := s.Apply(SetNormalizedInput("oi"))
	assert.Equal(t, 1, next.StepCount)
	assert.Equal(t, 0, s.StepCount)

	next = next.Apply(SetIntent(IntentListBoletos, 0.9), SetValidation(ValidationPass, nil))
	assert.Equal(t, 2, next.StepCount)
}

func TestApplyDoesNotAliasEntities(t *testing.T) {
	name := "Maria"
	s := New("c", "t", "u", "oi")
	s.Entities = Entities{
		ContactName: &name,
		Raw:         map[string]any{"k": "v"},
	}

	next := s.Apply()
	next.Entities.Raw["k"] = "changed"

	assert.Equal(t, "v", s.Entities.Raw["k"])
}

func TestApplyDoesNotAliasToolResult(t *testing.T) {
	s := New("c", "t", "u", "oi")
	s.ToolResult = map[string]any{"boleto_id": "abc"}

	next := s.Apply()
	next.ToolResult["boleto_id"] = "xyz"

	assert.Equal(t, "abc", s.ToolResult["boleto_id"])
}

func TestApplyDoesNotAliasValidationErrors(t *testing.T) {
	s := New("c", "t", "u", "oi")
	s = s.Apply(SetValidation(ValidationFail, []string{"erro"}))

	next := s.Apply()
	next.ValidationErrors[0] = "outro"

	assert.Equal(t, "erro", s.ValidationErrors[0])
}

func TestShouldStop(t *testing.T) {
	resp := "pronto"
	toolErr := "falhou"

	tests := []struct {
		name string
		s    State
		want bool
	}{
		{"zero state", State{}, false},
		{"response set", State{Response: &resp}, true},
		{"tool error set", State{ToolError: &toolErr}, true},
		{"rejected", State{ConfirmationStatus: ConfirmationRejected}, true},
		{"pending does not stop", State{ConfirmationStatus: ConfirmationPending}, false},
		{"confirmed does not stop", State{ConfirmationStatus: ConfirmationConfirmed}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.ShouldStop())
		})
	}
}

func TestRequiresConfirmation(t *testing.T) {
	assert.True(t, IntentCreateBoleto.RequiresConfirmation())
	assert.True(t, IntentCancelBoleto.RequiresConfirmation())
	assert.False(t, IntentCheckStatus.RequiresConfirmation())
	assert.False(t, IntentSendMessage.RequiresConfirmation())
	assert.False(t, IntentListBoletos.RequiresConfirmation())
	assert.False(t, IntentGeneralQuestion.RequiresConfirmation())
	assert.False(t, IntentUnknown.RequiresConfirmation())
}

func TestParseIntent(t *testing.T) {
	assert.Equal(t, IntentCreateBoleto, ParseIntent("create_boleto"))
	assert.Equal(t, IntentUnknown, ParseIntent("delete_everything"))
	assert.Equal(t, IntentUnknown, ParseIntent(""))
}

func TestEntitiesHas(t *testing.T) {
	amount := int64(1000)
	e := Entities{AmountCents: &amount}

	assert.True(t, e.Has("amount_cents"))
	assert.False(t, e.Has("contact_name"))
	assert.False(t, e.Has("nonexistent_field"))
}

func TestClearTurnOutputs(t *testing.T) {
	s := New("c", "t", "u", "oi")
	s = s.Apply(
		SetToolOutcome("create_boleto", map[string]any{"id": "x"}),
		SetResponse("feito"),
	)
	s = s.Apply(SetToolError("boom"))

	cleared := s.Apply(ClearTurnOutputs())

	assert.Nil(t, cleared.Response)
	assert.Nil(t, cleared.ToolName)
	assert.Nil(t, cleared.ToolResult)
	assert.Nil(t, cleared.ToolError)
	assert.NotNil(t, s.Response)
}

func TestBeginActionResetsGate(t *testing.T) {
	s := New("c", "t", "u", "oi")
	s = s.Apply(
		SetConfirmationStatus(ConfirmationConfirmed),
		SetConfirmationMessage("Confirma? (Sim/Não)"),
		SetCorrelationId("aaaa1111"),
	)

	fresh := s.Apply(BeginAction())

	assert.Equal(t, ConfirmationNotRequired, fresh.ConfirmationStatus)
	assert.Nil(t, fresh.ConfirmationMessage)
	assert.Empty(t, fresh.CorrelationId)
	assert.Equal(t, ConfirmationConfirmed, s.ConfirmationStatus)
}

func TestSanitize(t *testing.T) {
	s := State{Intent: Intent("made_up")}
	out := s.Sanitize()

	assert.Equal(t, IntentUnknown, out.Intent)
	assert.Equal(t, ValidationFail, out.ValidationResult)
	assert.Equal(t, ConfirmationNotRequired, out.ConfirmationStatus)
	assert.Equal(t, InputKindText, out.InputKind)

	// An empty intent means "not yet classified" and is kept as is.
	assert.Equal(t, Intent(""), State{}.Sanitize().Intent)
}
