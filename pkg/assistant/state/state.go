package state

import (
	"time"

	"github.com/google/uuid"
)

// Intent is the closed set of user goals the classifier may return.
// Anything outside this set maps to IntentUnknown.
type Intent string

const (
	IntentCreateBoleto    Intent = "create_boleto"
	IntentCancelBoleto    Intent = "cancel_boleto"
	IntentCheckStatus     Intent = "check_status"
	IntentSendMessage     Intent = "send_message"
	IntentListBoletos     Intent = "list_boletos"
	IntentGeneralQuestion Intent = "general_question"
	IntentUnknown         Intent = "unknown"
)

// confirmationRequired is the single source of truth for which intents
// cause a monetary side effect and therefore need an explicit user
// confirmation round-trip before execution.
var confirmationRequired = map[Intent]bool{
	IntentCreateBoleto: true,
	IntentCancelBoleto: true,
}

func (i Intent) RequiresConfirmation() bool {
	return confirmationRequired[i]
}

func (i Intent) Valid() bool {
	switch i {
	case IntentCreateBoleto, IntentCancelBoleto, IntentCheckStatus,
		IntentSendMessage, IntentListBoletos, IntentGeneralQuestion, IntentUnknown:
		return true
	}
	return false
}

// ParseIntent maps an arbitrary classifier string onto the closed set.
func ParseIntent(s string) Intent {
	i := Intent(s)
	if !i.Valid() {
		return IntentUnknown
	}
	return i
}

type ValidationResult string

const (
	ValidationPass    ValidationResult = "pass"
	ValidationFail    ValidationResult = "fail"
	ValidationClarify ValidationResult = "clarify"
)

type ConfirmationStatus string

const (
	ConfirmationPending     ConfirmationStatus = "pending"
	ConfirmationConfirmed   ConfirmationStatus = "confirmed"
	ConfirmationRejected    ConfirmationStatus = "rejected"
	ConfirmationNotRequired ConfirmationStatus = "not_required"
)

// Input kinds. Audio is accepted as a typed field; transcription is a
// future extension and non-text input currently halts at normalization.
const (
	InputKindText  = "text"
	InputKindAudio = "audio"
)

// Entities is the flat optional bag produced by entity extraction.
// All fields are optional here; the validation node owns completeness
// and value correctness.
type Entities struct {
	ContactName    *string        `json:"contact_name,omitempty"`
	ContactPhone   *string        `json:"contact_phone,omitempty"`
	AmountCents    *int64         `json:"amount_cents,omitempty"`
	DueDate        *string        `json:"due_date,omitempty"`
	BoletoId       *string        `json:"boleto_id,omitempty"`
	MessageContent *string        `json:"message_content,omitempty"`
	Raw            map[string]any `json:"raw,omitempty"`
}

// Clone returns a deep copy. The Raw map is copied so that no mutation
// of the new bag can leak into the old one.
func (e Entities) Clone() Entities {
	c := e
	if e.Raw != nil {
		c.Raw = make(map[string]any, len(e.Raw))
		for k, v := range e.Raw {
			c.Raw[k] = v
		}
	}
	return c
}

// Has reports whether the named field carries a value. Field names match
// the JSON document keys, which is also what the validation table uses.
func (e Entities) Has(field string) bool {
	switch field {
	case "contact_name":
		return e.ContactName != nil
	case "contact_phone":
		return e.ContactPhone != nil
	case "amount_cents":
		return e.AmountCents != nil
	case "due_date":
		return e.DueDate != nil
	case "boleto_id":
		return e.BoletoId != nil
	case "message_content":
		return e.MessageContent != nil
	}
	return false
}

// State is the single record threaded through the pipeline. It is never
// mutated in place: every node derives a successor via Apply, which
// copies the value and bumps the step counter by exactly one.
type State struct {
	ConversationId string `json:"conversation_id"`
	TenantId       string `json:"tenant_id,omitempty"`
	UserId         string `json:"user_id,omitempty"`

	UserInput       string  `json:"user_input"`
	InputKind       string  `json:"input_kind"`
	NormalizedInput *string `json:"normalized_input,omitempty"`

	Intent           Intent  `json:"intent,omitempty"`
	IntentConfidence float64 `json:"intent_confidence"`

	Entities Entities `json:"entities"`

	ValidationResult ValidationResult `json:"validation_result"`
	ValidationErrors []string         `json:"validation_errors,omitempty"`

	ConfirmationStatus  ConfirmationStatus `json:"confirmation_status"`
	ConfirmationMessage *string            `json:"confirmation_message,omitempty"`

	ToolName   *string        `json:"tool_name,omitempty"`
	ToolResult map[string]any `json:"tool_result,omitempty"`
	ToolError  *string        `json:"tool_error,omitempty"`

	Response *string `json:"response,omitempty"`

	CreatedAt     time.Time `json:"created_at"`
	StepCount     int       `json:"step_count"`
	CorrelationId string    `json:"correlation_id,omitempty"`
}

// New creates the initial state for the first inbound message of a
// conversation.
func New(conversationId, tenantId, userId, input string) State {
	if conversationId == "" {
		conversationId = uuid.NewString()
	}
	return State{
		ConversationId:     conversationId,
		TenantId:           tenantId,
		UserId:             userId,
		UserInput:          input,
		InputKind:          InputKindText,
		ValidationResult:   ValidationFail,
		ConfirmationStatus: ConfirmationNotRequired,
		CreatedAt:          time.Now().UTC(),
	}
}

// Mutation is a single field override applied by Apply.
type Mutation func(*State)

func SetUserInput(text string) Mutation {
	return func(s *State) { s.UserInput = text }
}

func SetNormalizedInput(text string) Mutation {
	return func(s *State) { s.NormalizedInput = &text }
}

func ClearNormalizedInput() Mutation {
	return func(s *State) { s.NormalizedInput = nil }
}

func SetIntent(intent Intent, confidence float64) Mutation {
	return func(s *State) {
		s.Intent = intent
		s.IntentConfidence = confidence
	}
}

func SetEntities(e Entities) Mutation {
	return func(s *State) { s.Entities = e.Clone() }
}

func SetValidation(result ValidationResult, errs []string) Mutation {
	return func(s *State) {
		s.ValidationResult = result
		s.ValidationErrors = append([]string(nil), errs...)
	}
}

func SetConfirmationStatus(status ConfirmationStatus) Mutation {
	return func(s *State) { s.ConfirmationStatus = status }
}

func SetConfirmationMessage(msg string) Mutation {
	return func(s *State) { s.ConfirmationMessage = &msg }
}

func SetToolOutcome(name string, result map[string]any) Mutation {
	return func(s *State) {
		s.ToolName = &name
		s.ToolResult = result
	}
}

func SetToolError(errMsg string) Mutation {
	return func(s *State) { s.ToolError = &errMsg }
}

func SetResponse(msg string) Mutation {
	return func(s *State) { s.Response = &msg }
}

// ClearTurnOutputs resets the per-turn output fields when a persisted
// state is rehydrated for a new inbound message.
func ClearTurnOutputs() Mutation {
	return func(s *State) {
		s.Response = nil
		s.ToolName = nil
		s.ToolResult = nil
		s.ToolError = nil
	}
}

// BeginAction marks a rehydrated state as the start of a new logical
// action. The confirmation gate returns to its neutral value, so a
// confirmation granted or rejected on a previous action never carries
// over, and the correlation id is dropped so the run gets a fresh one
// and with it a distinct idempotency key.
func BeginAction() Mutation {
	return func(s *State) {
		s.ConfirmationStatus = ConfirmationNotRequired
		s.ConfirmationMessage = nil
		s.CorrelationId = ""
	}
}

func SetCorrelationId(id string) Mutation {
	return func(s *State) { s.CorrelationId = id }
}

// Apply produces the successor state: a copy of the receiver with the
// given overrides and StepCount+1. The entity bag, error list and tool
// result are deep-copied first, so the old and new values never alias.
func (s State) Apply(muts ...Mutation) State {
	next := s
	next.Entities = s.Entities.Clone()
	next.ValidationErrors = append([]string(nil), s.ValidationErrors...)
	if s.ToolResult != nil {
		next.ToolResult = make(map[string]any, len(s.ToolResult))
		for k, v := range s.ToolResult {
			next.ToolResult[k] = v
		}
	}
	next.StepCount = s.StepCount + 1
	for _, m := range muts {
		m(&next)
	}
	return next
}

// ShouldStop is the pipeline stop predicate: a response was produced, a
// tool failed, or the user rejected the pending confirmation. Nothing
// else halts the run.
func (s State) ShouldStop() bool {
	if s.Response != nil {
		return true
	}
	if s.ToolError != nil {
		return true
	}
	if s.ConfirmationStatus == ConfirmationRejected {
		return true
	}
	return false
}

// Sanitize repairs a state loaded from the store: classifier strings
// outside the closed set collapse to unknown and enum zero values get
// their documented defaults.
func (s State) Sanitize() State {
	if s.Intent != "" && !s.Intent.Valid() {
		s.Intent = IntentUnknown
	}
	if s.ValidationResult == "" {
		s.ValidationResult = ValidationFail
	}
	if s.ConfirmationStatus == "" {
		s.ConfirmationStatus = ConfirmationNotRequired
	}
	if s.InputKind == "" {
		s.InputKind = InputKindText
	}
	return s
}
