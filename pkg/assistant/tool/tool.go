package tool

import (
	"context"
	"strings"

	"ai-billing-be/pkg/assistant/state"
)

// Result is the two-variant outcome of a tool execution. Tools never
// return Go errors to the pipeline; every failure is folded into Error.
type Result struct {
	Success bool
	Data    map[string]any
	Error   string
}

func Ok(data map[string]any) Result {
	return Result{Success: true, Data: data}
}

func Fail(errMsg string) Result {
	return Result{Success: false, Error: errMsg}
}

// Input is the narrow slice of conversation state a tool is allowed to
// see. Tools re-validate it independently of the pipeline's validation
// node.
type Input struct {
	TenantId       string
	UserId         string
	ConversationId string
	IdempotencyKey string
	Entities       state.Entities
}

// Tool wraps exactly one domain use case. It performs no persistence of
// its own and never calls providers directly.
type Tool interface {
	Name() string
	RequiresConfirmation() bool

	// ValidateInput returns the list of problems with the input, empty
	// when the input is executable.
	ValidateInput(in Input) []string

	// Execute runs the wrapped use case. Implementations must catch all
	// use-case failures and fold them into the Result.
	Execute(ctx context.Context, in Input) Result
}

// Registry maps each intent to the single tool that serves it.
type Registry struct {
	byIntent map[state.Intent]Tool
}

func NewRegistry() *Registry {
	return &Registry{byIntent: make(map[state.Intent]Tool)}
}

func (r *Registry) Register(intent state.Intent, t Tool) *Registry {
	r.byIntent[intent] = t
	return r
}

func (r *Registry) Resolve(intent state.Intent) (Tool, bool) {
	t, ok := r.byIntent[intent]
	return t, ok
}

func joinErrors(errs []string) string {
	return strings.Join(errs, "; ")
}
