package store

import (
	"context"
	"time"

	"ai-billing-be/pkg/assistant/state"
)

// PendingConfirmation snapshots the action awaiting user approval. It
// lives under its own short TTL, independent of the conversation state.
type PendingConfirmation struct {
	Intent    state.Intent   `json:"intent"`
	Entities  state.Entities `json:"entities"`
	TenantId  string         `json:"tenant_id"`
	UserId    string         `json:"user_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// IConversationStore persists conversation state between pipeline runs.
// Load methods return (nil, nil) when the key is absent or expired.
type IConversationStore interface {
	SaveState(ctx context.Context, s state.State) error
	LoadState(ctx context.Context, conversationId string) (*state.State, error)
	DeleteState(ctx context.Context, conversationId string) error

	SavePendingConfirmation(ctx context.Context, conversationId string, p PendingConfirmation) error
	LoadPendingConfirmation(ctx context.Context, conversationId string) (*PendingConfirmation, error)
	DeletePendingConfirmation(ctx context.Context, conversationId string) error
}

const (
	stateKeyPrefix   = "assistant:state:"
	confirmKeyPrefix = "assistant:confirm:"
)

func stateKey(conversationId string) string {
	return stateKeyPrefix + conversationId
}

func confirmKey(conversationId string) string {
	return confirmKeyPrefix + conversationId
}
