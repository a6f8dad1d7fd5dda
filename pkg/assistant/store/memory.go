package store

import (
	"context"
	"time"

	"ai-billing-be/pkg/assistant/state"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process store for local development and tests.
// TTL semantics match the Redis store.
type MemoryStore struct {
	states     *gocache.Cache
	confirms   *gocache.Cache
	stateTTL   time.Duration
	confirmTTL time.Duration
}

var _ IConversationStore = &MemoryStore{}

func NewMemoryStore(stateTTL, confirmTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		states:     gocache.New(stateTTL, time.Minute),
		confirms:   gocache.New(confirmTTL, time.Minute),
		stateTTL:   stateTTL,
		confirmTTL: confirmTTL,
	}
}

func (m *MemoryStore) SaveState(ctx context.Context, s state.State) error {
	m.states.Set(stateKey(s.ConversationId), s, m.stateTTL)
	return nil
}

func (m *MemoryStore) LoadState(ctx context.Context, conversationId string) (*state.State, error) {
	v, ok := m.states.Get(stateKey(conversationId))
	if !ok {
		return nil, nil
	}
	s := v.(state.State).Sanitize()
	return &s, nil
}

func (m *MemoryStore) DeleteState(ctx context.Context, conversationId string) error {
	m.states.Delete(stateKey(conversationId))
	return nil
}

func (m *MemoryStore) SavePendingConfirmation(ctx context.Context, conversationId string, p PendingConfirmation) error {
	m.confirms.Set(confirmKey(conversationId), p, m.confirmTTL)
	return nil
}

func (m *MemoryStore) LoadPendingConfirmation(ctx context.Context, conversationId string) (*PendingConfirmation, error) {
	v, ok := m.confirms.Get(confirmKey(conversationId))
	if !ok {
		return nil, nil
	}
	p := v.(PendingConfirmation)
	return &p, nil
}

func (m *MemoryStore) DeletePendingConfirmation(ctx context.Context, conversationId string) error {
	m.confirms.Delete(confirmKey(conversationId))
	return nil
}
