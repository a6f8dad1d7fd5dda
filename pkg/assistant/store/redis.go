package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-billing-be/pkg/assistant/state"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps conversation state and pending confirmations in
// Redis under separate TTLs, so a pending action expires well before
// the conversation does.
type RedisStore struct {
	client     *redis.Client
	stateTTL   time.Duration
	confirmTTL time.Duration
}

var _ IConversationStore = &RedisStore{}

func NewRedisStore(client *redis.Client, stateTTL, confirmTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		stateTTL:   stateTTL,
		confirmTTL: confirmTTL,
	}
}

func (r *RedisStore) SaveState(ctx context.Context, s state.State) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, stateKey(s.ConversationId), payload, r.stateTTL).Err()
}

func (r *RedisStore) LoadState(ctx context.Context, conversationId string) (*state.State, error) {
	payload, err := r.client.Get(ctx, stateKey(conversationId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s state.State
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, err
	}
	s = s.Sanitize()
	return &s, nil
}

func (r *RedisStore) DeleteState(ctx context.Context, conversationId string) error {
	return r.client.Del(ctx, stateKey(conversationId)).Err()
}

func (r *RedisStore) SavePendingConfirmation(ctx context.Context, conversationId string, p PendingConfirmation) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, confirmKey(conversationId), payload, r.confirmTTL).Err()
}

func (r *RedisStore) LoadPendingConfirmation(ctx context.Context, conversationId string) (*PendingConfirmation, error) {
	payload, err := r.client.Get(ctx, confirmKey(conversationId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p PendingConfirmation
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *RedisStore) DeletePendingConfirmation(ctx context.Context, conversationId string) error {
	return r.client.Del(ctx, confirmKey(conversationId)).Err()
}
