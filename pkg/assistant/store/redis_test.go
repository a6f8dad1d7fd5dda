package store

import (
	"context"
	"testing"
	"time"

	"ai-billing-be/pkg/assistant/state"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client, 30*time.Minute, 5*time.Minute), mr
}

func TestRedisStoreStateRoundTrip(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	amount := int64(150050)
	st := state.New("conv-1", "tenant-1", "user-1", "criar boleto")
	st = st.Apply(
		state.SetIntent(state.IntentCreateBoleto, 0.9),
		state.SetEntities(state.Entities{AmountCents: &amount}),
		state.SetConfirmationStatus(state.ConfirmationPending),
	)

	assert.NoError(t, s.SaveState(ctx, st))

	loaded, err := s.LoadState(ctx, "conv-1")
	assert.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Equal(t, state.IntentCreateBoleto, loaded.Intent)
	assert.Equal(t, state.ConfirmationPending, loaded.ConfirmationStatus)
	assert.Equal(t, st.StepCount, loaded.StepCount)
	assert.NotNil(t, loaded.Entities.AmountCents)
	assert.Equal(t, amount, *loaded.Entities.AmountCents)
}

func TestRedisStoreLoadAbsentState(t *testing.T) {
	s, _ := newTestRedisStore(t)

	loaded, err := s.LoadState(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStoreStateExpires(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	assert.NoError(t, s.SaveState(ctx, state.New("conv-1", "t", "u", "oi")))

	mr.FastForward(31 * time.Minute)

	loaded, err := s.LoadState(ctx, "conv-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStoreConfirmationExpiresBeforeState(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	assert.NoError(t, s.SaveState(ctx, state.New("conv-1", "t", "u", "oi")))
	assert.NoError(t, s.SavePendingConfirmation(ctx, "conv-1", PendingConfirmation{
		Intent:    state.IntentCreateBoleto,
		TenantId:  "t",
		CreatedAt: time.Now(),
	}))

	mr.FastForward(6 * time.Minute)

	pending, err := s.LoadPendingConfirmation(ctx, "conv-1")
	assert.NoError(t, err)
	assert.Nil(t, pending)

	loaded, err := s.LoadState(ctx, "conv-1")
	assert.NoError(t, err)
	assert.NotNil(t, loaded)
}

func TestRedisStoreDeletePendingConfirmation(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	assert.NoError(t, s.SavePendingConfirmation(ctx, "conv-1", PendingConfirmation{
		Intent:   state.IntentCancelBoleto,
		TenantId: "t",
	}))
	assert.NoError(t, s.DeletePendingConfirmation(ctx, "conv-1"))

	pending, err := s.LoadPendingConfirmation(ctx, "conv-1")
	assert.NoError(t, err)
	assert.Nil(t, pending)
}

func TestRedisStoreKeyNamespaces(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	assert.NoError(t, s.SaveState(ctx, state.New("conv-1", "t", "u", "oi")))
	assert.NoError(t, s.SavePendingConfirmation(ctx, "conv-1", PendingConfirmation{TenantId: "t"}))

	assert.True(t, mr.Exists("assistant:state:conv-1"))
	assert.True(t, mr.Exists("assistant:confirm:conv-1"))
}

func TestRedisStoreSanitizesLoadedState(t *testing.T) {
	s, mr := newTestRedisStore(t)

	// A state written by an older build may carry an intent outside the
	// closed set.
	mr.Set("assistant:state:conv-1", `{"conversation_id":"conv-1","user_input":"oi","intent":"made_up"}`)

	loaded, err := s.LoadState(context.Background(), "conv-1")
	assert.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Equal(t, state.IntentUnknown, loaded.Intent)
	assert.Equal(t, state.ValidationFail, loaded.ValidationResult)
	assert.Equal(t, state.ConfirmationNotRequired, loaded.ConfirmationStatus)
}
