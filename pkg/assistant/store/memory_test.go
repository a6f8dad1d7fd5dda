package store

import (
	"context"
	"testing"
	"time"

	"ai-billing-be/pkg/assistant/state"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreStateRoundTrip(t *testing.T) {
	s := NewMemoryStore(30*time.Minute, 5*time.Minute)
	ctx := context.Background()

	st := state.New("conv-1", "tenant-1", "user-1", "oi")
	st = st.Apply(state.SetIntent(state.IntentListBoletos, 0.8))

	assert.NoError(t, s.SaveState(ctx, st))

	loaded, err := s.LoadState(ctx, "conv-1")
	assert.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Equal(t, state.IntentListBoletos, loaded.Intent)

	assert.NoError(t, s.DeleteState(ctx, "conv-1"))
	loaded, err = s.LoadState(ctx, "conv-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreConfirmationTTL(t *testing.T) {
	s := NewMemoryStore(time.Minute, 20*time.Millisecond)
	ctx := context.Background()

	assert.NoError(t, s.SavePendingConfirmation(ctx, "conv-1", PendingConfirmation{
		Intent:   state.IntentCreateBoleto,
		TenantId: "t",
	}))

	pending, err := s.LoadPendingConfirmation(ctx, "conv-1")
	assert.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Equal(t, state.IntentCreateBoleto, pending.Intent)

	time.Sleep(40 * time.Millisecond)

	pending, err = s.LoadPendingConfirmation(ctx, "conv-1")
	assert.NoError(t, err)
	assert.Nil(t, pending)
}

func TestMemoryStoreLoadAbsent(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)
	ctx := context.Background()

	loaded, err := s.LoadState(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	pending, err := s.LoadPendingConfirmation(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, pending)
}
