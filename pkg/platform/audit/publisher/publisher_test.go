package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "estategate/pkg/platform/audit"
	"estategate/pkg/platform/audit/buffer"
	"estategate/pkg/platform/audit/store/memory"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("disk full")
}

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	err := pub.Emit(context.Background(), audit.Event{
		Action:  audit.EventVisitorVerified,
		Subject: "GOOD777",
	})
	require.NoError(t, err)

	events, err := store.ListBySubject(context.Background(), "GOOD777")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.EventVisitorVerified, events[0].Action)
	assert.False(t, pub.Async())
}

func TestPublisher_AsyncModeOnlyEnqueues(t *testing.T) {
	store := memory.NewInMemoryStore()
	buf := buffer.NewRingBuffer(10)
	pub := NewPublisher(store, WithAsyncBuffer(buf))

	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: audit.EventVisitorDenied, Subject: "BLOCK123"}))

	assert.True(t, pub.Async())
	assert.Equal(t, 1, buf.Len())
	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestPublisher_BufferFullDropsOldest(t *testing.T) {
	buf := buffer.NewRingBuffer(1)
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(buf))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pub.Emit(context.Background(), audit.Event{Action: audit.EventVisitorVerified})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, buf.Len())
	assert.Equal(t, int64(9), buf.Dropped())
}

func TestPublisher_SetsTimestampAndCategory(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	before := time.Now()
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: audit.EventEmergencyRaised, Subject: "a-1"}))
	after := time.Now()

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.Before(before))
	assert.False(t, events[0].Timestamp.After(after))
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		Action:    audit.EventVisitorCheckedOut,
		Timestamp: customTime,
	}))

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_ContextCancellation(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.Emit(ctx, audit.Event{Action: audit.EventVisitorVerified})
	assert.ErrorIs(t, err, context.Canceled)

	events, _ := store.ListAll(context.Background())
	assert.Empty(t, events)
}

func TestPublisher_StoreFailureIsReturned(t *testing.T) {
	pub := NewPublisher(failingStore{})
	err := pub.Emit(context.Background(), audit.Event{Action: audit.EventVisitorVerified})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPublisher_PreservesOrder(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	actions := []audit.AuditEvent{
		audit.EventVisitorVerified,
		audit.EventVisitorUpdated,
		audit.EventVisitorCheckedOut,
	}
	for _, a := range actions {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: a, Subject: "GOOD777"}))
	}

	events, err := store.ListBySubject(context.Background(), "GOOD777")
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, a := range actions {
		assert.Equal(t, a, events[i].Action)
	}
}
