package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bima/pkg/requestcontext"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{
		UserID:  "agent-1",
		Action:  ActionQuoteCreated,
		Product: "travel",
	})
	require.NoError(t, err)

	events, err := store.ListByUser(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionQuoteCreated, events[0].Action)
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{
		UserID: "agent-1",
		Action: ActionPaymentSucceeded,
	})
	require.NoError(t, err)

	// Wait for async processing
	time.Sleep(100 * time.Millisecond)

	events, err := store.ListByUser(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionPaymentSucceeded, events[0].Action)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		err := pub.Emit(context.Background(), Event{
			UserID: "agent-1",
			Action: ActionQuoteCreated,
		})
		require.NoError(t, err)
	}

	pub.Close()

	events, err := store.ListByUser(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	// Saturate the inbox with concurrent writes; drops must not panic or
	// block, and the publisher must keep working.
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pub.Emit(context.Background(), Event{
				UserID: "agent-1",
				Action: ActionQuoteCreated,
			})
		}()
	}
	wg.Wait()
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	before := time.Now()
	err := pub.Emit(context.Background(), Event{UserID: "agent-1", Action: ActionUserLoggedIn})
	require.NoError(t, err)
	after := time.Now()

	events, err := store.ListByUser(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, !events[0].Timestamp.Before(before), "timestamp should be >= before")
	assert.True(t, !events[0].Timestamp.After(after), "timestamp should be <= after")
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	customTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	err := pub.Emit(context.Background(), Event{
		UserID:    "agent-1",
		Action:    ActionQuoteDeleted,
		Timestamp: customTime,
	})
	require.NoError(t, err)

	events, err := store.ListByUser(context.Background(), "agent-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestFanout_ForwardsToAllSinks(t *testing.T) {
	first := NewMemoryStore()
	second := NewMemoryStore()
	sink := Fanout{first, second}

	require.NoError(t, sink.Append(context.Background(), Event{UserID: "agent-1", Action: ActionQuoteCreated}))

	for _, store := range []*MemoryStore{first, second} {
		events, err := store.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, events, 1)
	}
}

func TestPublisher_StampsClientMetadata(t *testing.T) {
	store := NewMemoryStore()
	p := NewPublisher(store)

	ctx := requestcontext.WithClientMetadata(context.Background(), "203.0.113.9", "Firefox/128.0 (Linux)")
	require.NoError(t, p.Emit(ctx, Event{UserID: "agent-1", Action: ActionUserLoggedIn}))

	events, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "203.0.113.9", events[0].ClientIP)
	assert.Equal(t, "Firefox/128.0 (Linux)", events[0].UserAgent)
}
