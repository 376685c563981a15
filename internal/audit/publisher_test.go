package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "bloodhound/pkg/domain"
	"bloodhound/pkg/requestcontext"
)

type failingSink struct{ calls int }

func (s *failingSink) Publish(context.Context, Event) error {
	s.calls++
	return errors.New("broker down")
}

type capturingSink struct{ events []Event }

func (s *capturingSink) Publish(_ context.Context, event Event) error {
	s.events = append(s.events, event)
	return nil
}

func TestPublisher_RecordStampsContextMetadata(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	userID := id.UserID(uuid.New())
	entityID := id.EntityID(uuid.New())
	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	ctx := context.Background()
	ctx = requestcontext.WithUserID(ctx, userID)
	ctx = requestcontext.WithEntityID(ctx, entityID)
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.9", "Chrome/120 (Linux)")
	ctx = requestcontext.WithRequestID(ctx, "req-123")
	ctx = requestcontext.WithTime(ctx, fixed)

	err := publisher.Record(ctx, Event{
		Action:    ActionVendorEvaluated,
		GSTINHash: HashGSTIN("29ABCDE1234F1Z5"),
		Decision:  "Critical",
	})
	require.NoError(t, err)

	events, err := publisher.List(ctx, entityID)
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, ActionVendorEvaluated, got.Action)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, entityID, got.EntityID)
	assert.Equal(t, fixed, got.Timestamp)
	assert.Equal(t, "203.0.113.9", got.IP)
	assert.Equal(t, "Chrome/120 (Linux)", got.UserAgent)
	assert.Equal(t, "req-123", got.RequestID)
	assert.Equal(t, "Critical", got.Decision)
	assert.NotEmpty(t, got.GSTINHash)
	assert.NotEqual(t, "29ABCDE1234F1Z5", got.GSTINHash, "raw GSTIN must not appear in the trail")
}

func TestPublisher_ExplicitFieldsWin(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	entityID := id.EntityID(uuid.New())
	explicit := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ctx := requestcontext.WithEntityID(context.Background(), entityID)
	err := publisher.Record(ctx, Event{
		Action:    ActionLoginFailed,
		Timestamp: explicit,
		IP:        "198.51.100.7",
	})
	require.NoError(t, err)

	events, err := store.ListByEntity(ctx, entityID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, explicit, events[0].Timestamp)
	assert.Equal(t, "198.51.100.7", events[0].IP)
}

func TestPublisher_SinkFailureDoesNotFailRecord(t *testing.T) {
	store := NewInMemoryStore()
	sink := &failingSink{}
	publisher := NewPublisher(store, WithSink(sink))

	entityID := id.EntityID(uuid.New())
	ctx := requestcontext.WithEntityID(context.Background(), entityID)

	err := publisher.Record(ctx, Event{Action: ActionVendorEvaluated})
	require.NoError(t, err, "the store is the source of truth; sink failures are logged only")
	assert.Equal(t, 1, sink.calls)

	events, err := store.ListByEntity(ctx, entityID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestPublisher_SinkReceivesStampedEvent(t *testing.T) {
	store := NewInMemoryStore()
	sink := &capturingSink{}
	publisher := NewPublisher(store, WithSink(sink))

	entityID := id.EntityID(uuid.New())
	ctx := requestcontext.WithEntityID(context.Background(), entityID)
	ctx = requestcontext.WithRequestID(ctx, "req-777")

	require.NoError(t, publisher.Record(ctx, Event{Action: ActionVendorWatchlisted}))
	require.Len(t, sink.events, 1)
	assert.Equal(t, entityID, sink.events[0].EntityID)
	assert.Equal(t, "req-777", sink.events[0].RequestID)
}

func TestWorker_DrainsInbox(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	entityID := id.EntityID(uuid.New())
	inbox <- Event{Action: ActionLoginSucceeded, EntityID: entityID}
	inbox <- Event{Action: ActionVendorEvaluated, EntityID: entityID}

	require.Eventually(t, func() bool {
		events, err := store.ListByEntity(context.Background(), entityID)
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestChannelStore_FeedsWorker(t *testing.T) {
	backing := NewInMemoryStore()
	channelStore, inbox := NewChannelStore(backing, 4)
	worker := NewWorker(backing, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	entityID := id.EntityID(uuid.New())
	publisher := NewPublisher(channelStore)
	require.NoError(t, publisher.Record(context.Background(), Event{
		Action:   ActionVendorEvaluated,
		EntityID: entityID,
	}))

	require.Eventually(t, func() bool {
		events, err := channelStore.ListByEntity(context.Background(), entityID)
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestChannelStore_AppendHonorsContextCancel(t *testing.T) {
	// Unbuffered inbox with no worker attached; Append must not block forever.
	channelStore, _ := NewChannelStore(NewInMemoryStore(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := channelStore.Append(ctx, Event{Action: ActionLoginFailed})
	assert.ErrorIs(t, err, context.Canceled)
}
