package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fgc/catalog/domain"
	"github.com/fgc/catalog/internal/infrastructure/outbox"
)

type recordingPublisher struct {
	published []outbox.Item
	err       error
}

func (p *recordingPublisher) Publish(ctx context.Context, item outbox.Item) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, item)
	return nil
}

type staticHealth struct {
	online bool
}

func (h staticHealth) IsOnline() bool { return h.online }

func relayStore(t *testing.T) *outbox.Store {
	t.Helper()
	store, err := outbox.Open(filepath.Join(t.TempDir(), "outbox.db"), "outbox")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func stageEvent(t *testing.T, store *outbox.Store) outbox.Item {
	t.Helper()
	game, err := domain.NewGame("Doom", "A description.", 19.99, domain.CategoryFPS,
		"id Software", "Bethesda", time.Date(1993, 12, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	events := game.DrainEvents()
	require.Len(t, events, 1)

	item, err := outbox.FromEvent(events[0])
	require.NoError(t, err)
	require.NoError(t, store.Enqueue(item))
	return item
}

func TestOutboxRelay_DrainPublishesAndRemoves(t *testing.T) {
	t.Parallel()

	store := relayStore(t)
	staged := stageEvent(t, store)

	publisher := &recordingPublisher{}
	relay := NewOutboxRelay(store, staticHealth{online: true}, publisher, nil, RelayConfig{})

	require.NoError(t, relay.Drain(context.Background()))

	require.Len(t, publisher.published, 1)
	assert.Equal(t, staged.ID, publisher.published[0].ID)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestOutboxRelay_SkipsWhenOffline(t *testing.T) {
	t.Parallel()

	store := relayStore(t)
	stageEvent(t, store)

	publisher := &recordingPublisher{}
	relay := NewOutboxRelay(store, staticHealth{online: false}, publisher, nil, RelayConfig{})

	require.NoError(t, relay.Drain(context.Background()))
	assert.Empty(t, publisher.published)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestOutboxRelay_RequeuesFailedPublish(t *testing.T) {
	t.Parallel()

	store := relayStore(t)
	stageEvent(t, store)

	publisher := &recordingPublisher{err: errors.New("broker down")}
	relay := NewOutboxRelay(store, staticHealth{online: true}, publisher, nil, RelayConfig{MaxRetries: 3})

	require.NoError(t, relay.Drain(context.Background()))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Retries)
}

func TestOutboxRelay_DropsAfterRetryCap(t *testing.T) {
	t.Parallel()

	store := relayStore(t)
	stageEvent(t, store)

	publisher := &recordingPublisher{err: errors.New("broker down")}
	relay := NewOutboxRelay(store, staticHealth{online: true}, publisher, nil, RelayConfig{MaxRetries: 2})

	for i := 0; i < 2; i++ {
		require.NoError(t, relay.Drain(context.Background()))
	}

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestOutboxRelay_CleanupDropsExpiredItems(t *testing.T) {
	t.Parallel()

	store := relayStore(t)
	for _, item := range []outbox.Item{
		{ID: "a", Name: domain.EventGameCreated, Payload: []byte(`{}`), Timestamp: time.Now().Add(-3 * time.Hour)},
		{ID: "b", Name: domain.EventGameCreated, Payload: []byte(`{}`), Timestamp: time.Now().Add(-2 * time.Hour)},
	} {
		require.NoError(t, store.Enqueue(item))
	}

	// Batch size 1: "a" fails and is requeued with a fresh timestamp, "b"
	// stays untouched and is past retention.
	publisher := &recordingPublisher{err: errors.New("broker down")}
	relay := NewOutboxRelay(store, staticHealth{online: true}, publisher, nil, RelayConfig{
		BatchSize:  1,
		MaxRetries: 5,
		Retention:  time.Hour,
	})

	require.NoError(t, relay.Drain(context.Background()))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 1, items[0].Retries)
}
