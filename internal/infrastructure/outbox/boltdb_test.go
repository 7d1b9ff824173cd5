package outbox

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fgc/catalog/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "outbox.db"), "outbox")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func stagedItem(id string, at time.Time) Item {
	return Item{
		ID:          id,
		Name:        domain.EventGameCreated,
		AggregateID: "game-1",
		Payload:     []byte(`{"id":"` + id + `"}`),
		Timestamp:   at,
	}
}

func TestStore_EnqueueAndGetBatch(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	base := time.Now()
	require.NoError(t, store.Enqueue(stagedItem("b", base.Add(time.Second))))
	require.NoError(t, store.Enqueue(stagedItem("a", base)))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Oldest first.
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)

	limited, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "a", limited[0].ID)
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	require.NoError(t, store.Enqueue(stagedItem("a", time.Now())))
	require.NoError(t, store.Enqueue(stagedItem("b", time.Now().Add(time.Second))))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NoError(t, store.Remove(items[0]))

	remaining, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].ID)

	// Items without a bucket key are removed by id.
	require.NoError(t, store.Remove(stagedItem("b", time.Time{})))
	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestStore_RequeueMovesItemToBack(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	base := time.Now().Add(-time.Minute)
	require.NoError(t, store.Enqueue(stagedItem("first", base)))
	require.NoError(t, store.Enqueue(stagedItem("second", base.Add(time.Second))))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	failed := items[0]
	failed.Retries = 1
	require.NoError(t, store.Remove(failed))
	require.NoError(t, store.Requeue(failed))

	reordered, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, reordered, 2)
	assert.Equal(t, "second", reordered[0].ID)
	assert.Equal(t, "first", reordered[1].ID)
	assert.Equal(t, 1, reordered[1].Retries)
}

func TestStore_Cleanup(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	require.NoError(t, store.Enqueue(stagedItem("stale", time.Now().Add(-2*time.Hour))))
	require.NoError(t, store.Enqueue(stagedItem("fresh", time.Now())))

	require.NoError(t, store.Cleanup(time.Now().Add(-time.Hour)))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].ID)
}

func TestFromEvent(t *testing.T) {
	t.Parallel()

	game, err := domain.NewGame("Doom", "A description.", 19.99, domain.CategoryFPS,
		"id Software", "Bethesda", time.Date(1993, 12, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	events := game.DrainEvents()
	require.Len(t, events, 1)

	item, err := FromEvent(events[0])
	require.NoError(t, err)
	assert.Equal(t, events[0].EventID(), item.ID)
	assert.Equal(t, domain.EventGameCreated, item.Name)
	assert.Equal(t, game.ID(), item.AggregateID)
	assert.Equal(t, events[0].OccurredOn(), item.Timestamp)
	assert.JSONEq(t, `{
		"id": "`+events[0].EventID()+`",
		"game_id": "`+game.ID()+`",
		"title": "Doom",
		"price": 19.99,
		"created_at": "`+game.CreatedAt().Format(time.RFC3339Nano)+`",
		"occurred_at": "`+events[0].OccurredOn().Format(time.RFC3339Nano)+`"
	}`, string(item.Payload))
}
