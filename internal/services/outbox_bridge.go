package services

import (
	"context"

	"github.com/fgc/catalog/domain"
	"github.com/fgc/catalog/internal/infrastructure/outbox"
)

// OutboxBridge adapts the BoltDB outbox store to the use-case staging port.
type OutboxBridge struct {
	store *outbox.Store
}

func NewOutboxBridge(store *outbox.Store) *OutboxBridge {
	return &OutboxBridge{store: store}
}

// Stage serializes the drained events and enqueues them for the relay.
func (b *OutboxBridge) Stage(ctx context.Context, events ...domain.DomainEvent) error {
	if b == nil || b.store == nil {
		return nil
	}
	for _, event := range events {
		item, err := outbox.FromEvent(event)
		if err != nil {
			return err
		}
		if err := b.store.Enqueue(item); err != nil {
			return err
		}
	}
	return nil
}
