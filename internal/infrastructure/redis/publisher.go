package redis

import (
	"context"
	"encoding/json"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/fgc/catalog/internal/infrastructure/outbox"
)

// EventPublisher pushes staged domain events onto a Redis channel.
type EventPublisher struct {
	client  *goRedis.Client
	channel string
}

// NewEventPublisher creates a publisher for the given channel.
func NewEventPublisher(client *goRedis.Client, channel string) *EventPublisher {
	if channel == "" {
		channel = "catalog.events"
	}
	return &EventPublisher{
		client:  client,
		channel: channel,
	}
}

// Publish serializes the outbox item and publishes it.
func (p *EventPublisher) Publish(ctx context.Context, item outbox.Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}
