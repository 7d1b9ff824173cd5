package usecase

import (
	"context"

	"github.com/fgc/catalog/domain"
)

// EventOutbox abstracts the event staging store so use cases stay
// storage-agnostic. Events are staged after the aggregate is durably saved.
type EventOutbox interface {
	Stage(ctx context.Context, events ...domain.DomainEvent) error
}
