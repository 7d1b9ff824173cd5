package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fgc/catalog/domain"
)

// Item represents a domain event staged for publication.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
	Retries     int             `json:"retries"`
	Timestamp   time.Time       `json:"timestamp"`

	bucketKey []byte
}

// FromEvent serializes a domain event into an outbox item.
func FromEvent(event domain.DomainEvent) (Item, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return Item{}, err
	}
	return Item{
		ID:          event.EventID(),
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Timestamp:   event.OccurredOn(),
	}, nil
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
