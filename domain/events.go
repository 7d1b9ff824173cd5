package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event names as they appear on the wire.
const (
	EventGameCreated      = "game.created"
	EventGamePriceUpdated = "game.price_updated"
	EventGameDeactivated  = "game.deactivated"
	EventGameActivated    = "game.activated"
)

// DomainEvent is an immutable record of a fact that happened to an aggregate.
// Events are queued on the aggregate and drained by the use-case layer after
// the aggregate is durably saved.
type DomainEvent interface {
	EventID() string
	EventName() string
	OccurredOn() time.Time
	AggregateID() string
}

// GameCreatedEvent is emitted once when a game enters the catalog.
type GameCreatedEvent struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id"`
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newGameCreatedEvent(gameID, title string, price float64, createdAt time.Time) GameCreatedEvent {
	return GameCreatedEvent{
		ID:         uuid.NewString(),
		GameID:     gameID,
		Title:      title,
		Price:      price,
		CreatedAt:  createdAt,
		OccurredAt: time.Now().UTC(),
	}
}

func (e GameCreatedEvent) EventID() string       { return e.ID }
func (e GameCreatedEvent) EventName() string     { return EventGameCreated }
func (e GameCreatedEvent) OccurredOn() time.Time { return e.OccurredAt }
func (e GameCreatedEvent) AggregateID() string   { return e.GameID }

// GamePriceUpdatedEvent carries the price before and after the change.
type GamePriceUpdatedEvent struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id"`
	Title      string    `json:"title"`
	OldPrice   float64   `json:"old_price"`
	NewPrice   float64   `json:"new_price"`
	UpdatedAt  time.Time `json:"updated_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newGamePriceUpdatedEvent(gameID, title string, oldPrice, newPrice float64, updatedAt time.Time) GamePriceUpdatedEvent {
	return GamePriceUpdatedEvent{
		ID:         uuid.NewString(),
		GameID:     gameID,
		Title:      title,
		OldPrice:   oldPrice,
		NewPrice:   newPrice,
		UpdatedAt:  updatedAt,
		OccurredAt: time.Now().UTC(),
	}
}

func (e GamePriceUpdatedEvent) EventID() string       { return e.ID }
func (e GamePriceUpdatedEvent) EventName() string     { return EventGamePriceUpdated }
func (e GamePriceUpdatedEvent) OccurredOn() time.Time { return e.OccurredAt }
func (e GamePriceUpdatedEvent) AggregateID() string   { return e.GameID }

// GameDeactivatedEvent marks a soft delete.
type GameDeactivatedEvent struct {
	ID            string    `json:"id"`
	GameID        string    `json:"game_id"`
	Title         string    `json:"title"`
	DeactivatedAt time.Time `json:"deactivated_at"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newGameDeactivatedEvent(gameID, title string, deactivatedAt time.Time) GameDeactivatedEvent {
	return GameDeactivatedEvent{
		ID:            uuid.NewString(),
		GameID:        gameID,
		Title:         title,
		DeactivatedAt: deactivatedAt,
		OccurredAt:    time.Now().UTC(),
	}
}

func (e GameDeactivatedEvent) EventID() string       { return e.ID }
func (e GameDeactivatedEvent) EventName() string     { return EventGameDeactivated }
func (e GameDeactivatedEvent) OccurredOn() time.Time { return e.OccurredAt }
func (e GameDeactivatedEvent) AggregateID() string   { return e.GameID }

// GameActivatedEvent marks a return to the active catalog.
type GameActivatedEvent struct {
	ID          string    `json:"id"`
	GameID      string    `json:"game_id"`
	Title       string    `json:"title"`
	ActivatedAt time.Time `json:"activated_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func newGameActivatedEvent(gameID, title string, activatedAt time.Time) GameActivatedEvent {
	return GameActivatedEvent{
		ID:          uuid.NewString(),
		GameID:      gameID,
		Title:       title,
		ActivatedAt: activatedAt,
		OccurredAt:  time.Now().UTC(),
	}
}

func (e GameActivatedEvent) EventID() string       { return e.ID }
func (e GameActivatedEvent) EventName() string     { return EventGameActivated }
func (e GameActivatedEvent) OccurredOn() time.Time { return e.OccurredAt }
func (e GameActivatedEvent) AggregateID() string   { return e.GameID }
