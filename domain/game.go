package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field constraints enforced by the aggregate.
const (
	TitleMinLen       = 2
	TitleMaxLen       = 200
	DescriptionMaxLen = 2000
	DeveloperMaxLen   = 200
	PublisherMaxLen   = 200
	MaxPrice          = 999999.99
	MaxRating         = 5.0
)

// Game is the catalog aggregate root. All state changes go through named
// business operations; fields are never assigned from outside the package.
type Game struct {
	id          string
	title       string
	description string
	price       float64
	category    GameCategory
	developer   string
	publisher   string
	releaseDate time.Time
	createdAt   time.Time
	updatedAt   *time.Time
	isActive    bool
	rating      float64
	totalSales  int

	events []DomainEvent
}

// NewGame validates every field and returns a fresh aggregate with one
// pending GameCreatedEvent.
func NewGame(title, description string, price float64, category GameCategory, developer, publisher string, releaseDate time.Time) (*Game, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	description, err = validateDescription(description)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, NewValidationError("category", "category is not a known game category")
	}
	developer, err = validateDeveloper(developer)
	if err != nil {
		return nil, err
	}
	publisher, err = validatePublisher(publisher)
	if err != nil {
		return nil, err
	}

	g := &Game{
		id:          uuid.NewString(),
		title:       title,
		description: description,
		price:       price,
		category:    category,
		developer:   developer,
		publisher:   publisher,
		releaseDate: releaseDate,
		createdAt:   time.Now().UTC(),
		isActive:    true,
	}

	g.record(newGameCreatedEvent(g.id, g.title, g.price, g.createdAt))
	return g, nil
}

// Rehydrate rebuilds an aggregate from persisted state without validation or
// events. Reserved for repository implementations.
func Rehydrate(id, title, description string, price float64, category GameCategory, developer, publisher string,
	releaseDate, createdAt time.Time, updatedAt *time.Time, isActive bool, rating float64, totalSales int) *Game {
	return &Game{
		id:          id,
		title:       title,
		description: description,
		price:       price,
		category:    category,
		developer:   developer,
		publisher:   publisher,
		releaseDate: releaseDate,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		isActive:    isActive,
		rating:      rating,
		totalSales:  totalSales,
	}
}

func (g *Game) ID() string             { return g.id }
func (g *Game) Title() string          { return g.title }
func (g *Game) Description() string    { return g.description }
func (g *Game) Price() float64         { return g.price }
func (g *Game) Category() GameCategory { return g.category }
func (g *Game) Developer() string      { return g.developer }
func (g *Game) Publisher() string      { return g.publisher }
func (g *Game) ReleaseDate() time.Time { return g.releaseDate }
func (g *Game) CreatedAt() time.Time   { return g.createdAt }
func (g *Game) IsActive() bool         { return g.isActive }
func (g *Game) Rating() float64        { return g.rating }
func (g *Game) TotalSales() int        { return g.totalSales }

// UpdatedAt returns the last mutation time, or nil if the game was never
// mutated after creation.
func (g *Game) UpdatedAt() *time.Time {
	if g.updatedAt == nil {
		return nil
	}
	t := *g.updatedAt
	return &t
}

// UpdatePrice changes the price of an active game and emits a
// GamePriceUpdatedEvent carrying both old and new values.
func (g *Game) UpdatePrice(newPrice float64) error {
	if !g.isActive {
		return NewStateError("cannot change the price of an inactive game")
	}
	if err := validatePrice(newPrice); err != nil {
		return err
	}

	oldPrice := g.price
	g.price = newPrice
	g.touch()

	g.record(newGamePriceUpdatedEvent(g.id, g.title, oldPrice, newPrice, *g.updatedAt))
	return nil
}

// UpdateDetails re-validates and replaces the descriptive fields. Price and
// category are untouched and no event is emitted.
func (g *Game) UpdateDetails(title, description, developer, publisher string) error {
	if !g.isActive {
		return NewStateError("cannot update an inactive game")
	}

	title, err := validateTitle(title)
	if err != nil {
		return err
	}
	description, err = validateDescription(description)
	if err != nil {
		return err
	}
	developer, err = validateDeveloper(developer)
	if err != nil {
		return err
	}
	publisher, err = validatePublisher(publisher)
	if err != nil {
		return err
	}

	g.title = title
	g.description = description
	g.developer = developer
	g.publisher = publisher
	g.touch()
	return nil
}

// ChangeCategory moves an active game to another category.
func (g *Game) ChangeCategory(newCategory GameCategory) error {
	if !g.isActive {
		return NewStateError("cannot change the category of an inactive game")
	}
	if !newCategory.IsValid() {
		return NewValidationError("category", "category is not a known game category")
	}

	g.category = newCategory
	g.touch()
	return nil
}

// Deactivate soft-deletes the game. Deactivating twice is a state error.
func (g *Game) Deactivate() error {
	if !g.isActive {
		return NewStateError("game is already inactive")
	}

	g.isActive = false
	g.touch()

	g.record(newGameDeactivatedEvent(g.id, g.title, *g.updatedAt))
	return nil
}

// Activate returns a deactivated game to the catalog. Activating an active
// game is a state error.
func (g *Game) Activate() error {
	if g.isActive {
		return NewStateError("game is already active")
	}

	g.isActive = true
	g.touch()

	g.record(newGameActivatedEvent(g.id, g.title, *g.updatedAt))
	return nil
}

// UpdateRating sets the aggregate rating. Allowed regardless of activation
// state; reviews keep arriving for delisted games.
func (g *Game) UpdateRating(newRating float64) error {
	if newRating < 0 || newRating > MaxRating {
		return NewValidationError("rating", "rating must be between 0 and 5")
	}

	g.rating = newRating
	g.touch()
	return nil
}

// IncrementSales adds quantity to the sales counter.
func (g *Game) IncrementSales(quantity int) error {
	if quantity <= 0 {
		return NewValidationError("quantity", "quantity must be greater than zero")
	}

	g.totalSales += quantity
	g.touch()
	return nil
}

// DrainEvents returns the pending events and clears the internal list in one
// swap, so a drained event is never handed out twice. Callers drain after a
// successful save.
func (g *Game) DrainEvents() []DomainEvent {
	events := g.events
	g.events = nil
	return events
}

func (g *Game) record(event DomainEvent) {
	g.events = append(g.events, event)
}

func (g *Game) touch() {
	now := time.Now().UTC()
	g.updatedAt = &now
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", NewValidationError("title", "title is required")
	}
	if utf8.RuneCountInString(title) < TitleMinLen {
		return "", NewValidationError("title", "title must have at least 2 characters")
	}
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return "", NewValidationError("title", "title must have at most 200 characters")
	}
	return title, nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", NewValidationError("description", "description is required")
	}
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		return "", NewValidationError("description", "description must have at most 2000 characters")
	}
	return description, nil
}

func validatePrice(price float64) error {
	if price < 0 {
		return NewValidationError("price", "price cannot be negative")
	}
	if price > MaxPrice {
		return NewValidationError("price", "price exceeds the maximum allowed value")
	}
	return nil
}

func validateDeveloper(developer string) (string, error) {
	developer = strings.TrimSpace(developer)
	if developer == "" {
		return "", NewValidationError("developer", "developer is required")
	}
	if utf8.RuneCountInString(developer) > DeveloperMaxLen {
		return "", NewValidationError("developer", "developer must have at most 200 characters")
	}
	return developer, nil
}

func validatePublisher(publisher string) (string, error) {
	publisher = strings.TrimSpace(publisher)
	if publisher == "" {
		return "", NewValidationError("publisher", "publisher is required")
	}
	if utf8.RuneCountInString(publisher) > PublisherMaxLen {
		return "", NewValidationError("publisher", "publisher must have at most 200 characters")
	}
	return publisher, nil
}
