package domain

import (
	"strings"
	"testing"
	"time"
)

func validGame(t *testing.T) *Game {
	t.Helper()
	game, err := NewGame(
		"Chrono Trigger",
		"A time travel RPG.",
		39.99,
		CategoryRPG,
		"Square",
		"Square",
		time.Date(1995, 3, 11, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("expected valid game, got %v", err)
	}
	return game
}

func TestNewGame_Defaults(t *testing.T) {
	t.Parallel()

	game := validGame(t)

	if game.ID() == "" {
		t.Error("expected a generated id")
	}
	if !game.IsActive() {
		t.Error("expected new game to be active")
	}
	if game.Rating() != 0 {
		t.Errorf("expected rating 0, got %v", game.Rating())
	}
	if game.TotalSales() != 0 {
		t.Errorf("expected total sales 0, got %v", game.TotalSales())
	}
	if game.CreatedAt().IsZero() {
		t.Error("expected createdAt to be stamped")
	}
	if game.UpdatedAt() != nil {
		t.Error("expected updatedAt to be nil on creation")
	}

	events := game.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected exactly one pending event, got %d", len(events))
	}
	created, ok := events[0].(GameCreatedEvent)
	if !ok {
		t.Fatalf("expected GameCreatedEvent, got %T", events[0])
	}
	if created.GameID != game.ID() || created.Title != "Chrono Trigger" || created.Price != 39.99 {
		t.Errorf("unexpected event payload: %+v", created)
	}
}

func TestNewGame_TrimsFields(t *testing.T) {
	t.Parallel()

	game, err := NewGame(
		"  Chrono Trigger  ",
		"  A time travel RPG.  ",
		39.99,
		CategoryRPG,
		"  Square  ",
		"  Square  ",
		time.Time{},
	)
	if err != nil {
		t.Fatalf("expected valid game, got %v", err)
	}

	if game.Title() != "Chrono Trigger" {
		t.Errorf("expected trimmed title, got %q", game.Title())
	}
	if game.Description() != "A time travel RPG." {
		t.Errorf("expected trimmed description, got %q", game.Description())
	}
	if game.Developer() != "Square" || game.Publisher() != "Square" {
		t.Errorf("expected trimmed developer/publisher, got %q / %q", game.Developer(), game.Publisher())
	}
}

func TestNewGame_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		title       string
		description string
		price       float64
		category    GameCategory
		developer   string
		publisher   string
		field       string
	}{
		{"empty title", "", "desc", 10, CategoryAction, "dev", "pub", "title"},
		{"whitespace title", "   ", "desc", 10, CategoryAction, "dev", "pub", "title"},
		{"short title", "A", "desc", 10, CategoryAction, "dev", "pub", "title"},
		{"long title", strings.Repeat("a", 201), "desc", 10, CategoryAction, "dev", "pub", "title"},
		{"empty description", "Doom", "", 10, CategoryAction, "dev", "pub", "description"},
		{"long description", "Doom", strings.Repeat("a", 2001), 10, CategoryAction, "dev", "pub", "description"},
		{"negative price", "Doom", "desc", -0.01, CategoryAction, "dev", "pub", "price"},
		{"price too high", "Doom", "desc", 1000000, CategoryAction, "dev", "pub", "price"},
		{"unknown category", "Doom", "desc", 10, GameCategory(99), "dev", "pub", "category"},
		{"empty developer", "Doom", "desc", 10, CategoryAction, "  ", "pub", "developer"},
		{"long developer", "Doom", "desc", 10, CategoryAction, strings.Repeat("a", 201), "pub", "developer"},
		{"empty publisher", "Doom", "desc", 10, CategoryAction, "dev", "", "publisher"},
		{"long publisher", "Doom", "desc", 10, CategoryAction, "dev", strings.Repeat("a", 201), "publisher"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewGame(tc.title, tc.description, tc.price, tc.category, tc.developer, tc.publisher, time.Time{})
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !IsDomainError(err, ErrCodeValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
			if FieldOf(err) != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, FieldOf(err))
			}
		})
	}
}

func TestGame_UpdatePrice(t *testing.T) {
	t.Parallel()

	game := validGame(t)
	game.DrainEvents()

	if err := game.UpdatePrice(19.99); err != nil {
		t.Fatalf("expected price update to succeed, got %v", err)
	}
	if game.Price() != 19.99 {
		t.Errorf("expected price 19.99, got %v", game.Price())
	}
	if game.UpdatedAt() == nil {
		t.Error("expected updatedAt to be stamped")
	}

	events := game.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	updated, ok := events[0].(GamePriceUpdatedEvent)
	if !ok {
		t.Fatalf("expected GamePriceUpdatedEvent, got %T", events[0])
	}
	if updated.OldPrice != 39.99 || updated.NewPrice != 19.99 {
		t.Errorf("unexpected event payload: %+v", updated)
	}
}

func TestGame_UpdatePrice_NegativeLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	game := validGame(t)
	game.DrainEvents()

	err := game.UpdatePrice(-5)
	if !IsDomainError(err, ErrCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if game.Price() != 39.99 {
		t.Errorf("expected price unchanged, got %v", game.Price())
	}
	if game.UpdatedAt() != nil {
		t.Error("expected updatedAt unchanged on failed mutation")
	}
	if events := game.DrainEvents(); len(events) != 0 {
		t.Errorf("expected no events on failed mutation, got %d", len(events))
	}
}

func TestGame_UpdatePrice_InactiveIsStateError(t *testing.T) {
	t.Parallel()

	game := validGame(t)
	if err := game.Deactivate(); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if err := game.UpdatePrice(10); !IsDomainError(err, ErrCodeState) {
		t.Errorf("expected state error, got %v", err)
	}
}

func TestGame_ActivationStateMachine(t *testing.T) {
	t.Parallel()

	game := validGame(t)
	game.DrainEvents()

	if err := game.Deactivate(); err != nil {
		t.Fatalf("first deactivate failed: %v", err)
	}
	if game.IsActive() {
		t.Error("expected game to be inactive")
	}

	if err := game.Deactivate(); !IsDomainError(err, ErrCodeState) {
		t.Errorf("expected state error on redundant deactivate, got %v", err)
	}

	if err := game.Activate(); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if !game.IsActive() {
		t.Error("expected game to be active again")
	}

	if err := game.Activate(); !IsDomainError(err, ErrCodeState) {
		t.Errorf("expected state error on redundant activate, got %v", err)
	}

	events := game.DrainEvents()
	if len(events) != 2 {
		t.Fatalf("expected two events (deactivated, activated), got %d", len(events))
	}
	if _, ok := events[0].(GameDeactivatedEvent); !ok {
		t.Errorf("expected GameDeactivatedEvent first, got %T", events[0])
	}
	if _, ok := events[1].(GameActivatedEvent); !ok {
		t.Errorf("expected GameActivatedEvent second, got %T", events[1])
	}
}

func TestGame_UpdateDetails(t *testing.T) {
	t.Parallel()

	game := validGame(t)
	game.DrainEvents()

	if err := game.UpdateDetails(" Doom ", " Rip and tear. ", "id Software", "Bethesda"); err != nil {
		t.Fatalf("expected details update to succeed, got %v", err)
	}
	if game.Title() != "Doom" || game.Description() != "Rip and tear." {
		t.Errorf("expected trimmed fields, got %q / %q", game.Title(), game.Description())
	}
	if events := game.DrainEvents(); len(events) != 0 {
		t.Errorf("details update must not emit events, got %d", len(events))
	}

	if err := game.Deactivate(); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := game.UpdateDetails("Doom", "desc", "dev", "pub"); !IsDomainError(err, ErrCodeState) {
		t.Errorf("expected state error on inactive game, got %v", err)
	}
}

func TestGame_ChangeCategory(t *testing.T) {
	t.Parallel()

	game := validGame(t)
	game.DrainEvents()

	if err := game.ChangeCategory(CategoryFPS); err != nil {
		t.Fatalf("expected category change to succeed, got %v", err)
	}
	if game.Category() != CategoryFPS {
		t.Errorf("expected FPS, got %v", game.Category())
	}
	if events := game.DrainEvents(); len(events) != 0 {
		t.Errorf("category change must not emit events, got %d", len(events))
	}

	if err := game.ChangeCategory(GameCategory(-1)); !IsDomainError(err, ErrCodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGame_UpdateRating(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rating float64
		ok     bool
	}{
		{-0.01, false},
		{5.01, false},
		{0, true},
		{5, true},
		{4.5, true},
	}

	for _, tc := range cases {
		game := validGame(t)
		err := game.UpdateRating(tc.rating)
		if tc.ok && err != nil {
			t.Errorf("UpdateRating(%v): unexpected error %v", tc.rating, err)
		}
		if !tc.ok {
			if !IsDomainError(err, ErrCodeValidation) {
				t.Errorf("UpdateRating(%v): expected validation error, got %v", tc.rating, err)
			}
			if game.Rating() != 0 {
				t.Errorf("UpdateRating(%v): rating must be unchanged, got %v", tc.rating, game.Rating())
			}
		}
		if tc.ok && game.Rating() != tc.rating {
			t.Errorf("UpdateRating(%v): expected rating set, got %v", tc.rating, game.Rating())
		}
	}
}

func TestGame_UpdateRating_AllowedWhileInactive(t *testing.T) {
	t.Parallel()

	game := validGame(t)
	if err := game.Deactivate(); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := game.UpdateRating(4); err != nil {
		t.Errorf("rating update on inactive game must succeed, got %v", err)
	}
}

func TestGame_IncrementSales(t *testing.T) {
	t.Parallel()

	game := validGame(t)

	for _, quantity := range []int{0, -3} {
		if err := game.IncrementSales(quantity); !IsDomainError(err, ErrCodeValidation) {
			t.Errorf("IncrementSales(%d): expected validation error, got %v", quantity, err)
		}
		if game.TotalSales() != 0 {
			t.Errorf("IncrementSales(%d): totalSales must be unchanged, got %d", quantity, game.TotalSales())
		}
	}

	if err := game.IncrementSales(3); err != nil {
		t.Fatalf("IncrementSales(3): unexpected error %v", err)
	}
	if err := game.IncrementSales(2); err != nil {
		t.Fatalf("IncrementSales(2): unexpected error %v", err)
	}
	if game.TotalSales() != 5 {
		t.Errorf("expected totalSales 5, got %d", game.TotalSales())
	}
}

func TestGame_DrainEventsIsIdempotent(t *testing.T) {
	t.Parallel()

	game := validGame(t)

	if events := game.DrainEvents(); len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events := game.DrainEvents(); len(events) != 0 {
		t.Errorf("expected drained list to stay empty, got %d", len(events))
	}

	if err := game.UpdatePrice(9.99); err != nil {
		t.Fatalf("price update failed: %v", err)
	}
	if events := game.DrainEvents(); len(events) != 1 {
		t.Errorf("expected one event after new mutation, got %d", len(events))
	}
}

func TestRehydrate_RoundTrip(t *testing.T) {
	t.Parallel()

	updatedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	game := Rehydrate(
		"id-1",
		"Doom",
		"Rip and tear.",
		19.99,
		CategoryFPS,
		"id Software",
		"Bethesda",
		time.Date(1993, 12, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		&updatedAt,
		false,
		4.8,
		1200,
	)

	if game.ID() != "id-1" || game.Title() != "Doom" || game.Price() != 19.99 {
		t.Errorf("unexpected rehydrated state: %q %q %v", game.ID(), game.Title(), game.Price())
	}
	if game.IsActive() {
		t.Error("expected inactive game")
	}
	if game.Rating() != 4.8 || game.TotalSales() != 1200 {
		t.Errorf("unexpected rating/sales: %v / %d", game.Rating(), game.TotalSales())
	}
	if got := game.UpdatedAt(); got == nil || !got.Equal(updatedAt) {
		t.Errorf("expected updatedAt %v, got %v", updatedAt, got)
	}
	if events := game.DrainEvents(); len(events) != 0 {
		t.Errorf("rehydration must not queue events, got %d", len(events))
	}
}
