package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fgc/catalog/domain"
)

// CreateGameInput carries the fields required to add a game to the catalog.
type CreateGameInput struct {
	Title       string
	Description string
	Price       float64
	Category    domain.GameCategory
	Developer   string
	Publisher   string
	ReleaseDate time.Time
}

// CreateGame adds a new game. Titles are unique across the whole catalog,
// including deactivated games.
func (uc *UseCase) CreateGame(ctx context.Context, input *CreateGameInput) (*GameResponse, error) {
	if input == nil {
		return nil, domain.ErrInvalidInput
	}

	exists, err := uc.games.ExistsByTitle(ctx, input.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError(fmt.Sprintf("a game titled %q already exists", input.Title))
	}

	game, err := domain.NewGame(
		input.Title,
		input.Description,
		input.Price,
		input.Category,
		input.Developer,
		input.Publisher,
		input.ReleaseDate,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.games.Save(ctx, game); err != nil {
		return nil, err
	}
	uc.stageEvents(ctx, game)

	uc.logger.Info("game created", zap.String("game_id", game.ID()), zap.String("title", game.Title()))
	return project(game), nil
}

// UpdatePrice changes the price of an active game.
func (uc *UseCase) UpdatePrice(ctx context.Context, id string, newPrice float64) (*GameResponse, error) {
	return uc.mutate(ctx, id, func(game *domain.Game) error {
		return game.UpdatePrice(newPrice)
	})
}

// UpdateDetails replaces the descriptive fields of an active game.
func (uc *UseCase) UpdateDetails(ctx context.Context, id, title, description, developer, publisher string) (*GameResponse, error) {
	return uc.mutate(ctx, id, func(game *domain.Game) error {
		return game.UpdateDetails(title, description, developer, publisher)
	})
}

// ChangeCategory moves an active game to another category.
func (uc *UseCase) ChangeCategory(ctx context.Context, id string, category domain.GameCategory) (*GameResponse, error) {
	return uc.mutate(ctx, id, func(game *domain.Game) error {
		return game.ChangeCategory(category)
	})
}

// UpdateRating sets the game's aggregate rating.
func (uc *UseCase) UpdateRating(ctx context.Context, id string, rating float64) (*GameResponse, error) {
	return uc.mutate(ctx, id, func(game *domain.Game) error {
		return game.UpdateRating(rating)
	})
}

// IncrementSales adds quantity to the game's sales counter.
func (uc *UseCase) IncrementSales(ctx context.Context, id string, quantity int) (*GameResponse, error) {
	return uc.mutate(ctx, id, func(game *domain.Game) error {
		return game.IncrementSales(quantity)
	})
}

// DeactivateGame soft-deletes a game.
func (uc *UseCase) DeactivateGame(ctx context.Context, id string) (*GameResponse, error) {
	return uc.mutate(ctx, id, func(game *domain.Game) error {
		return game.Deactivate()
	})
}

// ActivateGame returns a deactivated game to the catalog.
func (uc *UseCase) ActivateGame(ctx context.Context, id string) (*GameResponse, error) {
	return uc.mutate(ctx, id, func(game *domain.Game) error {
		return game.Activate()
	})
}

// DeleteGame performs the repository's soft delete. Unknown ids are a no-op.
func (uc *UseCase) DeleteGame(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrGameNotFound
	}
	return uc.games.Delete(ctx, id)
}

// mutate runs the read-mutate-write sequence shared by every command:
// load, apply one aggregate operation, save, drain events, project.
func (uc *UseCase) mutate(ctx context.Context, id string, op func(*domain.Game) error) (*GameResponse, error) {
	game, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := op(game); err != nil {
		return nil, err
	}

	if err := uc.games.Save(ctx, game); err != nil {
		return nil, err
	}
	uc.stageEvents(ctx, game)

	return project(game), nil
}
