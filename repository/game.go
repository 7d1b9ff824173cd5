package repository

import (
	"context"

	"github.com/fgc/catalog/domain"
)

// GameRepository is the persistence capability the catalog core depends on.
// Lookups distinguish "not found" (domain.ErrGameNotFound) from
// infrastructure failures, which are propagated unmodified.
type GameRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	GetAll(ctx context.Context) ([]*domain.Game, error)
	GetByCategory(ctx context.Context, category domain.GameCategory) ([]*domain.Game, error)
	GetActiveGames(ctx context.Context) ([]*domain.Game, error)
	SearchByTitle(ctx context.Context, term string) ([]*domain.Game, error)
	GetTopRated(ctx context.Context, count int) ([]*domain.Game, error)
	GetMostSold(ctx context.Context, count int) ([]*domain.Game, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Save(ctx context.Context, game *domain.Game) error
	Delete(ctx context.Context, id string) error
}
