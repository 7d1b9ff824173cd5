package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fgc/catalog/domain"
)

// SearchGamesInput narrows the catalog. Term wins over Category; price bounds
// are inclusive and applied after the base set is chosen.
type SearchGamesInput struct {
	Term       string
	Category   *domain.GameCategory
	MinPrice   *float64
	MaxPrice   *float64
	OnlyActive bool
}

// GetGame resolves one game by id.
func (uc *UseCase) GetGame(ctx context.Context, id string) (*GameResponse, error) {
	game, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return project(game), nil
}

// ListGames returns the catalog ordered by title, optionally restricted to
// active games.
func (uc *UseCase) ListGames(ctx context.Context, onlyActive bool) ([]GameResponse, error) {
	var (
		games []*domain.Game
		err   error
	)
	if onlyActive {
		games, err = uc.games.GetActiveGames(ctx)
	} else {
		games, err = uc.games.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return projectAll(games), nil
}

// SearchGames applies the selection precedence (term, then category, then
// active-or-all) and filters the result by price bounds and activity.
func (uc *UseCase) SearchGames(ctx context.Context, input *SearchGamesInput) ([]GameResponse, error) {
	if input == nil {
		return nil, domain.ErrInvalidInput
	}

	var (
		games []*domain.Game
		err   error
	)
	switch {
	case strings.TrimSpace(input.Term) != "":
		games, err = uc.games.SearchByTitle(ctx, input.Term)
	case input.Category != nil:
		games, err = uc.games.GetByCategory(ctx, *input.Category)
	case input.OnlyActive:
		games, err = uc.games.GetActiveGames(ctx)
	default:
		games, err = uc.games.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	var filtered []*domain.Game
	for _, game := range games {
		if input.MinPrice != nil && game.Price() < *input.MinPrice {
			continue
		}
		if input.MaxPrice != nil && game.Price() > *input.MaxPrice {
			continue
		}
		// The active filter is applied even when the base query already
		// restricted to active games, mirroring the repository contract.
		if input.OnlyActive && !game.IsActive() {
			continue
		}
		filtered = append(filtered, game)
	}

	return projectAll(filtered), nil
}

// TopRated returns the highest-rated active games, newest ratings first.
// Results are served from the ranking cache when fresh.
func (uc *UseCase) TopRated(ctx context.Context, count int) ([]GameResponse, error) {
	return uc.ranking(ctx, fmt.Sprintf("top_rated:%d", count), func() ([]*domain.Game, error) {
		return uc.games.GetTopRated(ctx, count)
	})
}

// MostSold returns the best-selling active games.
func (uc *UseCase) MostSold(ctx context.Context, count int) ([]GameResponse, error) {
	return uc.ranking(ctx, fmt.Sprintf("most_sold:%d", count), func() ([]*domain.Game, error) {
		return uc.games.GetMostSold(ctx, count)
	})
}

func (uc *UseCase) ranking(ctx context.Context, key string, query func() ([]*domain.Game, error)) ([]GameResponse, error) {
	if uc.cache != nil {
		var cached []GameResponse
		found, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.logger.Warn("ranking cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	games, err := query()
	if err != nil {
		return nil, err
	}
	responses := projectAll(games)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, responses); err != nil {
			uc.logger.Warn("ranking cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return responses, nil
}
