package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fgc/catalog/domain"
	"github.com/fgc/catalog/repository"
)

type gameRepository struct {
	mu    sync.RWMutex
	games map[string]*domain.Game
}

// NewGameRepository returns an in-memory GameRepository. It backs the test
// suites and local development; snapshots are isolated so aggregate mutations
// only become visible through Save.
func NewGameRepository() repository.GameRepository {
	return &gameRepository{games: make(map[string]*domain.Game)}
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return snapshot(game), nil
}

func (r *gameRepository) GetAll(ctx context.Context) ([]*domain.Game, error) {
	return r.collect(func(g *domain.Game) bool { return true }), nil
}

func (r *gameRepository) GetByCategory(ctx context.Context, category domain.GameCategory) ([]*domain.Game, error) {
	return r.collect(func(g *domain.Game) bool {
		return g.Category() == category && g.IsActive()
	}), nil
}

func (r *gameRepository) GetActiveGames(ctx context.Context) ([]*domain.Game, error) {
	return r.collect(func(g *domain.Game) bool { return g.IsActive() }), nil
}

func (r *gameRepository) SearchByTitle(ctx context.Context, term string) ([]*domain.Game, error) {
	if strings.TrimSpace(term) == "" {
		return r.GetActiveGames(ctx)
	}

	lowered := strings.ToLower(term)
	return r.collect(func(g *domain.Game) bool {
		return g.IsActive() && strings.Contains(strings.ToLower(g.Title()), lowered)
	}), nil
}

func (r *gameRepository) GetTopRated(ctx context.Context, count int) ([]*domain.Game, error) {
	games := r.collect(func(g *domain.Game) bool { return g.IsActive() })
	sort.SliceStable(games, func(i, j int) bool { return games[i].Rating() > games[j].Rating() })
	return head(games, count), nil
}

func (r *gameRepository) GetMostSold(ctx context.Context, count int) ([]*domain.Game, error) {
	games := r.collect(func(g *domain.Game) bool { return g.IsActive() })
	sort.SliceStable(games, func(i, j int) bool { return games[i].TotalSales() > games[j].TotalSales() })
	return head(games, count), nil
}

func (r *gameRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	if strings.TrimSpace(title) == "" {
		return false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, game := range r.games {
		if strings.EqualFold(game.Title(), title) {
			return true, nil
		}
	}
	return false, nil
}

func (r *gameRepository) Save(ctx context.Context, game *domain.Game) error {
	if game == nil {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.games[game.ID()] = snapshot(game)
	return nil
}

func (r *gameRepository) Delete(ctx context.Context, id string) error {
	game, err := r.GetByID(ctx, id)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil
		}
		return err
	}

	if err := game.Deactivate(); err != nil {
		return err
	}
	return r.Save(ctx, game)
}

// collect returns snapshots of all matching games ordered by title ascending.
func (r *gameRepository) collect(match func(*domain.Game) bool) []*domain.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var games []*domain.Game
	for _, game := range r.games {
		if match(game) {
			games = append(games, snapshot(game))
		}
	}
	sort.Slice(games, func(i, j int) bool {
		return strings.ToLower(games[i].Title()) < strings.ToLower(games[j].Title())
	})
	return games
}

func snapshot(g *domain.Game) *domain.Game {
	return domain.Rehydrate(
		g.ID(),
		g.Title(),
		g.Description(),
		g.Price(),
		g.Category(),
		g.Developer(),
		g.Publisher(),
		g.ReleaseDate(),
		g.CreatedAt(),
		g.UpdatedAt(),
		g.IsActive(),
		g.Rating(),
		g.TotalSales(),
	)
}

func head(games []*domain.Game, count int) []*domain.Game {
	if count <= 0 {
		count = 10
	}
	if len(games) > count {
		return games[:count]
	}
	return games
}
