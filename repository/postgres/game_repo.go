package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fgc/catalog/domain"
	"github.com/fgc/catalog/repository"
)

const gameColumns = `id, title, description, price, category, developer, publisher, release_date, created_at, updated_at, is_active, rating, total_sales`

type gameRepository struct {
	pool *pgxpool.Pool
}

// NewGameRepository returns a Postgres-backed implementation of GameRepository.
func NewGameRepository(pool *pgxpool.Pool) repository.GameRepository {
	return &gameRepository{pool: pool}
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	if id == "" {
		return nil, domain.ErrGameNotFound
	}

	const query = `
	SELECT ` + gameColumns + `
	FROM games
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanGame(row)
}

func (r *gameRepository) GetAll(ctx context.Context) ([]*domain.Game, error) {
	const query = `
	SELECT ` + gameColumns + `
	FROM games
	ORDER BY title ASC
	`
	return r.queryGames(ctx, query)
}

func (r *gameRepository) GetByCategory(ctx context.Context, category domain.GameCategory) ([]*domain.Game, error) {
	const query = `
	SELECT ` + gameColumns + `
	FROM games
	WHERE category = $1 AND is_active
	ORDER BY title ASC
	`
	return r.queryGames(ctx, query, int(category))
}

func (r *gameRepository) GetActiveGames(ctx context.Context) ([]*domain.Game, error) {
	const query = `
	SELECT ` + gameColumns + `
	FROM games
	WHERE is_active
	ORDER BY title ASC
	`
	return r.queryGames(ctx, query)
}

func (r *gameRepository) SearchByTitle(ctx context.Context, term string) ([]*domain.Game, error) {
	if strings.TrimSpace(term) == "" {
		return r.GetActiveGames(ctx)
	}

	const query = `
	SELECT ` + gameColumns + `
	FROM games
	WHERE title ILIKE '%' || $1 || '%' AND is_active
	ORDER BY title ASC
	`
	return r.queryGames(ctx, query, term)
}

func (r *gameRepository) GetTopRated(ctx context.Context, count int) ([]*domain.Game, error) {
	const query = `
	SELECT ` + gameColumns + `
	FROM games
	WHERE is_active
	ORDER BY rating DESC
	LIMIT $1
	`
	return r.queryGames(ctx, query, clampCount(count))
}

func (r *gameRepository) GetMostSold(ctx context.Context, count int) ([]*domain.Game, error) {
	const query = `
	SELECT ` + gameColumns + `
	FROM games
	WHERE is_active
	ORDER BY total_sales DESC
	LIMIT $1
	`
	return r.queryGames(ctx, query, clampCount(count))
}

func (r *gameRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	if strings.TrimSpace(title) == "" {
		return false, nil
	}

	const query = `SELECT EXISTS (SELECT 1 FROM games WHERE LOWER(title) = LOWER($1))`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, title).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *gameRepository) Save(ctx context.Context, game *domain.Game) error {
	if game == nil {
		return domain.ErrInvalidInput
	}

	const query = `
	INSERT INTO games (` + gameColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (id) DO UPDATE
	SET title = EXCLUDED.title,
		description = EXCLUDED.description,
		price = EXCLUDED.price,
		category = EXCLUDED.category,
		developer = EXCLUDED.developer,
		publisher = EXCLUDED.publisher,
		release_date = EXCLUDED.release_date,
		updated_at = EXCLUDED.updated_at,
		is_active = EXCLUDED.is_active,
		rating = EXCLUDED.rating,
		total_sales = EXCLUDED.total_sales
	`

	var updatedAt interface{}
	if t := game.UpdatedAt(); t != nil {
		updatedAt = *t
	}

	_, err := r.pool.Exec(ctx, query,
		game.ID(),
		game.Title(),
		game.Description(),
		game.Price(),
		int(game.Category()),
		game.Developer(),
		game.Publisher(),
		game.ReleaseDate(),
		game.CreatedAt(),
		updatedAt,
		game.IsActive(),
		game.Rating(),
		game.TotalSales(),
	)
	return err
}

// Delete is a soft delete: the game is loaded, deactivated and saved back.
// A missing id is a no-op.
func (r *gameRepository) Delete(ctx context.Context, id string) error {
	game, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			return nil
		}
		return err
	}

	if err := game.Deactivate(); err != nil {
		return err
	}
	return r.Save(ctx, game)
}

func (r *gameRepository) queryGames(ctx context.Context, query string, args ...interface{}) ([]*domain.Game, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*domain.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func scanGame(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Game, error) {
	var (
		id          string
		title       string
		description string
		price       float64
		category    int
		developer   string
		publisher   string
		releaseDate time.Time
		createdAt   time.Time
		updatedAt   *time.Time
		isActive    bool
		rating      float64
		totalSales  int
	)

	if err := row.Scan(
		&id,
		&title,
		&description,
		&price,
		&category,
		&developer,
		&publisher,
		&releaseDate,
		&createdAt,
		&updatedAt,
		&isActive,
		&rating,
		&totalSales,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}

	return domain.Rehydrate(
		id,
		title,
		description,
		price,
		domain.GameCategory(category),
		developer,
		publisher,
		releaseDate,
		createdAt,
		updatedAt,
		isActive,
		rating,
		totalSales,
	), nil
}

func clampCount(count int) int {
	if count <= 0 || count > 100 {
		return 10
	}
	return count
}
