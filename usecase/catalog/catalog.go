package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fgc/catalog/domain"
	"github.com/fgc/catalog/repository"
	"github.com/fgc/catalog/usecase"
)

// UseCase orchestrates all catalog operations: load via the repository,
// invoke one aggregate operation, persist, drain events into the outbox and
// project to a response shape.
type UseCase struct {
	games  repository.GameRepository
	outbox usecase.EventOutbox
	cache  usecase.RankingCache
	logger *zap.Logger
}

func New(games repository.GameRepository, outbox usecase.EventOutbox, cache usecase.RankingCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		games:  games,
		outbox: outbox,
		cache:  cache,
		logger: logger,
	}
}

// GameResponse is the read-only projection returned to callers.
type GameResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"`
	Developer   string     `json:"developer"`
	Publisher   string     `json:"publisher"`
	ReleaseDate time.Time  `json:"release_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	IsActive    bool       `json:"is_active"`
	Rating      float64    `json:"rating"`
	TotalSales  int        `json:"total_sales"`
}

func project(game *domain.Game) *GameResponse {
	return &GameResponse{
		ID:          game.ID(),
		Title:       game.Title(),
		Description: game.Description(),
		Price:       game.Price(),
		Category:    game.Category().String(),
		Developer:   game.Developer(),
		Publisher:   game.Publisher(),
		ReleaseDate: game.ReleaseDate(),
		CreatedAt:   game.CreatedAt(),
		UpdatedAt:   game.UpdatedAt(),
		IsActive:    game.IsActive(),
		Rating:      game.Rating(),
		TotalSales:  game.TotalSales(),
	}
}

func projectAll(games []*domain.Game) []GameResponse {
	out := make([]GameResponse, 0, len(games))
	for _, game := range games {
		out = append(out, *project(game))
	}
	return out
}

// load resolves a game by id. An empty id is reported the same way as a
// missing record.
func (uc *UseCase) load(ctx context.Context, id string) (*domain.Game, error) {
	if id == "" {
		return nil, domain.ErrGameNotFound
	}
	return uc.games.GetByID(ctx, id)
}

// stageEvents drains the aggregate's pending events into the outbox. The
// aggregate is already saved at this point, so staging failures are logged
// and do not fail the operation.
func (uc *UseCase) stageEvents(ctx context.Context, game *domain.Game) {
	events := game.DrainEvents()
	if len(events) == 0 || uc.outbox == nil {
		return
	}
	if err := uc.outbox.Stage(ctx, events...); err != nil {
		uc.logger.Error("failed to stage domain events",
			zap.String("game_id", game.ID()),
			zap.Int("events", len(events)),
			zap.Error(err))
	}
}
