package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fgc/catalog/api/transport"
	"github.com/fgc/catalog/domain"
	"github.com/fgc/catalog/pkg/httpcontext"
	catalogUC "github.com/fgc/catalog/usecase/catalog"
)

type GameHandler struct {
	baseHandler
	uc *catalogUC.UseCase
}

func NewGameHandler(uc *catalogUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List games
// @Tags games
// @Router /api/v1/games [get]
func (h *GameHandler) GetGames(ctx *fasthttp.RequestCtx) {
	onlyActive := parseBool(string(ctx.QueryArgs().Peek("only_active")), true)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	games, err := h.uc.ListGames(stdCtx, onlyActive)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, games)
}

// @Summary Get game by id
// @Tags games
// @Router /api/v1/games/{id} [get]
func (h *GameHandler) GetGame(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	game, err := h.uc.GetGame(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, game)
}

// @Summary Search games
// @Tags games
// @Router /api/v1/games/search [get]
func (h *GameHandler) Search(ctx *fasthttp.RequestCtx) {
	input := &catalogUC.SearchGamesInput{
		Term:       string(ctx.QueryArgs().Peek("term")),
		OnlyActive: parseBool(string(ctx.QueryArgs().Peek("only_active")), true),
	}

	if name := string(ctx.QueryArgs().Peek("category")); name != "" {
		category, err := domain.ParseCategory(name)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		input.Category = &category
	}
	if raw := string(ctx.QueryArgs().Peek("min_price")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			input.MinPrice = &v
		}
	}
	if raw := string(ctx.QueryArgs().Peek("max_price")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			input.MaxPrice = &v
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	games, err := h.uc.SearchGames(stdCtx, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, games)
}

// @Summary Top rated games
// @Tags games
// @Router /api/v1/games/top-rated [get]
func (h *GameHandler) TopRated(ctx *fasthttp.RequestCtx) {
	count := parseInt(string(ctx.QueryArgs().Peek("count")), 10)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	games, err := h.uc.TopRated(stdCtx, count)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, games)
}

// @Summary Most sold games
// @Tags games
// @Router /api/v1/games/most-sold [get]
func (h *GameHandler) MostSold(ctx *fasthttp.RequestCtx) {
	count := parseInt(string(ctx.QueryArgs().Peek("count")), 10)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	games, err := h.uc.MostSold(stdCtx, count)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, games)
}

// @Summary Create game
// @Tags games
// @Router /api/v1/games [post]
func (h *GameHandler) CreateGame(ctx *fasthttp.RequestCtx) {
	var req transport.CreateGameRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	var releaseDate time.Time
	if req.ReleaseDate != "" {
		releaseDate, err = time.Parse(time.RFC3339, req.ReleaseDate)
		if err != nil {
			h.respondError(ctx, domain.NewValidationError("release_date", "release date must be RFC 3339"))
			return
		}
	}

	input := &catalogUC.CreateGameInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    category,
		Developer:   req.Developer,
		Publisher:   req.Publisher,
		ReleaseDate: releaseDate,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateGame(stdCtx, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update game details
// @Tags games
// @Router /api/v1/games/{id} [put]
func (h *GameHandler) UpdateGame(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	var req transport.UpdateGameRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateDetails(stdCtx, id, req.Title, req.Description, req.Developer, req.Publisher)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Update game price
// @Tags games
// @Router /api/v1/games/{id}/price [put]
func (h *GameHandler) UpdatePrice(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	var req transport.UpdatePriceRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdatePrice(stdCtx, id, req.NewPrice)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Change game category
// @Tags games
// @Router /api/v1/games/{id}/category [put]
func (h *GameHandler) ChangeCategory(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	var req transport.ChangeCategoryRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.ChangeCategory(stdCtx, id, category)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Update game rating
// @Tags games
// @Router /api/v1/games/{id}/rating [put]
func (h *GameHandler) UpdateRating(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	var req transport.UpdateRatingRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateRating(stdCtx, id, req.Rating)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Register game sales
// @Tags games
// @Router /api/v1/games/{id}/sales [post]
func (h *GameHandler) IncrementSales(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	req := transport.IncrementSalesRequest{Quantity: 1}
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.IncrementSales(stdCtx, id, req.Quantity)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Activate game
// @Tags games
// @Router /api/v1/games/{id}/activate [post]
func (h *GameHandler) Activate(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.ActivateGame(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Deactivate game
// @Tags games
// @Router /api/v1/games/{id}/deactivate [post]
func (h *GameHandler) Deactivate(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.DeactivateGame(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete game (soft)
// @Tags games
// @Router /api/v1/games/{id} [delete]
func (h *GameHandler) DeleteGame(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "missing game id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteGame(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}

func parseBool(value string, fallback bool) bool {
	if v, err := strconv.ParseBool(value); err == nil {
		return v
	}
	return fallback
}
