package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fgc/catalog/api/handler"
)

type Handlers struct {
	Game   *apiHandler.GameHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, adminMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public catalog routes
	r.GET("/api/v1/games", handlers.Game.GetGames)
	r.GET("/api/v1/games/search", handlers.Game.Search)
	r.GET("/api/v1/games/top-rated", handlers.Game.TopRated)
	r.GET("/api/v1/games/most-sold", handlers.Game.MostSold)
	r.GET("/api/v1/games/{id}", handlers.Game.GetGame)

	// Admin-only mutations
	r.POST("/api/v1/games", adminMiddleware(handlers.Game.CreateGame))
	r.PUT("/api/v1/games/{id}", adminMiddleware(handlers.Game.UpdateGame))
	r.PUT("/api/v1/games/{id}/price", adminMiddleware(handlers.Game.UpdatePrice))
	r.PUT("/api/v1/games/{id}/category", adminMiddleware(handlers.Game.ChangeCategory))
	r.PUT("/api/v1/games/{id}/rating", adminMiddleware(handlers.Game.UpdateRating))
	r.POST("/api/v1/games/{id}/sales", adminMiddleware(handlers.Game.IncrementSales))
	r.POST("/api/v1/games/{id}/activate", adminMiddleware(handlers.Game.Activate))
	r.POST("/api/v1/games/{id}/deactivate", adminMiddleware(handlers.Game.Deactivate))
	r.DELETE("/api/v1/games/{id}", adminMiddleware(handlers.Game.DeleteGame))

	return r
}
