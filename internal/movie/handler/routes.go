package handler

import (
	authhandler "github.com/SudarshanShah/MovieApi/internal/auth/handler"
	"github.com/SudarshanShah/MovieApi/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *MovieHandler) {
	movie := app.Group("/movie")
	movie.Get("/all", h.GetAllMovies)
	movie.Get("/allMoviesPage", h.GetMoviePage)
	movie.Get("/allMoviesSortPage", h.GetMoviePage)
	movie.Get("/:movieId", h.GetMovie)

	// Admin-only endpoints
	movie.Post("/add-movie", authhandler.RequireRole(constant.RoleAdmin), h.AddMovie)
	movie.Put("/update-movie/:movieId", authhandler.RequireRole(constant.RoleAdmin), h.UpdateMovie)
	movie.Delete("/delete/:movieId", authhandler.RequireRole(constant.RoleAdmin), h.DeleteMovie)

	app.Get("/file/:name", h.ServePoster)
}
