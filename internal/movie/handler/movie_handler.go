package handler

import (
	"encoding/json"
	"io"

	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
	"github.com/SudarshanShah/MovieApi/internal/movie/dto"
	"github.com/SudarshanShah/MovieApi/internal/movie/service"
	"github.com/SudarshanShah/MovieApi/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type MovieHandler struct {
	movieService *service.MovieService
}

func NewMovieHandler(movieService *service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

// AddMovie accepts a multipart form with a JSON "movieDto" part and a
// poster "file" part.
func (h *MovieHandler) AddMovie(c *fiber.Ctx) error {
	input, ok := parseMovieDto(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid movieDto"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": autherror.ErrEmptyFile.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid file"})
	}
	defer file.Close()

	movie, err := h.movieService.Add(c.Context(), input, fileHeader.Filename, file)
	if err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(movie)
}

func (h *MovieHandler) GetMovie(c *fiber.Ctx) error {
	id, err := c.ParamsInt("movieId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid movie id"})
	}

	movie, err := h.movieService.Get(c.Context(), id)
	if err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(movie)
}

func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	movies, err := h.movieService.GetAll(c.Context())
	if err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(movies)
}

func (h *MovieHandler) UpdateMovie(c *fiber.Ctx) error {
	id, err := c.ParamsInt("movieId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid movie id"})
	}

	input, ok := parseMovieDto(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid movieDto"})
	}

	// Poster replacement is optional on update.
	var (
		filename string
		file     io.Reader
	)
	if fileHeader, ferr := c.FormFile("file"); ferr == nil && fileHeader.Size > 0 {
		f, oerr := fileHeader.Open()
		if oerr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid file"})
		}
		defer f.Close()
		filename = fileHeader.Filename
		file = f
	}

	movie, err := h.movieService.Update(c.Context(), id, input, filename, file)
	if err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(movie)
}

func (h *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	id, err := c.ParamsInt("movieId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid movie id"})
	}

	if err := h.movieService.Delete(c.Context(), id); err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Movie deleted",
	})
}

func (h *MovieHandler) GetMoviePage(c *fiber.Ctx) error {
	pageNumber := c.QueryInt("pageNumber", constant.DefaultPageNumber)
	pageSize := c.QueryInt("pageSize", constant.DefaultPageSize)
	sortBy := c.Query("sortBy", constant.DefaultSortBy)
	sortDir := c.Query("sortDir", constant.DefaultSortDir)

	page, err := h.movieService.GetPage(c.Context(), pageNumber, pageSize, sortBy, sortDir)
	if err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

// ServePoster streams a stored poster file by name.
func (h *MovieHandler) ServePoster(c *fiber.Ctx) error {
	name := c.Params("name")

	f, err := h.movieService.OpenPoster(c.Context(), name)
	if err != nil {
		return c.Status(autherror.StatusCode(err)).JSON(fiber.Map{
			"error": autherror.Message(err),
		})
	}

	c.Set(fiber.HeaderContentType, "application/octet-stream")

	return c.SendStream(f)
}

func parseMovieDto(c *fiber.Ctx) (dto.MovieInput, bool) {
	var input dto.MovieInput
	raw := c.FormValue("movieDto")
	if raw == "" {
		return input, false
	}
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return input, false
	}
	return input, true
}
