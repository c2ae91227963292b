package service

import (
	"context"
	"io"

	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
	"github.com/SudarshanShah/MovieApi/internal/movie/domain"
	"github.com/SudarshanShah/MovieApi/internal/movie/dto"
	"github.com/SudarshanShah/MovieApi/internal/storage"
)

// sortColumns whitelists the page-sort fields callers may request.
var sortColumns = map[string]string{
	"movieId":     "id",
	"id":          "id",
	"title":       "title",
	"director":    "director",
	"studio":      "studio",
	"releaseYear": "release_year",
}

type MovieService struct {
	repo    domain.MovieRepository
	posters storage.Storage
	baseURL string
}

func NewMovieService(repo domain.MovieRepository, posters storage.Storage, baseURL string) *MovieService {
	return &MovieService{
		repo:    repo,
		posters: posters,
		baseURL: baseURL,
	}
}

// Add stores the poster first, so a filename conflict surfaces before any
// row is written.
func (s *MovieService) Add(ctx context.Context, input dto.MovieInput, filename string, file io.Reader) (*dto.MovieOutput, error) {
	if input.Title == "" || input.Director == "" || input.Studio == "" {
		return nil, autherror.ErrMovieFieldsRequired
	}

	if err := s.posters.Save(ctx, filename, file); err != nil {
		return nil, err
	}

	movie := &domain.Movie{
		Title:       input.Title,
		Director:    input.Director,
		Studio:      input.Studio,
		Cast:        input.Cast,
		ReleaseYear: input.ReleaseYear,
		Poster:      filename,
	}

	id, err := s.repo.Create(ctx, movie)
	if err != nil {
		return nil, err
	}
	movie.ID = id

	return s.toOutput(movie), nil
}

func (s *MovieService) Get(ctx context.Context, id int) (*dto.MovieOutput, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, autherror.ErrMovieNotFound
	}

	return s.toOutput(movie), nil
}

func (s *MovieService) GetAll(ctx context.Context) ([]dto.MovieOutput, error) {
	movies, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.toOutputs(movies), nil
}

// Update replaces the stored fields and, when a new file is supplied, swaps
// the poster (old file removed, new one saved under its own name).
func (s *MovieService) Update(ctx context.Context, id int, input dto.MovieInput, filename string, file io.Reader) (*dto.MovieOutput, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, autherror.ErrMovieNotFound
	}

	poster := existing.Poster
	if file != nil {
		if err := s.posters.Remove(ctx, existing.Poster); err != nil {
			return nil, err
		}
		if err := s.posters.Save(ctx, filename, file); err != nil {
			return nil, err
		}
		poster = filename
	}

	movie := &domain.Movie{
		ID:          id,
		Title:       input.Title,
		Director:    input.Director,
		Studio:      input.Studio,
		Cast:        input.Cast,
		ReleaseYear: input.ReleaseYear,
		Poster:      poster,
	}

	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, err
	}

	return s.toOutput(movie), nil
}

func (s *MovieService) Delete(ctx context.Context, id int) error {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if movie == nil {
		return autherror.ErrMovieNotFound
	}

	if err := s.posters.Remove(ctx, movie.Poster); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *MovieService) GetPage(ctx context.Context, pageNumber, pageSize int, sortBy, sortDir string) (*dto.MoviePageOutput, error) {
	if pageNumber < 0 {
		pageNumber = 0
	}
	if pageSize < 1 {
		pageSize = 1
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		column = "id"
	}
	if sortDir != "desc" {
		sortDir = "asc"
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	movies, err := s.repo.GetPage(ctx, pageSize, pageNumber*pageSize, column, sortDir)
	if err != nil {
		return nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize

	return &dto.MoviePageOutput{
		Movies:        s.toOutputs(movies),
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		IsLast:        pageNumber >= totalPages-1,
	}, nil
}

// OpenPoster streams a stored poster by name.
func (s *MovieService) OpenPoster(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.posters.Open(ctx, name)
}

func (s *MovieService) toOutput(m *domain.Movie) *dto.MovieOutput {
	return &dto.MovieOutput{
		ID:          m.ID,
		Title:       m.Title,
		Director:    m.Director,
		Studio:      m.Studio,
		Cast:        m.Cast,
		ReleaseYear: m.ReleaseYear,
		Poster:      m.Poster,
		PosterURL:   s.baseURL + "/file/" + m.Poster,
	}
}

func (s *MovieService) toOutputs(movies []*domain.Movie) []dto.MovieOutput {
	outputs := make([]dto.MovieOutput, 0, len(movies))
	for _, m := range movies {
		outputs = append(outputs, *s.toOutput(m))
	}
	return outputs
}
