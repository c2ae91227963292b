package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
	"github.com/SudarshanShah/MovieApi/internal/mocks"
	"github.com/SudarshanShah/MovieApi/internal/movie/domain"
	"github.com/SudarshanShah/MovieApi/internal/movie/dto"
	"github.com/SudarshanShah/MovieApi/internal/movie/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080"

func newMovieService(ctrl *gomock.Controller) (*service.MovieService, *mocks.MockMovieRepository, *mocks.MockStorage) {
	mockRepo := mocks.NewMockMovieRepository(ctrl)
	mockStorage := mocks.NewMockStorage(ctrl)

	return service.NewMovieService(mockRepo, mockStorage, baseURL), mockRepo, mockStorage
}

func movieInput() dto.MovieInput {
	return dto.MovieInput{
		Title:       "Inception",
		Director:    "Christopher Nolan",
		Studio:      "Warner Bros",
		Cast:        []string{"Leonardo DiCaprio", "Elliot Page"},
		ReleaseYear: 2010,
	}
}

func TestMovieService_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockRepo, mockStorage := newMovieService(ctrl)

	t.Run("success", func(t *testing.T) {
		input := movieInput()
		file := bytes.NewReader([]byte("png-bytes"))

		var stored *domain.Movie
		mockStorage.EXPECT().Save(gomock.Any(), "inception.png", file).Return(nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *domain.Movie) (int, error) {
				stored = m
				return 7, nil
			})

		out, err := s.Add(context.Background(), input, "inception.png", file)

		require.NoError(t, err)
		assert.Equal(t, 7, out.ID)
		assert.Equal(t, "inception.png", out.Poster)
		assert.Equal(t, baseURL+"/file/inception.png", out.PosterURL)
		require.NotNil(t, stored)
		assert.Equal(t, input.Title, stored.Title)
		assert.Equal(t, "inception.png", stored.Poster)
	})

	t.Run("missing required fields", func(t *testing.T) {
		input := movieInput()
		input.Director = ""

		out, err := s.Add(context.Background(), input, "x.png", bytes.NewReader(nil))

		assert.Equal(t, autherror.ErrMovieFieldsRequired, err)
		assert.Nil(t, out)
	})

	t.Run("poster conflict stops before the insert", func(t *testing.T) {
		input := movieInput()
		file := bytes.NewReader(nil)

		mockStorage.EXPECT().Save(gomock.Any(), "taken.png", file).
			Return(autherror.ErrPosterAlreadyExists)

		out, err := s.Add(context.Background(), input, "taken.png", file)

		assert.Equal(t, autherror.ErrPosterAlreadyExists, err)
		assert.Nil(t, out)
	})
}

func TestMovieService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockRepo, _ := newMovieService(ctrl)

	t.Run("found", func(t *testing.T) {
		movie := &domain.Movie{ID: 7, Title: "Inception", Director: "Nolan", Studio: "WB", Poster: "inception.png"}
		mockRepo.EXPECT().GetByID(gomock.Any(), 7).Return(movie, nil)

		out, err := s.Get(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "Inception", out.Title)
		assert.Equal(t, baseURL+"/file/inception.png", out.PosterURL)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), 99).Return(nil, nil)

		out, err := s.Get(context.Background(), 99)

		assert.Equal(t, autherror.ErrMovieNotFound, err)
		assert.Nil(t, out)
	})
}

func TestMovieService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockRepo, mockStorage := newMovieService(ctrl)
	existing := &domain.Movie{ID: 7, Title: "Old", Director: "Old", Studio: "Old", Poster: "old.png"}

	t.Run("fields only keeps the poster", func(t *testing.T) {
		input := movieInput()

		var updated *domain.Movie
		mockRepo.EXPECT().GetByID(gomock.Any(), 7).Return(existing, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *domain.Movie) error {
				updated = m
				return nil
			})

		out, err := s.Update(context.Background(), 7, input, "", nil)

		require.NoError(t, err)
		assert.Equal(t, "old.png", out.Poster)
		assert.Equal(t, input.Title, updated.Title)
		assert.Equal(t, "old.png", updated.Poster)
	})

	t.Run("new file swaps the poster", func(t *testing.T) {
		input := movieInput()
		file := bytes.NewReader([]byte("new-bytes"))

		mockRepo.EXPECT().GetByID(gomock.Any(), 7).Return(existing, nil)
		mockStorage.EXPECT().Remove(gomock.Any(), "old.png").Return(nil)
		mockStorage.EXPECT().Save(gomock.Any(), "new.png", file).Return(nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		out, err := s.Update(context.Background(), 7, input, "new.png", file)

		require.NoError(t, err)
		assert.Equal(t, "new.png", out.Poster)
	})

	t.Run("unknown movie", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), 99).Return(nil, nil)

		out, err := s.Update(context.Background(), 99, movieInput(), "", nil)

		assert.Equal(t, autherror.ErrMovieNotFound, err)
		assert.Nil(t, out)
	})
}

func TestMovieService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockRepo, mockStorage := newMovieService(ctrl)

	t.Run("removes the poster then the row", func(t *testing.T) {
		movie := &domain.Movie{ID: 7, Poster: "inception.png"}

		mockRepo.EXPECT().GetByID(gomock.Any(), 7).Return(movie, nil)
		mockStorage.EXPECT().Remove(gomock.Any(), "inception.png").Return(nil)
		mockRepo.EXPECT().Delete(gomock.Any(), 7).Return(nil)

		require.NoError(t, s.Delete(context.Background(), 7))
	})

	t.Run("unknown movie", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), 99).Return(nil, nil)

		assert.Equal(t, autherror.ErrMovieNotFound, s.Delete(context.Background(), 99))
	})

	t.Run("poster removal failure keeps the row", func(t *testing.T) {
		movie := &domain.Movie{ID: 7, Poster: "inception.png"}
		removeErr := errors.New("disk error")

		mockRepo.EXPECT().GetByID(gomock.Any(), 7).Return(movie, nil)
		mockStorage.EXPECT().Remove(gomock.Any(), "inception.png").Return(removeErr)

		assert.Equal(t, removeErr, s.Delete(context.Background(), 7))
	})
}

func TestMovieService_GetPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockRepo, _ := newMovieService(ctrl)

	movies := []*domain.Movie{
		{ID: 1, Title: "A", Poster: "a.png"},
		{ID: 2, Title: "B", Poster: "b.png"},
		{ID: 3, Title: "C", Poster: "c.png"},
	}

	t.Run("first page of many", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any()).Return(7, nil)
		mockRepo.EXPECT().GetPage(gomock.Any(), 3, 0, "id", "asc").Return(movies, nil)

		page, err := s.GetPage(context.Background(), 0, 3, "id", "asc")

		require.NoError(t, err)
		assert.Len(t, page.Movies, 3)
		assert.Equal(t, 7, page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
		assert.False(t, page.IsLast)
	})

	t.Run("last page", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any()).Return(7, nil)
		mockRepo.EXPECT().GetPage(gomock.Any(), 3, 6, "id", "asc").Return(movies[:1], nil)

		page, err := s.GetPage(context.Background(), 2, 3, "id", "asc")

		require.NoError(t, err)
		assert.True(t, page.IsLast)
	})

	t.Run("camelCase sort key maps to its column", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any()).Return(3, nil)
		mockRepo.EXPECT().GetPage(gomock.Any(), 3, 0, "release_year", "desc").Return(movies, nil)

		_, err := s.GetPage(context.Background(), 0, 3, "releaseYear", "desc")

		require.NoError(t, err)
	})

	t.Run("unknown sort key falls back to id asc", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any()).Return(3, nil)
		mockRepo.EXPECT().GetPage(gomock.Any(), 3, 0, "id", "asc").Return(movies, nil)

		_, err := s.GetPage(context.Background(), 0, 3, "poster; DROP TABLE movies", "sideways")

		require.NoError(t, err)
	})

	t.Run("negative page clamps to zero", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any()).Return(3, nil)
		mockRepo.EXPECT().GetPage(gomock.Any(), 3, 0, "id", "asc").Return(movies, nil)

		page, err := s.GetPage(context.Background(), -4, 3, "id", "asc")

		require.NoError(t, err)
		assert.Equal(t, 0, page.PageNumber)
	})
}
