package domain

//go:generate mockgen -destination=../../mocks/mock_movie_repository.go -package=mocks github.com/SudarshanShah/MovieApi/internal/movie/domain MovieRepository

import "context"

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) (int, error)
	GetByID(ctx context.Context, id int) (*Movie, error)
	GetAll(ctx context.Context) ([]*Movie, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	// GetPage returns one page ordered by a whitelisted column.
	GetPage(ctx context.Context, limit, offset int, sortColumn, sortDir string) ([]*Movie, error)
}
