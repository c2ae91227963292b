package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SudarshanShah/MovieApi/internal/movie/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, movie *domain.Movie) (int, error) {
	query := `
		INSERT INTO movies (title, director, studio, movie_cast, release_year, poster)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	var id int
	err := r.db.QueryRow(ctx, query, movie.Title, movie.Director, movie.Studio,
		movie.Cast, movie.ReleaseYear, movie.Poster).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create movie: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, director, studio, movie_cast, release_year, poster
		FROM movies
		WHERE id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var m domain.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Director, &m.Studio, &m.Cast, &m.ReleaseYear, &m.Poster)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return &m, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*domain.Movie, error) {
	query := `
		SELECT id, title, director, studio, movie_cast, release_year, poster
		FROM movies
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, director = $2, studio = $3, movie_cast = $4, release_year = $5, poster = $6
		WHERE id = $7;
	`
	_, err := r.db.Exec(ctx, query, movie.Title, movie.Director, movie.Studio,
		movie.Cast, movie.ReleaseYear, movie.Poster, movie.ID)
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM movies`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) GetPage(ctx context.Context, limit, offset int, sortColumn, sortDir string) ([]*domain.Movie, error) {
	// sortColumn and sortDir are whitelisted by the service before they are
	// interpolated here.
	query := fmt.Sprintf(`
		SELECT id, title, director, studio, movie_cast, release_year, poster
		FROM movies
		ORDER BY %s %s
		LIMIT $1 OFFSET $2;
	`, sortColumn, sortDir)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movie page: %w", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

func scanMovies(rows pgx.Rows) ([]*domain.Movie, error) {
	var movies []*domain.Movie
	for rows.Next() {
		var m domain.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Studio, &m.Cast, &m.ReleaseYear, &m.Poster); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}
