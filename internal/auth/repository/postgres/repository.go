package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SudarshanShah/MovieApi/internal/auth/domain"
	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectUser = `
	SELECT id, name, username, email, password_hash, role, created_at, updated_at
	FROM users
`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, selectUser+` WHERE id = $1 LIMIT 1;`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, selectUser+` WHERE email = $1 LIMIT 1;`, email)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, selectUser+` WHERE username = $1 LIMIT 1;`, username)
}

func (r *PostgresRepository) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.db.QueryRow(ctx, query, arg)

	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Username, &user.Email,
		&user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, name, username, email, password_hash, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, user.ID, user.Name, user.Username, user.Email, user.PasswordHash,
		user.Role, user.CreatedAt, user.UpdatedAt)

	// Uniqueness is also enforced here so concurrent registrations with the
	// same username or email still surface as a conflict.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "username") {
			return autherror.ErrUsernameAlreadyInUse
		}
		return autherror.ErrEmailAlreadyInUse
	}

	return err
}

func (r *PostgresRepository) GetRefreshTokenByUserID(ctx context.Context, userID string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens
		WHERE user_id = $1
		LIMIT 1;
	`
	return r.getRefreshToken(ctx, query, userID)
}

func (r *PostgresRepository) GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1
		LIMIT 1;
	`
	return r.getRefreshToken(ctx, query, token)
}

func (r *PostgresRepository) getRefreshToken(ctx context.Context, query string, arg any) (*domain.RefreshToken, error) {
	row := r.db.QueryRow(ctx, query, arg)

	var rt domain.RefreshToken
	err := row.Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &rt, nil
}

func (r *PostgresRepository) StoreRefreshToken(ctx context.Context, rt *domain.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.CreatedAt)
	return err
}

func (r *PostgresRepository) DeleteRefreshToken(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) UpsertOTP(ctx context.Context, otp *domain.PasswordResetOTP) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO password_reset_otps (id, user_id, otp, expires_at, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id)
		DO UPDATE SET
			id = EXCLUDED.id,
			otp = EXCLUDED.otp,
			expires_at = EXCLUDED.expires_at,
			verified = FALSE,
			created_at = EXCLUDED.created_at
	`, otp.ID, otp.UserID, otp.OTP, otp.ExpiresAt, otp.Verified, otp.CreatedAt)
	return err
}

func (r *PostgresRepository) GetOTPByCodeAndUserID(ctx context.Context, code int, userID string) (*domain.PasswordResetOTP, error) {
	query := `
		SELECT id, user_id, otp, expires_at, verified, created_at
		FROM password_reset_otps
		WHERE otp = $1 AND user_id = $2
		LIMIT 1;
	`
	return r.getOTP(ctx, query, code, userID)
}

func (r *PostgresRepository) GetOTPByUserID(ctx context.Context, userID string) (*domain.PasswordResetOTP, error) {
	query := `
		SELECT id, user_id, otp, expires_at, verified, created_at
		FROM password_reset_otps
		WHERE user_id = $1
		LIMIT 1;
	`
	return r.getOTP(ctx, query, userID)
}

func (r *PostgresRepository) getOTP(ctx context.Context, query string, args ...any) (*domain.PasswordResetOTP, error) {
	row := r.db.QueryRow(ctx, query, args...)

	var otp domain.PasswordResetOTP
	err := row.Scan(&otp.ID, &otp.UserID, &otp.OTP, &otp.ExpiresAt, &otp.Verified, &otp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get OTP: %w", err)
	}

	return &otp, nil
}

func (r *PostgresRepository) MarkOTPVerified(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE password_reset_otps SET verified = TRUE WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) DeleteOTP(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_otps WHERE id = $1`, id)
	return err
}

// ConsumeOTPAndUpdatePassword removes the OTP row and stores the new hash in
// one transaction, so a crash cannot leave a spent OTP behind.
func (r *PostgresRepository) ConsumeOTPAndUpdatePassword(ctx context.Context, otpID, userID, passwordHash string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM password_reset_otps WHERE id = $1`, otpID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, passwordHash, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
