package service

import (
	"context"
	"time"

	"github.com/SudarshanShah/MovieApi/internal/auth/domain"
	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
	"github.com/google/uuid"
)

// RefreshService manages the one-per-user opaque refresh tokens.
type RefreshService struct {
	repo               domain.UserRepository
	refreshTokenExpiry time.Duration
}

func NewRefreshService(repo domain.UserRepository, refreshMinutes int) *RefreshService {
	return &RefreshService{
		repo:               repo,
		refreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

func (s *RefreshService) GetRefreshTokenExpiry() time.Duration {
	return s.refreshTokenExpiry
}

// CreateOrGet returns the user's refresh token, creating one only when none
// exists. An existing token is returned as-is even when already expired;
// expiry is only acted upon at verification time.
func (s *RefreshService) CreateOrGet(ctx context.Context, email string) (*domain.RefreshToken, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	existing, err := s.repo.GetRefreshTokenByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	rt := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.refreshTokenExpiry),
		CreatedAt: now,
	}

	if err := s.repo.StoreRefreshToken(ctx, rt); err != nil {
		return nil, err
	}

	return rt, nil
}

// Verify looks up a refresh token by value. An expired token is deleted
// before the expiry error is returned, so a retry surfaces NotFound.
func (s *RefreshService) Verify(ctx context.Context, tokenValue string) (*domain.RefreshToken, error) {
	rt, err := s.repo.GetRefreshToken(ctx, tokenValue)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, autherror.ErrRefreshTokenNotFound
	}

	if time.Now().After(rt.ExpiresAt) {
		if err := s.repo.DeleteRefreshToken(ctx, rt.ID); err != nil {
			return nil, err
		}
		return nil, autherror.ErrRefreshTokenExpired
	}

	return rt, nil
}
