package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SudarshanShah/MovieApi/internal/auth/domain"
	"github.com/SudarshanShah/MovieApi/internal/auth/service"
	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
	"github.com/SudarshanShah/MovieApi/internal/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshService_CreateOrGet_CreatesWhenAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	s := service.NewRefreshService(mockRepo, 50)

	user := &domain.User{ID: "user-id", Email: "test@example.com"}

	mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	mockRepo.EXPECT().GetRefreshTokenByUserID(gomock.Any(), user.ID).Return(nil, nil)

	var stored *domain.RefreshToken
	mockRepo.EXPECT().StoreRefreshToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rt *domain.RefreshToken) error {
			stored = rt
			return nil
		})

	rt, err := s.CreateOrGet(context.Background(), user.Email)

	require.NoError(t, err)
	require.NotNil(t, rt)
	assert.Equal(t, stored, rt)
	assert.NotEmpty(t, rt.Token)
	assert.Equal(t, user.ID, rt.UserID)
	assert.WithinDuration(t, time.Now().Add(50*time.Minute), rt.ExpiresAt, 2*time.Second)
}

func TestRefreshService_CreateOrGet_ReturnsExistingUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	s := service.NewRefreshService(mockRepo, 50)

	user := &domain.User{ID: "user-id", Email: "test@example.com"}
	existing := &domain.RefreshToken{
		ID:        "rt-id",
		UserID:    user.ID,
		Token:     "existing-token-value",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	// Two consecutive requests must yield the identical token value.
	mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil).Times(2)
	mockRepo.EXPECT().GetRefreshTokenByUserID(gomock.Any(), user.ID).Return(existing, nil).Times(2)

	first, err := s.CreateOrGet(context.Background(), user.Email)
	require.NoError(t, err)

	second, err := s.CreateOrGet(context.Background(), user.Email)
	require.NoError(t, err)

	assert.Equal(t, first.Token, second.Token)
	assert.Equal(t, existing.Token, first.Token)
}

func TestRefreshService_CreateOrGet_ReturnsExpiredTokenAsIs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	s := service.NewRefreshService(mockRepo, 50)

	user := &domain.User{ID: "user-id", Email: "test@example.com"}
	expired := &domain.RefreshToken{
		ID:        "rt-id",
		UserID:    user.ID,
		Token:     "expired-token-value",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	mockRepo.EXPECT().GetRefreshTokenByUserID(gomock.Any(), user.ID).Return(expired, nil)

	rt, err := s.CreateOrGet(context.Background(), user.Email)

	require.NoError(t, err)
	assert.Equal(t, expired.Token, rt.Token)
}

func TestRefreshService_CreateOrGet_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	s := service.NewRefreshService(mockRepo, 50)

	mockRepo.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, nil)

	rt, err := s.CreateOrGet(context.Background(), "ghost@example.com")

	assert.Nil(t, rt)
	assert.Equal(t, autherror.ErrUserNotFound, err)
}

func TestRefreshService_Verify_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	s := service.NewRefreshService(mockRepo, 50)

	live := &domain.RefreshToken{
		ID:        "rt-id",
		UserID:    "user-id",
		Token:     "live-token",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	mockRepo.EXPECT().GetRefreshToken(gomock.Any(), "live-token").Return(live, nil)

	rt, err := s.Verify(context.Background(), "live-token")

	require.NoError(t, err)
	assert.Equal(t, live, rt)
}

func TestRefreshService_Verify_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	s := service.NewRefreshService(mockRepo, 50)

	mockRepo.EXPECT().GetRefreshToken(gomock.Any(), "unknown").Return(nil, nil)

	rt, err := s.Verify(context.Background(), "unknown")

	assert.Nil(t, rt)
	assert.Equal(t, autherror.ErrRefreshTokenNotFound, err)
}

func TestRefreshService_Verify_ExpiredDeletesRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	s := service.NewRefreshService(mockRepo, 50)

	expired := &domain.RefreshToken{
		ID:        "rt-id",
		UserID:    "user-id",
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Second),
	}

	mockRepo.EXPECT().GetRefreshToken(gomock.Any(), "stale-token").Return(expired, nil)
	mockRepo.EXPECT().DeleteRefreshToken(gomock.Any(), "rt-id").Return(nil)

	rt, err := s.Verify(context.Background(), "stale-token")

	assert.Nil(t, rt)
	assert.Equal(t, autherror.ErrRefreshTokenExpired, err)

	// The record is gone, so a retry now reports NotFound.
	mockRepo.EXPECT().GetRefreshToken(gomock.Any(), "stale-token").Return(nil, nil)

	_, err = s.Verify(context.Background(), "stale-token")
	assert.Equal(t, autherror.ErrRefreshTokenNotFound, err)
}

func TestRefreshService_Verify_DeleteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	s := service.NewRefreshService(mockRepo, 50)

	expired := &domain.RefreshToken{
		ID:        "rt-id",
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Second),
	}
	deleteErr := errors.New("delete failed")

	mockRepo.EXPECT().GetRefreshToken(gomock.Any(), "stale-token").Return(expired, nil)
	mockRepo.EXPECT().DeleteRefreshToken(gomock.Any(), "rt-id").Return(deleteErr)

	_, err := s.Verify(context.Background(), "stale-token")
	assert.Equal(t, deleteErr, err)
}
