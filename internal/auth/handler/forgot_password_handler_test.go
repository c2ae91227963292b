package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SudarshanShah/MovieApi/internal/auth/domain"
	"github.com/SudarshanShah/MovieApi/internal/auth/dto"
	"github.com/SudarshanShah/MovieApi/internal/auth/handler"
	"github.com/SudarshanShah/MovieApi/internal/auth/service"
	"github.com/SudarshanShah/MovieApi/internal/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForgotPasswordApp(ctrl *gomock.Controller) (*fiber.App, *mocks.MockUserRepository, *mocks.MockMailer) {
	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockMailer := mocks.NewMockMailer(ctrl)
	otpService := service.NewOTPService(mockRepo, mockMailer, 70)
	fpHandler := handler.NewForgotPasswordHandler(otpService)

	app := fiber.New()
	app.Post("/verifyMail/:email", fpHandler.VerifyMail)
	app.Post("/verifyOtp/:otp/:email", fpHandler.VerifyOTP)
	app.Post("/changePassword/:email", fpHandler.ChangePassword)

	return app, mockRepo, mockMailer
}

func TestVerifyMail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo, mockMailer := newForgotPasswordApp(ctrl)

	t.Run("success", func(t *testing.T) {
		user := &domain.User{ID: "user-id", Email: "a1@x.com"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		mockRepo.EXPECT().UpsertOTP(gomock.Any(), gomock.Any()).Return(nil)
		mockMailer.EXPECT().Send(user.Email, gomock.Any(), gomock.Any()).Return(nil)

		resp, err := app.Test(httptest.NewRequest("POST", "/verifyMail/a1@x.com", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "Email sent for verification!", out["message"])
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "ghost@x.com").Return(nil, nil)

		resp, err := app.Test(httptest.NewRequest("POST", "/verifyMail/ghost@x.com", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestVerifyOTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo, _ := newForgotPasswordApp(ctrl)
	user := &domain.User{ID: "user-id", Email: "a1@x.com"}

	t.Run("success", func(t *testing.T) {
		otp := &domain.PasswordResetOTP{
			ID:        "otp-id",
			UserID:    user.ID,
			OTP:       123456,
			ExpiresAt: time.Now().Add(time.Minute),
		}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		mockRepo.EXPECT().GetOTPByCodeAndUserID(gomock.Any(), 123456, user.ID).Return(otp, nil)
		mockRepo.EXPECT().MarkOTPVerified(gomock.Any(), "otp-id").Return(nil)

		resp, err := app.Test(httptest.NewRequest("POST", "/verifyOtp/123456/a1@x.com", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "OTP verified!", out["message"])
	})

	t.Run("wrong code", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		mockRepo.EXPECT().GetOTPByCodeAndUserID(gomock.Any(), 654321, user.ID).Return(nil, nil)

		resp, err := app.Test(httptest.NewRequest("POST", "/verifyOtp/654321/a1@x.com", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusExpectationFailed, resp.StatusCode)
	})

	t.Run("expired code is deleted", func(t *testing.T) {
		stale := &domain.PasswordResetOTP{
			ID:        "otp-id",
			UserID:    user.ID,
			OTP:       123456,
			ExpiresAt: time.Now().Add(-time.Minute),
		}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		mockRepo.EXPECT().GetOTPByCodeAndUserID(gomock.Any(), 123456, user.ID).Return(stale, nil)
		mockRepo.EXPECT().DeleteOTP(gomock.Any(), "otp-id").Return(nil)

		resp, err := app.Test(httptest.NewRequest("POST", "/verifyOtp/123456/a1@x.com", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusExpectationFailed, resp.StatusCode)
	})

	t.Run("non-numeric code", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/verifyOtp/abcdef/a1@x.com", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo, _ := newForgotPasswordApp(ctrl)
	user := &domain.User{ID: "user-id", Email: "a1@x.com"}

	t.Run("success", func(t *testing.T) {
		verified := &domain.PasswordResetOTP{
			ID:        "otp-id",
			UserID:    user.ID,
			OTP:       123456,
			Verified:  true,
			ExpiresAt: time.Now().Add(time.Minute),
		}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		mockRepo.EXPECT().GetOTPByUserID(gomock.Any(), user.ID).Return(verified, nil)
		mockRepo.EXPECT().ConsumeOTPAndUpdatePassword(gomock.Any(), "otp-id", user.ID, gomock.Any()).Return(nil)

		resp, err := app.Test(jsonRequest(t, "POST", "/changePassword/a1@x.com",
			dto.ChangePasswordInput{Password: "newpass", RepeatPassword: "newpass"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "Password has been changed!", out["message"])
	})

	t.Run("password mismatch", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, "POST", "/changePassword/a1@x.com",
			dto.ChangePasswordInput{Password: "newpass", RepeatPassword: "different"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unverified OTP", func(t *testing.T) {
		pending := &domain.PasswordResetOTP{
			ID:        "otp-id",
			UserID:    user.ID,
			OTP:       123456,
			Verified:  false,
			ExpiresAt: time.Now().Add(time.Minute),
		}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		mockRepo.EXPECT().GetOTPByUserID(gomock.Any(), user.ID).Return(pending, nil)

		resp, err := app.Test(jsonRequest(t, "POST", "/changePassword/a1@x.com",
			dto.ChangePasswordInput{Password: "newpass", RepeatPassword: "newpass"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusExpectationFailed, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/changePassword/a1@x.com", bytes.NewReader([]byte("{oops")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
