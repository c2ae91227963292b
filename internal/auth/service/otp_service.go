package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/SudarshanShah/MovieApi/internal/auth/domain"
	autherror "github.com/SudarshanShah/MovieApi/internal/errors"
	"github.com/SudarshanShah/MovieApi/internal/mail"
	"github.com/SudarshanShah/MovieApi/pkg/constant"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// OTPService drives the forgot-password flow: issue a short-lived numeric
// code over mail, verify it, then allow a password change that consumes it.
type OTPService struct {
	repo      domain.UserRepository
	mailer    mail.Mailer
	otpExpiry time.Duration
}

func NewOTPService(repo domain.UserRepository, mailer mail.Mailer, otpExpirySeconds int) *OTPService {
	return &OTPService{
		repo:      repo,
		mailer:    mailer,
		otpExpiry: time.Duration(otpExpirySeconds) * time.Second,
	}
}

// RequestReset issues a new OTP for the account behind email and dispatches
// it via the mailer. A pending OTP for the same user is replaced.
func (s *OTPService) RequestReset(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	now := time.Now()
	otp := &domain.PasswordResetOTP{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		OTP:       code,
		ExpiresAt: now.Add(s.otpExpiry),
		Verified:  false,
		CreatedAt: now,
	}

	if err := s.repo.UpsertOTP(ctx, otp); err != nil {
		return err
	}

	body := fmt.Sprintf("This is the OTP for your Forgot Password request: %d", code)

	return s.mailer.Send(email, "OTP for Forgot Password Request", body)
}

// VerifyOTP checks the (code, user) pair. An expired code is deleted before
// the expiry error is returned; a valid one is marked verified so the
// subsequent password change can consume it.
func (s *OTPService) VerifyOTP(ctx context.Context, code int, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	otp, err := s.repo.GetOTPByCodeAndUserID(ctx, code, user.ID)
	if err != nil {
		return err
	}
	if otp == nil {
		return autherror.ErrInvalidOTP
	}

	if time.Now().After(otp.ExpiresAt) {
		if err := s.repo.DeleteOTP(ctx, otp.ID); err != nil {
			return err
		}
		return autherror.ErrOTPExpired
	}

	return s.repo.MarkOTPVerified(ctx, otp.ID)
}

// ChangePassword requires a verified, unexpired OTP for the account and
// consumes it together with the credential update in one transaction.
func (s *OTPService) ChangePassword(ctx context.Context, email, password, repeatPassword string) error {
	if password != repeatPassword {
		return autherror.ErrPasswordMismatch
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUserNotFound
	}

	otp, err := s.repo.GetOTPByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if otp == nil || !otp.Verified {
		return autherror.ErrOTPNotVerified
	}

	if time.Now().After(otp.ExpiresAt) {
		if err := s.repo.DeleteOTP(ctx, otp.ID); err != nil {
			return err
		}
		return autherror.ErrOTPExpired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.ConsumeOTPAndUpdatePassword(ctx, otp.ID, user.ID, string(hashed))
}

func generateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(constant.OTPMax-constant.OTPMin+1))
	if err != nil {
		return 0, err
	}

	return constant.OTPMin + int(n.Int64()), nil
}
