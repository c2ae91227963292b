package domain

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error

	GetRefreshTokenByUserID(ctx context.Context, userID string) (*RefreshToken, error)
	GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	StoreRefreshToken(ctx context.Context, rt *RefreshToken) error
	DeleteRefreshToken(ctx context.Context, id string) error

	UpsertOTP(ctx context.Context, otp *PasswordResetOTP) error
	GetOTPByCodeAndUserID(ctx context.Context, code int, userID string) (*PasswordResetOTP, error)
	GetOTPByUserID(ctx context.Context, userID string) (*PasswordResetOTP, error)
	MarkOTPVerified(ctx context.Context, id string) error
	DeleteOTP(ctx context.Context, id string) error

	// ConsumeOTPAndUpdatePassword deletes the user's OTP row and stores the
	// new password hash in a single transaction.
	ConsumeOTPAndUpdatePassword(ctx context.Context, otpID, userID, passwordHash string) error
}
