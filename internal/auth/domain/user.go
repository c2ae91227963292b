package domain

import "time"

type User struct {
	ID           string
	Name         string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is the single long-lived credential a user may hold at a time.
// The token value is opaque; validity is decided purely by ExpiresAt.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordResetOTP gates the forgot-password flow. Verified flips when the
// owner presented the code in time; the row is consumed on password change.
type PasswordResetOTP struct {
	ID        string
	UserID    string
	OTP       int
	ExpiresAt time.Time
	Verified  bool
	CreatedAt time.Time
}
