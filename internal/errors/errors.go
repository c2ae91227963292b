package errors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrUsernameAlreadyInUse = errors.New("username already in use")
	ErrUserNotFound         = errors.New("user not found")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrInvalidOTP           = errors.New("invalid OTP")
	ErrOTPExpired           = errors.New("OTP has expired")
	ErrOTPNotVerified       = errors.New("OTP has not been verified")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrMovieNotFound        = errors.New("movie not found")
	ErrPosterAlreadyExists  = errors.New("poster file already exists")
	ErrPosterNotFound       = errors.New("poster file not found")
	ErrEmptyFile            = errors.New("file cannot be empty")
	ErrMovieFieldsRequired  = errors.New("title, director and studio are required")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("insufficient role")
)

// StatusCode maps a domain error to the HTTP status the boundary returns.
// Unknown errors are treated as internal failures.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrRefreshTokenNotFound),
		errors.Is(err, ErrMovieNotFound),
		errors.Is(err, ErrPosterNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrRefreshTokenExpired),
		errors.Is(err, ErrOTPExpired),
		errors.Is(err, ErrInvalidOTP),
		errors.Is(err, ErrOTPNotVerified):
		return fiber.StatusExpectationFailed
	case errors.Is(err, ErrEmailAlreadyInUse),
		errors.Is(err, ErrUsernameAlreadyInUse),
		errors.Is(err, ErrPosterAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrMovieFieldsRequired):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the user-facing text for an error. Internal failures get a
// generic message so stack details and identifiers never reach the client.
func Message(err error) string {
	if StatusCode(err) == fiber.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
